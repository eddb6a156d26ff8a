package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Catalogos-api/internal/domain/entity"
)

// CreateCatalogRequest alta de un catálogo base (uno por país).
type CreateCatalogRequest struct {
	Name       string   `json:"name" validate:"required,min=2,max=80"`
	Country    string   `json:"country" validate:"required,len=2,uppercase"`
	Currency   string   `json:"currency" validate:"omitempty,len=3,uppercase"`
	StoreNames []string `json:"store_names" validate:"omitempty,dive,required"`
}

// CreateBranchRequest alta de una rama sobre un catálogo base. ParentID sale de la ruta, nunca del body.
type CreateBranchRequest struct {
	ParentID string `json:"-"`
	Name     string `json:"name" validate:"required,min=2,max=80"`
}

// StoreNameRequest referencia a una tienda por nombre.
type StoreNameRequest struct {
	StoreName string `json:"store_name" validate:"required"`
}

// DecimalValueRequest valor decimal opcional; null borra el valor.
type DecimalValueRequest struct {
	Value *decimal.Decimal `json:"value"`
}

// CSSRequest clase CSS de una tienda; vacío la borra.
type CSSRequest struct {
	CSS string `json:"css" validate:"max=200"`
}

// OrderRequest orden de tiendas por nombre.
type OrderRequest struct {
	Order []string `json:"order" validate:"dive,required"`
}

// CatalogSummary fila del listado de catálogos.
type CatalogSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Country    string `json:"country"`
	Currency   string `json:"currency"`
	IsBranch   bool   `json:"is_branch"`
	ParentID   string `json:"parent_id,omitempty"`
	StoreCount int    `json:"store_count"`
}

// CatalogListResponse listado paginado.
type CatalogListResponse struct {
	Items []CatalogSummary `json:"items"`
	Page  PageResponse     `json:"page"`
}

// EffectiveCatalogResponse catálogo resuelto y versión del estado con que se resolvió.
type EffectiveCatalogResponse struct {
	Catalog *entity.Catalog `json:"catalog"`
	Version uint64          `json:"version"`
}

// DeleteBranchResponse resultado de eliminar una rama.
type DeleteBranchResponse struct {
	ReassignedTenants map[string]string `json:"reassigned_tenants"` // tenantID → nuevo catálogo ("" = sin asignar)
}
