package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Catalogos-api/internal/domain/entity"
)

// TenantResponse tenant con su catálogo asignado y notas.
type TenantResponse struct {
	entity.Tenant
	CatalogID string `json:"catalog_id,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// AssignCatalogRequest asigna el catálogo activo del tenant.
type AssignCatalogRequest struct {
	CatalogID string `json:"catalog_id" validate:"required"`
}

// ComboView combo visible con sus tiendas efectivas.
type ComboView struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	StoreNames    []string          `json:"store_names"`
	Denominations []decimal.Decimal `json:"denominations"`
	ImageURL      string            `json:"image_url,omitempty"`
}

// TenantViewResponse vista efectiva del tenant sobre un catálogo.
type TenantViewResponse struct {
	TenantID  string          `json:"tenant_id"`
	CatalogID string          `json:"catalog_id"`
	EventID   string          `json:"event_id"`
	EventName string          `json:"event_name"`
	Catalog   *entity.Catalog `json:"catalog"`
	Combos    []ComboView     `json:"combos"`
	Version   uint64          `json:"version"`
}

// TenantCatalogResponse personalización cruda y estado del ciclo de eventos.
type TenantCatalogResponse struct {
	TenantID   string                     `json:"tenant_id"`
	CatalogID  string                     `json:"catalog_id"`
	EventState string                     `json:"event_state"`
	Config     entity.TenantCatalogConfig `json:"config"`
}

// FlagRequest activa o desactiva un feature flag.
type FlagRequest struct {
	Name    string `json:"name" validate:"required,oneof=discounts visibility order stores forceSupplier"`
	Enabled bool   `json:"enabled"`
}

// CreateEventRequest alta de un evento.
type CreateEventRequest struct {
	Name string `json:"name" validate:"required,max=60"`
}

// EventDiscountRequest descuento de una tienda dentro de un evento; 0 borra el override.
type EventDiscountRequest struct {
	StoreName string          `json:"store_name" validate:"required"`
	Value     decimal.Decimal `json:"value"`
}

// NamesRequest lista de nombres o IDs (tiendas del evento, combos, tiendas ocultas).
type NamesRequest struct {
	Names []string `json:"names" validate:"dive,required"`
}

// ForcedSupplierRequest proveedor forzado; null lo quita.
type ForcedSupplierRequest struct {
	SupplierID *int `json:"supplier_id" validate:"omitempty,min=1,max=5"`
}

// NotesRequest notas libres del tenant.
type NotesRequest struct {
	Notes string `json:"notes" validate:"max=4000"`
}
