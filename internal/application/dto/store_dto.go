package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Catalogos-api/internal/domain/entity"
)

// StoreResponse tienda con estado, proveedores y contenido.
type StoreResponse struct {
	Name      string                    `json:"name"`
	Country   string                    `json:"country"`
	Products  []entity.Product          `json:"products"`
	Active    bool                      `json:"active"`
	Suppliers *entity.StoreSupplierData `json:"suppliers,omitempty"`
	Content   *entity.Content           `json:"content,omitempty"`
}

// StoreListResponse tiendas de un país.
type StoreListResponse struct {
	Country string          `json:"country"`
	Items   []StoreResponse `json:"items"`
}

// SetActiveRequest activa o desactiva una tienda.
type SetActiveRequest struct {
	Active bool `json:"active"`
}

// SupplierOfferingRequest alta o cambio de margen de un proveedor.
type SupplierOfferingRequest struct {
	SupplierID int             `json:"supplier_id" validate:"required,min=1,max=5"`
	Margin     decimal.Decimal `json:"margin"`
}

// SupplierSelectRequest selección manual; null vuelve a la selección automática.
type SupplierSelectRequest struct {
	SupplierID *int `json:"supplier_id" validate:"omitempty,min=1,max=5"`
}

// ContentRequest textos de una tienda o combo.
type ContentRequest struct {
	Description  string `json:"description" validate:"max=4000"`
	Terms        string `json:"terms" validate:"max=8000"`
	Instructions string `json:"instructions" validate:"max=4000"`
}

// ImageResponse imagen subida y URL temporal de lectura.
type ImageResponse struct {
	ObjectKey   string    `json:"object_key"`
	ContentType string    `json:"content_type"`
	URL         string    `json:"url"`
	UploadedAt  time.Time `json:"uploaded_at"`
}
