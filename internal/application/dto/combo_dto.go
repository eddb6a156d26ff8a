package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Catalogos-api/internal/domain/entity"
)

// MasterComboRequest alta o edición de un combo maestro.
type MasterComboRequest struct {
	Name       string   `json:"name" validate:"required,max=80"`
	Currency   string   `json:"currency" validate:"required,len=3,uppercase"`
	StoreNames []string `json:"store_names" validate:"required,min=1,dive,required"`
	IsActive   *bool    `json:"is_active"`
	ImageURL   string   `json:"image_url" validate:"omitempty,url"`
}

// ComboInstanceRequest alta o edición de un combo dentro de un catálogo.
// Con MasterComboID se heredan las tiendas del maestro; sin él se usan CustomStoreNames.
type ComboInstanceRequest struct {
	CatalogID        string            `json:"catalog_id" validate:"required"`
	MasterComboID    *string           `json:"master_combo_id"`
	DisplayName      string            `json:"display_name" validate:"required,max=80"`
	CustomStoreNames []string          `json:"custom_store_names" validate:"omitempty,dive,required"`
	Denominations    []decimal.Decimal `json:"denominations"`
	IsActive         *bool             `json:"is_active"`
	ImageURL         string            `json:"image_url" validate:"omitempty,url"`
}

// ComboInstanceResponse combo con sus tiendas efectivas.
type ComboInstanceResponse struct {
	entity.ComboInstance
	EffectiveStoreNames []string `json:"effective_store_names"`
}
