package dto

import "github.com/jhoicas/Catalogos-api/internal/domain/entity"

// SwapListRequest alta o edición de una swap list.
type SwapListRequest struct {
	Name                       string   `json:"name" validate:"required,max=80"`
	TenantID                   string   `json:"tenant_id" validate:"required"`
	BaseCurrency               string   `json:"base_currency" validate:"required,len=3,uppercase"`
	AllowedCategories          []string `json:"allowed_categories" validate:"omitempty,dive,required"`
	ApplyAlcoholExclusion      bool     `json:"apply_alcohol_exclusion"`
	ApplyLowMarginExclusion    bool     `json:"apply_low_margin_exclusion"`
	ApplyComboProductExclusion bool     `json:"apply_combo_product_exclusion"`
	Status                     string   `json:"status" validate:"omitempty,oneof=active draft archived"`
}

// SwapRuleRequest asigna la swap list de un catálogo; vacío la quita.
type SwapRuleRequest struct {
	SwapListID string `json:"swap_list_id"`
}

// SwapProductsResponse productos canjeables según la lista.
type SwapProductsResponse struct {
	SwapListID string           `json:"swap_list_id"`
	Products   []entity.Product `json:"products"`
	Total      int              `json:"total"`
}
