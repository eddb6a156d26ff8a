package entity

import (
	"slices"
	"time"
)

// Estados de una swap list.
const (
	SwapListActive   = "active"
	SwapListDraft    = "draft"
	SwapListArchived = "archived"
)

// SwapList (lista de canje) restringe a qué productos pueden canjear los usuarios finales de un tenant.
// AllowedCategories vacío significa "todas las categorías".
type SwapList struct {
	ID                         string    `json:"id"`
	Name                       string    `json:"name"`
	TenantID                   string    `json:"tenant_id"`
	BaseCurrency               string    `json:"base_currency"`
	AllowedCategories          []string  `json:"allowed_categories"`
	ApplyAlcoholExclusion      bool      `json:"apply_alcohol_exclusion"`
	ApplyLowMarginExclusion    bool      `json:"apply_low_margin_exclusion"`
	ApplyComboProductExclusion bool      `json:"apply_combo_product_exclusion"`
	Status                     string    `json:"status"`
	DateModified               time.Time `json:"date_modified"`
}

// Clone copia profunda.
func (s SwapList) Clone() SwapList {
	out := s
	out.AllowedCategories = slices.Clone(s.AllowedCategories)
	return out
}
