package entity

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// MasterCombo es una plantilla global de combo (bundle de tiendas) en una moneda.
type MasterCombo struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Currency   string    `json:"currency"`
	StoreNames []string  `json:"store_names"`
	IsActive   bool      `json:"is_active"`
	ImageURL   string    `json:"image_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ComboInstance es el uso de un combo dentro de un catálogo: derivado de un MasterCombo
// (MasterComboID != nil) o totalmente personalizado (CustomStoreNames).
type ComboInstance struct {
	ID               string            `json:"id"`
	CatalogID        string            `json:"catalog_id"`
	MasterComboID    *string           `json:"master_combo_id"`
	DisplayName      string            `json:"display_name"`
	CustomStoreNames []string          `json:"custom_store_names"`
	Denominations    []decimal.Decimal `json:"denominations"`
	IsActive         bool              `json:"is_active"`
	ImageURL         string            `json:"image_url,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// EffectiveStoreNames devuelve las tiendas del combo: las del master si está enlazado, si no las propias.
// Un master inexistente produce una lista vacía.
func (c ComboInstance) EffectiveStoreNames(masters map[string]MasterCombo) []string {
	if c.MasterComboID != nil {
		m, ok := masters[*c.MasterComboID]
		if !ok {
			return []string{}
		}
		return append([]string{}, m.StoreNames...)
	}
	return append([]string{}, c.CustomStoreNames...)
}

// Clone copia profunda.
func (c ComboInstance) Clone() ComboInstance {
	out := c
	if c.MasterComboID != nil {
		id := *c.MasterComboID
		out.MasterComboID = &id
	}
	out.CustomStoreNames = slices.Clone(c.CustomStoreNames)
	out.Denominations = slices.Clone(c.Denominations)
	return out
}

// Clone copia profunda.
func (m MasterCombo) Clone() MasterCombo {
	out := m
	out.StoreNames = slices.Clone(m.StoreNames)
	return out
}
