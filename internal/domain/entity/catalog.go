package entity

import (
	"maps"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// Catalog representa un catálogo base (IsBranch=false, uno por país/moneda, con lista concreta de tiendas)
// o una rama (IsBranch=true) que solo guarda el delta respecto a su catálogo padre.
// Los mapas de descuentos/CSS/fees están indexados por nombre de tienda.
type Catalog struct {
	ID             string                     `json:"id"`
	Name           string                     `json:"name"`
	Country        string                     `json:"country"`
	Currency       string                     `json:"currency"`
	IsBranch       bool                       `json:"is_branch"`
	ParentID       string                     `json:"parent_id,omitempty"` // vacío en catálogos base
	Stores         []Store                    `json:"stores"`
	StoreDiscounts map[string]decimal.Decimal `json:"store_discounts"`
	StoreCSS       map[string]string          `json:"store_css"`
	StoreFees      map[string]decimal.Decimal `json:"store_fees"`
	CatalogFee     *decimal.Decimal           `json:"catalog_fee,omitempty"`
	BranchChanges  *BranchChanges             `json:"branch_changes,omitempty"` // solo ramas
	CreatedAt      time.Time                  `json:"created_at"`
	UpdatedAt      time.Time                  `json:"updated_at"`
}

// BranchChanges es el delta de una rama: altas, bajas, overrides y orden opcional.
// Invariante: AddedStores ∩ RemovedStores = ∅.
type BranchChanges struct {
	AddedStores        []string                   `json:"added_stores"`
	RemovedStores      []string                   `json:"removed_stores"`
	DiscountOverrides  map[string]decimal.Decimal `json:"discount_overrides"`
	CSSOverrides       map[string]string          `json:"css_overrides"`
	FeeOverrides       map[string]decimal.Decimal `json:"fee_overrides"`
	CatalogFeeOverride *decimal.Decimal           `json:"catalog_fee_override,omitempty"`
	StoreOrder         []string                   `json:"store_order,omitempty"`
}

// NewBranchChanges devuelve un delta vacío con los mapas inicializados.
func NewBranchChanges() *BranchChanges {
	return &BranchChanges{
		AddedStores:       []string{},
		RemovedStores:     []string{},
		DiscountOverrides: map[string]decimal.Decimal{},
		CSSOverrides:      map[string]string{},
		FeeOverrides:      map[string]decimal.Decimal{},
	}
}

// Clone copia profunda del delta.
func (b *BranchChanges) Clone() *BranchChanges {
	if b == nil {
		return nil
	}
	return &BranchChanges{
		AddedStores:        slices.Clone(b.AddedStores),
		RemovedStores:      slices.Clone(b.RemovedStores),
		DiscountOverrides:  maps.Clone(b.DiscountOverrides),
		CSSOverrides:       maps.Clone(b.CSSOverrides),
		FeeOverrides:       maps.Clone(b.FeeOverrides),
		CatalogFeeOverride: cloneDecimalPtr(b.CatalogFeeOverride),
		StoreOrder:         slices.Clone(b.StoreOrder),
	}
}

// Clone copia profunda del catálogo; el resultado no comparte slices ni mapas con el original.
func (c Catalog) Clone() Catalog {
	out := c
	if c.Stores != nil {
		out.Stores = make([]Store, 0, len(c.Stores))
		for _, s := range c.Stores {
			out.Stores = append(out.Stores, s.Clone())
		}
	}
	out.StoreDiscounts = maps.Clone(c.StoreDiscounts)
	out.StoreCSS = maps.Clone(c.StoreCSS)
	out.StoreFees = maps.Clone(c.StoreFees)
	out.CatalogFee = cloneDecimalPtr(c.CatalogFee)
	out.BranchChanges = c.BranchChanges.Clone()
	return out
}

// HasStore informa si la lista concreta contiene una tienda con ese nombre.
func (c Catalog) HasStore(name string) bool {
	for _, s := range c.Stores {
		if s.Name == name {
			return true
		}
	}
	return false
}

// StoreNames devuelve los nombres de la lista concreta, en orden.
func (c Catalog) StoreNames() []string {
	names := make([]string, 0, len(c.Stores))
	for _, s := range c.Stores {
		names = append(names, s.Name)
	}
	return names
}

func cloneDecimalPtr(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}
