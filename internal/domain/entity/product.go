package entity

import "github.com/shopspring/decimal"

// Product representa un producto canjeable de una tienda (gift card, experiencia, etc.).
// Margin es el margen porcentual que deja el producto; se usa en las reglas de exclusión de swap lists.
type Product struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"` // ID de Category
	Price        decimal.Decimal `json:"price"`
	Margin       decimal.Decimal `json:"margin"`
	Alcohol      bool            `json:"alcohol"`
	ComboProduct bool            `json:"combo_product"` // el producto es en sí un combo
}
