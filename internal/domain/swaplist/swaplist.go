// Package swaplist filtra los productos canjeables según las reglas de una swap list.
package swaplist

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Catalogos-api/internal/domain"
	"github.com/jhoicas/Catalogos-api/internal/domain/entity"
)

// LowMarginThreshold productos con margen menor a este valor se consideran de bajo margen.
var LowMarginThreshold = decimal.NewFromInt(5)

// Allows informa si el producto pasa las reglas de la lista.
// AllowedCategories vacío no restringe categorías.
func Allows(l entity.SwapList, p entity.Product) bool {
	if len(l.AllowedCategories) > 0 && !containsString(l.AllowedCategories, p.Category) {
		return false
	}
	if l.ApplyAlcoholExclusion && p.Alcohol {
		return false
	}
	if l.ApplyLowMarginExclusion && p.Margin.LessThan(LowMarginThreshold) {
		return false
	}
	if l.ApplyComboProductExclusion && p.ComboProduct {
		return false
	}
	return true
}

// FilterProducts devuelve, en el mismo orden, los productos que la lista permite.
func FilterProducts(l entity.SwapList, products []entity.Product) []entity.Product {
	out := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if Allows(l, p) {
			out = append(out, p)
		}
	}
	return out
}

// ProductsForCurrency aplana los productos de las tiendas cuyo país usa currency.
func ProductsForCurrency(stores []entity.Store, currency string) []entity.Product {
	var out []entity.Product
	for _, s := range stores {
		if entity.CurrencyForCountry(s.Country) != currency {
			continue
		}
		out = append(out, s.Products...)
	}
	return out
}

// FilteredProducts es ProductsForCurrency con la moneda base de la lista seguido de FilterProducts.
func FilteredProducts(l entity.SwapList, stores []entity.Store) []entity.Product {
	return FilterProducts(l, ProductsForCurrency(stores, l.BaseCurrency))
}

// Validate revisa los campos obligatorios y el estado.
func Validate(l entity.SwapList) error {
	if strings.TrimSpace(l.Name) == "" {
		return fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	if len(entity.CountriesForCurrency(l.BaseCurrency)) == 0 {
		return fmt.Errorf("%w: moneda base desconocida %q", domain.ErrInvalidInput, l.BaseCurrency)
	}
	switch l.Status {
	case entity.SwapListActive, entity.SwapListDraft, entity.SwapListArchived:
	default:
		return fmt.Errorf("%w: estado inválido %q", domain.ErrInvalidInput, l.Status)
	}
	return nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
