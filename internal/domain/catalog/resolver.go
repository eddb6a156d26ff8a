// Package catalog resuelve el estado efectivo de un catálogo: catálogo base → delta de rama →
// filtro de tiendas activas → overlay del evento del tenant → filtro de proveedor forzado.
// Todas las funciones son puras: leen de un Source y devuelven valores nuevos.
package catalog

import (
	"fmt"

	"github.com/jhoicas/Catalogos-api/internal/domain"
	"github.com/jhoicas/Catalogos-api/internal/domain/entity"
)

// Source es la vista de solo lectura que necesita el resolver. La implementa *entity.State.
type Source interface {
	Catalog(id string) (entity.Catalog, bool)
	StoreByName(country, name string) (entity.Store, bool)
	IsStoreActive(k entity.StoreKey) bool
}

// EffectiveCatalog devuelve el catálogo tal como lo ven los tenants, sin personalizaciones por tenant.
// Para un catálogo base filtra las tiendas inactivas; para una rama aplica el delta sobre el padre.
func EffectiveCatalog(src Source, id string) (*entity.Catalog, error) {
	c, ok := src.Catalog(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrCatalogNotFound, id)
	}
	if !c.IsBranch {
		out := c.Clone()
		out.Stores = filterActive(src, out.Stores)
		return &out, nil
	}

	parent, ok := src.Catalog(c.ParentID)
	if !ok {
		return nil, fmt.Errorf("%w: %s (rama %s)", domain.ErrParentNotFound, c.ParentID, id)
	}
	if parent.IsBranch {
		return nil, fmt.Errorf("%w: el padre %s de %s también es rama", domain.ErrInvalidBranch, parent.ID, id)
	}

	changes := c.BranchChanges
	if changes == nil {
		changes = entity.NewBranchChanges()
	}
	out := c.Clone()
	out.Stores = mergeBranchStores(src, parent, c.Country, changes)
	out.StoreDiscounts = overlayDecimals(parent.StoreDiscounts, changes.DiscountOverrides)
	out.StoreCSS = overlayStrings(parent.StoreCSS, changes.CSSOverrides)
	out.StoreFees = overlayDecimals(parent.StoreFees, changes.FeeOverrides)
	switch {
	case changes.CatalogFeeOverride != nil:
		fee := *changes.CatalogFeeOverride
		out.CatalogFee = &fee
	case parent.CatalogFee != nil:
		fee := *parent.CatalogFee
		out.CatalogFee = &fee
	default:
		out.CatalogFee = nil
	}
	if len(changes.StoreOrder) > 0 {
		out.Stores = ApplyOrder(out.Stores, changes.StoreOrder)
	}
	out.Stores = filterActive(src, out.Stores)
	return &out, nil
}

// mergeBranchStores: tiendas del padre − removidas, más las agregadas del país de la rama.
func mergeBranchStores(src Source, parent entity.Catalog, country string, changes *entity.BranchChanges) []entity.Store {
	removed := nameSet(changes.RemovedStores)
	stores := make([]entity.Store, 0, len(parent.Stores)+len(changes.AddedStores))
	present := make(map[string]struct{}, len(parent.Stores))
	for _, s := range parent.Stores {
		if _, gone := removed[s.Name]; gone {
			continue
		}
		stores = append(stores, s.Clone())
		present[s.Name] = struct{}{}
	}
	for _, name := range changes.AddedStores {
		if _, dup := present[name]; dup {
			continue
		}
		s, ok := src.StoreByName(country, name)
		if !ok {
			continue
		}
		stores = append(stores, s.Clone())
		present[name] = struct{}{}
	}
	return stores
}
