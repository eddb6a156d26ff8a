package catalog

import (
	"github.com/jhoicas/Catalogos-api/internal/domain/entity"
)

// TenantSource agrega a Source la personalización por tenant y los datos de proveedores.
type TenantSource interface {
	Source
	TenantCatalog(k entity.TenantCatalogKey) (entity.TenantCatalogConfig, bool)
	SupplierData(k entity.StoreKey) (entity.StoreSupplierData, bool)
}

// ComboSource agrega los combos por catálogo.
type ComboSource interface {
	TenantSource
	ComboInstancesByCatalog(catalogID string) []entity.ComboInstance
}

// EffectiveCatalogForTenant aplica sobre EffectiveCatalog el evento seleccionado del tenant:
// visibilidad de tiendas, proveedor forzado, orden y descuentos. Fees y CSS se heredan sin cambios.
// Un evento inexistente equivale a un evento vacío.
func EffectiveCatalogForTenant(src TenantSource, tenantID, catalogID string) (*entity.Catalog, error) {
	out, err := EffectiveCatalog(src, catalogID)
	if err != nil {
		return nil, err
	}
	cfg, _ := src.TenantCatalog(entity.TenantCatalogKey{TenantID: tenantID, CatalogID: catalogID})
	ev := cfg.SelectedEvent()
	flags := cfg.Flags

	// Visibilidad: con el flag stores manda la lista del evento; sin él, siempre se quitan las ocultas.
	if flags.Stores {
		out.Stores = keepNamed(out.Stores, ev.Stores.Stores)
	} else {
		out.Stores = dropNamed(out.Stores, cfg.HiddenStores)
	}

	if flags.ForceSupplier && cfg.ForcedSupplier != nil {
		out.Stores = keepOfferedBy(src, out.Stores, *cfg.ForcedSupplier)
	}

	if flags.Order && len(ev.Order) > 0 {
		out.Stores = ApplyOrder(out.Stores, ev.Order)
	}

	if flags.Discounts {
		out.StoreDiscounts = overlayEventDiscounts(out.StoreDiscounts, ev.Discounts)
	}

	out.Stores = filterActive(src, out.Stores)
	return out, nil
}

// VisibleCombos devuelve los combos activos del catálogo que ve el tenant. Con el flag
// visibility activo se restringen a los combos listados en el evento seleccionado.
func VisibleCombos(src ComboSource, tenantID, catalogID string) ([]entity.ComboInstance, error) {
	if _, err := EffectiveCatalog(src, catalogID); err != nil {
		return nil, err
	}
	cfg, _ := src.TenantCatalog(entity.TenantCatalogKey{TenantID: tenantID, CatalogID: catalogID})
	var allowed map[string]struct{}
	if cfg.Flags.Visibility {
		allowed = nameSet(cfg.SelectedEvent().Stores.ComboInstances)
	}
	out := []entity.ComboInstance{}
	for _, c := range src.ComboInstancesByCatalog(catalogID) {
		if !c.IsActive {
			continue
		}
		if allowed != nil {
			if _, ok := allowed[c.ID]; !ok {
				continue
			}
		}
		out = append(out, c.Clone())
	}
	return out, nil
}

// OfferingSuppliers devuelve los proveedores que ofrecen la tienda; sin datos, todos.
func OfferingSuppliers(src TenantSource, k entity.StoreKey) []int {
	if d, ok := src.SupplierData(k); ok && d.OfferingSuppliers != nil {
		return d.OfferingSuppliers
	}
	return entity.SupplierIDs
}

func keepOfferedBy(src TenantSource, stores []entity.Store, supplierID int) []entity.Store {
	out := make([]entity.Store, 0, len(stores))
	for _, s := range stores {
		for _, id := range OfferingSuppliers(src, s.Key()) {
			if id == supplierID {
				out = append(out, s)
				break
			}
		}
	}
	return out
}

func keepNamed(stores []entity.Store, names []string) []entity.Store {
	set := nameSet(names)
	out := make([]entity.Store, 0, len(stores))
	for _, s := range stores {
		if _, ok := set[s.Name]; ok {
			out = append(out, s)
		}
	}
	return out
}

func dropNamed(stores []entity.Store, names []string) []entity.Store {
	if len(names) == 0 {
		return stores
	}
	set := nameSet(names)
	out := make([]entity.Store, 0, len(stores))
	for _, s := range stores {
		if _, hidden := set[s.Name]; !hidden {
			out = append(out, s)
		}
	}
	return out
}
