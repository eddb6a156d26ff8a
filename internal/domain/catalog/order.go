package catalog

import "github.com/jhoicas/Catalogos-api/internal/domain/entity"

// ApplyOrder reordena las tiendas según order: primero las nombradas, en el orden listado,
// luego las no listadas en su orden relativo previo. Nombres de order que no están en stores se ignoran.
// Devuelve un slice nuevo; stores no se modifica.
func ApplyOrder(stores []entity.Store, order []string) []entity.Store {
	if len(order) == 0 {
		return append([]entity.Store(nil), stores...)
	}
	byName := make(map[string]int, len(stores))
	for i, s := range stores {
		if _, seen := byName[s.Name]; !seen {
			byName[s.Name] = i
		}
	}
	out := make([]entity.Store, 0, len(stores))
	placed := make(map[int]bool, len(order))
	for _, name := range order {
		i, ok := byName[name]
		if !ok || placed[i] {
			continue
		}
		placed[i] = true
		out = append(out, stores[i])
	}
	for i, s := range stores {
		if !placed[i] {
			out = append(out, s)
		}
	}
	return out
}

// filterActive deja solo las tiendas activas.
func filterActive(src Source, stores []entity.Store) []entity.Store {
	out := make([]entity.Store, 0, len(stores))
	for _, s := range stores {
		if src.IsStoreActive(s.Key()) {
			out = append(out, s)
		}
	}
	return out
}

func nameSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}
