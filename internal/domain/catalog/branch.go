package catalog

import (
	"fmt"

	"github.com/jhoicas/Catalogos-api/internal/domain"
	"github.com/jhoicas/Catalogos-api/internal/domain/entity"
)

// AddStoreToBranch registra la tienda name en el delta de la rama.
// Si estaba en RemovedStores se des-remueve; si el padre no la tiene se agrega a AddedStores.
// Devuelve ErrDuplicate si la tienda ya es visible en la rama.
func AddStoreToBranch(changes *entity.BranchChanges, parentHas bool, name string) error {
	if changes == nil {
		return fmt.Errorf("%w: delta de rama nulo", domain.ErrInvalidBranch)
	}
	wasRemoved := contains(changes.RemovedStores, name)
	if wasRemoved {
		changes.RemovedStores = without(changes.RemovedStores, name)
	}
	if parentHas {
		if !wasRemoved {
			return fmt.Errorf("%w: %s ya está en el catálogo padre", domain.ErrDuplicate, name)
		}
		return nil
	}
	if contains(changes.AddedStores, name) {
		return fmt.Errorf("%w: %s ya fue agregada a la rama", domain.ErrDuplicate, name)
	}
	changes.AddedStores = append(changes.AddedStores, name)
	return nil
}

// RemoveStoreFromBranch quita la tienda de la rama. Una tienda agregada localmente se des-agrega
// (sale de AddedStores); una heredada del padre se registra en RemovedStores.
// Así nunca queda el mismo nombre en ambas listas.
func RemoveStoreFromBranch(changes *entity.BranchChanges, parentHas bool, name string) error {
	if changes == nil {
		return fmt.Errorf("%w: delta de rama nulo", domain.ErrInvalidBranch)
	}
	if contains(changes.AddedStores, name) {
		changes.AddedStores = without(changes.AddedStores, name)
		return nil
	}
	if !parentHas {
		return fmt.Errorf("%w: %s no está en la rama", domain.ErrStoreNotFound, name)
	}
	if contains(changes.RemovedStores, name) {
		return fmt.Errorf("%w: %s ya fue removida de la rama", domain.ErrConflict, name)
	}
	changes.RemovedStores = append(changes.RemovedStores, name)
	return nil
}

func contains(list []string, name string) bool {
	for _, n := range list {
		if n == name {
			return true
		}
	}
	return false
}

func without(list []string, name string) []string {
	out := make([]string, 0, len(list))
	for _, n := range list {
		if n != name {
			out = append(out, n)
		}
	}
	return out
}
