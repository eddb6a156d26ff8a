// Package event modela los eventos de un par tenant-catálogo como una máquina de estados explícita:
//
//	NoEventsYet → HasDefault → HasNamedEvents
//
// El evento "default" se crea de forma perezosa (EnsureDefault) y no se puede eliminar.
// Siempre hay exactamente un evento seleccionado una vez que existe el default.
package event

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"github.com/jhoicas/Catalogos-api/internal/domain"
	"github.com/jhoicas/Catalogos-api/internal/domain/entity"
)

// State estado de la máquina de eventos de un tenant-catálogo.
type State int

const (
	NoEventsYet State = iota
	HasDefault
	HasNamedEvents
)

func (s State) String() string {
	switch s {
	case NoEventsYet:
		return "no_events_yet"
	case HasDefault:
		return "has_default"
	case HasNamedEvents:
		return "has_named_events"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// fold normaliza mayúsculas con case folding Unicode. Un Caser no se comparte entre goroutines.
func fold(s string) string { return cases.Fold().String(s) }

// StateOf deriva el estado a partir de la configuración.
func StateOf(cfg entity.TenantCatalogConfig) State {
	if _, ok := cfg.Events[entity.DefaultEventID]; !ok {
		return NoEventsYet
	}
	if len(cfg.Events) > 1 {
		return HasNamedEvents
	}
	return HasDefault
}

// EnsureDefault crea el evento default si falta y garantiza que la selección apunte a un evento existente.
// Transición NoEventsYet → HasDefault; en los demás estados no cambia nada salvo una selección colgada.
func EnsureDefault(cfg *entity.TenantCatalogConfig, now time.Time) {
	if cfg.Events == nil {
		cfg.Events = map[string]entity.TenantCatalogEvent{}
	}
	if _, ok := cfg.Events[entity.DefaultEventID]; !ok {
		cfg.Events[entity.DefaultEventID] = entity.NewEvent(entity.DefaultEventID, entity.DefaultEventID, now)
	}
	if _, ok := cfg.Events[cfg.SelectedEventID]; !ok {
		cfg.SelectedEventID = entity.DefaultEventID
	}
}

// ValidateName verifica que el nombre no esté vacío, no sea "default" y sea único sin distinguir mayúsculas.
func ValidateName(cfg entity.TenantCatalogConfig, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: el nombre del evento es requerido", domain.ErrInvalidInput)
	}
	folded := fold(name)
	if folded == fold(entity.DefaultEventID) {
		return fmt.Errorf("%w: %q es un nombre reservado", domain.ErrInvalidInput, name)
	}
	for _, ev := range cfg.Events {
		if fold(ev.Name) == folded {
			return fmt.Errorf("%w: ya existe un evento llamado %q", domain.ErrDuplicate, ev.Name)
		}
	}
	return nil
}

// Create agrega un evento con nombre y lo selecciona. Si aún no existe el default, lo crea antes.
func Create(cfg *entity.TenantCatalogConfig, id, name string, now time.Time) (entity.TenantCatalogEvent, error) {
	if id == "" || id == entity.DefaultEventID {
		return entity.TenantCatalogEvent{}, fmt.Errorf("%w: id de evento inválido %q", domain.ErrInvalidInput, id)
	}
	if err := ValidateName(*cfg, name); err != nil {
		return entity.TenantCatalogEvent{}, err
	}
	EnsureDefault(cfg, now)
	if _, ok := cfg.Events[id]; ok {
		return entity.TenantCatalogEvent{}, fmt.Errorf("%w: evento %s", domain.ErrDuplicate, id)
	}
	ev := entity.NewEvent(id, strings.TrimSpace(name), now)
	cfg.Events[id] = ev
	cfg.SelectedEventID = id
	return ev, nil
}

// Select cambia el evento seleccionado.
func Select(cfg *entity.TenantCatalogConfig, id string, now time.Time) error {
	if id == entity.DefaultEventID {
		EnsureDefault(cfg, now)
	}
	if _, ok := cfg.Events[id]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrEventNotFound, id)
	}
	cfg.SelectedEventID = id
	return nil
}

// Delete elimina un evento con nombre. Si era el seleccionado, la selección vuelve a default.
func Delete(cfg *entity.TenantCatalogConfig, id string, now time.Time) error {
	if id == entity.DefaultEventID {
		return domain.ErrDefaultEventLocked
	}
	if _, ok := cfg.Events[id]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrEventNotFound, id)
	}
	delete(cfg.Events, id)
	if cfg.SelectedEventID == id {
		cfg.SelectedEventID = entity.DefaultEventID
	}
	EnsureDefault(cfg, now)
	return nil
}

// SetFlag activa o desactiva una capa. Activar cualquier flag crea el evento default.
func SetFlag(cfg *entity.TenantCatalogConfig, name string, on bool, now time.Time) error {
	if !cfg.Flags.SetFlag(name, on) {
		return fmt.Errorf("%w: flag desconocido %q", domain.ErrInvalidInput, name)
	}
	if on {
		EnsureDefault(cfg, now)
	}
	return nil
}

// Update aplica fn sobre el evento id ("" = el seleccionado). El default se crea si hace falta.
func Update(cfg *entity.TenantCatalogConfig, id string, now time.Time, fn func(ev *entity.TenantCatalogEvent) error) error {
	if id == "" {
		EnsureDefault(cfg, now)
		id = cfg.SelectedEventID
	}
	if id == entity.DefaultEventID {
		EnsureDefault(cfg, now)
	}
	ev, ok := cfg.Events[id]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrEventNotFound, id)
	}
	ev = ev.Clone()
	if ev.Discounts == nil {
		ev.Discounts = map[string]decimal.Decimal{}
	}
	if err := fn(&ev); err != nil {
		return err
	}
	cfg.Events[id] = ev
	return nil
}

// SetDiscount fija el descuento de una tienda en el evento. Un valor 0 elimina el override.
func SetDiscount(cfg *entity.TenantCatalogConfig, id, storeName string, value decimal.Decimal, now time.Time) error {
	if storeName == "" {
		return fmt.Errorf("%w: tienda requerida", domain.ErrInvalidInput)
	}
	if value.IsNegative() {
		return fmt.Errorf("%w: el descuento no puede ser negativo", domain.ErrInvalidInput)
	}
	return Update(cfg, id, now, func(ev *entity.TenantCatalogEvent) error {
		if value.IsZero() {
			delete(ev.Discounts, storeName)
			return nil
		}
		ev.Discounts[storeName] = value
		return nil
	})
}

// SetStores reemplaza las tiendas visibles del evento (sin duplicados, en el orden recibido).
func SetStores(cfg *entity.TenantCatalogConfig, id string, stores []string, now time.Time) error {
	return Update(cfg, id, now, func(ev *entity.TenantCatalogEvent) error {
		ev.Stores.Stores = dedupe(stores)
		return nil
	})
}

// SetComboInstances reemplaza los combos visibles del evento.
func SetComboInstances(cfg *entity.TenantCatalogConfig, id string, combos []string, now time.Time) error {
	return Update(cfg, id, now, func(ev *entity.TenantCatalogEvent) error {
		ev.Stores.ComboInstances = dedupe(combos)
		return nil
	})
}

// SetOrder reemplaza el orden de tiendas del evento.
func SetOrder(cfg *entity.TenantCatalogConfig, id string, order []string, now time.Time) error {
	return Update(cfg, id, now, func(ev *entity.TenantCatalogEvent) error {
		ev.Order = dedupe(order)
		return nil
	})
}

func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
