package entity

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultEventID es el evento implícito de cada par tenant-catálogo. No se puede eliminar.
const DefaultEventID = "default"

// TenantCatalogKey identifica la personalización de un tenant sobre un catálogo.
type TenantCatalogKey struct {
	TenantID  string
	CatalogID string
}

func (k TenantCatalogKey) String() string {
	return k.TenantID + "::" + k.CatalogID
}

// MarshalText permite usar la clave en mapas JSON.
func (k TenantCatalogKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText interpreta "{tenant}::{catalog}".
func (k *TenantCatalogKey) UnmarshalText(b []byte) error {
	tenantID, catalogID, ok := strings.Cut(string(b), "::")
	if !ok || tenantID == "" || catalogID == "" {
		return fmt.Errorf("clave tenant-catálogo inválida: %q", string(b))
	}
	k.TenantID, k.CatalogID = tenantID, catalogID
	return nil
}

// FeatureFlags activa cada capa de personalización del tenant sobre el catálogo.
type FeatureFlags struct {
	Discounts     bool `json:"discounts"`
	Visibility    bool `json:"visibility"` // restringe combos visibles a los del evento
	Order         bool `json:"order"`
	Stores        bool `json:"stores"`
	ForceSupplier bool `json:"force_supplier"`
}

// Any informa si hay al menos una capa activa.
func (f FeatureFlags) Any() bool {
	return f.Discounts || f.Visibility || f.Order || f.Stores || f.ForceSupplier
}

// Flag nombres aceptados por SetFlag.
const (
	FlagDiscounts     = "discounts"
	FlagVisibility    = "visibility"
	FlagOrder         = "order"
	FlagStores        = "stores"
	FlagForceSupplier = "forceSupplier"
)

// SetFlag cambia un flag por nombre. Devuelve false si el nombre no existe.
func (f *FeatureFlags) SetFlag(name string, on bool) bool {
	switch name {
	case FlagDiscounts:
		f.Discounts = on
	case FlagVisibility:
		f.Visibility = on
	case FlagOrder:
		f.Order = on
	case FlagStores:
		f.Stores = on
	case FlagForceSupplier:
		f.ForceSupplier = on
	default:
		return false
	}
	return true
}

// EventStores tiendas y combos visibles dentro de un evento.
type EventStores struct {
	Stores         []string `json:"stores"`
	ComboInstances []string `json:"combo_instances"`
}

// TenantCatalogEvent agrupa overrides de descuentos, tiendas y orden para un tenant-catálogo.
type TenantCatalogEvent struct {
	ID        string                     `json:"id"`
	Name      string                     `json:"name"`
	Discounts map[string]decimal.Decimal `json:"discounts"`
	Stores    EventStores                `json:"stores"`
	Order     []string                   `json:"order"`
	CreatedAt time.Time                  `json:"created_at"`
}

// NewEvent construye un evento vacío.
func NewEvent(id, name string, now time.Time) TenantCatalogEvent {
	return TenantCatalogEvent{
		ID:        id,
		Name:      name,
		Discounts: map[string]decimal.Decimal{},
		Stores:    EventStores{Stores: []string{}, ComboInstances: []string{}},
		Order:     []string{},
		CreatedAt: now,
	}
}

// Clone copia profunda del evento.
func (e TenantCatalogEvent) Clone() TenantCatalogEvent {
	out := e
	out.Discounts = maps.Clone(e.Discounts)
	out.Stores = EventStores{
		Stores:         slices.Clone(e.Stores.Stores),
		ComboInstances: slices.Clone(e.Stores.ComboInstances),
	}
	out.Order = slices.Clone(e.Order)
	return out
}

// TenantCatalogConfig es todo lo que un tenant personaliza sobre un catálogo.
type TenantCatalogConfig struct {
	Flags           FeatureFlags                  `json:"flags"`
	Events          map[string]TenantCatalogEvent `json:"events"`
	SelectedEventID string                        `json:"selected_event_id"`
	HiddenStores    []string                      `json:"hidden_stores"`
	ForcedSupplier  *int                          `json:"forced_supplier,omitempty"`
}

// Clone copia profunda de la configuración.
func (c TenantCatalogConfig) Clone() TenantCatalogConfig {
	out := c
	if c.Events != nil {
		out.Events = make(map[string]TenantCatalogEvent, len(c.Events))
		for id, ev := range c.Events {
			out.Events[id] = ev.Clone()
		}
	}
	out.HiddenStores = slices.Clone(c.HiddenStores)
	if c.ForcedSupplier != nil {
		v := *c.ForcedSupplier
		out.ForcedSupplier = &v
	}
	return out
}

// SelectedEvent devuelve el evento seleccionado o un evento vacío si no existe.
func (c TenantCatalogConfig) SelectedEvent() TenantCatalogEvent {
	id := c.SelectedEventID
	if id == "" {
		id = DefaultEventID
	}
	if ev, ok := c.Events[id]; ok {
		return ev
	}
	return NewEvent(id, id, time.Time{})
}
