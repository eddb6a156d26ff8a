package snapshot

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Catalogos-api/internal/domain/entity"
	"github.com/jhoicas/Catalogos-api/internal/domain/event"
)

// Buckets del esquema v1. Guardaban la personalización por tenant como mapas planos
// tenant → catálogo → valor y los combos como una lista suelta.
const (
	v1TenantDiscounts = "tenant_discounts"
	v1StoreOrder      = "store_order"
	v1HiddenStores    = "hidden_stores"
	v1FeatureFlags    = "feature_flags"
	v1ForcedSupplier  = "forced_supplier"
	v1LegacyCombos    = "legacy_combos"
)

// legacyCombo combo del esquema v1, previo a master combos e instancias.
type legacyCombo struct {
	ID            string            `json:"id"`
	CatalogID     string            `json:"catalog_id"`
	Name          string            `json:"name"`
	Stores        []string          `json:"stores"`
	Denominations []decimal.Decimal `json:"denominations"`
	IsActive      bool              `json:"is_active"`
}

type perTenant[T any] map[string]map[string]T

// migration lleva el estado del esquema v al v+1. Devuelve los buckets que no pudo leer.
type migration func(raw map[string][]byte, st *entity.State) []string

var migrations = map[int]migration{
	1: migrateV1toV2,
}

// migrateV1toV2 mueve descuentos y orden planos al evento default de cada tenant-catálogo,
// junto con ocultas, flags y proveedor forzado, y convierte los combos sueltos en instancias personalizadas.
func migrateV1toV2(raw map[string][]byte, st *entity.State) []string {
	var corrupt []string
	decode := func(name string, target any) {
		b, ok := raw[name]
		if !ok {
			return
		}
		if err := json.Unmarshal(b, target); err != nil {
			corrupt = append(corrupt, name)
		}
	}

	var (
		discounts perTenant[map[string]decimal.Decimal]
		order     perTenant[[]string]
		hidden    perTenant[[]string]
		flags     perTenant[entity.FeatureFlags]
		forced    perTenant[int]
		combos    []legacyCombo
	)
	decode(v1TenantDiscounts, &discounts)
	decode(v1StoreOrder, &order)
	decode(v1HiddenStores, &hidden)
	decode(v1FeatureFlags, &flags)
	decode(v1ForcedSupplier, &forced)
	decode(v1LegacyCombos, &combos)

	var epoch time.Time
	config := func(tenantID, catalogID string) (entity.TenantCatalogKey, entity.TenantCatalogConfig) {
		k := entity.TenantCatalogKey{TenantID: tenantID, CatalogID: catalogID}
		cfg := st.TenantCatalogs[k]
		event.EnsureDefault(&cfg, epoch)
		return k, cfg
	}

	for tenantID, byCatalog := range discounts {
		for catalogID, values := range byCatalog {
			k, cfg := config(tenantID, catalogID)
			ev := cfg.Events[entity.DefaultEventID]
			for store, v := range values {
				if !v.IsZero() {
					ev.Discounts[store] = v
				}
			}
			cfg.Events[entity.DefaultEventID] = ev
			st.TenantCatalogs[k] = cfg
		}
	}
	for tenantID, byCatalog := range order {
		for catalogID, names := range byCatalog {
			k, cfg := config(tenantID, catalogID)
			ev := cfg.Events[entity.DefaultEventID]
			ev.Order = append([]string{}, names...)
			cfg.Events[entity.DefaultEventID] = ev
			st.TenantCatalogs[k] = cfg
		}
	}
	for tenantID, byCatalog := range hidden {
		for catalogID, names := range byCatalog {
			k, cfg := config(tenantID, catalogID)
			cfg.HiddenStores = append([]string{}, names...)
			st.TenantCatalogs[k] = cfg
		}
	}
	for tenantID, byCatalog := range flags {
		for catalogID, f := range byCatalog {
			k, cfg := config(tenantID, catalogID)
			cfg.Flags = f
			st.TenantCatalogs[k] = cfg
		}
	}
	for tenantID, byCatalog := range forced {
		for catalogID, id := range byCatalog {
			k, cfg := config(tenantID, catalogID)
			v := id
			cfg.ForcedSupplier = &v
			st.TenantCatalogs[k] = cfg
		}
	}

	for _, c := range combos {
		if c.ID == "" {
			continue
		}
		if _, exists := st.ComboInstances[c.ID]; exists {
			continue
		}
		st.ComboInstances[c.ID] = entity.ComboInstance{
			ID:               c.ID,
			CatalogID:        c.CatalogID,
			DisplayName:      c.Name,
			CustomStoreNames: append([]string{}, c.Stores...),
			Denominations:    append([]decimal.Decimal{}, c.Denominations...),
			IsActive:         c.IsActive,
		}
	}
	return corrupt
}
