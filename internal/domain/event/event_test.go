package event_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Catalogos-api/internal/domain"
	"github.com/jhoicas/Catalogos-api/internal/domain/entity"
	"github.com/jhoicas/Catalogos-api/internal/domain/event"
)

var now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func TestStateOf_Transiciones(t *testing.T) {
	var cfg entity.TenantCatalogConfig
	assert.Equal(t, event.NoEventsYet, event.StateOf(cfg))

	event.EnsureDefault(&cfg, now)
	assert.Equal(t, event.HasDefault, event.StateOf(cfg))
	assert.Equal(t, entity.DefaultEventID, cfg.SelectedEventID)

	_, err := event.Create(&cfg, "e1", "Black Friday", now)
	require.NoError(t, err)
	assert.Equal(t, event.HasNamedEvents, event.StateOf(cfg))

	require.NoError(t, event.Delete(&cfg, "e1", now))
	assert.Equal(t, event.HasDefault, event.StateOf(cfg))
}

func TestSetFlag_ActivarCreaDefault(t *testing.T) {
	var cfg entity.TenantCatalogConfig
	require.NoError(t, event.SetFlag(&cfg, entity.FlagDiscounts, true, now))
	assert.True(t, cfg.Flags.Discounts)
	assert.Contains(t, cfg.Events, entity.DefaultEventID)

	err := event.SetFlag(&cfg, "inexistente", true, now)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSetFlag_DesactivarNoCreaDefault(t *testing.T) {
	var cfg entity.TenantCatalogConfig
	require.NoError(t, event.SetFlag(&cfg, entity.FlagOrder, false, now))
	assert.Equal(t, event.NoEventsYet, event.StateOf(cfg))
}

func TestCreate_SeleccionaElNuevo(t *testing.T) {
	var cfg entity.TenantCatalogConfig
	ev, err := event.Create(&cfg, "e1", "  Navidad ", now)
	require.NoError(t, err)
	assert.Equal(t, "Navidad", ev.Name)
	assert.Equal(t, "e1", cfg.SelectedEventID)
	assert.Contains(t, cfg.Events, entity.DefaultEventID, "crear un evento crea el default")
}

func TestCreate_NombresInvalidos(t *testing.T) {
	var cfg entity.TenantCatalogConfig
	_, err := event.Create(&cfg, "e1", "Promo", now)
	require.NoError(t, err)

	cases := []struct {
		name string
		want error
	}{
		{"", domain.ErrInvalidInput},
		{"   ", domain.ErrInvalidInput},
		{"Default", domain.ErrInvalidInput},
		{"PROMO", domain.ErrDuplicate},
		{"promo", domain.ErrDuplicate},
	}
	for _, tc := range cases {
		_, err := event.Create(&cfg, "e2", tc.name, now)
		assert.ErrorIs(t, err, tc.want, "nombre %q", tc.name)
	}
}

func TestCreate_NombreConCaseFoldingUnicode(t *testing.T) {
	var cfg entity.TenantCatalogConfig
	_, err := event.Create(&cfg, "e1", "Día del Niño", now)
	require.NoError(t, err)

	_, err = event.Create(&cfg, "e2", "DÍA DEL NIÑO", now)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestDelete_SeleccionadoVuelveADefault(t *testing.T) {
	var cfg entity.TenantCatalogConfig
	_, err := event.Create(&cfg, "e1", "Promo", now)
	require.NoError(t, err)
	require.Equal(t, "e1", cfg.SelectedEventID)

	require.NoError(t, event.Delete(&cfg, "e1", now))
	assert.Equal(t, entity.DefaultEventID, cfg.SelectedEventID)
	assert.NotContains(t, cfg.Events, "e1")
}

func TestDelete_NoSeleccionadoConservaSeleccion(t *testing.T) {
	var cfg entity.TenantCatalogConfig
	_, err := event.Create(&cfg, "e1", "Uno", now)
	require.NoError(t, err)
	_, err = event.Create(&cfg, "e2", "Dos", now)
	require.NoError(t, err)

	require.NoError(t, event.Delete(&cfg, "e1", now))
	assert.Equal(t, "e2", cfg.SelectedEventID)
}

func TestDelete_DefaultBloqueado(t *testing.T) {
	var cfg entity.TenantCatalogConfig
	event.EnsureDefault(&cfg, now)
	assert.ErrorIs(t, event.Delete(&cfg, entity.DefaultEventID, now), domain.ErrDefaultEventLocked)
	assert.ErrorIs(t, event.Delete(&cfg, "nope", now), domain.ErrNotFound)
}

func TestSelect(t *testing.T) {
	var cfg entity.TenantCatalogConfig
	_, err := event.Create(&cfg, "e1", "Uno", now)
	require.NoError(t, err)

	require.NoError(t, event.Select(&cfg, entity.DefaultEventID, now))
	assert.Equal(t, entity.DefaultEventID, cfg.SelectedEventID)
	assert.ErrorIs(t, event.Select(&cfg, "nope", now), domain.ErrEventNotFound)
}

func TestSetDiscount_CeroEliminaOverride(t *testing.T) {
	var cfg entity.TenantCatalogConfig
	require.NoError(t, event.SetDiscount(&cfg, "", "Amazon", decimal.NewFromInt(12), now))
	assert.True(t, cfg.Events[entity.DefaultEventID].Discounts["Amazon"].Equal(decimal.NewFromInt(12)))

	require.NoError(t, event.SetDiscount(&cfg, entity.DefaultEventID, "Amazon", decimal.Zero, now))
	assert.NotContains(t, cfg.Events[entity.DefaultEventID].Discounts, "Amazon")

	err := event.SetDiscount(&cfg, "", "Amazon", decimal.NewFromInt(-1), now)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSetStoresYOrden_SinDuplicados(t *testing.T) {
	var cfg entity.TenantCatalogConfig
	_, err := event.Create(&cfg, "e1", "Promo", now)
	require.NoError(t, err)

	require.NoError(t, event.SetStores(&cfg, "e1", []string{"Amazon", "Apple", "Amazon", ""}, now))
	require.NoError(t, event.SetOrder(&cfg, "e1", []string{"Apple", "Apple", "Amazon"}, now))
	require.NoError(t, event.SetComboInstances(&cfg, "e1", []string{"c1"}, now))

	ev := cfg.Events["e1"]
	assert.Equal(t, []string{"Amazon", "Apple"}, ev.Stores.Stores)
	assert.Equal(t, []string{"Apple", "Amazon"}, ev.Order)
	assert.Equal(t, []string{"c1"}, ev.Stores.ComboInstances)
	assert.Empty(t, cfg.Events[entity.DefaultEventID].Stores.Stores, "el default no cambia")
}

func TestUpdate_EventoInexistente(t *testing.T) {
	var cfg entity.TenantCatalogConfig
	err := event.SetOrder(&cfg, "nope", []string{"A"}, now)
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
}
