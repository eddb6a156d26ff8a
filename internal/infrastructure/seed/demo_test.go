package seed_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Catalogos-api/internal/domain/catalog"
	"github.com/jhoicas/Catalogos-api/internal/domain/entity"
	"github.com/jhoicas/Catalogos-api/internal/infrastructure/memory"
	"github.com/jhoicas/Catalogos-api/internal/infrastructure/seed"
)

var now = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestDemo_Determinista(t *testing.T) {
	assert.Equal(t, seed.Demo(now, []string{"acme"}), seed.Demo(now, []string{"acme"}))
}

func TestDemo_CatalogoBasePorPais(t *testing.T) {
	st := seed.Demo(now, nil)
	for _, country := range seed.Countries {
		c, ok := st.BaseCatalogForCountry(country)
		require.True(t, ok, country)
		assert.Equal(t, entity.CurrencyForCountry(country), c.Currency)
		assert.Len(t, c.Stores, 12)

		eff, err := catalog.EffectiveCatalog(st, c.ID)
		require.NoError(t, err)
		assert.Len(t, eff.Stores, 12)
	}
}

func TestDemo_TenantsGlobales(t *testing.T) {
	st := seed.Demo(now, []string{"acme"})
	assert.True(t, st.Tenants["acme"].Global)
	assert.False(t, st.Tenants["globex"].Global)
	for id, t2 := range st.Tenants {
		c := st.Catalogs[st.Assignments[id]]
		assert.True(t, t2.CanUseCurrency(c.Currency), id)
	}
}

func TestDemo_ProveedoresConsistentes(t *testing.T) {
	st := seed.Demo(now, nil)
	for k, d := range st.StoreSuppliers {
		require.NotEmpty(t, d.OfferingSuppliers, k.String())
		require.NotNil(t, d.SelectedSupplier, k.String())
		assert.True(t, d.Offers(*d.SelectedSupplier), k.String())
	}
}

func TestLoad_SoloSiVacio(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	loaded, err := seed.Load(ctx, store, now, nil)
	require.NoError(t, err)
	assert.True(t, loaded)

	loaded, err = seed.Load(ctx, store, now, nil)
	require.NoError(t, err)
	assert.False(t, loaded)
	assert.False(t, store.Empty())
}
