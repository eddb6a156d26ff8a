package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Catalogos-api/internal/application/dto"
	"github.com/jhoicas/Catalogos-api/internal/application/usecase"
	"github.com/jhoicas/Catalogos-api/internal/domain"
	"github.com/jhoicas/Catalogos-api/internal/domain/entity"
)

// ── Maestros ──────────────────────────────────────────────────────────────────

func TestCombo_CrearMaestro(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewComboUseCase(demoStore(t))

	m, err := uc.CreateMaster(ctx, dto.MasterComboRequest{
		Name: "Tech", Currency: "USD", StoreNames: []string{"Apple", "Best Buy", "Apple"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, m.ID)
	assert.True(t, m.IsActive)
	assert.Equal(t, []string{"Apple", "Best Buy"}, m.StoreNames)

	list, err := uc.ListMasters(ctx, "USD")
	require.NoError(t, err)
	assert.Len(t, list, 2)
	for _, x := range list {
		assert.Equal(t, "USD", x.Currency)
	}
}

func TestCombo_MaestroConTiendaDeOtraMoneda(t *testing.T) {
	uc := usecase.NewComboUseCase(demoStore(t))

	_, err := uc.CreateMaster(context.Background(), dto.MasterComboRequest{
		Name: "Café", Currency: "USD", StoreNames: []string{"Tim Hortons"},
	})
	assert.ErrorIs(t, err, domain.ErrStoreNotFound)

	_, err = uc.CreateMaster(context.Background(), dto.MasterComboRequest{
		Name: "Café", Currency: "XXX", StoreNames: []string{"Amazon"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCombo_BorrarMaestroEnUso(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewComboUseCase(demoStore(t))

	assert.ErrorIs(t, uc.DeleteMaster(ctx, "combo-us"), domain.ErrConflict)
	require.NoError(t, uc.DeleteInstance(ctx, "inst-us"))
	require.NoError(t, uc.DeleteMaster(ctx, "combo-us"))

	_, err := uc.GetMaster(ctx, "combo-us")
	assert.ErrorIs(t, err, domain.ErrComboNotFound)
}

func TestCombo_ActualizarMaestroPropagaTiendas(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewComboUseCase(demoStore(t))

	_, err := uc.UpdateMaster(ctx, "combo-us", dto.MasterComboRequest{
		Name: "Favoritos", Currency: "USD", StoreNames: []string{"Nike"}, IsActive: ptr(false),
	})
	require.NoError(t, err)

	inst, err := uc.GetInstance(ctx, "inst-us")
	require.NoError(t, err)
	assert.Equal(t, []string{"Nike"}, inst.EffectiveStoreNames)

	_, err = uc.UpdateMaster(ctx, "combo-us", dto.MasterComboRequest{
		Name: "Favoritos", Currency: "CAD", StoreNames: []string{"Roots"},
	})
	assert.ErrorIs(t, err, domain.ErrConflict, "un maestro en uso no cambia de moneda")
}

// ── Instancias ────────────────────────────────────────────────────────────────

func TestCombo_InstanciaDeMaestroDeOtraMoneda(t *testing.T) {
	uc := usecase.NewComboUseCase(demoStore(t))

	_, err := uc.CreateInstance(context.Background(), dto.ComboInstanceRequest{
		CatalogID: "base-us", MasterComboID: ptr("combo-ca"), DisplayName: "Canadá",
	})
	assert.ErrorIs(t, err, domain.ErrCurrencyMismatch)
}

func TestCombo_InstanciaPersonalizada(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewComboUseCase(demoStore(t))

	_, err := uc.CreateInstance(ctx, dto.ComboInstanceRequest{CatalogID: "base-us", DisplayName: "Vacío"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateInstance(ctx, dto.ComboInstanceRequest{
		CatalogID: "base-us", DisplayName: "Negativo", CustomStoreNames: []string{"Nike"},
		Denominations: []decimal.Decimal{decimal.NewFromInt(-5)},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	inst, err := uc.CreateInstance(ctx, dto.ComboInstanceRequest{
		CatalogID: "base-us", DisplayName: "Deportes", CustomStoreNames: []string{"Nike", "Target"},
		Denominations: []decimal.Decimal{decimal.NewFromInt(20)},
	})
	require.NoError(t, err)
	assert.Nil(t, inst.MasterComboID)
	assert.Equal(t, []string{"Nike", "Target"}, inst.EffectiveStoreNames)

	list, err := uc.ListInstances(ctx, "base-us")
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = uc.ListInstances(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrCatalogNotFound)
}

func TestCombo_InstanciaNoCambiaDeCatalogo(t *testing.T) {
	uc := usecase.NewComboUseCase(demoStore(t))
	_, err := uc.UpdateInstance(context.Background(), "inst-us", dto.ComboInstanceRequest{
		CatalogID: "base-ca", MasterComboID: ptr("combo-ca"), DisplayName: "x",
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCombo_BorrarInstanciaLimpiaEventos(t *testing.T) {
	ctx := context.Background()
	st := demoStore(t)
	key := entity.TenantCatalogKey{TenantID: "acme", CatalogID: "base-us"}
	_, err := st.Update(ctx, "fixture", func(s *entity.State) error {
		ev := entity.NewEvent("ev1", "Navidad", fixedNow)
		ev.Stores.ComboInstances = []string{"inst-us"}
		s.TenantCatalogs[key] = entity.TenantCatalogConfig{Events: map[string]entity.TenantCatalogEvent{"ev1": ev}}
		s.Content[entity.ComboContentKey("inst-us")] = entity.Content{Description: "combo"}
		return nil
	})
	require.NoError(t, err)

	uc := usecase.NewComboUseCase(st)
	require.NoError(t, uc.DeleteInstance(ctx, "inst-us"))

	s := state(t, st)
	assert.Empty(t, s.TenantCatalogs[key].Events["ev1"].Stores.ComboInstances)
	_, ok := s.Content[entity.ComboContentKey("inst-us")]
	assert.False(t, ok)
	assert.ErrorIs(t, uc.DeleteInstance(ctx, "inst-us"), domain.ErrComboNotFound)
}
