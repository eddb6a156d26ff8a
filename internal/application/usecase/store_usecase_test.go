package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Catalogos-api/internal/application/usecase"
	"github.com/jhoicas/Catalogos-api/internal/domain"
	"github.com/jhoicas/Catalogos-api/internal/domain/entity"
	"github.com/jhoicas/Catalogos-api/internal/domain/supplier"
)

var amazonUS = entity.StoreKey{Country: "US", Name: "Amazon"}

func TestStoreUseCase_ListByCountryOrdenado(t *testing.T) {
	uc := usecase.NewStoreUseCase(demoStore(t))

	res, err := uc.ListByCountry(context.Background(), "US")
	require.NoError(t, err)
	require.Len(t, res.Items, 12)
	for i := 1; i < len(res.Items); i++ {
		assert.LessOrEqual(t, res.Items[i-1].Name, res.Items[i].Name)
	}
	assert.True(t, res.Items[0].Active)
	assert.NotNil(t, res.Items[0].Suppliers)
}

func TestStoreUseCase_GetInexistente(t *testing.T) {
	uc := usecase.NewStoreUseCase(demoStore(t))
	_, err := uc.Get(context.Background(), entity.StoreKey{Country: "US", Name: "Nope"})
	assert.ErrorIs(t, err, domain.ErrStoreNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStoreUseCase_SetActive(t *testing.T) {
	ctx := context.Background()
	st := demoStore(t)
	uc := usecase.NewStoreUseCase(st)

	res, err := uc.SetActive(ctx, amazonUS, false)
	require.NoError(t, err)
	assert.False(t, res.Active)
	assert.False(t, state(t, st).IsStoreActive(amazonUS))

	res, err = uc.SetActive(ctx, amazonUS, true)
	require.NoError(t, err)
	assert.True(t, res.Active)
	_, stored := state(t, st).StoreActive[amazonUS]
	assert.False(t, stored, "activar borra la entrada")
}

// ── Proveedores ───────────────────────────────────────────────────────────────

func TestStoreUseCase_SeleccionManualYAutomatica(t *testing.T) {
	ctx := context.Background()
	st := demoStore(t)
	uc := usecase.NewStoreUseCase(st)

	d, err := uc.AddSupplier(ctx, amazonUS, 1, decimal.NewFromInt(1))
	require.NoError(t, err)
	_, err = uc.AddSupplier(ctx, amazonUS, 2, decimal.NewFromInt(40))
	require.NoError(t, err)

	d, err = uc.SelectSupplier(ctx, amazonUS, ptr(1))
	require.NoError(t, err)
	assert.True(t, d.ManualSelection)
	assert.Equal(t, 1, *d.SelectedSupplier)

	d, err = uc.SelectSupplier(ctx, amazonUS, nil)
	require.NoError(t, err)
	assert.False(t, d.ManualSelection)
	assert.Equal(t, 2, *d.SelectedSupplier, "sin selección manual gana el mayor margen")
}

func TestStoreUseCase_QuitarPrimarioManualVuelveAAutomatico(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewStoreUseCase(demoStore(t))

	_, err := uc.AddSupplier(ctx, amazonUS, 3, decimal.NewFromInt(2))
	require.NoError(t, err)
	_, err = uc.SelectSupplier(ctx, amazonUS, ptr(3))
	require.NoError(t, err)

	d, err := uc.RemoveSupplier(ctx, amazonUS, 3)
	require.NoError(t, err)
	assert.False(t, d.ManualSelection)
	assert.NotContains(t, d.OfferingSuppliers, 3)
	if d.SelectedSupplier != nil {
		assert.Equal(t, *supplier.Best(*d), *d.SelectedSupplier)
	}
}

func TestStoreUseCase_SecundarioNoPuedeSerPrimario(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewStoreUseCase(demoStore(t))

	_, err := uc.AddSupplier(ctx, amazonUS, 4, decimal.NewFromInt(50))
	require.NoError(t, err)
	d, err := uc.SelectSupplier(ctx, amazonUS, ptr(4))
	require.NoError(t, err)

	_, err = uc.SetSecondarySupplier(ctx, amazonUS, d.SelectedSupplier)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestStoreUseCase_MargenDeProveedorNoOfertante(t *testing.T) {
	ctx := context.Background()
	st := demoStore(t)
	uc := usecase.NewStoreUseCase(st)

	id := state(t, st).StoreSuppliers[amazonUS].OfferingSuppliers[0]
	_, err := uc.RemoveSupplier(ctx, amazonUS, id)
	require.NoError(t, err)

	_, err = uc.SetSupplierMargin(ctx, amazonUS, id, decimal.NewFromInt(3))
	assert.ErrorIs(t, err, domain.ErrSupplierNotOffering)
	_, err = uc.RemoveSupplier(ctx, amazonUS, id)
	assert.ErrorIs(t, err, domain.ErrSupplierNotOffering)
}

func TestStoreUseCase_SinDatosPrevios_UsaGenerados(t *testing.T) {
	ctx := context.Background()
	st := demoStore(t)
	_, err := st.Update(ctx, "fixture", func(s *entity.State) error {
		delete(s.StoreSuppliers, amazonUS)
		return nil
	})
	require.NoError(t, err)

	generated := supplier.Generate(amazonUS)
	uc := usecase.NewStoreUseCase(st)
	d, err := uc.SelectSupplier(ctx, amazonUS, nil)
	require.NoError(t, err)
	assert.Equal(t, generated.OfferingSuppliers, d.OfferingSuppliers)
}

func TestStoreUseCase_ProveedorDesconocido(t *testing.T) {
	uc := usecase.NewStoreUseCase(demoStore(t))
	_, err := uc.AddSupplier(context.Background(), amazonUS, 99, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
