package catalog_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Catalogos-api/internal/application/catalog"
	"github.com/jhoicas/Catalogos-api/internal/application/dto"
	"github.com/jhoicas/Catalogos-api/internal/domain"
	"github.com/jhoicas/Catalogos-api/internal/domain/entity"
	"github.com/jhoicas/Catalogos-api/internal/infrastructure/memory"
)

// ── fixtures ──────────────────────────────────────────────────────────────────

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func names(c *entity.Catalog) []string { return c.StoreNames() }

// newStore: catálogo base US con Amazon y Apple; Target y Nike existen solo en el catálogo global.
func newStore(t *testing.T) *memory.Store {
	t.Helper()
	st := memory.NewStore()
	_, err := st.Update(context.Background(), "fixture", func(s *entity.State) error {
		for _, n := range []string{"Amazon", "Apple", "Target", "Nike"} {
			s.Stores[entity.StoreKey{Country: "US", Name: n}] = entity.Store{Name: n, Country: "US"}
		}
		s.Catalogs["us"] = entity.Catalog{
			ID: "us", Name: "USA", Country: "US", Currency: "USD",
			Stores:         []entity.Store{{Name: "Amazon", Country: "US"}, {Name: "Apple", Country: "US"}},
			StoreDiscounts: map[string]decimal.Decimal{"Amazon": d(10)},
			StoreCSS:       map[string]string{},
			StoreFees:      map[string]decimal.Decimal{},
		}
		s.Tenants["t1"] = entity.Tenant{ID: "t1", Name: "Acme", Country: "US"}
		return nil
	})
	require.NoError(t, err)
	return st
}

func newBranch(t *testing.T, uc *catalog.UseCase) *entity.Catalog {
	t.Helper()
	b, err := uc.CreateBranch(context.Background(), dto.CreateBranchRequest{ParentID: "us", Name: "Promo"})
	require.NoError(t, err)
	return b
}

// ── CreateCatalog ─────────────────────────────────────────────────────────────

func TestCreateCatalog_UnoPorPais(t *testing.T) {
	ctx := context.Background()
	uc := catalog.NewUseCase(newStore(t), nil)

	_, err := uc.CreateCatalog(ctx, dto.CreateCatalogRequest{Name: "Otro US", Country: "US"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.CreateCatalog(ctx, dto.CreateCatalogRequest{Name: "Canadá", Country: "CA", StoreNames: []string{"Roots"}})
	assert.ErrorIs(t, err, domain.ErrStoreNotFound)

	c, err := uc.CreateCatalog(ctx, dto.CreateCatalogRequest{Name: "Canadá", Country: "CA"})
	require.NoError(t, err)
	assert.Equal(t, "CAD", c.Currency)
	assert.False(t, c.IsBranch)
}

func TestCreateCatalog_ValidaPaisYMoneda(t *testing.T) {
	ctx := context.Background()
	uc := catalog.NewUseCase(newStore(t), nil)

	_, err := uc.CreateCatalog(ctx, dto.CreateCatalogRequest{Name: "Marte", Country: "ZZ"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateCatalog(ctx, dto.CreateCatalogRequest{Name: "UK", Country: "UK", Currency: "USD"})
	assert.ErrorIs(t, err, domain.ErrCurrencyMismatch)
}

// ── Ramas ─────────────────────────────────────────────────────────────────────

func TestCreateBranch_CopiaPaisYMoneda(t *testing.T) {
	uc := catalog.NewUseCase(newStore(t), nil)
	b := newBranch(t, uc)

	assert.True(t, b.IsBranch)
	assert.Equal(t, "us", b.ParentID)
	assert.Equal(t, "US", b.Country)
	assert.Equal(t, "USD", b.Currency)
	require.NotNil(t, b.BranchChanges)

	eff, err := uc.Effective(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Amazon", "Apple"}, names(eff.Catalog))
	assert.True(t, eff.Catalog.StoreDiscounts["Amazon"].Equal(d(10)))
}

func TestCreateBranch_PadreInvalido(t *testing.T) {
	ctx := context.Background()
	uc := catalog.NewUseCase(newStore(t), nil)

	_, err := uc.CreateBranch(ctx, dto.CreateBranchRequest{ParentID: "nada", Name: "X"})
	assert.ErrorIs(t, err, domain.ErrParentNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	b := newBranch(t, uc)
	_, err = uc.CreateBranch(ctx, dto.CreateBranchRequest{ParentID: b.ID, Name: "Nieta"})
	assert.ErrorIs(t, err, domain.ErrInvalidBranch)
}

func TestBranch_AgregarYQuitarTiendas(t *testing.T) {
	ctx := context.Background()
	uc := catalog.NewUseCase(newStore(t), nil)
	b := newBranch(t, uc)

	eff, err := uc.AddStore(ctx, b.ID, "Target")
	require.NoError(t, err)
	assert.Equal(t, []string{"Amazon", "Apple", "Target"}, names(eff))

	eff, err = uc.RemoveStore(ctx, b.ID, "Apple")
	require.NoError(t, err)
	assert.Equal(t, []string{"Amazon", "Target"}, names(eff))

	// Quitar una agregada la des-agrega; agregar una removida la des-remueve.
	_, err = uc.RemoveStore(ctx, b.ID, "Target")
	require.NoError(t, err)
	eff, err = uc.AddStore(ctx, b.ID, "Apple")
	require.NoError(t, err)
	assert.Equal(t, []string{"Amazon", "Apple"}, names(eff))

	raw, err := uc.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, raw.BranchChanges.AddedStores)
	assert.Empty(t, raw.BranchChanges.RemovedStores)

	_, err = uc.AddStore(ctx, b.ID, "Amazon")
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	_, err = uc.AddStore(ctx, b.ID, "Inexistente")
	assert.ErrorIs(t, err, domain.ErrStoreNotFound)
}

func TestBranch_OverridesDeDescuentoYFee(t *testing.T) {
	ctx := context.Background()
	uc := catalog.NewUseCase(newStore(t), nil)
	b := newBranch(t, uc)

	v := d(15)
	eff, err := uc.SetStoreDiscount(ctx, b.ID, "Amazon", &v)
	require.NoError(t, err)
	assert.True(t, eff.StoreDiscounts["Amazon"].Equal(d(15)))

	// El padre no cambia.
	base, err := uc.Effective(ctx, "us")
	require.NoError(t, err)
	assert.True(t, base.Catalog.StoreDiscounts["Amazon"].Equal(d(10)))

	// nil borra el override y vuelve a heredar.
	eff, err = uc.SetStoreDiscount(ctx, b.ID, "Amazon", nil)
	require.NoError(t, err)
	assert.True(t, eff.StoreDiscounts["Amazon"].Equal(d(10)))

	fee := d(3)
	eff, err = uc.SetCatalogFee(ctx, b.ID, &fee)
	require.NoError(t, err)
	require.NotNil(t, eff.CatalogFee)
	assert.True(t, eff.CatalogFee.Equal(d(3)))

	eff, err = uc.SetStoreCSS(ctx, b.ID, "Apple", " destacada ")
	require.NoError(t, err)
	assert.Equal(t, "destacada", eff.StoreCSS["Apple"])

	_, err = uc.SetStoreFee(ctx, b.ID, "Target", &fee)
	assert.ErrorIs(t, err, domain.ErrStoreNotFound)

	neg := d(-1)
	_, err = uc.SetStoreDiscount(ctx, b.ID, "Amazon", &neg)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSetOrder_BaseYRama(t *testing.T) {
	ctx := context.Background()
	uc := catalog.NewUseCase(newStore(t), nil)
	b := newBranch(t, uc)

	eff, err := uc.SetOrder(ctx, b.ID, []string{"Apple", "Apple", "Nada"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Apple", "Amazon"}, names(eff))

	base, err := uc.Get(ctx, "us")
	require.NoError(t, err)
	assert.Equal(t, []string{"Amazon", "Apple"}, base.StoreNames())

	eff, err = uc.SetOrder(ctx, "us", []string{"Apple"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Apple", "Amazon"}, names(eff))
}

func TestRemoveStore_BaseLimpiaMapas(t *testing.T) {
	ctx := context.Background()
	uc := catalog.NewUseCase(newStore(t), nil)

	eff, err := uc.RemoveStore(ctx, "us", "Amazon")
	require.NoError(t, err)
	assert.Equal(t, []string{"Apple"}, names(eff))
	_, ok := eff.StoreDiscounts["Amazon"]
	assert.False(t, ok)

	_, err = uc.RemoveStore(ctx, "us", "Amazon")
	assert.ErrorIs(t, err, domain.ErrStoreNotFound)
}

func TestDeleteBranch_ReasignaYLimpia(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	uc := catalog.NewUseCase(st, nil)
	b := newBranch(t, uc)

	_, err := st.Update(ctx, "fixture", func(s *entity.State) error {
		s.Assignments["t1"] = b.ID
		s.TenantCatalogs[entity.TenantCatalogKey{TenantID: "t1", CatalogID: b.ID}] = entity.TenantCatalogConfig{}
		s.ComboInstances["k1"] = entity.ComboInstance{ID: "k1", CatalogID: b.ID}
		s.Content[entity.ComboContentKey("k1")] = entity.Content{Description: "x"}
		s.SwapRules[b.ID] = "swap"
		return nil
	})
	require.NoError(t, err)

	res, err := uc.DeleteBranch(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"t1": "us"}, res.ReassignedTenants)

	require.NoError(t, st.View(ctx, func(s *entity.State) error {
		assert.Equal(t, "us", s.Assignments["t1"])
		assert.Empty(t, s.TenantCatalogs)
		assert.Empty(t, s.ComboInstances)
		assert.Empty(t, s.Content)
		assert.Empty(t, s.SwapRules)
		_, ok := s.Catalogs[b.ID]
		assert.False(t, ok)
		return nil
	}))

	_, err = uc.DeleteBranch(ctx, "us")
	assert.ErrorIs(t, err, domain.ErrInvalidBranch)
	_, err = uc.DeleteBranch(ctx, b.ID)
	assert.ErrorIs(t, err, domain.ErrCatalogNotFound)
}

func TestDeleteBranch_SinPadreVaAlBaseDelPais(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	_, err := st.Update(ctx, "fixture", func(s *entity.State) error {
		s.Catalogs["huerfana"] = entity.Catalog{ID: "huerfana", Country: "US", Currency: "USD", IsBranch: true, ParentID: "borrado"}
		s.Catalogs["uk-rama"] = entity.Catalog{ID: "uk-rama", Country: "UK", Currency: "GBP", IsBranch: true, ParentID: "borrado"}
		s.Assignments["t1"] = "huerfana"
		s.Assignments["t2"] = "uk-rama"
		return nil
	})
	require.NoError(t, err)
	uc := catalog.NewUseCase(st, nil)

	res, err := uc.DeleteBranch(ctx, "huerfana")
	require.NoError(t, err)
	assert.Equal(t, "us", res.ReassignedTenants["t1"])

	res, err = uc.DeleteBranch(ctx, "uk-rama")
	require.NoError(t, err)
	assert.Equal(t, "", res.ReassignedTenants["t2"])
	require.NoError(t, st.View(ctx, func(s *entity.State) error {
		_, assigned := s.Assignments["t2"]
		assert.False(t, assigned)
		return nil
	}))
}

// ── Lecturas ──────────────────────────────────────────────────────────────────

func TestList_OrdenYPaginacion(t *testing.T) {
	ctx := context.Background()
	uc := catalog.NewUseCase(newStore(t), nil)
	newBranch(t, uc)
	_, err := uc.CreateCatalog(ctx, dto.CreateCatalogRequest{Name: "Canadá", Country: "CA"})
	require.NoError(t, err)

	res, err := uc.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, res.Items, 3)
	assert.Equal(t, "CA", res.Items[0].Country)
	assert.Equal(t, "us", res.Items[1].ID)
	assert.True(t, res.Items[2].IsBranch)
	assert.Equal(t, 2, res.Items[2].StoreCount)
	assert.Equal(t, 3, res.Page.Total)

	res, err = uc.List(ctx, dto.PageRequest{Limit: 1, Offset: 2})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.True(t, res.Items[0].IsBranch)
}

func TestEffective_NoEncontrado(t *testing.T) {
	uc := catalog.NewUseCase(newStore(t), nil)
	_, err := uc.Effective(context.Background(), "nada")
	assert.ErrorIs(t, err, domain.ErrCatalogNotFound)
}

func TestMutacionFallida_NoCambiaVersion(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	uc := catalog.NewUseCase(st, nil)
	before := st.Version()

	_, err := uc.AddStore(ctx, "us", "Amazon")
	require.Error(t, err)
	assert.Equal(t, before, st.Version())
}

type countingObserver struct{ calls map[string]int }

func (o *countingObserver) Resolved(kind, source string) { o.calls[kind+"/"+source]++ }

func TestEffective_NotificaObservador(t *testing.T) {
	obs := &countingObserver{calls: map[string]int{}}
	uc := catalog.NewUseCase(newStore(t), obs)
	_, err := uc.Effective(context.Background(), "us")
	require.NoError(t, err)
	assert.Equal(t, 1, obs.calls["catalog/resolver"])
}
