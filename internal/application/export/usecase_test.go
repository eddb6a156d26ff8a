package export_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Catalogos-api/internal/application/export"
	"github.com/jhoicas/Catalogos-api/internal/application/tenant"
	"github.com/jhoicas/Catalogos-api/internal/domain"
	"github.com/jhoicas/Catalogos-api/internal/domain/entity"
	"github.com/jhoicas/Catalogos-api/internal/infrastructure/cache"
	"github.com/jhoicas/Catalogos-api/internal/infrastructure/feed"
	"github.com/jhoicas/Catalogos-api/internal/infrastructure/memory"
	"github.com/jhoicas/Catalogos-api/internal/infrastructure/pdf"
)

func newExport(t *testing.T) *export.UseCase {
	t.Helper()
	st := memory.NewStore()
	_, err := st.Update(context.Background(), "fixture", func(s *entity.State) error {
		s.Stores[entity.StoreKey{Country: "US", Name: "Amazon"}] = entity.Store{Name: "Amazon", Country: "US"}
		s.Catalogs["us"] = entity.Catalog{
			ID: "us", Name: "USA", Country: "US", Currency: "USD",
			Stores:         []entity.Store{{Name: "Amazon", Country: "US"}},
			StoreDiscounts: map[string]decimal.Decimal{"Amazon": decimal.NewFromInt(7)},
		}
		s.Tenants["t1"] = entity.Tenant{ID: "t1", Name: "Acme", Country: "US"}
		s.Assignments["t1"] = "us"
		s.ComboInstances["k1"] = entity.ComboInstance{
			ID: "k1", CatalogID: "us", DisplayName: "Todo Amazon", CustomStoreNames: []string{"Amazon"},
			Denominations: []decimal.Decimal{decimal.NewFromInt(50)}, IsActive: true,
		}
		return nil
	})
	require.NoError(t, err)
	views := tenant.NewUseCase(st, cache.Noop{}, nil)
	return export.NewUseCase(views, pdf.NewMarotoSheetGenerator(), feed.NewXMLBuilderService())
}

func TestSheet_UsaCatalogoAsignado(t *testing.T) {
	uc := newExport(t)

	sheet, err := uc.Sheet(context.Background(), "t1", "")
	require.NoError(t, err)
	assert.Equal(t, "Acme", sheet.Tenant.Name)
	require.NotNil(t, sheet.Catalog)
	assert.Equal(t, "us", sheet.Catalog.ID)
	require.Len(t, sheet.Combos, 1)
	assert.Equal(t, []string{"Amazon"}, sheet.Combos[0].StoreNames)
}

func TestPDF_Genera(t *testing.T) {
	doc, err := newExport(t).PDF(context.Background(), "t1", "us")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))
}

func TestFeed_ETagEstable(t *testing.T) {
	uc := newExport(t)
	ctx := context.Background()

	doc, etag, err := uc.Feed(ctx, "t1", "us")
	require.NoError(t, err)
	assert.Contains(t, string(doc), "<CatalogFeed")
	assert.Len(t, etag, 64)

	_, again, err := uc.Feed(ctx, "t1", "us")
	require.NoError(t, err)
	assert.Equal(t, etag, again)
}

func TestFeed_TenantInexistente(t *testing.T) {
	_, _, err := newExport(t).Feed(context.Background(), "nadie", "")
	assert.ErrorIs(t, err, domain.ErrTenantNotFound)
}
