package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Catalogos-api/internal/application/ports"
	"github.com/jhoicas/Catalogos-api/internal/domain/entity"
	"github.com/jhoicas/Catalogos-api/internal/infrastructure/pdf"
)

func TestMarotoSheetGenerator_GeneraPDF(t *testing.T) {
	fee := decimal.NewFromInt(2)
	sheet := ports.CatalogSheet{
		Tenant: entity.Tenant{ID: "t1", Name: "Acme", Country: "US"},
		Catalog: &entity.Catalog{
			ID: "c1", Name: "USA", Country: "US", Currency: "USD",
			Stores:         []entity.Store{{Name: "Amazon", Country: "US"}, {Name: "Apple", Country: "US"}},
			StoreDiscounts: map[string]decimal.Decimal{"Amazon": decimal.NewFromInt(10)},
			StoreFees:      map[string]decimal.Decimal{},
			CatalogFee:     &fee,
		},
		EventName:   "Black Friday",
		Combos:      []ports.SheetCombo{{ID: "x", Name: "Tech", StoreNames: []string{"Apple"}, Denominations: []decimal.Decimal{decimal.NewFromInt(25)}}},
		Version:     7,
		GeneratedAt: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
	}

	out, err := pdf.NewMarotoSheetGenerator().Render(context.Background(), sheet)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestMarotoSheetGenerator_SinCatalogo(t *testing.T) {
	_, err := pdf.NewMarotoSheetGenerator().Render(context.Background(), ports.CatalogSheet{})
	assert.Error(t, err)
}
