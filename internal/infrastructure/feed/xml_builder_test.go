package feed_test

import (
	"context"
	"testing"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Catalogos-api/internal/application/ports"
	"github.com/jhoicas/Catalogos-api/internal/domain/entity"
	"github.com/jhoicas/Catalogos-api/internal/infrastructure/feed"
)

func sheet(discount int64) ports.CatalogSheet {
	return ports.CatalogSheet{
		Tenant: entity.Tenant{ID: "t1", Name: "Acme", Country: "US"},
		Catalog: &entity.Catalog{
			ID: "c1", Name: "USA", Country: "US", Currency: "USD",
			Stores: []entity.Store{
				{Name: "Apple", Country: "US", Products: []entity.Product{{ID: "p1", Name: "Gift 25", Category: "tech", Price: decimal.NewFromInt(25)}}},
				{Name: "Amazon", Country: "US"},
			},
			StoreDiscounts: map[string]decimal.Decimal{"Amazon": decimal.NewFromInt(discount)},
		},
		EventName: "default",
		Combos:    []ports.SheetCombo{{ID: "k1", Name: "Tech", StoreNames: []string{"Apple"}, Denominations: []decimal.Decimal{decimal.NewFromInt(50)}}},
		Version:   3,
	}
}

func TestXMLBuilder_EstructuraYOrden(t *testing.T) {
	out, etag, err := feed.NewXMLBuilderService().Build(context.Background(), sheet(10))
	require.NoError(t, err)
	assert.Len(t, etag, 64)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))
	root := doc.SelectElement("CatalogFeed")
	require.NotNil(t, root)
	assert.Equal(t, "3", root.SelectAttrValue("version", ""))

	stores := doc.FindElements("//Stores/Store/Name")
	require.Len(t, stores, 2)
	assert.Equal(t, "Apple", stores[0].Text())
	assert.Equal(t, "Amazon", stores[1].Text())

	comboStores := doc.FindElements("//Combos/Combo/Stores/Store")
	require.Len(t, comboStores, 1)
	assert.Equal(t, "Apple", comboStores[0].Text())
	assert.Empty(t, comboStores[0].ChildElements())

	discount := doc.FindElement("//Store[Name='Amazon']/Discount")
	require.NotNil(t, discount)
	assert.Equal(t, "10.00", discount.Text())
}

func TestXMLBuilder_ETagDeterminista(t *testing.T) {
	b := feed.NewXMLBuilderService()
	_, e1, err := b.Build(context.Background(), sheet(10))
	require.NoError(t, err)
	_, e2, err := b.Build(context.Background(), sheet(10))
	require.NoError(t, err)
	_, e3, err := b.Build(context.Background(), sheet(12))
	require.NoError(t, err)

	assert.Equal(t, e1, e2)
	assert.NotEqual(t, e1, e3)
}

func TestDigest_FormaCanonica(t *testing.T) {
	a, err := feed.Digest([]byte(`<a x="1" y="2"></a>`))
	require.NoError(t, err)
	b, err := feed.Digest([]byte(`<a y='2' x='1'/>`))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestXMLBuilder_SinCatalogo(t *testing.T) {
	_, _, err := feed.NewXMLBuilderService().Build(context.Background(), ports.CatalogSheet{})
	assert.Error(t, err)
}
