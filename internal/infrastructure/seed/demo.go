// Package seed arma el conjunto de datos de demostración (tenants, tiendas, catálogos, combos).
// Todo es determinista: mismos parámetros, mismo estado.
package seed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Catalogos-api/internal/domain/entity"
	"github.com/jhoicas/Catalogos-api/internal/domain/repository"
	"github.com/jhoicas/Catalogos-api/internal/domain/supplier"
)

// Countries países incluidos en la demo.
var Countries = []string{"US", "CA", "UK", "AU"}

var brands = map[string][]string{
	"US": {"Amazon", "Apple", "Target", "Walmart", "Starbucks", "Nike", "Best Buy", "Home Depot", "Uber", "Netflix", "Sephora", "Total Wine"},
	"CA": {"Amazon", "Apple", "Tim Hortons", "Roots", "Canadian Tire", "Indigo", "Cineplex", "Best Buy", "Sephora", "Uber", "Netflix", "LCBO"},
	"UK": {"Amazon", "Apple", "Tesco", "Argos", "John Lewis", "Boots", "Marks & Spencer", "Currys", "Nike", "Uber", "Netflix", "Majestic Wine"},
	"AU": {"Amazon", "Apple", "JB Hi-Fi", "Woolworths", "Coles", "Myer", "David Jones", "Bunnings", "Uber", "Netflix", "Sephora", "Dan Murphy's"},
}

var categories = []entity.Category{
	{ID: "retail", Name: "Retail"},
	{ID: "tech", Name: "Tecnología"},
	{ID: "food", Name: "Comida y bebida"},
	{ID: "entertainment", Name: "Entretenimiento"},
	{ID: "travel", Name: "Viajes"},
	{ID: "alcohol", Name: "Bebidas alcohólicas"},
}

var brandCategory = map[string]string{
	"Apple": "tech", "Best Buy": "tech", "Currys": "tech", "JB Hi-Fi": "tech",
	"Starbucks": "food", "Tim Hortons": "food", "Tesco": "food", "Woolworths": "food", "Coles": "food",
	"Netflix": "entertainment", "Cineplex": "entertainment",
	"Uber": "travel",
	"Total Wine": "alcohol", "LCBO": "alcohol", "Majestic Wine": "alcohol", "Dan Murphy's": "alcohol",
}

var tenantNames = []struct{ id, name, country string }{
	{"acme", "Acme Rewards", "US"},
	{"globex", "Globex Perks", "US"},
	{"initech", "Initech Benefits", "US"},
	{"maple", "Maple Loyalty", "CA"},
	{"northwind", "Northwind Incentives", "CA"},
	{"thames", "Thames Rewards", "UK"},
	{"pennylane", "Penny Lane Club", "UK"},
	{"outback", "Outback Perks", "AU"},
}

// Demo construye el estado de demostración. globalTenants marca tenants con acceso a cualquier moneda.
func Demo(now time.Time, globalTenants []string) *entity.State {
	st := entity.NewState()
	global := map[string]bool{}
	for _, id := range globalTenants {
		global[id] = true
	}

	for _, c := range categories {
		st.Categories[c.ID] = c
	}

	for _, country := range Countries {
		currency := entity.CurrencyForCountry(country)
		catalog := entity.Catalog{
			ID:             "base-" + strings.ToLower(country),
			Name:           country + " " + currency,
			Country:        country,
			Currency:       currency,
			StoreDiscounts: map[string]decimal.Decimal{},
			StoreCSS:       map[string]string{},
			StoreFees:      map[string]decimal.Decimal{},
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		for i, name := range brands[country] {
			store := entity.Store{Name: name, Country: country, Products: products(country, name)}
			st.Stores[store.Key()] = store
			st.StoreSuppliers[store.Key()] = supplier.Generate(store.Key())
			catalog.Stores = append(catalog.Stores, store)
			if i%3 == 0 {
				catalog.StoreDiscounts[name] = decimal.NewFromInt(int64(5 + i))
			}
		}
		st.Catalogs[catalog.ID] = catalog

		master := entity.MasterCombo{
			ID:         "combo-" + strings.ToLower(country),
			Name:       "Favoritos " + country,
			Currency:   currency,
			StoreNames: []string{"Amazon", "Apple", "Netflix"},
			IsActive:   true,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		st.MasterCombos[master.ID] = master
		masterID := master.ID
		instance := entity.ComboInstance{
			ID:            "inst-" + strings.ToLower(country),
			CatalogID:     catalog.ID,
			MasterComboID: &masterID,
			DisplayName:   master.Name,
			Denominations: []decimal.Decimal{decimal.NewFromInt(25), decimal.NewFromInt(50), decimal.NewFromInt(100)},
			IsActive:      true,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		st.ComboInstances[instance.ID] = instance
	}

	for _, t := range tenantNames {
		st.Tenants[t.id] = entity.Tenant{ID: t.id, Name: t.name, Country: t.country, Global: global[t.id]}
		st.Assignments[t.id] = "base-" + strings.ToLower(t.country)
	}

	st.SwapLists["swap-us"] = entity.SwapList{
		ID:                      "swap-us",
		Name:                    "Canje sin alcohol",
		TenantID:                "acme",
		BaseCurrency:            "USD",
		ApplyAlcoholExclusion:   true,
		ApplyLowMarginExclusion: true,
		Status:                  entity.SwapListActive,
		DateModified:            now,
	}
	st.SwapRules["base-us"] = "swap-us"
	return st
}

// products genera tres productos por tienda con precios y márgenes fijos.
func products(country, brand string) []entity.Product {
	category := brandCategory[brand]
	if category == "" {
		category = "retail"
	}
	slug := strings.NewReplacer(" ", "-", "'", "", "&", "and").Replace(strings.ToLower(brand))
	out := make([]entity.Product, 0, 3)
	for i, amount := range []int64{25, 50, 100} {
		out = append(out, entity.Product{
			ID:           fmt.Sprintf("%s-%s-%d", strings.ToLower(country), slug, amount),
			Name:         fmt.Sprintf("%s %d", brand, amount),
			Category:     category,
			Price:        decimal.NewFromInt(amount),
			Margin:       decimal.New(int64(300+len(brand)*50+i*100), -2),
			Alcohol:      category == "alcohol",
			ComboProduct: i == 2 && brand == "Amazon",
		})
	}
	return out
}

// Load reemplaza el estado del repositorio con la demo si está vacío.
// Devuelve false si ya había datos.
func Load(ctx context.Context, repo repository.StateRepository, now time.Time, globalTenants []string) (bool, error) {
	loaded := false
	_, err := repo.Update(ctx, "seed.demo", func(s *entity.State) error {
		if len(s.Tenants) > 0 || len(s.Catalogs) > 0 {
			return nil
		}
		*s = *Demo(now, globalTenants)
		loaded = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("cargar demo: %w", err)
	}
	return loaded, nil
}
