package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Catalogos-api/internal/domain/catalog"
	"github.com/jhoicas/Catalogos-api/internal/domain/entity"
	"github.com/jhoicas/Catalogos-api/internal/infrastructure/memory"
	"github.com/jhoicas/Catalogos-api/internal/infrastructure/sqlite"
)

func TestSnapshotRepository_SaveLoad(t *testing.T) {
	ctx := context.Background()
	repo, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "nested", "state.db"))
	require.NoError(t, err)
	defer repo.Close()

	empty, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, repo.Save(ctx, map[string][]byte{"a": []byte(`{"x":1}`), "b": []byte(`[]`)}))
	require.NoError(t, repo.Save(ctx, map[string][]byte{"a": []byte(`{"x":2}`)}))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"x":2}`, string(got["a"]))
	assert.Equal(t, `[]`, string(got["b"]))
}

func TestSnapshotRepository_EstadoSobreviveReinicio(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.db")

	repo, err := sqlite.Open(ctx, path)
	require.NoError(t, err)
	store := memory.NewStore(memory.WithPersister(repo))
	_, err = store.Update(ctx, "seed", func(s *entity.State) error {
		amazon := entity.Store{Name: "Amazon", Country: "US"}
		apple := entity.Store{Name: "Apple", Country: "US"}
		s.Stores[amazon.Key()] = amazon
		s.Stores[apple.Key()] = apple
		s.Catalogs["usd"] = entity.Catalog{ID: "usd", Country: "US", Currency: "USD",
			Stores:         []entity.Store{amazon, apple},
			StoreDiscounts: map[string]decimal.Decimal{"Amazon": decimal.NewFromInt(5)}}
		changes := entity.NewBranchChanges()
		changes.RemovedStores = []string{"Apple"}
		changes.DiscountOverrides["Amazon"] = decimal.NewFromInt(10)
		s.Catalogs["b1"] = entity.Catalog{ID: "b1", Country: "US", Currency: "USD", IsBranch: true, ParentID: "usd", BranchChanges: changes}
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	reopened, err := sqlite.Open(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()
	restored := memory.NewStore(memory.WithPersister(reopened))
	require.NoError(t, restored.Load(ctx))
	assert.Equal(t, uint64(1), restored.Version())

	require.NoError(t, restored.View(ctx, func(s *entity.State) error {
		out, err := catalog.EffectiveCatalog(s, "b1")
		require.NoError(t, err)
		require.Len(t, out.Stores, 1)
		assert.Equal(t, "Amazon", out.Stores[0].Name)
		assert.True(t, out.StoreDiscounts["Amazon"].Equal(decimal.NewFromInt(10)))
		return nil
	}))
}
