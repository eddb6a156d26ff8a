package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Catalogos-api/internal/domain/entity"
	"github.com/jhoicas/Catalogos-api/internal/infrastructure/memory"
	"github.com/jhoicas/Catalogos-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Catalogos-api/internal/infrastructure/snapshot"
)

// fakePersister guarda el último snapshot en memoria; failNext fuerza un error en Save.
type fakePersister struct {
	mu       sync.Mutex
	saved    map[string][]byte
	saves    int
	failNext bool
}

func (f *fakePersister) Load(context.Context) (map[string][]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saved, nil
}

func (f *fakePersister) Save(_ context.Context, b map[string][]byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failNext {
		f.failNext = false
		return errors.New("disco lleno")
	}
	f.saved = b
	f.saves++
	return nil
}

func (f *fakePersister) Close() error { return nil }

func addTenant(id string) func(*entity.State) error {
	return func(s *entity.State) error {
		s.Tenants[id] = entity.Tenant{ID: id, Name: id, Country: "US"}
		return nil
	}
}

func TestStore_UpdateIncrementaVersionYPersiste(t *testing.T) {
	p := &fakePersister{}
	s := memory.NewStore(memory.WithPersister(p), memory.WithMetrics(metrics.New("test")))
	ctx := context.Background()

	v, err := s.Update(ctx, "tenant.create", addTenant("t1"))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), v)
	assert.Equal(t, uint64(1), s.Version())
	assert.Equal(t, 1, p.saves)
	assert.Contains(t, p.saved, snapshot.MetaBucket)
}

func TestStore_ErrorEnFnNoCambiaNada(t *testing.T) {
	p := &fakePersister{}
	s := memory.NewStore(memory.WithPersister(p))
	ctx := context.Background()

	boom := errors.New("validación")
	_, err := s.Update(ctx, "x", func(st *entity.State) error {
		st.Tenants["t1"] = entity.Tenant{ID: "t1"}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, uint64(0), s.Version())
	assert.Equal(t, 0, p.saves)
	require.NoError(t, s.View(ctx, func(st *entity.State) error {
		assert.Empty(t, st.Tenants, "la copia descartada no se publica")
		return nil
	}))
}

func TestStore_FalloDePersistenciaNoPublica(t *testing.T) {
	p := &fakePersister{failNext: true}
	s := memory.NewStore(memory.WithPersister(p))
	ctx := context.Background()

	_, err := s.Update(ctx, "tenant.create", addTenant("t1"))
	assert.ErrorIs(t, err, memory.ErrPersist)
	assert.True(t, s.Empty())

	_, err = s.Update(ctx, "tenant.create", addTenant("t1"))
	require.NoError(t, err)
	assert.False(t, s.Empty())
}

func TestStore_LoadRecuperaEstadoYVersion(t *testing.T) {
	p := &fakePersister{}
	ctx := context.Background()
	first := memory.NewStore(memory.WithPersister(p))
	_, err := first.Update(ctx, "a", addTenant("t1"))
	require.NoError(t, err)
	_, err = first.Update(ctx, "b", addTenant("t2"))
	require.NoError(t, err)

	second := memory.NewStore(memory.WithPersister(p))
	require.NoError(t, second.Load(ctx))
	assert.Equal(t, uint64(2), second.Version())
	require.NoError(t, second.View(ctx, func(st *entity.State) error {
		assert.Len(t, st.Tenants, 2)
		return nil
	}))
}

func TestStore_EpochDistintoPorInstanciaYCarga(t *testing.T) {
	p := &fakePersister{}
	ctx := context.Background()
	first := memory.NewStore(memory.WithPersister(p))
	second := memory.NewStore(memory.WithPersister(p))
	require.NotEmpty(t, first.Epoch())
	assert.NotEqual(t, first.Epoch(), second.Epoch())

	_, err := first.Update(ctx, "a", addTenant("t1"))
	require.NoError(t, err)
	before := first.Epoch()

	require.NoError(t, second.Load(ctx))
	assert.NotEqual(t, before, second.Epoch())
	assert.Equal(t, before, first.Epoch(), "un commit no cambia el epoch")
}

func TestStore_LoadMigraYReescribe(t *testing.T) {
	p := &fakePersister{saved: map[string][]byte{
		"hidden_stores": []byte(`{"t1": {"usd": ["Apple"]}}`),
	}}
	s := memory.NewStore(memory.WithPersister(p))
	require.NoError(t, s.Load(context.Background()))

	assert.Equal(t, 1, p.saves, "el snapshot migrado se reescribe")
	assert.Contains(t, p.saved, snapshot.MetaBucket)
	require.NoError(t, s.View(context.Background(), func(st *entity.State) error {
		cfg := st.TenantCatalogs[entity.TenantCatalogKey{TenantID: "t1", CatalogID: "usd"}]
		assert.Equal(t, []string{"Apple"}, cfg.HiddenStores)
		return nil
	}))
}

func TestStore_HooksRecibenOperacionYVersion(t *testing.T) {
	s := memory.NewStore()
	var got []string
	var versions []uint64
	s.OnCommit(func(_ context.Context, op string, v uint64) {
		got = append(got, op)
		versions = append(versions, v)
	})
	ctx := context.Background()
	_, err := s.Update(ctx, "uno", addTenant("t1"))
	require.NoError(t, err)
	_, err = s.Update(ctx, "falla", func(*entity.State) error { return errors.New("x") })
	require.Error(t, err)
	_, err = s.Update(ctx, "dos", addTenant("t2"))
	require.NoError(t, err)

	assert.Equal(t, []string{"uno", "dos"}, got)
	assert.Equal(t, []uint64{1, 2}, versions)
}

func TestStore_ContextoCancelado(t *testing.T) {
	s := memory.NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Update(ctx, "x", addTenant("t1"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, s.View(ctx, func(*entity.State) error { return nil }), context.Canceled)
}

func TestStore_CommitsConcurrentesSeSerializan(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.Update(ctx, "inc", func(st *entity.State) error {
				st.TenantNotes["contador"] += "x"
				return nil
			})
			assert.NoError(t, err)
			_ = s.View(ctx, func(st *entity.State) error { _ = len(st.TenantNotes); return nil })
		}(i)
	}
	wg.Wait()
	assert.Equal(t, uint64(50), s.Version())
	require.NoError(t, s.View(ctx, func(st *entity.State) error {
		assert.Len(t, st.TenantNotes["contador"], 50)
		return nil
	}))
}

func TestStore_SnapshotEsEstable(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	_, err := s.Update(ctx, "t1", addTenant("t1"))
	require.NoError(t, err)

	snap, v, err := s.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), v)

	_, err = s.Update(ctx, "t2", addTenant("t2"))
	require.NoError(t, err)

	// El snapshot anterior no ve el commit nuevo.
	assert.Len(t, snap.Tenants, 1)
	next, v2, err := s.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), v2)
	assert.Len(t, next.Tenants, 2)
}
