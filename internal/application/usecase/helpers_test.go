package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Catalogos-api/internal/domain/entity"
	"github.com/jhoicas/Catalogos-api/internal/infrastructure/memory"
	"github.com/jhoicas/Catalogos-api/internal/infrastructure/seed"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// demoStore store cargado con los datos de demostración.
func demoStore(t *testing.T) *memory.Store {
	t.Helper()
	st := memory.NewStore()
	_, err := st.Update(context.Background(), "fixture", func(s *entity.State) error {
		*s = *seed.Demo(fixedNow, nil)
		return nil
	})
	require.NoError(t, err)
	return st
}

func state(t *testing.T, st *memory.Store) *entity.State {
	t.Helper()
	s, _, err := st.Snapshot(context.Background())
	require.NoError(t, err)
	return s
}

func ptr[T any](v T) *T { return &v }
