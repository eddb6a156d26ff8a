package persistence_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Catalogos-api/internal/infrastructure/persistence"
	"github.com/jhoicas/Catalogos-api/pkg/config"
	"github.com/jhoicas/Catalogos-api/pkg/logger"
)

func TestOpen_MemoriaSinPersister(t *testing.T) {
	repo, err := persistence.Open(context.Background(), config.DBConfig{Driver: config.DriverMemory})
	require.NoError(t, err)
	assert.Nil(t, repo)
}

func TestOpen_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	repo, err := persistence.Open(context.Background(), config.DBConfig{Driver: config.DriverSQLite, SQLitePath: path})
	require.NoError(t, err)
	require.NotNil(t, repo)
	defer repo.Close()

	require.NoError(t, repo.Save(context.Background(), map[string][]byte{"meta": []byte(`{"v":1}`)}))
	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":1}`, string(got["meta"]))
}

func TestOpen_DriverDesconocido(t *testing.T) {
	_, err := persistence.Open(context.Background(), config.DBConfig{Driver: "mongo"})
	assert.Error(t, err)
}

func TestLogBucketSizes_SQLite(t *testing.T) {
	ctx := context.Background()
	repo, err := persistence.Open(ctx, config.DBConfig{Driver: config.DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "state.db")})
	require.NoError(t, err)
	defer repo.Close()
	require.NoError(t, repo.Save(ctx, map[string][]byte{
		"catalogs": bytes.Repeat([]byte("x"), 2048),
		"meta":     bytes.Repeat([]byte("y"), 512),
	}))

	sizes, err := repo.(persistence.BucketSizer).BucketSizes(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2.00", sizes["catalogs"].StringFixed(2))
	assert.Equal(t, "0.50", sizes["meta"].StringFixed(2))

	var buf bytes.Buffer
	persistence.LogBucketSizes(ctx, repo, logger.New(logger.Config{Env: "production", Level: "debug", Output: &buf}))
	out := buf.String()
	assert.Contains(t, out, `"bucket":"catalogs"`)
	assert.Contains(t, out, `"total_kb":"2.50"`)
	assert.Contains(t, out, `"buckets":2`)
}

func TestLogBucketSizes_SinPersisterNoHaceNada(t *testing.T) {
	var buf bytes.Buffer
	persistence.LogBucketSizes(context.Background(), nil, logger.New(logger.Config{Env: "production", Level: "debug", Output: &buf}))
	assert.Empty(t, buf.String())
}
