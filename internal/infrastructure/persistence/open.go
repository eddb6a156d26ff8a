// Package persistence elige el SnapshotRepository según STORAGE_DRIVER.
package persistence

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Catalogos-api/internal/domain/repository"
	"github.com/jhoicas/Catalogos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Catalogos-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/Catalogos-api/pkg/config"
	"github.com/jhoicas/Catalogos-api/pkg/logger"
)

// BucketSizer lo implementan los persisters que saben informar el tamaño de sus buckets.
type BucketSizer interface {
	BucketSizes(ctx context.Context) (map[string]decimal.Decimal, error)
}

var (
	_ BucketSizer = (*postgres.SnapshotRepository)(nil)
	_ BucketSizer = (*sqlite.SnapshotRepository)(nil)
)

// Open devuelve el persister del driver configurado. Con "memory" devuelve nil (sin persistencia).
func Open(ctx context.Context, cfg config.DBConfig) (repository.SnapshotRepository, error) {
	switch cfg.Driver {
	case config.DriverMemory, "":
		return nil, nil
	case config.DriverSQLite:
		repo, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return repo, nil
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		repo, err := postgres.NewSnapshotRepository(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("driver de almacenamiento desconocido %q", cfg.Driver)
	}
}

// LogBucketSizes registra el tamaño en KB de cada bucket y el total. Un fallo solo se advierte.
func LogBucketSizes(ctx context.Context, repo repository.SnapshotRepository, log *logger.Logger) {
	sizer, ok := repo.(BucketSizer)
	if !ok {
		return
	}
	sizes, err := sizer.BucketSizes(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("tamaño de los buckets")
		return
	}
	names := make([]string, 0, len(sizes))
	for name := range sizes {
		names = append(names, name)
	}
	sort.Strings(names)
	total := decimal.Zero
	for _, name := range names {
		total = total.Add(sizes[name])
		log.Debug().Str("bucket", name).Str("size_kb", sizes[name].StringFixed(2)).Msg("bucket")
	}
	log.Info().Int("buckets", len(names)).Str("total_kb", total.StringFixed(2)).Msg("snapshot persistido")
}
