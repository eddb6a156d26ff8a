package postgres

import (
	"context"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Catalogos-api/internal/domain/repository"
)

var _ repository.SnapshotRepository = (*SnapshotRepository)(nil)

const (
	createStateTable = `CREATE TABLE IF NOT EXISTS catalog_state (
		bucket     TEXT PRIMARY KEY,
		payload    JSONB NOT NULL,
		size_kb    NUMERIC(12,3) NOT NULL DEFAULT 0,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`
	selectState = `SELECT bucket, payload FROM catalog_state`
	upsertState = `INSERT INTO catalog_state (bucket, payload, size_kb, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (bucket) DO UPDATE
		SET payload = EXCLUDED.payload, size_kb = EXCLUDED.size_kb, updated_at = EXCLUDED.updated_at`
	selectSizes = `SELECT bucket, size_kb FROM catalog_state ORDER BY bucket`
)

// SnapshotRepository persiste los buckets del estado en la tabla catalog_state (JSONB).
type SnapshotRepository struct {
	pool *pgxpool.Pool
	tx   *TxRunner
}

// NewSnapshotRepository construye el repositorio y asegura la tabla.
func NewSnapshotRepository(ctx context.Context, pool *pgxpool.Pool) (*SnapshotRepository, error) {
	if _, err := pool.Exec(ctx, createStateTable); err != nil {
		return nil, fmt.Errorf("crear tabla catalog_state: %w", err)
	}
	return &SnapshotRepository{pool: pool, tx: NewTxRunner(pool)}, nil
}

// Load devuelve todos los buckets.
func (r *SnapshotRepository) Load(ctx context.Context) (map[string][]byte, error) {
	rows, err := r.pool.Query(ctx, selectState)
	if err != nil {
		return nil, fmt.Errorf("select catalog_state: %w", err)
	}
	defer rows.Close()

	out := map[string][]byte{}
	for rows.Next() {
		var (
			bucket  string
			payload []byte
		)
		if err := rows.Scan(&bucket, &payload); err != nil {
			return nil, fmt.Errorf("scan catalog_state: %w", err)
		}
		out[bucket] = payload
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterar catalog_state: %w", err)
	}
	return out, nil
}

// Save escribe todos los buckets en una sola transacción.
func (r *SnapshotRepository) Save(ctx context.Context, buckets map[string][]byte) error {
	names := make([]string, 0, len(buckets))
	for name := range buckets {
		names = append(names, name)
	}
	sort.Strings(names)
	return r.tx.Run(ctx, func(q Querier) error {
		for _, name := range names {
			payload := buckets[name]
			sizeKB := decimal.NewFromInt(int64(len(payload))).Div(decimal.NewFromInt(1024)).Round(3)
			if _, err := q.Exec(ctx, upsertState, name, payload, sizeKB); err != nil {
				return fmt.Errorf("upsert %s: %w", name, err)
			}
		}
		return nil
	})
}

// BucketSizes devuelve el tamaño en KB de cada bucket guardado (diagnóstico).
func (r *SnapshotRepository) BucketSizes(ctx context.Context) (map[string]decimal.Decimal, error) {
	rows, err := r.pool.Query(ctx, selectSizes)
	if err != nil {
		return nil, fmt.Errorf("select tamaños: %w", err)
	}
	defer rows.Close()
	out := map[string]decimal.Decimal{}
	for rows.Next() {
		var (
			bucket string
			size   decimal.Decimal
		)
		if err := rows.Scan(&bucket, &size); err != nil {
			return nil, fmt.Errorf("scan tamaños: %w", err)
		}
		out[bucket] = size
	}
	return out, rows.Err()
}

// Close cierra el pool.
func (r *SnapshotRepository) Close() error {
	r.pool.Close()
	return nil
}
