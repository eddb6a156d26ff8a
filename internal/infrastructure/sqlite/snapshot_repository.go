// Package sqlite persiste los snapshots del estado en un archivo SQLite (driver puro Go).
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // driver "sqlite"

	"github.com/jhoicas/Catalogos-api/internal/domain/repository"
)

var _ repository.SnapshotRepository = (*SnapshotRepository)(nil)

// SnapshotRepository guarda cada bucket como una fila de catalog_state.
type SnapshotRepository struct {
	db   *sql.DB
	path string
}

// Open abre (o crea) la base en path y asegura la tabla.
func Open(ctx context.Context, path string) (*SnapshotRepository, error) {
	if path == "" {
		path = "catalogos.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("crear directorio: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite: %w", err)
	}
	// Un solo escritor; evita SQLITE_BUSY entre conexiones del pool.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS catalog_state (
		bucket  TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("crear tabla catalog_state: %w", err)
	}
	return &SnapshotRepository{db: db, path: path}, nil
}

// Load devuelve todos los buckets guardados.
func (r *SnapshotRepository) Load(ctx context.Context) (map[string][]byte, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT bucket, payload FROM catalog_state`)
	if err != nil {
		return nil, fmt.Errorf("select catalog_state: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := map[string][]byte{}
	for rows.Next() {
		var (
			bucket  string
			payload []byte
		)
		if err := rows.Scan(&bucket, &payload); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out[bucket] = payload
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterar catalog_state: %w", err)
	}
	return out, nil
}

// Save escribe todos los buckets en una transacción.
func (r *SnapshotRepository) Save(ctx context.Context, buckets map[string][]byte) (retErr error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	for bucket, payload := range buckets {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO catalog_state(bucket, payload) VALUES(?, ?)
			 ON CONFLICT(bucket) DO UPDATE SET payload = excluded.payload`,
			bucket, payload,
		); err != nil {
			return fmt.Errorf("upsert %s: %w", bucket, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// BucketSizes devuelve el tamaño en KB de cada bucket guardado (diagnóstico).
func (r *SnapshotRepository) BucketSizes(ctx context.Context) (map[string]decimal.Decimal, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT bucket, length(payload) FROM catalog_state ORDER BY bucket`)
	if err != nil {
		return nil, fmt.Errorf("select tamaños: %w", err)
	}
	defer rows.Close()
	kb := decimal.NewFromInt(1024)
	out := map[string]decimal.Decimal{}
	for rows.Next() {
		var (
			bucket string
			size   int64
		)
		if err := rows.Scan(&bucket, &size); err != nil {
			return nil, fmt.Errorf("scan tamaños: %w", err)
		}
		out[bucket] = decimal.NewFromInt(size).Div(kb).Round(2)
	}
	return out, rows.Err()
}

// Close cierra la base.
func (r *SnapshotRepository) Close() error { return r.db.Close() }

// Path ruta del archivo.
func (r *SnapshotRepository) Path() string { return r.path }
