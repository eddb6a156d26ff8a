package ports

import (
	"context"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Catalogos-api/internal/domain/entity"
)

// BlobInfo metadatos de un objeto guardado.
type BlobInfo struct {
	Key         string
	ContentType string
	Size        int64
	UpdatedAt   time.Time
}

// BlobStore almacenamiento de objetos (imágenes de tiendas y combos).
// Implementaciones: S3 y memoria.
type BlobStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (BlobInfo, error)
	Get(ctx context.Context, key string) (io.ReadCloser, BlobInfo, error)
	Delete(ctx context.Context, key string) error
	// PresignURL devuelve una URL temporal de lectura.
	PresignURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// ViewCache caché de lecturas derivadas. Get devuelve false si la clave no existe.
type ViewCache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any) error
}

// StateChanged notificación emitida después de cada commit.
type StateChanged struct {
	Op      string    `json:"op"`
	Version uint64    `json:"version"`
	At      time.Time `json:"at"`
}

// ChangePublisher publica notificaciones de cambio (Kafka o no-op).
type ChangePublisher interface {
	Publish(ctx context.Context, change StateChanged) error
	Close() error
}

// SheetCombo combo ya resuelto para exportar.
type SheetCombo struct {
	ID            string
	Name          string
	StoreNames    []string
	Denominations []decimal.Decimal
}

// CatalogSheet vista efectiva de un tenant lista para exportar (PDF o feed XML).
type CatalogSheet struct {
	Tenant      entity.Tenant
	Catalog     *entity.Catalog
	EventName   string
	Combos      []SheetCombo
	Version     uint64
	GeneratedAt time.Time
}

// SheetRenderer genera la hoja PDF del catálogo.
type SheetRenderer interface {
	Render(ctx context.Context, sheet CatalogSheet) ([]byte, error)
}

// FeedBuilder genera el feed XML para partners y su ETag (digest del XML canónico).
type FeedBuilder interface {
	Build(ctx context.Context, sheet CatalogSheet) (doc []byte, etag string, err error)
}

// ResolveObserver registra cada resolución de catálogo efectivo (kind: catalog|tenant, source: resolver|cache).
type ResolveObserver interface {
	Resolved(kind, source string)
}
