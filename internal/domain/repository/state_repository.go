package repository

import (
	"context"

	"github.com/jhoicas/Catalogos-api/internal/domain/entity"
)

// StateRepository es el puerto del almacén de entidades: un único estado en memoria
// que se lee con View y se modifica con Update (copia, mutación, persistencia y reemplazo).
type StateRepository interface {
	// View ejecuta fn con una vista de solo lectura. fn no debe modificar ni retener el estado.
	View(ctx context.Context, fn func(s *entity.State) error) error
	// Snapshot devuelve el estado publicado y su versión, consistentes entre sí. Es inmutable.
	Snapshot(ctx context.Context) (*entity.State, uint64, error)
	// Update ejecuta fn sobre una copia del estado. Si fn y la persistencia terminan bien,
	// la copia reemplaza al estado actual y se devuelve la nueva versión.
	Update(ctx context.Context, op string, fn func(s *entity.State) error) (uint64, error)
	// Version devuelve la versión actual; crece en cada Update exitoso.
	Version() uint64
	// Epoch identifica la instancia del estado (proceso y carga). Dos stores distintos pueden
	// compartir versión, nunca epoch.
	Epoch() string
}

// SnapshotRepository persiste el estado completo como buckets (nombre → JSON) en una sola transacción.
type SnapshotRepository interface {
	Load(ctx context.Context) (map[string][]byte, error)
	Save(ctx context.Context, buckets map[string][]byte) error
	Close() error
}
