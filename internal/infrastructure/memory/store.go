// Package memory implementa el almacén de entidades: un único entity.State protegido por un RWMutex.
// Cada Update trabaja sobre una copia, la persiste (si hay SnapshotRepository) y recién entonces la publica.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Catalogos-api/internal/domain/entity"
	"github.com/jhoicas/Catalogos-api/internal/domain/repository"
	"github.com/jhoicas/Catalogos-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Catalogos-api/internal/infrastructure/snapshot"
	"github.com/jhoicas/Catalogos-api/pkg/logger"
)

var _ repository.StateRepository = (*Store)(nil)

// CommitHook se invoca después de cada commit exitoso, fuera del lock.
type CommitHook func(ctx context.Context, op string, version uint64)

// Store almacén en memoria con persistencia opcional por snapshots.
type Store struct {
	mu      sync.RWMutex
	state   *entity.State
	version uint64
	epoch   string

	persister repository.SnapshotRepository
	metrics   *metrics.Metrics
	log       *logger.Logger
	hooksMu   sync.RWMutex
	hooks     []CommitHook
}

// Option configura el Store.
type Option func(*Store)

// WithPersister persiste un snapshot completo en cada commit.
func WithPersister(p repository.SnapshotRepository) Option {
	return func(s *Store) { s.persister = p }
}

// WithMetrics registra commits y fallos de persistencia.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// WithLogger define el logger del store.
func WithLogger(l *logger.Logger) Option {
	return func(s *Store) { s.log = l }
}

// NewStore crea un store vacío.
func NewStore(opts ...Option) *Store {
	s := &Store{state: entity.NewState(), epoch: uuid.New().String()}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	return s
}

// OnCommit agrega un hook de commit.
func (s *Store) OnCommit(h CommitHook) {
	s.hooksMu.Lock()
	defer s.hooksMu.Unlock()
	s.hooks = append(s.hooks, h)
}

// Load hidrata el estado desde el persister. Migra snapshots viejos y los reescribe en el esquema actual.
// Buckets corruptos se registran como advertencia y quedan vacíos.
func (s *Store) Load(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}
	raw, err := s.persister.Load(ctx)
	if err != nil {
		return fmt.Errorf("cargar snapshot: %w", err)
	}
	st, rep, err := snapshot.Decode(raw)
	if err != nil {
		return fmt.Errorf("decodificar snapshot: %w", err)
	}
	for _, bucket := range rep.Corrupt {
		s.log.Warn().Str("bucket", bucket).Msg("bucket corrupto en el snapshot, se usa vacío")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = st
	s.version = rep.StateVersion
	s.epoch = uuid.New().String()
	if rep.Migrated {
		s.log.Info().Int("from", rep.FromVersion).Int("to", snapshot.SchemaVersion).Msg("snapshot migrado")
		if err := s.persistLocked(ctx, st, s.version); err != nil {
			return err
		}
	}
	s.log.Info().Uint64("version", s.version).Int("catalogs", len(st.Catalogs)).Int("tenants", len(st.Tenants)).Msg("estado cargado")
	return nil
}

// View ejecuta fn con el estado actual bajo lock de lectura.
func (s *Store) View(ctx context.Context, fn func(st *entity.State) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.state)
}

// Snapshot devuelve el estado vigente y su versión. Los commits nunca modifican un estado ya
// publicado (lo reemplazan), así que el valor sigue siendo consistente después de liberar el lock.
// El llamador no debe modificarlo.
func (s *Store) Snapshot(ctx context.Context) (*entity.State, uint64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state, s.version, nil
}

// Update aplica fn sobre una copia del estado. Los commits se serializan.
func (s *Store) Update(ctx context.Context, op string, fn func(st *entity.State) error) (uint64, error) {
	started := time.Now()
	version, err := s.commit(ctx, op, fn)
	s.metrics.ObserveCommit(op, started, version, err)
	if err != nil {
		return 0, err
	}
	s.log.Debug().Str("op", op).Uint64("version", version).Dur("took", time.Since(started)).Msg("commit")

	s.hooksMu.RLock()
	hooks := append([]CommitHook(nil), s.hooks...)
	s.hooksMu.RUnlock()
	for _, h := range hooks {
		h(ctx, op, version)
	}
	return version, nil
}

func (s *Store) commit(ctx context.Context, op string, fn func(st *entity.State) error) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Clone()
	if err := fn(next); err != nil {
		return 0, err
	}
	next.Normalize()
	version := s.version + 1
	if err := s.persistLocked(ctx, next, version); err != nil {
		s.log.Error().Err(err).Str("op", op).Msg("persistir snapshot")
		return 0, err
	}
	s.state = next
	s.version = version
	return version, nil
}

func (s *Store) persistLocked(ctx context.Context, st *entity.State, version uint64) error {
	if s.persister == nil {
		return nil
	}
	buckets, err := snapshot.Encode(st, version)
	if err != nil {
		return err
	}
	if err := s.persister.Save(ctx, buckets); err != nil {
		s.metrics.PersistFailed()
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	return nil
}

// ErrPersist envuelve los fallos de persistencia; el estado en memoria no cambia.
var ErrPersist = errors.New("no se pudo persistir el estado")

// Version devuelve la versión actual.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Epoch devuelve el identificador de esta instancia del estado. Cambia en NewStore y en cada Load.
func (s *Store) Epoch() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.epoch
}

// Empty informa si no hay catálogos ni tenants (p.ej. para cargar datos demo).
func (s *Store) Empty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.state.Catalogs) == 0 && len(s.state.Tenants) == 0
}
