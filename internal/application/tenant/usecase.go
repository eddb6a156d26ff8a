// Package tenant contiene los casos de uso de tenants: asignación de catálogo, personalización
// por catálogo (flags, eventos, tiendas ocultas, proveedor forzado) y la vista efectiva.
package tenant

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Catalogos-api/internal/application/dto"
	"github.com/jhoicas/Catalogos-api/internal/application/ports"
	"github.com/jhoicas/Catalogos-api/internal/domain"
	domcatalog "github.com/jhoicas/Catalogos-api/internal/domain/catalog"
	"github.com/jhoicas/Catalogos-api/internal/domain/entity"
	"github.com/jhoicas/Catalogos-api/internal/domain/event"
	"github.com/jhoicas/Catalogos-api/internal/domain/repository"
	"github.com/jhoicas/Catalogos-api/pkg/logger"
)

// UseCase casos de uso de tenants.
type UseCase struct {
	repo     repository.StateRepository
	cache    ports.ViewCache
	observer ports.ResolveObserver
	log      *logger.Logger
	now      func() time.Time
}

// Option configura el caso de uso.
type Option func(*UseCase)

// WithLogger define el logger para fallos no fatales (p.ej. la caché de vistas).
func WithLogger(l *logger.Logger) Option {
	return func(uc *UseCase) { uc.log = l }
}

// NewUseCase construye el caso de uso. cache y observer pueden ser nil.
func NewUseCase(repo repository.StateRepository, cache ports.ViewCache, observer ports.ResolveObserver, opts ...Option) *UseCase {
	uc := &UseCase{repo: repo, cache: cache, observer: observer, now: time.Now}
	for _, opt := range opts {
		opt(uc)
	}
	if uc.log == nil {
		uc.log = logger.Nop()
	}
	return uc
}

// List devuelve los tenants ordenados por ID.
func (uc *UseCase) List(ctx context.Context) ([]dto.TenantResponse, error) {
	st, _, err := uc.repo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TenantResponse, 0, len(st.Tenants))
	for _, t := range st.Tenants {
		out = append(out, toTenantResponse(st, t))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Get devuelve un tenant.
func (uc *UseCase) Get(ctx context.Context, tenantID string) (*dto.TenantResponse, error) {
	st, _, err := uc.repo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	t, ok := st.Tenants[tenantID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrTenantNotFound, tenantID)
	}
	res := toTenantResponse(st, t)
	return &res, nil
}

// AssignCatalog asigna el catálogo activo. Un tenant no global solo puede usar la moneda de su país.
func (uc *UseCase) AssignCatalog(ctx context.Context, tenantID, catalogID string) (*dto.TenantResponse, error) {
	var res dto.TenantResponse
	_, err := uc.repo.Update(ctx, "tenant.assign", func(s *entity.State) error {
		t, c, err := lookup(s, tenantID, catalogID)
		if err != nil {
			return err
		}
		if !t.CanUseCurrency(c.Currency) {
			return fmt.Errorf("%w: %s (%s) no puede usar %s", domain.ErrCurrencyMismatch, t.ID, t.Country, c.Currency)
		}
		s.Assignments[t.ID] = c.ID
		res = toTenantResponse(s, t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// SetNotes guarda las notas libres del tenant; vacío las borra.
func (uc *UseCase) SetNotes(ctx context.Context, tenantID, notes string) (*dto.TenantResponse, error) {
	var res dto.TenantResponse
	_, err := uc.repo.Update(ctx, "tenant.notes", func(s *entity.State) error {
		t, ok := s.Tenants[tenantID]
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrTenantNotFound, tenantID)
		}
		if strings.TrimSpace(notes) == "" {
			delete(s.TenantNotes, tenantID)
		} else {
			s.TenantNotes[tenantID] = notes
		}
		res = toTenantResponse(s, t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// View resuelve el catálogo que ve el tenant y sus combos visibles. catalogID vacío usa el asignado.
// Se cachea por epoch y versión del estado: un commit nuevo nunca sirve una vista vieja y dos
// instancias que comparten caché no se pisan aunque coincidan en versión.
func (uc *UseCase) View(ctx context.Context, tenantID, catalogID string) (*dto.TenantViewResponse, error) {
	st, version, err := uc.repo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := st.Tenants[tenantID]; !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrTenantNotFound, tenantID)
	}
	if catalogID == "" {
		assigned, ok := st.Assignments[tenantID]
		if !ok {
			return nil, fmt.Errorf("%w: %s no tiene catálogo asignado", domain.ErrCatalogNotFound, tenantID)
		}
		catalogID = assigned
	}

	key := fmt.Sprintf("view:%s:%d:%s:%s", uc.repo.Epoch(), version, tenantID, catalogID)
	if uc.cache != nil {
		var cached dto.TenantViewResponse
		found, err := uc.cache.Get(ctx, key, &cached)
		if err != nil {
			uc.log.Warn().Err(err).Str("key", key).Msg("leer vista de la caché")
		} else if found {
			uc.resolved("cache")
			return &cached, nil
		}
	}

	eff, err := domcatalog.EffectiveCatalogForTenant(st, tenantID, catalogID)
	if err != nil {
		return nil, err
	}
	combos, err := domcatalog.VisibleCombos(st, tenantID, catalogID)
	if err != nil {
		return nil, err
	}
	cfg, _ := st.TenantCatalog(entity.TenantCatalogKey{TenantID: tenantID, CatalogID: catalogID})
	ev := cfg.SelectedEvent()

	res := &dto.TenantViewResponse{
		TenantID:  tenantID,
		CatalogID: catalogID,
		EventID:   ev.ID,
		EventName: ev.Name,
		Catalog:   eff,
		Combos:    make([]dto.ComboView, 0, len(combos)),
		Version:   version,
	}
	for _, c := range combos {
		res.Combos = append(res.Combos, dto.ComboView{
			ID:            c.ID,
			Name:          c.DisplayName,
			StoreNames:    c.EffectiveStoreNames(st.MasterCombos),
			Denominations: c.Denominations,
			ImageURL:      c.ImageURL,
		})
	}
	uc.resolved("resolver")
	if uc.cache != nil {
		if err := uc.cache.Set(ctx, key, res); err != nil {
			uc.log.Warn().Err(err).Str("key", key).Msg("guardar vista en la caché")
		}
	}
	return res, nil
}

// CatalogConfig devuelve la personalización cruda del tenant sobre el catálogo.
func (uc *UseCase) CatalogConfig(ctx context.Context, tenantID, catalogID string) (*dto.TenantCatalogResponse, error) {
	st, _, err := uc.repo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if _, _, err := lookup(st, tenantID, catalogID); err != nil {
		return nil, err
	}
	cfg, _ := st.TenantCatalog(entity.TenantCatalogKey{TenantID: tenantID, CatalogID: catalogID})
	return toConfigResponse(tenantID, catalogID, cfg), nil
}

// SetFlag activa o desactiva un feature flag. Activar cualquiera crea el evento default.
func (uc *UseCase) SetFlag(ctx context.Context, tenantID, catalogID, name string, on bool) (*dto.TenantCatalogResponse, error) {
	return uc.mutate(ctx, "tenant.flag", tenantID, catalogID, func(cfg *entity.TenantCatalogConfig, now time.Time) error {
		return event.SetFlag(cfg, name, on, now)
	})
}

// ListEvents devuelve los eventos: default primero, luego por fecha de creación.
func (uc *UseCase) ListEvents(ctx context.Context, tenantID, catalogID string) ([]entity.TenantCatalogEvent, error) {
	res, err := uc.CatalogConfig(ctx, tenantID, catalogID)
	if err != nil {
		return nil, err
	}
	out := make([]entity.TenantCatalogEvent, 0, len(res.Config.Events))
	for _, ev := range res.Config.Events {
		out = append(out, ev)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if (a.ID == entity.DefaultEventID) != (b.ID == entity.DefaultEventID) {
			return a.ID == entity.DefaultEventID
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.Name < b.Name
	})
	return out, nil
}

// CreateEvent crea un evento y lo deja seleccionado.
func (uc *UseCase) CreateEvent(ctx context.Context, tenantID, catalogID, name string) (*entity.TenantCatalogEvent, error) {
	var created entity.TenantCatalogEvent
	_, err := uc.mutate(ctx, "tenant.event.create", tenantID, catalogID, func(cfg *entity.TenantCatalogConfig, now time.Time) error {
		ev, err := event.Create(cfg, uuid.New().String(), name, now)
		created = ev
		return err
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// SelectEvent selecciona el evento activo.
func (uc *UseCase) SelectEvent(ctx context.Context, tenantID, catalogID, eventID string) (*dto.TenantCatalogResponse, error) {
	return uc.mutate(ctx, "tenant.event.select", tenantID, catalogID, func(cfg *entity.TenantCatalogConfig, now time.Time) error {
		return event.Select(cfg, eventID, now)
	})
}

// DeleteEvent elimina un evento (nunca el default).
func (uc *UseCase) DeleteEvent(ctx context.Context, tenantID, catalogID, eventID string) (*dto.TenantCatalogResponse, error) {
	return uc.mutate(ctx, "tenant.event.delete", tenantID, catalogID, func(cfg *entity.TenantCatalogConfig, now time.Time) error {
		return event.Delete(cfg, eventID, now)
	})
}

// SetEventDiscount fija el descuento de una tienda en el evento ("" = seleccionado); 0 lo borra.
func (uc *UseCase) SetEventDiscount(ctx context.Context, tenantID, catalogID, eventID, storeName string, value decimal.Decimal) (*dto.TenantCatalogResponse, error) {
	return uc.mutate(ctx, "tenant.event.discount", tenantID, catalogID, func(cfg *entity.TenantCatalogConfig, now time.Time) error {
		return event.SetDiscount(cfg, eventID, storeName, value, now)
	})
}

// SetEventStores define las tiendas visibles del evento (aplican con el flag stores).
func (uc *UseCase) SetEventStores(ctx context.Context, tenantID, catalogID, eventID string, stores []string) (*dto.TenantCatalogResponse, error) {
	return uc.mutate(ctx, "tenant.event.stores", tenantID, catalogID, func(cfg *entity.TenantCatalogConfig, now time.Time) error {
		return event.SetStores(cfg, eventID, stores, now)
	})
}

// SetEventCombos define los combos visibles del evento (aplican con el flag visibility).
func (uc *UseCase) SetEventCombos(ctx context.Context, tenantID, catalogID, eventID string, combos []string) (*dto.TenantCatalogResponse, error) {
	return uc.mutate(ctx, "tenant.event.combos", tenantID, catalogID, func(cfg *entity.TenantCatalogConfig, now time.Time) error {
		return event.SetComboInstances(cfg, eventID, combos, now)
	})
}

// SetEventOrder define el orden de tiendas del evento (aplica con el flag order).
func (uc *UseCase) SetEventOrder(ctx context.Context, tenantID, catalogID, eventID string, order []string) (*dto.TenantCatalogResponse, error) {
	return uc.mutate(ctx, "tenant.event.order", tenantID, catalogID, func(cfg *entity.TenantCatalogConfig, now time.Time) error {
		return event.SetOrder(cfg, eventID, order, now)
	})
}

// SetHiddenStores define las tiendas ocultas (aplican mientras el flag stores está apagado).
func (uc *UseCase) SetHiddenStores(ctx context.Context, tenantID, catalogID string, stores []string) (*dto.TenantCatalogResponse, error) {
	return uc.mutate(ctx, "tenant.hidden", tenantID, catalogID, func(cfg *entity.TenantCatalogConfig, _ time.Time) error {
		cfg.HiddenStores = dedupe(stores)
		return nil
	})
}

// SetForcedSupplier define (o quita con nil) el proveedor forzado.
func (uc *UseCase) SetForcedSupplier(ctx context.Context, tenantID, catalogID string, supplierID *int) (*dto.TenantCatalogResponse, error) {
	if supplierID != nil {
		if _, ok := entity.SupplierNames[*supplierID]; !ok {
			return nil, fmt.Errorf("%w: proveedor %d", domain.ErrInvalidInput, *supplierID)
		}
	}
	return uc.mutate(ctx, "tenant.forced_supplier", tenantID, catalogID, func(cfg *entity.TenantCatalogConfig, _ time.Time) error {
		if supplierID == nil {
			cfg.ForcedSupplier = nil
			return nil
		}
		id := *supplierID
		cfg.ForcedSupplier = &id
		return nil
	})
}

// mutate valida tenant y catálogo, aplica fn sobre la configuración (vacía si no existe) y la guarda.
func (uc *UseCase) mutate(ctx context.Context, op, tenantID, catalogID string, fn func(cfg *entity.TenantCatalogConfig, now time.Time) error) (*dto.TenantCatalogResponse, error) {
	var res *dto.TenantCatalogResponse
	_, err := uc.repo.Update(ctx, op, func(s *entity.State) error {
		if _, _, err := lookup(s, tenantID, catalogID); err != nil {
			return err
		}
		key := entity.TenantCatalogKey{TenantID: tenantID, CatalogID: catalogID}
		cfg, _ := s.TenantCatalog(key)
		cfg = cfg.Clone()
		if err := fn(&cfg, uc.now()); err != nil {
			return err
		}
		s.TenantCatalogs[key] = cfg
		res = toConfigResponse(tenantID, catalogID, cfg)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (uc *UseCase) resolved(source string) {
	if uc.observer != nil {
		uc.observer.Resolved("tenant", source)
	}
}

func lookup(s *entity.State, tenantID, catalogID string) (entity.Tenant, entity.Catalog, error) {
	t, ok := s.Tenants[tenantID]
	if !ok {
		return entity.Tenant{}, entity.Catalog{}, fmt.Errorf("%w: %s", domain.ErrTenantNotFound, tenantID)
	}
	c, ok := s.Catalog(catalogID)
	if !ok {
		return entity.Tenant{}, entity.Catalog{}, fmt.Errorf("%w: %s", domain.ErrCatalogNotFound, catalogID)
	}
	return t, c, nil
}

func toTenantResponse(s *entity.State, t entity.Tenant) dto.TenantResponse {
	return dto.TenantResponse{Tenant: t, CatalogID: s.Assignments[t.ID], Notes: s.TenantNotes[t.ID]}
}

func toConfigResponse(tenantID, catalogID string, cfg entity.TenantCatalogConfig) *dto.TenantCatalogResponse {
	return &dto.TenantCatalogResponse{
		TenantID:   tenantID,
		CatalogID:  catalogID,
		EventState: event.StateOf(cfg).String(),
		Config:     cfg.Clone(),
	}
}

func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
