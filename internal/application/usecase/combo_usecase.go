package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Catalogos-api/internal/application/dto"
	"github.com/jhoicas/Catalogos-api/internal/domain"
	"github.com/jhoicas/Catalogos-api/internal/domain/entity"
	"github.com/jhoicas/Catalogos-api/internal/domain/repository"
)

// ComboUseCase CRUD de combos maestros e instancias por catálogo.
type ComboUseCase struct {
	repo repository.StateRepository
	now  func() time.Time
}

// NewComboUseCase construye el caso de uso.
func NewComboUseCase(repo repository.StateRepository) *ComboUseCase {
	return &ComboUseCase{repo: repo, now: time.Now}
}

// ── Maestros ──────────────────────────────────────────────────────────────────

// ListMasters lista los maestros (filtrados por moneda si se indica) ordenados por nombre.
func (uc *ComboUseCase) ListMasters(ctx context.Context, currency string) ([]entity.MasterCombo, error) {
	st, _, err := uc.repo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	out := []entity.MasterCombo{}
	for _, m := range st.MasterCombos {
		if currency == "" || m.Currency == currency {
			out = append(out, m.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// GetMaster devuelve un maestro.
func (uc *ComboUseCase) GetMaster(ctx context.Context, id string) (*entity.MasterCombo, error) {
	st, _, err := uc.repo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	m, ok := st.MasterCombos[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrComboNotFound, id)
	}
	m = m.Clone()
	return &m, nil
}

// CreateMaster crea un maestro. Sus tiendas deben existir en algún país de la moneda.
func (uc *ComboUseCase) CreateMaster(ctx context.Context, in dto.MasterComboRequest) (*entity.MasterCombo, error) {
	now := uc.now()
	m := entity.MasterCombo{ID: uuid.New().String(), CreatedAt: now}
	return uc.saveMaster(ctx, "combo.master.create", m, in, false)
}

// UpdateMaster reemplaza los datos de un maestro existente.
func (uc *ComboUseCase) UpdateMaster(ctx context.Context, id string, in dto.MasterComboRequest) (*entity.MasterCombo, error) {
	return uc.saveMaster(ctx, "combo.master.update", entity.MasterCombo{ID: id}, in, true)
}

func (uc *ComboUseCase) saveMaster(ctx context.Context, op string, m entity.MasterCombo, in dto.MasterComboRequest, existing bool) (*entity.MasterCombo, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: nombre requerido", domain.ErrInvalidInput)
	}
	stores := dedupe(in.StoreNames)
	if len(stores) == 0 {
		return nil, fmt.Errorf("%w: el combo necesita al menos una tienda", domain.ErrInvalidInput)
	}
	countries := entity.CountriesForCurrency(in.Currency)
	if len(countries) == 0 {
		return nil, fmt.Errorf("%w: moneda desconocida %q", domain.ErrInvalidInput, in.Currency)
	}

	_, err := uc.repo.Update(ctx, op, func(s *entity.State) error {
		if existing {
			prev, ok := s.MasterCombos[m.ID]
			if !ok {
				return fmt.Errorf("%w: %s", domain.ErrComboNotFound, m.ID)
			}
			m.CreatedAt = prev.CreatedAt
			if prev.Currency != in.Currency && usedByInstances(s, m.ID) {
				return fmt.Errorf("%w: el maestro está en uso y no puede cambiar de moneda", domain.ErrConflict)
			}
		}
		for _, n := range stores {
			if !storeInAnyCountry(s, countries, n) {
				return fmt.Errorf("%w: %s en %s", domain.ErrStoreNotFound, n, in.Currency)
			}
		}
		m.Name = name
		m.Currency = in.Currency
		m.StoreNames = stores
		m.IsActive = in.IsActive == nil || *in.IsActive
		m.ImageURL = in.ImageURL
		m.UpdatedAt = uc.now()
		s.MasterCombos[m.ID] = m.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// DeleteMaster elimina un maestro que ninguna instancia usa.
func (uc *ComboUseCase) DeleteMaster(ctx context.Context, id string) error {
	_, err := uc.repo.Update(ctx, "combo.master.delete", func(s *entity.State) error {
		if _, ok := s.MasterCombos[id]; !ok {
			return fmt.Errorf("%w: %s", domain.ErrComboNotFound, id)
		}
		if usedByInstances(s, id) {
			return fmt.Errorf("%w: el maestro %s tiene instancias", domain.ErrConflict, id)
		}
		delete(s.MasterCombos, id)
		delete(s.Content, entity.ComboContentKey(id))
		delete(s.Images, entity.ComboContentKey(id))
		return nil
	})
	return err
}

// ── Instancias ────────────────────────────────────────────────────────────────

// ListInstances lista los combos de un catálogo (activos e inactivos).
func (uc *ComboUseCase) ListInstances(ctx context.Context, catalogID string) ([]dto.ComboInstanceResponse, error) {
	st, _, err := uc.repo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := st.Catalog(catalogID); !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrCatalogNotFound, catalogID)
	}
	list := st.ComboInstancesByCatalog(catalogID)
	out := make([]dto.ComboInstanceResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toInstanceResponse(st, c))
	}
	return out, nil
}

// GetInstance devuelve una instancia.
func (uc *ComboUseCase) GetInstance(ctx context.Context, id string) (*dto.ComboInstanceResponse, error) {
	st, _, err := uc.repo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	c, ok := st.ComboInstances[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrComboNotFound, id)
	}
	res := toInstanceResponse(st, c)
	return &res, nil
}

// CreateInstance crea un combo en un catálogo, derivado de un maestro o personalizado.
// El maestro debe estar en la moneda del catálogo.
func (uc *ComboUseCase) CreateInstance(ctx context.Context, in dto.ComboInstanceRequest) (*dto.ComboInstanceResponse, error) {
	now := uc.now()
	c := entity.ComboInstance{ID: uuid.New().String(), CreatedAt: now}
	return uc.saveInstance(ctx, "combo.instance.create", c, in, false)
}

// UpdateInstance reemplaza los datos de una instancia.
func (uc *ComboUseCase) UpdateInstance(ctx context.Context, id string, in dto.ComboInstanceRequest) (*dto.ComboInstanceResponse, error) {
	return uc.saveInstance(ctx, "combo.instance.update", entity.ComboInstance{ID: id}, in, true)
}

func (uc *ComboUseCase) saveInstance(ctx context.Context, op string, c entity.ComboInstance, in dto.ComboInstanceRequest, existing bool) (*dto.ComboInstanceResponse, error) {
	name := strings.TrimSpace(in.DisplayName)
	if name == "" {
		return nil, fmt.Errorf("%w: nombre requerido", domain.ErrInvalidInput)
	}
	for _, den := range in.Denominations {
		if !den.IsPositive() {
			return nil, fmt.Errorf("%w: denominación %s", domain.ErrInvalidInput, den)
		}
	}
	var res dto.ComboInstanceResponse
	_, err := uc.repo.Update(ctx, op, func(s *entity.State) error {
		if existing {
			prev, ok := s.ComboInstances[c.ID]
			if !ok {
				return fmt.Errorf("%w: %s", domain.ErrComboNotFound, c.ID)
			}
			c.CreatedAt = prev.CreatedAt
			if prev.CatalogID != in.CatalogID {
				return fmt.Errorf("%w: un combo no puede cambiar de catálogo", domain.ErrConflict)
			}
		}
		cat, ok := s.Catalog(in.CatalogID)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrCatalogNotFound, in.CatalogID)
		}
		c.CatalogID = cat.ID
		c.DisplayName = name
		c.MasterComboID = nil
		c.CustomStoreNames = nil
		if in.MasterComboID != nil && *in.MasterComboID != "" {
			m, ok := s.MasterCombos[*in.MasterComboID]
			if !ok {
				return fmt.Errorf("%w: maestro %s", domain.ErrComboNotFound, *in.MasterComboID)
			}
			if m.Currency != cat.Currency {
				return fmt.Errorf("%w: maestro en %s, catálogo en %s", domain.ErrCurrencyMismatch, m.Currency, cat.Currency)
			}
			id := m.ID
			c.MasterComboID = &id
		} else {
			stores := dedupe(in.CustomStoreNames)
			if len(stores) == 0 {
				return fmt.Errorf("%w: un combo personalizado necesita tiendas", domain.ErrInvalidInput)
			}
			for _, n := range stores {
				if _, ok := s.StoreByName(cat.Country, n); !ok {
					return fmt.Errorf("%w: %s en %s", domain.ErrStoreNotFound, n, cat.Country)
				}
			}
			c.CustomStoreNames = stores
		}
		c.Denominations = append(c.Denominations[:0:0], in.Denominations...)
		c.IsActive = in.IsActive == nil || *in.IsActive
		c.ImageURL = in.ImageURL
		c.UpdatedAt = uc.now()
		s.ComboInstances[c.ID] = c.Clone()
		res = toInstanceResponse(s, c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// DeleteInstance elimina una instancia y la quita de los eventos que la listan.
func (uc *ComboUseCase) DeleteInstance(ctx context.Context, id string) error {
	_, err := uc.repo.Update(ctx, "combo.instance.delete", func(s *entity.State) error {
		c, ok := s.ComboInstances[id]
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrComboNotFound, id)
		}
		delete(s.ComboInstances, id)
		delete(s.Content, entity.ComboContentKey(id))
		delete(s.Images, entity.ComboContentKey(id))
		for key, cfg := range s.TenantCatalogs {
			if key.CatalogID != c.CatalogID {
				continue
			}
			cfg = cfg.Clone()
			for evID, ev := range cfg.Events {
				ev.Stores.ComboInstances = without(ev.Stores.ComboInstances, id)
				cfg.Events[evID] = ev
			}
			s.TenantCatalogs[key] = cfg
		}
		return nil
	})
	return err
}

func toInstanceResponse(s *entity.State, c entity.ComboInstance) dto.ComboInstanceResponse {
	return dto.ComboInstanceResponse{
		ComboInstance:       c.Clone(),
		EffectiveStoreNames: c.EffectiveStoreNames(s.MasterCombos),
	}
}

func usedByInstances(s *entity.State, masterID string) bool {
	for _, c := range s.ComboInstances {
		if c.MasterComboID != nil && *c.MasterComboID == masterID {
			return true
		}
	}
	return false
}

func storeInAnyCountry(s *entity.State, countries []string, name string) bool {
	for _, country := range countries {
		if _, ok := s.StoreByName(country, name); ok {
			return true
		}
	}
	return false
}

func without(list []string, v string) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		if s != v {
			out = append(out, s)
		}
	}
	return out
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
