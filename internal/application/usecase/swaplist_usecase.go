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
	domcatalog "github.com/jhoicas/Catalogos-api/internal/domain/catalog"
	"github.com/jhoicas/Catalogos-api/internal/domain/entity"
	"github.com/jhoicas/Catalogos-api/internal/domain/repository"
	"github.com/jhoicas/Catalogos-api/internal/domain/swaplist"
)

// SwapListUseCase CRUD de swap lists, reglas por catálogo y productos canjeables.
type SwapListUseCase struct {
	repo repository.StateRepository
	now  func() time.Time
}

// NewSwapListUseCase construye el caso de uso.
func NewSwapListUseCase(repo repository.StateRepository) *SwapListUseCase {
	return &SwapListUseCase{repo: repo, now: time.Now}
}

// List lista las swap lists, opcionalmente de un tenant, ordenadas por nombre.
func (uc *SwapListUseCase) List(ctx context.Context, tenantID string) ([]entity.SwapList, error) {
	st, _, err := uc.repo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	out := []entity.SwapList{}
	for _, l := range st.SwapLists {
		if tenantID == "" || l.TenantID == tenantID {
			out = append(out, l.Clone())
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

// Get devuelve una swap list.
func (uc *SwapListUseCase) Get(ctx context.Context, id string) (*entity.SwapList, error) {
	st, _, err := uc.repo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	l, ok := st.SwapLists[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSwapListNotFound, id)
	}
	l = l.Clone()
	return &l, nil
}

// Create crea una swap list (en borrador si no se indica estado).
func (uc *SwapListUseCase) Create(ctx context.Context, in dto.SwapListRequest) (*entity.SwapList, error) {
	return uc.save(ctx, "swaplist.create", uuid.New().String(), in, false)
}

// Update reemplaza una swap list existente.
func (uc *SwapListUseCase) Update(ctx context.Context, id string, in dto.SwapListRequest) (*entity.SwapList, error) {
	return uc.save(ctx, "swaplist.update", id, in, true)
}

func (uc *SwapListUseCase) save(ctx context.Context, op, id string, in dto.SwapListRequest, existing bool) (*entity.SwapList, error) {
	status := in.Status
	if status == "" {
		status = entity.SwapListDraft
	}
	l := entity.SwapList{
		ID:                         id,
		Name:                       strings.TrimSpace(in.Name),
		TenantID:                   in.TenantID,
		BaseCurrency:               in.BaseCurrency,
		AllowedCategories:          dedupe(in.AllowedCategories),
		ApplyAlcoholExclusion:      in.ApplyAlcoholExclusion,
		ApplyLowMarginExclusion:    in.ApplyLowMarginExclusion,
		ApplyComboProductExclusion: in.ApplyComboProductExclusion,
		Status:                     status,
		DateModified:               uc.now(),
	}
	if err := swaplist.Validate(l); err != nil {
		return nil, err
	}
	_, err := uc.repo.Update(ctx, op, func(s *entity.State) error {
		if _, ok := s.SwapLists[id]; existing && !ok {
			return fmt.Errorf("%w: %s", domain.ErrSwapListNotFound, id)
		}
		if _, ok := s.Tenants[l.TenantID]; !ok {
			return fmt.Errorf("%w: %s", domain.ErrTenantNotFound, l.TenantID)
		}
		for _, cat := range l.AllowedCategories {
			if _, ok := s.Categories[cat]; !ok {
				return fmt.Errorf("%w: categoría desconocida %q", domain.ErrInvalidInput, cat)
			}
		}
		if existing {
			for catalogID, listID := range s.SwapRules {
				if listID != id {
					continue
				}
				if c, ok := s.Catalog(catalogID); ok && c.Currency != l.BaseCurrency {
					return fmt.Errorf("%w: la lista está asignada al catálogo %s (%s)", domain.ErrCurrencyMismatch, catalogID, c.Currency)
				}
			}
		}
		s.SwapLists[id] = l.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Delete elimina la swap list y las reglas que la usan.
func (uc *SwapListUseCase) Delete(ctx context.Context, id string) error {
	_, err := uc.repo.Update(ctx, "swaplist.delete", func(s *entity.State) error {
		if _, ok := s.SwapLists[id]; !ok {
			return fmt.Errorf("%w: %s", domain.ErrSwapListNotFound, id)
		}
		delete(s.SwapLists, id)
		for catalogID, listID := range s.SwapRules {
			if listID == id {
				delete(s.SwapRules, catalogID)
			}
		}
		return nil
	})
	return err
}

// SetRule asigna la swap list del catálogo; vacío la quita. La lista debe estar en la moneda del catálogo.
func (uc *SwapListUseCase) SetRule(ctx context.Context, catalogID, swapListID string) error {
	_, err := uc.repo.Update(ctx, "swaplist.rule", func(s *entity.State) error {
		c, ok := s.Catalog(catalogID)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrCatalogNotFound, catalogID)
		}
		if swapListID == "" {
			delete(s.SwapRules, catalogID)
			return nil
		}
		l, ok := s.SwapLists[swapListID]
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrSwapListNotFound, swapListID)
		}
		if l.BaseCurrency != c.Currency {
			return fmt.Errorf("%w: lista en %s, catálogo en %s", domain.ErrCurrencyMismatch, l.BaseCurrency, c.Currency)
		}
		s.SwapRules[catalogID] = swapListID
		return nil
	})
	return err
}

// Products devuelve los productos canjeables de la lista sobre todas las tiendas de su moneda.
func (uc *SwapListUseCase) Products(ctx context.Context, swapListID string) (*dto.SwapProductsResponse, error) {
	st, _, err := uc.repo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	l, ok := st.SwapLists[swapListID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSwapListNotFound, swapListID)
	}
	var stores []entity.Store
	for _, country := range entity.CountriesForCurrency(l.BaseCurrency) {
		stores = append(stores, st.StoresByCountry(country)...)
	}
	return toProductsResponse(l, swaplist.FilteredProducts(l, stores)), nil
}

// CatalogProducts aplica la regla del catálogo sobre sus tiendas efectivas.
func (uc *SwapListUseCase) CatalogProducts(ctx context.Context, catalogID string) (*dto.SwapProductsResponse, error) {
	st, _, err := uc.repo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	eff, err := domcatalog.EffectiveCatalog(st, catalogID)
	if err != nil {
		return nil, err
	}
	listID, ok := st.SwapRules[catalogID]
	if !ok {
		return nil, fmt.Errorf("%w: el catálogo %s no tiene swap list", domain.ErrSwapListNotFound, catalogID)
	}
	l, ok := st.SwapLists[listID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSwapListNotFound, listID)
	}
	return toProductsResponse(l, swaplist.FilteredProducts(l, eff.Stores)), nil
}

func toProductsResponse(l entity.SwapList, products []entity.Product) *dto.SwapProductsResponse {
	if products == nil {
		products = []entity.Product{}
	}
	return &dto.SwapProductsResponse{SwapListID: l.ID, Products: products, Total: len(products)}
}
