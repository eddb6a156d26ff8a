// Package catalog contiene los casos de uso de catálogos base y ramas.
// Cada mutación es un commit atómico sobre el StateRepository.
package catalog

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
	"github.com/jhoicas/Catalogos-api/internal/domain/repository"
)

// UseCase casos de uso de catálogos.
type UseCase struct {
	repo     repository.StateRepository
	observer ports.ResolveObserver
	now      func() time.Time
}

// NewUseCase construye el caso de uso. observer puede ser nil.
func NewUseCase(repo repository.StateRepository, observer ports.ResolveObserver) *UseCase {
	return &UseCase{repo: repo, observer: observer, now: time.Now}
}

// List lista catálogos ordenados por país, base antes que ramas, y nombre.
func (uc *UseCase) List(ctx context.Context, page dto.PageRequest) (*dto.CatalogListResponse, error) {
	page.Normalize()
	var items []dto.CatalogSummary
	err := uc.repo.View(ctx, func(s *entity.State) error {
		for _, c := range s.Catalogs {
			count := len(c.Stores)
			if c.IsBranch {
				if eff, err := domcatalog.EffectiveCatalog(s, c.ID); err == nil {
					count = len(eff.Stores)
				}
			}
			items = append(items, dto.CatalogSummary{
				ID: c.ID, Name: c.Name, Country: c.Country, Currency: c.Currency,
				IsBranch: c.IsBranch, ParentID: c.ParentID, StoreCount: count,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Country != b.Country {
			return a.Country < b.Country
		}
		if a.IsBranch != b.IsBranch {
			return !a.IsBranch
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
	total := len(items)
	start := min(page.Offset, total)
	end := min(start+page.Limit, total)
	return &dto.CatalogListResponse{
		Items: append([]dto.CatalogSummary{}, items[start:end]...),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Get devuelve el catálogo tal como está guardado (una rama trae solo su delta).
func (uc *UseCase) Get(ctx context.Context, id string) (*entity.Catalog, error) {
	var out entity.Catalog
	err := uc.repo.View(ctx, func(s *entity.State) error {
		c, ok := s.Catalog(id)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrCatalogNotFound, id)
		}
		out = c.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Effective resuelve el catálogo (base o rama) sin personalización de tenant.
func (uc *UseCase) Effective(ctx context.Context, id string) (*dto.EffectiveCatalogResponse, error) {
	var out *entity.Catalog
	err := uc.repo.View(ctx, func(s *entity.State) error {
		c, err := domcatalog.EffectiveCatalog(s, id)
		out = c
		return err
	})
	if err != nil {
		return nil, err
	}
	if uc.observer != nil {
		uc.observer.Resolved("catalog", "resolver")
	}
	return &dto.EffectiveCatalogResponse{Catalog: out, Version: uc.repo.Version()}, nil
}

// CreateCatalog crea el catálogo base de un país. Solo puede haber uno por país.
func (uc *UseCase) CreateCatalog(ctx context.Context, in dto.CreateCatalogRequest) (*entity.Catalog, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: nombre requerido", domain.ErrInvalidInput)
	}
	defaultCurrency := entity.CurrencyForCountry(in.Country)
	if defaultCurrency == "" {
		return nil, fmt.Errorf("%w: país desconocido %q", domain.ErrInvalidInput, in.Country)
	}
	currency := in.Currency
	if currency == "" {
		currency = defaultCurrency
	}
	if currency != defaultCurrency {
		return nil, fmt.Errorf("%w: %s usa %s, no %s", domain.ErrCurrencyMismatch, in.Country, defaultCurrency, currency)
	}

	now := uc.now()
	out := entity.Catalog{
		ID:             uuid.New().String(),
		Name:           name,
		Country:        in.Country,
		Currency:       currency,
		Stores:         []entity.Store{},
		StoreDiscounts: map[string]decimal.Decimal{},
		StoreCSS:       map[string]string{},
		StoreFees:      map[string]decimal.Decimal{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	_, err := uc.repo.Update(ctx, "catalog.create", func(s *entity.State) error {
		if _, exists := s.BaseCatalogForCountry(in.Country); exists {
			return fmt.Errorf("%w: ya existe un catálogo base para %s", domain.ErrDuplicate, in.Country)
		}
		for _, n := range dedupe(in.StoreNames) {
			st, ok := s.StoreByName(in.Country, n)
			if !ok {
				return fmt.Errorf("%w: %s en %s", domain.ErrStoreNotFound, n, in.Country)
			}
			out.Stores = append(out.Stores, st.Clone())
		}
		s.Catalogs[out.ID] = out.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateBranch crea una rama vacía sobre un catálogo base.
func (uc *UseCase) CreateBranch(ctx context.Context, in dto.CreateBranchRequest) (*entity.Catalog, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: nombre requerido", domain.ErrInvalidInput)
	}
	var out entity.Catalog
	_, err := uc.repo.Update(ctx, "catalog.branch.create", func(s *entity.State) error {
		parent, ok := s.Catalog(in.ParentID)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrParentNotFound, in.ParentID)
		}
		if parent.IsBranch {
			return fmt.Errorf("%w: %s ya es una rama", domain.ErrInvalidBranch, parent.ID)
		}
		now := uc.now()
		out = entity.Catalog{
			ID:             uuid.New().String(),
			Name:           name,
			Country:        parent.Country,
			Currency:       parent.Currency,
			IsBranch:       true,
			ParentID:       parent.ID,
			StoreDiscounts: map[string]decimal.Decimal{},
			StoreCSS:       map[string]string{},
			StoreFees:      map[string]decimal.Decimal{},
			BranchChanges:  entity.NewBranchChanges(),
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		s.Catalogs[out.ID] = out.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteBranch elimina una rama. Los tenants asignados pasan al padre; si el padre ya no existe,
// al catálogo base de su país; si tampoco hay, quedan sin asignar. Personalizaciones, combos y
// regla de canje de la rama se eliminan en el mismo commit.
func (uc *UseCase) DeleteBranch(ctx context.Context, id string) (*dto.DeleteBranchResponse, error) {
	res := &dto.DeleteBranchResponse{ReassignedTenants: map[string]string{}}
	_, err := uc.repo.Update(ctx, "catalog.branch.delete", func(s *entity.State) error {
		c, ok := s.Catalog(id)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrCatalogNotFound, id)
		}
		if !c.IsBranch {
			return fmt.Errorf("%w: %s es un catálogo base", domain.ErrInvalidBranch, id)
		}
		target := ""
		if parent, ok := s.Catalog(c.ParentID); ok && !parent.IsBranch {
			target = parent.ID
		} else if base, ok := s.BaseCatalogForCountry(c.Country); ok {
			target = base.ID
		}
		for tenantID, catalogID := range s.Assignments {
			if catalogID != id {
				continue
			}
			if target == "" {
				delete(s.Assignments, tenantID)
			} else {
				s.Assignments[tenantID] = target
			}
			res.ReassignedTenants[tenantID] = target
		}
		for k := range s.TenantCatalogs {
			if k.CatalogID == id {
				delete(s.TenantCatalogs, k)
			}
		}
		for comboID, ci := range s.ComboInstances {
			if ci.CatalogID == id {
				delete(s.ComboInstances, comboID)
				delete(s.Content, entity.ComboContentKey(comboID))
				delete(s.Images, entity.ComboContentKey(comboID))
			}
		}
		delete(s.SwapRules, id)
		delete(s.Catalogs, id)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// AddStore agrega una tienda del país del catálogo. En una rama se registra en el delta.
func (uc *UseCase) AddStore(ctx context.Context, catalogID, storeName string) (*entity.Catalog, error) {
	return uc.mutate(ctx, "catalog.store.add", catalogID, func(s *entity.State, c *entity.Catalog) error {
		st, ok := s.StoreByName(c.Country, storeName)
		if !ok {
			return fmt.Errorf("%w: %s en %s", domain.ErrStoreNotFound, storeName, c.Country)
		}
		if !c.IsBranch {
			if c.HasStore(storeName) {
				return fmt.Errorf("%w: %s ya está en el catálogo", domain.ErrDuplicate, storeName)
			}
			c.Stores = append(c.Stores, st.Clone())
			return nil
		}
		parent, err := parentOf(s, *c)
		if err != nil {
			return err
		}
		return domcatalog.AddStoreToBranch(c.BranchChanges, parent.HasStore(storeName), storeName)
	})
}

// RemoveStore quita una tienda. En un catálogo base también borra sus descuentos, CSS y fees.
func (uc *UseCase) RemoveStore(ctx context.Context, catalogID, storeName string) (*entity.Catalog, error) {
	return uc.mutate(ctx, "catalog.store.remove", catalogID, func(s *entity.State, c *entity.Catalog) error {
		if !c.IsBranch {
			if !c.HasStore(storeName) {
				return fmt.Errorf("%w: %s no está en el catálogo", domain.ErrStoreNotFound, storeName)
			}
			kept := make([]entity.Store, 0, len(c.Stores)-1)
			for _, st := range c.Stores {
				if st.Name != storeName {
					kept = append(kept, st)
				}
			}
			c.Stores = kept
			delete(c.StoreDiscounts, storeName)
			delete(c.StoreCSS, storeName)
			delete(c.StoreFees, storeName)
			return nil
		}
		parent, err := parentOf(s, *c)
		if err != nil {
			return err
		}
		return domcatalog.RemoveStoreFromBranch(c.BranchChanges, parent.HasStore(storeName), storeName)
	})
}

// SetStoreDiscount fija (o borra con nil) el descuento de una tienda.
func (uc *UseCase) SetStoreDiscount(ctx context.Context, catalogID, storeName string, value *decimal.Decimal) (*entity.Catalog, error) {
	if value != nil && value.IsNegative() {
		return nil, fmt.Errorf("%w: descuento negativo", domain.ErrInvalidInput)
	}
	return uc.mutate(ctx, "catalog.discount", catalogID, func(s *entity.State, c *entity.Catalog) error {
		if err := requireVisible(s, *c, storeName); err != nil {
			return err
		}
		if c.IsBranch {
			setDecimal(c.BranchChanges.DiscountOverrides, storeName, value)
		} else {
			setDecimal(c.StoreDiscounts, storeName, value)
		}
		return nil
	})
}

// SetStoreFee fija (o borra con nil) el fee de una tienda.
func (uc *UseCase) SetStoreFee(ctx context.Context, catalogID, storeName string, value *decimal.Decimal) (*entity.Catalog, error) {
	if value != nil && value.IsNegative() {
		return nil, fmt.Errorf("%w: fee negativo", domain.ErrInvalidInput)
	}
	return uc.mutate(ctx, "catalog.fee", catalogID, func(s *entity.State, c *entity.Catalog) error {
		if err := requireVisible(s, *c, storeName); err != nil {
			return err
		}
		if c.IsBranch {
			setDecimal(c.BranchChanges.FeeOverrides, storeName, value)
		} else {
			setDecimal(c.StoreFees, storeName, value)
		}
		return nil
	})
}

// SetStoreCSS fija (o borra con "") la clase CSS de una tienda.
func (uc *UseCase) SetStoreCSS(ctx context.Context, catalogID, storeName, css string) (*entity.Catalog, error) {
	css = strings.TrimSpace(css)
	return uc.mutate(ctx, "catalog.css", catalogID, func(s *entity.State, c *entity.Catalog) error {
		if err := requireVisible(s, *c, storeName); err != nil {
			return err
		}
		target := c.StoreCSS
		if c.IsBranch {
			target = c.BranchChanges.CSSOverrides
		}
		if css == "" {
			delete(target, storeName)
		} else {
			target[storeName] = css
		}
		return nil
	})
}

// SetCatalogFee fija (o borra con nil) el fee del catálogo.
func (uc *UseCase) SetCatalogFee(ctx context.Context, catalogID string, value *decimal.Decimal) (*entity.Catalog, error) {
	if value != nil && value.IsNegative() {
		return nil, fmt.Errorf("%w: fee negativo", domain.ErrInvalidInput)
	}
	return uc.mutate(ctx, "catalog.catalog_fee", catalogID, func(_ *entity.State, c *entity.Catalog) error {
		var v *decimal.Decimal
		if value != nil {
			fee := *value
			v = &fee
		}
		if c.IsBranch {
			c.BranchChanges.CatalogFeeOverride = v
		} else {
			c.CatalogFee = v
		}
		return nil
	})
}

// SetOrder reordena las tiendas. En un catálogo base reordena la lista concreta;
// en una rama guarda el orden en el delta.
func (uc *UseCase) SetOrder(ctx context.Context, catalogID string, order []string) (*entity.Catalog, error) {
	order = dedupe(order)
	return uc.mutate(ctx, "catalog.order", catalogID, func(_ *entity.State, c *entity.Catalog) error {
		if c.IsBranch {
			c.BranchChanges.StoreOrder = order
			return nil
		}
		c.Stores = domcatalog.ApplyOrder(c.Stores, order)
		return nil
	})
}

// mutate aplica fn sobre una copia del catálogo y la guarda. Devuelve el catálogo efectivo resultante.
func (uc *UseCase) mutate(ctx context.Context, op, catalogID string, fn func(s *entity.State, c *entity.Catalog) error) (*entity.Catalog, error) {
	var out *entity.Catalog
	_, err := uc.repo.Update(ctx, op, func(s *entity.State) error {
		c, ok := s.Catalog(catalogID)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrCatalogNotFound, catalogID)
		}
		c = c.Clone()
		ensureMaps(&c)
		if err := fn(s, &c); err != nil {
			return err
		}
		c.UpdatedAt = uc.now()
		s.Catalogs[c.ID] = c
		eff, err := domcatalog.EffectiveCatalog(s, c.ID)
		out = eff
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func parentOf(s *entity.State, c entity.Catalog) (entity.Catalog, error) {
	parent, ok := s.Catalog(c.ParentID)
	if !ok {
		return entity.Catalog{}, fmt.Errorf("%w: %s (rama %s)", domain.ErrParentNotFound, c.ParentID, c.ID)
	}
	return parent, nil
}

// requireVisible exige que la tienda forme parte del catálogo resuelto (activa o no).
func requireVisible(s *entity.State, c entity.Catalog, storeName string) error {
	if !c.IsBranch {
		if c.HasStore(storeName) {
			return nil
		}
		return fmt.Errorf("%w: %s no está en el catálogo", domain.ErrStoreNotFound, storeName)
	}
	parent, err := parentOf(s, c)
	if err != nil {
		return err
	}
	removed := contains(c.BranchChanges.RemovedStores, storeName)
	if (parent.HasStore(storeName) && !removed) || contains(c.BranchChanges.AddedStores, storeName) {
		return nil
	}
	return fmt.Errorf("%w: %s no está en la rama", domain.ErrStoreNotFound, storeName)
}

func ensureMaps(c *entity.Catalog) {
	if c.StoreDiscounts == nil {
		c.StoreDiscounts = map[string]decimal.Decimal{}
	}
	if c.StoreCSS == nil {
		c.StoreCSS = map[string]string{}
	}
	if c.StoreFees == nil {
		c.StoreFees = map[string]decimal.Decimal{}
	}
	if !c.IsBranch {
		return
	}
	if c.BranchChanges == nil {
		c.BranchChanges = entity.NewBranchChanges()
	}
	b := c.BranchChanges
	if b.DiscountOverrides == nil {
		b.DiscountOverrides = map[string]decimal.Decimal{}
	}
	if b.CSSOverrides == nil {
		b.CSSOverrides = map[string]string{}
	}
	if b.FeeOverrides == nil {
		b.FeeOverrides = map[string]decimal.Decimal{}
	}
}

func setDecimal(m map[string]decimal.Decimal, key string, value *decimal.Decimal) {
	if value == nil {
		delete(m, key)
		return
	}
	m[key] = *value
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
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
