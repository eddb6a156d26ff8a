package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Catalogos-api/internal/application/dto"
	"github.com/jhoicas/Catalogos-api/internal/domain"
	"github.com/jhoicas/Catalogos-api/internal/domain/entity"
	"github.com/jhoicas/Catalogos-api/internal/domain/repository"
	"github.com/jhoicas/Catalogos-api/internal/domain/supplier"
)

// StoreUseCase casos de uso del catálogo global de tiendas: estado activo y proveedores.
type StoreUseCase struct {
	repo repository.StateRepository
}

// NewStoreUseCase construye el caso de uso.
func NewStoreUseCase(repo repository.StateRepository) *StoreUseCase {
	return &StoreUseCase{repo: repo}
}

// ListByCountry lista las tiendas de un país ordenadas por nombre.
func (uc *StoreUseCase) ListByCountry(ctx context.Context, country string) (*dto.StoreListResponse, error) {
	st, _, err := uc.repo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	stores := st.StoresByCountry(country)
	res := &dto.StoreListResponse{Country: country, Items: make([]dto.StoreResponse, 0, len(stores))}
	for _, s := range stores {
		res.Items = append(res.Items, toStoreResponse(st, s))
	}
	return res, nil
}

// Get devuelve una tienda.
func (uc *StoreUseCase) Get(ctx context.Context, k entity.StoreKey) (*dto.StoreResponse, error) {
	st, _, err := uc.repo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	s, ok := st.Stores[k]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrStoreNotFound, k)
	}
	res := toStoreResponse(st, s)
	return &res, nil
}

// SetActive activa o desactiva la tienda en todos los catálogos.
func (uc *StoreUseCase) SetActive(ctx context.Context, k entity.StoreKey, active bool) (*dto.StoreResponse, error) {
	var res dto.StoreResponse
	_, err := uc.repo.Update(ctx, "store.active", func(s *entity.State) error {
		store, ok := s.Stores[k]
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrStoreNotFound, k)
		}
		if active {
			delete(s.StoreActive, k)
		} else {
			s.StoreActive[k] = false
		}
		res = toStoreResponse(s, store)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// AddSupplier agrega un proveedor ofertante (o actualiza su margen).
func (uc *StoreUseCase) AddSupplier(ctx context.Context, k entity.StoreKey, supplierID int, margin decimal.Decimal) (*entity.StoreSupplierData, error) {
	return uc.supplierOp(ctx, "store.supplier.add", k, func(d *entity.StoreSupplierData) error {
		return supplier.AddOffering(d, supplierID, margin)
	})
}

// SetSupplierMargin cambia el margen de un proveedor que ya oferta la tienda.
func (uc *StoreUseCase) SetSupplierMargin(ctx context.Context, k entity.StoreKey, supplierID int, margin decimal.Decimal) (*entity.StoreSupplierData, error) {
	return uc.supplierOp(ctx, "store.supplier.margin", k, func(d *entity.StoreSupplierData) error {
		return supplier.SetDiscount(d, supplierID, margin)
	})
}

// RemoveSupplier quita un proveedor ofertante.
func (uc *StoreUseCase) RemoveSupplier(ctx context.Context, k entity.StoreKey, supplierID int) (*entity.StoreSupplierData, error) {
	return uc.supplierOp(ctx, "store.supplier.remove", k, func(d *entity.StoreSupplierData) error {
		return supplier.RemoveOffering(d, supplierID)
	})
}

// SelectSupplier fija el primario; nil vuelve a la selección automática por margen.
func (uc *StoreUseCase) SelectSupplier(ctx context.Context, k entity.StoreKey, supplierID *int) (*entity.StoreSupplierData, error) {
	return uc.supplierOp(ctx, "store.supplier.select", k, func(d *entity.StoreSupplierData) error {
		return supplier.SetSelected(d, supplierID)
	})
}

// SetSecondarySupplier fija (o quita con nil) el proveedor secundario.
func (uc *StoreUseCase) SetSecondarySupplier(ctx context.Context, k entity.StoreKey, supplierID *int) (*entity.StoreSupplierData, error) {
	return uc.supplierOp(ctx, "store.supplier.secondary", k, func(d *entity.StoreSupplierData) error {
		return supplier.SetSecondary(d, supplierID)
	})
}

// supplierOp aplica fn sobre los datos de proveedores de la tienda. Si la tienda aún no tiene datos
// se parte de los generados para su clave.
func (uc *StoreUseCase) supplierOp(ctx context.Context, op string, k entity.StoreKey, fn func(d *entity.StoreSupplierData) error) (*entity.StoreSupplierData, error) {
	var out entity.StoreSupplierData
	_, err := uc.repo.Update(ctx, op, func(s *entity.State) error {
		if _, ok := s.Stores[k]; !ok {
			return fmt.Errorf("%w: %s", domain.ErrStoreNotFound, k)
		}
		d, ok := s.SupplierData(k)
		if ok {
			d = d.Clone()
		} else {
			d = supplier.Generate(k)
		}
		if err := fn(&d); err != nil {
			return err
		}
		s.StoreSuppliers[k] = d
		out = d.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func toStoreResponse(s *entity.State, store entity.Store) dto.StoreResponse {
	k := store.Key()
	res := dto.StoreResponse{
		Name:     store.Name,
		Country:  store.Country,
		Products: store.Products,
		Active:   s.IsStoreActive(k),
	}
	if d, ok := s.SupplierData(k); ok {
		d = d.Clone()
		res.Suppliers = &d
	}
	if c, ok := s.Content[entity.StoreContentKey(k)]; ok {
		res.Content = &c
	}
	return res
}
