package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
	ErrConflict            = errors.New("conflicto con el estado actual")
	ErrInvalidBranch       = errors.New("rama de catálogo inválida")
	ErrCurrencyMismatch    = errors.New("la moneda no coincide")
	ErrDefaultEventLocked  = errors.New("el evento default no se puede eliminar")
	ErrSupplierNotOffering = errors.New("el proveedor no ofrece la tienda")
)

// Variantes de ErrNotFound; errors.Is(err, ErrNotFound) sigue siendo verdadero.
var (
	ErrCatalogNotFound  = fmt.Errorf("catálogo: %w", ErrNotFound)
	ErrParentNotFound   = fmt.Errorf("catálogo padre: %w", ErrNotFound)
	ErrTenantNotFound   = fmt.Errorf("tenant: %w", ErrNotFound)
	ErrStoreNotFound    = fmt.Errorf("tienda: %w", ErrNotFound)
	ErrEventNotFound    = fmt.Errorf("evento: %w", ErrNotFound)
	ErrComboNotFound    = fmt.Errorf("combo: %w", ErrNotFound)
	ErrSwapListNotFound = fmt.Errorf("swap list: %w", ErrNotFound)
)
