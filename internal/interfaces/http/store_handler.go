package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Catalogos-api/internal/application/dto"
	"github.com/jhoicas/Catalogos-api/internal/application/usecase"
)

// StoreHandler catálogo global de tiendas y sus proveedores.
type StoreHandler struct {
	uc *usecase.StoreUseCase
}

// NewStoreHandler construye el handler.
func NewStoreHandler(uc *usecase.StoreUseCase) *StoreHandler {
	return &StoreHandler{uc: uc}
}

// List godoc
// @Summary      Listar tiendas de un país
// @Tags         stores
// @Security     Bearer
// @Produce      json
// @Param        country  query  string  true  "País (US, CA, UK, AU)"
// @Success      200  {object}  dto.StoreListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stores [get]
func (h *StoreHandler) List(c *fiber.Ctx) error {
	country := c.Query("country")
	if country == "" {
		return badRequest(c, "MISSING_COUNTRY", "country es requerido")
	}
	out, err := h.uc.ListByCountry(c.UserContext(), country)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener tienda
// @Tags         stores
// @Security     Bearer
// @Produce      json
// @Param        country  path  string  true  "País"
// @Param        name     path  string  true  "Nombre"
// @Success      200  {object}  dto.StoreResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stores/{country}/{name} [get]
func (h *StoreHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), storeKeyParam(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// SetActive godoc
// @Summary      Activar o desactivar una tienda en todos los catálogos
// @Tags         stores
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        country  path  string                true  "País"
// @Param        name     path  string                true  "Nombre"
// @Param        body     body  dto.SetActiveRequest  true  "Estado"
// @Success      200  {object}  dto.StoreResponse
// @Router       /api/stores/{country}/{name}/active [put]
func (h *StoreHandler) SetActive(c *fiber.Ctx) error {
	var in dto.SetActiveRequest
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.SetActive(c.UserContext(), storeKeyParam(c), in.Active)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// AddSupplier godoc
// @Summary      Agregar proveedor ofertante (o actualizar su margen)
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        country  path  string                       true  "País"
// @Param        name     path  string                       true  "Nombre"
// @Param        body     body  dto.SupplierOfferingRequest  true  "Proveedor y margen"
// @Success      200  {object}  entity.StoreSupplierData
// @Router       /api/stores/{country}/{name}/suppliers [post]
func (h *StoreHandler) AddSupplier(c *fiber.Ctx) error {
	var in dto.SupplierOfferingRequest
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.AddSupplier(c.UserContext(), storeKeyParam(c), in.SupplierID, in.Margin)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// SetSupplierMargin godoc
// @Summary      Cambiar el margen de un proveedor ofertante
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        country     path  string                   true  "País"
// @Param        name        path  string                   true  "Nombre"
// @Param        supplierId  path  int                      true  "Proveedor"
// @Param        body        body  dto.DecimalValueRequest  true  "Margen"
// @Success      200  {object}  entity.StoreSupplierData
// @Router       /api/stores/{country}/{name}/suppliers/{supplierId} [put]
func (h *StoreHandler) SetSupplierMargin(c *fiber.Ctx) error {
	id, ok := intParam(c, "supplierId")
	if !ok {
		return badRequest(c, "INVALID_SUPPLIER", "supplierId debe ser numérico")
	}
	var in dto.DecimalValueRequest
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	if in.Value == nil {
		return badRequest(c, "VALIDATION", "value es requerido")
	}
	out, err := h.uc.SetSupplierMargin(c.UserContext(), storeKeyParam(c), id, *in.Value)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// RemoveSupplier godoc
// @Summary      Quitar proveedor ofertante
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Param        country     path  string  true  "País"
// @Param        name        path  string  true  "Nombre"
// @Param        supplierId  path  int     true  "Proveedor"
// @Success      200  {object}  entity.StoreSupplierData
// @Router       /api/stores/{country}/{name}/suppliers/{supplierId} [delete]
func (h *StoreHandler) RemoveSupplier(c *fiber.Ctx) error {
	id, ok := intParam(c, "supplierId")
	if !ok {
		return badRequest(c, "INVALID_SUPPLIER", "supplierId debe ser numérico")
	}
	out, err := h.uc.RemoveSupplier(c.UserContext(), storeKeyParam(c), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// SelectSupplier godoc
// @Summary      Proveedor primario manual (null vuelve a automático)
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        country  path  string                     true  "País"
// @Param        name     path  string                     true  "Nombre"
// @Param        body     body  dto.SupplierSelectRequest  true  "Proveedor"
// @Success      200  {object}  entity.StoreSupplierData
// @Router       /api/stores/{country}/{name}/suppliers/selected [put]
func (h *StoreHandler) SelectSupplier(c *fiber.Ctx) error {
	var in dto.SupplierSelectRequest
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.SelectSupplier(c.UserContext(), storeKeyParam(c), in.SupplierID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// SetSecondarySupplier godoc
// @Summary      Proveedor secundario (null lo quita)
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        country  path  string                     true  "País"
// @Param        name     path  string                     true  "Nombre"
// @Param        body     body  dto.SupplierSelectRequest  true  "Proveedor"
// @Success      200  {object}  entity.StoreSupplierData
// @Router       /api/stores/{country}/{name}/suppliers/secondary [put]
func (h *StoreHandler) SetSecondarySupplier(c *fiber.Ctx) error {
	var in dto.SupplierSelectRequest
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.SetSecondarySupplier(c.UserContext(), storeKeyParam(c), in.SupplierID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
