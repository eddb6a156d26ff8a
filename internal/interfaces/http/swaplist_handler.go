package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Catalogos-api/internal/application/dto"
	"github.com/jhoicas/Catalogos-api/internal/application/usecase"
)

// SwapListHandler swap lists y reglas por catálogo.
type SwapListHandler struct {
	uc *usecase.SwapListUseCase
}

// NewSwapListHandler construye el handler.
func NewSwapListHandler(uc *usecase.SwapListUseCase) *SwapListHandler {
	return &SwapListHandler{uc: uc}
}

// List godoc
// @Summary      Listar swap lists
// @Tags         swap-lists
// @Security     Bearer
// @Produce      json
// @Param        tenant_id  query  string  false  "Tenant"
// @Success      200  {array}  entity.SwapList
// @Router       /api/swap-lists [get]
func (h *SwapListHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Query("tenant_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener swap list
// @Tags         swap-lists
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  entity.SwapList
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/swap-lists/{id} [get]
func (h *SwapListHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), param(c, "id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear swap list
// @Tags         swap-lists
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SwapListRequest  true  "Swap list"
// @Success      201  {object}  entity.SwapList
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/swap-lists [post]
func (h *SwapListHandler) Create(c *fiber.Ctx) error {
	var in dto.SwapListRequest
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar swap list
// @Tags         swap-lists
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID"
// @Param        body  body  dto.SwapListRequest  true  "Swap list"
// @Success      200  {object}  entity.SwapList
// @Router       /api/swap-lists/{id} [put]
func (h *SwapListHandler) Update(c *fiber.Ctx) error {
	var in dto.SwapListRequest
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), param(c, "id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar swap list (y sus reglas)
// @Tags         swap-lists
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      204
// @Router       /api/swap-lists/{id} [delete]
func (h *SwapListHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), param(c, "id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Products godoc
// @Summary      Productos canjeables según la lista
// @Tags         swap-lists
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.SwapProductsResponse
// @Router       /api/swap-lists/{id}/products [get]
func (h *SwapListHandler) Products(c *fiber.Ctx) error {
	out, err := h.uc.Products(c.UserContext(), param(c, "id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// SetRule godoc
// @Summary      Swap list del catálogo (vacío la quita)
// @Tags         swap-lists
// @Security     Bearer
// @Accept       json
// @Param        id    path  string               true  "ID del catálogo"
// @Param        body  body  dto.SwapRuleRequest  true  "Swap list"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/catalogs/{id}/swap-rule [put]
func (h *SwapListHandler) SetRule(c *fiber.Ctx) error {
	var in dto.SwapRuleRequest
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	if err := h.uc.SetRule(c.UserContext(), param(c, "id"), in.SwapListID); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CatalogProducts godoc
// @Summary      Productos canjeables del catálogo según su regla
// @Tags         swap-lists
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del catálogo"
// @Success      200  {object}  dto.SwapProductsResponse
// @Router       /api/catalogs/{id}/swap-products [get]
func (h *SwapListHandler) CatalogProducts(c *fiber.Ctx) error {
	out, err := h.uc.CatalogProducts(c.UserContext(), param(c, "id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
