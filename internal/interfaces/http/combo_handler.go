package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Catalogos-api/internal/application/dto"
	"github.com/jhoicas/Catalogos-api/internal/application/usecase"
)

// ComboHandler combos maestros e instancias.
type ComboHandler struct {
	uc *usecase.ComboUseCase
}

// NewComboHandler construye el handler.
func NewComboHandler(uc *usecase.ComboUseCase) *ComboHandler {
	return &ComboHandler{uc: uc}
}

// ListMasters godoc
// @Summary      Listar combos maestros
// @Tags         combos
// @Security     Bearer
// @Produce      json
// @Param        currency  query  string  false  "Moneda"
// @Success      200  {array}  entity.MasterCombo
// @Router       /api/combos/masters [get]
func (h *ComboHandler) ListMasters(c *fiber.Ctx) error {
	out, err := h.uc.ListMasters(c.UserContext(), c.Query("currency"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// GetMaster godoc
// @Summary      Obtener combo maestro
// @Tags         combos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  entity.MasterCombo
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/combos/masters/{id} [get]
func (h *ComboHandler) GetMaster(c *fiber.Ctx) error {
	out, err := h.uc.GetMaster(c.UserContext(), param(c, "id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// CreateMaster godoc
// @Summary      Crear combo maestro
// @Tags         combos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MasterComboRequest  true  "Combo"
// @Success      201  {object}  entity.MasterCombo
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/combos/masters [post]
func (h *ComboHandler) CreateMaster(c *fiber.Ctx) error {
	var in dto.MasterComboRequest
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.CreateMaster(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateMaster godoc
// @Summary      Actualizar combo maestro
// @Tags         combos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID"
// @Param        body  body  dto.MasterComboRequest  true  "Combo"
// @Success      200  {object}  entity.MasterCombo
// @Router       /api/combos/masters/{id} [put]
func (h *ComboHandler) UpdateMaster(c *fiber.Ctx) error {
	var in dto.MasterComboRequest
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.UpdateMaster(c.UserContext(), param(c, "id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// DeleteMaster godoc
// @Summary      Eliminar combo maestro sin instancias
// @Tags         combos
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/combos/masters/{id} [delete]
func (h *ComboHandler) DeleteMaster(c *fiber.Ctx) error {
	if err := h.uc.DeleteMaster(c.UserContext(), param(c, "id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListInstances godoc
// @Summary      Combos de un catálogo
// @Tags         combos
// @Security     Bearer
// @Produce      json
// @Param        catalog_id  query  string  true  "Catálogo"
// @Success      200  {array}  dto.ComboInstanceResponse
// @Router       /api/combos/instances [get]
func (h *ComboHandler) ListInstances(c *fiber.Ctx) error {
	catalogID := c.Query("catalog_id")
	if catalogID == "" {
		return badRequest(c, "MISSING_CATALOG", "catalog_id es requerido")
	}
	out, err := h.uc.ListInstances(c.UserContext(), catalogID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// GetInstance godoc
// @Summary      Obtener combo de catálogo
// @Tags         combos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.ComboInstanceResponse
// @Router       /api/combos/instances/{id} [get]
func (h *ComboHandler) GetInstance(c *fiber.Ctx) error {
	out, err := h.uc.GetInstance(c.UserContext(), param(c, "id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// CreateInstance godoc
// @Summary      Crear combo en un catálogo
// @Tags         combos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ComboInstanceRequest  true  "Combo"
// @Success      201  {object}  dto.ComboInstanceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/combos/instances [post]
func (h *ComboHandler) CreateInstance(c *fiber.Ctx) error {
	var in dto.ComboInstanceRequest
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.CreateInstance(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateInstance godoc
// @Summary      Actualizar combo de catálogo
// @Tags         combos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID"
// @Param        body  body  dto.ComboInstanceRequest  true  "Combo"
// @Success      200  {object}  dto.ComboInstanceResponse
// @Router       /api/combos/instances/{id} [put]
func (h *ComboHandler) UpdateInstance(c *fiber.Ctx) error {
	var in dto.ComboInstanceRequest
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.UpdateInstance(c.UserContext(), param(c, "id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// DeleteInstance godoc
// @Summary      Eliminar combo de catálogo
// @Tags         combos
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      204
// @Router       /api/combos/instances/{id} [delete]
func (h *ComboHandler) DeleteInstance(c *fiber.Ctx) error {
	if err := h.uc.DeleteInstance(c.UserContext(), param(c, "id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
