package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Catalogos-api/internal/application/dto"
	"github.com/jhoicas/Catalogos-api/internal/application/tenant"
)

// TenantHandler tenants, su vista efectiva y la personalización por catálogo.
type TenantHandler struct {
	uc *tenant.UseCase
}

// NewTenantHandler construye el handler.
func NewTenantHandler(uc *tenant.UseCase) *TenantHandler {
	return &TenantHandler{uc: uc}
}

// List godoc
// @Summary      Listar tenants
// @Tags         tenants
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.TenantResponse
// @Router       /api/tenants [get]
func (h *TenantHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener tenant
// @Tags         tenants
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del tenant"
// @Success      200  {object}  dto.TenantResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tenants/{id} [get]
func (h *TenantHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), param(c, "id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// AssignCatalog godoc
// @Summary      Asignar catálogo activo
// @Tags         tenants
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del tenant"
// @Param        body  body  dto.AssignCatalogRequest  true  "Catálogo"
// @Success      200   {object}  dto.TenantResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/tenants/{id}/catalog [put]
func (h *TenantHandler) AssignCatalog(c *fiber.Ctx) error {
	var in dto.AssignCatalogRequest
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.AssignCatalog(c.UserContext(), param(c, "id"), in.CatalogID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// SetNotes godoc
// @Summary      Notas del tenant
// @Tags         tenants
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string            true  "ID del tenant"
// @Param        body  body  dto.NotesRequest  true  "Notas"
// @Success      200   {object}  dto.TenantResponse
// @Router       /api/tenants/{id}/notes [put]
func (h *TenantHandler) SetNotes(c *fiber.Ctx) error {
	var in dto.NotesRequest
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.SetNotes(c.UserContext(), param(c, "id"), in.Notes)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// View godoc
// @Summary      Vista efectiva del tenant
// @Description  Sin catalog_id se usa el catálogo asignado.
// @Tags         tenants
// @Security     Bearer
// @Produce      json
// @Param        id          path   string  true   "ID del tenant"
// @Param        catalog_id  query  string  false  "Catálogo"
// @Success      200  {object}  dto.TenantViewResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tenants/{id}/view [get]
func (h *TenantHandler) View(c *fiber.Ctx) error {
	out, err := h.uc.View(c.UserContext(), param(c, "id"), c.Query("catalog_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// CatalogConfig godoc
// @Summary      Personalización del tenant sobre un catálogo
// @Tags         tenants
// @Security     Bearer
// @Produce      json
// @Param        id         path  string  true  "ID del tenant"
// @Param        catalogId  path  string  true  "ID del catálogo"
// @Success      200  {object}  dto.TenantCatalogResponse
// @Router       /api/tenants/{id}/catalogs/{catalogId} [get]
func (h *TenantHandler) CatalogConfig(c *fiber.Ctx) error {
	out, err := h.uc.CatalogConfig(c.UserContext(), param(c, "id"), param(c, "catalogId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// SetFlag godoc
// @Summary      Activar o desactivar un feature flag
// @Tags         tenants
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id         path  string           true  "ID del tenant"
// @Param        catalogId  path  string           true  "ID del catálogo"
// @Param        body       body  dto.FlagRequest  true  "Flag"
// @Success      200  {object}  dto.TenantCatalogResponse
// @Router       /api/tenants/{id}/catalogs/{catalogId}/flags [put]
func (h *TenantHandler) SetFlag(c *fiber.Ctx) error {
	var in dto.FlagRequest
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.SetFlag(c.UserContext(), param(c, "id"), param(c, "catalogId"), in.Name, in.Enabled)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// ListEvents godoc
// @Summary      Eventos del tenant en un catálogo
// @Tags         events
// @Security     Bearer
// @Produce      json
// @Param        id         path  string  true  "ID del tenant"
// @Param        catalogId  path  string  true  "ID del catálogo"
// @Success      200  {array}  entity.TenantCatalogEvent
// @Router       /api/tenants/{id}/catalogs/{catalogId}/events [get]
func (h *TenantHandler) ListEvents(c *fiber.Ctx) error {
	out, err := h.uc.ListEvents(c.UserContext(), param(c, "id"), param(c, "catalogId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// CreateEvent godoc
// @Summary      Crear evento
// @Tags         events
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id         path  string                  true  "ID del tenant"
// @Param        catalogId  path  string                  true  "ID del catálogo"
// @Param        body       body  dto.CreateEventRequest  true  "Nombre"
// @Success      201  {object}  entity.TenantCatalogEvent
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/tenants/{id}/catalogs/{catalogId}/events [post]
func (h *TenantHandler) CreateEvent(c *fiber.Ctx) error {
	var in dto.CreateEventRequest
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.CreateEvent(c.UserContext(), param(c, "id"), param(c, "catalogId"), in.Name)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// SelectEvent godoc
// @Summary      Seleccionar evento
// @Tags         events
// @Security     Bearer
// @Produce      json
// @Param        id         path  string  true  "ID del tenant"
// @Param        catalogId  path  string  true  "ID del catálogo"
// @Param        eventId    path  string  true  "ID del evento"
// @Success      200  {object}  dto.TenantCatalogResponse
// @Router       /api/tenants/{id}/catalogs/{catalogId}/events/{eventId}/select [put]
func (h *TenantHandler) SelectEvent(c *fiber.Ctx) error {
	out, err := h.uc.SelectEvent(c.UserContext(), param(c, "id"), param(c, "catalogId"), param(c, "eventId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// DeleteEvent godoc
// @Summary      Eliminar evento
// @Description  El evento default no se puede eliminar.
// @Tags         events
// @Security     Bearer
// @Produce      json
// @Param        id         path  string  true  "ID del tenant"
// @Param        catalogId  path  string  true  "ID del catálogo"
// @Param        eventId    path  string  true  "ID del evento"
// @Success      200  {object}  dto.TenantCatalogResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/tenants/{id}/catalogs/{catalogId}/events/{eventId} [delete]
func (h *TenantHandler) DeleteEvent(c *fiber.Ctx) error {
	out, err := h.uc.DeleteEvent(c.UserContext(), param(c, "id"), param(c, "catalogId"), param(c, "eventId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// SetEventDiscount godoc
// @Summary      Descuento de una tienda en el evento (0 quita el override)
// @Tags         events
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id         path  string                    true  "ID del tenant"
// @Param        catalogId  path  string                    true  "ID del catálogo"
// @Param        eventId    path  string                    true  "ID del evento"
// @Param        body       body  dto.EventDiscountRequest  true  "Descuento"
// @Success      200  {object}  dto.TenantCatalogResponse
// @Router       /api/tenants/{id}/catalogs/{catalogId}/events/{eventId}/discounts [put]
func (h *TenantHandler) SetEventDiscount(c *fiber.Ctx) error {
	var in dto.EventDiscountRequest
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.SetEventDiscount(c.UserContext(), param(c, "id"), param(c, "catalogId"), param(c, "eventId"), in.StoreName, in.Value)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// SetEventStores godoc
// @Summary      Tiendas visibles del evento
// @Tags         events
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id         path  string            true  "ID del tenant"
// @Param        catalogId  path  string            true  "ID del catálogo"
// @Param        eventId    path  string            true  "ID del evento"
// @Param        body       body  dto.NamesRequest  true  "Tiendas"
// @Success      200  {object}  dto.TenantCatalogResponse
// @Router       /api/tenants/{id}/catalogs/{catalogId}/events/{eventId}/stores [put]
func (h *TenantHandler) SetEventStores(c *fiber.Ctx) error {
	var in dto.NamesRequest
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.SetEventStores(c.UserContext(), param(c, "id"), param(c, "catalogId"), param(c, "eventId"), in.Names)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// SetEventCombos godoc
// @Summary      Combos visibles del evento
// @Tags         events
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id         path  string            true  "ID del tenant"
// @Param        catalogId  path  string            true  "ID del catálogo"
// @Param        eventId    path  string            true  "ID del evento"
// @Param        body       body  dto.NamesRequest  true  "IDs de combos"
// @Success      200  {object}  dto.TenantCatalogResponse
// @Router       /api/tenants/{id}/catalogs/{catalogId}/events/{eventId}/combos [put]
func (h *TenantHandler) SetEventCombos(c *fiber.Ctx) error {
	var in dto.NamesRequest
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.SetEventCombos(c.UserContext(), param(c, "id"), param(c, "catalogId"), param(c, "eventId"), in.Names)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// SetEventOrder godoc
// @Summary      Orden de tiendas del evento
// @Tags         events
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id         path  string            true  "ID del tenant"
// @Param        catalogId  path  string            true  "ID del catálogo"
// @Param        eventId    path  string            true  "ID del evento"
// @Param        body       body  dto.OrderRequest  true  "Orden"
// @Success      200  {object}  dto.TenantCatalogResponse
// @Router       /api/tenants/{id}/catalogs/{catalogId}/events/{eventId}/order [put]
func (h *TenantHandler) SetEventOrder(c *fiber.Ctx) error {
	var in dto.OrderRequest
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.SetEventOrder(c.UserContext(), param(c, "id"), param(c, "catalogId"), param(c, "eventId"), in.Order)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// SetHiddenStores godoc
// @Summary      Tiendas ocultas para el tenant
// @Tags         tenants
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id         path  string            true  "ID del tenant"
// @Param        catalogId  path  string            true  "ID del catálogo"
// @Param        body       body  dto.NamesRequest  true  "Tiendas"
// @Success      200  {object}  dto.TenantCatalogResponse
// @Router       /api/tenants/{id}/catalogs/{catalogId}/hidden-stores [put]
func (h *TenantHandler) SetHiddenStores(c *fiber.Ctx) error {
	var in dto.NamesRequest
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.SetHiddenStores(c.UserContext(), param(c, "id"), param(c, "catalogId"), in.Names)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// SetForcedSupplier godoc
// @Summary      Proveedor forzado (null lo quita)
// @Tags         tenants
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id         path  string                     true  "ID del tenant"
// @Param        catalogId  path  string                     true  "ID del catálogo"
// @Param        body       body  dto.ForcedSupplierRequest  true  "Proveedor"
// @Success      200  {object}  dto.TenantCatalogResponse
// @Router       /api/tenants/{id}/catalogs/{catalogId}/forced-supplier [put]
func (h *TenantHandler) SetForcedSupplier(c *fiber.Ctx) error {
	var in dto.ForcedSupplierRequest
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.SetForcedSupplier(c.UserContext(), param(c, "id"), param(c, "catalogId"), in.SupplierID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
