package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Catalogos-api/internal/application/catalog"
	"github.com/jhoicas/Catalogos-api/internal/application/dto"
)

// CatalogHandler catálogos base, ramas y personalización por tienda.
type CatalogHandler struct {
	uc *catalog.UseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *catalog.UseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// List godoc
// @Summary      Listar catálogos
// @Tags         catalogs
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.CatalogListResponse
// @Router       /api/catalogs [get]
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "INVALID_QUERY", "parámetros de paginación inválidos")
	}
	page.Normalize()
	out, err := h.uc.List(c.UserContext(), page)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener catálogo (definición cruda)
// @Tags         catalogs
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del catálogo"
// @Success      200  {object}  entity.Catalog
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/catalogs/{id} [get]
func (h *CatalogHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), param(c, "id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Effective godoc
// @Summary      Catálogo efectivo (ramas resueltas, tiendas inactivas filtradas)
// @Tags         catalogs
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del catálogo"
// @Success      200  {object}  dto.EffectiveCatalogResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/catalogs/{id}/effective [get]
func (h *CatalogHandler) Effective(c *fiber.Ctx) error {
	out, err := h.uc.Effective(c.UserContext(), param(c, "id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear catálogo base
// @Tags         catalogs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCatalogRequest  true  "País, nombre y tiendas"
// @Success      201   {object}  entity.Catalog
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/catalogs [post]
func (h *CatalogHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCatalogRequest
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.CreateCatalog(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateBranch godoc
// @Summary      Crear rama de un catálogo base
// @Tags         catalogs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del catálogo padre"
// @Param        body  body  dto.CreateBranchRequest  true  "Nombre de la rama"
// @Success      201   {object}  entity.Catalog
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/catalogs/{id}/branches [post]
func (h *CatalogHandler) CreateBranch(c *fiber.Ctx) error {
	var in dto.CreateBranchRequest
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	in.ParentID = param(c, "id")
	out, err := h.uc.CreateBranch(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DeleteBranch godoc
// @Summary      Eliminar rama
// @Description  Los tenants asignados pasan al padre (o al catálogo base del país).
// @Tags         catalogs
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la rama"
// @Success      200  {object}  dto.DeleteBranchResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/catalogs/{id} [delete]
func (h *CatalogHandler) DeleteBranch(c *fiber.Ctx) error {
	out, err := h.uc.DeleteBranch(c.UserContext(), param(c, "id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// AddStore godoc
// @Summary      Agregar tienda al catálogo
// @Tags         catalogs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID del catálogo"
// @Param        body  body  dto.StoreNameRequest  true  "Tienda"
// @Success      200   {object}  entity.Catalog
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/catalogs/{id}/stores [post]
func (h *CatalogHandler) AddStore(c *fiber.Ctx) error {
	var in dto.StoreNameRequest
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.AddStore(c.UserContext(), param(c, "id"), in.StoreName)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// RemoveStore godoc
// @Summary      Quitar tienda del catálogo
// @Tags         catalogs
// @Security     Bearer
// @Produce      json
// @Param        id     path  string  true  "ID del catálogo"
// @Param        store  path  string  true  "Nombre de la tienda"
// @Success      200    {object}  entity.Catalog
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/catalogs/{id}/stores/{store} [delete]
func (h *CatalogHandler) RemoveStore(c *fiber.Ctx) error {
	out, err := h.uc.RemoveStore(c.UserContext(), param(c, "id"), param(c, "store"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// SetStoreDiscount godoc
// @Summary      Descuento de una tienda (null lo quita)
// @Tags         catalogs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id     path  string                   true  "ID del catálogo"
// @Param        store  path  string                   true  "Nombre de la tienda"
// @Param        body   body  dto.DecimalValueRequest  true  "Porcentaje"
// @Success      200    {object}  entity.Catalog
// @Router       /api/catalogs/{id}/stores/{store}/discount [put]
func (h *CatalogHandler) SetStoreDiscount(c *fiber.Ctx) error {
	var in dto.DecimalValueRequest
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.SetStoreDiscount(c.UserContext(), param(c, "id"), param(c, "store"), in.Value)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// SetStoreFee godoc
// @Summary      Fee de una tienda (null lo quita)
// @Tags         catalogs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id     path  string                   true  "ID del catálogo"
// @Param        store  path  string                   true  "Nombre de la tienda"
// @Param        body   body  dto.DecimalValueRequest  true  "Fee"
// @Success      200    {object}  entity.Catalog
// @Router       /api/catalogs/{id}/stores/{store}/fee [put]
func (h *CatalogHandler) SetStoreFee(c *fiber.Ctx) error {
	var in dto.DecimalValueRequest
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.SetStoreFee(c.UserContext(), param(c, "id"), param(c, "store"), in.Value)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// SetStoreCSS godoc
// @Summary      Clase CSS de una tienda
// @Tags         catalogs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id     path  string          true  "ID del catálogo"
// @Param        store  path  string          true  "Nombre de la tienda"
// @Param        body   body  dto.CSSRequest  true  "CSS"
// @Success      200    {object}  entity.Catalog
// @Router       /api/catalogs/{id}/stores/{store}/css [put]
func (h *CatalogHandler) SetStoreCSS(c *fiber.Ctx) error {
	var in dto.CSSRequest
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.SetStoreCSS(c.UserContext(), param(c, "id"), param(c, "store"), in.CSS)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// SetCatalogFee godoc
// @Summary      Fee general del catálogo (null lo quita)
// @Tags         catalogs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del catálogo"
// @Param        body  body  dto.DecimalValueRequest  true  "Fee"
// @Success      200   {object}  entity.Catalog
// @Router       /api/catalogs/{id}/fee [put]
func (h *CatalogHandler) SetCatalogFee(c *fiber.Ctx) error {
	var in dto.DecimalValueRequest
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.SetCatalogFee(c.UserContext(), param(c, "id"), in.Value)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// SetOrder godoc
// @Summary      Orden de tiendas del catálogo
// @Tags         catalogs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string            true  "ID del catálogo"
// @Param        body  body  dto.OrderRequest  true  "Nombres en orden"
// @Success      200   {object}  entity.Catalog
// @Router       /api/catalogs/{id}/order [put]
func (h *CatalogHandler) SetOrder(c *fiber.Ctx) error {
	var in dto.OrderRequest
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.SetOrder(c.UserContext(), param(c, "id"), in.Order)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
