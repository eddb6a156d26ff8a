package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Catalogos-api/internal/application/export"
)

// ExportHandler hoja PDF y feed XML de la vista efectiva de un tenant.
type ExportHandler struct {
	uc *export.UseCase
}

// NewExportHandler construye el handler.
func NewExportHandler(uc *export.UseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

// PDF godoc
// @Summary      Hoja PDF del catálogo del tenant
// @Tags         exports
// @Security     Bearer
// @Produce      application/pdf
// @Param        id          path   string  true   "ID del tenant"
// @Param        catalog_id  query  string  false  "Catálogo (por defecto el asignado)"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tenants/{id}/export/pdf [get]
func (h *ExportHandler) PDF(c *fiber.Ctx) error {
	tenantID := param(c, "id")
	doc, err := h.uc.PDF(c.UserContext(), tenantID, c.Query("catalog_id"))
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="catalogo-%s.pdf"`, tenantID))
	return c.Send(doc)
}

// Feed godoc
// @Summary      Feed XML del catálogo del tenant
// @Description  Responde 304 si If-None-Match coincide con el ETag (digest del XML canónico).
// @Tags         exports
// @Security     Bearer
// @Produce      application/xml
// @Param        id          path   string  true   "ID del tenant"
// @Param        catalog_id  query  string  false  "Catálogo (por defecto el asignado)"
// @Success      200
// @Success      304
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tenants/{id}/export/feed [get]
func (h *ExportHandler) Feed(c *fiber.Ctx) error {
	doc, etag, err := h.uc.Feed(c.UserContext(), param(c, "id"), c.Query("catalog_id"))
	if err != nil {
		return fail(c, err)
	}
	quoted := `"` + etag + `"`
	c.Set(fiber.HeaderETag, quoted)
	if match := c.Get(fiber.HeaderIfNoneMatch); match == quoted || match == etag {
		return c.SendStatus(fiber.StatusNotModified)
	}
	c.Set(fiber.HeaderContentType, "application/xml; charset=utf-8")
	return c.Send(doc)
}
