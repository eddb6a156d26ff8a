package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Catalogos-api/internal/application/dto"
	"github.com/jhoicas/Catalogos-api/internal/application/usecase"
	"github.com/jhoicas/Catalogos-api/internal/domain/entity"
)

// ContentHandler textos e imágenes de tiendas y combos.
type ContentHandler struct {
	uc *usecase.ContentUseCase
}

// NewContentHandler construye el handler.
func NewContentHandler(uc *usecase.ContentUseCase) *ContentHandler {
	return &ContentHandler{uc: uc}
}

// contentKey arma la clave a partir de la ruta: /stores/:country/:name/... o /combos/:id/...
func contentKey(c *fiber.Ctx) entity.ContentKey {
	if id := param(c, "id"); id != "" {
		return entity.ComboContentKey(id)
	}
	return entity.StoreContentKey(storeKeyParam(c))
}

// Get godoc
// @Summary      Contenido de una tienda o combo
// @Tags         content
// @Security     Bearer
// @Produce      json
// @Param        country  path  string  true  "País"
// @Param        name     path  string  true  "Nombre"
// @Success      200  {object}  entity.Content
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stores/{country}/{name}/content [get]
// @Router       /api/combos/{id}/content [get]
func (h *ContentHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), contentKey(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Set godoc
// @Summary      Reemplazar contenido (todo vacío lo borra)
// @Tags         content
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ContentRequest  true  "Textos"
// @Success      200  {object}  entity.Content
// @Router       /api/stores/{country}/{name}/content [put]
// @Router       /api/combos/{id}/content [put]
func (h *ContentHandler) Set(c *fiber.Ctx) error {
	var in dto.ContentRequest
	if err := bind(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.Set(c.UserContext(), contentKey(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// UploadImage godoc
// @Summary      Subir imagen (multipart, campo "file")
// @Tags         content
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Imagen"
// @Success      201  {object}  dto.ImageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stores/{country}/{name}/image [post]
// @Router       /api/combos/{id}/image [post]
func (h *ContentHandler) UploadImage(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "MISSING_FILE", "el campo file es requerido")
	}
	f, err := fh.Open()
	if err != nil {
		return badRequest(c, "INVALID_FILE", "no se pudo leer el archivo")
	}
	defer f.Close()

	out, err := h.uc.UploadImage(c.UserContext(), contentKey(c), fh.Filename, fh.Header.Get("Content-Type"), fh.Size, f)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ImageURL godoc
// @Summary      Imagen con URL temporal de lectura
// @Tags         content
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ImageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stores/{country}/{name}/image [get]
// @Router       /api/combos/{id}/image [get]
func (h *ContentHandler) ImageURL(c *fiber.Ctx) error {
	out, err := h.uc.ImageURL(c.UserContext(), contentKey(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// DeleteImage godoc
// @Summary      Borrar imagen
// @Tags         content
// @Security     Bearer
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stores/{country}/{name}/image [delete]
// @Router       /api/combos/{id}/image [delete]
func (h *ContentHandler) DeleteImage(c *fiber.Ctx) error {
	if err := h.uc.DeleteImage(c.UserContext(), contentKey(c)); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ServeBlob godoc
// @Summary      Descargar objeto del blob store en memoria (URL firmada)
// @Tags         content
// @Produce      octet-stream
// @Param        key      path   string  true  "Clave del objeto"
// @Param        expires  query  int     true  "Expiración (unix)"
// @Success      200
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/blobs/{key} [get]
func (h *ContentHandler) ServeBlob(c *fiber.Ctx) error {
	expires, err := strconv.ParseInt(c.Query("expires"), 10, 64)
	if err != nil || time.Now().Unix() > expires {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "URL_EXPIRED", Message: "URL vencida o inválida"})
	}
	rc, info, err := h.uc.OpenImage(c.UserContext(), param(c, "*"))
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, info.ContentType)
	c.Set(fiber.HeaderCacheControl, "private, max-age=300")
	return c.SendStream(rc, int(info.Size))
}
