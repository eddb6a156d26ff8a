package http

import (
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Catalogos-api/internal/domain/entity"
)

// param devuelve el parámetro de ruta ya decodificado ("Best%20Buy" → "Best Buy").
func param(c *fiber.Ctx, name string) string {
	raw := c.Params(name)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

func storeKeyParam(c *fiber.Ctx) entity.StoreKey {
	return entity.StoreKey{Country: param(c, "country"), Name: param(c, "name")}
}

func intParam(c *fiber.Ctx, name string) (int, bool) {
	n, err := strconv.Atoi(c.Params(name))
	return n, err == nil
}
