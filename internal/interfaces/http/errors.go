package http

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Catalogos-api/internal/application/dto"
	"github.com/jhoicas/Catalogos-api/internal/domain"
	"github.com/jhoicas/Catalogos-api/internal/infrastructure/memory"
)

// validate validador compartido de DTOs.
var validate = validator.New()

var errInvalidBody = errors.New("cuerpo inválido")

// bind parsea el cuerpo JSON y valida los tags del DTO.
func bind(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return fmt.Errorf("%w: %v", errInvalidBody, err)
	}
	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, validationMessage(err))
	}
	return nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fe.Field()+": "+fe.Tag())
	}
	return strings.Join(parts, "; ")
}

// errorStatus traduce los errores de dominio a código HTTP y código de error.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, errInvalidBody):
		return fiber.StatusBadRequest, "INVALID_BODY"
	case errors.Is(err, domain.ErrCatalogNotFound):
		return fiber.StatusNotFound, "CATALOG_NOT_FOUND"
	case errors.Is(err, domain.ErrParentNotFound):
		return fiber.StatusNotFound, "PARENT_NOT_FOUND"
	case errors.Is(err, domain.ErrTenantNotFound):
		return fiber.StatusNotFound, "TENANT_NOT_FOUND"
	case errors.Is(err, domain.ErrStoreNotFound):
		return fiber.StatusNotFound, "STORE_NOT_FOUND"
	case errors.Is(err, domain.ErrEventNotFound):
		return fiber.StatusNotFound, "EVENT_NOT_FOUND"
	case errors.Is(err, domain.ErrComboNotFound):
		return fiber.StatusNotFound, "COMBO_NOT_FOUND"
	case errors.Is(err, domain.ErrSwapListNotFound):
		return fiber.StatusNotFound, "SWAP_LIST_NOT_FOUND"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrInvalidBranch):
		return fiber.StatusBadRequest, "INVALID_BRANCH"
	case errors.Is(err, domain.ErrCurrencyMismatch):
		return fiber.StatusBadRequest, "CURRENCY_MISMATCH"
	case errors.Is(err, domain.ErrSupplierNotOffering):
		return fiber.StatusBadRequest, "SUPPLIER_NOT_OFFERING"
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrDefaultEventLocked):
		return fiber.StatusConflict, "DEFAULT_EVENT_LOCKED"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, memory.ErrPersist):
		return fiber.StatusServiceUnavailable, "PERSISTENCE_FAILED"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}

// fail responde el error con el formato dto.ErrorResponse.
func fail(c *fiber.Ctx, err error) error {
	status, code := errorStatus(err)
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}

func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

// ErrorHandler respuesta JSON para errores que llegan a Fiber sin pasar por un handler (404 de ruta, panics recuperados).
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := "HTTP_ERROR"
		if fe.Code == fiber.StatusNotFound {
			code = "ROUTE_NOT_FOUND"
		}
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: code, Message: fe.Message})
	}
	return fail(c, err)
}
