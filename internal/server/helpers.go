package server

import (
	"errors"
	"log/slog"

	"hiresynapse/internal/middleware"
	"hiresynapse/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+param))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// parseBody decodes the JSON body into dst, writing a 400 on failure.
func parseBody(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
		return errResponseWritten
	}
	return nil
}

// respondServiceError maps an AppError code to its HTTP status. NOT_FOUND and FORBIDDEN
// produce the same opaque body so a caller cannot tell another account's row from a missing one.
func respondServiceError(c *fiber.Ctx, err error) error {
	switch code := models.ErrorCode(err); {
	case code == models.CodeValidation:
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	case models.IsAccessDenied(err):
		return models.RespondWithError(c, fiber.StatusNotFound, &models.AppError{
			Code:    models.CodeNotFound,
			Message: "Not found",
		})
	case code == models.CodeUnauthorized:
		return models.RespondWithError(c, fiber.StatusUnauthorized, err)
	default:
		middleware.Logger.ErrorContext(c.UserContext(), "request failed",
			slog.String("path", c.Path()),
			slog.String("error", err.Error()))
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}
}
