package serverutils

import (
	"errors"

	"db-qa-be/internal/pkg/logger"
	"db-qa-be/pkg/database"
	"db-qa-be/pkg/qa/pipeline"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware translates service errors into the JSON envelope.
// Per-request failures never crash the process: everything unrecognized
// becomes a logged 500.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status := fiber.StatusInternalServerError

		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &fiberErr):
			status = fiberErr.Code
		case errors.Is(err, database.ErrUnknownTable),
			errors.Is(err, pipeline.ErrCheckpointNotFound):
			status = fiber.StatusNotFound
		}

		if status >= fiber.StatusInternalServerError {
			log.Error("http", "request failed", map[string]interface{}{
				"path":  ctx.Path(),
				"error": err.Error(),
			})
		} else {
			log.Warn("http", "request rejected", map[string]interface{}{
				"path":   ctx.Path(),
				"status": status,
				"error":  err.Error(),
			})
		}

		return ctx.Status(status).JSON(ErrorResponse(err.Error()))
	}
}
