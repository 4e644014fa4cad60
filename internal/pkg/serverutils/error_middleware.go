package serverutils

import (
	"errors"

	"inspire-it-be/internal/pkg/apperrors"
	"inspire-it-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps typed failures to HTTP statuses. Backend
// failures (retrieval, completion, parse) report 502; every failure is
// terminal for the triggering action, the client re-acts explicitly.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status := fiber.StatusInternalServerError
		message := "internal server error"

		var appErr *apperrors.Error
		if errors.As(err, &appErr) {
			message = appErr.Message
			switch appErr.Kind {
			case apperrors.KindValidation:
				status = fiber.StatusBadRequest
			case apperrors.KindNotFound:
				status = fiber.StatusNotFound
			case apperrors.KindRetrieval, apperrors.KindCompletion, apperrors.KindConnection:
				status = fiber.StatusBadGateway
			case apperrors.KindParse:
				// The raw cause stays in the logs; the client only sees a
				// generic failure and retries.
				status = fiber.StatusBadGateway
				message = "failed to generate"
			}
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			status = fiberErr.Code
			message = fiberErr.Message
		}

		log.Error("http", "request failed", map[string]interface{}{
			"path":   ctx.Path(),
			"status": status,
			"error":  err.Error(),
		})

		return ctx.Status(status).JSON(ErrorResponse(message))
	}
}
