package config

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

func NewFiber(logger *logrus.Logger) *fiber.App {
	app := fiber.New(
		fiber.Config{
			AppName: "JerseyVision API",
			// Payload ceiling enforced before any decoding happens.
			BodyLimit:         16 * 1024 * 1024,
			DisableKeepalive:  false,
			StrictRouting:     true,
			CaseSensitive:     true,
			EnablePrintRoutes: true,
			JSONEncoder:       jsoniter.Marshal,
			JSONDecoder:       jsoniter.Unmarshal,
			ErrorHandler:      newErrorHandler(logger),
		})

	return app
}

// newErrorHandler keeps framework-level rejections, such as the body limit
// firing before any handler runs, on the same JSON error contract as the
// handlers.
func newErrorHandler(logger *logrus.Logger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
		}

		if code >= fiber.StatusInternalServerError {
			logger.Errorf("Unhandled error on %s: %v", ctx.Path(), err)
		}

		detail := "request rejected"
		if code == fiber.StatusRequestEntityTooLarge {
			detail = "the maximum accepted payload is 16MB"
		}

		return ctx.Status(code).JSON(fiber.Map{
			"error":  err.Error(),
			"detail": detail,
		})
	}
}

func NewValidator() *validator.Validate {
	return validator.New()
}
