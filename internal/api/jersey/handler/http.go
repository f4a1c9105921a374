package jerseyHandler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	jerseyService "JerseyVision/internal/api/jersey/service"
	"JerseyVision/internal/middleware"
	"JerseyVision/pkg/utils"
)

type JerseyHandler struct {
	log           *logrus.Logger
	validator     *validator.Validate
	middleware    middleware.Middleware
	jerseyService jerseyService.IJerseyService
	utils         utils.IUtils
}

func New(
	log *logrus.Logger,
	validator *validator.Validate,
	middleware middleware.Middleware,
	js jerseyService.IJerseyService,
	utils utils.IUtils,
) *JerseyHandler {
	return &JerseyHandler{
		log:           log,
		validator:     validator,
		middleware:    middleware,
		jerseyService: js,
		utils:         utils,
	}
}

func (h *JerseyHandler) Start(srv fiber.Router) {
	srv.Post("/predict", h.middleware.NewRateLimiter, h.Predict)
}
