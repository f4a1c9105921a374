package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"JerseyVision/internal/api/jersey"
	jerseyHandler "JerseyVision/internal/api/jersey/handler"
	jerseyService "JerseyVision/internal/api/jersey/service"
	"JerseyVision/internal/middleware"
	"JerseyVision/pkg/ocr"
	"JerseyVision/pkg/utils"
	"JerseyVision/pkg/vision"
)

const version = "1.0.0"

type ServerOption func(*Server) error

type Server struct {
	engine           *fiber.App
	log              *logrus.Logger
	middleware       middleware.Middleware
	validator        *validator.Validate
	utils            utils.IUtils
	handlers         []handler
	variantGenerator vision.IVariantGenerator
	ocrEngine        ocr.IEngine
	scoringPolicy    jersey.ScoringPolicy
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if server.ocrEngine == nil {
		return nil, fmt.Errorf("recognition engine is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func WithVariantGenerator() ServerOption {
	return func(s *Server) error {
		s.variantGenerator = vision.New()
		return nil
	}
}

// WithOCREngine initializes the process-wide recognition engine. Model load
// failure aborts startup; the process must not serve requests in a
// partially-initialized state.
func WithOCREngine() ServerOption {
	return func(s *Server) error {
		engine, err := ocr.Default()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to initialize recognition engine: %v", err)
			}
			return fmt.Errorf("failed to initialize recognition engine: %w", err)
		}
		s.ocrEngine = engine
		return nil
	}
}

// WithScoringPolicy loads the extraction and fusion tunables from the
// environment and validates their ranges before the server accepts traffic.
func WithScoringPolicy() ServerOption {
	return func(s *Server) error {
		if s.validator == nil {
			return fmt.Errorf("validator must be initialized before scoring policy")
		}

		policy := jersey.ScoringPolicyFromEnv()
		if err := s.validator.Struct(policy); err != nil {
			return fmt.Errorf("invalid scoring policy: %w", err)
		}

		s.scoringPolicy = policy
		return nil
	}
}

func (s *Server) RegisterHandler() {
	jerseyServices := jerseyService.NewJerseyService(s.log, s.variantGenerator, s.ocrEngine, s.scoringPolicy)
	jerseyHandlers := jerseyHandler.New(s.log, s.validator, s.middleware, jerseyServices, s.utils)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, jerseyHandlers)
}

func (s *Server) Run() error {
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(middleware.LoggerConfig())

	for _, h := range s.handlers {
		h.Start(s.engine)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

// Shutdown releases the recognition engine after the HTTP listener stops.
func (s *Server) Shutdown() {
	if err := s.engine.Shutdown(); err != nil {
		s.log.Errorf("Error shutting down fiber: %v", err)
	}
	ocr.ResetDefault()
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"status":  "ok",
			"message": "Jersey number detection API is running",
			"version": version,
		})
	})
}
