package jerseyService

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"JerseyVision/internal/api/jersey"
	"JerseyVision/pkg/ocr"
	"JerseyVision/pkg/vision"
)

type IJerseyService interface {
	Predict(ctx context.Context, imageData []byte) (*jersey.PredictResponse, error)
}

type jerseyService struct {
	log       *logrus.Logger
	generator vision.IVariantGenerator
	engine    ocr.IEngine
	policy    jersey.ScoringPolicy
}

func NewJerseyService(
	log *logrus.Logger,
	generator vision.IVariantGenerator,
	engine ocr.IEngine,
	policy jersey.ScoringPolicy,
) IJerseyService {
	return &jerseyService{
		log:       log,
		generator: generator,
		engine:    engine,
		policy:    policy,
	}
}
