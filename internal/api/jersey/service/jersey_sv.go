package jerseyService

import (
	"errors"
	"math"
	"time"

	"golang.org/x/net/context"

	"JerseyVision/internal/api/jersey"
	"JerseyVision/internal/entity"
	contextPkg "JerseyVision/pkg/context"
	"JerseyVision/pkg/log"
	"JerseyVision/pkg/vision"
)

// Predict runs the full pipeline for one decoded image: variant generation,
// one recognition pass per variant, candidate extraction and fusion. Variants
// are processed strictly sequentially; the engine is tuned for single-thread
// CPU execution and parallel invocations only contend. A recognition fault on
// one variant is logged and treated as an empty observation set, since the
// remaining variants give independent chances at detection.
func (s *jerseyService) Predict(ctx context.Context, imageData []byte) (*jersey.PredictResponse, error) {
	start := time.Now()

	variants, err := s.generator.Generate(imageData)
	if err != nil {
		if errors.Is(err, vision.ErrUndecodable) {
			return nil, jersey.ErrUndecodableImage
		}
		return nil, err
	}

	candidates := make([]entity.Candidate, 0, 16)
	for _, variant := range variants {
		observations, err := s.engine.DetectText(ctx, variant)
		if err != nil {
			s.log.WithFields(log.Fields{
				"variant": variant.Kind,
				"engine":  s.engine.Name(),
				"error":   err.Error(),
			}).Warn("recognition failed for variant, continuing with remaining variants")
			continue
		}

		for _, observation := range observations {
			if candidate, ok := extractCandidate(observation, s.policy); ok {
				candidates = append(candidates, candidate)
			}
		}
	}

	results := fuseCandidates(candidates, s.policy)

	elapsed := math.Round(float64(time.Since(start).Microseconds())/10) / 100

	s.log.WithFields(log.Fields{
		"request_id":         contextPkg.GetRequestID(ctx),
		"candidates":         len(candidates),
		"results":            len(results),
		"processing_time_ms": elapsed,
	}).Info("jersey number extraction finished")

	return &jersey.PredictResponse{
		Results:          results,
		Count:            len(results),
		ProcessingTimeMS: elapsed,
	}, nil
}
