package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"
	"golang.org/x/net/context"

	"JerseyVision/internal/entity"
)

const digitWhitelist = "0123456789"

// tesseractEngine wraps a single long-lived gosseract client. Tesseract is
// configured for single-thread CPU execution and is not safe for concurrent
// invocation, so every DetectText call holds the mutex for the full
// recognition round-trip.
type tesseractEngine struct {
	mu     sync.Mutex
	client *gosseract.Client
}

// NewTesseractEngine creates and warms up the Tesseract engine. The warm-up
// recognition forces the language model to load here rather than on the first
// request, so a missing or broken tessdata installation fails process startup
// instead of the first caller.
func NewTesseractEngine() (*tesseractEngine, error) {
	client := gosseract.NewClient()

	if err := client.SetLanguage("eng"); err != nil {
		client.Close()
		return nil, fmt.Errorf("set language: %w", err)
	}

	if err := client.SetWhitelist(digitWhitelist); err != nil {
		client.Close()
		return nil, fmt.Errorf("set whitelist: %w", err)
	}

	if err := client.SetPageSegMode(gosseract.PSM_SPARSE_TEXT); err != nil {
		client.Close()
		return nil, fmt.Errorf("set page segmentation mode: %w", err)
	}

	engine := &tesseractEngine{client: client}
	if err := engine.warmUp(); err != nil {
		client.Close()
		return nil, fmt.Errorf("warm up tesseract: %w", err)
	}

	return engine, nil
}

func (e *tesseractEngine) Name() string { return "tesseract" }

func (e *tesseractEngine) DetectText(ctx context.Context, variant entity.Variant) ([]entity.RawObservation, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.client.SetImageFromBytes(variant.Image); err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}

	boxes, err := e.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("get bounding boxes: %w", err)
	}

	return observationsFromBoxes(boxes, variant), nil
}

func (e *tesseractEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.client.Close()
}

func (e *tesseractEngine) warmUp() error {
	blank, err := blankPNG(32, 32)
	if err != nil {
		return err
	}

	if err := e.client.SetImageFromBytes(blank); err != nil {
		return err
	}

	_, err = e.client.Text()
	return err
}

// observationsFromBoxes converts word-level Tesseract boxes into the common
// observation record. Confidence arrives as a percentage and is normalized to
// [0, 1]; box corners are divided by the variant scale so every observation
// shares the capped source-image coordinate space.
func observationsFromBoxes(boxes []gosseract.BoundingBox, variant entity.Variant) []entity.RawObservation {
	observations := make([]entity.RawObservation, 0, len(boxes))

	sx := variant.ScaleX
	if sx <= 0 {
		sx = 1
	}
	sy := variant.ScaleY
	if sy <= 0 {
		sy = 1
	}

	for _, b := range boxes {
		word := strings.TrimSpace(b.Word)
		if word == "" {
			continue
		}

		confidence := b.Confidence / 100.0
		if confidence < 0 {
			confidence = 0
		}
		if confidence > 1 {
			confidence = 1
		}

		minX := float64(b.Box.Min.X) / sx
		minY := float64(b.Box.Min.Y) / sy
		maxX := float64(b.Box.Max.X) / sx
		maxY := float64(b.Box.Max.Y) / sy

		observations = append(observations, entity.RawObservation{
			Text:       word,
			Confidence: confidence,
			Box: entity.Quad{
				{X: minX, Y: minY},
				{X: maxX, Y: minY},
				{X: maxX, Y: maxY},
				{X: minX, Y: maxY},
			},
			Variant: variant.Kind,
		})
	}

	return observations
}

func blankPNG(w, h int) ([]byte, error) {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xFF
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
