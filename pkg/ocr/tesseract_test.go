package ocr

import (
	"image"
	"testing"

	"github.com/otiai10/gosseract/v2"
	"golang.org/x/net/context"

	"JerseyVision/internal/entity"
)

func TestObservationsFromBoxes(t *testing.T) {
	variant := entity.Variant{Kind: entity.VariantUpscale2xSharpened, ScaleX: 2, ScaleY: 2}

	boxes := []gosseract.BoundingBox{
		{Box: image.Rect(20, 40, 60, 80), Word: "23", Confidence: 87.5},
		{Box: image.Rect(0, 0, 10, 10), Word: "   ", Confidence: 90},
		{Box: image.Rect(4, 4, 8, 8), Word: "7", Confidence: 120},
	}

	observations := observationsFromBoxes(boxes, variant)
	if len(observations) != 2 {
		t.Fatalf("expected 2 observations (blank word skipped), got %d", len(observations))
	}

	first := observations[0]
	if first.Text != "23" {
		t.Errorf("text = %q, want %q", first.Text, "23")
	}
	if first.Variant != entity.VariantUpscale2xSharpened {
		t.Errorf("variant = %q, want %q", first.Variant, entity.VariantUpscale2xSharpened)
	}
	if first.Confidence != 0.875 {
		t.Errorf("confidence = %v, want 0.875", first.Confidence)
	}

	// Upscaled coordinates map back to base-image space.
	wantQuad := entity.Quad{
		{X: 10, Y: 20},
		{X: 30, Y: 20},
		{X: 30, Y: 40},
		{X: 10, Y: 40},
	}
	if first.Box != wantQuad {
		t.Errorf("box = %v, want %v", first.Box, wantQuad)
	}

	// Confidence above 100 percent clamps to 1.
	if observations[1].Confidence != 1 {
		t.Errorf("clamped confidence = %v, want 1", observations[1].Confidence)
	}
}

func TestObservationsFromBoxesZeroScale(t *testing.T) {
	variant := entity.Variant{Kind: entity.VariantOriginal}

	boxes := []gosseract.BoundingBox{
		{Box: image.Rect(5, 5, 15, 15), Word: "8", Confidence: 50},
	}

	observations := observationsFromBoxes(boxes, variant)
	if len(observations) != 1 {
		t.Fatalf("expected 1 observation, got %d", len(observations))
	}
	if observations[0].Box[0].X != 5 {
		t.Errorf("unset scale must default to 1, got box %v", observations[0].Box)
	}
}

func TestBlankPNG(t *testing.T) {
	data, err := blankPNG(32, 32)
	if err != nil {
		t.Fatalf("blankPNG: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("blankPNG returned empty payload")
	}
}

func TestDefaultEngineOverride(t *testing.T) {
	t.Cleanup(ResetDefault)

	fake := stubEngine{}
	SetDefault(fake)

	engine, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if engine.Name() != "stub" {
		t.Errorf("engine = %q, want the stub override", engine.Name())
	}
}

type stubEngine struct{}

func (stubEngine) Name() string { return "stub" }

func (stubEngine) DetectText(ctx context.Context, variant entity.Variant) ([]entity.RawObservation, error) {
	return nil, nil
}
