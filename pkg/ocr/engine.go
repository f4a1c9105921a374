package ocr

import (
	"sync"

	"golang.org/x/net/context"

	"JerseyVision/internal/entity"
)

// IEngine is the recognition capability boundary: one variant image in, zero
// or more raw text observations out. Implementations normalize whatever the
// underlying engine returns into entity.RawObservation records tagged with
// the originating variant kind, with boxes mapped back to source-image
// coordinates. Returning an empty slice means "no text found" and is not an
// error.
type IEngine interface {
	Name() string
	DetectText(ctx context.Context, variant entity.Variant) ([]entity.RawObservation, error)
}

var (
	defaultEngine IEngine
	defaultMu     sync.Mutex
)

// Default returns the process-wide engine, creating the Tesseract-backed one
// on first use. The instance is shared across requests; implementations are
// responsible for serializing access internally.
func Default() (IEngine, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultEngine != nil {
		return defaultEngine, nil
	}

	engine, err := NewTesseractEngine()
	if err != nil {
		return nil, err
	}

	defaultEngine = engine
	return defaultEngine, nil
}

// SetDefault replaces the process-wide engine. Intended for tests that need a
// deterministic engine behind code paths using Default().
func SetDefault(engine IEngine) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultEngine = engine
}

// ResetDefault tears down the process-wide engine so the next Default() call
// re-initializes it. Closes the current engine if it supports closing.
func ResetDefault() {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if c, ok := defaultEngine.(interface{ Close() error }); ok {
		_ = c.Close()
	}
	defaultEngine = nil
}
