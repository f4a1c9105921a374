package entity

// VariantKind names one deterministic preprocessing transform applied to the
// source image before recognition.
type VariantKind string

const (
	VariantOriginal              VariantKind = "original"
	VariantSharpenedClaheGray    VariantKind = "sharpened_clahe_gray"
	VariantAdaptiveThresholdGray VariantKind = "adaptive_threshold_gray"
	VariantUpscale2xSharpened    VariantKind = "upscale2x_sharpened"
	VariantUpscale2xAdaptive     VariantKind = "upscale2x_adaptive"
)

// Variant is one preprocessed rendition of the source image. Image holds the
// PNG-encoded pixels handed to the recognition engine. ScaleX and ScaleY map
// variant coordinates back to source-image space (2.0 for upscaled variants).
type Variant struct {
	Kind   VariantKind
	Image  []byte
	ScaleX float64
	ScaleY float64
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Quad is a four-point bounding region, clockwise from the top-left corner,
// in source-image coordinates.
type Quad [4]Point

// RawObservation is one text detection returned by the recognition engine for
// one variant, normalized to the common record shape.
type RawObservation struct {
	Text       string
	Confidence float64
	Box        Quad
	Variant    VariantKind
}

// Candidate is a validated numeric interpretation of one observation.
// Number always matches ^[0-9]{1,3}$ with a value in [0, 999].
type Candidate struct {
	Number           string
	Confidence       float64
	Box              Quad
	Variant          VariantKind
	OccurrenceWeight int
}
