package vision

import (
	"errors"
	"image"

	"gocv.io/x/gocv"

	"JerseyVision/internal/entity"
)

// Preprocessing constants tuned against a labeled jersey photo set. The cap on
// the longest side keeps preprocessing cost bounded while preserving glyph
// detail; CLAHE and the unsharp mask target poor contrast and blur, the
// adaptive threshold targets uneven illumination, and the 2x upscales recover
// small digits.
const (
	maxSideLen     = 1600
	claheClipLimit = 2.5
	claheTileSize  = 8
	sharpenWeight  = 1.5
	blurWeight     = -0.5
	adaptiveBlock  = 15
	adaptiveC      = 5
	upscaleFactor  = 2.0
)

var ErrUndecodable = errors.New("cannot decode image bytes")

type IVariantGenerator interface {
	Generate(imageData []byte) ([]entity.Variant, error)
}

type variantGenerator struct{}

func New() IVariantGenerator {
	return &variantGenerator{}
}

// Generate produces the five preprocessing variants in a fixed order:
// original, sharpened CLAHE gray, adaptive threshold gray, and 2x cubic
// upscales of the two derived transforms. The output is deterministic for a
// given input. Callers must validate the payload first; undecodable bytes are
// the only failure mode.
func (g *variantGenerator) Generate(imageData []byte) ([]entity.Variant, error) {
	src, err := gocv.IMDecode(imageData, gocv.IMReadColor)
	if err != nil {
		return nil, ErrUndecodable
	}
	defer src.Close()

	if src.Empty() {
		return nil, ErrUndecodable
	}

	base := capLongestSide(src)
	defer base.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(base, &gray, gocv.ColorBGRToGray)

	sharpened := sharpenClahe(gray)
	defer sharpened.Close()

	adaptive := gocv.NewMat()
	defer adaptive.Close()
	gocv.AdaptiveThreshold(sharpened, &adaptive, 255,
		gocv.AdaptiveThresholdGaussian, gocv.ThresholdBinary, adaptiveBlock, adaptiveC)

	sharpenedBGR := grayToBGR(sharpened)
	defer sharpenedBGR.Close()

	adaptiveBGR := grayToBGR(adaptive)
	defer adaptiveBGR.Close()

	sharpenedUp := upscale(sharpenedBGR)
	defer sharpenedUp.Close()

	adaptiveUp := upscale(adaptiveBGR)
	defer adaptiveUp.Close()

	variants := make([]entity.Variant, 0, 5)
	for _, v := range []struct {
		kind  entity.VariantKind
		mat   gocv.Mat
		scale float64
	}{
		{entity.VariantOriginal, base, 1.0},
		{entity.VariantSharpenedClaheGray, sharpenedBGR, 1.0},
		{entity.VariantAdaptiveThresholdGray, adaptiveBGR, 1.0},
		{entity.VariantUpscale2xSharpened, sharpenedUp, upscaleFactor},
		{entity.VariantUpscale2xAdaptive, adaptiveUp, upscaleFactor},
	} {
		encoded, err := encodePNG(v.mat)
		if err != nil {
			return nil, err
		}
		variants = append(variants, entity.Variant{
			Kind:   v.kind,
			Image:  encoded,
			ScaleX: v.scale,
			ScaleY: v.scale,
		})
	}

	return variants, nil
}

// capLongestSide downscales the image so its longest side does not exceed
// maxSideLen. Area interpolation avoids aliasing on downscale.
func capLongestSide(src gocv.Mat) gocv.Mat {
	w := src.Cols()
	h := src.Rows()

	longest := w
	if h > longest {
		longest = h
	}

	if longest <= maxSideLen {
		return src.Clone()
	}

	scale := float64(maxSideLen) / float64(longest)
	dst := gocv.NewMat()
	gocv.Resize(src, &dst, image.Pt(int(float64(w)*scale), int(float64(h)*scale)),
		0, 0, gocv.InterpolationArea)
	return dst
}

// sharpenClahe equalizes local contrast with CLAHE and then applies an
// unsharp mask: a weighted blend of the image against its Gaussian blur that
// amplifies high-frequency stroke edges.
func sharpenClahe(gray gocv.Mat) gocv.Mat {
	clahe := gocv.NewCLAHEWithParams(claheClipLimit, image.Pt(claheTileSize, claheTileSize))
	defer clahe.Close()

	enhanced := gocv.NewMat()
	defer enhanced.Close()
	clahe.Apply(gray, &enhanced)

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(enhanced, &blurred, image.Pt(3, 3), 0, 0, gocv.BorderDefault)

	sharpened := gocv.NewMat()
	gocv.AddWeighted(enhanced, sharpenWeight, blurred, blurWeight, 0, &sharpened)
	return sharpened
}

func grayToBGR(gray gocv.Mat) gocv.Mat {
	bgr := gocv.NewMat()
	gocv.CvtColor(gray, &bgr, gocv.ColorGrayToBGR)
	return bgr
}

func upscale(src gocv.Mat) gocv.Mat {
	dst := gocv.NewMat()
	gocv.Resize(src, &dst, image.Point{}, upscaleFactor, upscaleFactor, gocv.InterpolationCubic)
	return dst
}

func encodePNG(mat gocv.Mat) ([]byte, error) {
	buf, err := gocv.IMEncode(gocv.PNGFileExt, mat)
	if err != nil {
		return nil, err
	}
	defer buf.Close()

	encoded := make([]byte, len(buf.GetBytes()))
	copy(encoded, buf.GetBytes())
	return encoded, nil
}
