package jersey

import (
	"os"
	"strconv"
)

// ScoringPolicy holds the tunable constants of extraction and fusion. These
// are calibration knobs, not algorithmic necessities; every value can be
// overridden through the environment so the policy can be re-tuned against a
// labeled photo set without touching fusion logic.
type ScoringPolicy struct {
	// SingleDigitFloor is the minimum confidence for 1-digit numbers. Single
	// digits false-positive easily against background strokes, so the bar is
	// stricter than for longer numbers.
	SingleDigitFloor float64 `validate:"gte=0,lte=1"`

	// MultiDigitFloor is the minimum confidence for 2- and 3-digit numbers.
	MultiDigitFloor float64 `validate:"gte=0,lte=1"`

	// EmbeddedDigitPenalty scales confidence down when the digits were
	// embedded in longer mixed text rather than recognized on their own.
	EmbeddedDigitPenalty float64 `validate:"gt=0,lte=1"`

	// DiversityBonusStep is the confidence increment for the second agreeing
	// variant; each further variant contributes the previous increment times
	// DiversityBonusDecay. The fused score is capped at 1.0.
	DiversityBonusStep  float64 `validate:"gte=0,lte=0.5"`
	DiversityBonusDecay float64 `validate:"gt=0,lte=1"`

	// MaxResults caps the returned list for noisy images.
	MaxResults int `validate:"gte=1"`

	// MaxNumberValue is the largest accepted jersey number.
	MaxNumberValue int `validate:"gte=9,lte=999"`
}

func DefaultScoringPolicy() ScoringPolicy {
	return ScoringPolicy{
		SingleDigitFloor:     0.60,
		MultiDigitFloor:      0.50,
		EmbeddedDigitPenalty: 0.80,
		DiversityBonusStep:   0.04,
		DiversityBonusDecay:  0.5,
		MaxResults:           10,
		MaxNumberValue:       999,
	}
}

// ScoringPolicyFromEnv returns the default policy with any JERSEY_* overrides
// applied. Unparseable values are ignored and keep the default.
func ScoringPolicyFromEnv() ScoringPolicy {
	p := DefaultScoringPolicy()

	envFloat("JERSEY_SINGLE_DIGIT_FLOOR", &p.SingleDigitFloor)
	envFloat("JERSEY_MULTI_DIGIT_FLOOR", &p.MultiDigitFloor)
	envFloat("JERSEY_EMBEDDED_DIGIT_PENALTY", &p.EmbeddedDigitPenalty)
	envFloat("JERSEY_DIVERSITY_BONUS_STEP", &p.DiversityBonusStep)
	envFloat("JERSEY_DIVERSITY_BONUS_DECAY", &p.DiversityBonusDecay)
	envInt("JERSEY_MAX_RESULTS", &p.MaxResults)
	envInt("JERSEY_MAX_NUMBER_VALUE", &p.MaxNumberValue)

	return p
}

// FloorFor returns the length-dependent confidence floor for a normalized
// number string.
func (p ScoringPolicy) FloorFor(number string) float64 {
	if len(number) == 1 {
		return p.SingleDigitFloor
	}
	return p.MultiDigitFloor
}

func envFloat(key string, target *float64) {
	raw := os.Getenv(key)
	if raw == "" {
		return
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		*target = v
	}
}

func envInt(key string, target *int) {
	raw := os.Getenv(key)
	if raw == "" {
		return
	}
	if v, err := strconv.Atoi(raw); err == nil {
		*target = v
	}
}
