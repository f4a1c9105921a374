package jerseyService

import (
	"strconv"
	"strings"

	"JerseyVision/internal/api/jersey"
	"JerseyVision/internal/entity"
)

// extractCandidate turns one raw observation into at most one validated
// candidate. Non-digit characters are stripped; digit strings that are empty,
// longer than three characters or above the configured maximum value are
// rejected. Leading zeros are numerically normalized ("07" becomes "7") so
// later grouping treats them as the same number. Digits that were embedded in
// longer mixed text are penalized before the length-dependent confidence
// floor is applied. The result is either confidently extracted or absent.
func extractCandidate(obs entity.RawObservation, policy jersey.ScoringPolicy) (entity.Candidate, bool) {
	trimmed := strings.TrimSpace(obs.Text)

	digits := stripNonDigits(trimmed)
	if digits == "" || len(digits) > 3 {
		return entity.Candidate{}, false
	}

	value, err := strconv.Atoi(digits)
	if err != nil || value < 0 || value > policy.MaxNumberValue {
		return entity.Candidate{}, false
	}
	number := strconv.Itoa(value)

	confidence := obs.Confidence
	if digits != trimmed {
		confidence *= policy.EmbeddedDigitPenalty
	}

	if confidence < policy.FloorFor(number) {
		return entity.Candidate{}, false
	}

	return entity.Candidate{
		Number:           number,
		Confidence:       confidence,
		Box:              obs.Box,
		Variant:          obs.Variant,
		OccurrenceWeight: 1,
	}, true
}

func stripNonDigits(text string) string {
	var b strings.Builder
	for _, r := range text {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
