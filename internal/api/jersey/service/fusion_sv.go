package jerseyService

import (
	"math"
	"sort"
	"strconv"

	"JerseyVision/internal/api/jersey"
	"JerseyVision/internal/entity"
)

type fusionGroup struct {
	number      string
	value       int
	best        float64
	occurrences int
	variants    map[entity.VariantKind]struct{}
}

// fuseCandidates collapses candidates from all variants into one ranked
// result per distinct number. Agreement across variants raises trust: each
// additional distinct variant beyond the first adds a geometrically shrinking
// bonus to the best observed confidence, capped at 1.0. Numbers seen by a
// single variant keep their raw confidence. The length-dependent floor is
// re-applied after fusion, and the list is capped for noisy images. Ordering
// is descending accuracy, ties broken by ascending numeric value, so output
// is deterministic for identical input.
func fuseCandidates(candidates []entity.Candidate, policy jersey.ScoringPolicy) []jersey.NumberResult {
	groups := make(map[string]*fusionGroup)
	for _, c := range candidates {
		g, ok := groups[c.Number]
		if !ok {
			value, err := strconv.Atoi(c.Number)
			if err != nil {
				continue
			}
			g = &fusionGroup{
				number:   c.Number,
				value:    value,
				variants: make(map[entity.VariantKind]struct{}),
			}
			groups[c.Number] = g
		}

		g.occurrences += c.OccurrenceWeight
		g.variants[c.Variant] = struct{}{}
		if c.Confidence > g.best {
			g.best = c.Confidence
		}
	}

	type scored struct {
		result jersey.NumberResult
		score  float64
		value  int
	}

	ranked := make([]scored, 0, len(groups))
	for _, g := range groups {
		score := g.best + diversityBonus(len(g.variants), policy)
		if score > 1 {
			score = 1
		}

		if score < policy.FloorFor(g.number) {
			continue
		}

		ranked = append(ranked, scored{
			result: jersey.NumberResult{
				Number:   g.number,
				Accuracy: int(math.Round(score * 100)),
			},
			score: score,
			value: g.value,
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].result.Accuracy != ranked[j].result.Accuracy {
			return ranked[i].result.Accuracy > ranked[j].result.Accuracy
		}
		return ranked[i].value < ranked[j].value
	})

	if len(ranked) > policy.MaxResults {
		ranked = ranked[:policy.MaxResults]
	}

	results := make([]jersey.NumberResult, 0, len(ranked))
	for _, r := range ranked {
		results = append(results, r.result)
	}
	return results
}

// diversityBonus computes the saturating agreement bonus for the given count
// of distinct variants. One variant earns no bonus.
func diversityBonus(diversity int, policy jersey.ScoringPolicy) float64 {
	bonus := 0.0
	step := policy.DiversityBonusStep
	for i := 1; i < diversity; i++ {
		bonus += step
		step *= policy.DiversityBonusDecay
	}
	return bonus
}
