package jerseyService

import (
	"strconv"
	"testing"

	"JerseyVision/internal/api/jersey"
	"JerseyVision/internal/entity"
)

func candidate(number string, confidence float64, variant entity.VariantKind) entity.Candidate {
	return entity.Candidate{
		Number:           number,
		Confidence:       confidence,
		Variant:          variant,
		OccurrenceWeight: 1,
	}
}

func TestFuseCandidatesEmpty(t *testing.T) {
	policy := jersey.DefaultScoringPolicy()

	results := fuseCandidates(nil, policy)
	if len(results) != 0 {
		t.Fatalf("expected no results, got %d", len(results))
	}

	results = fuseCandidates([]entity.Candidate{}, policy)
	if len(results) != 0 {
		t.Fatalf("expected no results, got %d", len(results))
	}
}

func TestFuseCandidatesDiversityBonus(t *testing.T) {
	policy := jersey.DefaultScoringPolicy()

	// Same number seen by two independent variants: best confidence is
	// boosted above its single-variant value, capped at 100.
	results := fuseCandidates([]entity.Candidate{
		candidate("10", 0.95, entity.VariantOriginal),
		candidate("10", 0.88, entity.VariantAdaptiveThresholdGray),
	}, policy)

	if len(results) != 1 {
		t.Fatalf("expected one fused result, got %d", len(results))
	}
	if results[0].Number != "10" {
		t.Fatalf("number = %q, want %q", results[0].Number, "10")
	}
	if results[0].Accuracy < 95 {
		t.Errorf("accuracy = %d, want >= 95 after diversity boost", results[0].Accuracy)
	}
	if results[0].Accuracy > 100 {
		t.Errorf("accuracy = %d, must never exceed 100", results[0].Accuracy)
	}
}

func TestFuseCandidatesBonusSaturates(t *testing.T) {
	policy := jersey.DefaultScoringPolicy()

	all := []entity.Candidate{
		candidate("23", 0.99, entity.VariantOriginal),
		candidate("23", 0.90, entity.VariantSharpenedClaheGray),
		candidate("23", 0.90, entity.VariantAdaptiveThresholdGray),
		candidate("23", 0.90, entity.VariantUpscale2xSharpened),
		candidate("23", 0.90, entity.VariantUpscale2xAdaptive),
	}

	results := fuseCandidates(all, policy)
	if len(results) != 1 {
		t.Fatalf("expected one result, got %d", len(results))
	}
	if results[0].Accuracy != 100 {
		t.Errorf("accuracy = %d, want 100 (capped)", results[0].Accuracy)
	}
}

func TestFuseCandidatesMonotoneBonus(t *testing.T) {
	policy := jersey.DefaultScoringPolicy()

	single := fuseCandidates([]entity.Candidate{
		candidate("42", 0.80, entity.VariantOriginal),
	}, policy)

	multi := fuseCandidates([]entity.Candidate{
		candidate("42", 0.80, entity.VariantOriginal),
		candidate("42", 0.62, entity.VariantUpscale2xSharpened),
	}, policy)

	if len(single) != 1 || len(multi) != 1 {
		t.Fatalf("expected one result in each run")
	}
	if multi[0].Accuracy < single[0].Accuracy {
		t.Errorf("multi-variant accuracy %d < single-variant accuracy %d", multi[0].Accuracy, single[0].Accuracy)
	}
}

func TestFuseCandidatesDuplicatesWithinOneVariant(t *testing.T) {
	policy := jersey.DefaultScoringPolicy()

	// Overlapping detection boxes in a single variant still collapse to one
	// result and earn no diversity bonus.
	results := fuseCandidates([]entity.Candidate{
		candidate("9", 0.71, entity.VariantOriginal),
		candidate("9", 0.65, entity.VariantOriginal),
	}, policy)

	if len(results) != 1 {
		t.Fatalf("expected one result, got %d", len(results))
	}
	if results[0].Accuracy != 71 {
		t.Errorf("accuracy = %d, want 71 (best confidence, no bonus)", results[0].Accuracy)
	}
}

func TestFuseCandidatesRefloorsAfterFusion(t *testing.T) {
	policy := jersey.DefaultScoringPolicy()

	results := fuseCandidates([]entity.Candidate{
		candidate("5", 0.55, entity.VariantOriginal),
	}, policy)

	if len(results) != 0 {
		t.Fatalf("expected single digit at 0.55 to be dropped, got %d results", len(results))
	}
}

func TestFuseCandidatesOrdering(t *testing.T) {
	policy := jersey.DefaultScoringPolicy()

	results := fuseCandidates([]entity.Candidate{
		candidate("30", 0.80, entity.VariantOriginal),
		candidate("7", 0.80, entity.VariantOriginal),
		candidate("15", 0.92, entity.VariantOriginal),
	}, policy)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	for i := 1; i < len(results); i++ {
		if results[i].Accuracy > results[i-1].Accuracy {
			t.Fatalf("results not sorted by descending accuracy: %v", results)
		}
		if results[i].Accuracy == results[i-1].Accuracy {
			prev, _ := strconv.Atoi(results[i-1].Number)
			cur, _ := strconv.Atoi(results[i].Number)
			if cur < prev {
				t.Fatalf("tie not broken by ascending numeric value: %v", results)
			}
		}
	}

	if results[0].Number != "15" {
		t.Errorf("first result = %q, want %q", results[0].Number, "15")
	}
	if results[1].Number != "7" || results[2].Number != "30" {
		t.Errorf("tie broken incorrectly: %v", results)
	}
}

func TestFuseCandidatesNoDuplicateNumbers(t *testing.T) {
	policy := jersey.DefaultScoringPolicy()

	results := fuseCandidates([]entity.Candidate{
		candidate("10", 0.90, entity.VariantOriginal),
		candidate("10", 0.85, entity.VariantSharpenedClaheGray),
		candidate("10", 0.80, entity.VariantUpscale2xAdaptive),
		candidate("77", 0.70, entity.VariantOriginal),
	}, policy)

	seen := make(map[string]bool)
	for _, r := range results {
		if seen[r.Number] {
			t.Fatalf("duplicate number %q in results", r.Number)
		}
		seen[r.Number] = true
	}
}

func TestFuseCandidatesCapsResultCount(t *testing.T) {
	policy := jersey.DefaultScoringPolicy()
	policy.MaxResults = 3

	var all []entity.Candidate
	for i := 10; i < 20; i++ {
		all = append(all, candidate(strconv.Itoa(i), 0.90, entity.VariantOriginal))
	}

	results := fuseCandidates(all, policy)
	if len(results) != 3 {
		t.Fatalf("expected capped result count 3, got %d", len(results))
	}
}

func TestFuseCandidatesRangeInvariant(t *testing.T) {
	policy := jersey.DefaultScoringPolicy()

	results := fuseCandidates([]entity.Candidate{
		candidate("0", 0.90, entity.VariantOriginal),
		candidate("999", 0.90, entity.VariantOriginal),
		candidate("55", 0.51, entity.VariantOriginal),
	}, policy)

	for _, r := range results {
		v, err := strconv.Atoi(r.Number)
		if err != nil || v < 0 || v > 999 {
			t.Errorf("result number %q outside [0, 999]", r.Number)
		}
		floor := int(policy.FloorFor(r.Number) * 100)
		if r.Accuracy < floor {
			t.Errorf("result %q accuracy %d below floor %d", r.Number, r.Accuracy, floor)
		}
	}
}

func TestDiversityBonusCurve(t *testing.T) {
	policy := jersey.DefaultScoringPolicy()

	if b := diversityBonus(1, policy); b != 0 {
		t.Errorf("bonus for one variant = %v, want 0", b)
	}

	prevIncrement := -1.0
	prevBonus := 0.0
	for d := 2; d <= 5; d++ {
		bonus := diversityBonus(d, policy)
		if bonus <= prevBonus {
			t.Errorf("bonus not increasing at diversity %d", d)
		}
		increment := bonus - prevBonus
		if prevIncrement > 0 && increment >= prevIncrement {
			t.Errorf("bonus increment not shrinking at diversity %d", d)
		}
		prevIncrement = increment
		prevBonus = bonus
	}
}
