package riskcalc

import (
	"math"
	"testing"
)

func TestAdjustRisk_LiteratureScenario(t *testing.T) {
	// 2.1 mmol/L drop -> rrr = 46.2, final = 40 * 0.538 = 21.52.
	result := AdjustRisk(40, 3.5, 1.4)
	if math.Abs(result-21.52) > 1e-9 {
		t.Fatalf("expected adjusted risk 21.52, got %v", result)
	}
}

func TestAdjustRisk_CapsRelativeReduction(t *testing.T) {
	// A 5 mmol/L drop would be 110% rrr uncapped; the cap holds it at 60%.
	result := AdjustRisk(50, 6.0, 1.0)
	if math.Abs(result-20) > 1e-9 {
		t.Fatalf("expected adjusted risk 20 at the 60%% cap, got %v", result)
	}
}

func TestAdjustRisk_RisingLDLInflatesRisk(t *testing.T) {
	result := AdjustRisk(20, 3.0, 3.5)
	if result <= 20 {
		t.Fatalf("expected risk above baseline when projected LDL rises, got %v", result)
	}
}

func TestAdjustRisk_DoesNotReclamp(t *testing.T) {
	// The baseline clamp is not reapplied after adjustment.
	result := AdjustRisk(1.0, 6.0, 1.0)
	if result >= 1.0 {
		t.Fatalf("expected adjusted risk below the 1.0 baseline floor, got %v", result)
	}
}

func TestRecommend_TierBoundaries(t *testing.T) {
	cases := []struct {
		risk float64
		tier Tier
	}{
		{35.0, TierVeryHigh},
		{30.0, TierVeryHigh}, // boundary inclusive
		{29.9, TierHigh},
		{20.0, TierHigh}, // boundary inclusive
		{19.9, TierModerate},
		{5.0, TierModerate},
	}
	for _, c := range cases {
		rec := Recommend(c.risk)
		if rec.Tier != c.tier {
			t.Fatalf("risk %v: expected tier %s, got %s", c.risk, c.tier, rec.Tier)
		}
		if rec.Advice == "" {
			t.Fatalf("risk %v: expected advisory text", c.risk)
		}
	}
}

func TestEvaluate_FullPipeline(t *testing.T) {
	result, err := Evaluate(referenceProfile(),
		Regimen{Statin: NoStatin},
		Regimen{Statin: "Atorvastatin 80 mg"},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.BaselineRisk != 54.6 {
		t.Fatalf("expected baseline 54.6, got %v", result.BaselineRisk)
	}
	if result.TotalReduction != 50 {
		t.Fatalf("expected 50%% reduction, got %v", result.TotalReduction)
	}
	if result.ProjectedLDL != 1.75 {
		t.Fatalf("expected projected LDL 1.75, got %v", result.ProjectedLDL)
	}
	// drop = 1.75, rrr = 38.5, final = 54.6 * 0.615.
	if math.Abs(result.FinalRisk-33.579) > 1e-6 {
		t.Fatalf("expected final risk 33.579, got %v", result.FinalRisk)
	}
	if math.Abs(result.AbsoluteRiskReduction-(result.BaselineRisk-result.FinalRisk)) > 1e-12 {
		t.Fatalf("absolute reduction %v inconsistent with baseline %v and final %v",
			result.AbsoluteRiskReduction, result.BaselineRisk, result.FinalRisk)
	}
	if result.Recommendation.Tier != TierVeryHigh {
		t.Fatalf("expected VERY_HIGH tier, got %s", result.Recommendation.Tier)
	}
	if len(result.Conflicts) != 0 {
		t.Fatalf("expected no conflicts, got %v", result.Conflicts)
	}
}

func TestEvaluate_ConflictsGateTreatment(t *testing.T) {
	result, err := Evaluate(referenceProfile(),
		Regimen{Statin: NoStatin},
		Regimen{Statin: "Atorvastatin 80 mg", AddOns: []string{"PCSK9 inhibitor", "Evolocumab"}},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Conflicts) != 1 {
		t.Fatalf("expected one conflict, got %v", result.Conflicts)
	}
	if result.FinalRisk != result.BaselineRisk {
		t.Fatalf("expected final risk to stay at baseline when gated, got %v vs %v",
			result.FinalRisk, result.BaselineRisk)
	}
	if result.ProjectedLDL != referenceProfile().LDL {
		t.Fatalf("expected LDL unchanged when gated, got %v", result.ProjectedLDL)
	}
	if result.TotalReduction != 0 {
		t.Fatalf("expected no reduction when gated, got %v", result.TotalReduction)
	}
}

func TestEvaluate_PropagatesInvalidInput(t *testing.T) {
	p := referenceProfile()
	p.CRP = -1.5
	if _, err := Evaluate(p, Regimen{Statin: NoStatin}, Regimen{Statin: NoStatin}); err == nil {
		t.Fatal("expected error for undefined-log input")
	}
}
