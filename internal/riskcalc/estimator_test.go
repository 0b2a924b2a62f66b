package riskcalc

import (
	"errors"
	"testing"
)

// Reference patient captured from the original calculator: 65-year-old male
// smoker with one vascular diagnosis.
func referenceProfile() Profile {
	return Profile{
		Age:       65,
		Sex:       Male,
		SBP:       140,
		TotalChol: 5.0,
		HDL:       1.0,
		LDL:       3.5,
		Smoker:    true,
		Diabetic:  false,
		EGFR:      80,
		CRP:       2.0,
		VascCount: 1,
	}
}

func TestEstimate_ReferencePatient(t *testing.T) {
	risk, err := Estimate(referenceProfile())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if risk != 54.6 {
		t.Fatalf("expected baseline risk 54.6, got %v", risk)
	}
}

func TestEstimate_Deterministic(t *testing.T) {
	p := referenceProfile()
	first, err := Estimate(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := Estimate(p)
		if err != nil {
			t.Fatalf("unexpected error on call %d: %v", i, err)
		}
		if again != first {
			t.Fatalf("estimate not deterministic: %v then %v", first, again)
		}
	}
}

func TestEstimate_ClampsLowRisk(t *testing.T) {
	p := Profile{Age: 30, Sex: Female, SBP: 90, TotalChol: 2.0, HDL: 3.0, LDL: 3.0, EGFR: 120, CRP: 0.1}
	risk, err := Estimate(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if risk != 1.0 {
		t.Fatalf("expected floor of 1.0 for a minimal-risk profile, got %v", risk)
	}
}

func TestEstimate_ClampsHighRisk(t *testing.T) {
	p := Profile{
		Age: 100, Sex: Male, SBP: 220, TotalChol: 10.0, HDL: 0.5, LDL: 6.0,
		Smoker: true, Diabetic: true, EGFR: 15, CRP: 20.0, VascCount: 3,
	}
	risk, err := Estimate(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if risk != 99.0 {
		t.Fatalf("expected cap of 99.0 for a maximal-risk profile, got %v", risk)
	}
}

func TestEstimate_WithinBounds(t *testing.T) {
	profiles := []Profile{
		{Age: 45, Sex: Female, SBP: 120, TotalChol: 4.5, HDL: 1.5, LDL: 2.5, EGFR: 95, CRP: 1.0},
		{Age: 72, Sex: Male, SBP: 165, TotalChol: 6.2, HDL: 0.9, LDL: 4.1, Smoker: true, EGFR: 55, CRP: 4.5, VascCount: 2},
		{Age: 58, Sex: Male, SBP: 135, TotalChol: 5.5, HDL: 1.2, LDL: 3.2, Diabetic: true, EGFR: 70, CRP: 2.5, VascCount: 1},
	}
	for i, p := range profiles {
		risk, err := Estimate(p)
		if err != nil {
			t.Fatalf("profile %d: unexpected error: %v", i, err)
		}
		if risk < 1.0 || risk > 99.0 {
			t.Fatalf("profile %d: risk %v outside [1.0, 99.0]", i, risk)
		}
	}
}

func TestEstimate_RejectsUndefinedLog(t *testing.T) {
	p := referenceProfile()
	p.CRP = -1
	if _, err := Estimate(p); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for crp <= -1, got %v", err)
	}
}

func TestEstimateCache_MatchesDirectEstimate(t *testing.T) {
	cache := NewEstimateCache()
	p := referenceProfile()

	direct, err := Estimate(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < 3; i++ {
		cached, err := cache.Estimate(p)
		if err != nil {
			t.Fatalf("unexpected error on cached call %d: %v", i, err)
		}
		if cached != direct {
			t.Fatalf("cached estimate %v differs from direct %v", cached, direct)
		}
	}
}

func TestEstimateCache_DoesNotCacheErrors(t *testing.T) {
	cache := NewEstimateCache()
	p := referenceProfile()
	p.CRP = -2

	if _, err := cache.Estimate(p); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := cache.Estimate(p); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput on repeat call, got %v", err)
	}
}

func TestProfileValidate(t *testing.T) {
	if problems := referenceProfile().Validate(); len(problems) != 0 {
		t.Fatalf("expected reference profile to validate, got %v", problems)
	}

	bad := Profile{Age: 25, Sex: "Other", SBP: 240, TotalChol: 1.0, HDL: 2.5, LDL: 1.5, EGFR: 10, CRP: 25.0, VascCount: 4}
	problems := bad.Validate()
	if len(problems) == 0 {
		t.Fatal("expected validation problems for out-of-range profile")
	}
	wantSubstrings := []string{"age", "blood pressure", "eGFR", "hs-CRP", "vascular", "LDL-C"}
	for _, want := range wantSubstrings {
		if !containsSubstring(problems, want) {
			t.Fatalf("expected a problem mentioning %q, got %v", want, problems)
		}
	}
}

func TestProfileValidate_LDLBelowHDL(t *testing.T) {
	p := referenceProfile()
	p.HDL = 2.5
	p.LDL = 1.0
	if problems := p.Validate(); !containsSubstring(problems, "cannot be below HDL-C") {
		t.Fatalf("expected LDL/HDL cross-field problem, got %v", problems)
	}
}
