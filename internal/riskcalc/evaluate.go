package riskcalc

// Regimen is one lipid-lowering therapy selection: a statin (or "None") plus
// any add-on therapies.
type Regimen struct {
	Statin string   `json:"statin"`
	AddOns []string `json:"addOns"`
}

// Therapies flattens the regimen into the selection list the conflict
// validator works on. "None" is a placeholder, not a therapy.
func (r Regimen) Therapies() []string {
	var selected []string
	if r.Statin != "" && r.Statin != NoStatin {
		selected = append(selected, r.Statin)
	}
	return append(selected, r.AddOns...)
}

// Result is the outcome of one full evaluation. It is recomputed wholesale
// on any input change and never mutated.
type Result struct {
	BaselineRisk          float64        `json:"baselineRisk"`
	FinalRisk             float64        `json:"finalRisk"`
	ProjectedLDL          float64        `json:"projectedLdl"`
	TotalReduction        float64        `json:"totalReduction"`
	AbsoluteRiskReduction float64        `json:"absoluteRiskReduction"`
	Recommendation        Recommendation `json:"recommendation"`
	Conflicts             []string       `json:"conflicts,omitempty"`
}

// Evaluate runs the full pipeline: baseline risk, conflict check on the
// proposed regimen, LDL projection, risk adjustment, recommendation.
//
// Conflicting therapy selections gate the treatment stage: the result then
// carries the conflict messages alongside the baseline figures (projected
// LDL stays at the current level and the final risk equals the baseline), so
// the caller can block the regimen change until the selection is fixed.
func Evaluate(p Profile, current, proposed Regimen) (Result, error) {
	baseline, err := Estimate(p)
	if err != nil {
		return Result{}, err
	}

	if conflicts := ValidateTherapies(proposed.Therapies()); len(conflicts) > 0 {
		return Result{
			BaselineRisk:   baseline,
			FinalRisk:      baseline,
			ProjectedLDL:   p.LDL,
			Recommendation: Recommend(baseline),
			Conflicts:      conflicts,
		}, nil
	}

	projected, totalReduction := ProjectLDL(p.LDL, current.Statin, proposed.Statin, proposed.AddOns)
	finalRisk := AdjustRisk(baseline, p.LDL, projected)

	return Result{
		BaselineRisk:          baseline,
		FinalRisk:             finalRisk,
		ProjectedLDL:          projected,
		TotalReduction:        totalReduction,
		AbsoluteRiskReduction: baseline - finalRisk,
		Recommendation:        Recommend(finalRisk),
	}, nil
}
