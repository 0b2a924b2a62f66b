// Package riskcalc implements the PRIME cardiovascular risk model: a
// proportional-hazards style 10-year event-risk estimate, therapy-class
// conflict detection, LDL-C projection under a regimen change, and the
// resulting risk adjustment and treatment recommendation.
//
// Every function in this package is a pure function of its inputs. There is
// no shared state, so all of them are safe to call from concurrent requests.
package riskcalc

import "fmt"

// Sex is the biological sex used by the risk model.
type Sex string

const (
	Male   Sex = "Male"
	Female Sex = "Female"
)

// Profile holds one patient's risk factors for a single evaluation.
// It carries no identity and is never persisted.
type Profile struct {
	Age       int     `json:"age"`
	Sex       Sex     `json:"sex"`
	SBP       int     `json:"sbp"`
	TotalChol float64 `json:"totalChol"`
	HDL       float64 `json:"hdl"`
	LDL       float64 `json:"ldl"`
	Smoker    bool    `json:"smoker"`
	Diabetic  bool    `json:"diabetic"`
	EGFR      int     `json:"egfr"`
	CRP       float64 `json:"crp"`
	VascCount int     `json:"vascCount"`
}

// Validate checks the profile against the accepted clinical input ranges and
// returns one message per violation. The formulas themselves do not re-check
// ranges; callers are expected to reject invalid profiles at the boundary.
func (p Profile) Validate() []string {
	var problems []string

	if p.Age < 30 || p.Age > 100 {
		problems = append(problems, "age must be between 30 and 100 years")
	}
	if p.Sex != Male && p.Sex != Female {
		problems = append(problems, `sex must be "Male" or "Female"`)
	}
	if p.SBP < 90 || p.SBP > 220 {
		problems = append(problems, "systolic blood pressure must be between 90 and 220 mmHg")
	}
	if p.TotalChol < 2.0 || p.TotalChol > 10.0 {
		problems = append(problems, "total cholesterol must be between 2.0 and 10.0 mmol/L")
	}
	if p.HDL < 0.5 || p.HDL > 3.0 {
		problems = append(problems, "HDL-C must be between 0.5 and 3.0 mmol/L")
	}
	if p.LDL < 0.5 || p.LDL > 6.0 {
		problems = append(problems, "LDL-C must be between 0.5 and 6.0 mmol/L")
	}
	if p.LDL < p.HDL {
		problems = append(problems, fmt.Sprintf("LDL-C (%.1f) cannot be below HDL-C (%.1f)", p.LDL, p.HDL))
	}
	if p.EGFR < 15 || p.EGFR > 120 {
		problems = append(problems, "eGFR must be between 15 and 120 mL/min")
	}
	if p.CRP < 0.1 || p.CRP > 20.0 {
		problems = append(problems, "hs-CRP must be between 0.1 and 20.0 mg/L")
	}
	if p.VascCount < 0 || p.VascCount > 3 {
		problems = append(problems, "vascular disease count must be between 0 and 3")
	}

	return problems
}
