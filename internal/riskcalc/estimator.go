package riskcalc

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput marks inputs the model cannot compute a risk for, such as
// an hs-CRP value that makes the log term undefined.
var ErrInvalidInput = errors.New("invalid risk model input")

// Linear predictor coefficients of the PRIME risk score. The eGFR term is
// weighted per 10 mL/min.
const (
	coefAge       = 0.064
	coefMale      = 0.34
	coefSBP       = 0.02
	coefTotalChol = 0.25
	coefHDL       = -0.25
	coefSmoker    = 0.44
	coefDiabetic  = 0.51
	coefEGFR10    = -0.2
	coefLogCRP    = 0.25
	coefVascular  = 0.4

	baselineSurvival = 0.900
	predictorOffset  = 5.8
)

// Estimate returns the baseline 10-year cardiovascular event risk as a
// percentage, rounded to one decimal and clamped to [1.0, 99.0]. The clamp
// keeps degenerate 0%/100% outputs off the display.
//
// The only failure mode is crp <= -1, which would put the log term outside
// its domain; that returns ErrInvalidInput rather than a NaN.
func Estimate(p Profile) (float64, error) {
	if p.CRP <= -1 {
		return 0, fmt.Errorf("%w: hs-CRP must be greater than -1, got %.2f", ErrInvalidInput, p.CRP)
	}

	sexVal := 0.0
	if p.Sex == Male {
		sexVal = 1
	}
	smokerVal := 0.0
	if p.Smoker {
		smokerVal = 1
	}
	diabeticVal := 0.0
	if p.Diabetic {
		diabeticVal = 1
	}

	lp := coefAge*float64(p.Age) +
		coefMale*sexVal +
		coefSBP*float64(p.SBP) +
		coefTotalChol*p.TotalChol +
		coefHDL*p.HDL +
		coefSmoker*smokerVal +
		coefDiabetic*diabeticVal +
		coefEGFR10*(float64(p.EGFR)/10) +
		coefLogCRP*math.Log(p.CRP+1) +
		coefVascular*float64(p.VascCount)

	risk10 := 1 - math.Pow(baselineSurvival, math.Exp(lp-predictorOffset))

	return clampRisk(round1(risk10 * 100)), nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func clampRisk(v float64) float64 {
	return math.Max(1.0, math.Min(99.0, v))
}
