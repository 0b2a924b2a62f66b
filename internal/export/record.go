// Package export serializes a patient case to a flat key-value record and
// loads one back. Records use dotenv syntax so they stay hand-editable and
// round-trip through the same parser the server config uses.
package export

import (
	"fmt"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/Spanday31/GPT-CVD-01/internal/riskcalc"
)

// Field names of the flat case record.
const (
	fieldAge       = "age"
	fieldSex       = "sex"
	fieldDiabetic  = "diabetic"
	fieldSmoker    = "smoker"
	fieldLDL       = "ldl"
	fieldHDL       = "hdl"
	fieldSBP       = "sbp"
	fieldEGFR      = "egfr"
	fieldCRP       = "crp"
	fieldVascCount = "vascCount"
)

// Marshal flattens the profile into a dotenv-format case record.
func Marshal(p riskcalc.Profile) (string, error) {
	record := map[string]string{
		fieldAge:       strconv.Itoa(p.Age),
		fieldSex:       string(p.Sex),
		fieldDiabetic:  strconv.FormatBool(p.Diabetic),
		fieldSmoker:    strconv.FormatBool(p.Smoker),
		fieldLDL:       strconv.FormatFloat(p.LDL, 'f', -1, 64),
		fieldHDL:       strconv.FormatFloat(p.HDL, 'f', -1, 64),
		fieldSBP:       strconv.Itoa(p.SBP),
		fieldEGFR:      strconv.Itoa(p.EGFR),
		fieldCRP:       strconv.FormatFloat(p.CRP, 'f', -1, 64),
		fieldVascCount: strconv.Itoa(p.VascCount),
	}

	out, err := godotenv.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("marshal case record: %w", err)
	}
	return out, nil
}

// Parse loads a case record back into a profile. Missing or malformed
// fields are reported; range validation stays with Profile.Validate. The
// record format carries no total cholesterol, so that field comes back zero
// and must be supplied before an evaluation.
func Parse(raw string) (riskcalc.Profile, error) {
	values, err := godotenv.Unmarshal(raw)
	if err != nil {
		return riskcalc.Profile{}, fmt.Errorf("parse case record: %w", err)
	}

	var p riskcalc.Profile
	var firstErr error

	intField := func(name string) int {
		v, err := requireField(values, name)
		if err == nil {
			var n int
			n, err = strconv.Atoi(v)
			if err == nil {
				return n
			}
			err = fmt.Errorf("case record field %q: %w", name, err)
		}
		if firstErr == nil {
			firstErr = err
		}
		return 0
	}
	floatField := func(name string) float64 {
		v, err := requireField(values, name)
		if err == nil {
			var f float64
			f, err = strconv.ParseFloat(v, 64)
			if err == nil {
				return f
			}
			err = fmt.Errorf("case record field %q: %w", name, err)
		}
		if firstErr == nil {
			firstErr = err
		}
		return 0
	}
	boolField := func(name string) bool {
		v, err := requireField(values, name)
		if err == nil {
			var b bool
			b, err = strconv.ParseBool(v)
			if err == nil {
				return b
			}
			err = fmt.Errorf("case record field %q: %w", name, err)
		}
		if firstErr == nil {
			firstErr = err
		}
		return false
	}

	p.Age = intField(fieldAge)
	p.SBP = intField(fieldSBP)
	p.EGFR = intField(fieldEGFR)
	p.VascCount = intField(fieldVascCount)
	p.LDL = floatField(fieldLDL)
	p.HDL = floatField(fieldHDL)
	p.CRP = floatField(fieldCRP)
	p.Diabetic = boolField(fieldDiabetic)
	p.Smoker = boolField(fieldSmoker)

	sex, err := requireField(values, fieldSex)
	if err != nil && firstErr == nil {
		firstErr = err
	}
	p.Sex = riskcalc.Sex(sex)

	if firstErr != nil {
		return riskcalc.Profile{}, firstErr
	}
	return p, nil
}

func requireField(values map[string]string, name string) (string, error) {
	v, ok := values[name]
	if !ok || v == "" {
		return "", fmt.Errorf("case record missing field %q", name)
	}
	return v, nil
}
