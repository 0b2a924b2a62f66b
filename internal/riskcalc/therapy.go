package riskcalc

import (
	"fmt"
	"strings"
)

// NoStatin is the regimen value for a patient not on any statin.
const NoStatin = "None"

type therapyClass struct {
	name    string
	members []string
}

// Class vocabularies for conflict detection. Matching is case-insensitive
// substring containment, so dose suffixes ("Atorvastatin 80 mg") and brand
// spellings still hit their class. Declaration order fixes message order.
var therapyClasses = []therapyClass{
	{name: "statin", members: []string{"atorvastatin", "rosuvastatin"}},
	{name: "PCSK9 inhibitor", members: []string{"pcsk9", "evolocumab"}},
	{name: "ezetimibe", members: []string{"ezetimibe"}},
	{name: "inclisiran", members: []string{"inclisiran"}},
}

// Base LDL-C percentage reductions per statin agent and dose.
var statinReductions = map[string]float64{
	"Atorvastatin 20 mg": 40,
	"Atorvastatin 80 mg": 50,
	"Rosuvastatin 10 mg": 45,
	"Rosuvastatin 20 mg": 55,
}

// Incremental LDL-C percentage reductions per add-on therapy.
var addOnReductions = map[string]float64{
	"Ezetimibe":       20,
	"PCSK9 inhibitor": 60,
	"Inclisiran":      50,
}

// StatinOptions lists the selectable statin regimens, "None" first.
func StatinOptions() []string {
	return []string{NoStatin, "Atorvastatin 20 mg", "Atorvastatin 80 mg", "Rosuvastatin 10 mg", "Rosuvastatin 20 mg"}
}

// AddOnOptions lists the selectable add-on therapies.
func AddOnOptions() []string {
	return []string{"Ezetimibe", "PCSK9 inhibitor", "Inclisiran"}
}

// ValidateTherapies reports same-class duplicates among the selected
// therapies, one message per offending class. An empty result means the
// selection is free of conflicts. The selection itself is never an error;
// callers gate the "apply treatment" action on the result instead.
func ValidateTherapies(selected []string) []string {
	var conflicts []string
	for _, class := range therapyClasses {
		var matched []string
		for _, therapy := range selected {
			lower := strings.ToLower(therapy)
			for _, member := range class.members {
				if strings.Contains(lower, member) {
					matched = append(matched, therapy)
					break
				}
			}
		}
		if len(matched) > 1 {
			conflicts = append(conflicts, fmt.Sprintf("multiple %s-class therapies selected: %s", class.name, strings.Join(matched, ", ")))
		}
	}
	return conflicts
}

// ProjectLDL models the LDL-C level after switching to newStatin with the
// given add-ons, returning the projected level and the total percentage
// reduction applied.
//
// A patient already on a statin gets only half of the new statin's base
// reduction (diminishing returns of a switch versus a statin-naive start).
// Add-on reductions stack additively and are deliberately uncapped: enough
// add-ons can push the total past 100% and the projected LDL negative, which
// the caller must surface rather than hide.
func ProjectLDL(currentLDL float64, priorStatin, newStatin string, addOns []string) (projected, totalReduction float64) {
	totalReduction = statinReductions[newStatin]
	if priorStatin != NoStatin && priorStatin != "" {
		totalReduction *= 0.5
	}
	for _, addOn := range addOns {
		totalReduction += addOnReductions[addOn]
	}
	projected = currentLDL * (1 - totalReduction/100)
	return projected, totalReduction
}
