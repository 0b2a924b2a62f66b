package report

import "time"

// LDLHistory builds the synthetic monthly LDL-C series plotted on the
// report: a straight-line trajectory from the measured baseline to the
// projected post-treatment level, ending at the current month. Fewer than
// two months still yields the two endpoints.
func LDLHistory(baselineLDL, projectedLDL float64, months int, now time.Time) []HistoryPoint {
	if months < 2 {
		months = 2
	}

	points := make([]HistoryPoint, 0, months)
	step := (projectedLDL - baselineLDL) / float64(months-1)
	for i := 0; i < months; i++ {
		month := now.AddDate(0, i-(months-1), 0)
		points = append(points, HistoryPoint{
			Label: month.Format("Jan 2006"),
			LDL:   baselineLDL + step*float64(i),
		})
	}
	return points
}
