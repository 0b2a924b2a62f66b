// Package report renders the downloadable risk assessment document: patient
// identity, the evaluation figures, the recommendation, and an LDL-C history
// chart.
package report

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Spanday31/GPT-CVD-01/internal/riskcalc"
)

// Patient carries the identity fields printed on the report. The risk model
// itself never sees a name.
type Patient struct {
	Name string
	Age  int
	Sex  riskcalc.Sex
}

// HistoryPoint is one month of the LDL-C series plotted on the report.
type HistoryPoint struct {
	Label string
	LDL   float64
}

// Data is everything the report template needs for one evaluation.
type Data struct {
	Patient     Patient
	Result      riskcalc.Result
	History     []HistoryPoint
	GeneratedAt time.Time
}

const reportTitle = "PRIME CVD Risk Assessment Report"

var reportTemplate = htmltemplate.Must(htmltemplate.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; margin: 2em auto; max-width: 52em; color: #1e293b; }
h1 { background: linear-gradient(135deg, #3b82f6, #2563eb); color: white; padding: 0.6em 1em; border-radius: 6px; }
table { border-collapse: collapse; margin: 1em 0; }
td, th { border: 1px solid #cbd5e1; padding: 0.4em 0.9em; text-align: left; }
.tier { font-weight: bold; }
.conflict { color: #b91c1c; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p>Generated {{.Generated}}</p>

<h2>Patient</h2>
<table>
<tr><th>Name</th><td>{{.Patient.Name}}</td></tr>
<tr><th>Age</th><td>{{.Patient.Age}}</td></tr>
<tr><th>Sex</th><td>{{.Patient.Sex}}</td></tr>
</table>

<h2>Risk Assessment</h2>
<table>
<tr><th>Baseline 10-year risk</th><td>{{printf "%.1f" .Result.BaselineRisk}}%</td></tr>
<tr><th>Projected LDL-C</th><td>{{printf "%.1f" .Result.ProjectedLDL}} mmol/L</td></tr>
<tr><th>Total LDL-C reduction</th><td>{{printf "%.1f" .Result.TotalReduction}}%</td></tr>
<tr><th>Post-treatment risk</th><td>{{printf "%.1f" .Result.FinalRisk}}%</td></tr>
<tr><th>Absolute risk reduction</th><td>{{printf "%.1f" .Result.AbsoluteRiskReduction}}%</td></tr>
</table>

{{if .Result.Conflicts}}
<h2>Therapy Conflicts</h2>
<ul>
{{range .Result.Conflicts}}<li class="conflict">{{.}}</li>{{end}}
</ul>
{{end}}

<h2>Recommendation</h2>
<p><span class="tier">{{.Result.Recommendation.Tier}}</span> &mdash; {{.Result.Recommendation.Advice}}</p>

<h2>LDL-C History</h2>
{{.Chart}}
</body>
</html>
`))

// Build renders the report document as a standalone HTML page.
func Build(d Data) ([]byte, error) {
	chart, err := renderLDLChart(d.History)
	if err != nil {
		return nil, fmt.Errorf("render LDL chart: %w", err)
	}

	var buf bytes.Buffer
	err = reportTemplate.Execute(&buf, map[string]interface{}{
		"Title":     reportTitle,
		"Generated": d.GeneratedAt.UTC().Format("2 Jan 2006 15:04 MST"),
		"Patient":   d.Patient,
		"Result":    d.Result,
		"Chart":     htmltemplate.HTML(chart),
	})
	if err != nil {
		return nil, fmt.Errorf("execute report template: %w", err)
	}
	return buf.Bytes(), nil
}

func renderLDLChart(points []HistoryPoint) (string, error) {
	if len(points) == 0 {
		return "", nil
	}

	xAxis := make([]string, 0, len(points))
	yData := make([]opts.LineData, 0, len(points))
	for _, point := range points {
		xAxis = append(xAxis, point.Label)
		yData = append(yData, opts.LineData{Value: point.LDL})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:   "100%",
			Height:  "320px",
			ChartID: "ldl_history",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: "LDL-C (mmol/L)",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:  "mmol/L",
			Scale: opts.Bool(true),
		}),
	)

	line.SetXAxis(xAxis).
		AddSeries("LDL-C", yData).
		SetSeriesOptions(
			charts.WithLineChartOpts(opts.LineChart{
				Smooth:     opts.Bool(true),
				ShowSymbol: opts.Bool(true),
			}),
		)

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
