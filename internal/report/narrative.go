package report

import (
	"bytes"
	"fmt"
	"math"
	"text/template"

	"gohare/app"
	"gohare/domain/hares"
	"gohare/internal/errors"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// narrativeData wraps the bundle with the presentation-only fields the
// template needs. All numbers are computed upstream; this layer only
// formats them.
type narrativeData struct {
	*app.ReportBundle
	Alpha       float64
	Significant bool
}

var narrativeFuncs = template.FuncMap{
	"f2": func(v float64) string {
		if math.IsNaN(v) {
			return "n/a"
		}
		return fmt.Sprintf("%.2f", v)
	},
	"f3": func(v float64) string {
		if math.IsNaN(v) {
			return "n/a"
		}
		return fmt.Sprintf("%.3f", v)
	},
	"pfmt": func(p float64) string {
		if p < 0.01 {
			return "< 0.01"
		}
		return fmt.Sprintf("= %.2f", p)
	},
	"abs": math.Abs,
}

const narrativeMD = `## Annual trap counts

{{.CountSummary.Total}} juvenile hares were trapped over {{.CountSummary.Years}} study years.
Annual counts ranged from {{f2 .CountSummary.Min}} to {{f2 .CountSummary.Max}} trappings
(mean {{f2 .CountSummary.Mean}}, median {{f2 .CountSummary.Median}}). Counts reflect trap
effort as well as abundance, so year-to-year comparisons are descriptive only.

## Weight comparison between sexes

{{if .Test}}Juvenile male hares averaged {{f2 .Test.MeanMale}} g (n = {{.Test.NMale}}) against
{{f2 .Test.MeanFemale}} g for females (n = {{.Test.NFemale}}): an absolute difference of
{{f2 .Test.MeanDiff}} g, or {{f2 .Test.PctDiff}}% relative to the average of the two means.
Welch's two-sample t-test gives t({{f2 .Test.DF}}) = {{f2 .Test.TStat}} with p {{pfmt .Test.PValue}},
{{if .Significant}}a significant difference at the {{f2 .Alpha}} level{{else}}not significant at the {{f2 .Alpha}} level{{end}}.
The standardized effect size is Cohen's d = {{f2 .Test.CohenD}} (|d| = {{f2 (abs .Test.CohenD)}}).
{{else}}*Weight comparison unavailable: {{.TestErr}}.*{{end}}

## Weight and hind-foot length

{{if .Regression}}Across the {{.Regression.N}} juveniles with both measurements, weight increases
by {{f2 .Regression.Slope}} g per additional millimeter of hind-foot length
(intercept {{f2 .Regression.Intercept}} g). The linear model explains
R² = {{f3 .Regression.RSquared}} of the weight variance, with Pearson's
r = {{f3 .Regression.PearsonR}}. Residual spread and tail behavior should be judged from
the scatter above rather than from a formal goodness-of-fit decision.
{{else}}*Regression unavailable: {{.RegressionErr}}.*{{end}}
`

var narrativeTmpl = template.Must(
	template.New("narrative").Funcs(narrativeFuncs).Parse(narrativeMD))

// buildNarrative interpolates the computed statistics into the
// narrative markdown and renders it to an HTML fragment.
func buildNarrative(b *app.ReportBundle) ([]byte, error) {
	data := narrativeData{ReportBundle: b, Alpha: hares.Alpha}
	if b.Test != nil {
		data.Significant = b.Test.Significant(hares.Alpha)
	}

	var md bytes.Buffer
	if err := narrativeTmpl.Execute(&md, data); err != nil {
		return nil, errors.Render("failed to interpolate narrative", err)
	}

	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML(md.Bytes(), p, renderer), nil
}
