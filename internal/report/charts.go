package report

import (
	"bytes"
	"fmt"
	"sort"

	"gohare/app"
	"gohare/domain/hares"
	"gohare/internal/errors"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/montanaflynn/stats"
)

// Chart document names, also used as serve-mode route parameters.
const (
	ChartYearlyCounts = "yearly_counts"
	ChartWeightBySite = "weight_by_site"
	ChartWeightHindft = "weight_hindfoot"
)

// buildCharts renders each chart as a standalone HTML document, keyed
// by chart name. The report page embeds them via iframes.
func buildCharts(b *app.ReportBundle) (map[string][]byte, error) {
	docs := make(map[string][]byte, 3)

	bar := yearlyCountsBar(b.YearlyCounts)
	doc, err := renderChartPage(bar)
	if err != nil {
		return nil, errors.Render("failed to render yearly counts chart", err)
	}
	docs[ChartYearlyCounts] = doc

	box := weightBySiteBox(b.Juveniles, b.BySexSite)
	doc, err = renderChartPage(box)
	if err != nil {
		return nil, errors.Render("failed to render weight distribution chart", err)
	}
	docs[ChartWeightBySite] = doc

	scatter := weightHindftScatter(b.Juveniles)
	doc, err = renderChartPage(scatter)
	if err != nil {
		return nil, errors.Render("failed to render weight/hind-foot chart", err)
	}
	docs[ChartWeightHindft] = doc

	return docs, nil
}

func renderChartPage(cs ...components.Charter) ([]byte, error) {
	page := components.NewPage()
	page.AddCharts(cs...)

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// yearlyCountsBar charts juvenile trap events per year with value
// labels above each bar.
func yearlyCountsBar(counts []hares.YearlyCount) *charts.Bar {
	x := make([]string, len(counts))
	y := make([]opts.BarData, len(counts))
	for i, c := range counts {
		x[i] = fmt.Sprintf("%d", c.Year)
		y[i] = opts.BarData{Value: c.Count}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "520px", PageTitle: "Annual juvenile trap counts"}),
		charts.WithTitleOpts(opts.Title{Title: "Annual juvenile hare trap counts", Subtitle: "Years without captures are absent, not zero"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Trap events"}),
	)
	bar.SetXAxis(x).
		AddSeries("juveniles", y,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)
	return bar
}

// weightBySiteBox draws the weight distribution per site with one
// boxplot series per sex and the group means overlaid as markers.
func weightBySiteBox(obs []hares.Observation, bySexSite []hares.GroupSummary) *charts.BoxPlot {
	sites := siteOrder(obs)

	box := charts.NewBoxPlot()
	box.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "520px", PageTitle: "Juvenile weight by sex and site"}),
		charts.WithTitleOpts(opts.Title{Title: "Juvenile hare weight by sex and site", Subtitle: "Boxes: quartiles; markers: group means; missing weights excluded"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Weight (g)"}),
	)
	box.SetXAxis(sites)

	for _, sex := range []hares.Sex{hares.SexFemale, hares.SexMale, hares.SexUnknown} {
		series := make([]opts.BoxPlotData, len(sites))
		for i, site := range sites {
			series[i] = opts.BoxPlotData{Value: fiveNumber(obs, sex, site)}
		}
		box.AddSeries(string(sex), series)
	}

	means := charts.NewScatter()
	for _, sex := range []hares.Sex{hares.SexFemale, hares.SexMale, hares.SexUnknown} {
		var pts []opts.ScatterData
		for _, g := range bySexSite {
			if g.Sex != sex || g.Site == "" {
				continue
			}
			pts = append(pts, opts.ScatterData{Value: []interface{}{g.Site, g.MeanWeight}})
		}
		if len(pts) > 0 {
			means.AddSeries(fmt.Sprintf("%s mean", sex), pts,
				charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 12}),
			)
		}
	}
	box.Overlap(means)

	return box
}

// weightHindftScatter plots weight against hind-foot length colored by
// sex over records with both measurements present.
func weightHindftScatter(obs []hares.Observation) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "520px", PageTitle: "Weight vs hind-foot length"}),
		charts.WithTitleOpts(opts.Title{Title: "Juvenile weight vs hind-foot length"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Hind-foot length (mm)", Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Weight (g)"}),
	)

	for _, sex := range []hares.Sex{hares.SexFemale, hares.SexMale, hares.SexUnknown} {
		var pts []opts.ScatterData
		for _, o := range obs {
			if o.Sex != sex || !o.HasWeight() || !o.HasHindFt() {
				continue
			}
			pts = append(pts, opts.ScatterData{Value: []interface{}{o.HindFt, o.Weight}})
		}
		if len(pts) > 0 {
			scatter.AddSeries(string(sex), pts,
				charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 6}),
			)
		}
	}
	return scatter
}

// fiveNumber returns min, q1, median, q3, max for one (sex, site)
// group, or nil when the group has no present weights.
func fiveNumber(obs []hares.Observation, sex hares.Sex, site string) []float64 {
	var weights []float64
	for _, o := range obs {
		if o.Sex == sex && o.Site == site && o.HasWeight() {
			weights = append(weights, o.Weight)
		}
	}
	if len(weights) == 0 {
		return nil
	}

	min, _ := stats.Min(weights)
	q1, _ := stats.Percentile(weights, 25)
	median, _ := stats.Median(weights)
	q3, _ := stats.Percentile(weights, 75)
	max, _ := stats.Max(weights)
	return []float64{min, q1, median, q3, max}
}

func siteOrder(obs []hares.Observation) []string {
	seen := make(map[string]bool)
	var sites []string
	for _, o := range obs {
		if !seen[o.Site] {
			seen[o.Site] = true
			sites = append(sites, o.Site)
		}
	}
	sort.Strings(sites)
	return sites
}
