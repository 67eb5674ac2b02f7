// Package report is the presentation layer: it turns a computed
// ReportBundle into charts, a summary table, and narrative HTML. No
// statistics are computed here.
package report

import (
	"bytes"
	"fmt"
	"html/template"
	"math"
	"os"
	"path/filepath"

	"gohare/app"
	"gohare/internal/errors"
)

// Document paths inside the rendered output set.
const (
	PageName     = "report.html"
	chartsPrefix = "charts/"
)

var pageFuncs = template.FuncMap{
	"f2": func(v float64) string {
		if math.IsNaN(v) {
			return "n/a"
		}
		return fmt.Sprintf("%.2f", v)
	},
}

const pageHTML = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>Juvenile Snowshoe Hares - Exploratory Report</title>
<style>
body { font-family: Georgia, serif; max-width: 960px; margin: 2em auto; color: #222; }
h1 { border-bottom: 2px solid #444; padding-bottom: 0.2em; }
iframe { width: 100%; height: 560px; border: 1px solid #ccc; margin: 1em 0; }
table { border-collapse: collapse; margin: 1em 0; }
th, td { border: 1px solid #999; padding: 0.3em 0.8em; text-align: right; }
th { background: #eee; }
td.label, th.label { text-align: left; }
footer { margin-top: 3em; font-size: 0.8em; color: #777; border-top: 1px solid #ccc; }
.warn { color: #8a5300; background: #fff4e0; padding: 0.5em 1em; }
</style>
</head>
<body>
<h1>Juvenile Snowshoe Hares - Exploratory Report</h1>
<p>{{.Bundle.TotalRecords}} trapping records loaded, {{len .Bundle.Juveniles}} juvenile observations analyzed.</p>
{{if .Bundle.DroppedRows}}<p class="warn">{{len .Bundle.DroppedRows}} rows were dropped for unparseable fields; see the run log.</p>{{end}}

{{.Narrative}}

<h2>Charts</h2>
<iframe src="charts/yearly_counts.html" title="Annual juvenile trap counts"></iframe>
<iframe src="charts/weight_by_site.html" title="Juvenile weight by sex and site"></iframe>
<iframe src="charts/weight_hindfoot.html" title="Weight vs hind-foot length"></iframe>

<h2>Juvenile weight by sex and site</h2>
<table>
<tr><th class="label">Sex</th><th class="label">Site</th><th>Mean weight (g)</th><th>SD (g)</th><th>n</th></tr>
{{range .Bundle.BySexSite}}<tr><td class="label">{{.Sex}}</td><td class="label">{{.Site}}</td><td>{{f2 .MeanWeight}}</td><td>{{f2 .StdDev}}</td><td>{{.SampleSize}}</td></tr>
{{end}}</table>

<h2>Juvenile weight by sex</h2>
<table>
<tr><th class="label">Sex</th><th>Mean weight (g)</th><th>SD (g)</th><th>n</th></tr>
{{range .Bundle.BySex}}<tr><td class="label">{{.Sex}}</td><td>{{f2 .MeanWeight}}</td><td>{{f2 .StdDev}}</td><td>{{.SampleSize}}</td></tr>
{{end}}</table>

<footer>
<p>Run {{.Bundle.RunID}} · generated {{.Bundle.GeneratedAt.Format "2006-01-02 15:04:05 MST"}} · source {{.Bundle.Source}}</p>
</footer>
</body>
</html>
`

var pageTmpl = template.Must(template.New("page").Funcs(pageFuncs).Parse(pageHTML))

// RenderAll produces the full document set in memory: the report page
// plus one standalone HTML document per chart.
func RenderAll(b *app.ReportBundle) (map[string][]byte, error) {
	charts, err := buildCharts(b)
	if err != nil {
		return nil, err
	}

	narrative, err := buildNarrative(b)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	data := struct {
		Bundle    *app.ReportBundle
		Narrative template.HTML
	}{Bundle: b, Narrative: template.HTML(narrative)}
	if err := pageTmpl.Execute(&buf, data); err != nil {
		return nil, errors.Render("failed to render report page", err)
	}

	docs := make(map[string][]byte, len(charts)+1)
	docs[PageName] = buf.Bytes()
	for name, doc := range charts {
		docs[chartsPrefix+name+".html"] = doc
	}
	return docs, nil
}

// Write renders the document set into outDir and returns the path of
// the report page.
func Write(b *app.ReportBundle, outDir string) (string, error) {
	docs, err := RenderAll(b)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Join(outDir, "charts"), 0o755); err != nil {
		return "", errors.Render("failed to create output directory", err)
	}
	for name, doc := range docs {
		if err := os.WriteFile(filepath.Join(outDir, name), doc, 0o644); err != nil {
			return "", errors.Render(fmt.Sprintf("failed to write %s", name), err)
		}
	}
	return filepath.Join(outDir, PageName), nil
}
