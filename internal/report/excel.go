package report

import (
	"fmt"
	"math"

	"gohare/app"
	"gohare/domain/hares"
	"gohare/internal/errors"

	"github.com/xuri/excelize/v2"
)

// WriteSummary exports the descriptive statistics tables to an XLSX
// workbook at path, one sheet per grouping.
func WriteSummary(b *app.ReportBundle, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	const bySexSite = "Weight by Sex and Site"
	f.SetSheetName("Sheet1", bySexSite)
	writeGroupSheet(f, bySexSite, b.BySexSite, true)

	const bySex = "Weight by Sex"
	if _, err := f.NewSheet(bySex); err != nil {
		return errors.Render("failed to create summary sheet", err)
	}
	writeGroupSheet(f, bySex, b.BySex, false)

	const counts = "Yearly Counts"
	if _, err := f.NewSheet(counts); err != nil {
		return errors.Render("failed to create summary sheet", err)
	}
	f.SetCellValue(counts, "A1", "Year")
	f.SetCellValue(counts, "B1", "Trap Events")
	for i, c := range b.YearlyCounts {
		row := i + 2
		f.SetCellValue(counts, fmt.Sprintf("A%d", row), c.Year)
		f.SetCellValue(counts, fmt.Sprintf("B%d", row), c.Count)
	}

	if err := f.SaveAs(path); err != nil {
		return errors.Render(fmt.Sprintf("failed to save workbook %s", path), err)
	}
	return nil
}

func writeGroupSheet(f *excelize.File, sheet string, groups []hares.GroupSummary, withSite bool) {
	headers := []string{"Sex", "Mean Weight (g)", "SD (g)", "Sample Size"}
	if withSite {
		headers = []string{"Sex", "Site", "Mean Weight (g)", "SD (g)", "Sample Size"}
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for r, g := range groups {
		values := []interface{}{string(g.Sex)}
		if withSite {
			values = append(values, g.Site)
		}
		values = append(values, round2(g.MeanWeight), sdCell(g.StdDev), g.SampleSize)
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			f.SetCellValue(sheet, cell, v)
		}
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// sdCell keeps singleton groups readable in the sheet: a sample SD is
// undefined for n < 2.
func sdCell(sd float64) interface{} {
	if math.IsNaN(sd) {
		return "n/a"
	}
	return round2(sd)
}
