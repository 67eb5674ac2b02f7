// Package app wires the report pipeline: load, filter/transform,
// aggregate, test. Rendering is a separate concern in internal/report.
package app

import (
	"fmt"
	"log"
	"time"

	"gohare/adapters/tabular"
	"gohare/domain/hares"
	"gohare/internal/analysis"
	"gohare/internal/errors"
	"gohare/internal/transform"

	"github.com/google/uuid"
)

// ReportBundle aggregates everything the renderer needs. It is built
// once per run and never mutated afterwards; a failed analysis leaves
// its result nil and carries the error so independent sections can
// still render.
type ReportBundle struct {
	RunID        string
	GeneratedAt  time.Time
	Source       string
	TotalRecords int

	Juveniles    []hares.Observation
	YearlyCounts []hares.YearlyCount
	CountSummary analysis.CountSummary

	BySex     []hares.GroupSummary
	BySexSite []hares.GroupSummary

	Test    *hares.TestResult
	TestErr error

	Regression    *hares.RegressionResult
	RegressionErr error

	DroppedRows []transform.RowError
}

// ReportService runs the batch pipeline once, start to finish.
type ReportService struct {
	opts    transform.Options
	lenient bool
}

// NewReportService creates a report service. When lenient is set,
// rows with unparseable fields are dropped with a warning instead of
// aborting the run.
func NewReportService(opts transform.Options, lenient bool) *ReportService {
	return &ReportService{opts: opts, lenient: lenient}
}

// Build executes the pipeline over the given input file.
func (s *ReportService) Build(inputPath string) (*ReportBundle, error) {
	reader := tabular.NewReader(inputPath)
	table, err := reader.Read(transform.RequiredColumns...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load trapping records")
	}

	juveniles, rowErrs := transform.Juveniles(table, s.opts)
	if len(rowErrs) > 0 {
		if !s.lenient {
			return nil, errors.Wrap(rowErrs[0], fmt.Sprintf(
				"%d rows failed to parse (first shown); rerun with lenient parsing to drop them", len(rowErrs)))
		}
		for _, re := range rowErrs {
			log.Printf("[Pipeline] Warning: dropping %v", re)
		}
	}

	log.Printf("[Pipeline] %d juvenile observations retained of %d records",
		len(juveniles), len(table.Rows))

	counts := analysis.YearlyCounts(juveniles)
	countSummary, err := analysis.SummarizeCounts(counts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to summarize yearly counts")
	}

	bundle := &ReportBundle{
		RunID:        uuid.NewString(),
		GeneratedAt:  time.Now(),
		Source:       inputPath,
		TotalRecords: len(table.Rows),
		Juveniles:    juveniles,
		YearlyCounts: counts,
		CountSummary: countSummary,
		BySex:        analysis.WeightBySex(juveniles),
		BySexSite:    analysis.WeightBySexSite(juveniles),
		DroppedRows:  rowErrs,
	}

	// The two analyses are independent: a failure aborts only its own
	// report section.
	bundle.Test, bundle.TestErr = analysis.WelchTTest(juveniles)
	if bundle.TestErr != nil {
		log.Printf("[Pipeline] Weight comparison unavailable: %v", bundle.TestErr)
	}

	bundle.Regression, bundle.RegressionErr = analysis.FitWeightHindfoot(juveniles)
	if bundle.RegressionErr != nil {
		log.Printf("[Pipeline] Regression unavailable: %v", bundle.RegressionErr)
	}

	return bundle, nil
}
