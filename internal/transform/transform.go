// Package transform derives the juvenile-only observation set from a
// raw trapping table: date parsing, year extraction, and site/sex
// recoding through explicit lookup tables. The transform never mutates
// the source table.
package transform

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"gohare/adapters/tabular"
	"gohare/domain/hares"
	"gohare/internal/errors"
)

// RequiredColumns lists the columns the pipeline cannot run without.
var RequiredColumns = []string{"date", "age", "sex", "grid", "weight", "hindft"}

// Options carries the fixed lookup tables and the age-class filter.
// Tables are passed in rather than read from package state so the
// transform stays pure and testable with substitute tables.
type Options struct {
	SiteLabels map[string]string
	SexLabels  map[string]hares.Sex
	AgeClass   string
}

// DefaultOptions returns the study's fixed category mappings.
func DefaultOptions() Options {
	return Options{
		SiteLabels: hares.SiteLabels,
		SexLabels:  hares.SexLabels,
		AgeClass:   hares.AgeJuvenile,
	}
}

// RowError records a parse failure on one source row. Row is the
// 1-based data row number (excluding the header).
type RowError struct {
	Row int
	Err error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

var dateLayouts = []string{"1/2/2006", "1/2/06", "2006-01-02"}

// Juveniles returns the subset of table rows with the configured age
// class, recoded and parsed into Observations. Rows with malformed
// date or numeric fields are reported as RowErrors rather than passed
// through silently; the caller decides whether they abort the run.
func Juveniles(table *tabular.Table, opts Options) ([]hares.Observation, []RowError) {
	var (
		out     []hares.Observation
		rowErrs []RowError
	)

	for i, row := range table.Rows {
		age := strings.ToLower(strings.TrimSpace(row["age"]))
		if age != strings.ToLower(opts.AgeClass) {
			continue
		}

		date, err := parseDate(row["date"])
		if err != nil {
			rowErrs = append(rowErrs, RowError{Row: i + 1, Err: err})
			continue
		}

		weight, err := parseMeasurement(row["weight"], "weight")
		if err != nil {
			rowErrs = append(rowErrs, RowError{Row: i + 1, Err: err})
			continue
		}

		hindft, err := parseMeasurement(row["hindft"], "hindft")
		if err != nil {
			rowErrs = append(rowErrs, RowError{Row: i + 1, Err: err})
			continue
		}

		out = append(out, hares.Observation{
			Date:   date,
			Year:   date.Year(),
			Site:   recodeSite(row["grid"], opts.SiteLabels),
			Sex:    recodeSex(row["sex"], opts.SexLabels),
			Weight: weight,
			HindFt: hindft,
		})
	}

	return out, rowErrs
}

func parseDate(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, errors.Parse("date is empty")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Parse(fmt.Sprintf("unparseable date %q", value))
}

// parseMeasurement parses a nullable numeric field. Empty and NA cells
// are missing values (NaN), not parse errors.
func parseMeasurement(raw, field string) (float64, error) {
	value := strings.TrimSpace(raw)
	if value == "" || strings.EqualFold(value, "na") {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, errors.Parse(fmt.Sprintf("unparseable %s %q", field, value))
	}
	return v, nil
}

func recodeSite(code string, labels map[string]string) string {
	key := strings.ToLower(strings.TrimSpace(code))
	if label, ok := labels[key]; ok {
		return label
	}
	// Unmapped grids keep their raw code so they stay visible in output.
	return key
}

func recodeSex(code string, labels map[string]hares.Sex) hares.Sex {
	key := strings.ToLower(strings.TrimSpace(code))
	if label, ok := labels[key]; ok {
		return label
	}
	return hares.SexUnknown
}
