package analysis

import (
	"math"
	"testing"
	"time"

	"gohare/domain/hares"
	"gohare/internal/errors"
)

func obsIn(year int, sex hares.Sex, site string, weight, hindft float64) hares.Observation {
	return hares.Observation{
		Date:   time.Date(year, 11, 26, 0, 0, 0, 0, time.UTC),
		Year:   year,
		Site:   site,
		Sex:    sex,
		Weight: weight,
		HindFt: hindft,
	}
}

func TestYearlyCountsSumMatchesSubset(t *testing.T) {
	obs := []hares.Observation{
		obsIn(1999, hares.SexFemale, "Bonanza Riparian", 1200, 130),
		obsIn(1999, hares.SexMale, "Bonanza Riparian", 1400, 140),
		obsIn(2001, hares.SexFemale, "Bonanza Mature", 1100, 128),
	}

	counts := YearlyCounts(obs)
	if len(counts) != 2 {
		t.Fatalf("expected 2 years, got %d", len(counts))
	}
	total := 0
	for _, c := range counts {
		total += c.Count
	}
	if total != len(obs) {
		t.Errorf("yearly counts sum to %d, want %d", total, len(obs))
	}
	if counts[0].Year != 1999 || counts[1].Year != 2001 {
		t.Errorf("counts not sorted by year: %+v", counts)
	}
}

func TestYearlyCountsOmitsEmptyYears(t *testing.T) {
	obs := []hares.Observation{
		obsIn(1999, hares.SexFemale, "Bonanza Riparian", 1200, 130),
		obsIn(2002, hares.SexMale, "Bonanza Riparian", 1400, 140),
	}

	counts := YearlyCounts(obs)
	for _, c := range counts {
		if c.Count == 0 {
			t.Errorf("year %d present with zero count", c.Year)
		}
	}
}

func TestSummarizeCountsBounds(t *testing.T) {
	counts := []hares.YearlyCount{
		{Year: 1999, Count: 126},
		{Year: 2000, Count: 50},
		{Year: 2001, Count: 2},
	}

	s, err := SummarizeCounts(counts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Min != 2 || s.Max != 126 {
		t.Errorf("min/max = %v/%v, want 2/126", s.Min, s.Max)
	}
	if s.Mean < s.Min || s.Mean > s.Max {
		t.Errorf("mean %v outside [min, max]", s.Mean)
	}
	if s.Median != 50 {
		t.Errorf("median = %v, want 50", s.Median)
	}
	if s.Total != 178 || s.Years != 3 {
		t.Errorf("total/years = %d/%d, want 178/3", s.Total, s.Years)
	}
}

func TestSummarizeCountsEmpty(t *testing.T) {
	_, err := SummarizeCounts(nil)
	if err == nil {
		t.Fatal("expected error for empty counts")
	}
	if errors.GetCode(err) != errors.CodeInsufficientData {
		t.Errorf("code = %s, want %s", errors.GetCode(err), errors.CodeInsufficientData)
	}
}

func TestWeightBySexExcludesMissing(t *testing.T) {
	obs := []hares.Observation{
		obsIn(1999, hares.SexFemale, "Bonanza Riparian", 1200, 130),
		obsIn(1999, hares.SexFemale, "Bonanza Riparian", 1000, 128),
		obsIn(1999, hares.SexFemale, "Bonanza Riparian", math.NaN(), 125),
	}

	groups := WeightBySex(obs)
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	g := groups[0]
	if g.SampleSize != 2 {
		t.Errorf("sample size = %d, want 2 (missing weight excluded)", g.SampleSize)
	}
	if g.MeanWeight != 1100 {
		t.Errorf("mean = %v, want 1100", g.MeanWeight)
	}
}

func TestWeightBySexMissingInvariance(t *testing.T) {
	base := []hares.Observation{
		obsIn(1999, hares.SexFemale, "Bonanza Riparian", 1200, 130),
		obsIn(1999, hares.SexMale, "Bonanza Riparian", 1400, 140),
	}
	withMissing := append([]hares.Observation{
		obsIn(1999, hares.SexFemale, "Bonanza Riparian", math.NaN(), 120),
		obsIn(1999, hares.SexMale, "Bonanza Riparian", math.NaN(), 135),
	}, base...)

	a := WeightBySex(base)
	b := WeightBySex(withMissing)
	if len(a) != len(b) {
		t.Fatalf("group count changed: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].MeanWeight != b[i].MeanWeight || a[i].SampleSize != b[i].SampleSize {
			t.Errorf("group %v changed when missing-weight rows added: %+v vs %+v",
				a[i].Sex, a[i], b[i])
		}
	}
}

func TestWeightBySexSiteSingletonSD(t *testing.T) {
	obs := []hares.Observation{
		obsIn(1999, hares.SexMale, "Bonanza Mature", 1400, 140),
	}

	groups := WeightBySexSite(obs)
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	if !math.IsNaN(groups[0].StdDev) {
		t.Errorf("SD for n=1 = %v, want NaN", groups[0].StdDev)
	}
}

func TestWeightBySexSiteOrdering(t *testing.T) {
	obs := []hares.Observation{
		obsIn(1999, hares.SexMale, "Bonanza Riparian", 1400, 140),
		obsIn(1999, hares.SexFemale, "Bonanza Riparian", 1200, 130),
		obsIn(1999, hares.SexFemale, "Bonanza Mature", 1100, 128),
	}

	groups := WeightBySexSite(obs)
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}
	if groups[0].Sex != hares.SexFemale || groups[0].Site != "Bonanza Mature" {
		t.Errorf("unexpected first group: %+v", groups[0])
	}
	if groups[2].Sex != hares.SexMale {
		t.Errorf("unexpected last group: %+v", groups[2])
	}
}
