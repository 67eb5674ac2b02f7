package hares

import (
	"math"
	"time"
)

// Sex is the display label for a recoded sex code.
type Sex string

const (
	SexFemale  Sex = "Female"
	SexMale    Sex = "Male"
	SexUnknown Sex = "Unknown"
)

// Observation is one trapped-hare record after filtering and recoding.
// The loaded dataset is read-only input; observations are never mutated
// after the transform step produces them.
type Observation struct {
	Date   time.Time
	Year   int
	Site   string // display name from the site lookup table
	Sex    Sex
	Weight float64 // grams, NaN when missing
	HindFt float64 // hind-foot length in millimeters, NaN when missing
}

// HasWeight reports whether the weight measurement is present.
func (o Observation) HasWeight() bool { return !math.IsNaN(o.Weight) }

// HasHindFt reports whether the hind-foot measurement is present.
func (o Observation) HasHindFt() bool { return !math.IsNaN(o.HindFt) }

// YearlyCount is the number of juvenile trap events in one year.
type YearlyCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// GroupSummary describes juvenile weights for one (sex, site) group.
// Site is empty when the grouping is by sex alone.
type GroupSummary struct {
	Sex        Sex     `json:"sex"`
	Site       string  `json:"site,omitempty"`
	MeanWeight float64 `json:"mean_weight"`
	StdDev     float64 `json:"std_dev"` // sample standard deviation, NaN when n < 2
	SampleSize int     `json:"sample_size"`
}

// TestResult holds the Welch two-sample comparison of male and female
// juvenile weights together with the standardized effect size.
type TestResult struct {
	MeanFemale float64 `json:"mean_female"`
	MeanMale   float64 `json:"mean_male"`
	MeanDiff   float64 `json:"mean_diff"` // male minus female, grams
	PctDiff    float64 `json:"pct_diff"`  // relative to the average of the two means
	TStat      float64 `json:"t_stat"`
	DF         float64 `json:"df"` // Welch-Satterthwaite degrees of freedom
	PValue     float64 `json:"p_value"`
	CohenD     float64 `json:"cohen_d"`
	NFemale    int     `json:"n_female"`
	NMale      int     `json:"n_male"`
}

// Significant reports whether the test rejects at the given level.
func (t TestResult) Significant(alpha float64) bool { return t.PValue < alpha }

// RegressionResult holds the OLS fit of weight on hind-foot length.
type RegressionResult struct {
	Slope     float64 `json:"slope"` // grams per millimeter
	Intercept float64 `json:"intercept"`
	RSquared  float64 `json:"r_squared"`
	PearsonR  float64 `json:"pearson_r"`
	N         int     `json:"n"`
}
