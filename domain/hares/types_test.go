package hares

import (
	"math"
	"testing"
)

func TestObservationMissingMeasurements(t *testing.T) {
	o := Observation{Weight: math.NaN(), HindFt: 128}
	if o.HasWeight() {
		t.Error("NaN weight reported as present")
	}
	if !o.HasHindFt() {
		t.Error("present hind-foot length reported as missing")
	}
}

func TestTestResultSignificant(t *testing.T) {
	cases := []struct {
		p    float64
		want bool
	}{
		{0.001, true},
		{0.049, true},
		{0.05, false},
		{0.3, false},
	}
	for _, c := range cases {
		r := TestResult{PValue: c.p}
		if got := r.Significant(Alpha); got != c.want {
			t.Errorf("Significant(p=%v) = %v, want %v", c.p, got, c.want)
		}
	}
}

func TestSiteLabelsCoverStudyGrids(t *testing.T) {
	for _, grid := range []string{"bonrip", "bonmat", "bonbs"} {
		if _, ok := SiteLabels[grid]; !ok {
			t.Errorf("grid %q has no site label", grid)
		}
	}
}
