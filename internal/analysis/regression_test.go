package analysis

import (
	"math"
	"testing"

	"gohare/domain/hares"
	"gohare/internal/errors"
)

func TestFitWeightHindfootTwoPoints(t *testing.T) {
	obs := []hares.Observation{
		obsIn(1999, hares.SexFemale, "Bonanza Riparian", 1200, 130),
		obsIn(1999, hares.SexMale, "Bonanza Mature", 1400, 140),
	}

	fit, err := FitWeightHindfoot(obs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	const eps = 1e-9
	if math.Abs(fit.Slope-20) > eps {
		t.Errorf("slope = %v, want 20", fit.Slope)
	}
	if math.Abs(fit.Intercept+1400) > eps {
		t.Errorf("intercept = %v, want -1400", fit.Intercept)
	}
	if math.Abs(fit.RSquared-1) > eps {
		t.Errorf("R² = %v, want 1 for two points", fit.RSquared)
	}
	if math.Abs(fit.PearsonR-1) > eps {
		t.Errorf("r = %v, want 1", fit.PearsonR)
	}
	if fit.N != 2 {
		t.Errorf("n = %d, want 2", fit.N)
	}
}

func TestFitWeightHindfootExcludesIncomplete(t *testing.T) {
	obs := []hares.Observation{
		obsIn(1999, hares.SexFemale, "Bonanza Riparian", 1200, 130),
		obsIn(1999, hares.SexMale, "Bonanza Mature", 1400, 140),
		obsIn(1999, hares.SexMale, "Bonanza Mature", math.NaN(), 150),
		obsIn(1999, hares.SexFemale, "Bonanza Mature", 1300, math.NaN()),
	}

	fit, err := FitWeightHindfoot(obs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fit.N != 2 {
		t.Errorf("n = %d, want 2 (incomplete pairs excluded)", fit.N)
	}
}

func TestFitWeightHindfootIdempotent(t *testing.T) {
	obs := []hares.Observation{
		obsIn(1999, hares.SexFemale, "Bonanza Riparian", 1000, 125),
		obsIn(1999, hares.SexFemale, "Bonanza Riparian", 1150, 131),
		obsIn(1999, hares.SexMale, "Bonanza Mature", 1280, 136),
		obsIn(1999, hares.SexMale, "Bonanza Mature", 1420, 141),
	}

	a, err := FitWeightHindfoot(obs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := FitWeightHindfoot(obs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *a != *b {
		t.Errorf("same input produced different fits: %+v vs %+v", a, b)
	}
}

func TestFitWeightHindfootInsufficientData(t *testing.T) {
	obs := []hares.Observation{
		obsIn(1999, hares.SexFemale, "Bonanza Riparian", 1200, 130),
		obsIn(1999, hares.SexMale, "Bonanza Mature", math.NaN(), 140),
	}

	_, err := FitWeightHindfoot(obs)
	if err == nil {
		t.Fatal("expected error with a single complete pair")
	}
	if errors.GetCode(err) != errors.CodeInsufficientData {
		t.Errorf("code = %s, want %s", errors.GetCode(err), errors.CodeInsufficientData)
	}
}
