package analysis

import (
	"fmt"

	"gohare/domain/hares"
	"gohare/internal/errors"

	"gonum.org/v1/gonum/stat"
)

// FitWeightHindfoot fits ordinary least squares of weight (response)
// on hind-foot length (predictor) over juvenile records with both
// measurements present, and computes Pearson's r over the same pairs.
func FitWeightHindfoot(obs []hares.Observation) (*hares.RegressionResult, error) {
	var x, y []float64
	for _, o := range obs {
		if !o.HasWeight() || !o.HasHindFt() {
			continue
		}
		x = append(x, o.HindFt)
		y = append(y, o.Weight)
	}

	if len(x) < 2 {
		return nil, errors.InsufficientData(fmt.Sprintf(
			"regression needs at least 2 complete observations, have %d", len(x)))
	}

	intercept, slope := stat.LinearRegression(x, y, nil, false)
	r2 := stat.RSquared(x, y, nil, intercept, slope)
	r := stat.Correlation(x, y, nil)

	return &hares.RegressionResult{
		Slope:     slope,
		Intercept: intercept,
		RSquared:  r2,
		PearsonR:  r,
		N:         len(x),
	}, nil
}
