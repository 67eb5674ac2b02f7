package analysis

import (
	"fmt"
	"math"

	"gohare/domain/hares"
	"gohare/internal/errors"

	"gonum.org/v1/gonum/stat/distuv"
)

// WelchTTest compares male and female juvenile weights with an
// unequal-variance two-sample test. Records with missing weight or an
// unknown sex are excluded. The p-value comes from the exact Student's
// t distribution at the Welch-Satterthwaite degrees of freedom.
func WelchTTest(obs []hares.Observation) (*hares.TestResult, error) {
	female, male := weightsBySex(obs)

	if len(female) < 2 || len(male) < 2 {
		return nil, errors.InsufficientData(fmt.Sprintf(
			"two-sample test needs at least 2 observations per sex (female=%d, male=%d)",
			len(female), len(male)))
	}

	nf := float64(len(female))
	nm := float64(len(male))
	meanF := mean(female)
	meanM := mean(male)
	varF := sampleVariance(female, meanF)
	varM := sampleVariance(male, meanM)

	se := math.Sqrt(varF/nf + varM/nm)
	tStat := (meanM - meanF) / se

	// Welch-Satterthwaite degrees of freedom
	df := math.Pow(varF/nf+varM/nm, 2) /
		(math.Pow(varF/nf, 2)/(nf-1) + math.Pow(varM/nm, 2)/(nm-1))

	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	pValue := 2 * (1 - dist.CDF(math.Abs(tStat)))

	meanDiff := meanM - meanF
	pctDiff := meanDiff / ((meanM + meanF) / 2) * 100

	return &hares.TestResult{
		MeanFemale: meanF,
		MeanMale:   meanM,
		MeanDiff:   meanDiff,
		PctDiff:    pctDiff,
		TStat:      tStat,
		DF:         df,
		PValue:     pValue,
		CohenD:     CohenD(male, female),
		NFemale:    len(female),
		NMale:      len(male),
	}, nil
}

// CohenD computes the standardized mean difference between two groups
// using the pooled (weight-averaged) standard deviation. It is
// independent of the t-test.
func CohenD(a, b []float64) float64 {
	na := float64(len(a))
	nb := float64(len(b))
	if na < 2 || nb < 2 {
		return math.NaN()
	}

	meanA := mean(a)
	meanB := mean(b)
	varA := sampleVariance(a, meanA)
	varB := sampleVariance(b, meanB)

	pooledSD := math.Sqrt(((na-1)*varA + (nb-1)*varB) / (na + nb - 2))
	return (meanA - meanB) / pooledSD
}

func mean(data []float64) float64 {
	sum := 0.0
	for _, v := range data {
		sum += v
	}
	return sum / float64(len(data))
}

func sampleVariance(data []float64, mean float64) float64 {
	sumSq := 0.0
	for _, v := range data {
		diff := v - mean
		sumSq += diff * diff
	}
	return sumSq / float64(len(data)-1)
}
