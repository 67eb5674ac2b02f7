// Package analysis computes the report's aggregates and statistical
// tests over the juvenile observation set. Every function is a pure
// function of its input: same observations, same numbers. Missing
// measurements (NaN) are excluded from numeric aggregation, never
// treated as zero.
package analysis

import (
	"math"
	"sort"

	"gohare/domain/hares"
	"gohare/internal/errors"

	"github.com/montanaflynn/stats"
)

// CountSummary holds descriptives over the yearly juvenile counts.
type CountSummary struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Years  int     `json:"years"`
	Total  int     `json:"total"`
}

// YearlyCounts groups the juvenile subset by trap year. Years absent
// from the data are absent from the result, not represented as zero.
func YearlyCounts(obs []hares.Observation) []hares.YearlyCount {
	byYear := make(map[int]int)
	for _, o := range obs {
		byYear[o.Year]++
	}

	counts := make([]hares.YearlyCount, 0, len(byYear))
	for year, n := range byYear {
		counts = append(counts, hares.YearlyCount{Year: year, Count: n})
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].Year < counts[j].Year })
	return counts
}

// SummarizeCounts computes mean, median, min and max over the yearly
// counts.
func SummarizeCounts(counts []hares.YearlyCount) (CountSummary, error) {
	if len(counts) == 0 {
		return CountSummary{}, errors.InsufficientData("no yearly counts to summarize")
	}

	data := make([]float64, len(counts))
	total := 0
	for i, c := range counts {
		data[i] = float64(c.Count)
		total += c.Count
	}

	mean, _ := stats.Mean(data)
	median, _ := stats.Median(data)
	min, _ := stats.Min(data)
	max, _ := stats.Max(data)

	return CountSummary{
		Mean:   mean,
		Median: median,
		Min:    min,
		Max:    max,
		Years:  len(counts),
		Total:  total,
	}, nil
}

// WeightBySex summarizes juvenile weights grouped by sex.
func WeightBySex(obs []hares.Observation) []hares.GroupSummary {
	return summarizeWeights(obs, func(o hares.Observation) groupKey {
		return groupKey{sex: o.Sex}
	})
}

// WeightBySexSite summarizes juvenile weights grouped by sex and site.
func WeightBySexSite(obs []hares.Observation) []hares.GroupSummary {
	return summarizeWeights(obs, func(o hares.Observation) groupKey {
		return groupKey{sex: o.Sex, site: o.Site}
	})
}

type groupKey struct {
	sex  hares.Sex
	site string
}

func summarizeWeights(obs []hares.Observation, key func(hares.Observation) groupKey) []hares.GroupSummary {
	groups := make(map[groupKey][]float64)
	for _, o := range obs {
		if !o.HasWeight() {
			continue
		}
		k := key(o)
		groups[k] = append(groups[k], o.Weight)
	}

	summaries := make([]hares.GroupSummary, 0, len(groups))
	for k, weights := range groups {
		mean, _ := stats.Mean(weights)

		sd := math.NaN()
		if len(weights) >= 2 {
			sd, _ = stats.StandardDeviationSample(weights)
		}

		summaries = append(summaries, hares.GroupSummary{
			Sex:        k.sex,
			Site:       k.site,
			MeanWeight: mean,
			StdDev:     sd,
			SampleSize: len(weights),
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Sex != summaries[j].Sex {
			return summaries[i].Sex < summaries[j].Sex
		}
		return summaries[i].Site < summaries[j].Site
	})
	return summaries
}

// weightsBySex partitions present weights into the two test groups.
// Records with unknown sex are excluded.
func weightsBySex(obs []hares.Observation) (female, male []float64) {
	for _, o := range obs {
		if !o.HasWeight() {
			continue
		}
		switch o.Sex {
		case hares.SexFemale:
			female = append(female, o.Weight)
		case hares.SexMale:
			male = append(male, o.Weight)
		}
	}
	return female, male
}
