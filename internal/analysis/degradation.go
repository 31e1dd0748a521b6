package analysis

import (
	"fmt"
	"sort"
)

// DegradationResult holds the fitted linear pace trend for one stint.
// StartingPace is the fitted intercept and DegradationPerLap the slope of
// lap time against the in-stint lap index.
type DegradationResult struct {
	Compound          *Compound `json:"compound"`
	StartLap          int       `json:"start_lap"`
	StintLength       int       `json:"stint_length"`
	StartingPace      float64   `json:"starting_pace"`
	DegradationPerLap float64   `json:"degradation_per_lap"`
	LapTimes          []float64 `json:"lap_times"`
}

// DegradationByStint fits a pace trend for each stint with enough usable
// laps. Laps slower than the stint median by more than the configured
// outlier threshold are discarded before fitting; a stint left with fewer
// than the minimum lap count yields no result rather than an error.
func (a *Analyzer) DegradationByStint(stints []Stint) map[string]DegradationResult {
	results := make(map[string]DegradationResult)

	for _, stint := range stints {
		result, ok := a.fitStint(stint)

		if !ok {
			continue
		}

		results[fmt.Sprintf("stint_%d", stint.StintNumber)] = result
	}

	return results
}

func (a *Analyzer) fitStint(stint Stint) (DegradationResult, bool) {
	times := make([]float64, 0, len(stint.Laps))

	for _, lap := range stint.Laps {
		if lap.LapTime != nil {
			times = append(times, *lap.LapTime)
		}
	}

	if len(times) < a.config.MinStintLength {
		return DegradationResult{}, false
	}

	cutoff := median(times) * a.config.OutlierThreshold

	var indices []float64
	var retained []float64

	for i, t := range times {
		if t < cutoff {
			indices = append(indices, float64(i))
			retained = append(retained, t)
		}
	}

	if len(retained) < a.config.MinStintLength {
		a.logger.Debugf("Stint %d for %s: %d laps left after outlier filter, skipping degradation fit", stint.StintNumber, stint.DriverID, len(retained))
		return DegradationResult{}, false
	}

	slope, intercept := fitLine(indices, retained)

	return DegradationResult{
		Compound:          stint.Compound,
		StartLap:          stint.StartLap,
		StintLength:       len(retained),
		StartingPace:      intercept,
		DegradationPerLap: slope,
		LapTimes:          retained,
	}, true
}

func median(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	mid := len(sorted) / 2

	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}

	return sorted[mid]
}

// fitLine computes an ordinary least squares fit of y against x.
func fitLine(x, y []float64) (slope, intercept float64) {
	n := float64(len(x))

	var sumX, sumY, sumXY, sumXX float64

	for i := range x {
		sumX += x[i]
		sumY += y[i]
		sumXY += x[i] * y[i]
		sumXX += x[i] * x[i]
	}

	denominator := n*sumXX - sumX*sumX

	if denominator == 0 {
		return 0, sumY / n
	}

	slope = (n*sumXY - sumX*sumY) / denominator
	intercept = (sumY - slope*sumX) / n

	return slope, intercept
}
