package analysis

import "math"

// SectorStats describes one driver's performance in a single sector.
// GapToBest is relative to the session-wide minimum for that sector and
// is exactly zero for the driver holding it.
type SectorStats struct {
	Best        *float64 `json:"best"`
	Average     *float64 `json:"average"`
	Consistency *float64 `json:"consistency"`
	GapToBest   *float64 `json:"gap_to_best"`
}

// SectorSummary is the per-driver sector report. TheoreticalBest is the
// sum of the driver's own three sector minima and is nil unless all three
// exist.
type SectorSummary struct {
	DriverID        string      `json:"driver_id"`
	Sector1         SectorStats `json:"sector1"`
	Sector2         SectorStats `json:"sector2"`
	Sector3         SectorStats `json:"sector3"`
	TheoreticalBest *float64    `json:"theoretical_best"`
}

// SectorBests holds the session-wide minimum for each sector, nil where no
// lap resolved that sector at all.
type SectorBests struct {
	Sector1 *float64 `json:"sector1"`
	Sector2 *float64 `json:"sector2"`
	Sector3 *float64 `json:"sector3"`
}

var sectorAccessors = []func(Lap) *float64{
	func(lap Lap) *float64 { return lap.Sector1Time },
	func(lap Lap) *float64 { return lap.Sector2Time },
	func(lap Lap) *float64 { return lap.Sector3Time },
}

// SessionSectorBests scans every lap in the session for the fastest time
// in each sector.
func SessionSectorBests(laps []Lap) SectorBests {
	var bests [3]*float64

	for i, sector := range sectorAccessors {
		for _, lap := range laps {
			value := sector(lap)

			if value == nil {
				continue
			}

			if bests[i] == nil || *value < *bests[i] {
				v := *value
				bests[i] = &v
			}
		}
	}

	return SectorBests{Sector1: bests[0], Sector2: bests[1], Sector3: bests[2]}
}

// SectorAnalysis summarises a driver's sector performance. Sectors are
// evaluated independently: a lap missing sector 2 still contributes to
// sectors 1 and 3.
func SectorAnalysis(driverID string, laps []Lap, bests SectorBests) SectorSummary {
	summary := SectorSummary{DriverID: driverID}

	sessionBests := []*float64{bests.Sector1, bests.Sector2, bests.Sector3}
	stats := []*SectorStats{&summary.Sector1, &summary.Sector2, &summary.Sector3}

	var minima [3]*float64

	for i, sector := range sectorAccessors {
		var values []float64

		for _, lap := range laps {
			if v := sector(lap); v != nil {
				values = append(values, *v)
			}
		}

		if len(values) == 0 {
			continue
		}

		best := minOf(values)
		average := meanOf(values)
		consistency := stdDevOf(values)

		stats[i].Best = &best
		stats[i].Average = &average
		stats[i].Consistency = &consistency
		minima[i] = &best

		if sessionBests[i] != nil {
			gap := best - *sessionBests[i]
			stats[i].GapToBest = &gap
		}
	}

	if minima[0] != nil && minima[1] != nil && minima[2] != nil {
		theoretical := *minima[0] + *minima[1] + *minima[2]
		summary.TheoreticalBest = &theoretical
	}

	return summary
}

func minOf(values []float64) float64 {
	min := values[0]

	for _, v := range values[1:] {
		if v < min {
			min = v
		}
	}

	return min
}

func meanOf(values []float64) float64 {
	var sum float64

	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}

// stdDevOf is the population standard deviation.
func stdDevOf(values []float64) float64 {
	mean := meanOf(values)

	var sum float64

	for _, v := range values {
		sum += (v - mean) * (v - mean)
	}

	return math.Sqrt(sum / float64(len(values)))
}
