package analysis

import "sort"

// SpeedTrapStats summarises the speed trap channel over a driver's laps.
type SpeedTrapStats struct {
	MaxSpeed     *float64 `json:"max_speed"`
	AverageSpeed *float64 `json:"avg_speed"`
}

// CompoundPace is representative pace on one compound, computed over
// accurate laps with a 107% cut against the compound average.
type CompoundPace struct {
	Compound    Compound `json:"compound"`
	Average     float64  `json:"average"`
	Best        float64  `json:"best"`
	Consistency float64  `json:"consistency"`
	LapCount    int      `json:"lap_count"`
}

// EvolutionPoint is one timed lap of the driver's session, as consumed by
// lap-time evolution views.
type EvolutionPoint struct {
	LapNumber int       `json:"lap"`
	Time      float64   `json:"time"`
	Compound  *Compound `json:"compound"`
	TyreLife  *int      `json:"tyre_life"`
}

// PaceSummary is the per-driver performance overview: overall lap time
// statistics, representative pace per compound, speed trap figures and the
// raw lap-time evolution.
type PaceSummary struct {
	DriverID     string           `json:"driver_id"`
	FastestLap   *float64         `json:"fastest"`
	AverageLap   *float64         `json:"average"`
	StdDev       *float64         `json:"std_dev"`
	Consistency  *float64         `json:"consistency"`
	TotalLaps    int              `json:"total_laps"`
	PitStops     int              `json:"pit_stops"`
	SpeedTrap    SpeedTrapStats   `json:"speed_trap"`
	CompoundPace []CompoundPace   `json:"compound_pace"`
	Evolution    []EvolutionPoint `json:"lap_time_evolution"`
}

const racePaceCutoff = 1.07

// SummarisePace computes a driver's performance overview. Compound pace
// only counts accurate laps that are neither pit-in nor pit-out laps, with
// laps beyond 107% of the compound average discarded.
func SummarisePace(driverID string, laps []Lap) PaceSummary {
	summary := PaceSummary{DriverID: driverID, TotalLaps: len(laps)}

	sorted := sortedByLapNumber(laps)

	var times []float64
	var trapSpeeds []float64

	for _, lap := range sorted {
		if lap.LapTime != nil {
			times = append(times, *lap.LapTime)

			summary.Evolution = append(summary.Evolution, EvolutionPoint{
				LapNumber: lap.LapNumber,
				Time:      *lap.LapTime,
				Compound:  lap.Compound,
				TyreLife:  lap.TyreLife,
			})
		}

		if lap.SpeedST != nil {
			trapSpeeds = append(trapSpeeds, *lap.SpeedST)
		}

		if lap.PitOutTime != nil {
			summary.PitStops++
		}
	}

	if len(times) > 0 {
		fastest := minOf(times)
		average := meanOf(times)
		stdDev := stdDevOf(times)

		summary.FastestLap = &fastest
		summary.AverageLap = &average
		summary.StdDev = &stdDev

		if average > 0 {
			consistency := stdDev / average * 100
			summary.Consistency = &consistency
		}
	}

	if len(trapSpeeds) > 0 {
		max := trapSpeeds[0]

		for _, v := range trapSpeeds[1:] {
			if v > max {
				max = v
			}
		}

		avg := meanOf(trapSpeeds)

		summary.SpeedTrap.MaxSpeed = &max
		summary.SpeedTrap.AverageSpeed = &avg
	}

	summary.CompoundPace = compoundPace(sorted)

	return summary
}

func compoundPace(sorted []Lap) []CompoundPace {
	byCompound := make(map[Compound][]float64)

	for _, lap := range sorted {
		if lap.LapTime == nil || lap.Compound == nil {
			continue
		}

		// in-laps, out-laps and flagged laps are not representative pace
		if lap.PitInTime != nil || lap.PitOutTime != nil || !lap.IsAccurate {
			continue
		}

		byCompound[*lap.Compound] = append(byCompound[*lap.Compound], *lap.LapTime)
	}

	var compounds []Compound

	for compound := range byCompound {
		compounds = append(compounds, compound)
	}

	sort.Slice(compounds, func(i, j int) bool { return compounds[i] < compounds[j] })

	var pace []CompoundPace

	for _, compound := range compounds {
		times := byCompound[compound]
		cutoff := meanOf(times) * racePaceCutoff

		var filtered []float64

		for _, t := range times {
			if t < cutoff {
				filtered = append(filtered, t)
			}
		}

		if len(filtered) == 0 {
			continue
		}

		pace = append(pace, CompoundPace{
			Compound:    compound,
			Average:     meanOf(filtered),
			Best:        minOf(filtered),
			Consistency: stdDevOf(filtered),
			LapCount:    len(filtered),
		})
	}

	return pace
}
