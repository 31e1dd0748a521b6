package analysis

import "sort"

// GapPoint is one driver's gap to the lap's positional leader.
type GapPoint struct {
	LapNumber int     `json:"lap"`
	Gap       float64 `json:"gap"`
	Position  int     `json:"position"`
}

// GapSeries is the per-lap gap evolution for one driver.
type GapSeries struct {
	DriverID string     `json:"driver_id"`
	Points   []GapPoint `json:"gaps"`
}

// GapToLeader reconstructs per-lap gaps to the race leader across all
// drivers in a session. The leader is lap-indexed: whoever holds position
// one on that lap. Laps without a position-one record, or where the leader
// has no cumulative time, are skipped for every driver. Gaps are clamped
// at zero and the leader's own gap is exactly zero.
func GapToLeader(laps []Lap) map[string]GapSeries {
	byLap := make(map[int][]Lap)
	var lapNumbers []int

	for _, lap := range laps {
		if _, ok := byLap[lap.LapNumber]; !ok {
			lapNumbers = append(lapNumbers, lap.LapNumber)
		}

		byLap[lap.LapNumber] = append(byLap[lap.LapNumber], lap)
	}

	sort.Ints(lapNumbers)

	series := make(map[string]GapSeries)

	for _, lapNumber := range lapNumbers {
		records := byLap[lapNumber]

		var leaderTime *float64

		for _, lap := range records {
			if lap.Position != nil && *lap.Position == 1 {
				leaderTime = lap.CumulativeTime
				break
			}
		}

		if leaderTime == nil {
			continue
		}

		for _, lap := range records {
			if lap.CumulativeTime == nil || lap.Position == nil {
				continue
			}

			gap := *lap.CumulativeTime - *leaderTime

			if gap < 0 || *lap.Position == 1 {
				gap = 0
			}

			s := series[lap.DriverID]
			s.DriverID = lap.DriverID
			s.Points = append(s.Points, GapPoint{
				LapNumber: lapNumber,
				Gap:       gap,
				Position:  *lap.Position,
			})
			series[lap.DriverID] = s
		}
	}

	return series
}
