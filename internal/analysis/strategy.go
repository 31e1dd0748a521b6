package analysis

// StrategyStint is one entry of a driver's race strategy.
type StrategyStint struct {
	StintNumber    int         `json:"stint_number"`
	Compound       *Compound   `json:"compound"`
	StartLap       int         `json:"start_lap"`
	EndLap         int         `json:"end_lap"`
	StintLength    int         `json:"stint_length"`
	AverageLapTime float64     `json:"average_lap_time"`
	Source         StintSource `json:"source"`
}

// StrategySummary aggregates a driver's stints into a race strategy.
// TotalPitStops is the stint count minus one, floored at zero; stints
// without timed laps were already dropped by the segmenter so a retirement
// mid-stint never inflates the count.
type StrategySummary struct {
	DriverID         string          `json:"driver_id"`
	TotalPitStops    int             `json:"total_pit_stops"`
	AverageStintPace *float64        `json:"average_stint_pace"`
	Stints           []StrategyStint `json:"stints"`
}

func Strategy(driverID string, stints []Stint) StrategySummary {
	summary := StrategySummary{DriverID: driverID}

	for _, stint := range stints {
		var sum float64

		for _, lap := range stint.Laps {
			sum += *lap.LapTime
		}

		summary.Stints = append(summary.Stints, StrategyStint{
			StintNumber:    stint.StintNumber,
			Compound:       stint.Compound,
			StartLap:       stint.StartLap,
			EndLap:         stint.EndLap,
			StintLength:    len(stint.Laps),
			AverageLapTime: sum / float64(len(stint.Laps)),
			Source:         stint.Source,
		})
	}

	if len(summary.Stints) > 0 {
		summary.TotalPitStops = len(summary.Stints) - 1

		var sum float64

		for _, stint := range summary.Stints {
			sum += stint.AverageLapTime
		}

		pace := sum / float64(len(summary.Stints))
		summary.AverageStintPace = &pace
	}

	return summary
}
