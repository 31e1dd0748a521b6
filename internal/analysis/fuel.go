package analysis

// FuelLap is one lap with its estimated fuel-mass penalty removed.
type FuelLap struct {
	LapNumber      int       `json:"lap"`
	ActualTime     float64   `json:"actual_time"`
	CorrectedTime  float64   `json:"corrected_time"`
	FuelCorrection float64   `json:"fuel_correction"`
	Compound       *Compound `json:"compound"`
}

// FuelCorrectedPace is a driver's pace with the linear fuel burn model
// applied. Laps without a resolvable lap time are skipped.
type FuelCorrectedPace struct {
	DriverID             string    `json:"driver_id"`
	AverageActualPace    *float64  `json:"average_actual_pace"`
	AverageCorrectedPace *float64  `json:"average_corrected_pace"`
	BestActualTime       *float64  `json:"best_actual_time"`
	BestCorrectedTime    *float64  `json:"best_corrected_time"`
	Laps                 []FuelLap `json:"lap_times"`
}

// FuelCorrectedPace removes the estimated fuel-load penalty from each
// timed lap. Fuel is assumed to burn down linearly over totalLaps, which
// is the session-wide lap count: drivers who retire early still use the
// session denominator. The correction reaches zero on the final lap.
func (a *Analyzer) FuelCorrectedPace(driverID string, laps []Lap, totalLaps int) FuelCorrectedPace {
	pace := FuelCorrectedPace{DriverID: driverID}

	if totalLaps <= 0 {
		return pace
	}

	for _, lap := range sortedByLapNumber(laps) {
		if lap.LapTime == nil {
			continue
		}

		fuelFactor := float64(totalLaps-lap.LapNumber) / float64(totalLaps)
		correction := fuelFactor * a.config.FuelEffect * a.config.FuelLoadKG

		pace.Laps = append(pace.Laps, FuelLap{
			LapNumber:      lap.LapNumber,
			ActualTime:     *lap.LapTime,
			CorrectedTime:  *lap.LapTime - correction,
			FuelCorrection: correction,
			Compound:       lap.Compound,
		})
	}

	if len(pace.Laps) == 0 {
		return pace
	}

	var sumActual, sumCorrected float64
	bestActual := pace.Laps[0].ActualTime
	bestCorrected := pace.Laps[0].CorrectedTime

	for _, lap := range pace.Laps {
		sumActual += lap.ActualTime
		sumCorrected += lap.CorrectedTime

		if lap.ActualTime < bestActual {
			bestActual = lap.ActualTime
		}

		if lap.CorrectedTime < bestCorrected {
			bestCorrected = lap.CorrectedTime
		}
	}

	avgActual := sumActual / float64(len(pace.Laps))
	avgCorrected := sumCorrected / float64(len(pace.Laps))

	pace.AverageActualPace = &avgActual
	pace.AverageCorrectedPace = &avgCorrected
	pace.BestActualTime = &bestActual
	pace.BestCorrectedTime = &bestCorrected

	return pace
}
