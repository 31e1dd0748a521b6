package analysis

import "math"

func secs(v float64) *float64 {
	return &v
}

func num(v int) *int {
	return &v
}

func compound(c Compound) *Compound {
	return &c
}

// timedLap builds a minimal timed lap for one driver.
func timedLap(driverID string, lapNumber int, lapTime float64) Lap {
	return Lap{
		DriverID:  driverID,
		LapNumber: lapNumber,
		LapTime:   secs(lapTime),
	}
}

func stintLap(driverID string, lapNumber, stintNumber int, lapTime float64, c Compound) Lap {
	lap := timedLap(driverID, lapNumber, lapTime)
	lap.StintNumber = num(stintNumber)
	lap.Compound = compound(c)

	return lap
}

func almostEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}
