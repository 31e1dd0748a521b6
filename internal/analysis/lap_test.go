package analysis

import "testing"

func TestNormalizeLap(t *testing.T) {
	negative := -2.5
	valid := 94.321
	soft := "soft"
	unknown := "QUALIFYING"
	stint := 2.0
	badStint := 0.0
	life := 12.0
	accurate := true

	tests := []struct {
		name  string
		raw   RawLap
		check func(t *testing.T, lap Lap)
	}{
		{
			name: "negative durations become absent",
			raw:  RawLap{DriverID: "44", LapNumber: 3, LapTime: &negative, Sector2Time: &negative},
			check: func(t *testing.T, lap Lap) {
				if lap.LapTime != nil {
					t.Errorf("expected negative lap time to be absent, got %v", *lap.LapTime)
				}

				if lap.Sector2Time != nil {
					t.Errorf("expected negative sector time to be absent")
				}
			},
		},
		{
			name: "valid values survive",
			raw:  RawLap{DriverID: "44", LapNumber: 3, LapTime: &valid, Compound: &soft, TyreLife: &life, StintNumber: &stint, IsAccurate: &accurate},
			check: func(t *testing.T, lap Lap) {
				if lap.LapTime == nil || *lap.LapTime != valid {
					t.Errorf("expected lap time %v to survive", valid)
				}

				if lap.Compound == nil || *lap.Compound != CompoundSoft {
					t.Errorf("expected compound SOFT, got %v", lap.Compound)
				}

				if lap.TyreLife == nil || *lap.TyreLife != 12 {
					t.Errorf("expected tyre life 12")
				}

				if lap.StintNumber == nil || *lap.StintNumber != 2 {
					t.Errorf("expected stint number 2")
				}

				if !lap.IsAccurate {
					t.Errorf("expected accurate flag to carry over")
				}
			},
		},
		{
			name: "unknown compound and invalid stint become absent",
			raw:  RawLap{DriverID: "44", LapNumber: 3, Compound: &unknown, StintNumber: &badStint},
			check: func(t *testing.T, lap Lap) {
				if lap.Compound != nil {
					t.Errorf("expected unrecognised compound to be absent")
				}

				if lap.StintNumber != nil {
					t.Errorf("expected non-positive stint number to be absent")
				}
			},
		},
		{
			name: "booleans default to false",
			raw:  RawLap{DriverID: "44", LapNumber: 3},
			check: func(t *testing.T, lap Lap) {
				if lap.IsPersonalBest || lap.IsAccurate {
					t.Errorf("expected absent booleans to default to false")
				}
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			test.check(t, NormalizeLap(test.raw))
		})
	}
}

func TestNormalizeLapsDropsInvalidLapNumbers(t *testing.T) {
	laps := NormalizeLaps([]RawLap{
		{DriverID: "44", LapNumber: 0},
		{DriverID: "44", LapNumber: 1},
		{DriverID: "44", LapNumber: -3},
		{DriverID: "44", LapNumber: 2},
	})

	if len(laps) != 2 {
		t.Fatalf("expected 2 laps to survive, got %d", len(laps))
	}

	if laps[0].LapNumber != 1 || laps[1].LapNumber != 2 {
		t.Errorf("expected input order to be preserved")
	}
}
