package analysis

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

func testSession() *SessionData {
	raceLap := func(driverID string, lapNumber, stintNumber, position int, lapTime, cumulative float64, c Compound) Lap {
		lap := stintLap(driverID, lapNumber, stintNumber, lapTime, c)
		lap.Position = num(position)
		lap.CumulativeTime = secs(cumulative)
		lap.Sector1Time = secs(lapTime * 0.3)
		lap.Sector2Time = secs(lapTime * 0.4)
		lap.Sector3Time = secs(lapTime * 0.3)
		lap.IsAccurate = true

		return lap
	}

	return &SessionData{
		Meta: SessionMeta{Year: 2024, Round: 5, SessionType: "R", TotalLaps: 10},
		Drivers: []Driver{
			{ID: "1", Name: "Driver One", Team: "Alpha"},
			{ID: "2", Name: "Driver Two", Team: "Beta"},
		},
		Laps: []Lap{
			raceLap("1", 1, 1, 1, 90.0, 90.0, CompoundSoft),
			raceLap("1", 2, 1, 1, 90.5, 180.5, CompoundSoft),
			raceLap("1", 3, 1, 1, 91.0, 271.5, CompoundSoft),
			raceLap("1", 4, 1, 1, 91.5, 363.0, CompoundSoft),
			raceLap("2", 1, 1, 2, 91.0, 91.0, CompoundMedium),
			raceLap("2", 2, 1, 2, 91.5, 182.5, CompoundMedium),
			raceLap("2", 3, 1, 2, 92.0, 274.5, CompoundMedium),
			raceLap("2", 4, 1, 2, 92.5, 367.0, CompoundMedium),
		},
	}
}

func TestAnalyzeDriver(t *testing.T) {
	analyzer := NewAnalyzer(Config{}, logrus.New())

	analysis, err := analyzer.AnalyzeDriver(testSession(), "1")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if analysis.Driver.Name != "Driver One" {
		t.Errorf("expected the entry list driver, got %q", analysis.Driver.Name)
	}

	if len(analysis.Stints) != 1 {
		t.Errorf("expected 1 stint, got %d", len(analysis.Stints))
	}

	if _, ok := analysis.Degradation["stint_1"]; !ok {
		t.Errorf("expected a degradation fit for stint 1")
	}

	if analysis.Strategy.TotalPitStops != 0 {
		t.Errorf("expected 0 pit stops for a single stint, got %d", analysis.Strategy.TotalPitStops)
	}

	if len(analysis.GapSeries.Points) != 4 {
		t.Fatalf("expected 4 gap points, got %d", len(analysis.GapSeries.Points))
	}

	// driver 1 leads every lap
	for _, point := range analysis.GapSeries.Points {
		if point.Gap != 0 {
			t.Errorf("expected the leader's gap to be zero on lap %d, got %v", point.LapNumber, point.Gap)
		}
	}

	if len(analysis.FuelCorrected.Laps) != 4 {
		t.Errorf("expected 4 fuel corrected laps, got %d", len(analysis.FuelCorrected.Laps))
	}
}

func TestAnalyzeDriverUnknownDriver(t *testing.T) {
	analyzer := NewAnalyzer(Config{}, logrus.New())

	_, err := analyzer.AnalyzeDriver(testSession(), "99")

	if errors.Cause(err) != ErrNoLaps {
		t.Errorf("expected ErrNoLaps, got %v", err)
	}
}

func TestAnalyzeDriverMissingEntryListFallsBack(t *testing.T) {
	data := testSession()
	data.Drivers = nil

	analyzer := NewAnalyzer(Config{}, logrus.New())

	analysis, err := analyzer.AnalyzeDriver(data, "1")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if analysis.Driver.ID != "1" || analysis.Driver.Name != "1" {
		t.Errorf("expected a placeholder driver, got %+v", analysis.Driver)
	}
}

func TestAnalyzeDriverIsDeterministic(t *testing.T) {
	analyzer := NewAnalyzer(Config{}, logrus.New())

	first, err := analyzer.AnalyzeDriver(testSession(), "2")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := analyzer.AnalyzeDriver(testSession(), "2")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	firstJSON, err := json.Marshal(first)

	if err != nil {
		t.Fatalf("could not marshal: %v", err)
	}

	secondJSON, err := json.Marshal(second)

	if err != nil {
		t.Fatalf("could not marshal: %v", err)
	}

	if !bytes.Equal(firstJSON, secondJSON) {
		t.Errorf("expected byte identical output from repeated runs")
	}
}
