package analysis

import (
	"math"
	"sort"
	"strings"
)

type Compound string

const (
	CompoundSoft         Compound = "SOFT"
	CompoundMedium       Compound = "MEDIUM"
	CompoundHard         Compound = "HARD"
	CompoundIntermediate Compound = "INTERMEDIATE"
	CompoundWet          Compound = "WET"
)

func ParseCompound(s string) (Compound, bool) {
	switch Compound(strings.ToUpper(strings.TrimSpace(s))) {
	case CompoundSoft:
		return CompoundSoft, true
	case CompoundMedium:
		return CompoundMedium, true
	case CompoundHard:
		return CompoundHard, true
	case CompoundIntermediate:
		return CompoundIntermediate, true
	case CompoundWet:
		return CompoundWet, true
	default:
		return "", false
	}
}

// Lap is the canonical per-lap timing record. All durations are float64
// seconds. Optional values are nil when the timing feed did not resolve
// them; they are never encoded as zero.
type Lap struct {
	DriverID       string    `json:"driver_id"`
	LapNumber      int       `json:"lap_number"`
	LapTime        *float64  `json:"lap_time"`
	Sector1Time    *float64  `json:"sector1_time"`
	Sector2Time    *float64  `json:"sector2_time"`
	Sector3Time    *float64  `json:"sector3_time"`
	Compound       *Compound `json:"compound"`
	TyreLife       *int      `json:"tyre_life"`
	StintNumber    *int      `json:"stint_number"`
	PitInTime      *float64  `json:"pit_in_time"`
	PitOutTime     *float64  `json:"pit_out_time"`
	IsPersonalBest bool      `json:"is_personal_best"`
	IsAccurate     bool      `json:"is_accurate"`
	Position       *int      `json:"position"`
	CumulativeTime *float64  `json:"cumulative_time"`
	SpeedI1        *float64  `json:"speed_i1"`
	SpeedI2        *float64  `json:"speed_i2"`
	SpeedFL        *float64  `json:"speed_fl"`
	SpeedST        *float64  `json:"speed_st"`
}

// RawLap is a lap record as handed over by the acquisition collaborator.
// Numeric fields which upstream feeds deliver as floats (stint number,
// position, tyre life) are kept as such until normalisation.
type RawLap struct {
	DriverID       string   `json:"driver_id"`
	LapNumber      int      `json:"lap_number"`
	LapTime        *float64 `json:"lap_time"`
	Sector1Time    *float64 `json:"sector1_time"`
	Sector2Time    *float64 `json:"sector2_time"`
	Sector3Time    *float64 `json:"sector3_time"`
	Compound       *string  `json:"compound"`
	TyreLife       *float64 `json:"tyre_life"`
	StintNumber    *float64 `json:"stint_number"`
	PitInTime      *float64 `json:"pit_in_time"`
	PitOutTime     *float64 `json:"pit_out_time"`
	IsPersonalBest *bool    `json:"is_personal_best"`
	IsAccurate     *bool    `json:"is_accurate"`
	Position       *float64 `json:"position"`
	CumulativeTime *float64 `json:"cumulative_time"`
	SpeedI1        *float64 `json:"speed_i1"`
	SpeedI2        *float64 `json:"speed_i2"`
	SpeedFL        *float64 `json:"speed_fl"`
	SpeedST        *float64 `json:"speed_st"`
}

// NormalizeLap converts a raw lap into its canonical form. Missing,
// negative or non-finite values become absent rather than defaulting to
// zero, so later statistics cannot be polluted by placeholders.
func NormalizeLap(raw RawLap) Lap {
	lap := Lap{
		DriverID:       raw.DriverID,
		LapNumber:      raw.LapNumber,
		LapTime:        duration(raw.LapTime),
		Sector1Time:    duration(raw.Sector1Time),
		Sector2Time:    duration(raw.Sector2Time),
		Sector3Time:    duration(raw.Sector3Time),
		PitInTime:      duration(raw.PitInTime),
		PitOutTime:     duration(raw.PitOutTime),
		CumulativeTime: duration(raw.CumulativeTime),
		SpeedI1:        sample(raw.SpeedI1),
		SpeedI2:        sample(raw.SpeedI2),
		SpeedFL:        sample(raw.SpeedFL),
		SpeedST:        sample(raw.SpeedST),
	}

	if raw.Compound != nil {
		if compound, ok := ParseCompound(*raw.Compound); ok {
			lap.Compound = &compound
		}
	}

	lap.TyreLife = nonNegativeInt(raw.TyreLife)
	lap.StintNumber = positiveInt(raw.StintNumber)
	lap.Position = positiveInt(raw.Position)

	if raw.IsPersonalBest != nil {
		lap.IsPersonalBest = *raw.IsPersonalBest
	}

	if raw.IsAccurate != nil {
		lap.IsAccurate = *raw.IsAccurate
	}

	return lap
}

// NormalizeLaps normalises a batch of raw laps, discarding records without
// a valid lap number. Ordering of the input is preserved; callers that
// need lap-number order sort the result.
func NormalizeLaps(raw []RawLap) []Lap {
	var laps []Lap

	for _, r := range raw {
		if r.LapNumber <= 0 {
			continue
		}

		laps = append(laps, NormalizeLap(r))
	}

	return laps
}

func duration(v *float64) *float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) || *v < 0 {
		return nil
	}

	out := *v

	return &out
}

func sample(v *float64) *float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return nil
	}

	out := *v

	return &out
}

func positiveInt(v *float64) *int {
	if v == nil || math.IsNaN(*v) || *v < 1 {
		return nil
	}

	out := int(*v)

	return &out
}

func nonNegativeInt(v *float64) *int {
	if v == nil || math.IsNaN(*v) || *v < 0 {
		return nil
	}

	out := int(*v)

	return &out
}

// sortedByLapNumber returns a copy of laps ordered by lap number, leaving
// the input untouched.
func sortedByLapNumber(laps []Lap) []Lap {
	sorted := append([]Lap(nil), laps...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].LapNumber < sorted[j].LapNumber
	})

	return sorted
}
