package analysis

import "sort"

type StintSource string

const (
	// StintSourceAuthoritative means every lap carried an explicit stint
	// number and grouping followed it directly.
	StintSourceAuthoritative StintSource = "authoritative"

	// StintSourceInferred means at least one lap was missing a stint
	// number and boundaries were detected from compound changes instead.
	StintSourceInferred StintSource = "inferred"
)

// Stint is a contiguous run of laps on one tyre set for one driver. Laps
// holds only the laps with a resolvable lap time, ordered by lap number.
type Stint struct {
	DriverID    string      `json:"driver_id"`
	StintNumber int         `json:"stint_number"`
	Compound    *Compound   `json:"compound"`
	StartLap    int         `json:"start_lap"`
	EndLap      int         `json:"end_lap"`
	Source      StintSource `json:"source"`
	Laps        []Lap       `json:"laps"`
}

// SegmentStints partitions one driver's laps into stints. When every lap
// carries a stint number that grouping is authoritative; compound changes
// mid-stint do not split it. Otherwise boundaries are inferred from
// compound changes, where a lap with no compound extends the current
// stint. Stints without a single timed lap are dropped.
func SegmentStints(laps []Lap) []Stint {
	if len(laps) == 0 {
		return nil
	}

	sorted := sortedByLapNumber(laps)

	authoritative := true

	for _, lap := range sorted {
		if lap.StintNumber == nil {
			authoritative = false
			break
		}
	}

	if authoritative {
		return segmentByStintNumber(sorted)
	}

	return segmentByCompoundChange(sorted)
}

func segmentByStintNumber(sorted []Lap) []Stint {
	groups := make(map[int][]Lap)
	var order []int

	for _, lap := range sorted {
		num := *lap.StintNumber

		if _, ok := groups[num]; !ok {
			order = append(order, num)
		}

		groups[num] = append(groups[num], lap)
	}

	sort.Ints(order)

	var stints []Stint

	for _, num := range order {
		if stint, ok := buildStint(groups[num], num, StintSourceAuthoritative); ok {
			stints = append(stints, stint)
		}
	}

	return stints
}

func segmentByCompoundChange(sorted []Lap) []Stint {
	var groups [][]Lap
	var current []Lap
	var lastCompound *Compound

	for _, lap := range sorted {
		if lap.Compound != nil && lastCompound != nil && *lap.Compound != *lastCompound && len(current) > 0 {
			groups = append(groups, current)
			current = nil
		}

		current = append(current, lap)

		if lap.Compound != nil {
			lastCompound = lap.Compound
		}
	}

	if len(current) > 0 {
		groups = append(groups, current)
	}

	var stints []Stint

	for _, group := range groups {
		if stint, ok := buildStint(group, len(stints)+1, StintSourceInferred); ok {
			stints = append(stints, stint)
		}
	}

	return stints
}

func buildStint(group []Lap, number int, source StintSource) (Stint, bool) {
	var timed []Lap
	var compound *Compound

	for _, lap := range group {
		if compound == nil && lap.Compound != nil {
			compound = lap.Compound
		}

		if lap.LapTime != nil {
			timed = append(timed, lap)
		}
	}

	if len(timed) == 0 {
		return Stint{}, false
	}

	return Stint{
		DriverID:    timed[0].DriverID,
		StintNumber: number,
		Compound:    compound,
		StartLap:    timed[0].LapNumber,
		EndLap:      timed[len(timed)-1].LapNumber,
		Source:      source,
		Laps:        timed,
	}, true
}
