package analysis

import "fmt"

// SessionRef identifies a session at the acquisition collaborator.
type SessionRef struct {
	Year        int    `json:"year" yaml:"year"`
	Round       int    `json:"round" yaml:"round"`
	SessionType string `json:"session_type" yaml:"session_type"`
}

func (r SessionRef) String() string {
	return fmt.Sprintf("%d round %d %s", r.Year, r.Round, r.SessionType)
}

func (r SessionRef) Key() string {
	return fmt.Sprintf("%d_%d_%s", r.Year, r.Round, r.SessionType)
}

// SessionMeta is the session metadata handed over alongside the laps.
// TotalLaps may be zero, in which case the maximum observed lap number is
// used instead.
type SessionMeta struct {
	Year        int    `json:"year"`
	Round       int    `json:"round"`
	SessionType string `json:"session_type"`
	TotalLaps   int    `json:"total_laps"`
}

func (m SessionMeta) Ref() SessionRef {
	return SessionRef{Year: m.Year, Round: m.Round, SessionType: m.SessionType}
}

// Driver is the minimal driver metadata the analytics layer carries
// through to its output records.
type Driver struct {
	ID        string `json:"driver_id"`
	Name      string `json:"name"`
	Team      string `json:"team"`
	TeamColor string `json:"team_color"`
}

// SessionData is a fully materialised session: metadata, entry list and
// every driver's normalised laps. It is the unit of input for the
// analyzers and is never mutated by them.
type SessionData struct {
	Meta    SessionMeta `json:"session"`
	Drivers []Driver    `json:"drivers"`
	Laps    []Lap       `json:"laps"`
}

// DriverLaps returns the given driver's laps ordered by lap number.
func (s *SessionData) DriverLaps(driverID string) []Lap {
	var laps []Lap

	for _, lap := range s.Laps {
		if lap.DriverID == driverID {
			laps = append(laps, lap)
		}
	}

	return sortedByLapNumber(laps)
}

func (s *SessionData) Driver(driverID string) (Driver, bool) {
	for _, driver := range s.Drivers {
		if driver.ID == driverID {
			return driver, true
		}
	}

	return Driver{}, false
}

// TotalLaps is the session lap count used by the fuel model: the declared
// total when present, otherwise the maximum observed lap number.
func (s *SessionData) TotalLaps() int {
	if s.Meta.TotalLaps > 0 {
		return s.Meta.TotalLaps
	}

	max := 0

	for _, lap := range s.Laps {
		if lap.LapNumber > max {
			max = lap.LapNumber
		}
	}

	return max
}
