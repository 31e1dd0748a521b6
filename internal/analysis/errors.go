package analysis

import "github.com/pkg/errors"

var (
	// ErrNoLaps is returned when a session carries no laps at all for the
	// requested driver. Per-lap anomalies inside the analyzers are
	// absorbed instead of raised; this is the one per-unit condition that
	// surfaces, since it usually means the unit was misaddressed.
	ErrNoLaps = errors.New("analysis: no laps for driver in session")
)
