package analysis

// Analyzer derives racing analytics from normalised lap records. Every
// method is a pure function of its input plus the configuration, so a
// single Analyzer is safe for concurrent use.
type Analyzer struct {
	config Config
	logger Logger
}

func NewAnalyzer(config Config, logger Logger) *Analyzer {
	return &Analyzer{
		config: config.withDefaults(),
		logger: logger,
	}
}

// DriverAnalysis is the structured record bundle for one (session, driver)
// unit, as consumed by the serving and persistence layers. Field names and
// float64-second durations are part of the wire contract.
type DriverAnalysis struct {
	Session       SessionMeta                  `json:"session"`
	Driver        Driver                       `json:"driver"`
	Stints        []Stint                      `json:"stints"`
	Degradation   map[string]DegradationResult `json:"degradation"`
	SectorSummary SectorSummary                `json:"sector_summary"`
	Strategy      StrategySummary              `json:"strategy"`
	GapSeries     GapSeries                    `json:"gap_series"`
	FuelCorrected FuelCorrectedPace            `json:"fuel_corrected"`
	Pace          PaceSummary                  `json:"pace"`
}

// AnalyzeDriver runs every analyzer over one driver of a session and
// assembles the result bundle. It only fails when the session holds no
// laps for the driver; all other anomalies degrade the bundle's
// completeness instead.
func (a *Analyzer) AnalyzeDriver(data *SessionData, driverID string) (*DriverAnalysis, error) {
	driverLaps := data.DriverLaps(driverID)

	if len(driverLaps) == 0 {
		return nil, ErrNoLaps
	}

	driver, ok := data.Driver(driverID)

	if !ok {
		driver = Driver{ID: driverID, Name: driverID}
	}

	stints := SegmentStints(driverLaps)

	gaps := GapToLeader(data.Laps)[driverID]

	if gaps.DriverID == "" {
		gaps.DriverID = driverID
	}

	return &DriverAnalysis{
		Session:       data.Meta,
		Driver:        driver,
		Stints:        stints,
		Degradation:   a.DegradationByStint(stints),
		SectorSummary: SectorAnalysis(driverID, driverLaps, SessionSectorBests(data.Laps)),
		Strategy:      Strategy(driverID, stints),
		GapSeries:     gaps,
		FuelCorrected: a.FuelCorrectedPace(driverID, driverLaps, data.TotalLaps()),
		Pace:          SummarisePace(driverID, driverLaps),
	}, nil
}
