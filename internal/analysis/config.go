package analysis

import "time"

// Config carries the small set of tunables the analyzers and the batch
// orchestrator take. Zero values are replaced by the defaults below.
type Config struct {
	// FuelEffect is the pace penalty in seconds per lap per kilogram of
	// fuel carried.
	FuelEffect float64 `json:"fuel_effect" yaml:"fuel_effect"`

	// FuelLoadKG is the assumed race starting fuel mass.
	FuelLoadKG float64 `json:"fuel_load_kg" yaml:"fuel_load_kg"`

	// OutlierThreshold is the multiple of the stint median beyond which a
	// lap is discarded before degradation fitting.
	OutlierThreshold float64 `json:"outlier_threshold" yaml:"outlier_threshold"`

	// MinStintLength is the minimum number of usable laps a stint needs
	// for a degradation fit.
	MinStintLength int `json:"min_stint_length" yaml:"min_stint_length"`

	// Workers bounds how many (session, driver) units run concurrently.
	Workers int `json:"workers" yaml:"workers"`

	// UnitTimeoutSeconds bounds a single unit, including its raw-data
	// fetch.
	UnitTimeoutSeconds int `json:"unit_timeout_seconds" yaml:"unit_timeout_seconds"`
}

const (
	DefaultFuelEffect         = 0.03
	DefaultFuelLoadKG         = 110
	DefaultOutlierThreshold   = 1.05
	DefaultMinStintLength     = 4
	DefaultWorkers            = 3
	DefaultUnitTimeoutSeconds = 300
)

func DefaultConfig() Config {
	return Config{
		FuelEffect:         DefaultFuelEffect,
		FuelLoadKG:         DefaultFuelLoadKG,
		OutlierThreshold:   DefaultOutlierThreshold,
		MinStintLength:     DefaultMinStintLength,
		Workers:            DefaultWorkers,
		UnitTimeoutSeconds: DefaultUnitTimeoutSeconds,
	}
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()

	if c.FuelEffect <= 0 {
		c.FuelEffect = defaults.FuelEffect
	}

	if c.FuelLoadKG <= 0 {
		c.FuelLoadKG = defaults.FuelLoadKG
	}

	if c.OutlierThreshold <= 1 {
		c.OutlierThreshold = defaults.OutlierThreshold
	}

	if c.MinStintLength <= 0 {
		c.MinStintLength = defaults.MinStintLength
	}

	if c.Workers <= 0 {
		c.Workers = defaults.Workers
	}

	if c.UnitTimeoutSeconds <= 0 {
		c.UnitTimeoutSeconds = defaults.UnitTimeoutSeconds
	}

	return c
}

func (c Config) unitTimeout() time.Duration {
	return time.Duration(c.UnitTimeoutSeconds) * time.Second
}
