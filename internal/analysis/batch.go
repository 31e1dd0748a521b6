package analysis

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Unit is one (session, driver) analysis job.
type Unit struct {
	Session  SessionRef `json:"session" yaml:"session"`
	DriverID string     `json:"driver_id" yaml:"driver_id"`
}

func (u Unit) Key() string {
	return fmt.Sprintf("%s_%s", u.Session.Key(), u.DriverID)
}

// UnitFailure records one failed or timed-out unit. Failures never abort
// sibling units.
type UnitFailure struct {
	Unit    Unit   `json:"unit"`
	Message string `json:"error"`

	Err error `json:"-"`
}

// BatchResult aggregates a batch run. Results is keyed by Unit.Key and is
// order-independent; Failures is sorted by unit key for stable reporting.
type BatchResult struct {
	RunID    string                     `json:"run_id"`
	Results  map[string]*DriverAnalysis `json:"results"`
	Failures []UnitFailure              `json:"failures"`
	Duration time.Duration              `json:"-"`
}

// Orchestrator drives the analyzers over many units under a bounded worker
// pool. Each unit gets its own timeout; a failure is logged, counted and
// excluded from the aggregate without affecting units already in flight.
type Orchestrator struct {
	analyzer *Analyzer
	source   SessionSource
	config   Config
	logger   Logger
}

func NewOrchestrator(source SessionSource, config Config, logger Logger) *Orchestrator {
	config = config.withDefaults()

	return &Orchestrator{
		analyzer: NewAnalyzer(config, logger),
		source:   source,
		config:   config,
		logger:   logger,
	}
}

func (o *Orchestrator) Run(ctx context.Context, units []Unit) *BatchResult {
	result := &BatchResult{
		RunID:   uuid.New().String(),
		Results: make(map[string]*DriverAnalysis),
	}

	o.logger.Infof("Batch %s: starting %d units (%d workers, %ds unit timeout)", result.RunID, len(units), o.config.Workers, o.config.UnitTimeoutSeconds)

	started := time.Now()

	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.config.Workers)

	for _, unit := range units {
		unit := unit

		g.Go(func() error {
			analysis, err := o.runUnit(ctx, unit)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				unitsFailed.Inc()
				o.logger.Errorf("Batch %s: unit %s failed: %v", result.RunID, unit.Key(), err)
				result.Failures = append(result.Failures, UnitFailure{Unit: unit, Message: err.Error(), Err: err})

				// unit failures must not cancel siblings
				return nil
			}

			unitsCompleted.Inc()
			o.logger.Debugf("Batch %s: unit %s completed", result.RunID, unit.Key())
			result.Results[unit.Key()] = analysis

			return nil
		})
	}

	_ = g.Wait()

	sort.Slice(result.Failures, func(i, j int) bool {
		return result.Failures[i].Unit.Key() < result.Failures[j].Unit.Key()
	})

	result.Duration = time.Since(started)

	o.logger.Infof("Batch %s: %d completed, %d failed in %s", result.RunID, len(result.Results), len(result.Failures), result.Duration)

	return result
}

func (o *Orchestrator) runUnit(ctx context.Context, unit Unit) (*DriverAnalysis, error) {
	ctx, cancel := context.WithTimeout(ctx, o.config.unitTimeout())
	defer cancel()

	started := time.Now()
	defer func() {
		unitDuration.Observe(time.Since(started).Seconds())
	}()

	data, err := o.source.LoadSession(ctx, unit.Session)

	if err != nil {
		return nil, errors.Wrapf(err, "could not load session %s", unit.Session)
	}

	analysis, err := o.analyzer.AnalyzeDriver(data, unit.DriverID)

	if err != nil {
		return nil, errors.Wrapf(err, "could not analyse driver %s in session %s", unit.DriverID, unit.Session)
	}

	return analysis, nil
}
