package analysis

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type fakeSource struct {
	data  map[string]*SessionData
	errs  map[string]error
	block map[string]bool

	active  int32
	maxSeen int32
}

func (s *fakeSource) LoadSession(ctx context.Context, ref SessionRef) (*SessionData, error) {
	current := atomic.AddInt32(&s.active, 1)
	defer atomic.AddInt32(&s.active, -1)

	for {
		seen := atomic.LoadInt32(&s.maxSeen)

		if current <= seen || atomic.CompareAndSwapInt32(&s.maxSeen, seen, current) {
			break
		}
	}

	if s.block[ref.Key()] {
		<-ctx.Done()
		return nil, ctx.Err()
	}

	if err, ok := s.errs[ref.Key()]; ok {
		return nil, err
	}

	if data, ok := s.data[ref.Key()]; ok {
		return data, nil
	}

	return nil, errors.Errorf("no session %s", ref)
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	return logger
}

func TestOrchestratorRun(t *testing.T) {
	ref := SessionRef{Year: 2024, Round: 5, SessionType: "R"}

	source := &fakeSource{
		data: map[string]*SessionData{
			ref.Key(): testSession(),
		},
	}

	orchestrator := NewOrchestrator(source, Config{}, testLogger())

	result := orchestrator.Run(context.Background(), []Unit{
		{Session: ref, DriverID: "1"},
		{Session: ref, DriverID: "2"},
	})

	if result.RunID == "" {
		t.Errorf("expected a run ID")
	}

	if len(result.Results) != 2 || len(result.Failures) != 0 {
		t.Fatalf("expected 2 results and no failures, got %d and %d", len(result.Results), len(result.Failures))
	}

	if _, ok := result.Results["2024_5_R_1"]; !ok {
		t.Errorf("expected a result keyed by unit key")
	}
}

func TestOrchestratorIsolatesFailures(t *testing.T) {
	good := SessionRef{Year: 2024, Round: 5, SessionType: "R"}
	bad := SessionRef{Year: 2024, Round: 6, SessionType: "R"}

	source := &fakeSource{
		data: map[string]*SessionData{
			good.Key(): testSession(),
		},
		errs: map[string]error{
			bad.Key(): errors.New("feed unavailable"),
		},
	}

	orchestrator := NewOrchestrator(source, Config{}, testLogger())

	result := orchestrator.Run(context.Background(), []Unit{
		{Session: bad, DriverID: "1"},
		{Session: good, DriverID: "1"},
		{Session: good, DriverID: "2"},
		// driver with no laps in an otherwise loadable session
		{Session: good, DriverID: "99"},
	})

	if len(result.Results) != 2 {
		t.Errorf("expected the healthy units to complete, got %d results", len(result.Results))
	}

	if len(result.Failures) != 2 {
		t.Fatalf("expected 2 failures, got %d", len(result.Failures))
	}

	// failures are sorted by unit key for stable reporting
	if result.Failures[0].Unit.Key() != "2024_5_R_99" || result.Failures[1].Unit.Key() != "2024_6_R_1" {
		t.Errorf("unexpected failure order: %s, %s", result.Failures[0].Unit.Key(), result.Failures[1].Unit.Key())
	}

	if errors.Cause(result.Failures[0].Err) != ErrNoLaps {
		t.Errorf("expected the lapless driver to fail with ErrNoLaps, got %v", result.Failures[0].Err)
	}
}

func TestOrchestratorUnitTimeout(t *testing.T) {
	stuck := SessionRef{Year: 2024, Round: 7, SessionType: "R"}

	source := &fakeSource{
		block: map[string]bool{stuck.Key(): true},
	}

	orchestrator := NewOrchestrator(source, Config{UnitTimeoutSeconds: 1}, testLogger())

	result := orchestrator.Run(context.Background(), []Unit{
		{Session: stuck, DriverID: "1"},
	})

	if len(result.Failures) != 1 {
		t.Fatalf("expected the stuck unit to time out, got %d failures", len(result.Failures))
	}

	if errors.Cause(result.Failures[0].Err) != context.DeadlineExceeded {
		t.Errorf("expected a deadline error, got %v", result.Failures[0].Err)
	}
}

func TestOrchestratorBoundsConcurrency(t *testing.T) {
	ref := SessionRef{Year: 2024, Round: 5, SessionType: "R"}

	source := &fakeSource{
		data: map[string]*SessionData{
			ref.Key(): testSession(),
		},
	}

	orchestrator := NewOrchestrator(source, Config{Workers: 2}, testLogger())

	var units []Unit

	for i := 0; i < 16; i++ {
		driverID := "1"

		if i%2 == 1 {
			driverID = "2"
		}

		units = append(units, Unit{Session: ref, DriverID: driverID})
	}

	orchestrator.Run(context.Background(), units)

	if max := atomic.LoadInt32(&source.maxSeen); max > 2 {
		t.Errorf("expected at most 2 concurrent loads, saw %d", max)
	}
}
