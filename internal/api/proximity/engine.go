package proximity

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"tourguide/app/observability/metrics"
	"tourguide/internal/api/geo"
	"tourguide/internal/types"
)

// State is the per-attraction alerting state.
type State int

const (
	// StateOutOfRange: attraction beyond the proximity threshold.
	StateOutOfRange State = iota
	// StateInRangeAlerted: in range and an alert has fired for this stay.
	StateInRangeAlerted
	// StateInRangeCoolingDown: in range but entry happened while the
	// cooldown from an earlier alert was still running, so no alert fired.
	StateInRangeCoolingDown
)

func (s State) String() string {
	switch s {
	case StateInRangeAlerted:
		return "in_range_alerted"
	case StateInRangeCoolingDown:
		return "in_range_cooling_down"
	default:
		return "out_of_range"
	}
}

// AttractionLister is the slice of the catalog the engine needs.
type AttractionLister interface {
	All() []types.Attraction
}

// Config carries the alerting knobs. TrackingInterval is informational; the
// actual cadence is driven by tracker pushes.
type Config struct {
	ThresholdMeters  float64
	Cooldown         time.Duration
	TrackingInterval time.Duration
	AccuracyAdvisory float64
}

// DefaultConfig mirrors the product defaults: 1km radius, 5 minute cooldown.
func DefaultConfig() Config {
	return Config{
		ThresholdMeters:  1000,
		Cooldown:         5 * time.Minute,
		TrackingInterval: 10 * time.Second,
		AccuracyAdvisory: 200,
	}
}

type attractionState struct {
	state   State
	firedAt time.Time // zero until the first alert
}

// Engine decides which attractions are newly in range on every position
// update and suppresses repeats during the cooldown window. A new alert for
// an attraction requires both that it has been observed out of range since
// the last alert and that the cooldown has elapsed.
type Engine struct {
	logger  *slog.Logger
	catalog AttractionLister
	cfg     Config
	metrics *metrics.AppMetrics
	now     func() time.Time

	mu     sync.Mutex
	states map[string]*attractionState
	alerts []types.ProximityAlert // chronological; exposed newest-first
}

// NewEngine creates the alerting engine. appMetrics may be nil.
func NewEngine(catalog AttractionLister, cfg Config, appMetrics *metrics.AppMetrics, logger *slog.Logger) *Engine {
	return &Engine{
		logger:  logger,
		catalog: catalog,
		cfg:     cfg,
		metrics: appMetrics,
		now:     time.Now,
		states:  make(map[string]*attractionState),
	}
}

// WithClock overrides the engine clock. Tests use it to step through the
// cooldown window deterministically.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// OnPosition evaluates every attraction against the new fix and returns the
// alerts fired by this update. Fixes are expected in FIFO order; the tracker
// upstream discards stale ones.
func (e *Engine) OnPosition(pos types.Position) []types.ProximityAlert {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	advisory := e.cfg.AccuracyAdvisory > 0 && pos.Accuracy > e.cfg.AccuracyAdvisory

	var fired []types.ProximityAlert
	for _, attraction := range e.catalog.All() {
		distance := geo.DistanceMeters(geo.PositionPoint(pos), geo.AttractionPoint(attraction))
		st := e.states[attraction.ID]
		if st == nil {
			st = &attractionState{state: StateOutOfRange}
			e.states[attraction.ID] = st
		}

		if distance > e.cfg.ThresholdMeters {
			// Leaving range always resets to OutOfRange; alert
			// eligibility still waits on the cooldown separately.
			st.state = StateOutOfRange
			continue
		}

		switch st.state {
		case StateOutOfRange:
			if st.firedAt.IsZero() || now.Sub(st.firedAt) >= e.cfg.Cooldown {
				st.state = StateInRangeAlerted
				st.firedAt = now
				alert := e.fireLocked(attraction, distance, now, advisory)
				fired = append(fired, alert)
			} else {
				// Re-entered during cooldown: suppressed
				st.state = StateInRangeCoolingDown
			}
		case StateInRangeAlerted, StateInRangeCoolingDown:
			// Staying in range never re-alerts, even once the
			// cooldown elapses; the attraction must leave first.
		}
	}

	if len(fired) > 0 && e.metrics != nil {
		e.metrics.ProximityAlertsTotal.Add(context.Background(), int64(len(fired)))
	}
	return fired
}

// fireLocked creates the alert record and enforces the at-most-one
// non-dismissed alert per attraction invariant.
func (e *Engine) fireLocked(attraction types.Attraction, distance float64, now time.Time, advisory bool) types.ProximityAlert {
	for i := range e.alerts {
		if e.alerts[i].Attraction.ID == attraction.ID && !e.alerts[i].Dismissed {
			e.alerts[i].Dismissed = true
		}
	}

	alert := types.ProximityAlert{
		ID: fmt.Sprintf("%s_%d", attraction.ID, now.UnixMilli()),
		Attraction: types.AttractionWithDistance{
			Attraction: attraction,
			Distance:   distance,
		},
		Distance:  distance,
		Timestamp: now,
		Dismissed: false,
		Advisory:  advisory,
	}
	e.alerts = append(e.alerts, alert)

	e.logger.Info("Proximity alert fired",
		slog.String("attraction", attraction.Name),
		slog.Float64("distance_m", distance),
		slog.Bool("advisory", advisory))

	_, span := otel.Tracer("ProximityEngine").Start(context.Background(), "FireAlert")
	span.SetAttributes(
		attribute.String("attraction.id", attraction.ID),
		attribute.Float64("alert.distance_m", distance),
	)
	span.End()

	return alert
}

// Alerts returns every alert, most recent first.
func (e *Engine) Alerts() []types.ProximityAlert {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]types.ProximityAlert, 0, len(e.alerts))
	for i := len(e.alerts) - 1; i >= 0; i-- {
		out = append(out, e.alerts[i])
	}
	return out
}

// ActiveAlerts returns the non-dismissed alerts, most recent first.
func (e *Engine) ActiveAlerts() []types.ProximityAlert {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []types.ProximityAlert
	for i := len(e.alerts) - 1; i >= 0; i-- {
		if !e.alerts[i].Dismissed {
			out = append(out, e.alerts[i])
		}
	}
	return out
}

// DismissAlert marks the matching alert dismissed. Idempotent; it does not
// touch the underlying per-attraction state machine. Returns whether an
// alert with that id exists.
func (e *Engine) DismissAlert(alertID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.alerts {
		if e.alerts[i].ID == alertID {
			e.alerts[i].Dismissed = true
			return true
		}
	}
	return false
}

// ClearAlerts drops the alert records. Per-attraction cooldown state is kept
// so clearing the display never causes a premature re-alert.
func (e *Engine) ClearAlerts() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.alerts = nil
}

// AttractionState reports the state machine position for an attraction id.
func (e *Engine) AttractionState(attractionID string) State {
	e.mu.Lock()
	defer e.mu.Unlock()
	if st, ok := e.states[attractionID]; ok {
		return st.state
	}
	return StateOutOfRange
}
