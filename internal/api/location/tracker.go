package location

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"tourguide/app/observability/metrics"
	"tourguide/internal/types"
)

// Tracker owns the user's current position. It combines a push subscription
// on the source with a periodic fallback poll, tolerating a watch that
// silently stalls. Subscribers receive pushes in subscription order; they
// never poll the tracker.
type Tracker struct {
	logger       *slog.Logger
	source       PositionSource
	pollInterval time.Duration
	metrics      *metrics.AppMetrics

	mu             sync.Mutex
	lastPosition   *types.Position
	tracking       bool
	permission     types.PermissionState
	subscribers    map[int]func(types.Position)
	errSubscribers map[int]func(*types.LocationError)
	nextID         int
	stopWatch      func()
	pollCancel     context.CancelFunc
}

// NewTracker creates a tracker over the given source. appMetrics may be nil.
func NewTracker(source PositionSource, pollInterval time.Duration, appMetrics *metrics.AppMetrics, logger *slog.Logger) *Tracker {
	return &Tracker{
		logger:         logger,
		source:         source,
		pollInterval:   pollInterval,
		metrics:        appMetrics,
		permission:     types.PermissionUnknown,
		subscribers:    make(map[int]func(types.Position)),
		errSubscribers: make(map[int]func(*types.LocationError)),
	}
}

// Start begins continuous position updates. Returns whether tracking actually
// started; a permission denial is reported as a *types.LocationError.
func (t *Tracker) Start(ctx context.Context) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.tracking {
		return true, nil
	}

	stop, err := t.source.Watch(ctx, t.handleFix, t.handleError)
	if err != nil {
		if locErr, ok := err.(*types.LocationError); ok && locErr.Kind == types.LocationPermissionDenied {
			t.permission = types.PermissionDenied
			t.tracking = false
			t.logger.Warn("Location permission denied", slog.String("message", locErr.Message))
			return false, locErr
		}
		return false, err
	}

	pollCtx, cancel := context.WithCancel(context.Background())
	t.stopWatch = stop
	t.pollCancel = cancel
	t.tracking = true
	t.permission = types.PermissionGranted

	// Periodic poll as backup for a stalled watch
	go t.pollLoop(pollCtx)

	t.logger.Info("Location tracking started", slog.Duration("poll_interval", t.pollInterval))
	return true, nil
}

// Stop cancels both the push subscription and the periodic poll. Idempotent;
// no position notification fires after it returns.
func (t *Tracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
}

func (t *Tracker) stopLocked() {
	if !t.tracking {
		return
	}
	if t.stopWatch != nil {
		t.stopWatch()
		t.stopWatch = nil
	}
	if t.pollCancel != nil {
		t.pollCancel()
		t.pollCancel = nil
	}
	t.tracking = false
	t.logger.Info("Location tracking stopped")
}

func (t *Tracker) pollLoop(ctx context.Context) {
	ticker := time.NewTicker(t.pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pos, err := t.source.Current(ctx)
			if err != nil {
				if locErr, ok := err.(*types.LocationError); ok {
					t.handleError(locErr)
				}
				continue
			}
			t.handleFix(pos)
		}
	}
}

// handleFix accepts a new fix, discarding out-of-order ones, and notifies
// subscribers FIFO. The tracker lock is held through notification so that
// Stop returning guarantees no further delivery; subscriber callbacks must
// not call back into the tracker.
func (t *Tracker) handleFix(pos types.Position) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.tracking {
		return
	}
	if t.lastPosition != nil && !pos.Timestamp.After(t.lastPosition.Timestamp) {
		// A stale poll result resolving after a newer push
		if t.metrics != nil {
			t.metrics.StaleFixesDroppedTotal.Add(context.Background(), 1)
		}
		return
	}

	t.lastPosition = &pos
	if t.metrics != nil {
		t.metrics.PositionFixesTotal.Add(context.Background(), 1)
	}

	ids := make([]int, 0, len(t.subscribers))
	for id := range t.subscribers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		t.subscribers[id](pos)
	}
}

// handleError logs and fans the failure out. Only PermissionDenied halts
// tracking; transient kinds keep the loop alive.
func (t *Tracker) handleError(locErr *types.LocationError) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.tracking {
		return
	}

	t.logger.Warn("Positioning source error",
		slog.String("kind", string(locErr.Kind)), slog.String("message", locErr.Message))

	if locErr.Terminal() {
		t.permission = types.PermissionDenied
		t.stopLocked()
	}

	ids := make([]int, 0, len(t.errSubscribers))
	for id := range t.errSubscribers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		t.errSubscribers[id](locErr)
	}
}

// Subscribe registers a position consumer and returns its unsubscribe func.
func (t *Tracker) Subscribe(fn func(types.Position)) func() {
	t.mu.Lock()
	id := t.nextID
	t.nextID++
	t.subscribers[id] = fn
	t.mu.Unlock()

	return func() {
		t.mu.Lock()
		delete(t.subscribers, id)
		t.mu.Unlock()
	}
}

// SubscribeErrors registers a failure consumer and returns its unsubscribe func.
func (t *Tracker) SubscribeErrors(fn func(*types.LocationError)) func() {
	t.mu.Lock()
	id := t.nextID
	t.nextID++
	t.errSubscribers[id] = fn
	t.mu.Unlock()

	return func() {
		t.mu.Lock()
		delete(t.errSubscribers, id)
		t.mu.Unlock()
	}
}

// LastPosition returns a copy of the newest accepted fix, or nil before the
// first one.
func (t *Tracker) LastPosition() *types.Position {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.lastPosition == nil {
		return nil
	}
	pos := *t.lastPosition
	return &pos
}

// IsTracking reports whether updates are flowing.
func (t *Tracker) IsTracking() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tracking
}

// Permission returns the current permission state.
func (t *Tracker) Permission() types.PermissionState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.permission
}
