package location

import (
	"context"
	"sync"

	"tourguide/internal/types"
)

// PositionSource abstracts the positioning backend (browser geolocation in
// the original client, a push feed on the server). Watch registers callbacks
// for fixes and errors and returns an unsubscribe func; Current resolves a
// single fix on demand for the fallback poll.
type PositionSource interface {
	Watch(ctx context.Context, onFix func(types.Position), onErr func(*types.LocationError)) (func(), error)
	Current(ctx context.Context) (types.Position, error)
}

type watcher struct {
	onFix func(types.Position)
	onErr func(*types.LocationError)
}

// PushSource is a PositionSource fed externally, typically by the HTTP layer
// relaying fixes from the client device.
type PushSource struct {
	mu       sync.Mutex
	watchers map[int]watcher
	nextID   int
	last     *types.Position
}

var _ PositionSource = (*PushSource)(nil)

func NewPushSource() *PushSource {
	return &PushSource{watchers: make(map[int]watcher)}
}

func (s *PushSource) Watch(_ context.Context, onFix func(types.Position), onErr func(*types.LocationError)) (func(), error) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.watchers[id] = watcher{onFix: onFix, onErr: onErr}
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.watchers, id)
		s.mu.Unlock()
	}, nil
}

func (s *PushSource) Current(_ context.Context) (types.Position, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return types.Position{}, &types.LocationError{
			Kind:    types.LocationPositionUnavailable,
			Message: "no position fix received yet",
		}
	}
	return *s.last, nil
}

// Push delivers a fix to every active watch. Callbacks run outside the
// source lock so a watcher may unsubscribe from within its callback.
func (s *PushSource) Push(pos types.Position) {
	s.mu.Lock()
	s.last = &pos
	callbacks := make([]func(types.Position), 0, len(s.watchers))
	for _, w := range s.watchers {
		callbacks = append(callbacks, w.onFix)
	}
	s.mu.Unlock()

	for _, cb := range callbacks {
		cb(pos)
	}
}

// PushError fans a positioning failure out to every active watch.
func (s *PushSource) PushError(locErr *types.LocationError) {
	s.mu.Lock()
	callbacks := make([]func(*types.LocationError), 0, len(s.watchers))
	for _, w := range s.watchers {
		callbacks = append(callbacks, w.onErr)
	}
	s.mu.Unlock()

	for _, cb := range callbacks {
		cb(locErr)
	}
}
