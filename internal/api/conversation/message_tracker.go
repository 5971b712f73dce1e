package conversation

import (
	"time"

	"github.com/patrickmn/go-cache"
)

const trackerTTL = 30 * time.Second

// MessageTracker remembers recently emitted message ids so the avatar
// channel never speaks the same reply twice. Entries expire after 30
// seconds; ids are uuids, so the window only needs to cover retry storms.
type MessageTracker struct {
	seen *cache.Cache
}

func NewMessageTracker() *MessageTracker {
	return &MessageTracker{
		seen: cache.New(trackerTTL, time.Minute),
	}
}

// Track records the id. Returns false when the id was already tracked, in
// which case the caller must not emit the message again.
func (t *MessageTracker) Track(messageID string) bool {
	return t.seen.Add(messageID, struct{}{}, cache.DefaultExpiration) == nil
}

// Seen reports whether the id is currently tracked.
func (t *MessageTracker) Seen(messageID string) bool {
	_, found := t.seen.Get(messageID)
	return found
}

// Reset drops all tracked ids, for session resets.
func (t *MessageTracker) Reset() {
	t.seen.Flush()
}
