package types

import "time"

// ProximityAlert is created when an attraction newly enters the proximity
// radius. The only in-place mutation permitted is flipping Dismissed to true.
type ProximityAlert struct {
	ID         string                 `json:"id"`
	Attraction AttractionWithDistance `json:"attraction"`
	Distance   float64                `json:"distance"` // meters at fire time
	Timestamp  time.Time              `json:"timestamp"`
	Dismissed  bool                   `json:"dismissed"`
	// Advisory is set when the triggering fix had accuracy worse than the
	// configured sanity threshold. Consumers may filter on it.
	Advisory bool `json:"advisory,omitempty"`
}
