package types

import "strings"

// BudgetLevel is the user's declared spending preference.
type BudgetLevel string

const (
	BudgetLow    BudgetLevel = "low"
	BudgetMedium BudgetLevel = "medium"
	BudgetHigh   BudgetLevel = "high"
)

// TravelStyle describes who is travelling.
type TravelStyle string

const (
	TravelStyleSolo   TravelStyle = "solo"
	TravelStyleCouple TravelStyle = "couple"
	TravelStyleFamily TravelStyle = "family"
	TravelStyleGroup  TravelStyle = "group"
)

// TripDuration describes how long the visit is planned for.
type TripDuration string

const (
	DurationHalfDay  TripDuration = "half-day"
	DurationFullDay  TripDuration = "full-day"
	DurationMultiDay TripDuration = "multi-day"
)

// TourismContext is the read-only preference input for ranking. Zero values
// mean "not declared" and simply skip the corresponding scoring term.
type TourismContext struct {
	UserLocation *Position    `json:"user_location,omitempty"`
	Interests    []string     `json:"interests,omitempty"`
	Budget       BudgetLevel  `json:"budget,omitempty"`
	TravelStyle  TravelStyle  `json:"travel_style,omitempty"`
	Duration     TripDuration `json:"duration,omitempty"`
}

// HasInterest reports whether the category is in the declared interest set.
// Matching is exact on the category label, case-insensitive.
func (c TourismContext) HasInterest(category string) bool {
	for _, interest := range c.Interests {
		if strings.EqualFold(interest, category) {
			return true
		}
	}
	return false
}

// Recommendation is a scored attraction with human-readable justification.
// Always regenerated per request, never persisted.
type Recommendation struct {
	Attraction     AttractionWithDistance `json:"attraction"`
	RelevanceScore float64                `json:"relevance_score"`
	Reason         string                 `json:"reason"`
	Tips           []string               `json:"tips,omitempty"`
}
