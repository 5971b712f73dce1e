package recommendation

import (
	"fmt"
	"strings"

	"tourguide/internal/types"
)

// Scoring weights. Additive; a higher total means a better contextual fit.
const (
	ratingWeight      = 10 // rating * 10
	unratedBase       = 35
	veryCloseBonus    = 20 // <= 500m
	walkableBonus     = 15 // <= 1000m
	accessibleBonus   = 10 // <= 2000m
	interestBonus     = 25
	budgetMatchLow    = 15
	budgetMatchOther  = 10
	budgetNeutral     = 5
	styleMatchFamily  = 15
	styleMatchOther   = 12
	defaultReason     = "A popular attraction in Singapore."
)

var (
	freeCategories     = []string{"beach", "cultural", "historical", "religious"}
	midRangeCategories = []string{"art & museums", "nature & wildlife", "architecture"}
	premiumCategories  = []string{"family", "nightlife", "shopping", "adventure"}
)

// Score is the outcome of ranking a single attraction against a context.
type Score struct {
	Relevance float64
	Reasons   []string
	Tips      []string
}

// ScoreAttraction computes the additive relevance score. The same inputs
// always produce the same score; every rule either fires or it does not.
func ScoreAttraction(a types.AttractionWithDistance, ctx types.TourismContext) Score {
	var s Score

	if a.Rating > 0 {
		s.Relevance += a.Rating * ratingWeight
	} else {
		s.Relevance += unratedBase
	}

	if ctx.UserLocation != nil {
		switch {
		case a.Distance <= 500:
			s.Relevance += veryCloseBonus
			s.Reasons = append(s.Reasons, "very close to your location")
		case a.Distance <= 1000:
			s.Relevance += walkableBonus
			s.Reasons = append(s.Reasons, "within walking distance")
		case a.Distance <= 2000:
			s.Relevance += accessibleBonus
			s.Reasons = append(s.Reasons, "easily accessible")
		}
	}

	if ctx.HasInterest(a.Category) {
		s.Relevance += interestBonus
		s.Reasons = append(s.Reasons, fmt.Sprintf("matches your interest in %s", strings.ToLower(a.Category)))
	}

	s.applyBudget(a, ctx.Budget)
	s.applyTravelStyle(a, ctx.TravelStyle)
	s.applyDuration(a, ctx.Duration)

	return s
}

func (s *Score) applyBudget(a types.AttractionWithDistance, budget types.BudgetLevel) {
	category := strings.ToLower(a.Category)
	switch budget {
	case types.BudgetLow:
		if categoryMatches(category, freeCategories) {
			s.Relevance += budgetMatchLow
			s.Reasons = append(s.Reasons, "fits your budget with free or low-cost entry")
		} else {
			s.Tips = append(s.Tips, "Check for free entry times or student discounts")
		}
	case types.BudgetMedium:
		if categoryMatches(category, midRangeCategories) {
			s.Relevance += budgetMatchOther
			s.Reasons = append(s.Reasons, "offers good value for money")
		} else {
			s.Relevance += budgetNeutral
		}
	case types.BudgetHigh:
		if categoryMatches(category, premiumCategories) {
			s.Relevance += budgetMatchOther
			s.Reasons = append(s.Reasons, "provides premium experiences")
		} else {
			s.Relevance += budgetNeutral
		}
	}
}

func (s *Score) applyTravelStyle(a types.AttractionWithDistance, style types.TravelStyle) {
	category := strings.ToLower(a.Category)
	switch style {
	case types.TravelStyleFamily:
		if containsAny(category, "family", "nature", "beach") {
			s.Relevance += styleMatchFamily
			s.Reasons = append(s.Reasons, "perfect for family visits")
			s.Tips = append(s.Tips, "Check for family packages and child-friendly facilities")
		}
	case types.TravelStyleSolo:
		if containsAny(category, "art", "cultural", "historical") {
			s.Relevance += styleMatchOther
			s.Reasons = append(s.Reasons, "ideal for solo exploration and learning")
		}
	case types.TravelStyleCouple:
		if containsAny(category, "beach", "nightlife", "architecture") {
			s.Relevance += styleMatchOther
			s.Reasons = append(s.Reasons, "romantic and perfect for couples")
			s.Tips = append(s.Tips, "Consider visiting during sunset for better ambiance")
		}
	case types.TravelStyleGroup:
		if containsAny(category, "adventure", "nightlife", "family") {
			s.Relevance += styleMatchOther
			s.Reasons = append(s.Reasons, "great for group activities")
			s.Tips = append(s.Tips, "Look for group discounts and book in advance")
		}
	}
}

// Duration never changes the score, only the practical tips.
func (s *Score) applyDuration(a types.AttractionWithDistance, duration types.TripDuration) {
	category := strings.ToLower(a.Category)
	switch duration {
	case types.DurationHalfDay:
		if containsAny(category, "museums", "cultural") {
			s.Tips = append(s.Tips, "Allow 2-3 hours for a thorough visit")
		} else {
			s.Tips = append(s.Tips, "Perfect for a quick 1-2 hour visit")
		}
	case types.DurationFullDay:
		if containsAny(category, "family", "adventure", "nature") {
			s.Tips = append(s.Tips, "Plan to spend the whole day here with breaks for meals")
		} else {
			s.Tips = append(s.Tips, "Can be combined with nearby attractions for a full day itinerary")
		}
	case types.DurationMultiDay:
		s.Tips = append(s.Tips, "Consider this as part of a multi-day Singapore exploration")
	}
}

// Reason renders the matched clauses into a single sentence.
func (s Score) Reason() string {
	if len(s.Reasons) == 0 {
		return defaultReason
	}
	return "Recommended because it " + strings.Join(s.Reasons, ", ") + "."
}

func categoryMatches(category string, candidates []string) bool {
	for _, c := range candidates {
		if strings.Contains(category, c) {
			return true
		}
	}
	return false
}

func containsAny(category string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(category, n) {
			return true
		}
	}
	return false
}
