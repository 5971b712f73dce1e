package recommendation

import (
	"fmt"
	"strings"

	"tourguide/internal/api/geo"
	"tourguide/internal/types"
)

// categoryInsights writes the category summary shown to the model, leading
// with the closest attraction and closing with category-specific advice.
func categoryInsights(category string, attractions []types.AttractionWithDistance) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Singapore has %d+ %s attractions. ", len(attractions), strings.ToLower(category))
	top := attractions[0]
	fmt.Fprintf(&b, "The most popular is %s - %s", top.Name, top.Description)

	switch category {
	case "Art & Museums":
		b.WriteString(" Many museums offer free entry on certain days. Consider getting a Singapore Museum Pass for multiple visits.")
	case "Nature & Wildlife":
		b.WriteString(" Best visited early morning or late afternoon. Bring comfortable walking shoes and water.")
	case "Family":
		b.WriteString(" Most family attractions offer packages and discounts for advance bookings. Check height restrictions for rides.")
	case "Nightlife":
		b.WriteString(" The nightlife scene typically starts after 8 PM. Dress codes may apply at upscale venues.")
	case "Cultural":
		b.WriteString(" These attractions offer deep insights into Singapore's multicultural heritage. Guided tours are often available.")
	default:
		b.WriteString(" Check opening hours and book tickets in advance during peak seasons.")
	}
	return b.String()
}

// attractionDetails renders the full record as one paragraph, skipping
// fields the feed did not provide.
func attractionDetails(a types.Attraction) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s is %s", a.Name, a.Description)
	if a.Address != "" {
		fmt.Fprintf(&b, " Located at %s", a.Address)
	}
	if a.OpeningHours != "" {
		fmt.Fprintf(&b, ". Open %s", a.OpeningHours)
	}
	if a.Rating > 0 {
		fmt.Fprintf(&b, ". Rated %.1f/5 stars", a.Rating)
	}
	if a.Category != "" {
		fmt.Fprintf(&b, ". Category: %s", a.Category)
	}
	return b.String()
}

// FormatAttraction renders one attraction the way the model prompt expects.
func FormatAttraction(a types.AttractionWithDistance) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s is a %s attraction in Singapore. ", a.Name, strings.ToLower(a.Category))
	b.WriteString(a.Description)
	if a.Distance > 0 {
		fmt.Fprintf(&b, " It's %s from your current location.", geo.FormatDistance(a.Distance))
	}
	if a.Rating > 0 {
		fmt.Fprintf(&b, " Visitors rate it %.1f out of 5 stars.", a.Rating)
	}
	if a.OpeningHours != "" {
		fmt.Fprintf(&b, " Opening hours: %s.", a.OpeningHours)
	}
	return b.String()
}
