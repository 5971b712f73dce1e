package types

// Bounds is the rectangular lat/lng region that defines the valid operating
// area for attraction data. Checks are inclusive on every edge.
type Bounds struct {
	North float64 `json:"north" mapstructure:"north"`
	South float64 `json:"south" mapstructure:"south"`
	East  float64 `json:"east" mapstructure:"east"`
	West  float64 `json:"west" mapstructure:"west"`
}

// SingaporeBounds covers the whole island plus Sentosa and the zoo area.
var SingaporeBounds = Bounds{North: 1.5, South: 1.2, East: 104.0, West: 103.6}

// SingaporeCategories is the fixed tourism category set used by the catalog.
// Category matching elsewhere is case-insensitive, so the set is extensible
// without touching matching code.
var SingaporeCategories = []string{
	"Art & Museums",
	"Nature & Wildlife",
	"Architecture",
	"Cultural",
	"Family",
	"Beach",
	"Nightlife",
	"Food & Culinary",
	"Shopping",
	"Historical",
	"Religious",
	"Adventure",
	"Wellness",
	"Festival & Events",
}

// Attraction is the canonical POI record held by the catalog. Records are
// never mutated after ingestion; derived fields like distance live on
// AttractionWithDistance copies.
type Attraction struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	Address      string  `json:"address"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	ImageURL     string  `json:"image_url,omitempty"`
	Rating       float64 `json:"rating,omitempty"` // 0 means not rated
	OpeningHours string  `json:"opening_hours,omitempty"`
	Website      string  `json:"website,omitempty"`
	ContactInfo  string  `json:"contact_info,omitempty"`
}

// AttractionWithDistance decorates a catalog record with the transient
// distance (meters) from a query point. The embedded Attraction is a copy.
type AttractionWithDistance struct {
	Attraction
	Distance float64 `json:"distance"`
}

// AttractionSearchParams mirrors the attraction data source query surface.
type AttractionSearchParams struct {
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Category     string  `json:"category,omitempty"`
	RadiusMeters float64 `json:"radius_meters,omitempty"`
	Limit        int     `json:"limit,omitempty"`
}
