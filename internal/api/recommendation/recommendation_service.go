package recommendation

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"tourguide/internal/api/catalog"
	"tourguide/internal/api/geo"
	"tourguide/internal/types"
)

// Singapore city center, used when the context carries no location.
var defaultCenter = types.Position{Latitude: 1.3521, Longitude: 103.8198}

// DefaultCenter returns the fallback search center.
func DefaultCenter() types.Position {
	return defaultCenter
}

const defaultLimit = 5

// Service produces ranked, explained recommendations from the catalog.
type Service interface {
	Recommend(ctx context.Context, tc types.TourismContext, limit int) ([]types.Recommendation, error)
	NearbyContext(ctx context.Context, lat, lng, radius float64) string
	CategoryInsights(ctx context.Context, category string, userLocation *types.Position) string
	AttractionDetails(ctx context.Context, name string) (string, bool)
}

var _ Service = (*ServiceImpl)(nil)

type ServiceImpl struct {
	logger  *slog.Logger
	catalog catalog.Service
}

func NewServiceImpl(catalogService catalog.Service, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{logger: logger, catalog: catalogService}
}

// Recommend scores the candidate set against the context and returns the top
// results by relevance. Ties keep candidate order, so equal-scoring
// attractions rank by catalog ingestion order.
func (s *ServiceImpl) Recommend(ctx context.Context, tc types.TourismContext, limit int) ([]types.Recommendation, error) {
	_, span := otel.Tracer("RecommendationService").Start(ctx, "Recommend")
	defer span.End()

	if limit <= 0 {
		limit = defaultLimit
	}

	center := defaultCenter
	if tc.UserLocation != nil {
		center = *tc.UserLocation
	}

	candidates := s.candidates(tc, center)

	recs := make([]types.Recommendation, 0, len(candidates))
	for _, a := range candidates {
		score := ScoreAttraction(a, tc)
		recs = append(recs, types.Recommendation{
			Attraction:     a,
			RelevanceScore: score.Relevance,
			Reason:         score.Reason(),
			Tips:           score.Tips,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].RelevanceScore > recs[j].RelevanceScore
	})
	if len(recs) > limit {
		recs = recs[:limit]
	}

	span.SetAttributes(attribute.Int("recommendations.count", len(recs)))
	span.SetStatus(codes.Ok, "recommendations ranked")
	s.logger.DebugContext(ctx, "Ranked recommendations",
		slog.Int("candidates", len(candidates)), slog.Int("returned", len(recs)))
	return recs, nil
}

// candidates gathers attractions per declared interest (3km each), or a
// general 2km sweep when no interests are declared, deduplicated by name.
func (s *ServiceImpl) candidates(tc types.TourismContext, center types.Position) []types.AttractionWithDistance {
	var pool []types.AttractionWithDistance

	if len(tc.Interests) > 0 {
		for _, interest := range tc.Interests {
			for _, a := range s.catalog.ByCategory(interest) {
				d := geo.DistanceMeters(geo.PositionPoint(center), geo.AttractionPoint(a))
				if d <= 3000 {
					pool = append(pool, types.AttractionWithDistance{Attraction: a, Distance: d})
				}
			}
		}
	} else {
		pool = s.catalog.WithinRadius(center, 2000)
		if len(pool) > 20 {
			pool = pool[:20]
		}
	}

	seen := make(map[string]struct{}, len(pool))
	out := pool[:0]
	for _, a := range pool {
		if _, dup := seen[a.Name]; dup {
			continue
		}
		seen[a.Name] = struct{}{}
		out = append(out, a)
	}
	return out
}

// NearbyContext renders the closest attractions as a numbered list for
// grounding model replies. Never fails; an empty area gets a plain sentence.
func (s *ServiceImpl) NearbyContext(ctx context.Context, lat, lng, radius float64) string {
	_, span := otel.Tracer("RecommendationService").Start(ctx, "NearbyContext")
	defer span.End()

	nearby := s.catalog.WithinRadius(types.Position{Latitude: lat, Longitude: lng}, radius)
	if len(nearby) == 0 {
		return "No major tourist attractions found within " + geo.FormatDistance(radius) + " of the specified location."
	}
	if len(nearby) > 5 {
		nearby = nearby[:5]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Nearby attractions within %s:", geo.FormatDistance(radius))
	for i, a := range nearby {
		fmt.Fprintf(&b, "\n%d. %s (%s) - %s away", i+1, a.Name, a.Category, geo.FormatDistance(a.Distance))
	}
	return b.String()
}

// CategoryInsights summarises the top attractions of one category (5km
// sweep) with category-specific advice.
func (s *ServiceImpl) CategoryInsights(ctx context.Context, category string, userLocation *types.Position) string {
	_, span := otel.Tracer("RecommendationService").Start(ctx, "CategoryInsights")
	defer span.End()

	center := defaultCenter
	if userLocation != nil {
		center = *userLocation
	}

	var matched []types.AttractionWithDistance
	for _, a := range s.catalog.ByCategory(category) {
		d := geo.DistanceMeters(geo.PositionPoint(center), geo.AttractionPoint(a))
		if d <= 5000 {
			matched = append(matched, types.AttractionWithDistance{Attraction: a, Distance: d})
		}
	}
	if len(matched) == 0 {
		return fmt.Sprintf("No %s attractions found in the area.", strings.ToLower(category))
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].Distance < matched[j].Distance })
	if len(matched) > 3 {
		matched = matched[:3]
	}
	return categoryInsights(category, matched)
}

// AttractionDetails looks an attraction up by fuzzy name match and renders a
// one-paragraph description. The second return is false when nothing matched.
func (s *ServiceImpl) AttractionDetails(ctx context.Context, name string) (string, bool) {
	_, span := otel.Tracer("RecommendationService").Start(ctx, "AttractionDetails")
	defer span.End()

	needle := strings.ToLower(name)
	for _, a := range s.catalog.All() {
		haystack := strings.ToLower(a.Name)
		if strings.Contains(haystack, needle) || strings.Contains(needle, haystack) {
			return attractionDetails(a), true
		}
	}
	return "", false
}
