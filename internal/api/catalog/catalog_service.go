package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"tourguide/app/observability/metrics"
	"tourguide/internal/api/geo"
	"tourguide/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service holds the working set of attractions for the operating region and
// answers the filtered reads every other component depends on.
type Service interface {
	// Refresh replaces the working set from the live data source, falling
	// back to the built-in dataset when the source is unreachable. It never
	// surfaces a source outage as an error.
	Refresh(ctx context.Context, center types.Position) error
	// Ingest validates and deduplicates raw records and atomically swaps
	// them in as the new working set, returning the accepted records.
	Ingest(raw []types.Attraction) []types.Attraction
	All() []types.Attraction
	ByCategory(category string) []types.Attraction
	WithinRadius(center types.Position, radiusMeters float64) []types.AttractionWithDistance
	Categories() []string
}

type ServiceImpl struct {
	logger  *slog.Logger
	repo    Repository
	bounds  types.Bounds
	metrics *metrics.AppMetrics

	mu          sync.RWMutex
	attractions []types.Attraction // replaced wholesale, never mutated in place
}

// NewServiceImpl creates the catalog service. appMetrics may be nil in tests.
func NewServiceImpl(repo Repository, bounds types.Bounds, appMetrics *metrics.AppMetrics, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:  logger,
		repo:    repo,
		bounds:  bounds,
		metrics: appMetrics,
	}
}

// DeriveAttractionID builds the stable identity used for dedup and alert
// keys: name plus the coordinate pair rounded to four decimals (~11m).
func DeriveAttractionID(name string, lat, lng float64) string {
	return fmt.Sprintf("%s_%.4f_%.4f", name, lat, lng)
}

func (s *ServiceImpl) Refresh(ctx context.Context, center types.Position) error {
	ctx, span := otel.Tracer("CatalogService").Start(ctx, "Refresh", trace.WithAttributes(
		attribute.Float64("center.latitude", center.Latitude),
		attribute.Float64("center.longitude", center.Longitude),
	))
	defer span.End()

	raw, err := s.repo.Search(ctx, types.AttractionSearchParams{
		Latitude:     center.Latitude,
		Longitude:    center.Longitude,
		RadiusMeters: 10000,
		Limit:        50,
	})
	if err != nil {
		// Degraded mode: substitute the built-in dataset rather than
		// surfacing the outage to ranking or alerting.
		s.logger.WarnContext(ctx, "Attraction data source unavailable, using fallback dataset",
			slog.Any("error", err))
		span.AddEvent("fallback dataset substituted")
		if s.metrics != nil {
			s.metrics.CatalogFallbacksTotal.Add(ctx, 1)
		}
		raw = fallbackAttractions()
	}

	accepted := s.Ingest(raw)
	span.SetAttributes(attribute.Int("catalog.size", len(accepted)))
	span.SetStatus(codes.Ok, "Catalog refreshed")
	return nil
}

func (s *ServiceImpl) Ingest(raw []types.Attraction) []types.Attraction {
	accepted := make([]types.Attraction, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	dropped := 0

	for _, record := range raw {
		if !geo.IsWithinBounds(record.Latitude, record.Longitude, s.bounds) {
			dropped++
			continue
		}
		id := DeriveAttractionID(record.Name, record.Latitude, record.Longitude)
		if _, dup := seen[id]; dup {
			// Keep the first occurrence
			continue
		}
		seen[id] = struct{}{}
		record.ID = id
		accepted = append(accepted, record)
	}

	if dropped > 0 {
		s.logger.Warn("Dropped out-of-bounds attraction records at ingestion",
			slog.Int("dropped", dropped), slog.Int("accepted", len(accepted)))
		if s.metrics != nil {
			s.metrics.CatalogRecordsDropped.Add(context.Background(), int64(dropped))
		}
	}

	s.mu.Lock()
	s.attractions = accepted
	s.mu.Unlock()

	return accepted
}

func (s *ServiceImpl) All() []types.Attraction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.Attraction, len(s.attractions))
	copy(out, s.attractions)
	return out
}

func (s *ServiceImpl) ByCategory(category string) []types.Attraction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(category)
	var out []types.Attraction
	for _, a := range s.attractions {
		if strings.Contains(strings.ToLower(a.Category), needle) {
			out = append(out, a)
		}
	}
	return out
}

func (s *ServiceImpl) WithinRadius(center types.Position, radiusMeters float64) []types.AttractionWithDistance {
	s.mu.RLock()
	working := s.attractions
	s.mu.RUnlock()

	out := make([]types.AttractionWithDistance, 0, len(working))
	for _, a := range working {
		d := geo.DistanceMeters(geo.PositionPoint(center), geo.AttractionPoint(a))
		if radiusMeters > 0 && d > radiusMeters {
			continue
		}
		out = append(out, types.AttractionWithDistance{Attraction: a, Distance: d})
	}
	// Ascending by distance; SliceStable keeps ingestion order on ties.
	sort.SliceStable(out, func(i, j int) bool { return out[i].Distance < out[j].Distance })
	return out
}

func (s *ServiceImpl) Categories() []string {
	return append([]string(nil), types.SingaporeCategories...)
}
