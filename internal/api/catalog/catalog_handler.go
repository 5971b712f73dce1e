package catalog

import (
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"tourguide/internal/api"
	"tourguide/internal/api/geo"
	"tourguide/internal/types"
)

type HandlerImpl struct {
	catalogService Service
	bounds         types.Bounds
	logger         *slog.Logger
}

func NewHandlerImpl(catalogService Service, bounds types.Bounds, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		catalogService: catalogService,
		bounds:         bounds,
		logger:         logger,
	}
}

// SearchAttractions returns the working set filtered by radius and category,
// decorated with distance from the query point.
func (h *HandlerImpl) SearchAttractions(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("CatalogHandler").Start(r.Context(), "SearchAttractions", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/attractions/search"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "SearchAttractions"))

	lat, okLat := api.ParseFloatQuery(r, "latitude", 0)
	lng, okLng := api.ParseFloatQuery(r, "longitude", 0)
	if !okLat || !okLng {
		api.ErrorResponse(w, r, http.StatusBadRequest, "latitude and longitude must be numbers")
		return
	}
	if !geo.IsWithinBounds(lat, lng, h.bounds) {
		l.WarnContext(ctx, "Rejected out-of-bounds search coordinates",
			slog.Float64("latitude", lat), slog.Float64("longitude", lng))
		api.ErrorResponse(w, r, http.StatusBadRequest, types.NewOutOfBoundsError(lat, lng, h.bounds).Error())
		return
	}

	radius, okRadius := api.ParseFloatQuery(r, "radius", 1000)
	limit, okLimit := api.ParseIntQuery(r, "limit", 20)
	if !okRadius || !okLimit {
		api.ErrorResponse(w, r, http.StatusBadRequest, "radius and limit must be numbers")
		return
	}

	center := types.Position{Latitude: lat, Longitude: lng}
	results := h.catalogService.WithinRadius(center, radius)

	if category := r.URL.Query().Get("category"); category != "" {
		filteredByCategory := results[:0:0]
		matches := h.catalogService.ByCategory(category)
		matchSet := make(map[string]struct{}, len(matches))
		for _, m := range matches {
			matchSet[m.ID] = struct{}{}
		}
		for _, res := range results {
			if _, ok := matchSet[res.ID]; ok {
				filteredByCategory = append(filteredByCategory, res)
			}
		}
		results = filteredByCategory
	}

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	api.WriteJSONResponse(w, r, http.StatusOK, map[string]any{
		"total":       len(results),
		"attractions": results,
	})
}

// Categories returns the fixed category set for filtering UIs.
func (h *HandlerImpl) Categories(w http.ResponseWriter, r *http.Request) {
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]any{
		"categories": h.catalogService.Categories(),
	})
}
