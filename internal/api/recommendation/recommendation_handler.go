package recommendation

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"tourguide/internal/api"
	"tourguide/internal/api/geo"
	"tourguide/internal/types"
)

type HandlerImpl struct {
	service Service
	bounds  types.Bounds
	logger  *slog.Logger
}

func NewHandlerImpl(service Service, bounds types.Bounds, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{service: service, bounds: bounds, logger: logger}
}

type recommendRequest struct {
	Latitude    *float64           `json:"latitude,omitempty"`
	Longitude   *float64           `json:"longitude,omitempty"`
	Interests   []string           `json:"interests,omitempty"`
	Budget      types.BudgetLevel  `json:"budget,omitempty"`
	TravelStyle types.TravelStyle  `json:"travel_style,omitempty"`
	Duration    types.TripDuration `json:"duration,omitempty"`
	Limit       int                `json:"limit,omitempty"`
}

// Recommend handles POST /recommendations.
func (h *HandlerImpl) Recommend(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("RecommendationHandler").Start(r.Context(), "Recommend")
	defer span.End()

	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid request body")
		span.SetStatus(codes.Error, "invalid body")
		return
	}

	tc := types.TourismContext{
		Interests:   req.Interests,
		Budget:      req.Budget,
		TravelStyle: req.TravelStyle,
		Duration:    req.Duration,
	}
	if req.Latitude != nil && req.Longitude != nil {
		if !geo.IsWithinBounds(*req.Latitude, *req.Longitude, h.bounds) {
			err := types.NewOutOfBoundsError(*req.Latitude, *req.Longitude, h.bounds)
			span.RecordError(err)
			span.SetStatus(codes.Error, "coordinates out of bounds")
			api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}
		tc.UserLocation = &types.Position{Latitude: *req.Latitude, Longitude: *req.Longitude}
	}

	recs, err := h.service.Recommend(ctx, tc, req.Limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to rank recommendations", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "ranking failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to generate recommendations")
		return
	}

	span.SetAttributes(attribute.Int("recommendations.count", len(recs)))
	span.SetStatus(codes.Ok, "recommendations generated")
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]interface{}{
		"total":           len(recs),
		"recommendations": recs,
	})
}
