package proximity

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"tourguide/internal/api"
	"tourguide/internal/api/geo"
	"tourguide/internal/api/location"
	"tourguide/internal/types"
)

// HandlerImpl exposes the alert list and the location ingestion endpoint.
type HandlerImpl struct {
	engine *Engine
	source *location.PushSource
	bounds types.Bounds
	logger *slog.Logger
}

func NewHandlerImpl(engine *Engine, source *location.PushSource, bounds types.Bounds, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		engine: engine,
		source: source,
		bounds: bounds,
		logger: logger,
	}
}

type locationUpdateRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Accuracy  float64 `json:"accuracy,omitempty"`
	Timestamp int64   `json:"timestamp,omitempty"` // Unix millis; defaults to now
}

// UpdateLocation handles POST /location. It validates the fix and feeds it
// into the push source; the tracker and engine react asynchronously.
func (h *HandlerImpl) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	_, span := otel.Tracer("ProximityHandler").Start(r.Context(), "UpdateLocation")
	defer span.End()

	var req locationUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid request body")
		span.SetStatus(codes.Error, "invalid body")
		return
	}

	if !geo.IsWithinBounds(req.Latitude, req.Longitude, h.bounds) {
		err := types.NewOutOfBoundsError(req.Latitude, req.Longitude, h.bounds)
		span.RecordError(err)
		span.SetStatus(codes.Error, "coordinates out of bounds")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	ts := time.Now()
	if req.Timestamp > 0 {
		ts = time.UnixMilli(req.Timestamp)
	}
	pos := types.Position{
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Accuracy:  req.Accuracy,
		Timestamp: ts,
	}
	h.source.Push(pos)

	span.SetAttributes(
		attribute.Float64("fix.latitude", req.Latitude),
		attribute.Float64("fix.longitude", req.Longitude),
	)
	span.SetStatus(codes.Ok, "location accepted")
	api.WriteJSONResponse(w, r, http.StatusAccepted, map[string]string{"status": "accepted"})
}

// ListAlerts handles GET /alerts. With ?active=true only non-dismissed
// alerts are returned; either way, most recent first.
func (h *HandlerImpl) ListAlerts(w http.ResponseWriter, r *http.Request) {
	_, span := otel.Tracer("ProximityHandler").Start(r.Context(), "ListAlerts")
	defer span.End()

	var alerts []types.ProximityAlert
	if r.URL.Query().Get("active") == "true" {
		alerts = h.engine.ActiveAlerts()
	} else {
		alerts = h.engine.Alerts()
	}
	if alerts == nil {
		alerts = []types.ProximityAlert{}
	}

	span.SetAttributes(attribute.Int("alerts.count", len(alerts)))
	span.SetStatus(codes.Ok, "alerts listed")
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]interface{}{
		"total":  len(alerts),
		"alerts": alerts,
	})
}

// DismissAlert handles POST /alerts/{alertID}/dismiss.
func (h *HandlerImpl) DismissAlert(w http.ResponseWriter, r *http.Request) {
	_, span := otel.Tracer("ProximityHandler").Start(r.Context(), "DismissAlert")
	defer span.End()

	alertID := chi.URLParam(r, "alertID")
	if alertID == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Alert ID is required")
		span.SetStatus(codes.Error, "missing alert id")
		return
	}

	if !h.engine.DismissAlert(alertID) {
		api.ErrorResponse(w, r, http.StatusNotFound, "Alert not found")
		span.SetStatus(codes.Error, "alert not found")
		return
	}

	span.SetAttributes(attribute.String("alert.id", alertID))
	span.SetStatus(codes.Ok, "alert dismissed")
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]string{"status": "dismissed"})
}

// ClearAlerts handles DELETE /alerts.
func (h *HandlerImpl) ClearAlerts(w http.ResponseWriter, r *http.Request) {
	_, span := otel.Tracer("ProximityHandler").Start(r.Context(), "ClearAlerts")
	defer span.End()

	h.engine.ClearAlerts()
	span.SetStatus(codes.Ok, "alerts cleared")
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]string{"status": "cleared"})
}
