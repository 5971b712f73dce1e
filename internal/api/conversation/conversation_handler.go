package conversation

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"tourguide/internal/api"
	"tourguide/internal/types"
)

type HandlerImpl struct {
	orchestrator *Orchestrator
	logger       *slog.Logger
}

func NewHandlerImpl(orchestrator *Orchestrator, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{orchestrator: orchestrator, logger: logger}
}

type chatRequest struct {
	Text string `json:"text"`
}

// Chat handles POST /chat. A busy conversation maps to 429; model outages
// never produce an error status, the reply just carries the degraded flag.
func (h *HandlerImpl) Chat(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ConversationHandler").Start(r.Context(), "Chat")
	defer span.End()

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid request body")
		span.SetStatus(codes.Error, "invalid body")
		return
	}

	reply, err := h.orchestrator.SubmitUtterance(ctx, req.Text)
	if err != nil {
		if errors.Is(err, types.ErrBusy) {
			api.ErrorResponse(w, r, http.StatusTooManyRequests, "A reply is already being generated")
			span.SetStatus(codes.Error, "conversation busy")
			return
		}
		h.logger.ErrorContext(ctx, "Failed to process utterance", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "utterance failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to process message")
		return
	}

	span.SetStatus(codes.Ok, "reply generated")
	api.WriteJSONResponse(w, r, http.StatusOK, reply)
}

// Reset handles POST /chat/reset: drops the history and the outbound
// message dedup state.
func (h *HandlerImpl) Reset(w http.ResponseWriter, r *http.Request) {
	_, span := otel.Tracer("ConversationHandler").Start(r.Context(), "Reset")
	defer span.End()

	h.orchestrator.ClearHistory()
	span.SetStatus(codes.Ok, "conversation reset")
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]string{"status": "reset"})
}
