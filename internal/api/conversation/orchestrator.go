package conversation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"tourguide/app/observability/metrics"
	"tourguide/internal/api/geo"
	"tourguide/internal/api/recommendation"
	"tourguide/internal/types"
)

const systemPreamble = "You are a helpful travel assistant AI. Try to provide useful information based on user queries. If the user asks about weather, use the getWeather tool."

const defaultHistorySize = 20

// LanguageModel is the collaborator that turns a dialogue into either free
// text or a tool invocation.
type LanguageModel interface {
	Converse(ctx context.Context, turns []types.ConversationTurn, tools []types.ToolSpec) (types.ModelReply, error)
}

// AlertSource provides the active proximity alerts for context injection.
type AlertSource interface {
	ActiveAlerts() []types.ProximityAlert
}

// Locator reports the traveler's last known position, nil before any fix.
type Locator interface {
	LastPosition() *types.Position
}

// Orchestrator runs one conversation: it serializes utterances, keeps the
// bounded history, dispatches tool calls and degrades to passthrough when
// the model is unreachable. A model failure never surfaces as an error;
// the traveler always gets a reply.
type Orchestrator struct {
	logger      *slog.Logger
	model       LanguageModel
	alerts      AlertSource
	recommender recommendation.Service
	nav         NavigationSink
	locator     Locator
	tracker     *MessageTracker
	metrics     *metrics.AppMetrics
	historySize int
	topK        int

	mu           sync.Mutex
	history      []types.ConversationTurn
	contextAdded bool
}

// NewOrchestrator wires the conversation. alerts, recommender, nav and
// appMetrics may each be nil; the corresponding behavior is skipped.
func NewOrchestrator(model LanguageModel, alerts AlertSource, recommender recommendation.Service, nav NavigationSink, appMetrics *metrics.AppMetrics, historySize, topK int, logger *slog.Logger) *Orchestrator {
	if historySize <= 0 {
		historySize = defaultHistorySize
	}
	return &Orchestrator{
		logger:      logger,
		model:       model,
		alerts:      alerts,
		recommender: recommender,
		nav:         nav,
		tracker:     NewMessageTracker(),
		metrics:     appMetrics,
		historySize: historySize,
		topK:        topK,
	}
}

// WithLocator attaches the position provider used to describe the traveler's
// surroundings in the first-turn context.
func (o *Orchestrator) WithLocator(locator Locator) *Orchestrator {
	o.locator = locator
	return o
}

// SubmitUtterance processes one user utterance end to end. It returns
// types.ErrBusy when a model call is already in flight; any model failure
// is absorbed into a degraded passthrough reply instead.
func (o *Orchestrator) SubmitUtterance(ctx context.Context, text string) (types.ConversationReply, error) {
	ctx, span := otel.Tracer("ConversationOrchestrator").Start(ctx, "SubmitUtterance")
	defer span.End()

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		span.SetStatus(codes.Ok, "empty utterance passed through")
		return o.reply(text, false, ""), nil
	}

	if !o.mu.TryLock() {
		span.SetStatus(codes.Error, "conversation busy")
		return types.ConversationReply{}, types.ErrBusy
	}
	defer o.mu.Unlock()

	turns := make([]types.ConversationTurn, 0, len(o.history)+2)
	turns = append(turns, types.ConversationTurn{Role: types.RoleAssistant, Content: o.preambleLocked(ctx)})
	turns = append(turns, o.history...)
	turns = append(turns, types.ConversationTurn{Role: types.RoleUser, Content: trimmed})

	modelReply, err := o.model.Converse(ctx, turns, ToolCatalog())
	if err != nil {
		// Degrade to passthrough: the raw utterance still reaches the
		// avatar, and the history is left untouched.
		o.logger.WarnContext(ctx, "Model invocation failed, passing utterance through",
			slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Ok, "degraded to passthrough")
		return o.reply(text, true, err.Error()), nil
	}

	var finalText string
	switch modelReply.Kind {
	case types.ReplyToolUse:
		finalText = o.dispatchTool(ctx, modelReply, trimmed)
	default:
		finalText = strings.TrimSpace(modelReply.Text)
		if finalText == "" {
			finalText = enhanceTextManually(trimmed)
		}
	}

	o.appendHistoryLocked(trimmed, finalText)
	span.SetStatus(codes.Ok, "utterance processed")
	return o.reply(finalText, false, ""), nil
}

// reply builds the outbound message with a session-unique id.
func (o *Orchestrator) reply(text string, degraded bool, reason string) types.ConversationReply {
	id := uuid.NewString()
	for !o.tracker.Track(id) {
		id = uuid.NewString()
	}
	return types.ConversationReply{
		MessageID:     id,
		Text:          text,
		Degraded:      degraded,
		FailureReason: reason,
	}
}

// preambleLocked returns the system preamble, extended on the first
// utterance with the live situation: active alerts and top recommendations.
func (o *Orchestrator) preambleLocked(ctx context.Context) string {
	if o.contextAdded {
		return systemPreamble
	}
	o.contextAdded = true

	var b strings.Builder
	b.WriteString(systemPreamble)

	if o.alerts != nil {
		if active := o.alerts.ActiveAlerts(); len(active) > 0 {
			b.WriteString("\n\nThe traveler is currently near:")
			for _, alert := range active {
				fmt.Fprintf(&b, "\n- %s (%s away)", alert.Attraction.Name, geo.FormatDistance(alert.Distance))
			}
		}
	}
	if o.locator != nil && o.recommender != nil {
		if pos := o.locator.LastPosition(); pos != nil {
			b.WriteString("\n\n")
			b.WriteString(o.recommender.NearbyContext(ctx, pos.Latitude, pos.Longitude, 1000))
		}
	}
	if o.recommender != nil && o.topK > 0 {
		if recs, err := o.recommender.Recommend(ctx, types.TourismContext{}, o.topK); err == nil && len(recs) > 0 {
			b.WriteString("\n\nTop recommendations for the traveler:")
			for _, rec := range recs {
				fmt.Fprintf(&b, "\n- %s: %s", rec.Attraction.Name, rec.Reason)
			}
		}
	}
	return b.String()
}

// dispatchTool executes the requested tool and renders its outcome as plain
// language. Unknown tools and malformed arguments fall back to rule-based
// enhancement of the user's input.
func (o *Orchestrator) dispatchTool(ctx context.Context, reply types.ModelReply, input string) string {
	if o.metrics != nil {
		o.metrics.ToolDispatchesTotal.Add(ctx, 1)
	}
	_, span := otel.Tracer("ConversationOrchestrator").Start(ctx, "DispatchTool")
	span.SetAttributes(attribute.String("tool.name", reply.ToolName))
	defer span.End()

	switch reply.ToolName {
	case toolGetWeather:
		city, _ := reply.Input["city"].(string)
		if city == "" {
			return enhanceTextManually(input)
		}
		country, _ := reply.Input["country"].(string)
		return FakeWeather(city, country)

	case toolSearchCatalog:
		category, _ := reply.Input["category"].(string)
		if category == "" || o.recommender == nil {
			return enhanceTextManually(input)
		}
		if o.nav != nil {
			o.nav.Navigate("map")
		}
		return o.recommender.CategoryInsights(ctx, category, nil)

	case toolNavigate:
		view, _ := reply.Input["view"].(string)
		if view == "" {
			return enhanceTextManually(input)
		}
		if o.nav != nil {
			o.nav.Navigate(view)
		}
		return fmt.Sprintf("Taking you to the %s view now.", view)

	default:
		o.logger.WarnContext(ctx, "Model requested a tool outside the catalog",
			slog.String("tool", reply.ToolName), slog.Any("error", types.ErrUnknownTool))
		span.RecordError(types.ErrUnknownTool)
		return enhanceTextManually(input)
	}
}

func (o *Orchestrator) appendHistoryLocked(userText, assistantText string) {
	o.history = append(o.history,
		types.ConversationTurn{Role: types.RoleUser, Content: userText},
		types.ConversationTurn{Role: types.RoleAssistant, Content: assistantText},
	)
	if excess := len(o.history) - o.historySize; excess > 0 {
		o.history = o.history[excess:]
	}
}

// History returns a copy of the retained dialogue turns.
func (o *Orchestrator) History() []types.ConversationTurn {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]types.ConversationTurn, len(o.history))
	copy(out, o.history)
	return out
}

// ClearHistory resets the dialogue, the context injection and the outbound
// id tracker, as a full session reset.
func (o *Orchestrator) ClearHistory() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.history = nil
	o.contextAdded = false
	o.tracker.Reset()
}

// enhanceTextManually is the rule-based stand-in used when the model gave
// nothing usable: it reframes the utterance as a travel request.
func enhanceTextManually(text string) string {
	lowered := strings.ToLower(text)
	switch {
	case strings.Contains(lowered, "where") || strings.Contains(lowered, "what"):
		return fmt.Sprintf("I'm looking for travel recommendations about: %s", text)
	case strings.Contains(lowered, "hotel") || strings.Contains(lowered, "stay"):
		return fmt.Sprintf("I need help finding accommodation: %s", text)
	case strings.Contains(lowered, "flight") || strings.Contains(lowered, "travel"):
		return fmt.Sprintf("I need travel assistance with: %s", text)
	default:
		return fmt.Sprintf("I'd like to know more about: %s", text)
	}
}
