package generativeAI

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"google.golang.org/genai"

	"tourguide/app/observability/metrics"
	"tourguide/internal/types"
)

const apiKeyEnv = "GOOGLE_GEMINI_API_KEY"

// Options tune a single model invocation.
type Options struct {
	Model       string
	Temperature float32
	MaxTokens   int32
}

// AIClient wraps the Gemini API behind the ModelReply shape the
// conversation layer consumes. One client is shared across sessions.
type AIClient struct {
	client  *genai.Client
	opts    Options
	metrics *metrics.AppMetrics
}

// NewAIClient creates the Gemini client. The API key comes from the
// GOOGLE_GEMINI_API_KEY environment variable.
func NewAIClient(ctx context.Context, opts Options, appMetrics *metrics.AppMetrics) (*AIClient, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "NewAIClient")
	defer span.End()

	apiKey := os.Getenv(apiKeyEnv)
	if apiKey == "" {
		err := fmt.Errorf("%s environment variable is not set", apiKeyEnv)
		span.RecordError(err)
		span.SetStatus(codes.Error, "API key not set")
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create Gemini client")
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	span.SetStatus(codes.Ok, "client created")
	return &AIClient{client: client, opts: opts, metrics: appMetrics}, nil
}

// Converse sends the dialogue history plus the tool catalog and returns
// either free text or a single tool invocation. Failures are wrapped in
// types.ModelInvocationError so callers can degrade instead of surfacing
// the provider error.
func (ai *AIClient) Converse(ctx context.Context, turns []types.ConversationTurn, tools []types.ToolSpec) (types.ModelReply, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "Converse")
	defer span.End()
	span.SetAttributes(
		attribute.String("llm.model", ai.opts.Model),
		attribute.Int("llm.turns", len(turns)),
		attribute.Int("llm.tools", len(tools)),
	)

	contents := make([]*genai.Content, 0, len(turns))
	for _, turn := range turns {
		role := "user"
		if turn.Role == types.RoleAssistant {
			role = "model"
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: turn.Content}},
		})
	}

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(ai.opts.Temperature),
		MaxOutputTokens: ai.opts.MaxTokens,
	}
	if len(tools) > 0 {
		config.Tools = []*genai.Tool{{FunctionDeclarations: declarations(tools)}}
	}

	start := time.Now()
	resp, err := ai.client.Models.GenerateContent(ctx, ai.opts.Model, contents, config)
	if ai.metrics != nil {
		ai.metrics.ModelInvocationSeconds.Record(ctx, time.Since(start).Seconds())
	}
	if err != nil {
		if ai.metrics != nil {
			ai.metrics.ModelInvocationErrors.Add(ctx, 1)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "model invocation failed")
		return types.ModelReply{}, &types.ModelInvocationError{Cause: err}
	}

	if calls := resp.FunctionCalls(); len(calls) > 0 {
		span.SetAttributes(attribute.String("llm.tool_call", calls[0].Name))
		span.SetStatus(codes.Ok, "tool call returned")
		return types.ModelReply{
			Kind:     types.ReplyToolUse,
			ToolName: calls[0].Name,
			Input:    calls[0].Args,
		}, nil
	}

	span.SetStatus(codes.Ok, "text returned")
	return types.ModelReply{Kind: types.ReplyText, Text: resp.Text()}, nil
}

// Unavailable stands in for the real client when it could not be
// constructed, typically a missing API key. Every call reports the original
// failure, so the conversation layer degrades to passthrough instead of
// crashing at startup.
type Unavailable struct {
	Err error
}

func (u Unavailable) Converse(context.Context, []types.ConversationTurn, []types.ToolSpec) (types.ModelReply, error) {
	return types.ModelReply{}, &types.ModelInvocationError{Cause: u.Err}
}

// declarations maps the tool catalog onto Gemini function declarations.
func declarations(tools []types.ToolSpec) []*genai.FunctionDeclaration {
	out := make([]*genai.FunctionDeclaration, 0, len(tools))
	for _, t := range tools {
		props := make(map[string]*genai.Schema, len(t.Parameters))
		for name, p := range t.Parameters {
			props[name] = &genai.Schema{
				Type:        schemaType(p.Type),
				Description: p.Description,
			}
		}
		out = append(out, &genai.FunctionDeclaration{
			Name:        t.Name,
			Description: t.Description,
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: props,
				Required:   t.Required,
			},
		})
	}
	return out
}

func schemaType(t string) genai.Type {
	switch t {
	case "number", "integer":
		return genai.TypeNumber
	case "boolean":
		return genai.TypeBoolean
	default:
		return genai.TypeString
	}
}
