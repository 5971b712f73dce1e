package types

// Role identifies who produced a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ConversationTurn is one entry in the bounded dialogue history.
type ConversationTurn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ToolParam describes one parameter of a tool in the catalog handed to the
// language model.
type ToolParam struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// ToolSpec is the declaration of a callable tool: name, description and a
// JSON-schema-like parameter spec.
type ToolSpec struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Parameters  map[string]ToolParam `json:"parameters"`
	Required    []string             `json:"required,omitempty"`
}

// ReplyKind tags the two possible model reply shapes.
type ReplyKind string

const (
	ReplyText    ReplyKind = "text"
	ReplyToolUse ReplyKind = "tool_use"
)

// ModelReply is what the language-model collaborator returns: either free
// text or a single tool invocation. Consumed immediately, never retained.
type ModelReply struct {
	Kind     ReplyKind      `json:"kind"`
	Text     string         `json:"text,omitempty"`
	ToolName string         `json:"tool_name,omitempty"`
	Input    map[string]any `json:"input,omitempty"`
}

// ConversationReply is the orchestrator's final answer for one utterance.
// MessageID is unique per call within a session; the avatar channel uses it
// for duplicate suppression.
type ConversationReply struct {
	MessageID     string `json:"message_id"`
	Text          string `json:"text"`
	Degraded      bool   `json:"degraded,omitempty"`
	FailureReason string `json:"failure_reason,omitempty"`
}
