// Package engine drives a single roleplay turn against a hosted model and,
// in dual-agent mode, a paired seller/prospect conversation. The engine is
// stateless between calls: conversation history threads through the caller.
package engine

import "time"

// MessageRole is the speaker slot of a conversation message.
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Message is one turn of caller-owned conversation history. The engine treats
// the sequence as an opaque ordered list fed verbatim to the model.
type Message struct {
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewMessage stamps a message with the current time.
func NewMessage(role MessageRole, content string) Message {
	return Message{Role: role, Content: content, Timestamp: time.Now()}
}

// Status classifies the terminal state of a generation call.
type Status string

const (
	// StatusOK means a contract-compliant turn was produced.
	StatusOK Status = "ok"
	// StatusViolation means both the original attempt and the corrective
	// retry contained acceptance language; Warning is set, Text is empty.
	StatusViolation Status = "violation"
	// StatusTransientError means the model service throttled or 5xx-ed on
	// both the original call and the single backoff retry.
	StatusTransientError Status = "transientError"
	// StatusFatalError covers unusable responses: truncation or safety
	// filtering with no text, malformed responses, other communication
	// failures. Never retried.
	StatusFatalError Status = "fatalError"
)

// Outcome is the structured result of one orchestrated turn. Errors never
// cross the engine boundary as panics or returned error values to
// single-agent callers; everything terminal lands here.
type Outcome struct {
	Status  Status `json:"status"`
	Text    string `json:"text,omitempty"`
	Warning string `json:"warning,omitempty"`
	Err     string `json:"error,omitempty"`
}

// OK reports whether the outcome carries usable text.
func (o Outcome) OK() bool {
	return o.Status == StatusOK
}
