// Package model implements the engine's model-invocation capability against
// hosted backends: Amazon Bedrock (Converse API) and the Anthropic API.
// Provider errors are translated into the engine's error taxonomy so the
// orchestrator can classify them without importing provider SDKs.
package model

import (
	"context"
	"fmt"

	"github.com/kandasoft/salesdojo/internal/engine"
)

// NewInvoker builds an invoker for the named backend. "bedrock" uses the
// Converse API with cfg.ModelID; "haiku" and "sonnet" are Anthropic model
// aliases.
func NewInvoker(ctx context.Context, backend string, cfg engine.Config) (engine.Invoker, error) {
	switch backend {
	case "", "bedrock":
		return NewBedrockInvoker(ctx, cfg)
	case "haiku", "sonnet":
		return NewClaudeInvoker(backend, cfg), nil
	default:
		return nil, fmt.Errorf("unknown model backend %q: must be bedrock, haiku, or sonnet", backend)
	}
}

// coalesce merges consecutive same-role messages into one turn. Both backends
// require strict user/assistant alternation, while the simulator's seed
// instructions can legally follow a cross-wired user turn.
func coalesce(history []engine.Message) []engine.Message {
	out := make([]engine.Message, 0, len(history))
	for _, msg := range history {
		if n := len(out); n > 0 && out[n-1].Role == msg.Role {
			out[n-1].Content = out[n-1].Content + "\n\n" + msg.Content
			continue
		}
		out = append(out, msg)
	}
	return out
}
