package model

import (
	"context"
	"errors"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/kandasoft/salesdojo/internal/engine"
)

var claudeModels = map[string]string{
	"haiku":  "claude-haiku-4-5-20251001",
	"sonnet": "claude-sonnet-4-5-20250929",
}

// ClaudeInvoker drives the Anthropic Messages API. The API key is read from
// ANTHROPIC_API_KEY by the SDK.
type ClaudeInvoker struct {
	client  anthropic.Client
	modelID string
	cfg     engine.Config
}

// NewClaudeInvoker creates an invoker for a model alias (haiku, sonnet).
// Unknown aliases fall back to haiku.
func NewClaudeInvoker(alias string, cfg engine.Config) *ClaudeInvoker {
	modelID := claudeModels[alias]
	if modelID == "" {
		modelID = claudeModels["haiku"]
	}
	return &ClaudeInvoker{
		client:  anthropic.NewClient(),
		modelID: modelID,
		cfg:     cfg,
	}
}

func (c *ClaudeInvoker) Invoke(ctx context.Context, system string, history []engine.Message) (string, error) {
	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(c.modelID),
		MaxTokens:   int64(c.cfg.MaxTokens),
		Temperature: anthropic.Float(float64(c.cfg.Temperature)),
		TopP:        anthropic.Float(float64(c.cfg.TopP)),
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: toAnthropicMessages(history),
	})
	if err != nil {
		return "", classifyAnthropicError(err)
	}

	text := extractClaudeText(message)
	if text == "" {
		if message.StopReason == anthropic.StopReasonMaxTokens {
			return "", &engine.ContentUnavailableError{Reason: string(message.StopReason)}
		}
		return "", &engine.MalformedResponseError{Err: errors.New("no text content in Claude response")}
	}

	return text, nil
}

func toAnthropicMessages(history []engine.Message) []anthropic.MessageParam {
	merged := coalesce(history)
	msgs := make([]anthropic.MessageParam, 0, len(merged))
	for _, m := range merged {
		block := anthropic.NewTextBlock(m.Content)
		if m.Role == engine.RoleAssistant {
			msgs = append(msgs, anthropic.NewAssistantMessage(block))
		} else {
			msgs = append(msgs, anthropic.NewUserMessage(block))
		}
	}
	return msgs
}

func extractClaudeText(msg *anthropic.Message) string {
	var parts []string
	for _, block := range msg.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok {
			parts = append(parts, tb.Text)
		}
	}
	return strings.Join(parts, "")
}

func classifyAnthropicError(err error) error {
	var apierr *anthropic.Error
	if errors.As(err, &apierr) {
		switch {
		case apierr.StatusCode == 429:
			return &engine.ThrottledError{Err: err}
		case apierr.StatusCode >= 500:
			return &engine.ServerError{StatusCode: apierr.StatusCode, Err: err}
		}
	}
	return err
}
