package model

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kandasoft/salesdojo/internal/engine"
)

func TestCoalesce(t *testing.T) {
	history := []engine.Message{
		engine.NewMessage(engine.RoleUser, "前の返答"),
		engine.NewMessage(engine.RoleUser, "会話を続けてください。"),
		engine.NewMessage(engine.RoleAssistant, "承知しました。"),
		engine.NewMessage(engine.RoleUser, "次の発話"),
	}

	merged := coalesce(history)

	require.Len(t, merged, 3)
	assert.Equal(t, engine.RoleUser, merged[0].Role)
	assert.Equal(t, "前の返答\n\n会話を続けてください。", merged[0].Content)
	assert.Equal(t, engine.RoleAssistant, merged[1].Role)
	assert.Equal(t, engine.RoleUser, merged[2].Role)
	assert.Equal(t, "次の発話", merged[2].Content)
}

func TestCoalesceLeavesAlternationAlone(t *testing.T) {
	history := []engine.Message{
		engine.NewMessage(engine.RoleUser, "a"),
		engine.NewMessage(engine.RoleAssistant, "b"),
		engine.NewMessage(engine.RoleUser, "c"),
	}
	assert.Equal(t, history, coalesce(history))

	assert.Empty(t, coalesce(nil))
}

func TestCoalesceDoesNotMutateInput(t *testing.T) {
	history := []engine.Message{
		engine.NewMessage(engine.RoleUser, "a"),
		engine.NewMessage(engine.RoleUser, "b"),
	}
	_ = coalesce(history)
	assert.Equal(t, "a", history[0].Content)
}

func TestToConverseMessages(t *testing.T) {
	history := []engine.Message{
		engine.NewMessage(engine.RoleUser, "こんにちは"),
		engine.NewMessage(engine.RoleAssistant, "どうも"),
	}

	msgs := toConverseMessages(history)

	require.Len(t, msgs, 2)
	assert.Equal(t, types.ConversationRoleUser, msgs[0].Role)
	assert.Equal(t, types.ConversationRoleAssistant, msgs[1].Role)

	block, ok := msgs[0].Content[0].(*types.ContentBlockMemberText)
	require.True(t, ok)
	assert.Equal(t, "こんにちは", block.Value)
}

func TestClassifyBedrockError(t *testing.T) {
	throttle := classifyBedrockError(fmt.Errorf("operation error: %w", &types.ThrottlingException{}))
	var throttled *engine.ThrottledError
	assert.True(t, errors.As(throttle, &throttled))

	internal := classifyBedrockError(fmt.Errorf("operation error: %w", &types.InternalServerException{}))
	var server *engine.ServerError
	require.True(t, errors.As(internal, &server))
	assert.Equal(t, 500, server.StatusCode)

	unavailable := classifyBedrockError(fmt.Errorf("operation error: %w", &types.ServiceUnavailableException{}))
	server = nil
	require.True(t, errors.As(unavailable, &server))
	assert.Equal(t, 503, server.StatusCode)

	// Anything else passes through wrapped, still inspectable.
	sentinel := errors.New("validation failed")
	other := classifyBedrockError(sentinel)
	assert.True(t, errors.Is(other, sentinel))
	assert.False(t, errors.As(other, &throttled))
	server = nil
	assert.False(t, errors.As(other, &server))
}

func TestClassifyAnthropicError(t *testing.T) {
	throttle := classifyAnthropicError(fmt.Errorf("request failed: %w", &anthropic.Error{StatusCode: 429}))
	var throttled *engine.ThrottledError
	assert.True(t, errors.As(throttle, &throttled))

	overloaded := classifyAnthropicError(fmt.Errorf("request failed: %w", &anthropic.Error{StatusCode: 529}))
	var server *engine.ServerError
	require.True(t, errors.As(overloaded, &server))
	assert.Equal(t, 529, server.StatusCode)

	// Client errors are not transient and pass through unchanged.
	badRequest := fmt.Errorf("request failed: %w", &anthropic.Error{StatusCode: 400})
	assert.Equal(t, badRequest, classifyAnthropicError(badRequest))
}

func TestNewInvokerUnknownBackend(t *testing.T) {
	_, err := NewInvoker(context.Background(), "gemini", engine.Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gemini")
}

func TestNewClaudeInvokerAliases(t *testing.T) {
	cfg := engine.Config{MaxTokens: 512}

	assert.Equal(t, claudeModels["sonnet"], NewClaudeInvoker("sonnet", cfg).modelID)
	assert.Equal(t, claudeModels["haiku"], NewClaudeInvoker("haiku", cfg).modelID)

	// Unknown aliases fall back to haiku.
	assert.Equal(t, claudeModels["haiku"], NewClaudeInvoker("opus", cfg).modelID)
}
