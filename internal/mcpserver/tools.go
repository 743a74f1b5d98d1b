package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/kandasoft/salesdojo/internal/engine"
	"github.com/kandasoft/salesdojo/internal/persona"
	"github.com/kandasoft/salesdojo/internal/prompt"
)

var tracer = otel.Tracer("salesdojo-mcp")

// ToolDefs returns the MCP tool definitions.
func ToolDefs() []mcp.Tool {
	personaProps := map[string]any{
		"age": map[string]any{
			"type":        "integer",
			"description": "Prospect age (18-70)",
			"default":     38,
		},
		"gender": map[string]any{
			"type":        "string",
			"description": "Prospect gender: male, female",
			"default":     "female",
		},
		"marital_status": map[string]any{
			"type":        "string",
			"description": "Prospect marital status: single, married, divorced",
			"default":     "married",
		},
		"display_name": map[string]any{
			"type":        "string",
			"description": "Override the prospect's name",
		},
		"intensity": map[string]any{
			"type":        "string",
			"description": "Response strength: subdued, neutral, firm",
			"default":     "neutral",
		},
	}

	generateProps := map[string]any{
		"messages": map[string]any{
			"type":        "array",
			"description": "Conversation so far, oldest first. Each item is {role: user|assistant, content: string}; user turns are the trainee's pitches.",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"role":    map[string]any{"type": "string"},
					"content": map[string]any{"type": "string"},
				},
				"required": []string{"role", "content"},
			},
		},
	}
	for k, v := range personaProps {
		generateProps[k] = v
	}

	simulateProps := map[string]any{
		"turns": map[string]any{
			"type":        "integer",
			"description": "Conversation turns to generate (1-10)",
			"default":     3,
		},
		"product": map[string]any{
			"type":        "string",
			"description": "Insurance product the salesman pitches: cancer, medical, life, nursing, education, pension",
			"default":     "cancer",
		},
	}
	for k, v := range personaProps {
		simulateProps[k] = v
	}

	return []mcp.Tool{
		{
			Name:        "generate_turn",
			Description: "Generate the skeptical prospect's reply to a sales conversation. Returns the reply text, or a contract-violation warning when the model refused to stay in character.",
			InputSchema: mcp.ToolInputSchema{
				Type:       "object",
				Properties: generateProps,
				Required:   []string{"messages"},
			},
		},
		{
			Name:        "simulate_conversation",
			Description: "Generate a full demo conversation between an AI insurance salesman and the skeptical prospect. Returns the paired turns.",
			InputSchema: mcp.ToolInputSchema{
				Type:       "object",
				Properties: simulateProps,
			},
		},
	}
}

// Handlers contains tool handler implementations.
type Handlers struct {
	orch *engine.Orchestrator
	sim  *engine.Simulator
	log  *slog.Logger
}

// NewHandlers creates tool handlers.
func NewHandlers(orch *engine.Orchestrator, sim *engine.Simulator, logger *slog.Logger) *Handlers {
	return &Handlers{orch: orch, sim: sim, log: logger}
}

// HandleGenerateTurn runs one orchestrated prospect turn.
func (h *Handlers) HandleGenerateTurn(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctx, span := tracer.Start(ctx, "tool.generate_turn")
	defer span.End()

	settings, intensity, errMsg := parsePersonaArgs(req)
	if errMsg != "" {
		span.SetStatus(codes.Error, errMsg)
		return mcp.NewToolResultError(errMsg), nil
	}

	history, err := parseMessages(req)
	if err != nil {
		span.SetStatus(codes.Error, "invalid messages")
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(history) == 0 {
		span.SetStatus(codes.Error, "missing messages")
		return mcp.NewToolResultError("messages is required and must not be empty"), nil
	}

	span.SetAttributes(
		attribute.Int("history_len", len(history)),
		attribute.Int("age", settings.Age),
		attribute.String("marital_status", string(settings.MaritalStatus)),
	)

	outcome := h.orch.GenerateTurn(ctx, history, persona.Resolve(settings), prompt.Contract{
		Role:      prompt.RoleBuyer,
		Intensity: intensity,
	})

	span.SetAttributes(attribute.String("status", string(outcome.Status)))
	h.log.InfoContext(ctx, "generate_turn finished", "status", outcome.Status, "history_len", len(history))

	result := map[string]any{"status": outcome.Status}
	if outcome.Text != "" {
		result["message"] = outcome.Text
	}
	if outcome.Warning != "" {
		result["warning"] = outcome.Warning
	}
	if outcome.Err != "" {
		result["error"] = outcome.Err
	}
	return jsonResult(result)
}

// HandleSimulateConversation runs the dual-agent simulator.
func (h *Handlers) HandleSimulateConversation(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctx, span := tracer.Start(ctx, "tool.simulate_conversation")
	defer span.End()

	settings, intensity, errMsg := parsePersonaArgs(req)
	if errMsg != "" {
		span.SetStatus(codes.Error, errMsg)
		return mcp.NewToolResultError(errMsg), nil
	}

	turns := parseIntParam(req, "turns", 3)
	product := mcp.ParseString(req, "product", "cancer")
	if !prompt.IsValidProduct(product) {
		span.SetStatus(codes.Error, "invalid product")
		return mcp.NewToolResultError(fmt.Sprintf("invalid product %q: must be one of %v", product, prompt.ProductNames())), nil
	}

	span.SetAttributes(
		attribute.Int("turns", turns),
		attribute.String("product", product),
	)

	conversation, err := h.sim.RunConversation(ctx, settings, prompt.Product(product), intensity, turns)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "simulation failed")
		return mcp.NewToolResultError(fmt.Sprintf("simulation failed: %v", err)), nil
	}

	span.SetAttributes(attribute.Int("result_turns", len(conversation)))
	h.log.InfoContext(ctx, "simulate_conversation finished", "turns", len(conversation), "product", product)

	return jsonResult(map[string]any{
		"conversation": conversation,
		"turns":        len(conversation),
	})
}

func parsePersonaArgs(req mcp.CallToolRequest) (persona.Settings, prompt.Intensity, string) {
	settings := persona.Settings{
		Age:           parseIntParam(req, "age", 38),
		Gender:        persona.Gender(mcp.ParseString(req, "gender", "female")),
		MaritalStatus: persona.MaritalStatus(mcp.ParseString(req, "marital_status", "married")),
		DisplayName:   mcp.ParseString(req, "display_name", ""),
	}

	if settings.Age < 18 || settings.Age > 70 {
		return settings, "", fmt.Sprintf("invalid age %d: must be between 18 and 70", settings.Age)
	}
	switch settings.Gender {
	case persona.GenderMale, persona.GenderFemale:
	default:
		return settings, "", fmt.Sprintf("invalid gender %q: must be male or female", settings.Gender)
	}
	switch settings.MaritalStatus {
	case persona.MaritalSingle, persona.MaritalMarried, persona.MaritalDivorced:
	default:
		return settings, "", fmt.Sprintf("invalid marital_status %q: must be single, married, or divorced", settings.MaritalStatus)
	}

	intensity := mcp.ParseString(req, "intensity", "neutral")
	if !prompt.IsValidIntensity(intensity) {
		return settings, "", fmt.Sprintf("invalid intensity %q: must be subdued, neutral, or firm", intensity)
	}

	return settings, prompt.Intensity(intensity), ""
}

func parseMessages(req mcp.CallToolRequest) ([]engine.Message, error) {
	args := req.GetArguments()
	if args == nil {
		return nil, nil
	}
	raw, ok := args["messages"]
	if !ok {
		return nil, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("messages must be an array")
	}

	history := make([]engine.Message, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("messages[%d] must be an object", i)
		}
		role, _ := obj["role"].(string)
		content, _ := obj["content"].(string)
		if role != string(engine.RoleUser) && role != string(engine.RoleAssistant) {
			return nil, fmt.Errorf("messages[%d] has invalid role %q (must be user or assistant)", i, role)
		}
		if content == "" {
			return nil, fmt.Errorf("messages[%d] has empty content", i)
		}
		history = append(history, engine.NewMessage(engine.MessageRole(role), content))
	}
	return history, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func parseIntParam(req mcp.CallToolRequest, key string, defaultVal int) int {
	args := req.GetArguments()
	if args == nil {
		return defaultVal
	}
	raw, ok := args[key]
	if !ok {
		return defaultVal
	}
	switch v := raw.(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return defaultVal
	}
}
