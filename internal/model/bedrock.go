package model

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-sdk-go-v2/otelaws"

	"github.com/kandasoft/salesdojo/internal/engine"
)

// BedrockInvoker drives the Bedrock Converse API.
type BedrockInvoker struct {
	client *bedrockruntime.Client
	cfg    engine.Config
}

// NewBedrockInvoker loads the default AWS config (region and credentials from
// the environment) and instruments the client for tracing.
func NewBedrockInvoker(ctx context.Context, cfg engine.Config) (*BedrockInvoker, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	otelaws.AppendMiddlewares(&awsCfg.APIOptions)

	return &BedrockInvoker{
		client: bedrockruntime.NewFromConfig(awsCfg),
		cfg:    cfg,
	}, nil
}

func (b *BedrockInvoker) Invoke(ctx context.Context, system string, history []engine.Message) (string, error) {
	resp, err := b.client.Converse(ctx, &bedrockruntime.ConverseInput{
		ModelId: aws.String(b.cfg.ModelID),
		System: []types.SystemContentBlock{
			&types.SystemContentBlockMemberText{Value: system},
		},
		Messages: toConverseMessages(history),
		InferenceConfig: &types.InferenceConfiguration{
			MaxTokens:   aws.Int32(b.cfg.MaxTokens),
			Temperature: aws.Float32(b.cfg.Temperature),
			TopP:        aws.Float32(b.cfg.TopP),
		},
	})
	if err != nil {
		return "", classifyBedrockError(err)
	}

	text := extractConverseText(resp)
	if text == "" {
		// Reasoning-only or filtered responses carry no text block. When the
		// stop reason points at truncation or filtering, report that; any
		// other empty response is a malformed reply.
		switch resp.StopReason {
		case types.StopReasonMaxTokens, types.StopReasonContentFiltered:
			return "", &engine.ContentUnavailableError{Reason: string(resp.StopReason)}
		}
		return "", &engine.MalformedResponseError{Err: errors.New("no text content in Converse response")}
	}

	return text, nil
}

func toConverseMessages(history []engine.Message) []types.Message {
	merged := coalesce(history)
	msgs := make([]types.Message, 0, len(merged))
	for _, m := range merged {
		role := types.ConversationRoleUser
		if m.Role == engine.RoleAssistant {
			role = types.ConversationRoleAssistant
		}
		msgs = append(msgs, types.Message{
			Role: role,
			Content: []types.ContentBlock{
				&types.ContentBlockMemberText{Value: m.Content},
			},
		})
	}
	return msgs
}

func extractConverseText(resp *bedrockruntime.ConverseOutput) string {
	if resp == nil || resp.Output == nil {
		return ""
	}
	msg, ok := resp.Output.(*types.ConverseOutputMemberMessage)
	if !ok {
		return ""
	}
	for _, block := range msg.Value.Content {
		if tb, ok := block.(*types.ContentBlockMemberText); ok {
			return tb.Value
		}
	}
	return ""
}

func classifyBedrockError(err error) error {
	var throttled *types.ThrottlingException
	if errors.As(err, &throttled) {
		return &engine.ThrottledError{Err: err}
	}

	var internal *types.InternalServerException
	if errors.As(err, &internal) {
		return &engine.ServerError{StatusCode: 500, Err: err}
	}
	var unavailable *types.ServiceUnavailableException
	if errors.As(err, &unavailable) {
		return &engine.ServerError{StatusCode: 503, Err: err}
	}

	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) && respErr.HTTPStatusCode() >= 500 {
		return &engine.ServerError{StatusCode: respErr.HTTPStatusCode(), Err: err}
	}

	return fmt.Errorf("bedrock converse: %w", err)
}
