package engine

import (
	"os"
	"strconv"
)

// Config carries the model invocation parameters. Temperature and TopP are
// passed through to the backend unmodified; MaxTokens bounds response length
// and, when exhausted, the backend reports a content-unavailable condition.
type Config struct {
	ModelID     string
	MaxTokens   int32
	Temperature float32
	TopP        float32
}

const (
	defaultModelID     = "openai.gpt-oss-20b-1:0"
	defaultMaxTokens   = 512
	defaultTemperature = 0.4
	defaultTopP        = 0.9
)

// ConfigFromEnv reads model configuration from the environment, falling back
// to the training defaults.
func ConfigFromEnv() Config {
	return Config{
		ModelID:     envOr("BEDROCK_MODEL_ID", defaultModelID),
		MaxTokens:   int32(envInt("BEDROCK_MAX_TOKENS", defaultMaxTokens)),
		Temperature: float32(envFloat("BEDROCK_TEMPERATURE", defaultTemperature)),
		TopP:        float32(envFloat("BEDROCK_TOP_P", defaultTopP)),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
