package adapter

import (
	"context"
	"log/slog"
	"time"

	m "guut.dev/pkg/guut/internal/model"
	"guut.dev/pkg/guut/internal/telemetry"
)

// LoggingEndpoint logs and measures every completion of the wrapped endpoint.
type LoggingEndpoint struct {
	Endpoint
}

// NewLoggingEndpoint wraps next.
func NewLoggingEndpoint(next Endpoint) *LoggingEndpoint {
	return &LoggingEndpoint{Endpoint: next}
}

// Complete forwards the request and records its latency and token usage.
func (e *LoggingEndpoint) Complete(ctx context.Context, conversation []m.Message, stop []string) (m.Message, error) {
	info := e.Info()
	start := time.Now()

	slog.Debug("Requesting completion", "endpoint", info.Name, "model", info.Model, "messages", len(conversation))

	msg, err := e.Endpoint.Complete(ctx, conversation, stop)
	elapsed := time.Since(start)

	if err != nil {
		slog.Error("Failed to complete conversation", "endpoint", info.Name, "duration", elapsed, "error", err)

		return m.Message{}, err
	}

	var prompt, completion int
	if msg.Usage != nil {
		prompt, completion = msg.Usage.PromptTokens, msg.Usage.CompletionTokens
	}

	telemetry.ObserveCompletion(info.Name, elapsed, prompt, completion)

	slog.Info("Received completion",
		"endpoint", info.Name,
		"duration", elapsed,
		"prompt_tokens", prompt,
		"completion_tokens", completion,
		"length", len(msg.Content),
	)

	return msg, nil
}
