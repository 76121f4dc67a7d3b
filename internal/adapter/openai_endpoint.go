package adapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel/attribute"

	m "guut.dev/pkg/guut/internal/model"
	"guut.dev/pkg/guut/internal/telemetry"
)

// OpenAIConfig configures an OpenAI-compatible chat completion endpoint.
type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float32
}

// ChatCompletionClient is the part of the go-openai client the endpoint uses.
type ChatCompletionClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIEndpoint talks to an OpenAI-compatible API.
type OpenAIEndpoint struct {
	client ChatCompletionClient
	cfg    OpenAIConfig
}

// NewOpenAIEndpoint constructs an endpoint for cfg.
func NewOpenAIEndpoint(cfg OpenAIConfig) (*OpenAIEndpoint, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("OpenAI API key is not set")
	}

	if cfg.Model == "" {
		cfg.Model = openai.GPT4oMini
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	slog.Info("Initializing OpenAI endpoint", "model", cfg.Model, "base_url", clientCfg.BaseURL)

	return NewOpenAIEndpointWithClient(openai.NewClientWithConfig(clientCfg), cfg), nil
}

// NewOpenAIEndpointWithClient wraps an existing client.
func NewOpenAIEndpointWithClient(client ChatCompletionClient, cfg OpenAIConfig) *OpenAIEndpoint {
	return &OpenAIEndpoint{client: client, cfg: cfg}
}

// Info describes the endpoint.
func (e *OpenAIEndpoint) Info() m.EndpointInfo {
	return m.EndpointInfo{Name: "openai", Model: e.cfg.Model}
}

// Complete sends the conversation and returns the first choice.
func (e *OpenAIEndpoint) Complete(ctx context.Context, conversation []m.Message, stop []string) (msg m.Message, err error) {
	ctx, span := telemetry.StartSpan(ctx, "llm.call",
		attribute.String("llm.model", e.cfg.Model),
		attribute.Int("llm.messages", len(conversation)),
	)
	defer func() { telemetry.EndSpan(span, err) }()

	req := openai.ChatCompletionRequest{
		Model:       e.cfg.Model,
		Messages:    make([]openai.ChatCompletionMessage, 0, len(conversation)),
		Temperature: e.cfg.Temperature,
	}

	if e.cfg.MaxTokens > 0 {
		req.MaxCompletionTokens = e.cfg.MaxTokens
	}

	if len(stop) > 0 {
		req.Stop = stop
	}

	for _, msg := range conversation {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}

	resp, err := e.client.CreateChatCompletion(ctx, req)
	if err != nil {
		slog.Error("OpenAI API call failed", "model", e.cfg.Model, "error", err)

		return m.Message{}, fmt.Errorf("failed to create chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return m.Message{}, errors.New("OpenAI returned no choices")
	}

	slog.Debug("Received response from OpenAI", "finish_reason", resp.Choices[0].FinishReason)

	span.SetAttributes(
		attribute.Int("llm.prompt_tokens", resp.Usage.PromptTokens),
		attribute.Int("llm.completion_tokens", resp.Usage.CompletionTokens),
	)

	return m.Message{
		Role:    m.RoleAssistant,
		Content: resp.Choices[0].Message.Content,
		Usage: &m.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
		},
	}, nil
}
