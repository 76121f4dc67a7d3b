package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	m "guut.dev/pkg/guut/internal/model"
)

// ReplayEndpoint answers completions from a fixed list of responses.
type ReplayEndpoint struct {
	mu        sync.Mutex
	responses []string
	next      int
	name      string
}

// NewReplayEndpoint constructs an endpoint that returns responses in order.
func NewReplayEndpoint(responses ...string) *ReplayEndpoint {
	return &ReplayEndpoint{responses: responses, name: "replay"}
}

// LoadReplayEndpoint reads responses from a file. A .json file is a saved
// session result whose assistant messages are replayed; anything else is
// a YAML list of strings.
func LoadReplayEndpoint(path m.Path) (*ReplayEndpoint, error) {
	// #nosec G304 - path comes from configuration
	data, err := os.ReadFile(string(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read replay file: %w", err)
	}

	var responses []string

	if strings.EqualFold(filepath.Ext(string(path)), ".json") {
		var result m.SessionResult
		if err := json.Unmarshal(data, &result); err != nil {
			return nil, fmt.Errorf("failed to decode session result %s: %w", path, err)
		}

		for _, msg := range result.Conversation {
			if msg.Role == m.RoleAssistant {
				responses = append(responses, msg.Content)
			}
		}
	} else if err := yaml.Unmarshal(data, &responses); err != nil {
		return nil, fmt.Errorf("failed to decode replay list %s: %w", path, err)
	}

	endpoint := NewReplayEndpoint(responses...)
	endpoint.name = "replay:" + filepath.Base(string(path))

	return endpoint, nil
}

// Info describes the endpoint.
func (e *ReplayEndpoint) Info() m.EndpointInfo {
	return m.EndpointInfo{Name: e.name}
}

// Complete returns the next recorded response.
func (e *ReplayEndpoint) Complete(ctx context.Context, _ []m.Message, _ []string) (m.Message, error) {
	if err := ctx.Err(); err != nil {
		return m.Message{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.next >= len(e.responses) {
		return m.Message{}, ErrReplayExhausted
	}

	content := e.responses[e.next]
	e.next++

	return m.Message{Role: m.RoleAssistant, Content: content}, nil
}

// Remaining reports how many responses are left.
func (e *ReplayEndpoint) Remaining() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return len(e.responses) - e.next
}
