package adapter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	m "guut.dev/pkg/guut/internal/model"
)

// SafeguardEndpoint asks the operator for confirmation before every request
// it forwards to the wrapped endpoint.
type SafeguardEndpoint struct {
	Endpoint

	mu  sync.Mutex
	in  *bufio.Reader
	out io.Writer
}

// NewSafeguardEndpoint wraps next, prompting on out and reading answers from in.
func NewSafeguardEndpoint(next Endpoint, in io.Reader, out io.Writer) *SafeguardEndpoint {
	return &SafeguardEndpoint{Endpoint: next, in: bufio.NewReader(in), out: out}
}

// Complete forwards the request once the operator answers "y".
func (e *SafeguardEndpoint) Complete(ctx context.Context, conversation []m.Message, stop []string) (m.Message, error) {
	e.mu.Lock()

	if len(conversation) > 0 {
		last := conversation[len(conversation)-1]
		_, _ = fmt.Fprintf(e.out, "%s\n\n", last.Content)
	}

	_, _ = fmt.Fprintf(e.out, "Request completion from %s (%d messages)? [y/N] ", e.Info().Name, len(conversation))

	answer, err := e.in.ReadString('\n')
	e.mu.Unlock()

	if err != nil && answer == "" {
		return m.Message{}, fmt.Errorf("failed to read confirmation: %w", err)
	}

	if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
		return m.Message{}, ErrCompletionDeclined
	}

	return e.Endpoint.Complete(ctx, conversation, stop)
}
