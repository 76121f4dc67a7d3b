package adapter

import (
	"context"
	"errors"

	m "guut.dev/pkg/guut/internal/model"
)

// ErrReplayExhausted is returned by a replay endpoint that ran out of
// recorded responses.
var ErrReplayExhausted = errors.New("replay endpoint has no responses left")

// ErrCompletionDeclined is returned when the operator refuses a request at
// the safeguard prompt.
var ErrCompletionDeclined = errors.New("completion declined by operator")

// Endpoint produces the next assistant message of a conversation. The whole
// conversation is sent on every call; generation stops at any stop sequence.
type Endpoint interface {
	Complete(ctx context.Context, conversation []m.Message, stop []string) (m.Message, error)
	Info() m.EndpointInfo
}
