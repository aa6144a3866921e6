package chat

import (
	"context"

	"github.com/skidmark-racing/chorley/pkg/tools"
)

// ModelReply is one round's answer from the generative model: text,
// requested tool calls, or both.
type ModelReply struct {
	Text  string
	Calls []tools.Call
}

// Model is the round-trip contract with the generative backend. The
// conversation id keys the turn history, so concurrent conversations
// don't interleave.
type Model interface {
	// SendText sends a user turn and returns the model's reply.
	SendText(ctx context.Context, convID, text string) (*ModelReply, error)
	// SendToolResults feeds a round's tool results back to the model.
	SendToolResults(ctx context.Context, convID string, results []tools.Result) (*ModelReply, error)
	// Reset discards the turn history of one conversation.
	Reset(convID string)
}
