package driven

import (
	"context"

	"github.com/granthika-labs/granthika/internal/core/domain"
)

// LLMService provides streaming chat completion for the assistant
// surface. This is an optional service - when nil or unreachable, chat
// reports unavailable while search and ingestion keep working.
type LLMService interface {
	// ChatStream starts a streaming completion over the given
	// messages. Tokens arrive on the returned channel as they are
	// generated; the channel is closed when the reply is complete.
	// A mid-stream failure is delivered on the error channel after
	// the token channel closes. Cancelling ctx stops generation.
	ChatStream(ctx context.Context, messages []domain.ChatMessage) (<-chan string, <-chan error)

	// ModelName returns the name of the chat model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request. Called before every chat turn so unavailability
	// is reported up front rather than mid-stream.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
