package driving

import (
	"context"

	"github.com/granthika-labs/granthika/internal/core/domain"
)

// ChatService answers questions grounded in the indexed corpus.
type ChatService interface {
	// Chat retrieves context for the latest user message, builds a
	// grounded prompt, and streams the reply token by token. Returns
	// domain.ErrChatUnavailable before any token when the model
	// backend is unreachable, and domain.ErrInvalidInput when
	// messages is empty or ends with a non-user turn.
	Chat(ctx context.Context, messages []domain.ChatMessage) (<-chan string, <-chan error, error)

	// Status reports whether the model backend is reachable right now.
	Status(ctx context.Context) bool
}
