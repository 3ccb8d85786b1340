package driving

import (
	"context"

	"github.com/granthika-labs/granthika/internal/core/domain"
)

// AuthService manages accounts, sessions, chat history, and purchases.
type AuthService interface {
	// Register creates an account. Returns domain.ErrAlreadyExists
	// when the email is taken and domain.ErrInvalidInput for a
	// malformed email or short password.
	Register(ctx context.Context, email, password, displayName string) (domain.User, error)

	// Login verifies credentials and returns the account. Returns
	// domain.ErrUnauthorized on a bad email or password.
	Login(ctx context.Context, email, password string) (domain.User, error)

	// GetUser returns the account with the given ID.
	GetUser(ctx context.Context, id int64) (domain.User, error)

	// SaveConversation stores a chat transcript in the user's
	// history, keeping only the ten most recent.
	SaveConversation(ctx context.Context, userID int64, messages []domain.ChatMessage) (domain.Conversation, error)

	// History returns the user's saved conversations, newest first.
	History(ctx context.Context, userID int64) ([]domain.Conversation, error)

	// DeleteConversation removes one saved conversation.
	DeleteConversation(ctx context.Context, userID, convID int64) error

	// EmailAvailable reports whether no account uses the email yet.
	EmailAvailable(ctx context.Context, email string) (bool, error)

	// Purchases returns the user's purchases, newest first.
	Purchases(ctx context.Context, userID int64) ([]domain.Purchase, error)

	// ResourcePrice returns the price attached to a resource. A
	// resource without a price row comes back as Free.
	ResourcePrice(ctx context.Context, resourceID string) (domain.ResourcePrice, error)

	// ResourceAccess reports whether the user may open the resource:
	// free resources are open to everyone, priced ones require a
	// recorded purchase.
	ResourceAccess(ctx context.Context, userID int64, resourceID string) (bool, error)

	// RecordPurchase stores a completed purchase for the user.
	RecordPurchase(ctx context.Context, userID int64, resourceID string, amount float64, paymentID string) (domain.Purchase, error)
}
