package driven

import (
	"context"

	"github.com/granthika-labs/granthika/internal/core/domain"
)

// RecordStore persists resources, chunks, accounts, and chat history.
// Implementations must be safe for concurrent use.
type RecordStore interface {
	ResourceStore
	UserStore
	HistoryStore
	PurchaseStore

	// Close releases the underlying database handle.
	Close() error
}

// ResourceStore persists ingested resources and their chunks.
type ResourceStore interface {
	// CommitResource inserts a resource and all its chunks in one
	// transaction. Either everything lands or nothing does.
	CommitResource(ctx context.Context, resource domain.Resource, chunks []domain.Chunk) error

	// GetResourceByPath looks a resource up by its absolute file
	// path. Returns domain.ErrNotFound when absent.
	GetResourceByPath(ctx context.Context, path string) (domain.Resource, error)

	// GetResourceByID looks a resource up by ID. Returns
	// domain.ErrNotFound when absent.
	GetResourceByID(ctx context.Context, id string) (domain.Resource, error)

	// ListResources returns all resources ordered by creation time.
	ListResources(ctx context.Context) ([]domain.Resource, error)

	// AllFilePaths returns the set of file paths already ingested.
	// Used for dedup before processing a batch.
	AllFilePaths(ctx context.Context) (map[string]struct{}, error)

	// ChunksByIDs returns the chunks with the given IDs joined with
	// their resources. Unknown IDs are silently omitted; order of the
	// returned slice is unspecified.
	ChunksByIDs(ctx context.Context, ids []string) ([]domain.ChunkWithResource, error)

	// CountChunks reports the number of stored chunks.
	CountChunks(ctx context.Context) (int, error)
}

// UserStore persists accounts.
type UserStore interface {
	// CreateUser inserts a new account. Returns
	// domain.ErrAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, user domain.User) (domain.User, error)

	// GetUserByEmail returns the account with the given email.
	// Returns domain.ErrNotFound when absent.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// GetUserByID returns the account with the given ID. Returns
	// domain.ErrNotFound when absent.
	GetUserByID(ctx context.Context, id int64) (domain.User, error)

	// TouchLastLogin records a successful login time.
	TouchLastLogin(ctx context.Context, id int64) error
}

// HistoryStore persists chat transcripts, capped per user.
type HistoryStore interface {
	// SaveConversation stores a transcript and prunes the user's
	// history down to the ten most recent conversations.
	SaveConversation(ctx context.Context, conv domain.Conversation) (domain.Conversation, error)

	// ListConversations returns the user's conversations, most
	// recent first.
	ListConversations(ctx context.Context, userID int64) ([]domain.Conversation, error)

	// DeleteConversation removes one conversation owned by the user.
	// Returns domain.ErrNotFound when no such row exists.
	DeleteConversation(ctx context.Context, userID, convID int64) error
}

// PurchaseStore persists resource pricing and purchases.
type PurchaseStore interface {
	// GetResourcePrice returns the price row for a resource.
	// Returns domain.ErrNotFound when the resource has no price,
	// which callers treat as free.
	GetResourcePrice(ctx context.Context, resourceID string) (domain.ResourcePrice, error)

	// SetResourcePrice inserts or replaces a resource's price.
	SetResourcePrice(ctx context.Context, price domain.ResourcePrice) error

	// RecordPurchase stores a completed purchase.
	RecordPurchase(ctx context.Context, p domain.Purchase) (domain.Purchase, error)

	// ListPurchases returns the user's purchases, newest first.
	ListPurchases(ctx context.Context, userID int64) ([]domain.Purchase, error)

	// HasPurchased reports whether the user owns the resource.
	HasPurchased(ctx context.Context, userID int64, resourceID string) (bool, error)
}
