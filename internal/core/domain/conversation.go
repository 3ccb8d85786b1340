package domain

import "time"

// ChatMessage is a single turn in a conversation.
type ChatMessage struct {
	// Role is "user" or "assistant".
	Role string `json:"role"`

	// Content is the message text.
	Content string `json:"content"`
}

// Conversation is a persisted chat transcript. Stored as an opaque JSON
// blob by the record store; only the last ten per user are retained.
type Conversation struct {
	// ID is the row identifier assigned by the store.
	ID int64

	// UserID is the owning user.
	UserID int64

	// Messages is the ordered turn sequence.
	Messages []ChatMessage

	// CreatedAt is when the conversation was saved.
	CreatedAt time.Time
}
