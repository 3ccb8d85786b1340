package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/granthika-labs/granthika/internal/core/domain"
)

// historyLimit is the number of conversations kept per user. Older
// ones are pruned on every save.
const historyLimit = 10

// SaveConversation stores a transcript and prunes the user's history.
func (s *Store) SaveConversation(ctx context.Context, conv domain.Conversation) (domain.Conversation, error) {
	messagesJSON, err := json.Marshal(conv.Messages)
	if err != nil {
		return domain.Conversation{}, fmt.Errorf("marshalling messages: %w", err)
	}
	if conv.CreatedAt.IsZero() {
		conv.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Conversation{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO conversations (user_id, messages, created_at)
		VALUES (?, ?, ?)
	`, conv.UserID, string(messagesJSON), conv.CreatedAt)
	if err != nil {
		return domain.Conversation{}, fmt.Errorf("inserting conversation: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.Conversation{}, fmt.Errorf("reading conversation id: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		DELETE FROM conversations
		WHERE user_id = ? AND id NOT IN (
			SELECT id FROM conversations
			WHERE user_id = ?
			ORDER BY created_at DESC, id DESC
			LIMIT ?
		)
	`, conv.UserID, conv.UserID, historyLimit)
	if err != nil {
		return domain.Conversation{}, fmt.Errorf("pruning history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.Conversation{}, fmt.Errorf("committing conversation: %w", err)
	}

	conv.ID = id
	return conv, nil
}

// ListConversations returns the user's conversations, most recent first.
func (s *Store) ListConversations(ctx context.Context, userID int64) ([]domain.Conversation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, messages, created_at
		FROM conversations
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing conversations: %w", err)
	}
	defer rows.Close()

	var convs []domain.Conversation
	for rows.Next() {
		var conv domain.Conversation
		var messagesJSON string
		if err := rows.Scan(&conv.ID, &conv.UserID, &messagesJSON, &conv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning conversation: %w", err)
		}
		if err := json.Unmarshal([]byte(messagesJSON), &conv.Messages); err != nil {
			return nil, fmt.Errorf("unmarshalling conversation %d: %w", conv.ID, err)
		}
		convs = append(convs, conv)
	}
	return convs, rows.Err()
}

// DeleteConversation removes one conversation owned by the user.
func (s *Store) DeleteConversation(ctx context.Context, userID, convID int64) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM conversations WHERE id = ? AND user_id = ?", convID, userID)
	if err != nil {
		return fmt.Errorf("deleting conversation: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
