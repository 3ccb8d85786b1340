package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/granthika-labs/granthika/internal/core/domain"
)

// GetResourcePrice returns the price row for a resource. Absence means
// the resource is free; callers see that as ErrNotFound.
func (s *Store) GetResourcePrice(ctx context.Context, resourceID string) (domain.ResourcePrice, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT resource_id, price, currency, free
		FROM resource_prices WHERE resource_id = ?
	`, resourceID)

	var p domain.ResourcePrice
	err := row.Scan(&p.ResourceID, &p.Price, &p.Currency, &p.Free)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ResourcePrice{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.ResourcePrice{}, fmt.Errorf("scanning price: %w", err)
	}
	return p, nil
}

// SetResourcePrice inserts or replaces a resource's price.
func (s *Store) SetResourcePrice(ctx context.Context, price domain.ResourcePrice) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO resource_prices (resource_id, price, currency, free)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(resource_id) DO UPDATE SET
			price = excluded.price,
			currency = excluded.currency,
			free = excluded.free
	`, price.ResourceID, price.Price, price.Currency, price.Free)
	if err != nil {
		return fmt.Errorf("setting price: %w", err)
	}
	return nil
}

// RecordPurchase stores a completed purchase.
func (s *Store) RecordPurchase(ctx context.Context, p domain.Purchase) (domain.Purchase, error) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	if p.Status == "" {
		p.Status = "completed"
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO purchases (user_id, resource_id, amount, payment_id, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, p.UserID, p.ResourceID, p.Amount, p.PaymentID, p.Status, p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Purchase{}, fmt.Errorf("purchase of %s: %w", p.ResourceID, domain.ErrAlreadyExists)
		}
		return domain.Purchase{}, fmt.Errorf("recording purchase: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.Purchase{}, fmt.Errorf("reading purchase id: %w", err)
	}
	p.ID = id
	return p, nil
}

// ListPurchases returns the user's purchases, newest first.
func (s *Store) ListPurchases(ctx context.Context, userID int64) ([]domain.Purchase, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, resource_id, amount, payment_id, status, created_at
		FROM purchases
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing purchases: %w", err)
	}
	defer rows.Close()

	var purchases []domain.Purchase
	for rows.Next() {
		var p domain.Purchase
		if err := rows.Scan(&p.ID, &p.UserID, &p.ResourceID, &p.Amount, &p.PaymentID, &p.Status, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning purchase: %w", err)
		}
		purchases = append(purchases, p)
	}
	return purchases, rows.Err()
}

// HasPurchased reports whether the user owns the resource.
func (s *Store) HasPurchased(ctx context.Context, userID int64, resourceID string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM purchases
		WHERE user_id = ? AND resource_id = ? AND status = 'completed'
	`, userID, resourceID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking purchase: %w", err)
	}
	return n > 0, nil
}
