package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/granthika-labs/granthika/internal/core/domain"
	"github.com/granthika-labs/granthika/internal/core/ports/driven"
	"github.com/granthika-labs/granthika/internal/core/ports/driving"
	"github.com/granthika-labs/granthika/internal/logger"
)

// Ensure AuthService implements the interface.
var _ driving.AuthService = (*AuthService)(nil)

// minPasswordLen is the shortest accepted password.
const minPasswordLen = 8

// AuthService manages accounts, chat history, and purchases.
type AuthService struct {
	store driven.RecordStore
}

// NewAuthService creates a new auth service.
func NewAuthService(store driven.RecordStore) *AuthService {
	return &AuthService{store: store}
}

// Register creates an account with a bcrypt-hashed password.
func (s *AuthService) Register(ctx context.Context, email, password, displayName string) (domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !strings.Contains(email, "@") || len(email) < 3 {
		return domain.User{}, fmt.Errorf("email: %w", domain.ErrInvalidInput)
	}
	if len(password) < minPasswordLen {
		return domain.User{}, fmt.Errorf("password must be at least %d characters: %w",
			minPasswordLen, domain.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("hashing password: %w", err)
	}

	user, err := s.store.CreateUser(ctx, domain.User{
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  strings.TrimSpace(displayName),
	})
	if err != nil {
		return domain.User{}, err
	}

	logger.Info("registered user %s", user.Email)
	return user, nil
}

// Login verifies credentials. A missing account and a wrong password
// return the same error so login probes cannot enumerate emails.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, domain.ErrUnauthorized
		}
		return domain.User{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return domain.User{}, domain.ErrUnauthorized
	}

	if err := s.store.TouchLastLogin(ctx, user.ID); err != nil {
		logger.Warn("recording login time for %s: %v", user.Email, err)
	}
	return user, nil
}

// GetUser returns the account with the given ID.
func (s *AuthService) GetUser(ctx context.Context, id int64) (domain.User, error) {
	return s.store.GetUserByID(ctx, id)
}

// SaveConversation stores a chat transcript in the user's history.
func (s *AuthService) SaveConversation(ctx context.Context, userID int64, messages []domain.ChatMessage) (domain.Conversation, error) {
	if len(messages) == 0 {
		return domain.Conversation{}, fmt.Errorf("conversation messages: %w", domain.ErrInvalidInput)
	}
	return s.store.SaveConversation(ctx, domain.Conversation{
		UserID:   userID,
		Messages: messages,
	})
}

// History returns the user's saved conversations, newest first.
func (s *AuthService) History(ctx context.Context, userID int64) ([]domain.Conversation, error) {
	return s.store.ListConversations(ctx, userID)
}

// DeleteConversation removes one saved conversation.
func (s *AuthService) DeleteConversation(ctx context.Context, userID, convID int64) error {
	return s.store.DeleteConversation(ctx, userID, convID)
}

// EmailAvailable reports whether no account uses the email yet.
func (s *AuthService) EmailAvailable(ctx context.Context, email string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false, fmt.Errorf("email: %w", domain.ErrInvalidInput)
	}

	_, err := s.store.GetUserByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}

// Purchases returns the user's purchases, newest first.
func (s *AuthService) Purchases(ctx context.Context, userID int64) ([]domain.Purchase, error) {
	return s.store.ListPurchases(ctx, userID)
}

// ResourcePrice returns the price attached to a resource. Absence of a
// price row means the resource is free.
func (s *AuthService) ResourcePrice(ctx context.Context, resourceID string) (domain.ResourcePrice, error) {
	price, err := s.store.GetResourcePrice(ctx, resourceID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ResourcePrice{ResourceID: resourceID, Free: true}, nil
	}
	return price, err
}

// ResourceAccess reports whether the user may open the resource. A
// resource without a price row is free and open to everyone.
func (s *AuthService) ResourceAccess(ctx context.Context, userID int64, resourceID string) (bool, error) {
	price, err := s.store.GetResourcePrice(ctx, resourceID)
	if errors.Is(err, domain.ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	if price.Free || price.Price <= 0 {
		return true, nil
	}
	return s.store.HasPurchased(ctx, userID, resourceID)
}

// RecordPurchase stores a completed purchase for the user.
func (s *AuthService) RecordPurchase(ctx context.Context, userID int64, resourceID string, amount float64, paymentID string) (domain.Purchase, error) {
	if _, err := s.store.GetResourceByID(ctx, resourceID); err != nil {
		return domain.Purchase{}, err
	}
	return s.store.RecordPurchase(ctx, domain.Purchase{
		UserID:     userID,
		ResourceID: resourceID,
		Amount:     amount,
		PaymentID:  paymentID,
		Status:     "completed",
	})
}
