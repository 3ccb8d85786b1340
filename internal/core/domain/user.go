package domain

import "time"

// User is an account that can sign in and keep chat history.
type User struct {
	// ID is the row identifier assigned by the store.
	ID int64

	// Email is the lowercased account email. Unique.
	Email string

	// PasswordHash is the bcrypt hash of the password. Empty for
	// accounts created through an external identity provider.
	PasswordHash string

	// DisplayName is an optional friendly name.
	DisplayName string

	// CreatedAt is when the account was created.
	CreatedAt time.Time

	// LastLogin is the most recent successful login.
	LastLogin *time.Time
}

// Purchase records that a user bought access to a resource.
type Purchase struct {
	ID         int64
	UserID     int64
	ResourceID string
	Amount     float64
	PaymentID  string
	Status     string
	CreatedAt  time.Time
}

// ResourcePrice is the optional price attached to a resource.
// Resources without a price row are free.
type ResourcePrice struct {
	ResourceID string
	Price      float64
	Currency   string
	Free       bool
}
