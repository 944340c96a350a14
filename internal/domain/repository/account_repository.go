// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"passport/internal/domain/entity"
)

// ErrAccountNotFound is returned when no account matches the lookup key.
// This allows the application layer to handle the outcome without depending
// on database-specific errors.
var ErrAccountNotFound = errors.New("account not found")

// AccountRepository defines the standard operations for account persistence.
type AccountRepository interface {
	// Create persists a new account. Uniqueness of username and email is
	// enforced by the storage layer; a violation surfaces as a conflict error.
	Create(ctx context.Context, account *entity.Account) error

	// FindByID retrieves a single account by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByEmail retrieves a single account by its email address.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// FindByUsername retrieves a single account by its username.
	FindByUsername(ctx context.Context, username string) (*entity.Account, error)

	// ExistsByEmailOrUsername reports whether any account already uses the
	// given email or username. Used as a best-effort pre-check before Create;
	// the database constraint remains the authority under concurrent writes.
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)

	// Update modifies an existing account's mutable fields.
	Update(ctx context.Context, account *entity.Account) error
}
