// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Account is the core entity in the system, representing a registered person.
// The ID is assigned at creation and never changes; username and email are
// each unique across all accounts.
type Account struct {
	ID           uuid.UUID // The Global Unique Identifier (GUID) for the account.
	Username     string    // The unique handle chosen at registration.
	Email        string    // The unique email address, also the login identifier and token subject.
	Name         string    // The display name shown on the profile.
	PasswordHash string    // The argon2id-encoded password hash. The plaintext is never stored.
	Avatar       *string   // Stored avatar object name, nil when no avatar has been uploaded.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this account.
}

// HasAvatar reports whether the account has an uploaded avatar.
func (a *Account) HasAvatar() bool {
	return a.Avatar != nil && *a.Avatar != ""
}
