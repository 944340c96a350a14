// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"io"

	"passport/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=1024"`
}

// LoginInput defines the data required to authenticate.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AvatarUpload carries an uploaded avatar file into the profile usecase.
type AvatarUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// UpdateProfileInput defines the data required to update a profile.
// Avatar is optional; nil leaves the stored avatar untouched.
type UpdateProfileInput struct {
	Name   string
	Email  string
	Avatar *AvatarUpload
}

// --- Output DTOs ---

// RegisterOutput returns the newly created account.
type RegisterOutput struct {
	Account *entity.Account
}

// LoginOutput returns the issued bearer token after a successful login.
type LoginOutput struct {
	AccessToken string
	TokenType   string
}

// AccountUsecase defines the interface for registration and login.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AccountUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
}

// IdentityUsecase resolves a bearer token to the account it identifies.
// It is the sole admission gate for protected operations: token validation and
// the account lookup happen on every call, with no caching in between.
type IdentityUsecase interface {
	Resolve(ctx context.Context, token string) (*entity.Account, error)
}

// ProfileUsecase defines the interface for profile read and update operations.
// Callers pass the already-resolved account; the usecase never re-derives
// identity from ambient state.
type ProfileUsecase interface {
	GetProfile(ctx context.Context, account *entity.Account) (*entity.Account, error)
	UpdateProfile(ctx context.Context, account *entity.Account, input *UpdateProfileInput) (*entity.Account, error)
}
