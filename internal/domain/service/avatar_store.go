package service

import (
	"context"
	"io"

	"passport/internal/errors"
)

// ErrAvatarNotFound is returned by Open when no stored avatar matches the
// given name.
var ErrAvatarNotFound = errors.New("avatar not found")

// AvatarStore defines the interface for persisting and retrieving avatar images.
// Implementations decide where the bytes live (local directory, object storage).
type AvatarStore interface {
	// Save stores the avatar bytes under a name derived from the account ID
	// and the uploaded filename, and returns the stored object name.
	Save(ctx context.Context, accountID string, filename string, contentType string, body io.Reader) (string, error)

	// Open returns a reader for a previously stored avatar together with its
	// content type. The caller must close the reader.
	Open(ctx context.Context, name string) (io.ReadCloser, string, error)

	// Exists reports whether an avatar with the given name is stored.
	Exists(ctx context.Context, name string) (bool, error)
}
