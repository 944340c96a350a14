// Package storage provides blob-backed implementations of the domain storage services.
package storage

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"go.uber.org/fx"
	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
	"gocloud.dev/gcerrors"

	"passport/config"
	"passport/internal/domain/service"
	"passport/internal/errors"
)

// blobAvatarStore implements service.AvatarStore on top of a gocloud blob
// bucket. The default bucket is a local directory; the blob API keeps the
// door open for object storage without touching callers.
type blobAvatarStore struct {
	bucket *blob.Bucket
	logger *slog.Logger
}

// Params defines the dependencies for the avatar store.
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// NewAvatarStore opens the avatar bucket directory, creating it when absent.
func NewAvatarStore(params Params) (service.AvatarStore, error) {
	bucket, err := fileblob.OpenBucket(params.Config.AvatarPath(), &fileblob.Options{
		CreateDir: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open avatar bucket")
	}

	params.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return bucket.Close()
		},
	})

	return &blobAvatarStore{
		bucket: bucket,
		logger: params.Logger,
	}, nil
}

// Save writes the avatar bytes under "<accountID>_<sanitized filename>" and
// returns that object name. Uploading again for the same account and filename
// overwrites the previous object.
func (s *blobAvatarStore) Save(ctx context.Context, accountID string, filename string, contentType string, body io.Reader) (string, error) {
	name := accountID + "_" + sanitizeFilename(filename)

	writer, err := s.bucket.NewWriter(ctx, name, &blob.WriterOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to open avatar writer")
	}

	if _, err := io.Copy(writer, body); err != nil {
		// Close discards the partially written object on error.
		_ = writer.Close()

		return "", errors.Wrap(err, "failed to write avatar")
	}

	if err := writer.Close(); err != nil {
		return "", errors.Wrap(err, "failed to finalize avatar write")
	}

	s.logger.Debug("Stored avatar", slog.String("name", name))

	return name, nil
}

// Open returns a reader for a stored avatar and its content type.
func (s *blobAvatarStore) Open(ctx context.Context, name string) (io.ReadCloser, string, error) {
	reader, err := s.bucket.NewReader(ctx, name, nil)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, "", service.ErrAvatarNotFound
		}

		return nil, "", errors.Wrap(err, "failed to open avatar reader")
	}

	return reader, reader.ContentType(), nil
}

// Exists reports whether an avatar with the given name is stored.
func (s *blobAvatarStore) Exists(ctx context.Context, name string) (bool, error) {
	exists, err := s.bucket.Exists(ctx, name)
	if err != nil {
		return false, errors.Wrap(err, "failed to check avatar existence")
	}

	return exists, nil
}

// sanitizeFilename strips any path components and characters that could
// escape the bucket namespace from an uploaded filename.
func sanitizeFilename(filename string) string {
	base := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	base = strings.TrimLeft(base, ".")

	var cleaned strings.Builder
	cleaned.Grow(len(base))
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			cleaned.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			cleaned.WriteRune(r)
		default:
			cleaned.WriteRune('_')
		}
	}

	if cleaned.Len() == 0 {
		return "avatar"
	}

	return cleaned.String()
}
