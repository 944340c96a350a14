package storage

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/fileblob"

	"passport/internal/domain/service"
)

func newTestStore(t *testing.T) *blobAvatarStore {
	t.Helper()

	bucket, err := fileblob.OpenBucket(t.TempDir(), &fileblob.Options{CreateDir: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = bucket.Close() })

	return &blobAvatarStore{bucket: bucket, logger: slog.Default()}
}

func TestBlobAvatarStore_SaveAndOpen(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	name, err := store.Save(ctx, "account-1", "photo.png", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "account-1_photo.png", name)

	reader, contentType, err := store.Open(ctx, name)
	require.NoError(t, err)
	defer reader.Close()

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
	assert.Equal(t, "image/png", contentType)

	exists, err := store.Exists(ctx, name)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestBlobAvatarStore_OpenMissing(t *testing.T) {
	store := newTestStore(t)

	_, _, err := store.Open(context.Background(), "nobody_nothing.png")
	assert.ErrorIs(t, err, service.ErrAvatarNotFound)

	exists, err := store.Exists(context.Background(), "nobody_nothing.png")
	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"photo.png", "photo.png"},
		{"../../etc/passwd", "passwd"},
		{"..\\..\\evil.exe", "evil.exe"},
		{"my photo (1).png", "my_photo__1_.png"},
		{"....", "avatar"},
		{"", "avatar"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeFilename(tt.in), "input: %q", tt.in)
	}
}
