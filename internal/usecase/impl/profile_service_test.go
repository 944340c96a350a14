package impl

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/service"
	"passport/internal/usecase"
)

// stubAvatarStore records saved avatars in memory.
type stubAvatarStore struct {
	saved map[string]string
}

func newStubAvatarStore() *stubAvatarStore {
	return &stubAvatarStore{saved: make(map[string]string)}
}

func (s *stubAvatarStore) Save(_ context.Context, accountID, filename, _ string, body io.Reader) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}

	name := accountID + "_" + filename
	s.saved[name] = string(data)

	return name, nil
}

func (s *stubAvatarStore) Open(_ context.Context, name string) (io.ReadCloser, string, error) {
	data, ok := s.saved[name]
	if !ok {
		return nil, "", service.ErrAvatarNotFound
	}

	return io.NopCloser(strings.NewReader(data)), "application/octet-stream", nil
}

func (s *stubAvatarStore) Exists(_ context.Context, name string) (bool, error) {
	_, ok := s.saved[name]

	return ok, nil
}

func newProfileFixture(t *testing.T) (usecase.ProfileUsecase, *stubAccountRepo, *stubAvatarStore, *entity.Account) {
	t.Helper()

	repo := newStubAccountRepo()
	store := newStubAvatarStore()

	profiles := NewProfileService(ProfileServiceParams{
		AccountRepo: repo,
		AvatarStore: store,
		Logger:      slog.Default(),
	})

	account := &entity.Account{
		Username:     "ann",
		Name:         "Ann",
		Email:        "ann@x.com",
		PasswordHash: "$argon2id$stub",
	}
	require.NoError(t, repo.Create(context.Background(), account))

	return profiles, repo, store, account
}

func TestProfileService_GetProfile(t *testing.T) {
	profiles, _, _, account := newProfileFixture(t)

	got, err := profiles.GetProfile(context.Background(), account)
	require.NoError(t, err)
	assert.Equal(t, account.Email, got.Email)
	assert.Nil(t, got.Avatar)

	_, err = profiles.GetProfile(context.Background(), nil)
	assertAppError(t, err, domainerrors.ErrUnauthorized)
}

func TestProfileService_UpdateNameAndEmail(t *testing.T) {
	profiles, repo, _, account := newProfileFixture(t)
	ctx := context.Background()

	updated, err := profiles.UpdateProfile(ctx, account, &usecase.UpdateProfileInput{
		Name:  "Ann B.",
		Email: "ann.b@x.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ann B.", updated.Name)
	assert.Equal(t, "ann.b@x.com", updated.Email)
	assert.Nil(t, updated.Avatar)

	stored, err := repo.FindByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, "ann.b@x.com", stored.Email)
}

func TestProfileService_UpdateWithAvatar(t *testing.T) {
	profiles, repo, store, account := newProfileFixture(t)
	ctx := context.Background()

	updated, err := profiles.UpdateProfile(ctx, account, &usecase.UpdateProfileInput{
		Name:  account.Name,
		Email: account.Email,
		Avatar: &usecase.AvatarUpload{
			Filename:    "photo.png",
			ContentType: "image/png",
			Body:        strings.NewReader("png-bytes"),
		},
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Avatar)
	assert.Equal(t, account.ID.String()+"_photo.png", *updated.Avatar)

	exists, err := store.Exists(ctx, *updated.Avatar)
	require.NoError(t, err)
	assert.True(t, exists)

	stored, err := repo.FindByID(ctx, account.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Avatar)
	assert.Equal(t, *updated.Avatar, *stored.Avatar)
}

func TestProfileService_UpdateEmailConflict(t *testing.T) {
	profiles, repo, _, account := newProfileFixture(t)
	ctx := context.Background()

	other := &entity.Account{
		Username:     "bob",
		Name:         "Bob",
		Email:        "bob@x.com",
		PasswordHash: "$argon2id$stub",
	}
	require.NoError(t, repo.Create(ctx, other))

	_, err := profiles.UpdateProfile(ctx, account, &usecase.UpdateProfileInput{
		Name:  account.Name,
		Email: "bob@x.com",
	})
	assertAppError(t, err, domainerrors.ErrAccountAlreadyExists)
}
