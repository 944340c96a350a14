package impl

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "passport/internal/domain/errors"
	"passport/internal/usecase"
)

func newIdentityFixture(t *testing.T) (usecase.IdentityUsecase, usecase.AccountUsecase, *stubAccountRepo) {
	t.Helper()

	repo := newStubAccountRepo()
	hasher, tokenService := testServices(t)

	accounts := NewAccountService(AccountServiceParams{
		AccountRepo:  repo,
		Hasher:       hasher,
		TokenService: tokenService,
		Logger:       slog.Default(),
	})

	identity := NewIdentityService(IdentityServiceParams{
		AccountRepo:  repo,
		TokenService: tokenService,
		Logger:       slog.Default(),
	})

	return identity, accounts, repo
}

func TestIdentityService_ResolveValidToken(t *testing.T) {
	identity, accounts, _ := newIdentityFixture(t)
	ctx := context.Background()

	_, err := accounts.Register(ctx, &usecase.RegisterInput{
		Username: "ann", Name: "Ann", Email: "ann@x.com", Password: "Secret123",
	})
	require.NoError(t, err)

	login, err := accounts.Login(ctx, &usecase.LoginInput{Email: "ann@x.com", Password: "Secret123"})
	require.NoError(t, err)

	account, err := identity.Resolve(ctx, login.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "ann@x.com", account.Email)
	assert.Equal(t, "ann", account.Username)
}

func TestIdentityService_ResolveGarbageToken(t *testing.T) {
	identity, _, _ := newIdentityFixture(t)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		account, err := identity.Resolve(context.Background(), token)
		assert.Nil(t, account)
		assertAppError(t, err, domainerrors.ErrUnauthorized)
	}
}

func TestIdentityService_ResolveExpiredToken(t *testing.T) {
	identity, accounts, _ := newIdentityFixture(t)
	_, tokenService := testServices(t)
	ctx := context.Background()

	_, err := accounts.Register(ctx, &usecase.RegisterInput{
		Username: "ann", Name: "Ann", Email: "ann@x.com", Password: "Secret123",
	})
	require.NoError(t, err)

	expired, err := tokenService.IssueWithTTL("ann@x.com", -time.Minute)
	require.NoError(t, err)

	account, resolveErr := identity.Resolve(ctx, expired)
	assert.Nil(t, account)
	assertAppError(t, resolveErr, domainerrors.ErrUnauthorized)
}

func TestIdentityService_ResolveUnknownSubject(t *testing.T) {
	identity, _, _ := newIdentityFixture(t)
	_, tokenService := testServices(t)

	// Structurally valid token for an account that does not exist.
	orphan, err := tokenService.Issue("ghost@x.com")
	require.NoError(t, err)

	account, resolveErr := identity.Resolve(context.Background(), orphan)
	assert.Nil(t, account)

	// Indistinguishable from an invalid token at the interface.
	assertAppError(t, resolveErr, domainerrors.ErrUnauthorized)
}
