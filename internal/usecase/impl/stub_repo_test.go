package impl

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/repository"
)

// stubAccountRepo is an in-memory AccountRepository used by the service tests.
// It enforces email/username uniqueness the way the real constraints do.
type stubAccountRepo struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]*entity.Account
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{accounts: make(map[uuid.UUID]*entity.Account)}
}

func (r *stubAccountRepo) Create(_ context.Context, account *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.accounts {
		if strings.EqualFold(existing.Email, account.Email) || existing.Username == account.Username {
			return domainerrors.ErrAccountAlreadyExists.WrapMessage("email or username already exists")
		}
	}

	account.ID = uuid.New()
	copied := *account
	r.accounts[account.ID] = &copied

	return nil
}

func (r *stubAccountRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	copied := *account

	return &copied, nil
}

func (r *stubAccountRepo) FindByEmail(_ context.Context, email string) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, account := range r.accounts {
		if strings.EqualFold(account.Email, email) {
			copied := *account

			return &copied, nil
		}
	}

	return nil, repository.ErrAccountNotFound
}

func (r *stubAccountRepo) FindByUsername(_ context.Context, username string) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, account := range r.accounts {
		if account.Username == username {
			copied := *account

			return &copied, nil
		}
	}

	return nil, repository.ErrAccountNotFound
}

func (r *stubAccountRepo) ExistsByEmailOrUsername(_ context.Context, email, username string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, account := range r.accounts {
		if strings.EqualFold(account.Email, email) || account.Username == username {
			return true, nil
		}
	}

	return false, nil
}

func (r *stubAccountRepo) Update(_ context.Context, account *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[account.ID]; !ok {
		return repository.ErrAccountNotFound
	}

	for id, existing := range r.accounts {
		if id == account.ID {
			continue
		}
		if strings.EqualFold(existing.Email, account.Email) || existing.Username == account.Username {
			return domainerrors.ErrAccountAlreadyExists.WrapMessage("email or username already exists")
		}
	}

	copied := *account
	r.accounts[account.ID] = &copied

	return nil
}
