package impl

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
	"go.uber.org/fx"

	deliverycontext "passport/internal/delivery/context"
	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/repository"
	"passport/internal/domain/service"
	"passport/internal/usecase"
)

// profileService implements the ProfileUsecase interface.
type profileService struct {
	accountRepo repository.AccountRepository
	avatarStore service.AvatarStore
	logger      *slog.Logger
}

// ProfileServiceParams holds dependencies for profileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	AccountRepo repository.AccountRepository
	AvatarStore service.AvatarStore
	Logger      *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	return &profileService{
		accountRepo: params.AccountRepo,
		avatarStore: params.AvatarStore,
		logger:      params.Logger,
	}
}

func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetProfile returns the resolved account as-is. The account was loaded by
// the identity gate on this same request, so no second read is needed.
func (srv *profileService) GetProfile(_ context.Context, account *entity.Account) (*entity.Account, error) {
	if account == nil {
		return nil, domainerrors.ErrUnauthorized.WrapMessage("no resolved account")
	}

	return account, nil
}

// UpdateProfile applies the submitted name/email changes and, when an avatar
// file is attached, stores it and records the stored object name.
func (srv *profileService) UpdateProfile(ctx context.Context, account *entity.Account, input *usecase.UpdateProfileInput) (*entity.Account, error) {
	if account == nil {
		return nil, domainerrors.ErrUnauthorized.WrapMessage("no resolved account")
	}

	srv.log(ctx).Info("Updating profile", slog.Any("accountID", account.ID))

	account.Name = input.Name
	account.Email = input.Email

	if input.Avatar != nil {
		storedName, err := srv.avatarStore.Save(ctx, account.ID.String(), input.Avatar.Filename, input.Avatar.ContentType, input.Avatar.Body)
		if err != nil {
			srv.log(ctx).Error("Failed to store avatar", slog.Any("accountID", account.ID), slog.Any("error", err))

			return nil, domainerrors.ErrAvatarStoreFailed.WrapMessage("failed to store avatar")
		}
		account.Avatar = &storedName
	}

	if err := srv.accountRepo.Update(ctx, account); err != nil {
		srv.log(ctx).Warn("Failed to update profile", slog.Any("accountID", account.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to update profile")
	}

	srv.log(ctx).Debug("Profile updated", slog.Any("accountID", account.ID))

	return account, nil
}
