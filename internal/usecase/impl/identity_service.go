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

// identityService implements the IdentityUsecase interface.
// Every protected request goes through Resolve; nothing is cached between
// calls, so deleting an account immediately invalidates its tokens.
type identityService struct {
	accountRepo  repository.AccountRepository
	tokenService service.TokenService
	logger       *slog.Logger
}

// IdentityServiceParams holds dependencies for identityService, injected by Fx.
type IdentityServiceParams struct {
	fx.In

	AccountRepo  repository.AccountRepository
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewIdentityService is the constructor for identityService.
func NewIdentityService(params IdentityServiceParams) usecase.IdentityUsecase {
	return &identityService{
		accountRepo:  params.AccountRepo,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

func (srv *identityService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Resolve validates the token and loads the account named by its subject.
// A structurally valid token for a vanished account fails exactly like an
// invalid token; the caller never learns which check rejected the request.
// The internal log entries do distinguish the causes for operators.
func (srv *identityService) Resolve(ctx context.Context, token string) (*entity.Account, error) {
	subject, err := srv.tokenService.Validate(token)
	if err != nil {
		srv.log(ctx).Debug("Token validation failed", slog.Any("error", err))

		return nil, domainerrors.ErrUnauthorized.WrapMessage("token validation failed")
	}

	account, err := srv.accountRepo.FindByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			srv.log(ctx).Debug("Token subject has no matching account", slog.String("subject", subject))

			return nil, domainerrors.ErrUnauthorized.WrapMessage("token subject not found")
		}

		return nil, errors.Wrap(err, "failed to load account for token subject")
	}

	return account, nil
}
