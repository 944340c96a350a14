// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	pkgerrors "github.com/pkg/errors"

	"passport/internal/delivery/http/middleware"
	"passport/internal/delivery/http/response"
	"passport/internal/domain/entity"
	"passport/internal/errors"
	"passport/internal/usecase"
)

// AccountHandler holds dependencies for account-related handlers.
type AccountHandler struct {
	accounts usecase.AccountUsecase
	profiles usecase.ProfileUsecase
	logger   *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(accounts usecase.AccountUsecase, profiles usecase.ProfileUsecase, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		accounts: accounts,
		profiles: profiles,
		logger:   logger,
	}
}

// profileResponse is the public view of an account. The password hash never
// leaves the service. Avatar stays in the payload as null when no avatar has
// been uploaded.
type profileResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Avatar    *string   `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newProfileResponse(account *entity.Account) profileResponse {
	return profileResponse{
		ID:        account.ID,
		Username:  account.Username,
		Name:      account.Name,
		Email:     account.Email,
		Avatar:    account.Avatar,
		CreatedAt: account.CreatedAt,
		UpdatedAt: account.UpdatedAt,
	}
}

// tokenResponse is the login response body.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Register handles the account registration request.
func (h *AccountHandler) Register(c echo.Context) error {
	var input *usecase.RegisterInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(input); err != nil {
		return pkgerrors.WithStack(err)
	}

	output, err := h.accounts.Register(c.Request().Context(), input)
	if err != nil {
		return pkgerrors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newProfileResponse(output.Account), "Account registered successfully")
}

// Login handles the credential verification and token issuance request.
func (h *AccountHandler) Login(c echo.Context) error {
	var input *usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(input); err != nil {
		return pkgerrors.WithStack(err)
	}

	output, err := h.accounts.Login(c.Request().Context(), input)
	if err != nil {
		return pkgerrors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, tokenResponse{
		AccessToken: output.AccessToken,
		TokenType:   output.TokenType,
	}, "Login successful")
}

// GetProfile returns the profile of the authenticated account.
func (h *AccountHandler) GetProfile(c echo.Context) error {
	account, err := h.profiles.GetProfile(c.Request().Context(), middleware.AccountFromContext(c))
	if err != nil {
		return pkgerrors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newProfileResponse(account), "Profile retrieved successfully")
}

// updateProfileForm carries the multipart fields of a profile update.
type updateProfileForm struct {
	Name  string `form:"name" validate:"required,max=100"`
	Email string `form:"email" validate:"required,email"`
}

// UpdateProfile handles the multipart profile update request. The avatar file
// part is optional; omitting it leaves the stored avatar untouched.
func (h *AccountHandler) UpdateProfile(c echo.Context) error {
	var form updateProfileForm
	if err := c.Bind(&form); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}
	if err := c.Validate(&form); err != nil {
		return pkgerrors.WithStack(err)
	}

	input := &usecase.UpdateProfileInput{
		Name:  form.Name,
		Email: form.Email,
	}

	fileHeader, err := c.FormFile("avatar")
	switch {
	case err == nil:
		src, openErr := fileHeader.Open()
		if openErr != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Could not read avatar file")
		}
		defer src.Close()

		input.Avatar = &usecase.AvatarUpload{
			Filename:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get(echo.HeaderContentType),
			Body:        src,
		}
	case missingAvatarPart(err):
		// No avatar part in the request.
	default:
		// Oversized or unreadable avatar parts fail the update rather than
		// silently succeeding without the avatar.
		return response.BadRequest(c, "INVALID_INPUT", "Could not read avatar file")
	}

	account, err := h.profiles.UpdateProfile(c.Request().Context(), middleware.AccountFromContext(c), input)
	if err != nil {
		return pkgerrors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newProfileResponse(account), "Profile updated successfully")
}

// missingAvatarPart reports whether a FormFile error just means the request
// carried no avatar part. Every other error, including an oversized part, is
// a real failure.
func missingAvatarPart(err error) bool {
	return errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart)
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
