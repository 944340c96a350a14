package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	pkgerrors "github.com/pkg/errors"

	deliverycontext "passport/internal/delivery/context"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/service"
	"passport/internal/errors"
)

// AvatarHandler serves previously uploaded avatar images.
type AvatarHandler struct {
	store  service.AvatarStore
	logger *slog.Logger
}

// NewAvatarHandler is the constructor for AvatarHandler, injected by Fx.
func NewAvatarHandler(store service.AvatarStore, logger *slog.Logger) *AvatarHandler {
	return &AvatarHandler{
		store:  store,
		logger: logger,
	}
}

// Get streams a stored avatar by its object name.
func (h *AvatarHandler) Get(c echo.Context) error {
	name := c.Param("name")

	reader, contentType, err := h.store.Open(c.Request().Context(), name)
	if err != nil {
		if errors.Is(err, service.ErrAvatarNotFound) {
			return domainerrors.ErrAvatarNotFound.WrapMessage(name)
		}

		return pkgerrors.WithStack(err)
	}
	defer func() {
		if closeErr := reader.Close(); closeErr != nil {
			logger := deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger)
			logger.Warn("Failed to close avatar reader", slog.Any("error", closeErr))
		}
	}()

	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}

	return c.Stream(http.StatusOK, contentType, reader)
}
