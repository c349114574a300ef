package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"tableside/internal/adapters/out/postgres"
	"tableside/internal/core/application/auth"
	"tableside/internal/core/application/usecases/commands"
	"tableside/internal/core/domain/model/order"
	"tableside/internal/pkg/errs"
)

// respondError translates application errors into the JSON error envelope.
// Expected rejections map to their 4xx status; anything unrecognized is a
// 500 and the only class that gets logged.
func (s *Server) respondError(ctx echo.Context, err error) error {
	var unavailable *commands.ItemsUnavailableError
	if errors.As(err, &unavailable) {
		ids := make([]string, len(unavailable.ItemIDs))
		for i, id := range unavailable.ItemIDs {
			ids[i] = id.String()
		}
		return ctx.JSON(http.StatusUnprocessableEntity, Error{
			Code:    http.StatusUnprocessableEntity,
			Message: commands.ErrItemsUnavailable.Error(),
			Details: ids,
		})
	}

	switch {
	case errors.Is(err, commands.ErrOrderTooLarge),
		errors.Is(err, commands.ErrTableAtCapacity):
		return s.errorJSON(ctx, http.StatusUnprocessableEntity, err)

	case errors.Is(err, errs.ErrObjectNotFound):
		return s.errorJSON(ctx, http.StatusNotFound, err)

	case errors.Is(err, commands.ErrForbidden):
		return s.errorJSON(ctx, http.StatusForbidden, err)

	case errors.Is(err, order.ErrAlreadyTerminal),
		errors.Is(err, order.ErrNotCancellable),
		errors.Is(err, commands.ErrOrderNotDeletable):
		return s.errorJSON(ctx, http.StatusConflict, err)

	case errors.Is(err, auth.ErrInvalidPin),
		errors.Is(err, auth.ErrInvalidPassword),
		errors.Is(err, auth.ErrSessionNotFound),
		errors.Is(err, auth.ErrSessionExpired),
		errors.Is(err, auth.ErrSessionRevoked):
		return s.errorJSON(ctx, http.StatusUnauthorized, err)

	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return s.errorJSON(ctx, http.StatusBadRequest, err)

	case postgres.IsSerializationFailure(err):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: "request conflicted with a concurrent change, please retry",
		})
	}

	s.log.Error("request failed", "error", err)
	return ctx.JSON(http.StatusInternalServerError, Error{
		Code:    http.StatusInternalServerError,
		Message: "internal error",
	})
}

func (s *Server) errorJSON(ctx echo.Context, status int, err error) error {
	return ctx.JSON(status, Error{Code: status, Message: err.Error()})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
