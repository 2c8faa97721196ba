package http

import (
	"errors"
	"log/slog"
	"net/http"

	"printfarm/internal/adapters/out/postgres/pgerrors"
	"printfarm/internal/core/domain/model/order"
	"printfarm/internal/core/domain/model/product"
	"printfarm/internal/core/domain/services"
	"printfarm/internal/generated/servers"
	"printfarm/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// StatusCode maps an error returned by a use case to an HTTP status.
//
//	ObjectNotFound                          404
//	InsufficientStock, InvalidTransition,
//	VersionIsInvalid, duplicate code        409
//	UnsatisfiableFilamentRequirement        422
//	ValueIsInvalid/Required/OutOfRange      400
//	anything else                           500
func StatusCode(err error) int {
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, product.ErrInsufficientStock),
		errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, errs.ErrVersionIsInvalid),
		pgerrors.IsUniqueViolation(err):
		return http.StatusConflict
	case errors.Is(err, services.ErrUnsatisfiableFilamentRequirement):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ErrorHandler renders every error as servers.Error. Internal failures are
// logged and their text is not sent to the client.
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "http")

	return func(err error, ctx echo.Context) {
		if ctx.Response().Committed {
			return
		}

		code := StatusCode(err)
		message := err.Error()
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			if m, ok := httpErr.Message.(string); ok {
				message = m
			} else {
				message = http.StatusText(code)
			}
		}
		if code >= http.StatusInternalServerError {
			logger.ErrorContext(ctx.Request().Context(), "request failed",
				"method", ctx.Request().Method,
				"path", ctx.Path(),
				"error", err,
			)
			message = http.StatusText(code)
		}

		var writeErr error
		if ctx.Request().Method == http.MethodHead {
			writeErr = ctx.NoContent(code)
		} else {
			writeErr = ctx.JSON(code, servers.Error{Code: code, Message: message})
		}
		if writeErr != nil {
			logger.ErrorContext(ctx.Request().Context(), "failed to write error response", "error", writeErr)
		}
	}
}
