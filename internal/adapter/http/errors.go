package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"schoolsite-backend/internal/domain/application"
	"schoolsite-backend/internal/domain/child"
	"schoolsite-backend/internal/domain/job"
	"schoolsite-backend/internal/domain/sponsorship"
	"schoolsite-backend/internal/infrastructure/logger"
	"schoolsite-backend/internal/usecase/auth"
	sponsorshipuc "schoolsite-backend/internal/usecase/sponsorship"
	"schoolsite-backend/internal/usecase/upload"
)

const msgInternal = "internal error"

// statusFor maps domain errors to HTTP codes. Anything unknown is a 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, job.ErrNotFound),
		errors.Is(err, job.ErrCategoryNotFound),
		errors.Is(err, application.ErrNotFound),
		errors.Is(err, child.ErrNotFound),
		errors.Is(err, sponsorship.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, application.ErrJobClosed),
		errors.Is(err, application.ErrInvalidTransition),
		errors.Is(err, sponsorship.ErrDuplicateTransaction):
		return http.StatusConflict
	case errors.Is(err, upload.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, upload.ErrUnsupportedType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, job.ErrInvalid),
		errors.Is(err, application.ErrInvalid),
		errors.Is(err, application.ErrInvalidStatus),
		errors.Is(err, child.ErrInvalid),
		errors.Is(err, sponsorship.ErrInvalid),
		errors.Is(err, upload.ErrInvalid),
		errors.Is(err, sponsorshipuc.ErrInvalidPayload),
		errors.Is(err, sponsorshipuc.ErrUnknownChild):
		return http.StatusUnprocessableEntity
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, auth.ErrUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// respondError writes the mapped status. Server-side failures are logged and never echoed.
func respondError(c echo.Context, log *logger.Logger, err error) error {
	code := statusFor(err)
	switch code {
	case http.StatusInternalServerError:
		log.Error("request failed", "method", c.Request().Method, "path", c.Path(), "error", err)
		return c.JSON(code, ErrorResponse{Error: msgInternal})
	case http.StatusServiceUnavailable:
		log.Error("dependency unavailable", "path", c.Path(), "error", err)
		return c.JSON(code, ErrorResponse{Error: "service unavailable"})
	}
	return c.JSON(code, ErrorResponse{Error: err.Error()})
}

// badQuery reports rejected query parameters as 400 instead of 422.
func badQuery(c echo.Context, log *logger.Logger, err error) error {
	if code := statusFor(err); code == http.StatusUnprocessableEntity {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	return respondError(c, log, err)
}

func invalidBody(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
}

func validationFailed(c echo.Context, err error) error {
	return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "validation failed",
		Details: ToFieldErrors(err),
	})
}

// bindAndValidate binds the body into req and runs the registered validator.
// When ok is false the error response has already been written.
func bindAndValidate(c echo.Context, req any) (ok bool, err error) {
	if err := c.Bind(req); err != nil {
		return false, invalidBody(c)
	}
	if err := c.Validate(req); err != nil {
		return false, validationFailed(c, err)
	}
	return true, nil
}

// NewHTTPErrorHandler renders errors that escape handlers, including echo's own
// (unknown route, body limit), in the shared error shape.
func NewHTTPErrorHandler(log *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		code := http.StatusInternalServerError
		msg := msgInternal
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			if s, ok := he.Message.(string); ok {
				msg = s
			} else {
				msg = http.StatusText(code)
			}
		} else if code = statusFor(err); code < http.StatusInternalServerError {
			msg = err.Error()
		} else {
			msg = msgInternal
		}
		if code >= http.StatusInternalServerError {
			log.Error("unhandled error", "method", c.Request().Method, "path", c.Path(), "error", err)
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(code)
		} else {
			werr = c.JSON(code, ErrorResponse{Error: msg})
		}
		if werr != nil {
			log.Warn("error response not written", "error", werr)
		}
	}
}
