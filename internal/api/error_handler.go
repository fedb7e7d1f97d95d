package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/mernspace/auth-service/internal/service"
	"github.com/mernspace/auth-service/internal/util"
)

type ErrorEntry struct {
	Ref      string `json:"ref"`
	Type     string `json:"type"`
	Msg      string `json:"msg"`
	Path     string `json:"path"`
	Location string `json:"location"`
}

type ErrorResponse struct {
	Errors []ErrorEntry `json:"errors"`
}

// ErrorHandler renders every failure as the standard error envelope. Server
// faults get a correlation ref in the body and the real error in the log;
// internal detail never reaches the client.
func ErrorHandler(log *zap.SugaredLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		entry := ErrorEntry{
			Ref:      uuid.NewString(),
			Path:     c.Request().URL.Path,
			Location: "server",
		}
		status := http.StatusInternalServerError

		var apiErr *util.APIError
		var httpErr *echo.HTTPError
		switch {
		case errors.As(err, &apiErr):
			status = apiErr.Status
			entry.Type = apiErr.Type
			entry.Msg = apiErr.Msg
			entry.Location = apiErr.Location
		case isUnauthorizedTokenError(err):
			status = http.StatusUnauthorized
			entry.Type = util.ErrTypeUnauthenticated
			entry.Msg = "Invalid or expired token"
			entry.Location = "cookies"
		case errors.As(err, &httpErr):
			status = httpErr.Code
			entry.Type = typeForStatus(httpErr.Code)
			entry.Msg = fmt.Sprintf("%v", httpErr.Message)
			if status == http.StatusUnauthorized {
				entry.Location = "cookies"
			}
		default:
			entry.Type = util.ErrTypeStore
			entry.Msg = "Internal server error"
		}

		if status >= http.StatusInternalServerError {
			entry.Msg = "Internal server error"
			log.Errorw("request failed",
				"ref", entry.Ref,
				"error", err,
				"uri", c.Request().RequestURI,
			)
		}

		if err := c.JSON(status, ErrorResponse{Errors: []ErrorEntry{entry}}); err != nil {
			log.Errorw("failed to write json response", "error", err)
		}
	}
}

func isUnauthorizedTokenError(err error) bool {
	return errors.Is(err, service.ErrTokenExpired) ||
		errors.Is(err, service.ErrTokenInvalid)
}

func typeForStatus(code int) string {
	switch code {
	case http.StatusBadRequest:
		return util.ErrTypeValidation
	case http.StatusUnauthorized:
		return util.ErrTypeUnauthenticated
	case http.StatusForbidden:
		return util.ErrTypeForbidden
	case http.StatusNotFound:
		return util.ErrTypeNotFound
	case http.StatusTooManyRequests:
		return "RateLimited"
	default:
		return util.ErrTypeStore
	}
}
