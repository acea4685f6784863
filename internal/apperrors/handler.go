package apperrors

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// HTTPErrorHandler renders application errors with their status and logs
// everything the handlers did not classify.
func HTTPErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		body := &Error{Kind: "INTERNAL_ERROR", Message: http.StatusText(http.StatusInternalServerError)}

		var appErr *Error
		var httpErr *echo.HTTPError
		switch {
		case errors.As(err, &appErr):
			status = appErr.Kind.StatusCode()
			body = appErr
		case errors.As(err, &httpErr):
			status = httpErr.Code
			body = &Error{Kind: Kind(http.StatusText(status)), Message: http.StatusText(status)}
			if msg, ok := httpErr.Message.(string); ok {
				body.Message = msg
			}
		default:
			log.Error("Unhandled request error",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
			)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, echo.Map{"success": false, "error": body})
		}
		if writeErr != nil {
			log.Warn("Failed to write error response", zap.Error(writeErr))
		}
	}
}
