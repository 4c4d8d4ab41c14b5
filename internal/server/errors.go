package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorBody is the envelope of every error response.
type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Details string `json:"details,omitempty"`
}

// apiError carries a ready-made response through echo's error handler.
type apiError struct {
	Status int
	Body   ErrorBody
	Err    error
}

func (e *apiError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Body.Error, e.Err)
	}
	return e.Body.Error
}

func (e *apiError) Unwrap() error { return e.Err }

func writeError(status int, code, message string, err error) *apiError {
	return &apiError{Status: status, Body: ErrorBody{Error: code, Message: message}, Err: err}
}

func (e *apiError) withDetails(details string) *apiError {
	e.Body.Details = details
	return e
}

func errorHandler(logger *log.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		status := http.StatusInternalServerError
		body := ErrorBody{Error: "Internal server error", Message: err.Error()}

		var ae *apiError
		var he *echo.HTTPError
		switch {
		case errors.As(err, &ae):
			status, body = ae.Status, ae.Body
		case errors.As(err, &he):
			status = he.Code
			body = ErrorBody{Error: http.StatusText(he.Code), Message: fmt.Sprint(he.Message)}
		}

		req := c.Request()
		if status >= http.StatusInternalServerError {
			logger.Printf("%d %s %s from %s: %v", status, req.Method, req.URL.Path, c.RealIP(), err)
		}
		if req.Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, body)
	}
}
