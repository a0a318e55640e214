package http

import (
	"errors"
	"fmt"
	"net/http"

	domain "onboarding-service/internal/domain/submission"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Envelope is the JSON body of every submit response and of API errors.
type Envelope struct {
	Status  string       `json:"status"`
	Message string       `json:"message,omitempty"`
	Data    any          `json:"data,omitempty"`
	Details []FieldError `json:"details,omitempty"`
}

// apiError carries a status code chosen by a handler.
type apiError struct {
	Code    int
	Message string
	Details []FieldError
}

func (e *apiError) Error() string { return e.Message }

func badRequest(msg string, details ...FieldError) error {
	return &apiError{Code: http.StatusBadRequest, Message: msg, Details: details}
}

type errorPage struct {
	Code    int
	Message string
}

func respondOK(c echo.Context, msg string, data any) error {
	return c.JSON(http.StatusOK, Envelope{Status: statusSuccess, Message: msg, Data: data})
}

// classify maps an error to status, message and field details.
// Anything unrecognised is a persistence failure and keeps its text.
func classify(err error) (int, string, []FieldError) {
	var (
		ae *apiError
		ve *domain.ValidationError
		he *echo.HTTPError
	)
	switch {
	case errors.As(err, &ae):
		return ae.Code, ae.Message, ae.Details
	case errors.As(err, &ve):
		detail := "is required"
		if ve.Reason == domain.ErrEmptyFilename.Error() {
			detail = ve.Reason
		}
		details := make([]FieldError, 0, len(ve.Fields))
		for _, f := range ve.Fields {
			details = append(details, FieldError{Field: f, Message: detail})
		}
		return http.StatusBadRequest, ve.Reason, details
	case errors.As(err, &he):
		return he.Code, fmt.Sprint(he.Message), nil
	default:
		return http.StatusInternalServerError, err.Error(), nil
	}
}

// NewErrorHandler renders errors as JSON envelopes on API routes and as the
// HTML error page everywhere else.
func NewErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		code, msg, details := classify(err)
		if code >= http.StatusInternalServerError {
			log.Error("request failed", zap.String("path", c.Request().URL.Path), zap.Error(err))
		}

		var werr error
		switch {
		case c.Request().Method == http.MethodHead:
			werr = c.NoContent(code)
		case c.Echo().Renderer != nil && !isAPIPath(c.Request().URL.Path):
			werr = c.Render(code, "error.html", errorPage{Code: code, Message: msg})
		default:
			werr = c.JSON(code, Envelope{Status: statusError, Message: msg, Details: details})
		}
		if werr != nil {
			log.Warn("write error response", zap.Error(werr))
		}
	}
}
