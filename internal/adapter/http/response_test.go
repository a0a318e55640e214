package http

import (
	"encoding/json"
	"errors"
	"fmt"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	domain "onboarding-service/internal/domain/submission"

	"github.com/labstack/echo/v4"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		code    int
		msg     string
		details int
	}{
		{"api error", badRequest("place_id is required"), 400, "place_id is required", 0},
		{"missing fields", domain.NewMissingFieldsError("user_name", "emp_position"), 400, "all fields are required", 2},
		{"wrapped validation", fmt.Errorf("submit: %w", &domain.ValidationError{Fields: []string{"user_image"}, Reason: domain.ErrEmptyFilename.Error()}), 400, "no file selected", 1},
		{"echo http error", echo.ErrStatusRequestEntityTooLarge, 413, stdhttp.StatusText(413), 0},
		{"persistence", fmt.Errorf("insert record: %w", errors.New("database is locked")), 500, "insert record: database is locked", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, msg, details := classify(tc.err)
			if code != tc.code || msg != tc.msg || len(details) != tc.details {
				t.Fatalf("classify = (%d, %q, %v), want (%d, %q, %d details)", code, msg, details, tc.code, tc.msg, tc.details)
			}
		})
	}

	_, _, details := classify(&domain.ValidationError{Fields: []string{"user_image"}, Reason: domain.ErrEmptyFilename.Error()})
	if details[0].Message != "no file selected" {
		t.Fatalf("empty filename detail = %q", details[0].Message)
	}
}

func newRenderingEcho(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	e.Renderer = r
	e.HTTPErrorHandler = NewErrorHandler(nil)
	return e
}

func TestErrorHandler_JSONOnAPIRoutes(t *testing.T) {
	e := newRenderingEcho(t)
	req := httptest.NewRequest(stdhttp.MethodPost, "/onboarding/api/submit", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	e.HTTPErrorHandler(errors.New("disk full"), c)

	if rec.Code != stdhttp.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("bad json: %v; raw=%s", err, rec.Body.String())
	}
	if env.Status != "error" || env.Message != "disk full" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestErrorHandler_HTMLOnPages(t *testing.T) {
	e := newRenderingEcho(t)
	req := httptest.NewRequest(stdhttp.MethodGet, "/onboarding/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	e.HTTPErrorHandler(badRequest(errPlaceIDRequired), c)

	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), errPlaceIDRequired) {
		t.Fatalf("page lacks message: %s", rec.Body.String())
	}
}

func TestErrorHandler_SkipsCommittedResponse(t *testing.T) {
	e := newRenderingEcho(t)
	req := httptest.NewRequest(stdhttp.MethodGet, "/onboarding/api/users/x", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = c.String(stdhttp.StatusOK, "partial")

	e.HTTPErrorHandler(errors.New("late"), c)

	if rec.Code != stdhttp.StatusOK || rec.Body.String() != "partial" {
		t.Fatalf("committed response was rewritten: %d %q", rec.Code, rec.Body.String())
	}
}
