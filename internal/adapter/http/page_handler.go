package http

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	OnboardingPath = "/onboarding/"
	SubmitPath     = "/onboarding/api/submit"

	errPlaceIDRequired = "place_id is required"
)

type PageHandler struct{ log *zap.Logger }

func NewPageHandler(log *zap.Logger) *PageHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &PageHandler{log: log}
}

type formPage struct {
	PlaceID   string
	SubmitURL string
}

func (h *PageHandler) placeID(c echo.Context) (string, error) {
	placeID := c.QueryParam("place_id")
	if strings.TrimSpace(placeID) == "" {
		h.log.Warn("page requested without place_id", zap.String("path", c.Request().URL.Path), zap.String("ip", c.RealIP()))
		return "", badRequest(errPlaceIDRequired)
	}
	return placeID, nil
}

// Root sends the browser on to the onboarding page for the same place.
func (h *PageHandler) Root(c echo.Context) error {
	placeID, err := h.placeID(c)
	if err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, OnboardingPath+"?place_id="+url.QueryEscape(placeID))
}

func (h *PageHandler) OnboardingNoSlash(c echo.Context) error {
	target := OnboardingPath
	if q := c.Request().URL.RawQuery; q != "" {
		target += "?" + q
	}
	return c.Redirect(http.StatusMovedPermanently, target)
}

func (h *PageHandler) Onboarding(c echo.Context) error {
	placeID, err := h.placeID(c)
	if err != nil {
		return err
	}
	h.log.Info("onboarding page", zap.String("place_id", placeID), zap.String("ip", c.RealIP()))
	return c.Render(http.StatusOK, "index.html", formPage{PlaceID: placeID, SubmitURL: SubmitPath})
}
