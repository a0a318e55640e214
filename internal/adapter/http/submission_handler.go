package http

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"

	domain "onboarding-service/internal/domain/submission"
	"onboarding-service/internal/infrastructure/export"
	"onboarding-service/internal/infrastructure/storage"
	"onboarding-service/internal/usecase/submission"

	"github.com/labstack/echo/v4"
)

const mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type SubmissionHandler struct{ uc *submission.Usecase }

func NewSubmissionHandler(uc *submission.Usecase) *SubmissionHandler {
	return &SubmissionHandler{uc: uc}
}

type submitReq struct {
	PlaceID     string `form:"place_id" validate:"required,notblank,max=255"`
	UserName    string `form:"user_name" validate:"required,notblank,max=255"`
	UserSurname string `form:"user_surname" validate:"required,notblank,max=255"`
	EmpPosition string `form:"emp_position" validate:"required,notblank,max=255"`
}

func (h *SubmissionHandler) Submit(c echo.Context) error {
	// no part, or a body that is not multipart at all
	fh, err := c.FormFile("user_image")
	if err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return he
		}
		return &domain.ValidationError{Fields: []string{"user_image"}, Reason: domain.ErrMissingImage.Error()}
	}

	var req submitReq
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid form")
	}
	if err := c.Validate(&req); err != nil {
		fe := ToFieldErrors(err)
		if missing := missingFields(fe); len(missing) > 0 {
			return badRequest(domain.NewMissingFieldsError(missing...).Reason, fe...)
		}
		return badRequest("invalid form", fe...)
	}

	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	dto, err := h.uc.Submit(c.Request().Context(), submission.SubmitInput{
		PlaceID:       req.PlaceID,
		UserName:      req.UserName,
		UserSurname:   req.UserSurname,
		EmpPosition:   req.EmpPosition,
		Image:         f,
		ImageFilename: fh.Filename,
	})
	if err != nil {
		return err
	}
	return respondOK(c, "onboarding data saved", dto)
}

// placeParam returns place_id decoded. echo routes on RawPath when the
// request has one (e.g. an escaped slash) and then hands back escaped params.
func placeParam(c echo.Context) (string, error) {
	v := c.Param("place_id")
	if c.Request().URL.RawPath == "" {
		return v, nil
	}
	placeID, err := url.PathUnescape(v)
	if err != nil {
		return "", badRequest("invalid place_id")
	}
	return placeID, nil
}

func (h *SubmissionHandler) ListByPlace(c echo.Context) error {
	placeID, err := placeParam(c)
	if err != nil {
		return err
	}
	list, err := h.uc.ListByPlace(c.Request().Context(), placeID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (h *SubmissionHandler) Export(c echo.Context) error {
	placeID, err := placeParam(c)
	if err != nil {
		return err
	}
	records, err := h.uc.Records(c.Request().Context(), placeID)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, records); err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		`attachment; filename="users_`+storage.SecureFilename(placeID)+`.xlsx"`)
	return c.Blob(http.StatusOK, mimeXLSX, buf.Bytes())
}
