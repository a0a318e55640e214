package submission

import (
	"io"
	"time"

	domain "onboarding-service/internal/domain/submission"
)

type SubmitInput struct {
	PlaceID     string
	UserName    string
	UserSurname string
	EmpPosition string

	Image         io.Reader
	ImageFilename string // client-side name; only checked for presence
}

type RecordDTO struct {
	ID          uint64    `json:"id"`
	PlaceID     string    `json:"place_id"`
	UserName    string    `json:"user_name"`
	UserSurname string    `json:"user_surname"`
	EmpPosition string    `json:"emp_position"`
	UserImage   *string   `json:"user_image"`
	CreatedAt   time.Time `json:"created_at"`
	CheckinAt   time.Time `json:"checkin_at"`
}

func toDTO(r domain.Record) RecordDTO {
	return RecordDTO{
		ID:          r.ID,
		PlaceID:     r.PlaceID,
		UserName:    r.UserName,
		UserSurname: r.UserSurname,
		EmpPosition: r.EmpPosition,
		UserImage:   r.UserImage,
		CreatedAt:   r.CreatedAt,
		CheckinAt:   r.CheckinAt,
	}
}
