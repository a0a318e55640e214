package submission

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrMissingImage  = errors.New("user_image is required")
	ErrEmptyFilename = errors.New("no file selected")
)

// Table: users. One row per onboarding event; rows are never updated or deleted.
type Record struct {
	ID          uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PlaceID     string    `gorm:"column:place_id;size:255;not null;index:idx_users_place_id" json:"place_id"`
	UserName    string    `gorm:"column:user_name;size:255;not null" json:"user_name"`
	UserSurname string    `gorm:"column:user_surname;size:255;not null" json:"user_surname"`
	EmpPosition string    `gorm:"column:emp_position;size:255;not null" json:"emp_position"`
	UserImage   *string   `gorm:"column:user_image;size:512" json:"user_image"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	CheckinAt   time.Time `gorm:"column:checkin_at;not null" json:"checkin_at"`
}

func (Record) TableName() string { return "users" }

// ImageName returns the stored filename or "" when the row has none.
func (r Record) ImageName() string {
	if r.UserImage == nil {
		return ""
	}
	return *r.UserImage
}

// ValidationError lists the offending fields of a rejected submission.
type ValidationError struct {
	Fields []string
	Reason string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Reason
	}
	return e.Reason + ": " + strings.Join(e.Fields, ", ")
}

func NewMissingFieldsError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields, Reason: "all fields are required"}
}
