package models

import "time"

// RunMode is a specific run and enrollment mode of a course within a program.
type RunMode struct {
	ID                  int64     `json:"id" db:"id"`
	ProgramCourseCodeID int64     `json:"program_course_code_id" db:"program_course_code_id"`
	LMSURL              *string   `json:"lms_url,omitempty" db:"lms_url"`
	CourseKey           string    `json:"course_key" db:"course_key"`
	ModeSlug            ModeSlug  `json:"mode_slug" db:"mode_slug"`
	SKU                 *string   `json:"sku" db:"sku"`
	StartDate           time.Time `json:"start_date" db:"start_date"`
	CreatedAt           time.Time `json:"created" db:"created_at"`
	ModifiedAt          time.Time `json:"modified" db:"modified_at"`
}
