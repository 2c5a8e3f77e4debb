package models

import "time"

// CourseCode is a course independent of run or mode.
type CourseCode struct {
	ID             int64         `json:"id" db:"id"`
	OrganizationID int64         `json:"organization_id" db:"organization_id"`
	Key            string        `json:"key" db:"key"`
	DisplayName    string        `json:"display_name" db:"display_name"`
	Organization   *Organization `json:"organization,omitempty"`
	CreatedAt      time.Time     `json:"created" db:"created_at"`
	ModifiedAt     time.Time     `json:"modified" db:"modified_at"`
}

// ProgramCourseCode is a course code placed at a position inside a program, together with
// the run modes offered for it in that program.
type ProgramCourseCode struct {
	ID           int64        `json:"id" db:"id"`
	ProgramID    int64        `json:"program_id" db:"program_id"`
	CourseCodeID int64        `json:"course_code_id" db:"course_code_id"`
	Position     int          `json:"position" db:"position"`
	DisplayName  string       `json:"display_name"`
	Key          string       `json:"key"`
	Organization Organization `json:"organization"`
	RunModes     []RunMode    `json:"run_modes"`
}
