package models

import "time"

// Organization offers programs and courses. The LMS is the source of truth; a minimal
// copy lives here to keep referential integrity.
type Organization struct {
	ID          int64     `json:"id" db:"id"`
	Key         string    `json:"key" db:"key"`
	DisplayName string    `json:"display_name" db:"display_name"`
	CreatedAt   time.Time `json:"created" db:"created_at"`
	ModifiedAt  time.Time `json:"modified" db:"modified_at"`
}
