package models

import "time"

// Program is a bundled sequence of courses offered by an organization.
type Program struct {
	ID            int64               `json:"id" db:"id"`
	Name          string              `json:"name" db:"name"`
	Subtitle      string              `json:"subtitle" db:"subtitle"`
	MarketingSlug string              `json:"marketing_slug" db:"marketing_slug"`
	Status        ProgramStatus       `json:"status" db:"status"`
	Category      ProgramCategory     `json:"category" db:"category"`
	CreatedAt     time.Time           `json:"created" db:"created_at"`
	ModifiedAt    time.Time           `json:"modified" db:"modified_at"`
	Organizations []Organization      `json:"organizations"`
	CourseCodes   []ProgramCourseCode `json:"course_codes"`
}

// ProgramPatch carries the attributes changed by a partial update. Nil means untouched.
type ProgramPatch struct {
	Name          *string
	Subtitle      *string
	MarketingSlug *string
	Status        *ProgramStatus
	Category      *ProgramCategory
}

// Empty reports whether the patch changes nothing.
func (p ProgramPatch) Empty() bool {
	return p.Name == nil && p.Subtitle == nil && p.MarketingSlug == nil && p.Status == nil && p.Category == nil
}

// Apply copies the patched attributes onto program.
func (p ProgramPatch) Apply(program *Program) {
	if p.Name != nil {
		program.Name = *p.Name
	}
	if p.Subtitle != nil {
		program.Subtitle = *p.Subtitle
	}
	if p.MarketingSlug != nil {
		program.MarketingSlug = *p.MarketingSlug
	}
	if p.Status != nil {
		program.Status = *p.Status
	}
	if p.Category != nil {
		program.Category = *p.Category
	}
}

// ProgramFilter narrows program listings.
type ProgramFilter struct {
	Status   *ProgramStatus
	Category *ProgramCategory
}
