package models

// RoleType defines the role carried by a user
type RoleType string

const (
	RoleAdmin RoleType = "ADMIN"
	RoleStaff RoleType = "STAFF"
)

// ProgramStatus is the lifecycle status of a program
type ProgramStatus string

const (
	ProgramStatusUnpublished ProgramStatus = "unpublished"
	ProgramStatusActive      ProgramStatus = "active"
	ProgramStatusRetired     ProgramStatus = "retired"
	ProgramStatusDeleted     ProgramStatus = "deleted"
)

// Valid reports whether s is one of the known statuses.
func (s ProgramStatus) Valid() bool {
	switch s {
	case ProgramStatusUnpublished, ProgramStatusActive, ProgramStatusRetired, ProgramStatusDeleted:
		return true
	}
	return false
}

// ProgramCategory is the category / type of a program
type ProgramCategory string

const (
	ProgramCategoryXSeries      ProgramCategory = "XSeries"
	ProgramCategoryMicroMasters ProgramCategory = "MicroMasters"
)

// Valid reports whether c is one of the known categories.
func (c ProgramCategory) Valid() bool {
	return c == ProgramCategoryXSeries || c == ProgramCategoryMicroMasters
}

// ModeSlug identifies an enrollment mode in the LMS
type ModeSlug string

const (
	ModeAudit            ModeSlug = "audit"
	ModeHonor            ModeSlug = "honor"
	ModeVerified         ModeSlug = "verified"
	ModeProfessional     ModeSlug = "professional"
	ModeNoIDProfessional ModeSlug = "no-id-professional"
	ModeCredit           ModeSlug = "credit"
)

// ModeSlugs lists the known modes in display order.
var ModeSlugs = []ModeSlug{ModeAudit, ModeHonor, ModeVerified, ModeProfessional, ModeNoIDProfessional, ModeCredit}

// Valid reports whether m is a known enrollment mode.
func (m ModeSlug) Valid() bool {
	for _, known := range ModeSlugs {
		if m == known {
			return true
		}
	}
	return false
}
