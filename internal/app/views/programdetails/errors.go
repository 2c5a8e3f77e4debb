package programdetails

import (
	"errors"
	"fmt"

	"github.com/openedx/programs-admin/internal/pkg/apperrors"
	"github.com/openedx/programs-admin/internal/pkg/validation"
)

var (
	ErrUnknownField          = errors.New("unknown field")
	ErrFieldNotEditable      = errors.New("field is not in edit state")
	ErrRowNotFound           = errors.New("row not found")
	ErrCourseSelectionClosed = errors.New("course selection is not open")
	ErrUnknownCourse         = errors.New("course is not selectable")
	ErrUnknownEvent          = errors.New("unknown event type")
)

// ValidationError marks a field value rejected on blur. The field keeps its draft and stays
// editable.
type ValidationError struct {
	Field   string
	Reason  validation.Reason
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return apperrors.ErrValidationFailed
}

// PersistenceError wraps a store failure. It is shown as a page alert and never retried.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match apperrors.ErrPersistenceFailed as well as the store error.
func (e *PersistenceError) Is(target error) bool {
	return target == apperrors.ErrPersistenceFailed
}
