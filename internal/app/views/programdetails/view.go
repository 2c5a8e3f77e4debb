package programdetails

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/openedx/programs-admin/internal/app/models"
	"github.com/openedx/programs-admin/internal/pkg/logger"
	"github.com/openedx/programs-admin/internal/pkg/validation"
	"github.com/rs/zerolog"
)

// FieldState is the display/edit state of one inline-editable attribute.
type FieldState struct {
	Name    string
	Value   string
	Draft   string
	PreEdit string
	Editing bool
	Error   string
}

// HasError reports whether the last blur rejected the draft.
func (f FieldState) HasError() bool {
	return f.Error != ""
}

type runRow struct {
	key      string
	mode     models.RunMode
	removing bool
}

type courseRow struct {
	key      string
	course   models.ProgramCourseCode
	runs     []*runRow
	removing bool
}

// View is the server-side state of one program details page. All methods are safe for
// concurrent use; events on one view are serialised.
type View struct {
	mu sync.Mutex

	id      string
	owner   int64
	program *models.Program
	store   Store
	log     zerolog.Logger
	sched   scheduler

	fields    map[string]*FieldState
	courses   []*courseRow
	selecting bool
	choices   []models.CourseCode
	alert     string
}

// Option configures a View.
type Option func(*View)

// WithID fixes the view id instead of generating one.
func WithID(id string) Option {
	return func(v *View) { v.id = id }
}

// WithOwner records the user the view was opened for.
func WithOwner(userID int64) Option {
	return func(v *View) { v.owner = userID }
}

// WithLogger replaces the component logger.
func WithLogger(l zerolog.Logger) Option {
	return func(v *View) { v.log = l }
}

// New binds program to a new view. The view keeps its own copy of the record.
func New(program *models.Program, store Store, opts ...Option) *View {
	v := &View{
		id:      uuid.New().String(),
		program: cloneProgram(program),
		store:   store,
		log:     logger.Component("programdetails"),
		fields:  make(map[string]*FieldState, len(validation.ProgramFields)),
	}
	for _, opt := range opts {
		opt(v)
	}
	v.log = v.log.With().Str("viewID", v.id).Int64("programID", v.program.ID).Logger()

	for _, name := range validation.ProgramFields {
		value := fieldValue(v.program, name)
		v.fields[name] = &FieldState{Name: name, Value: value, Draft: value}
	}
	for _, pcc := range v.program.CourseCodes {
		v.courses = append(v.courses, newCourseRow(pcc))
	}
	return v
}

func newCourseRow(pcc models.ProgramCourseCode) *courseRow {
	row := &courseRow{key: courseKey(pcc.ID), course: pcc}
	for _, rm := range pcc.RunModes {
		row.runs = append(row.runs, &runRow{key: runKey(rm.ID), mode: rm})
	}
	// rows own the run list; the model keeps its own slice
	row.course.RunModes = nil
	return row
}

func courseKey(id int64) string { return "course-" + strconv.FormatInt(id, 10) }
func runKey(id int64) string    { return "run-" + strconv.FormatInt(id, 10) }

func fieldValue(p *models.Program, field string) string {
	switch field {
	case validation.FieldName:
		return p.Name
	case validation.FieldSubtitle:
		return p.Subtitle
	case validation.FieldMarketingSlug:
		return p.MarketingSlug
	}
	return ""
}

func fieldPatch(field, value string) models.ProgramPatch {
	var patch models.ProgramPatch
	switch field {
	case validation.FieldName:
		patch.Name = &value
	case validation.FieldSubtitle:
		patch.Subtitle = &value
	case validation.FieldMarketingSlug:
		patch.MarketingSlug = &value
	}
	return patch
}

// ID returns the session id of the view.
func (v *View) ID() string {
	return v.id
}

// Owner returns the user the view was opened for.
func (v *View) Owner() int64 {
	return v.owner
}

// ProgramID returns the id of the bound program.
func (v *View) ProgramID() int64 {
	return v.program.ID
}

// EnableEdit switches field to edit state and records its pre-edit value.
func (v *View) EnableEdit(field string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.enableEdit(field)
}

func (v *View) enableEdit(field string) error {
	f, ok := v.fields[field]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	if f.Editing {
		return nil
	}
	f.Editing = true
	f.PreEdit = f.Value
	f.Draft = f.Value
	f.Error = ""
	return nil
}

// Input replaces the draft of an editable field.
func (v *View) Input(field, value string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.input(field, value)
}

func (v *View) input(field, value string) error {
	f, ok := v.fields[field]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	if !f.Editing {
		return fmt.Errorf("%w: %q", ErrFieldNotEditable, field)
	}
	f.Draft = value
	return nil
}

// Blur ends an edit. Unchanged drafts are dropped, invalid drafts raise the error indicator
// and valid changes are saved once.
func (v *View) Blur(ctx context.Context, field string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.blur(ctx, field)
}

func (v *View) blur(ctx context.Context, field string) error {
	f, ok := v.fields[field]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	if !f.Editing {
		return nil
	}

	if f.Draft == f.PreEdit {
		f.Editing = false
		f.Error = ""
		return nil
	}

	if reason := validation.CheckProgramField(field, f.Draft); reason != validation.ReasonNone {
		limit, _ := validation.ProgramFieldMaxLength(field)
		f.Error = validation.Message(field, reason, limit)
		return &ValidationError{Field: field, Reason: reason, Message: f.Error}
	}

	patch := fieldPatch(field, f.Draft)
	updated, err := v.store.SaveFields(ctx, v.program.ID, patch)
	if err != nil {
		return v.persistenceFailed("save "+field, err)
	}

	patch.Apply(v.program)
	if updated != nil {
		v.program.ModifiedAt = updated.ModifiedAt
	}
	f.Value = f.Draft
	f.PreEdit = f.Draft
	f.Editing = false
	f.Error = ""
	v.alert = ""
	return nil
}

func (v *View) persistenceFailed(op string, err error) error {
	v.log.Error().Err(err).Str("op", op).Msg("Program details change was not saved")
	v.alert = fmt.Sprintf("Could not %s: %v", op, err)
	return &PersistenceError{Op: op, Err: err}
}

// AddCourse loads the selectable course codes; the selection input appears on the next tick.
func (v *View) AddCourse(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.addCourse(ctx)
}

func (v *View) addCourse(ctx context.Context) error {
	choices, err := v.store.AvailableCourseCodes(ctx, v.program.ID)
	if err != nil {
		return v.persistenceFailed("load courses", err)
	}
	v.sched.later(func() {
		v.choices = choices
		v.selecting = true
	})
	return nil
}

// SelectCourse adds the chosen course code to the program and appends its course details
// section to the end of the list.
func (v *View) SelectCourse(ctx context.Context, value string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selectCourse(ctx, value)
}

func (v *View) selectCourse(ctx context.Context, value string) error {
	if !v.selecting {
		return ErrCourseSelectionClosed
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrUnknownCourse, value)
	}
	var choice *models.CourseCode
	for i := range v.choices {
		if v.choices[i].ID == id {
			choice = &v.choices[i]
			break
		}
	}
	if choice == nil {
		return fmt.Errorf("%w: %q", ErrUnknownCourse, value)
	}

	pcc, err := v.store.AddCourseCode(ctx, v.program.ID, id)
	if err != nil {
		return v.persistenceFailed("add course", err)
	}
	if pcc.DisplayName == "" {
		pcc.DisplayName = choice.DisplayName
		pcc.Key = choice.Key
		if choice.Organization != nil {
			pcc.Organization = *choice.Organization
		}
	}
	if pcc.RunModes == nil {
		pcc.RunModes = []models.RunMode{}
	}

	v.program.CourseCodes = append(v.program.CourseCodes, *pcc)
	v.courses = append(v.courses, newCourseRow(*pcc))
	v.selecting = false
	v.choices = nil
	v.alert = ""
	return nil
}

// RemoveCourse deletes the course identified by rowKey together with its run modes. The row
// leaves the rendered list and the model on the next tick.
func (v *View) RemoveCourse(ctx context.Context, rowKey string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.removeCourse(ctx, rowKey)
}

func (v *View) removeCourse(ctx context.Context, rowKey string) error {
	row := v.findCourse(rowKey)
	if row == nil || row.removing {
		return fmt.Errorf("%w: %q", ErrRowNotFound, rowKey)
	}

	if err := v.store.RemoveCourseCode(ctx, v.program.ID, row.course.ID); err != nil {
		return v.persistenceFailed("remove course", err)
	}

	row.removing = true
	v.sched.later(func() {
		for i, r := range v.courses {
			if r.key == rowKey {
				v.courses = append(v.courses[:i], v.courses[i+1:]...)
				break
			}
		}
		for i, pcc := range v.program.CourseCodes {
			if pcc.ID == row.course.ID {
				v.program.CourseCodes = append(v.program.CourseCodes[:i], v.program.CourseCodes[i+1:]...)
				break
			}
		}
	})
	return nil
}

// RemoveRunMode deletes the run mode identified by rowKey. The row leaves the rendered list
// and the model on the next tick.
func (v *View) RemoveRunMode(ctx context.Context, rowKey string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.removeRunMode(ctx, rowKey)
}

func (v *View) removeRunMode(ctx context.Context, rowKey string) error {
	course, run := v.findRun(rowKey)
	if run == nil || run.removing || course.removing {
		return fmt.Errorf("%w: %q", ErrRowNotFound, rowKey)
	}

	if err := v.store.RemoveRunMode(ctx, v.program.ID, run.mode.ID); err != nil {
		return v.persistenceFailed("remove run", err)
	}

	run.removing = true
	v.sched.later(func() {
		for i, r := range course.runs {
			if r.key == rowKey {
				course.runs = append(course.runs[:i], course.runs[i+1:]...)
				break
			}
		}
		for i := range v.program.CourseCodes {
			pcc := &v.program.CourseCodes[i]
			if pcc.ID != course.course.ID {
				continue
			}
			for j, rm := range pcc.RunModes {
				if rm.ID == run.mode.ID {
					pcc.RunModes = append(pcc.RunModes[:j], pcc.RunModes[j+1:]...)
					break
				}
			}
		}
	})
	return nil
}

func (v *View) findCourse(rowKey string) *courseRow {
	for _, row := range v.courses {
		if row.key == rowKey {
			return row
		}
	}
	return nil
}

func (v *View) findRun(rowKey string) (*courseRow, *runRow) {
	for _, course := range v.courses {
		for _, run := range course.runs {
			if run.key == rowKey {
				return course, run
			}
		}
	}
	return nil, nil
}

// Tick runs the callbacks deferred by earlier events and reports how many ran.
func (v *View) Tick() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.sched.tick()
}

// Pending reports how many callbacks wait for the next tick.
func (v *View) Pending() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.sched.pending()
}

// Field returns a snapshot of the named field.
func (v *View) Field(name string) (FieldState, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	f, ok := v.fields[name]
	if !ok {
		return FieldState{}, false
	}
	return *f, true
}

// Alert returns the page-level message left by the last failed save.
func (v *View) Alert() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.alert
}

// Selecting reports whether the course selection input is shown.
func (v *View) Selecting() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selecting
}

// Program returns a copy of the bound model.
func (v *View) Program() *models.Program {
	v.mu.Lock()
	defer v.mu.Unlock()
	return cloneProgram(v.program)
}

func cloneProgram(p *models.Program) *models.Program {
	cp := *p
	cp.Organizations = make([]models.Organization, len(p.Organizations))
	copy(cp.Organizations, p.Organizations)
	cp.CourseCodes = make([]models.ProgramCourseCode, len(p.CourseCodes))
	for i, pcc := range p.CourseCodes {
		runs := make([]models.RunMode, len(pcc.RunModes))
		copy(runs, pcc.RunModes)
		pcc.RunModes = runs
		cp.CourseCodes[i] = pcc
	}
	return &cp
}
