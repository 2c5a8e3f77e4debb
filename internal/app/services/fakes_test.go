package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/openedx/programs-admin/internal/app/models"
	"github.com/openedx/programs-admin/internal/pkg/apperrors"
)

// memStore is an in-memory stand-in for the repositories
type memStore struct {
	mu         sync.Mutex
	nextID     int64
	programs   map[int64]*models.Program
	orgs       map[int64]*models.Organization
	programOrg map[int64]int64
	codes      map[int64]*models.CourseCode
	pccs       map[int64]*models.ProgramCourseCode
	runModes   map[int64]*models.RunMode
}

func newMemStore() *memStore {
	return &memStore{
		programs:   map[int64]*models.Program{},
		orgs:       map[int64]*models.Organization{},
		programOrg: map[int64]int64{},
		codes:      map[int64]*models.CourseCode{},
		pccs:       map[int64]*models.ProgramCourseCode{},
		runModes:   map[int64]*models.RunMode{},
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

type memPrograms struct{ *memStore }

func (r memPrograms) Create(_ context.Context, p *models.Program) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.programs {
		if existing.Name == p.Name || existing.MarketingSlug == p.MarketingSlug {
			return apperrors.ErrProgramAlreadyExists
		}
	}
	p.ID = r.id()
	p.CreatedAt = time.Now()
	p.ModifiedAt = p.CreatedAt
	cp := *p
	r.programs[p.ID] = &cp
	return nil
}

func (r memPrograms) GetByID(_ context.Context, id int64) (*models.Program, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.programs[id]
	if !ok {
		return nil, apperrors.ErrProgramNotFound
	}
	cp := *p
	return &cp, nil
}

func (r memPrograms) List(_ context.Context, filter models.ProgramFilter, offset, limit uint64) ([]models.Program, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []models.Program
	for _, p := range r.programs {
		if filter.Status != nil && p.Status != *filter.Status {
			continue
		}
		if filter.Category != nil && p.Category != *filter.Category {
			continue
		}
		all = append(all, *p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	total := int64(len(all))
	if offset > uint64(len(all)) {
		offset = uint64(len(all))
	}
	end := offset + limit
	if end > uint64(len(all)) {
		end = uint64(len(all))
	}
	return all[offset:end], total, nil
}

func (r memPrograms) Update(_ context.Context, id int64, patch models.ProgramPatch) (*models.Program, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.programs[id]
	if !ok {
		return nil, apperrors.ErrProgramNotFound
	}
	patch.Apply(p)
	p.ModifiedAt = time.Now()
	cp := *p
	return &cp, nil
}

func (r memPrograms) MarketingSlugExists(_ context.Context, slug string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.programs {
		if p.MarketingSlug == slug {
			return true, nil
		}
	}
	return false, nil
}

type memOrganizations struct{ *memStore }

func (r memOrganizations) Create(_ context.Context, org *models.Organization) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orgs {
		if o.Key == org.Key {
			return apperrors.ErrOrganizationAlreadyExists
		}
	}
	org.ID = r.id()
	cp := *org
	r.orgs[org.ID] = &cp
	return nil
}

func (r memOrganizations) GetByID(_ context.Context, id int64) (*models.Organization, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orgs[id]
	if !ok {
		return nil, apperrors.ErrOrganizationNotFound
	}
	cp := *o
	return &cp, nil
}

func (r memOrganizations) List(_ context.Context) ([]models.Organization, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Organization{}
	for _, o := range r.orgs {
		out = append(out, *o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (r memOrganizations) ListByProgram(_ context.Context, programID int64) ([]models.Organization, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Organization{}
	if orgID, ok := r.programOrg[programID]; ok {
		out = append(out, *r.orgs[orgID])
	}
	return out, nil
}

func (r memOrganizations) AssociateWithProgram(_ context.Context, programID, organizationID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.programOrg[programID]; ok {
		return apperrors.ErrProgramOrganizationExists
	}
	r.programOrg[programID] = organizationID
	return nil
}

type memCourseCodes struct{ *memStore }

func (r memCourseCodes) Create(_ context.Context, cc *models.CourseCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.codes {
		if c.OrganizationID == cc.OrganizationID && c.Key == cc.Key {
			return apperrors.ErrCourseCodeAlreadyExists
		}
	}
	cc.ID = r.id()
	cp := *cc
	r.codes[cc.ID] = &cp
	return nil
}

func (r memCourseCodes) GetByID(_ context.Context, id int64) (*models.CourseCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.codes[id]
	if !ok {
		return nil, apperrors.ErrCourseCodeNotFound
	}
	cp := *c
	if org, ok := r.orgs[c.OrganizationID]; ok {
		o := *org
		cp.Organization = &o
	}
	return &cp, nil
}

func (r memCourseCodes) List(_ context.Context, organizationID *int64) ([]models.CourseCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.CourseCode{}
	for _, c := range r.codes {
		if organizationID == nil || c.OrganizationID == *organizationID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (r memCourseCodes) ListAvailableForProgram(_ context.Context, programID int64) ([]models.CourseCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.CourseCode{}
	orgID, ok := r.programOrg[programID]
	if !ok {
		return out, nil
	}
	used := map[int64]bool{}
	for _, p := range r.pccs {
		used[p.CourseCodeID] = true
	}
	for _, c := range r.codes {
		if c.OrganizationID == orgID && !used[c.ID] {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayName < out[j].DisplayName })
	return out, nil
}

func (r memCourseCodes) ProgramIDFor(_ context.Context, courseCodeID int64) (int64, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.pccs {
		if p.CourseCodeID == courseCodeID {
			return p.ProgramID, true, nil
		}
	}
	return 0, false, nil
}

func (r memCourseCodes) AddToProgram(_ context.Context, programID, courseCodeID int64) (*models.ProgramCourseCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pos := 0
	for _, p := range r.pccs {
		if p.ProgramID == programID && p.Position > pos {
			pos = p.Position
		}
	}
	pcc := &models.ProgramCourseCode{ID: r.id(), ProgramID: programID, CourseCodeID: courseCodeID, Position: pos + 1}
	r.pccs[pcc.ID] = pcc
	cp := *pcc
	cp.RunModes = []models.RunMode{}
	return &cp, nil
}

func (r memCourseCodes) GetProgramCourseCode(_ context.Context, programID, id int64) (*models.ProgramCourseCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pccs[id]
	if !ok || p.ProgramID != programID {
		return nil, apperrors.ErrProgramCourseCodeNotFound
	}
	cp := *p
	return &cp, nil
}

func (r memCourseCodes) ListProgramCourseCodes(_ context.Context, programID int64) ([]models.ProgramCourseCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.ProgramCourseCode{}
	for _, p := range r.pccs {
		if p.ProgramID != programID {
			continue
		}
		cp := *p
		cc := r.codes[p.CourseCodeID]
		cp.DisplayName = cc.DisplayName
		cp.Key = cc.Key
		cp.Organization = *r.orgs[cc.OrganizationID]
		cp.RunModes = []models.RunMode{}
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (r memCourseCodes) RemoveFromProgram(_ context.Context, programID, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pccs[id]
	if !ok || p.ProgramID != programID {
		return apperrors.ErrProgramCourseCodeNotFound
	}
	delete(r.pccs, id)
	for rid, rm := range r.runModes {
		if rm.ProgramCourseCodeID == id {
			delete(r.runModes, rid)
		}
	}
	return nil
}

type memRunModes struct{ *memStore }

func (r memRunModes) Create(_ context.Context, rm *models.RunMode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.runModes {
		if existing.ProgramCourseCodeID == rm.ProgramCourseCodeID && existing.CourseKey == rm.CourseKey &&
			existing.ModeSlug == rm.ModeSlug && existing.SKU != nil && rm.SKU != nil && *existing.SKU == *rm.SKU {
			return apperrors.ErrRunModeDuplicate
		}
	}
	rm.ID = r.id()
	cp := *rm
	r.runModes[rm.ID] = &cp
	return nil
}

func (r memRunModes) ExistsWithoutSKU(_ context.Context, pccID int64, courseKey string, mode models.ModeSlug) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rm := range r.runModes {
		if rm.ProgramCourseCodeID == pccID && rm.CourseKey == courseKey && rm.ModeSlug == mode && rm.SKU == nil {
			return true, nil
		}
	}
	return false, nil
}

func (r memRunModes) ListByProgram(_ context.Context, programID int64) ([]models.RunMode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.RunMode{}
	for _, rm := range r.runModes {
		if p, ok := r.pccs[rm.ProgramCourseCodeID]; ok && p.ProgramID == programID {
			out = append(out, *rm)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memRunModes) Delete(_ context.Context, programID, runModeID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rm, ok := r.runModes[runModeID]
	if !ok {
		return apperrors.ErrRunModeNotFound
	}
	if p, ok := r.pccs[rm.ProgramCourseCodeID]; !ok || p.ProgramID != programID {
		return apperrors.ErrRunModeNotFound
	}
	delete(r.runModes, runModeID)
	return nil
}

type recordingNotifier struct {
	mu      sync.Mutex
	changes []string
}

func (n *recordingNotifier) ProgramChanged(_ context.Context, _ int64, change string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.changes = append(n.changes, change)
}

func (n *recordingNotifier) Changes() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.changes...)
}
