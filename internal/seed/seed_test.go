package seed

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openedx/programs-admin/internal/app/models"
	"github.com/openedx/programs-admin/internal/app/models/dto"
	"github.com/openedx/programs-admin/internal/app/services"
	"github.com/openedx/programs-admin/internal/pkg/apperrors"
)

type memCatalog struct {
	services.CatalogService
	orgs  []models.Organization
	codes []models.CourseCode
}

func (c *memCatalog) ListOrganizations(context.Context) ([]models.Organization, error) {
	return c.orgs, nil
}

func (c *memCatalog) CreateOrganization(_ context.Context, req *dto.CreateOrganizationRequest) (*models.Organization, error) {
	org := models.Organization{ID: int64(len(c.orgs) + 1), Key: req.Key, DisplayName: req.DisplayName}
	c.orgs = append(c.orgs, org)
	return &org, nil
}

func (c *memCatalog) ListCourseCodes(_ context.Context, orgID *int64) ([]models.CourseCode, error) {
	var out []models.CourseCode
	for _, cc := range c.codes {
		if orgID == nil || cc.OrganizationID == *orgID {
			out = append(out, cc)
		}
	}
	return out, nil
}

func (c *memCatalog) CreateCourseCode(_ context.Context, req *dto.CreateCourseCodeRequest) (*models.CourseCode, error) {
	cc := models.CourseCode{ID: int64(len(c.codes) + 10), OrganizationID: req.OrganizationID, Key: req.Key, DisplayName: req.DisplayName}
	c.codes = append(c.codes, cc)
	return &cc, nil
}

type memPrograms struct {
	services.ProgramService
	created  int
	orgs     []int64
	codes    []int64
	runModes []string
}

func (p *memPrograms) CreateProgram(_ context.Context, req *dto.CreateProgramRequest) (*models.Program, error) {
	if p.created > 0 {
		return nil, apperrors.ErrProgramAlreadyExists
	}
	p.created++
	program := req.ToModel()
	program.ID = 1
	return program, nil
}

func (p *memPrograms) AssociateOrganization(_ context.Context, _, organizationID int64) error {
	p.orgs = append(p.orgs, organizationID)
	return nil
}

func (p *memPrograms) AddCourseCode(_ context.Context, programID, courseCodeID int64) (*models.ProgramCourseCode, error) {
	p.codes = append(p.codes, courseCodeID)
	return &models.ProgramCourseCode{ID: int64(len(p.codes)), ProgramID: programID, CourseCodeID: courseCodeID}, nil
}

func (p *memPrograms) AddRunMode(_ context.Context, _, _ int64, req *dto.CreateRunModeRequest) (*models.RunMode, error) {
	p.runModes = append(p.runModes, req.CourseKey)
	return &models.RunMode{}, nil
}

func TestCreateDefaultData(t *testing.T) {
	catalog := &memCatalog{}
	programs := &memPrograms{}

	require.NoError(t, CreateDefaultData(context.Background(), catalog, programs, zerolog.Nop()))

	require.Len(t, catalog.orgs, 1)
	assert.Equal(t, "edX", catalog.orgs[0].Key)
	assert.Len(t, catalog.codes, 3)
	assert.Equal(t, []int64{1}, programs.orgs)
	assert.Equal(t, []int64{10, 11}, programs.codes)
	assert.Equal(t, []string{
		"course-v1:edX+DemoX+2016_T1",
		"course-v1:edX+DemoX+2017_T1",
		"course-v1:edX+StatsX+2016_T2",
	}, programs.runModes)
}

func TestCreateDefaultData_IsRepeatable(t *testing.T) {
	catalog := &memCatalog{}
	programs := &memPrograms{}

	require.NoError(t, CreateDefaultData(context.Background(), catalog, programs, zerolog.Nop()))
	require.NoError(t, CreateDefaultData(context.Background(), catalog, programs, zerolog.Nop()))

	assert.Len(t, catalog.orgs, 1)
	assert.Len(t, catalog.codes, 3)
	assert.Len(t, programs.codes, 2)
}
