package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/openedx/programs-admin/internal/app/models"
	"github.com/openedx/programs-admin/internal/app/models/dto"
	"github.com/openedx/programs-admin/internal/app/services"
	"github.com/openedx/programs-admin/internal/pkg/apperrors"
)

type sampleCourse struct {
	key, name string
	runs      []dto.CreateRunModeRequest
}

var (
	sampleOrganization = dto.CreateOrganizationRequest{Key: "edX", DisplayName: "edX Inc."}

	sampleCourses = []sampleCourse{
		{key: "DemoX", name: "Demo Course", runs: []dto.CreateRunModeRequest{
			{CourseKey: "course-v1:edX+DemoX+2016_T1", ModeSlug: "verified", StartDate: "2016-09-01"},
			{CourseKey: "course-v1:edX+DemoX+2017_T1", ModeSlug: "verified", StartDate: "2017-02-01"},
		}},
		{key: "StatsX", name: "Statistics Essentials", runs: []dto.CreateRunModeRequest{
			{CourseKey: "course-v1:edX+StatsX+2016_T2", ModeSlug: "professional", StartDate: "2016-11-15"},
		}},
		{key: "MLX", name: "Machine Learning Primer"},
	}

	sampleProgram = dto.CreateProgramRequest{
		Name:     "Data Science Fundamentals",
		Subtitle: "A three course sequence",
		Category: string(models.ProgramCategoryXSeries),
	}
)

// CreateDefaultData loads a sample organization, its course codes and one program placing the
// first two of them. Records that already exist are reused, so running it twice is harmless.
func CreateDefaultData(ctx context.Context, catalog services.CatalogService, programs services.ProgramService, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (organization, course codes, program)...")

	org, err := ensureOrganization(ctx, catalog)
	if err != nil {
		return err
	}

	codes := make([]*models.CourseCode, 0, len(sampleCourses))
	for _, course := range sampleCourses {
		cc, err := ensureCourseCode(ctx, catalog, org.ID, course)
		if err != nil {
			return err
		}
		codes = append(codes, cc)
	}

	program, err := programs.CreateProgram(ctx, &sampleProgram)
	if errors.Is(err, apperrors.ErrProgramAlreadyExists) {
		lgr.Info().Str("program", sampleProgram.Name).Msg("Sample program already exists, skipping")
		return nil
	}
	if err != nil {
		return err
	}

	if err := programs.AssociateOrganization(ctx, program.ID, org.ID); err != nil {
		return err
	}

	var finalErr error
	for i, course := range sampleCourses[:2] {
		pcc, err := programs.AddCourseCode(ctx, program.ID, codes[i].ID)
		if err != nil {
			lgr.Error().Err(err).Str("courseCode", course.key).Msg("Error adding course code to sample program")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		for _, run := range course.runs {
			if _, err := programs.AddRunMode(ctx, program.ID, pcc.ID, &run); err != nil {
				lgr.Error().Err(err).Str("courseKey", run.CourseKey).Msg("Error adding run mode to sample program")
				finalErr = errors.Join(finalErr, err)
			}
		}
	}

	lgr.Info().Int64("programID", program.ID).Msg("Default data created")
	return finalErr
}

func ensureOrganization(ctx context.Context, catalog services.CatalogService) (*models.Organization, error) {
	orgs, err := catalog.ListOrganizations(ctx)
	if err != nil {
		return nil, err
	}
	for i := range orgs {
		if orgs[i].Key == sampleOrganization.Key {
			return &orgs[i], nil
		}
	}
	return catalog.CreateOrganization(ctx, &sampleOrganization)
}

func ensureCourseCode(ctx context.Context, catalog services.CatalogService, orgID int64, course sampleCourse) (*models.CourseCode, error) {
	existing, err := catalog.ListCourseCodes(ctx, &orgID)
	if err != nil {
		return nil, err
	}
	for i := range existing {
		if existing[i].Key == course.key {
			return &existing[i], nil
		}
	}
	return catalog.CreateCourseCode(ctx, &dto.CreateCourseCodeRequest{
		OrganizationID: orgID,
		Key:            course.key,
		DisplayName:    course.name,
	})
}
