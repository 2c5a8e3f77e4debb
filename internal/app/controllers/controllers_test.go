package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/openedx/programs-admin/internal/app/models"
	"github.com/openedx/programs-admin/internal/app/models/dto"
	"github.com/openedx/programs-admin/internal/app/services"
	"github.com/openedx/programs-admin/internal/middleware"
	"github.com/openedx/programs-admin/internal/pkg/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubPrograms is a ProgramService over one in-memory program
type stubPrograms struct {
	mu       sync.Mutex
	program  *models.Program
	err      error
	filter   models.ProgramFilter
	page     int
	size     int
	patches  []models.ProgramPatch
	origins  []string
	removed  []int64
	runModes []*dto.CreateRunModeRequest
}

func newStubPrograms() *stubPrograms {
	return &stubPrograms{program: &models.Program{
		ID:            7,
		Name:          "Data Science",
		Subtitle:      "Four courses",
		MarketingSlug: "data-science",
		Status:        models.ProgramStatusUnpublished,
		Category:      models.ProgramCategoryXSeries,
		Organizations: []models.Organization{},
		CourseCodes:   []models.ProgramCourseCode{},
	}}
}

func (s *stubPrograms) find(id int64) (*models.Program, error) {
	if s.err != nil {
		return nil, s.err
	}
	if id != s.program.ID {
		return nil, apperrors.ErrProgramNotFound
	}
	p := *s.program
	return &p, nil
}

func (s *stubPrograms) CreateProgram(_ context.Context, req *dto.CreateProgramRequest) (*models.Program, error) {
	if s.err != nil {
		return nil, s.err
	}
	p := req.ToModel()
	p.ID = 8
	return p, nil
}

func (s *stubPrograms) GetProgram(_ context.Context, id int64) (*models.Program, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.find(id)
}

func (s *stubPrograms) ListPrograms(_ context.Context, filter models.ProgramFilter, page, size int) (*dto.ProgramListResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	s.filter, s.page, s.size = filter, page, size
	return &dto.ProgramListResponse{
		Programs:   []*models.Program{s.program},
		Pagination: dto.PaginationInfo{CurrentPage: page, TotalPages: 1, PageSize: size, TotalItems: 1},
	}, nil
}

func (s *stubPrograms) UpdateProgram(ctx context.Context, id int64, patch models.ProgramPatch) (*models.Program, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.find(id)
	if err != nil {
		return nil, err
	}
	s.patches = append(s.patches, patch)
	s.origins = append(s.origins, services.OriginFrom(ctx))
	patch.Apply(s.program)
	patch.Apply(p)
	return p, nil
}

func (s *stubPrograms) AssociateOrganization(_ context.Context, programID, _ int64) error {
	_, err := s.find(programID)
	return err
}

func (s *stubPrograms) AddCourseCode(_ context.Context, programID, courseCodeID int64) (*models.ProgramCourseCode, error) {
	if _, err := s.find(programID); err != nil {
		return nil, err
	}
	return &models.ProgramCourseCode{ID: 30, ProgramID: programID, CourseCodeID: courseCodeID, Position: 1}, nil
}

func (s *stubPrograms) RemoveCourseCode(_ context.Context, programID, pccID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.find(programID); err != nil {
		return err
	}
	s.removed = append(s.removed, pccID)
	return nil
}

func (s *stubPrograms) AddRunMode(_ context.Context, programID, pccID int64, req *dto.CreateRunModeRequest) (*models.RunMode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.find(programID); err != nil {
		return nil, err
	}
	s.runModes = append(s.runModes, req)
	return &models.RunMode{ID: 40, ProgramCourseCodeID: pccID, CourseKey: req.CourseKey, ModeSlug: models.ModeSlug(req.ModeSlug)}, nil
}

func (s *stubPrograms) RemoveRunMode(_ context.Context, programID, _ int64) error {
	_, err := s.find(programID)
	return err
}

func (s *stubPrograms) AvailableCourseCodes(_ context.Context, programID int64) ([]models.CourseCode, error) {
	if _, err := s.find(programID); err != nil {
		return nil, err
	}
	return []models.CourseCode{{ID: 4, Key: "DemoX", DisplayName: "Demo Course"}}, nil
}

// withUser stands in for JWTAuth
func withUser(user *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user != nil {
			c.Set(middleware.ContextUser, user)
			c.Set(middleware.ContextUserID, user.ID)
		}
		c.Next()
	}
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool             `json:"success"`
	Data    json.RawMessage  `json:"data"`
	Error   *dto.ErrorDetail `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}
