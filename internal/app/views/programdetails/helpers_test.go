package programdetails

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/openedx/programs-admin/internal/app/models"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

type saveCall struct {
	programID int64
	patch     models.ProgramPatch
}

// fakeStore records persistence calls and can be told to fail
type fakeStore struct {
	mu          sync.Mutex
	saves       []saveCall
	added       []int64
	removed     []int64
	removedRuns []int64
	available   []models.CourseCode
	err         error
	nextPCC     int64
}

func (s *fakeStore) SaveFields(_ context.Context, programID int64, patch models.ProgramPatch) (*models.Program, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	s.saves = append(s.saves, saveCall{programID: programID, patch: patch})
	return &models.Program{ID: programID, ModifiedAt: time.Date(2016, 4, 1, 0, 0, 0, 0, time.UTC)}, nil
}

func (s *fakeStore) AddCourseCode(_ context.Context, programID, courseCodeID int64) (*models.ProgramCourseCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	s.added = append(s.added, courseCodeID)
	s.nextPCC++
	return &models.ProgramCourseCode{ID: 100 + s.nextPCC, ProgramID: programID, CourseCodeID: courseCodeID}, nil
}

func (s *fakeStore) RemoveCourseCode(_ context.Context, _ int64, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.removed = append(s.removed, id)
	return nil
}

func (s *fakeStore) RemoveRunMode(_ context.Context, _ int64, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.removedRuns = append(s.removedRuns, id)
	return nil
}

func (s *fakeStore) AvailableCourseCodes(context.Context, int64) ([]models.CourseCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return append([]models.CourseCode(nil), s.available...), nil
}

func (s *fakeStore) saveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.saves)
}

func strPtr(s string) *string { return &s }

// newTestProgram returns a program with one course of three run modes
func newTestProgram() *models.Program {
	start := time.Date(2016, 9, 1, 0, 0, 0, 0, time.UTC)
	edx := models.Organization{ID: 1, Key: "edX", DisplayName: "edX Inc."}
	return &models.Program{
		ID:            7,
		Name:          "Supply Chain",
		Subtitle:      "Learn logistics",
		MarketingSlug: "supply-chain",
		Status:        models.ProgramStatusUnpublished,
		Category:      models.ProgramCategoryXSeries,
		Organizations: []models.Organization{edx},
		CourseCodes: []models.ProgramCourseCode{{
			ID:           10,
			ProgramID:    7,
			CourseCodeID: 3,
			Position:     1,
			DisplayName:  "Intro to Logistics",
			Key:          "SC0x",
			Organization: edx,
			RunModes: []models.RunMode{
				{ID: 1, ProgramCourseCodeID: 10, CourseKey: "course-v1:edX+SC0x+2016_T1", ModeSlug: models.ModeAudit, StartDate: start},
				{ID: 2, ProgramCourseCodeID: 10, CourseKey: "course-v1:edX+SC0x+2016_T1", ModeSlug: models.ModeVerified, SKU: strPtr("SKU-V"), StartDate: start},
				{ID: 3, ProgramCourseCodeID: 10, CourseKey: "course-v1:edX+SC0x+2016_T2", ModeSlug: models.ModeHonor, StartDate: start.AddDate(0, 4, 0)},
			},
		}},
	}
}

func newTestView(t *testing.T) (*View, *fakeStore) {
	t.Helper()
	store := &fakeStore{
		available: []models.CourseCode{
			{ID: 4, OrganizationID: 1, Key: "SC1x", DisplayName: "Supply Chain Design"},
			{ID: 5, OrganizationID: 1, Key: "SC2x", DisplayName: "Supply Chain Dynamics"},
		},
	}
	return New(newTestProgram(), store, WithID("view-1"), WithOwner(42)), store
}

// page parses the rendered fragment
type page struct {
	root *html.Node
}

func render(t *testing.T, v *View) page {
	t.Helper()
	out, err := v.HTML()
	require.NoError(t, err)
	doc, err := html.Parse(strings.NewReader(out))
	require.NoError(t, err)
	return page{root: doc}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func (p page) all(match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(p.root)
	return out
}

func (p page) byClass(class string) []*html.Node {
	return p.all(func(n *html.Node) bool { return hasClass(n, class) })
}

func (p page) field(name string) *html.Node {
	nodes := p.all(func(n *html.Node) bool { return hasClass(n, "js-field") && attr(n, "data-field") == name })
	if len(nodes) != 1 {
		return nil
	}
	return nodes[0]
}

func within(n *html.Node, class string) []*html.Node {
	return page{root: n}.byClass(class)
}

func text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}
