package programdetails

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/openedx/programs-admin/internal/app/models"
	"github.com/openedx/programs-admin/internal/pkg/helpers"
	"github.com/openedx/programs-admin/internal/pkg/validation"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("programdetails").Funcs(template.FuncMap{
	"date": helpers.FormatDate,
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
}).ParseFS(templateFS, "templates/*.tmpl"))

var fieldLabels = map[string]string{
	validation.FieldName:          "Name",
	validation.FieldSubtitle:      "Subtitle",
	validation.FieldMarketingSlug: "Marketing slug",
}

type fieldData struct {
	FieldState
	Label     string
	MaxLength int
}

type runData struct {
	RowKey   string
	Mode     models.RunMode
	Removing bool
}

type courseData struct {
	RowKey   string
	Course   models.ProgramCourseCode
	Runs     []runData
	Removing bool
}

type detailsData struct {
	ViewID    string
	Program   *models.Program
	Alert     string
	Fields    []fieldData
	Courses   []courseData
	Selecting bool
	Choices   []models.CourseCode
}

// PageData is the chrome around the details fragment.
type PageData struct {
	Title    string
	Username string
	LiveURL  string
	EventURL string
	Details  detailsData
}

func (v *View) snapshot() detailsData {
	data := detailsData{
		ViewID:    v.id,
		Program:   v.program,
		Alert:     v.alert,
		Selecting: v.selecting,
		Choices:   v.choices,
	}
	for _, name := range validation.ProgramFields {
		f := v.fields[name]
		limit, _ := validation.ProgramFieldMaxLength(name)
		data.Fields = append(data.Fields, fieldData{FieldState: *f, Label: fieldLabels[name], MaxLength: limit})
	}
	for _, c := range v.courses {
		cd := courseData{RowKey: c.key, Course: c.course, Removing: c.removing}
		for _, r := range c.runs {
			cd.Runs = append(cd.Runs, runData{RowKey: r.key, Mode: r.mode, Removing: r.removing})
		}
		data.Courses = append(data.Courses, cd)
	}
	return data
}

// Render writes the #program-details fragment.
func (v *View) Render(w io.Writer) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	data := v.snapshot()

	if err := templates.ExecuteTemplate(w, "details", data); err != nil {
		return fmt.Errorf("render program details: %w", err)
	}
	return nil
}

// RenderPage writes the full HTML document hosting the fragment.
func (v *View) RenderPage(w io.Writer, page PageData) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	page.Details = v.snapshot()

	if page.Title == "" {
		page.Title = page.Details.Program.Name
	}
	if err := templates.ExecuteTemplate(w, "page", page); err != nil {
		return fmt.Errorf("render program page: %w", err)
	}
	return nil
}

// HTML renders the fragment to a string.
func (v *View) HTML() (string, error) {
	var b strings.Builder
	if err := v.Render(&b); err != nil {
		return "", err
	}
	return b.String(), nil
}
