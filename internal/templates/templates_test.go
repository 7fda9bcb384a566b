package templates

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/internal/models"
)

func TestParse_AllPages(t *testing.T) {
	tmpl, err := Parse()
	require.NoError(t, err)

	for _, page := range []string{
		"index.html", "project.html", "project_detail.html", "add_project.html",
		"login.html", "dashboard.html", "admin.html", "contact.html", "404.html", "error.html",
	} {
		assert.NotNil(t, tmpl.Lookup(page), page)
	}
}

func TestAddProject_PreservesEnteredValues(t *testing.T) {
	tmpl, err := Parse()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = tmpl.ExecuteTemplate(&buf, "add_project.html", map[string]any{
		"form":       models.ProjectInput{Title: "Kept <title>", Category: "Robotics", Tools: "Go, C"},
		"categories": []string{"Web"},
		"missing":    []string{"description"},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `value="Kept &lt;title&gt;"`)
	assert.Contains(t, out, `name="category_custom" value="Robotics"`)
	assert.Contains(t, out, `value="Go, C"`)
	assert.Contains(t, out, "Required: description")
}

func TestProjectDetail_Renders(t *testing.T) {
	tmpl, err := Parse()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = tmpl.ExecuteTemplate(&buf, "project_detail.html", map[string]any{
		"project": &models.Project{
			ID:          uuid.New(),
			Title:       "Portfolio",
			Description: "desc",
			Category:    "Web",
			Tools:       []string{"Go", "pgx"},
			DateCreated: time.Date(2025, 9, 28, 0, 0, 0, 0, time.UTC),
		},
		"flashes": []models.Flash{{Category: "success", Message: "saved"}},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Go, pgx")
	assert.Contains(t, out, "Sep 28, 2025")
	assert.Contains(t, out, `flash-success`)
	assert.NotContains(t, out, "Delete")
}
