package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Project struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Tools       []string  `json:"tools"`
	Skills      []string  `json:"skills"`
	Objective   string    `json:"objective,omitempty"`
	Summary     string    `json:"summary,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	DateCreated time.Time `json:"date_created"`
}

// ProjectInput is the raw add/edit form. Tools and Skills are comma-separated.
// CategoryCustom wins over Category when both are filled in.
type ProjectInput struct {
	Title          string `form:"title"`
	Description    string `form:"description"`
	Category       string `form:"category"`
	CategoryCustom string `form:"category_custom"`
	Tools          string `form:"tools"`
	Skills         string `form:"skills"`
	Objective      string `form:"objective"`
	Summary        string `form:"summary"`
	ImageURL       string `form:"image_url"`
}

// Prepare trims every text field and resolves the effective category.
func (in *ProjectInput) Prepare() {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Objective = strings.TrimSpace(in.Objective)
	in.Summary = strings.TrimSpace(in.Summary)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	if custom := strings.TrimSpace(in.CategoryCustom); custom != "" {
		in.Category = custom
	} else {
		in.Category = strings.TrimSpace(in.Category)
	}
	in.CategoryCustom = ""
}

// Apply copies the prepared input onto p. ID and DateCreated are left alone.
func (in ProjectInput) Apply(p *Project) {
	p.Title = in.Title
	p.Description = in.Description
	p.Category = in.Category
	p.Tools = SplitList(in.Tools)
	p.Skills = SplitList(in.Skills)
	p.Objective = in.Objective
	p.Summary = in.Summary
	p.ImageURL = in.ImageURL
}

// FromProject fills a form from a stored project, used to pre-populate the
// edit page.
func FromProject(p *Project) ProjectInput {
	return ProjectInput{
		Title:       p.Title,
		Description: p.Description,
		Category:    p.Category,
		Tools:       strings.Join(p.Tools, ", "),
		Skills:      strings.Join(p.Skills, ", "),
		Objective:   p.Objective,
		Summary:     p.Summary,
		ImageURL:    p.ImageURL,
	}
}

// SplitList turns "a, b,,c " into [a b c], keeping order.
func SplitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
