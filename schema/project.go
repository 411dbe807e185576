package schema

import (
	"strings"

	"github.com/rpupo63/portfolio-site-backend/models"
	"gorm.io/datatypes"
)

// NewProject is the accepted body of POST /api/projects.
type NewProject struct {
	Title           string   `json:"title" validate:"required,max=200"`
	Description     string   `json:"description" validate:"required"`
	LongDescription *string  `json:"longDescription"`
	Category        string   `json:"category" validate:"required,max=50"`
	Tools           []string `json:"tools" validate:"dive,required"`
	ImageURL        *string  `json:"imageUrl"`
	CaseStudyURL    *string  `json:"caseStudyUrl"`
	ScormURL        *string  `json:"scormUrl"`
	DemoURL         *string  `json:"demoUrl"`
	Featured        bool     `json:"featured"`
}

func DecodeNewProject(body []byte) (NewProject, error) {
	return parse(body, func(p *NewProject) {
		p.Title = strings.TrimSpace(p.Title)
		p.Description = strings.TrimSpace(p.Description)
		p.Category = strings.TrimSpace(p.Category)
		p.LongDescription = optional(p.LongDescription)
		p.ImageURL = optional(p.ImageURL)
		p.CaseStudyURL = optional(p.CaseStudyURL)
		p.ScormURL = optional(p.ScormURL)
		p.DemoURL = optional(p.DemoURL)
		p.Tools = trimAll(p.Tools)
		if p.Tools == nil {
			p.Tools = []string{}
		}
	})
}

func (p NewProject) Model() models.Project {
	return models.Project{
		Title:           p.Title,
		Description:     p.Description,
		LongDescription: p.LongDescription,
		Category:        p.Category,
		Tools:           datatypes.JSONSlice[string](p.Tools),
		ImageURL:        p.ImageURL,
		CaseStudyURL:    p.CaseStudyURL,
		ScormURL:        p.ScormURL,
		DemoURL:         p.DemoURL,
		Featured:        p.Featured,
	}
}

// ProjectPatch is the accepted body of PUT/PATCH /api/projects/{id}.
// Absent fields are left untouched; "" clears a nullable field.
type ProjectPatch struct {
	Title           *string  `json:"title" validate:"omitnil,min=1,max=200"`
	Description     *string  `json:"description" validate:"omitnil,min=1"`
	LongDescription *string  `json:"longDescription"`
	Category        *string  `json:"category" validate:"omitnil,min=1,max=50"`
	Tools           []string `json:"tools" validate:"omitempty,dive,required"`
	ImageURL        *string  `json:"imageUrl"`
	CaseStudyURL    *string  `json:"caseStudyUrl"`
	ScormURL        *string  `json:"scormUrl"`
	DemoURL         *string  `json:"demoUrl"`
	Featured        *bool    `json:"featured"`
}

func DecodeProjectPatch(body []byte) (ProjectPatch, error) {
	return parse(body, func(p *ProjectPatch) {
		p.Title = patched(p.Title)
		p.Description = patched(p.Description)
		p.Category = patched(p.Category)
		p.LongDescription = patched(p.LongDescription)
		p.ImageURL = patched(p.ImageURL)
		p.CaseStudyURL = patched(p.CaseStudyURL)
		p.ScormURL = patched(p.ScormURL)
		p.DemoURL = patched(p.DemoURL)
		p.Tools = trimAll(p.Tools)
	})
}

// Apply copies the present fields onto project. The id and createdAt are never touched.
func (p ProjectPatch) Apply(project *models.Project) {
	if p.Title != nil {
		project.Title = *p.Title
	}
	if p.Description != nil {
		project.Description = *p.Description
	}
	if p.LongDescription != nil {
		project.LongDescription = optional(p.LongDescription)
	}
	if p.Category != nil {
		project.Category = *p.Category
	}
	if p.Tools != nil {
		project.Tools = datatypes.JSONSlice[string](p.Tools)
	}
	if p.ImageURL != nil {
		project.ImageURL = optional(p.ImageURL)
	}
	if p.CaseStudyURL != nil {
		project.CaseStudyURL = optional(p.CaseStudyURL)
	}
	if p.ScormURL != nil {
		project.ScormURL = optional(p.ScormURL)
	}
	if p.DemoURL != nil {
		project.DemoURL = optional(p.DemoURL)
	}
	if p.Featured != nil {
		project.Featured = *p.Featured
	}
}
