package schema

import (
	"strings"

	"github.com/rpupo63/portfolio-site-backend/models"
)

type NewContactSubmission struct {
	FirstName   string  `json:"firstName" validate:"required,max=100"`
	LastName    string  `json:"lastName" validate:"required,max=100"`
	Email       string  `json:"email" validate:"required,email"`
	Company     *string `json:"company"`
	ProjectType *string `json:"projectType"`
	Message     string  `json:"message" validate:"required,max=5000"`
}

func DecodeNewContactSubmission(body []byte) (NewContactSubmission, error) {
	return parse(body, func(c *NewContactSubmission) {
		c.FirstName = strings.TrimSpace(c.FirstName)
		c.LastName = strings.TrimSpace(c.LastName)
		c.Email = strings.TrimSpace(c.Email)
		c.Company = optional(c.Company)
		c.ProjectType = optional(c.ProjectType)
		c.Message = strings.TrimSpace(c.Message)
	})
}

func (c NewContactSubmission) Model() models.ContactSubmission {
	return models.ContactSubmission{
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Email:       c.Email,
		Company:     c.Company,
		ProjectType: c.ProjectType,
		Message:     c.Message,
	}
}
