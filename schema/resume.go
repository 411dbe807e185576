package schema

import (
	"strings"

	"github.com/rpupo63/portfolio-site-backend/models"
)

// NewResume registers an already stored resume file. Activation is a
// separate operation, so isActive is not accepted here.
type NewResume struct {
	Filename      string  `json:"filename" validate:"required"`
	OriginalName  string  `json:"originalName" validate:"required"`
	FileURL       string  `json:"fileUrl" validate:"required"`
	ParsedContent *string `json:"parsedContent"`
}

func DecodeNewResume(body []byte) (NewResume, error) {
	return parse(body, func(r *NewResume) {
		r.Filename = strings.TrimSpace(r.Filename)
		r.OriginalName = strings.TrimSpace(r.OriginalName)
		r.FileURL = strings.TrimSpace(r.FileURL)
		r.ParsedContent = optional(r.ParsedContent)
	})
}

// ValidateNewResume checks an input assembled server side, e.g. from an upload.
func ValidateNewResume(r NewResume) error {
	return check(&r)
}

func (r NewResume) Model() models.Resume {
	return models.Resume{
		Filename:      r.Filename,
		OriginalName:  r.OriginalName,
		FileURL:       r.FileURL,
		ParsedContent: r.ParsedContent,
	}
}
