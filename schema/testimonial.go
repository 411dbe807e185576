package schema

import (
	"strings"

	"github.com/rpupo63/portfolio-site-backend/models"
)

type NewTestimonial struct {
	Name      string  `json:"name" validate:"required,max=120"`
	Role      string  `json:"role" validate:"required,max=120"`
	Company   string  `json:"company" validate:"required,max=120"`
	Content   string  `json:"content" validate:"required"`
	AvatarURL *string `json:"avatarUrl"`
	Rating    string  `json:"rating" validate:"max=10"`
	Featured  bool    `json:"featured"`
}

func DecodeNewTestimonial(body []byte) (NewTestimonial, error) {
	return parse(body, func(t *NewTestimonial) {
		t.Name = strings.TrimSpace(t.Name)
		t.Role = strings.TrimSpace(t.Role)
		t.Company = strings.TrimSpace(t.Company)
		t.Content = strings.TrimSpace(t.Content)
		t.AvatarURL = optional(t.AvatarURL)
		t.Rating = strings.TrimSpace(t.Rating)
		if t.Rating == "" {
			t.Rating = models.DefaultRating
		}
	})
}

func (t NewTestimonial) Model() models.Testimonial {
	return models.Testimonial{
		Name:      t.Name,
		Role:      t.Role,
		Company:   t.Company,
		Content:   t.Content,
		AvatarURL: t.AvatarURL,
		Rating:    t.Rating,
		Featured:  t.Featured,
	}
}
