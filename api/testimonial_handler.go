package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rpupo63/portfolio-site-backend/schema"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type testimonialHandler struct {
	responder       Responder
	logger          zerolog.Logger
	testimonialRepo TestimonialStore
}

func newTestimonialHandler(testimonialRepo TestimonialStore) testimonialHandler {
	logger := log.With().Str("handlerName", "testimonialHandler").Logger()

	return testimonialHandler{
		responder:       NewResponder(logger),
		logger:          logger,
		testimonialRepo: testimonialRepo,
	}
}

// @Summary List testimonials
// @Tags Testimonials
// @Produce json
// @Param featured query bool false "Featured flag"
// @Success 200 {array} models.Testimonial
// @Router /api/testimonials [get]
func (h testimonialHandler) getAllTestimonials() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := models.TestimonialFilter{Featured: queryBool(r, "featured")}

		testimonials, err := h.testimonialRepo.FindAll(r.Context(), filter)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "testimonials", err))
			return
		}
		if testimonials == nil {
			testimonials = []*models.Testimonial{}
		}

		h.responder.WriteJSON(w, testimonials)
	}
}

// @Summary Get testimonial
// @Tags Testimonials
// @Produce json
// @Param testimonialID path string true "Testimonial ID" format(uuid)
// @Success 200 {object} models.Testimonial
// @Failure 404 {object} ErrorResponse
// @Router /api/testimonials/{testimonialID} [get]
func (h testimonialHandler) getTestimonial() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		testimonialID, ok := pathID(r, "testimonialID")
		if !ok {
			h.responder.WriteError(w, errs.NewNotFoundError("testimonial not found"))
			return
		}

		testimonial, err := h.testimonialRepo.FindByID(r.Context(), testimonialID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "testimonial", err))
			return
		}
		if testimonial == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("testimonial not found"))
			return
		}

		h.responder.WriteJSON(w, testimonial)
	}
}

// @Summary Create testimonial
// @Tags Testimonials
// @Accept json
// @Produce json
// @Param testimonial body schema.NewTestimonial true "Testimonial data"
// @Success 201 {object} models.Testimonial
// @Failure 400 {object} ErrorResponse
// @Router /api/testimonials [post]
func (h testimonialHandler) createTestimonial() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := readBody(w, r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		input, err := schema.DecodeNewTestimonial(body)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		testimonial := input.Model()
		if err := h.testimonialRepo.Add(r.Context(), &testimonial); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "testimonial", err))
			return
		}

		h.responder.WriteCreated(w, testimonial)
	}
}

// @Summary Delete testimonial
// @Tags Testimonials
// @Param testimonialID path string true "Testimonial ID" format(uuid)
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /api/testimonials/{testimonialID} [delete]
func (h testimonialHandler) deleteTestimonial() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		testimonialID, ok := pathID(r, "testimonialID")
		if !ok {
			h.responder.WriteError(w, errs.NewNotFoundError("testimonial not found"))
			return
		}

		deleted, err := h.testimonialRepo.Delete(r.Context(), testimonialID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "testimonial", err))
			return
		}
		if !deleted {
			h.responder.WriteError(w, errs.NewNotFoundError("testimonial not found"))
			return
		}

		h.responder.WriteNoContent(w)
	}
}
