package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/metrics"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rpupo63/portfolio-site-backend/schema"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type contactHandler struct {
	responder   Responder
	logger      zerolog.Logger
	contactRepo ContactSubmissionStore
	notifier    ContactNotifier
}

func newContactHandler(contactRepo ContactSubmissionStore, notifier ContactNotifier) contactHandler {
	logger := log.With().Str("handlerName", "contactHandler").Logger()

	return contactHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		contactRepo: contactRepo,
		notifier:    notifier,
	}
}

// submitContact stores the submission, then emails the owner in the
// background. The response never waits on, or reports, the email.
// @Summary Submit contact form
// @Tags Contact
// @Accept json
// @Produce json
// @Param submission body schema.NewContactSubmission true "Contact form"
// @Success 201 {object} models.ContactSubmission
// @Failure 400 {object} ErrorResponse
// @Router /api/contact [post]
func (h contactHandler) submitContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := readBody(w, r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		input, err := schema.DecodeNewContactSubmission(body)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		submission := input.Model()
		if err := h.contactRepo.Add(r.Context(), &submission); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "contact submission", err))
			return
		}

		metrics.IncrementContactSubmission()
		h.logger.Info().Str("submissionId", submission.ID.String()).Msg("contact submission received")

		if h.notifier != nil {
			notified := submission
			h.notifier.NotifyAsync(&notified)
		}

		h.responder.WriteCreated(w, submission)
	}
}

// @Summary List contact submissions
// @Tags Contact
// @Produce json
// @Success 200 {array} models.ContactSubmission
// @Router /api/contact [get]
func (h contactHandler) getAllSubmissions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		submissions, err := h.contactRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "contact submissions", err))
			return
		}
		if submissions == nil {
			submissions = []*models.ContactSubmission{}
		}

		h.responder.WriteJSON(w, submissions)
	}
}

// @Summary Get contact submission
// @Tags Contact
// @Produce json
// @Param submissionID path string true "Submission ID" format(uuid)
// @Success 200 {object} models.ContactSubmission
// @Failure 404 {object} ErrorResponse
// @Router /api/contact/{submissionID} [get]
func (h contactHandler) getSubmission() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		submissionID, ok := pathID(r, "submissionID")
		if !ok {
			h.responder.WriteError(w, errs.NewNotFoundError("contact submission not found"))
			return
		}

		submission, err := h.contactRepo.FindByID(r.Context(), submissionID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "contact submission", err))
			return
		}
		if submission == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("contact submission not found"))
			return
		}

		h.responder.WriteJSON(w, submission)
	}
}
