package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/metrics"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rpupo63/portfolio-site-backend/resumeparse"
	"github.com/rpupo63/portfolio-site-backend/schema"
	"github.com/rpupo63/portfolio-site-backend/uploads"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const resumeFormField = "resume"

type resumeHandler struct {
	responder  Responder
	logger     zerolog.Logger
	resumeRepo ResumeStore
	uploader   *uploads.Uploader
}

func newResumeHandler(resumeRepo ResumeStore, uploader *uploads.Uploader) resumeHandler {
	logger := log.With().Str("handlerName", "resumeHandler").Logger()

	return resumeHandler{
		responder:  NewResponder(logger),
		logger:     logger,
		resumeRepo: resumeRepo,
		uploader:   uploader,
	}
}

// @Summary List resumes
// @Tags Resumes
// @Produce json
// @Success 200 {array} models.Resume
// @Router /api/resumes [get]
func (h resumeHandler) getAllResumes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resumes, err := h.resumeRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "resumes", err))
			return
		}
		if resumes == nil {
			resumes = []*models.Resume{}
		}

		h.responder.WriteJSON(w, resumes)
	}
}

// @Summary Get the active resume
// @Tags Resumes
// @Produce json
// @Success 200 {object} models.Resume
// @Failure 404 {object} ErrorResponse "No resume is active"
// @Router /api/resumes/active [get]
func (h resumeHandler) getActiveResume() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resume, err := h.resumeRepo.FindActive(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "active resume", err))
			return
		}
		if resume == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("no active resume"))
			return
		}

		h.responder.WriteJSON(w, resume)
	}
}

// @Summary Get resume
// @Tags Resumes
// @Produce json
// @Param resumeID path string true "Resume ID" format(uuid)
// @Success 200 {object} models.Resume
// @Failure 404 {object} ErrorResponse
// @Router /api/resumes/{resumeID} [get]
func (h resumeHandler) getResume() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resumeID, ok := pathID(r, "resumeID")
		if !ok {
			h.responder.WriteError(w, errs.NewNotFoundError("resume not found"))
			return
		}

		resume, err := h.resumeRepo.FindByID(r.Context(), resumeID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "resume", err))
			return
		}
		if resume == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("resume not found"))
			return
		}

		h.responder.WriteJSON(w, resume)
	}
}

// createResume registers a file that was already uploaded through /api/upload.
// @Summary Create resume record
// @Tags Resumes
// @Accept json
// @Produce json
// @Param resume body schema.NewResume true "Resume record"
// @Success 201 {object} models.Resume
// @Failure 400 {object} ErrorResponse
// @Router /api/resumes [post]
func (h resumeHandler) createResume() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := readBody(w, r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		input, err := schema.DecodeNewResume(body)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.add(w, r, input)
	}
}

// uploadResume stores the file and creates its record in one request. Plain
// text resumes get their extracted fields saved as parsedContent.
// @Summary Upload resume
// @Tags Resumes
// @Accept multipart/form-data
// @Produce json
// @Param resume formData file true "Resume document"
// @Success 201 {object} models.Resume
// @Failure 400 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse
// @Failure 415 {object} ErrorResponse
// @Router /api/resumes/upload [post]
func (h resumeHandler) uploadResume() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header, err := formFile(w, r, resumeFormField, h.uploader.MaxBytes())
		if err != nil {
			metrics.IncrementUpload("resume", uploadOutcome(err))
			h.responder.WriteError(w, err)
			return
		}

		file, err := h.uploader.Accept(r.Context(), header)
		if err != nil {
			metrics.IncrementUpload("resume", uploadOutcome(err))
			h.responder.WriteError(w, err)
			return
		}
		metrics.IncrementUpload("resume", "stored")

		input := schema.NewResume{
			Filename:     file.Filename,
			OriginalName: file.OriginalName,
			FileURL:      file.URL,
		}
		if file.IsText() {
			parsed, err := json.Marshal(resumeparse.ParseText(string(file.Content)))
			if err != nil {
				h.discard(r, file)
				h.responder.WriteError(w, errs.NewInternalErrorWithCause("encode parsed resume", err))
				return
			}
			content := string(parsed)
			input.ParsedContent = &content
		}

		if err := schema.ValidateNewResume(input); err != nil {
			h.discard(r, file)
			h.responder.WriteError(w, err)
			return
		}

		if !h.add(w, r, input) {
			h.discard(r, file)
		}
	}
}

// add reports whether the record was written.
func (h resumeHandler) add(w http.ResponseWriter, r *http.Request, input schema.NewResume) bool {
	resume := input.Model()
	if err := h.resumeRepo.Add(r.Context(), &resume); err != nil {
		h.responder.WriteError(w, wrapDatabaseError("create", "resume", err))
		return false
	}

	h.responder.WriteCreated(w, resume)
	return true
}

// discard drops a stored file that no resume row points at.
func (h resumeHandler) discard(r *http.Request, file *uploads.File) {
	if err := h.uploader.Discard(context.WithoutCancel(r.Context()), file); err != nil {
		h.logger.Error().Err(err).Str("filename", file.Filename).Msg("orphaned resume upload left in store")
	}
}

// activateResume makes the resume the only active one.
// @Summary Activate resume
// @Tags Resumes
// @Produce json
// @Param resumeID path string true "Resume ID" format(uuid)
// @Success 200 {object} models.Resume
// @Failure 404 {object} ErrorResponse
// @Router /api/resumes/{resumeID}/activate [put]
func (h resumeHandler) activateResume() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resumeID, ok := pathID(r, "resumeID")
		if !ok {
			h.responder.WriteError(w, errs.NewNotFoundError("resume not found"))
			return
		}

		found, err := h.resumeRepo.SetActive(r.Context(), resumeID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("activate", "resume", err))
			return
		}
		if !found {
			h.responder.WriteError(w, errs.NewNotFoundError("resume not found"))
			return
		}

		resume, err := h.resumeRepo.FindByID(r.Context(), resumeID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "resume", err))
			return
		}
		if resume == nil {
			// deleted between the two statements
			h.responder.WriteError(w, errs.NewNotFoundError("resume not found"))
			return
		}

		h.logger.Info().Str("resumeId", resumeID.String()).Msg("resume activated")
		h.responder.WriteJSON(w, resume)
	}
}

// @Summary Delete resume
// @Tags Resumes
// @Param resumeID path string true "Resume ID" format(uuid)
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /api/resumes/{resumeID} [delete]
func (h resumeHandler) deleteResume() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resumeID, ok := pathID(r, "resumeID")
		if !ok {
			h.responder.WriteError(w, errs.NewNotFoundError("resume not found"))
			return
		}

		deleted, err := h.resumeRepo.Delete(r.Context(), resumeID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "resume", err))
			return
		}
		if !deleted {
			h.responder.WriteError(w, errs.NewNotFoundError("resume not found"))
			return
		}

		h.responder.WriteNoContent(w)
	}
}
