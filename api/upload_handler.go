package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-site-backend/metrics"
	"github.com/rpupo63/portfolio-site-backend/resumeparse"
	"github.com/rpupo63/portfolio-site-backend/uploads"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const uploadFormField = "file"

type uploadHandler struct {
	responder Responder
	logger    zerolog.Logger
	uploader  *uploads.Uploader
}

func newUploadHandler(uploader *uploads.Uploader) uploadHandler {
	logger := log.With().Str("handlerName", "uploadHandler").Logger()

	return uploadHandler{
		responder: NewResponder(logger),
		logger:    logger,
		uploader:  uploader,
	}
}

// uploadFile stores one file and returns where it is served from.
// @Summary Upload file
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File"
// @Success 201 {object} uploads.File
// @Failure 400 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse
// @Failure 415 {object} ErrorResponse
// @Router /api/upload [post]
func (h uploadHandler) uploadFile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header, err := formFile(w, r, uploadFormField, h.uploader.MaxBytes())
		if err != nil {
			metrics.IncrementUpload("file", uploadOutcome(err))
			h.responder.WriteError(w, err)
			return
		}

		file, err := h.uploader.Accept(r.Context(), header)
		if err != nil {
			metrics.IncrementUpload("file", uploadOutcome(err))
			h.responder.WriteError(w, err)
			return
		}

		metrics.IncrementUpload("file", "stored")
		h.logger.Info().
			Str("filename", file.Filename).
			Str("mimeType", file.MimeType).
			Int64("size", file.Size).
			Msg("file uploaded")
		h.responder.WriteCreated(w, file)
	}
}

// parseResume extracts contact fields from a resume without storing it.
// Only plain text is parsed; other allowed formats return parsed=false.
// @Summary Parse resume
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Param resume formData file true "Resume document"
// @Success 200 {object} resumeparse.Result
// @Failure 400 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse
// @Failure 415 {object} ErrorResponse
// @Router /api/parse-resume [post]
func (h uploadHandler) parseResume() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header, err := formFile(w, r, resumeFormField, h.uploader.MaxBytes())
		if err != nil {
			metrics.IncrementUpload("parse", uploadOutcome(err))
			h.responder.WriteError(w, err)
			return
		}

		file, err := h.uploader.Inspect(header)
		if err != nil {
			metrics.IncrementUpload("parse", uploadOutcome(err))
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, resumeparse.Parse(file.MimeType, file.Content))
	}
}
