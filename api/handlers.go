package api

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/errs"
)

// maxJSONBodyBytes bounds every JSON request body.
const maxJSONBodyBytes = 1 << 20

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(deps Dependencies, startupTime time.Time) *routeHandlers {
	return &routeHandlers{
		projectHandler:     newProjectHandler(deps.Projects),
		blogPostHandler:    newBlogPostHandler(deps.BlogPosts),
		testimonialHandler: newTestimonialHandler(deps.Testimonials),
		contactHandler:     newContactHandler(deps.Contacts, deps.Notifier),
		resumeHandler:      newResumeHandler(deps.Resumes, deps.Uploader),
		uploadHandler:      newUploadHandler(deps.Uploader),
		healthHandler:      newHealthHandler(deps.Ping, startupTime),
	}
}

// pathID reads a uuid path parameter. A malformed id can never have been
// issued, so callers treat !ok exactly like an absent row.
func pathID(r *http.Request, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// queryString returns nil when the parameter is missing or blank.
func queryString(r *http.Request, key string) *string {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return nil
	}
	return &value
}

// queryBool returns nil when the parameter is missing or not a boolean;
// an unparseable filter is ignored rather than rejected.
func queryBool(r *http.Request, key string) *bool {
	value, err := strconv.ParseBool(strings.TrimSpace(r.URL.Query().Get(key)))
	if err != nil {
		return nil
	}
	return &value
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxJSONBodyBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, errs.NewMaxBodySizeExceededError(maxErr.Limit)
		}
		return nil, errs.NewBadRequestError("failed to read request body")
	}
	return body, nil
}

// formFile parses a multipart request and returns the file under field.
// The body limit leaves headroom above maxFileBytes for the multipart framing.
func formFile(w http.ResponseWriter, r *http.Request, field string, maxFileBytes int64) (*multipart.FileHeader, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFileBytes+maxJSONBodyBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, errs.NewMaxBodySizeExceededError(maxFileBytes)
		}
		return nil, errs.NewInvalidMultipartError(err)
	}

	files := r.MultipartForm.File[field]
	if len(files) == 0 {
		return nil, errs.NewMissingFileError(field)
	}
	return files[0], nil
}

// uploadOutcome labels the uploads_total counter.
func uploadOutcome(err error) string {
	if errs.StatusCode(err) >= http.StatusInternalServerError {
		return "failed"
	}
	return "rejected"
}
