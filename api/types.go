package api

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rpupo63/portfolio-site-backend/schema"
	"github.com/rpupo63/portfolio-site-backend/uploads"
)

// ProjectStore is satisfied by *database.ProjectRepo.
type ProjectStore interface {
	FindAll(ctx context.Context, filter models.ProjectFilter) ([]*models.Project, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	Add(ctx context.Context, project *models.Project) error
	Update(ctx context.Context, id uuid.UUID, patch schema.ProjectPatch) (*models.Project, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type BlogPostStore interface {
	FindAll(ctx context.Context, filter models.BlogPostFilter) ([]*models.BlogPost, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.BlogPost, error)
	Add(ctx context.Context, post *models.BlogPost) error
	Update(ctx context.Context, id uuid.UUID, patch schema.BlogPostPatch) (*models.BlogPost, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type TestimonialStore interface {
	FindAll(ctx context.Context, filter models.TestimonialFilter) ([]*models.Testimonial, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Testimonial, error)
	Add(ctx context.Context, testimonial *models.Testimonial) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type ContactSubmissionStore interface {
	FindAll(ctx context.Context) ([]*models.ContactSubmission, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.ContactSubmission, error)
	Add(ctx context.Context, submission *models.ContactSubmission) error
}

type ResumeStore interface {
	FindAll(ctx context.Context) ([]*models.Resume, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Resume, error)
	FindActive(ctx context.Context) (*models.Resume, error)
	Add(ctx context.Context, resume *models.Resume) error
	SetActive(ctx context.Context, id uuid.UUID) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// ContactNotifier is satisfied by *services.ContactNotifier.
type ContactNotifier interface {
	NotifyAsync(submission *models.ContactSubmission) <-chan struct{}
}

// Dependencies is everything the router needs. Notifier and Ping may be nil.
type Dependencies struct {
	Projects     ProjectStore
	BlogPosts    BlogPostStore
	Testimonials TestimonialStore
	Contacts     ContactSubmissionStore
	Resumes      ResumeStore

	Uploader *uploads.Uploader
	// Files is served under its URL prefix when it is a *uploads.LocalStore
	Files uploads.Store

	Notifier ContactNotifier
	Ping     func(ctx context.Context) error
}

// NewDependencies wires the gorm backed repositories.
func NewDependencies(db database.Database, uploader *uploads.Uploader, files uploads.Store) Dependencies {
	return Dependencies{
		Projects:     db.ProjectRepo(),
		BlogPosts:    db.BlogPostRepo(),
		Testimonials: db.TestimonialRepo(),
		Contacts:     db.ContactSubmissionRepo(),
		Resumes:      db.ResumeRepo(),
		Uploader:     uploader,
		Files:        files,
		Ping:         db.Ping,
	}
}

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	projectHandler     projectHandler
	blogPostHandler    blogPostHandler
	testimonialHandler testimonialHandler
	contactHandler     contactHandler
	resumeHandler      resumeHandler
	uploadHandler      uploadHandler
	healthHandler      healthHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string            `json:"error" example:"Internal Server Error"`
	Status  string            `json:"status" example:"error"`
	Field   string            `json:"field,omitempty" example:"title"`
	Fields  []errs.FieldError `json:"fields,omitempty"`
	Details string            `json:"details,omitempty" example:"Additional error details"`
	Cause   string            `json:"cause,omitempty" example:"Underlying error cause"`
}
