package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rpupo63/portfolio-site-backend/uploads"
)

// setupRoutes registers the JSON API, uploads and health routes. /metrics is
// mounted here only when it has no listener of its own.
func setupRoutes(r chi.Router, handlers *routeHandlers, files uploads.Store, publicMetrics bool) {
	r.Get("/health", handlers.healthHandler.health())
	if publicMetrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	if local, ok := files.(*uploads.LocalStore); ok {
		fileServer := http.StripPrefix(local.URLPrefix(), http.FileServer(http.Dir(local.Root())))
		r.With(uploadHeaders).Get(local.URLPrefix()+"/*", fileServer.ServeHTTP)
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/projects", func(r chi.Router) {
			r.Get("/", handlers.projectHandler.getAllProjects())
			r.Post("/", handlers.projectHandler.createProject())
			r.Get("/{projectID}", handlers.projectHandler.getProject())
			r.Put("/{projectID}", handlers.projectHandler.updateProject())
			r.Patch("/{projectID}", handlers.projectHandler.updateProject())
			r.Delete("/{projectID}", handlers.projectHandler.deleteProject())
		})

		r.Route("/blog", func(r chi.Router) {
			r.Get("/", handlers.blogPostHandler.getAllBlogPosts())
			r.Post("/", handlers.blogPostHandler.createBlogPost())
			r.Get("/{blogPostID}", handlers.blogPostHandler.getBlogPost())
			r.Put("/{blogPostID}", handlers.blogPostHandler.updateBlogPost())
			r.Patch("/{blogPostID}", handlers.blogPostHandler.updateBlogPost())
			r.Delete("/{blogPostID}", handlers.blogPostHandler.deleteBlogPost())
		})

		r.Route("/testimonials", func(r chi.Router) {
			r.Get("/", handlers.testimonialHandler.getAllTestimonials())
			r.Post("/", handlers.testimonialHandler.createTestimonial())
			r.Get("/{testimonialID}", handlers.testimonialHandler.getTestimonial())
			r.Delete("/{testimonialID}", handlers.testimonialHandler.deleteTestimonial())
		})

		r.Route("/contact", func(r chi.Router) {
			r.Get("/", handlers.contactHandler.getAllSubmissions())
			r.Post("/", handlers.contactHandler.submitContact())
			r.Get("/{submissionID}", handlers.contactHandler.getSubmission())
		})

		r.Route("/resumes", func(r chi.Router) {
			r.Get("/", handlers.resumeHandler.getAllResumes())
			r.Post("/", handlers.resumeHandler.createResume())
			r.Post("/upload", handlers.resumeHandler.uploadResume())
			r.Get("/active", handlers.resumeHandler.getActiveResume())
			r.Get("/{resumeID}", handlers.resumeHandler.getResume())
			r.Put("/{resumeID}/activate", handlers.resumeHandler.activateResume())
			r.Delete("/{resumeID}", handlers.resumeHandler.deleteResume())
		})

		r.Post("/upload", handlers.uploadHandler.uploadFile())
		r.Post("/parse-resume", handlers.uploadHandler.parseResume())
	})
}
