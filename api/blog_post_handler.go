package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rpupo63/portfolio-site-backend/schema"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type blogPostHandler struct {
	responder    Responder
	logger       zerolog.Logger
	blogPostRepo BlogPostStore
}

func newBlogPostHandler(blogPostRepo BlogPostStore) blogPostHandler {
	logger := log.With().Str("handlerName", "blogPostHandler").Logger()

	return blogPostHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		blogPostRepo: blogPostRepo,
	}
}

// getAllBlogPosts lists posts, newest first
// @Summary List blog posts
// @Tags Blog Posts
// @Produce json
// @Param published query bool false "Published flag"
// @Param category query string false "Exact category"
// @Success 200 {array} models.BlogPost
// @Failure 500 {object} ErrorResponse
// @Router /api/blog [get]
func (h blogPostHandler) getAllBlogPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := models.BlogPostFilter{
			Category:  queryString(r, "category"),
			Published: queryBool(r, "published"),
		}

		posts, err := h.blogPostRepo.FindAll(r.Context(), filter)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog posts", err))
			return
		}
		if posts == nil {
			posts = []*models.BlogPost{}
		}

		h.responder.WriteJSON(w, posts)
	}
}

// getBlogPost retrieves a specific blog post by ID
// @Summary Get blog post
// @Tags Blog Posts
// @Produce json
// @Param blogPostID path string true "Blog post ID" format(uuid)
// @Success 200 {object} models.BlogPost
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/blog/{blogPostID} [get]
func (h blogPostHandler) getBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogPostID, ok := pathID(r, "blogPostID")
		if !ok {
			h.responder.WriteError(w, errs.NewNotFoundError("blog post not found"))
			return
		}

		post, err := h.blogPostRepo.FindByID(r.Context(), blogPostID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog post", err))
			return
		}
		if post == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("blog post not found"))
			return
		}

		h.responder.WriteJSON(w, post)
	}
}

// createBlogPost creates a new blog post
// @Summary Create blog post
// @Tags Blog Posts
// @Accept json
// @Produce json
// @Param blogPost body schema.NewBlogPost true "Blog post data"
// @Success 201 {object} models.BlogPost
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/blog [post]
func (h blogPostHandler) createBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := readBody(w, r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		input, err := schema.DecodeNewBlogPost(body)
		if err != nil {
			h.logger.Debug().Err(err).Msg("rejected blog post payload")
			h.responder.WriteError(w, err)
			return
		}

		post := input.Model()
		if err := h.blogPostRepo.Add(r.Context(), &post); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "blog post", err))
			return
		}

		h.responder.WriteCreated(w, post)
	}
}

// updateBlogPost applies a partial update and refreshes updatedAt, even
// when the patch is empty.
// @Summary Update blog post
// @Tags Blog Posts
// @Accept json
// @Produce json
// @Param blogPostID path string true "Blog post ID" format(uuid)
// @Param blogPost body schema.BlogPostPatch true "Fields to change"
// @Success 200 {object} models.BlogPost
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/blog/{blogPostID} [patch]
func (h blogPostHandler) updateBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogPostID, ok := pathID(r, "blogPostID")
		if !ok {
			h.responder.WriteError(w, errs.NewNotFoundError("blog post not found"))
			return
		}

		body, err := readBody(w, r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		patch, err := schema.DecodeBlogPostPatch(body)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post, err := h.blogPostRepo.Update(r.Context(), blogPostID, patch)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "blog post", err))
			return
		}
		if post == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("blog post not found"))
			return
		}

		h.responder.WriteJSON(w, post)
	}
}

// deleteBlogPost deletes a blog post by ID
// @Summary Delete blog post
// @Tags Blog Posts
// @Param blogPostID path string true "Blog post ID" format(uuid)
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/blog/{blogPostID} [delete]
func (h blogPostHandler) deleteBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogPostID, ok := pathID(r, "blogPostID")
		if !ok {
			h.responder.WriteError(w, errs.NewNotFoundError("blog post not found"))
			return
		}

		deleted, err := h.blogPostRepo.Delete(r.Context(), blogPostID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "blog post", err))
			return
		}
		if !deleted {
			h.responder.WriteError(w, errs.NewNotFoundError("blog post not found"))
			return
		}

		h.responder.WriteNoContent(w)
	}
}
