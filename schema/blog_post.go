package schema

import (
	"strings"

	"github.com/rpupo63/portfolio-site-backend/models"
)

type NewBlogPost struct {
	Title     string  `json:"title" validate:"required,max=200"`
	Excerpt   string  `json:"excerpt" validate:"required"`
	Content   string  `json:"content" validate:"required"`
	Category  string  `json:"category" validate:"required,max=50"`
	ImageURL  *string `json:"imageUrl"`
	ReadTime  *string `json:"readTime"`
	Published bool    `json:"published"`
}

func DecodeNewBlogPost(body []byte) (NewBlogPost, error) {
	return parse(body, func(b *NewBlogPost) {
		b.Title = strings.TrimSpace(b.Title)
		b.Excerpt = strings.TrimSpace(b.Excerpt)
		b.Category = strings.TrimSpace(b.Category)
		// content is stored verbatim; only reject it when blank
		if strings.TrimSpace(b.Content) == "" {
			b.Content = ""
		}
		b.ImageURL = optional(b.ImageURL)
		b.ReadTime = optional(b.ReadTime)
	})
}

func (b NewBlogPost) Model() models.BlogPost {
	return models.BlogPost{
		Title:     b.Title,
		Excerpt:   b.Excerpt,
		Content:   b.Content,
		Category:  b.Category,
		ImageURL:  b.ImageURL,
		ReadTime:  b.ReadTime,
		Published: b.Published,
	}
}

type BlogPostPatch struct {
	Title     *string `json:"title" validate:"omitnil,min=1,max=200"`
	Excerpt   *string `json:"excerpt" validate:"omitnil,min=1"`
	Content   *string `json:"content" validate:"omitnil,min=1"`
	Category  *string `json:"category" validate:"omitnil,min=1,max=50"`
	ImageURL  *string `json:"imageUrl"`
	ReadTime  *string `json:"readTime"`
	Published *bool   `json:"published"`
}

func DecodeBlogPostPatch(body []byte) (BlogPostPatch, error) {
	return parse(body, func(b *BlogPostPatch) {
		b.Title = patched(b.Title)
		b.Excerpt = patched(b.Excerpt)
		b.Category = patched(b.Category)
		if b.Content != nil && strings.TrimSpace(*b.Content) == "" {
			empty := ""
			b.Content = &empty
		}
		b.ImageURL = patched(b.ImageURL)
		b.ReadTime = patched(b.ReadTime)
	})
}

// Apply copies the present fields onto post. updatedAt is refreshed by the store.
func (b BlogPostPatch) Apply(post *models.BlogPost) {
	if b.Title != nil {
		post.Title = *b.Title
	}
	if b.Excerpt != nil {
		post.Excerpt = *b.Excerpt
	}
	if b.Content != nil {
		post.Content = *b.Content
	}
	if b.Category != nil {
		post.Category = *b.Category
	}
	if b.ImageURL != nil {
		post.ImageURL = optional(b.ImageURL)
	}
	if b.ReadTime != nil {
		post.ReadTime = optional(b.ReadTime)
	}
	if b.Published != nil {
		post.Published = *b.Published
	}
}
