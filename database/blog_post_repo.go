package database

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rpupo63/portfolio-site-backend/schema"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BlogPostRepo struct {
	db *gorm.DB
}

func NewBlogPostRepo(db *gorm.DB) *BlogPostRepo {
	return &BlogPostRepo{db}
}

// FindAll returns the blog posts matching filter, newest first
func (r *BlogPostRepo) FindAll(ctx context.Context, filter models.BlogPostFilter) ([]*models.BlogPost, error) {
	query := r.db.WithContext(ctx).Model(&models.BlogPost{})
	if filter.Published != nil {
		query = query.Where("published = ?", *filter.Published)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}

	posts := []*models.BlogPost{}
	err := query.Order("created_at DESC").Find(&posts).Error
	return posts, err
}

// FindByID returns a blog post by its ID, or nil when it does not exist
func (r *BlogPostRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.BlogPost, error) {
	var post models.BlogPost
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Add inserts a new blog post into the database
func (r *BlogPostRepo) Add(ctx context.Context, post *models.BlogPost) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// Update applies patch and refreshes updatedAt, even for an empty patch.
func (r *BlogPostRepo) Update(ctx context.Context, id uuid.UUID, patch schema.BlogPostPatch) (*models.BlogPost, error) {
	var updated *models.BlogPost
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.BlogPost
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).Take(&post).Error; err != nil {
			return err
		}

		patch.Apply(&post)
		post.ID = id
		post.UpdatedAt = time.Now().UTC()

		if err := tx.Save(&post).Error; err != nil {
			return err
		}
		updated = &post
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return updated, err
}

// Delete removes a blog post by id and reports whether a row was removed
func (r *BlogPostRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.BlogPost{})
	return result.RowsAffected > 0, result.Error
}
