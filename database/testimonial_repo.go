package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/models"
	"gorm.io/gorm"
)

type TestimonialRepo struct {
	db *gorm.DB
}

func NewTestimonialRepo(db *gorm.DB) *TestimonialRepo {
	return &TestimonialRepo{db}
}

// FindAll returns the testimonials matching filter. No order is guaranteed.
func (r *TestimonialRepo) FindAll(ctx context.Context, filter models.TestimonialFilter) ([]*models.Testimonial, error) {
	query := r.db.WithContext(ctx).Model(&models.Testimonial{})
	if filter.Featured != nil {
		query = query.Where("featured = ?", *filter.Featured)
	}

	testimonials := []*models.Testimonial{}
	err := query.Find(&testimonials).Error
	return testimonials, err
}

func (r *TestimonialRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Testimonial, error) {
	var testimonial models.Testimonial
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&testimonial).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &testimonial, nil
}

func (r *TestimonialRepo) Add(ctx context.Context, testimonial *models.Testimonial) error {
	return r.db.WithContext(ctx).Create(testimonial).Error
}

func (r *TestimonialRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Testimonial{})
	return result.RowsAffected > 0, result.Error
}
