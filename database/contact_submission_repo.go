package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/models"
	"gorm.io/gorm"
)

// ContactSubmissionRepo is append-only: submissions are never updated or deleted.
type ContactSubmissionRepo struct {
	db *gorm.DB
}

func NewContactSubmissionRepo(db *gorm.DB) *ContactSubmissionRepo {
	return &ContactSubmissionRepo{db}
}

// FindAll returns every submission, most recent first
func (r *ContactSubmissionRepo) FindAll(ctx context.Context) ([]*models.ContactSubmission, error) {
	submissions := []*models.ContactSubmission{}
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&submissions).Error
	return submissions, err
}

func (r *ContactSubmissionRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.ContactSubmission, error) {
	var submission models.ContactSubmission
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&submission).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *ContactSubmissionRepo) Add(ctx context.Context, submission *models.ContactSubmission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}
