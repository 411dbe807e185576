package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site-backend/models"
	"gorm.io/gorm"
)

type ResumeRepo struct {
	db *gorm.DB
}

func NewResumeRepo(db *gorm.DB) *ResumeRepo {
	return &ResumeRepo{db}
}

// FindAll returns every resume, most recently uploaded first
func (r *ResumeRepo) FindAll(ctx context.Context) ([]*models.Resume, error) {
	resumes := []*models.Resume{}
	err := r.db.WithContext(ctx).Order("uploaded_at DESC").Find(&resumes).Error
	return resumes, err
}

func (r *ResumeRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Resume, error) {
	var resume models.Resume
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&resume).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &resume, nil
}

// FindActive returns the active resume, or nil when none is active
func (r *ResumeRepo) FindActive(ctx context.Context) (*models.Resume, error) {
	var resume models.Resume
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Take(&resume).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &resume, nil
}

func (r *ResumeRepo) Add(ctx context.Context, resume *models.Resume) error {
	return r.db.WithContext(ctx).Create(resume).Error
}

// SetActive makes id the only active resume and reports whether it exists.
//
// Clearing and setting happen in one UPDATE that touches every row, so
// concurrent activations serialize on the row locks and the last one wins.
// When id does not exist the EXISTS guard matches nothing and no row changes.
func (r *ResumeRepo) SetActive(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Resume{}).
		Where("EXISTS (SELECT 1 FROM resumes AS target WHERE target.id = ?)", id).
		Update("is_active", gorm.Expr("(id = ?)", id))
	return result.RowsAffected > 0, result.Error
}

func (r *ResumeRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Resume{})
	return result.RowsAffected > 0, result.Error
}
