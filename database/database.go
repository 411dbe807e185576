package database

import (
	"context"

	"github.com/rpupo63/portfolio-site-backend/models"
	"gorm.io/gorm"
)

type Database struct {
	db                    *gorm.DB
	projectRepo           *ProjectRepo
	blogPostRepo          *BlogPostRepo
	testimonialRepo       *TestimonialRepo
	contactSubmissionRepo *ContactSubmissionRepo
	resumeRepo            *ResumeRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:                    db,
		projectRepo:           NewProjectRepo(db),
		blogPostRepo:          NewBlogPostRepo(db),
		testimonialRepo:       NewTestimonialRepo(db),
		contactSubmissionRepo: NewContactSubmissionRepo(db),
		resumeRepo:            NewResumeRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) BlogPostRepo() *BlogPostRepo {
	return d.blogPostRepo
}

func (d Database) TestimonialRepo() *TestimonialRepo {
	return d.testimonialRepo
}

func (d Database) ContactSubmissionRepo() *ContactSubmissionRepo {
	return d.contactSubmissionRepo
}

func (d Database) ResumeRepo() *ResumeRepo {
	return d.resumeRepo
}

// Migrate brings the schema up to date with the models.
func (d Database) Migrate(ctx context.Context) error {
	return models.Migrate(d.db.WithContext(ctx))
}

// Ping checks that the primary database answers.
func (d Database) Ping(ctx context.Context) error {
	var result int
	return d.db.WithContext(ctx).Raw("SELECT 1").Scan(&result).Error
}
