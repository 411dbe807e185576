package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContactSubmission is an append-only contact form entry.
type ContactSubmission struct {
	ID          uuid.UUID `json:"id" gorm:"column:id;type:uuid;primaryKey;not null"`
	FirstName   string    `json:"firstName" gorm:"column:first_name;type:text;not null"`
	LastName    string    `json:"lastName" gorm:"column:last_name;type:text;not null"`
	Email       string    `json:"email" gorm:"column:email;type:text;not null"`
	Company     *string   `json:"company" gorm:"column:company;type:text"`
	ProjectType *string   `json:"projectType" gorm:"column:project_type;type:text"`
	Message     string    `json:"message" gorm:"column:message;type:text;not null"`
	CreatedAt   time.Time `json:"createdAt" gorm:"column:created_at;not null;autoCreateTime;index:idx_contact_submissions_created_at"`
}

func (ContactSubmission) TableName() string {
	return "contact_submissions"
}

func (c *ContactSubmission) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// FullName joins first and last name for display.
func (c ContactSubmission) FullName() string {
	return c.FirstName + " " + c.LastName
}
