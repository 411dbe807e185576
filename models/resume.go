package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Resume is an uploaded resume document. At most one row is active; the
// deferred exclusion constraint created by Migrate backs that up.
type Resume struct {
	ID            uuid.UUID `json:"id" gorm:"column:id;type:uuid;primaryKey;not null"`
	Filename      string    `json:"filename" gorm:"column:filename;type:text;not null"`
	OriginalName  string    `json:"originalName" gorm:"column:original_name;type:text;not null"`
	FileURL       string    `json:"fileUrl" gorm:"column:file_url;type:text;not null"`
	ParsedContent *string   `json:"parsedContent" gorm:"column:parsed_content;type:text"`
	IsActive      bool      `json:"isActive" gorm:"column:is_active;not null;default:false"`
	UploadedAt    time.Time `json:"uploadedAt" gorm:"column:uploaded_at;not null;autoCreateTime"`
}

func (Resume) TableName() string {
	return "resumes"
}

// BeforeCreate assigns the id. New resumes always start inactive;
// activation goes through ResumeRepo.SetActive.
func (r *Resume) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	r.IsActive = false
	return nil
}
