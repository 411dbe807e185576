package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Known project categories. Storage keeps category as an open string.
const (
	CategoryELearning  = "elearning"
	CategoryMobile     = "mobile"
	CategoryCorporate  = "corporate"
	CategoryAssessment = "assessment"
)

// Project represents a portfolio showcase entry
type Project struct {
	ID              uuid.UUID                   `json:"id" gorm:"column:id;type:uuid;primaryKey;not null"`
	Title           string                      `json:"title" gorm:"column:title;type:text;not null"`
	Description     string                      `json:"description" gorm:"column:description;type:text;not null"`
	LongDescription *string                     `json:"longDescription" gorm:"column:long_description;type:text"`
	Category        string                      `json:"category" gorm:"column:category;type:text;not null;index:idx_projects_category"`
	Tools           datatypes.JSONSlice[string] `json:"tools" gorm:"column:tools;not null"`
	ImageURL        *string                     `json:"imageUrl" gorm:"column:image_url;type:text"`
	CaseStudyURL    *string                     `json:"caseStudyUrl" gorm:"column:case_study_url;type:text"`
	ScormURL        *string                     `json:"scormUrl" gorm:"column:scorm_url;type:text"`
	DemoURL         *string                     `json:"demoUrl" gorm:"column:demo_url;type:text"`
	Featured        bool                        `json:"featured" gorm:"column:featured;not null;default:false"`
	CreatedAt       time.Time                   `json:"createdAt" gorm:"column:created_at;not null;autoCreateTime"`
}

func (Project) TableName() string {
	return "projects"
}

// BeforeCreate assigns the id and normalizes the tools list.
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Tools == nil {
		p.Tools = datatypes.JSONSlice[string]{}
	}
	return nil
}
