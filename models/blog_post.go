package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BlogPost represents a blog article; Content holds HTML or markdown.
type BlogPost struct {
	ID        uuid.UUID `json:"id" gorm:"column:id;type:uuid;primaryKey;not null"`
	Title     string    `json:"title" gorm:"column:title;type:text;not null"`
	Excerpt   string    `json:"excerpt" gorm:"column:excerpt;type:text;not null"`
	Content   string    `json:"content" gorm:"column:content;type:text;not null"`
	Category  string    `json:"category" gorm:"column:category;type:text;not null"`
	ImageURL  *string   `json:"imageUrl" gorm:"column:image_url;type:text"`
	ReadTime  *string   `json:"readTime" gorm:"column:read_time;type:text"`
	Published bool      `json:"published" gorm:"column:published;not null;default:false;index:idx_blog_posts_published"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"column:updated_at;not null;autoUpdateTime"`
}

func (BlogPost) TableName() string {
	return "blog_posts"
}

func (b *BlogPost) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	now := time.Now().UTC()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = b.CreatedAt
	return nil
}

// BeforeSave keeps updatedAt from ever preceding createdAt.
func (b *BlogPost) BeforeSave(tx *gorm.DB) error {
	if !b.CreatedAt.IsZero() && b.UpdatedAt.Before(b.CreatedAt) {
		b.UpdatedAt = b.CreatedAt
	}
	return nil
}
