package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultRating = "5"

type Testimonial struct {
	ID        uuid.UUID `json:"id" gorm:"column:id;type:uuid;primaryKey;not null"`
	Name      string    `json:"name" gorm:"column:name;type:text;not null"`
	Role      string    `json:"role" gorm:"column:role;type:text;not null"`
	Company   string    `json:"company" gorm:"column:company;type:text;not null"`
	Content   string    `json:"content" gorm:"column:content;type:text;not null"`
	AvatarURL *string   `json:"avatarUrl" gorm:"column:avatar_url;type:text"`
	Rating    string    `json:"rating" gorm:"column:rating;type:text;not null;default:'5'"`
	Featured  bool      `json:"featured" gorm:"column:featured;not null;default:false"`
}

func (Testimonial) TableName() string {
	return "testimonials"
}

func (t *Testimonial) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Rating == "" {
		t.Rating = DefaultRating
	}
	return nil
}
