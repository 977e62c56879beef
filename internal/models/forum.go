package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ForumPost struct {
	ID        uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Title     string         `gorm:"size:255;not null" json:"title"`
	Body      string         `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Comments []ForumComment `gorm:"foreignKey:PostID" json:"comments,omitempty"`
}

type ForumComment struct {
	ID        uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	PostID    uuid.UUID      `gorm:"type:varchar(36);not null;index" json:"post_id"`
	UserID    uuid.UUID      `gorm:"type:varchar(36);not null" json:"user_id"`
	Body      string         `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
