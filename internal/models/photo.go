package models

import (
	"time"

	"github.com/google/uuid"
)

// Photo is the metadata row for a captured image. The bytes themselves live
// in object storage under StorageKey.
type Photo struct {
	ID         uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID     uuid.UUID `gorm:"type:varchar(36);not null;index" json:"user_id"`
	StorageKey string    `gorm:"size:255;not null" json:"storage_key"`
	UploadedAt time.Time `gorm:"not null" json:"uploaded_at"`
}

// RecognitionResult stores the ingredients identified in one photo. The
// ingredient list keeps the order the model returned it in.
type RecognitionResult struct {
	ID           uuid.UUID        `gorm:"type:varchar(36);primarykey" json:"id"`
	PhotoID      uuid.UUID        `gorm:"type:varchar(36);not null;index" json:"photo_id"`
	UserID       uuid.UUID        `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Ingredients  JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	RecognizedAt time.Time        `gorm:"not null" json:"recognized_at"`
}
