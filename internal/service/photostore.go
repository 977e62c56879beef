package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/monkeybio5414/mealmate-backend/config"
	"github.com/monkeybio5414/mealmate-backend/internal/models"
)

// PhotoUploader stores raw photo bytes under a key.
type PhotoUploader interface {
	Upload(ctx context.Context, key string, data []byte) error
}

// S3PhotoUploader uploads photo bytes to the configured S3 bucket.
type S3PhotoUploader struct {
	s3Config *config.S3Config
}

// NewS3PhotoUploader creates an uploader backed by the given S3 configuration.
func NewS3PhotoUploader(s3Config *config.S3Config) *S3PhotoUploader {
	return &S3PhotoUploader{s3Config: s3Config}
}

// Upload writes the photo bytes to S3.
func (u *S3PhotoUploader) Upload(ctx context.Context, key string, data []byte) error {
	_, err := u.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("image/jpeg"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload to S3: %w", err)
	}
	return nil
}

// PhotoStore persists photos and recognition results: metadata rows in the
// database, image bytes in object storage.
type PhotoStore struct {
	db       *gorm.DB
	uploader PhotoUploader
}

// NewPhotoStore creates a new PhotoStore instance.
func NewPhotoStore(db *gorm.DB, uploader PhotoUploader) *PhotoStore {
	return &PhotoStore{
		db:       db,
		uploader: uploader,
	}
}

// SavePhoto stores the image bytes and a metadata row, returning the new
// photo's id.
func (s *PhotoStore) SavePhoto(ctx context.Context, imageBase64 string, userID uuid.UUID) (uuid.UUID, error) {
	data, err := base64.StdEncoding.DecodeString(imageBase64)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to decode image: %w", err)
	}

	photo := models.Photo{
		ID:         uuid.New(),
		UserID:     userID,
		StorageKey: fmt.Sprintf("photos/%s.jpg", uuid.New().String()),
		UploadedAt: time.Now().UTC(),
	}

	if err := s.uploader.Upload(ctx, photo.StorageKey, data); err != nil {
		return uuid.Nil, err
	}

	if err := s.db.WithContext(ctx).Create(&photo).Error; err != nil {
		return uuid.Nil, fmt.Errorf("failed to save photo record: %w", err)
	}

	return photo.ID, nil
}

// SaveRecognitionResult stores the recognized ingredient list for a photo.
func (s *PhotoStore) SaveRecognitionResult(ctx context.Context, photoID uuid.UUID, ingredients []string, userID uuid.UUID) error {
	result := models.RecognitionResult{
		ID:           uuid.New(),
		PhotoID:      photoID,
		UserID:       userID,
		Ingredients:  models.JSONBStringArray(ingredients),
		RecognizedAt: time.Now().UTC(),
	}

	if err := s.db.WithContext(ctx).Create(&result).Error; err != nil {
		return fmt.Errorf("failed to save recognition result: %w", err)
	}
	return nil
}

// GetPhoto fetches one photo's metadata, scoped to its owner.
func (s *PhotoStore) GetPhoto(ctx context.Context, id, userID uuid.UUID) (*models.Photo, error) {
	var photo models.Photo
	if err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&photo).Error; err != nil {
		return nil, err
	}
	return &photo, nil
}

// GetRecognitionResult fetches one result, scoped to its owner.
func (s *PhotoStore) GetRecognitionResult(ctx context.Context, id, userID uuid.UUID) (*models.RecognitionResult, error) {
	var result models.RecognitionResult
	if err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

// ListRecognitionResults lists the user's results, newest first.
func (s *PhotoStore) ListRecognitionResults(ctx context.Context, userID uuid.UUID) ([]*models.RecognitionResult, error) {
	var results []models.RecognitionResult
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("recognized_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}

	out := make([]*models.RecognitionResult, len(results))
	for i := range results {
		out[i] = &results[i]
	}
	return out, nil
}
