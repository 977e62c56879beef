package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/monkeybio5414/mealmate-backend/internal/models"
	"github.com/monkeybio5414/mealmate-backend/internal/vision"
)

// latestResultTTL keeps the most recent recognition result around long enough
// for the mobile client to re-fetch it without a second inference call.
const latestResultTTL = 24 * time.Hour

// photoURLTTL bounds presigned photo download links.
const photoURLTTL = 15 * time.Minute

// ErrPhotoURLUnavailable is returned when no URL signer is configured.
var ErrPhotoURLUnavailable = errors.New("photo URLs not available")

// RecognitionService runs the photo recognition pipeline: encode the image,
// build the vision request, call the API once, parse the reply, and persist
// the outcome. The vision caller and store are injected so the pipeline can
// be exercised without a live network or database.
type RecognitionService struct {
	caller VisionCaller
	store  RecognitionStore
	redis  *redis.Client
	signer PhotoURLSigner
}

// NewRecognitionService creates a new RecognitionService instance. The redis
// client and URL signer are optional; without them the latest-result cache
// and photo download links are disabled.
func NewRecognitionService(caller VisionCaller, store RecognitionStore, redisClient *redis.Client, signer PhotoURLSigner) *RecognitionService {
	return &RecognitionService{
		caller: caller,
		store:  store,
		redis:  redisClient,
		signer: signer,
	}
}

// RecognizePhoto runs one recognition invocation. Transport-level failures are
// returned as errors; model-output problems come back inside the Result's
// Error field. Persistence failures are logged and never abort the call,
// so the user still gets their result.
func (s *RecognitionService) RecognizePhoto(ctx context.Context, image []byte, userID uuid.UUID) (vision.Result, error) {
	encoded := vision.EncodeImage(image)
	request := vision.BuildRequest(encoded)

	raw, err := s.caller.Complete(ctx, request)
	if err != nil {
		return vision.Result{}, fmt.Errorf("recognition call failed: %w", err)
	}

	result := vision.ParseResponse(raw)

	if result.Error == "" {
		photoID, err := s.store.SavePhoto(ctx, encoded, userID)
		if err != nil {
			log.Printf("[RecognitionService] failed to save photo for user %s: %v", userID, err)
		} else if err := s.store.SaveRecognitionResult(ctx, photoID, result.Ingredients, userID); err != nil {
			log.Printf("[RecognitionService] failed to save recognition result for photo %s: %v", photoID, err)
		}
	}

	s.cacheLatest(ctx, userID, result)

	return result, nil
}

// LatestResult returns the most recently cached result for the user, or nil
// when none is cached.
func (s *RecognitionService) LatestResult(ctx context.Context, userID uuid.UUID) (*vision.Result, error) {
	if s.redis == nil {
		return nil, nil
	}

	data, err := s.redis.Get(ctx, latestResultKey(userID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached result: %w", err)
	}

	var result vision.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached result: %w", err)
	}
	return &result, nil
}

// History lists the user's stored recognition results, newest first.
func (s *RecognitionService) History(ctx context.Context, userID uuid.UUID) ([]*models.RecognitionResult, error) {
	return s.store.ListRecognitionResults(ctx, userID)
}

// PhotoURL returns a short-lived download URL for one of the user's photos.
func (s *RecognitionService) PhotoURL(ctx context.Context, userID, photoID uuid.UUID) (string, error) {
	if s.signer == nil {
		return "", ErrPhotoURLUnavailable
	}

	photo, err := s.store.GetPhoto(ctx, photoID, userID)
	if err != nil {
		return "", err
	}
	return s.signer.GeneratePresignedURL(ctx, photo.StorageKey, photoURLTTL)
}

func (s *RecognitionService) cacheLatest(ctx context.Context, userID uuid.UUID, result vision.Result) {
	if s.redis == nil {
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		log.Printf("[RecognitionService] failed to marshal result for cache: %v", err)
		return
	}
	if err := s.redis.Set(ctx, latestResultKey(userID), data, latestResultTTL).Err(); err != nil {
		log.Printf("[RecognitionService] failed to cache result for user %s: %v", userID, err)
	}
}

func latestResultKey(userID uuid.UUID) string {
	return fmt.Sprintf("recognition:latest:%s", userID)
}
