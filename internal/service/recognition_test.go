package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/monkeybio5414/mealmate-backend/internal/models"
	"github.com/monkeybio5414/mealmate-backend/internal/vision"
)

// stubCaller returns a canned response or error for every call and counts
// invocations.
type stubCaller struct {
	response []byte
	err      error
	calls    int
	lastReq  vision.Request
}

func (c *stubCaller) Complete(ctx context.Context, request vision.Request) ([]byte, error) {
	c.calls++
	c.lastReq = request
	if c.err != nil {
		return nil, c.err
	}
	return c.response, nil
}

type mockStore struct {
	mock.Mock
}

func (m *mockStore) SavePhoto(ctx context.Context, imageBase64 string, userID uuid.UUID) (uuid.UUID, error) {
	args := m.Called(imageBase64, userID)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *mockStore) SaveRecognitionResult(ctx context.Context, photoID uuid.UUID, ingredients []string, userID uuid.UUID) error {
	args := m.Called(photoID, ingredients, userID)
	return args.Error(0)
}

func (m *mockStore) GetPhoto(ctx context.Context, id, userID uuid.UUID) (*models.Photo, error) {
	args := m.Called(id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Photo), args.Error(1)
}

func (m *mockStore) GetRecognitionResult(ctx context.Context, id, userID uuid.UUID) (*models.RecognitionResult, error) {
	args := m.Called(id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RecognitionResult), args.Error(1)
}

func (m *mockStore) ListRecognitionResults(ctx context.Context, userID uuid.UUID) ([]*models.RecognitionResult, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.RecognitionResult), args.Error(1)
}

func envelope(t *testing.T, content any) []byte {
	t.Helper()
	text, err := json.Marshal(content)
	require.NoError(t, err)

	raw, err := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": string(text)}},
		},
	})
	require.NoError(t, err)
	return raw
}

func TestRecognitionService_RecognizePhoto(t *testing.T) {
	caller := &stubCaller{response: envelope(t, map[string]any{
		"Ingredients": []string{"Tomato", "Basil"},
	})}
	store := new(mockStore)
	photoID := uuid.New()
	userID := uuid.New()

	store.On("SavePhoto", mock.Anything, userID).Return(photoID, nil)
	store.On("SaveRecognitionResult", photoID, []string{"Tomato", "Basil"}, userID).Return(nil)

	svc := NewRecognitionService(caller, store, nil, nil)
	result, err := svc.RecognizePhoto(context.Background(), []byte("jpeg-bytes"), userID)
	require.NoError(t, err)

	assert.Equal(t, []string{"Tomato", "Basil"}, result.Ingredients)
	assert.Empty(t, result.Error)
	assert.Equal(t, 1, caller.calls, "exactly one inference call")
	store.AssertExpectations(t)
}

func TestRecognitionService_CallerError(t *testing.T) {
	caller := &stubCaller{err: errors.New("connection refused")}
	store := new(mockStore)

	svc := NewRecognitionService(caller, store, nil, nil)
	_, err := svc.RecognizePhoto(context.Background(), []byte("jpeg-bytes"), uuid.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "recognition call failed")

	store.AssertNotCalled(t, "SavePhoto", mock.Anything, mock.Anything)
}

func TestRecognitionService_ParseFailureSkipsPersistence(t *testing.T) {
	// Envelope with no choices: parse yields a result with an Error field,
	// no Go error, and nothing is persisted.
	caller := &stubCaller{response: []byte(`{"choices":[]}`)}
	store := new(mockStore)

	svc := NewRecognitionService(caller, store, nil, nil)
	result, err := svc.RecognizePhoto(context.Background(), []byte("jpeg-bytes"), uuid.New())
	require.NoError(t, err)

	assert.Equal(t, "No choices found in response", result.Error)
	store.AssertNotCalled(t, "SavePhoto", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "SaveRecognitionResult", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecognitionService_PersistenceFailureDoesNotAbort(t *testing.T) {
	caller := &stubCaller{response: envelope(t, map[string]any{
		"Ingredients": []string{"Orange"},
	})}
	store := new(mockStore)
	userID := uuid.New()

	store.On("SavePhoto", mock.Anything, userID).Return(uuid.Nil, errors.New("bucket unavailable"))

	svc := NewRecognitionService(caller, store, nil, nil)
	result, err := svc.RecognizePhoto(context.Background(), []byte("jpeg-bytes"), userID)
	require.NoError(t, err, "a storage failure never costs the user their result")
	assert.Equal(t, []string{"Orange"}, result.Ingredients)

	store.AssertNotCalled(t, "SaveRecognitionResult", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecognitionService_LatestResultWithoutCache(t *testing.T) {
	svc := NewRecognitionService(&stubCaller{}, new(mockStore), nil, nil)

	result, err := svc.LatestResult(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, result)
}

type stubSigner struct {
	gotKey string
}

func (s *stubSigner) GeneratePresignedURL(ctx context.Context, objectKey string, expiration time.Duration) (string, error) {
	s.gotKey = objectKey
	return "https://bucket.example.com/" + objectKey + "?signed", nil
}

func TestRecognitionService_PhotoURL(t *testing.T) {
	store := new(mockStore)
	signer := &stubSigner{}
	userID := uuid.New()
	photoID := uuid.New()

	store.On("GetPhoto", photoID, userID).Return(&models.Photo{
		ID:         photoID,
		UserID:     userID,
		StorageKey: "photos/abc.jpg",
	}, nil)

	svc := NewRecognitionService(&stubCaller{}, store, nil, signer)
	url, err := svc.PhotoURL(context.Background(), userID, photoID)
	require.NoError(t, err)
	assert.Equal(t, "photos/abc.jpg", signer.gotKey)
	assert.Contains(t, url, "signed")
}

func TestRecognitionService_PhotoURLWithoutSigner(t *testing.T) {
	svc := NewRecognitionService(&stubCaller{}, new(mockStore), nil, nil)

	_, err := svc.PhotoURL(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrPhotoURLUnavailable)
}

func TestRecognitionService_History(t *testing.T) {
	store := new(mockStore)
	userID := uuid.New()
	stored := []*models.RecognitionResult{
		{ID: uuid.New(), UserID: userID, Ingredients: models.JSONBStringArray{"Tomato"}},
	}
	store.On("ListRecognitionResults", userID).Return(stored, nil)

	svc := NewRecognitionService(&stubCaller{}, store, nil, nil)
	results, err := svc.History(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, stored, results)
}
