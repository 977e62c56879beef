package api

import (
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/monkeybio5414/mealmate-backend/internal/database"
	"github.com/monkeybio5414/mealmate-backend/internal/types"
)

// MockTokenValidator implements a mock token validator for testing
type MockTokenValidator struct {
	mock.Mock
}

func (v *MockTokenValidator) ValidateToken(token string) (*types.TokenClaims, error) {
	if strings.HasPrefix(token, "Bearer ") {
		token = strings.TrimPrefix(token, "Bearer ")
	}
	args := v.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TokenClaims), args.Error(1)
}

// newValidatorFor returns a validator that accepts "test-token" as the given
// user.
func newValidatorFor(userID uuid.UUID) *MockTokenValidator {
	validator := new(MockTokenValidator)
	validator.On("ValidateToken", "test-token").Return(&types.TokenClaims{
		UserID:   userID,
		Username: "testuser",
	}, nil)
	return validator
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}
