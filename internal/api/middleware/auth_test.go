package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kanacompanion/kana-api/internal/service/auth"
)

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	secret := "test-secret-that-is-long-enough-for-testing"
	userID := uuid.New()

	jwtService := auth.NewTestJWTService(secret, time.Hour, func() time.Time {
		return fixedTime
	})
	token, err := jwtService.GenerateToken(context.Background(), userID)
	require.NoError(t, err)

	middleware := NewAuthMiddleware(jwtService)

	// The wrapped handler records whether it ran and with which user ID.
	var handledUserID uuid.UUID
	var handled bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handledUserID, handled = GetUserID(r)
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
		wantNext   bool
	}{
		{
			name:       "valid bearer token",
			authHeader: "Bearer " + token,
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
		{
			name:       "missing header",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			authHeader: "Basic " + token,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "garbage token",
			authHeader: "Bearer not-a-token",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handled = false
			handledUserID = uuid.Nil

			req := httptest.NewRequest("GET", "/api/session", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			recorder := httptest.NewRecorder()

			middleware.Authenticate(next).ServeHTTP(recorder, req)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Equal(t, tt.wantNext, handled)
			if tt.wantNext {
				assert.Equal(t, userID, handledUserID)
			}
		})
	}
}

func TestAuthenticateExpiredToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	secret := "test-secret-that-is-long-enough-for-testing"

	issuer := auth.NewTestJWTService(secret, time.Hour, func() time.Time {
		return fixedTime
	})
	token, err := issuer.GenerateToken(context.Background(), uuid.New())
	require.NoError(t, err)

	// Validate well past expiry.
	validator := auth.NewTestJWTService(secret, time.Hour, func() time.Time {
		return fixedTime.Add(2 * time.Hour)
	})
	middleware := NewAuthMiddleware(validator)

	req := httptest.NewRequest("GET", "/api/session", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with an expired token")
	})
	middleware.Authenticate(next).ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
