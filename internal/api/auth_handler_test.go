package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kanacompanion/kana-api/internal/mocks"
)

func TestRegister(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		payload    map[string]interface{}
		wantStatus int
		wantToken  bool
	}{
		{
			name: "valid registration",
			payload: map[string]interface{}{
				"email":    "test@example.com",
				"password": "password1234567",
			},
			wantStatus: http.StatusCreated,
			wantToken:  true,
		},
		{
			name: "invalid email",
			payload: map[string]interface{}{
				"email":    "invalid-email",
				"password": "password1234567",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "password too short",
			payload: map[string]interface{}{
				"email":    "test2@example.com",
				"password": "short",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "missing email",
			payload: map[string]interface{}{
				"password": "password1234567",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "missing password",
			payload: map[string]interface{}{
				"email": "test3@example.com",
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			userStore := mocks.NewMockUserStore()
			jwtService := &mocks.MockJWTService{Token: "test-token"}
			passwords := &mocks.MockPasswordVerifier{ShouldSucceed: true}
			handler := NewAuthHandler(userStore, jwtService, passwords, passwords)

			payloadBytes, err := json.Marshal(tt.payload)
			require.NoError(t, err)

			req := httptest.NewRequest("POST", "/api/auth/register", bytes.NewBuffer(payloadBytes))
			req.Header.Set("Content-Type", "application/json")
			recorder := httptest.NewRecorder()

			handler.Register(recorder, req)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			if tt.wantToken {
				var resp AuthResponse
				require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
				assert.Equal(t, "test-token", resp.Token)
				assert.NotEmpty(t, resp.UserID)

				stored, ok := userStore.Users[tt.payload["email"].(string)]
				require.True(t, ok)
				assert.Empty(t, stored.Password, "plaintext must not survive registration")
				assert.NotEmpty(t, stored.HashedPassword)
			}
		})
	}

	t.Run("duplicate email conflicts", func(t *testing.T) {
		t.Parallel()

		userStore := mocks.NewMockUserStore()
		jwtService := &mocks.MockJWTService{Token: "test-token"}
		passwords := &mocks.MockPasswordVerifier{ShouldSucceed: true}
		handler := NewAuthHandler(userStore, jwtService, passwords, passwords)

		payload := []byte(`{"email":"dup@example.com","password":"password1234567"}`)

		first := httptest.NewRecorder()
		handler.Register(first, httptest.NewRequest("POST", "/api/auth/register", bytes.NewBuffer(payload)))
		require.Equal(t, http.StatusCreated, first.Code)

		second := httptest.NewRecorder()
		handler.Register(second, httptest.NewRequest("POST", "/api/auth/register", bytes.NewBuffer(payload)))
		assert.Equal(t, http.StatusConflict, second.Code)
	})
}

func TestLogin(t *testing.T) {
	t.Parallel()

	register := func(t *testing.T, handler *AuthHandler, email, password string) {
		t.Helper()
		payload, err := json.Marshal(map[string]string{"email": email, "password": password})
		require.NoError(t, err)
		recorder := httptest.NewRecorder()
		handler.Register(recorder, httptest.NewRequest("POST", "/api/auth/register", bytes.NewBuffer(payload)))
		require.Equal(t, http.StatusCreated, recorder.Code)
	}

	tests := []struct {
		name          string
		email         string
		password      string
		shouldSucceed bool
		wantStatus    int
	}{
		{
			name:          "valid credentials",
			email:         "learner@example.com",
			password:      "password1234567",
			shouldSucceed: true,
			wantStatus:    http.StatusOK,
		},
		{
			name:          "wrong password",
			email:         "learner@example.com",
			password:      "wrong-password-99",
			shouldSucceed: false,
			wantStatus:    http.StatusUnauthorized,
		},
		{
			name:          "unknown email",
			email:         "nobody@example.com",
			password:      "password1234567",
			shouldSucceed: true,
			wantStatus:    http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			userStore := mocks.NewMockUserStore()
			jwtService := &mocks.MockJWTService{Token: "test-token"}
			passwords := &mocks.MockPasswordVerifier{ShouldSucceed: tt.shouldSucceed}
			handler := NewAuthHandler(userStore, jwtService, passwords, passwords)

			register(t, handler, "learner@example.com", "password1234567")

			payload, err := json.Marshal(map[string]string{
				"email":    tt.email,
				"password": tt.password,
			})
			require.NoError(t, err)

			recorder := httptest.NewRecorder()
			handler.Login(recorder, httptest.NewRequest("POST", "/api/auth/login", bytes.NewBuffer(payload)))

			assert.Equal(t, tt.wantStatus, recorder.Code)
			if tt.wantStatus == http.StatusOK {
				var resp AuthResponse
				require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
				assert.Equal(t, "test-token", resp.Token)
			}
		})
	}
}
