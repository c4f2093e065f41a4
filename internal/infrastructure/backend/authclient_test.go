package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autocrm/autocrm/internal/shared/auth"
	"github.com/autocrm/autocrm/internal/shared/config"
	"github.com/autocrm/autocrm/internal/shared/logger"
)

func newTestAuthClient(t *testing.T, handler http.HandlerFunc) *AuthClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewAuthClient(&config.BackendConfig{
		URL:            srv.URL + "/",
		AnonKey:        "anon-key",
		RequestTimeout: 5 * time.Second,
	}, logger.NewNopLogger())
}

func TestAuthClient_SignInWithPassword(t *testing.T) {
	userID := uuid.New()
	client := newTestAuthClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/v1/token", r.URL.Path)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "sam@example.com", body["email"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at","refresh_token":"rt","expires_at":1893456000,
			"user":{"id":"` + userID.String() + `","email":"sam@example.com","email_confirmed_at":"2024-01-02T03:04:05Z"}}`))
	})

	s, err := client.SignInWithPassword(context.Background(), "sam@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "at", s.AccessToken)
	assert.Equal(t, "rt", s.RefreshToken)
	assert.Equal(t, userID, s.UserID)
	assert.True(t, s.EmailConfirmed)
	assert.Equal(t, int64(1893456000), s.ExpiresAt.Unix())
}

func TestAuthClient_SignInUnconfirmedEmail(t *testing.T) {
	client := newTestAuthClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":400,"error_code":"email_not_confirmed","msg":"Email not confirmed"}`))
	})

	_, err := client.SignInWithPassword(context.Background(), "sam@example.com", "hunter2")
	require.Error(t, err)
	assert.True(t, IsAPIError(err, CodeEmailNotConfirmed))
	assert.ErrorIs(t, err, auth.ErrEmailNotConfirmed)
	assert.Contains(t, err.Error(), "Email not confirmed")
}

func TestAuthClient_SignInBadPassword(t *testing.T) {
	client := newTestAuthClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"Invalid login credentials"}`))
	})

	_, err := client.SignInWithPassword(context.Background(), "sam@example.com", "nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	assert.NotErrorIs(t, err, auth.ErrEmailNotConfirmed)
}

func TestAuthClient_SignUp(t *testing.T) {
	userID := uuid.New()
	client := newTestAuthClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/signup", r.URL.Path)
		assert.Equal(t, "http://localhost:5173/welcome", r.URL.Query().Get("redirect_to"))
		_, _ = w.Write([]byte(`{"id":"` + userID.String() + `","email":"new@example.com","email_confirmed_at":null}`))
	})

	u, err := client.SignUp(context.Background(), "new@example.com", "pw", "http://localhost:5173/welcome")
	require.NoError(t, err)
	assert.Equal(t, userID, u.ID)
	assert.False(t, u.EmailConfirmed)
}

func TestAuthClient_SignUpWithSession(t *testing.T) {
	userID := uuid.New()
	client := newTestAuthClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"access_token":"at","user":{"id":"` + userID.String() + `","email":"new@example.com"}}`))
	})

	u, err := client.SignUp(context.Background(), "new@example.com", "pw", "")
	require.NoError(t, err)
	assert.Equal(t, userID, u.ID)
}

func TestAuthClient_SignOutAndGetUserUseBearer(t *testing.T) {
	userID := uuid.New()
	client := newTestAuthClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer user-token", r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/auth/v1/logout":
			assert.Equal(t, "global", r.URL.Query().Get("scope"))
			w.WriteHeader(http.StatusNoContent)
		case "/auth/v1/user":
			_, _ = w.Write([]byte(`{"id":"` + userID.String() + `","email":"sam@example.com"}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	require.NoError(t, client.SignOut(context.Background(), "user-token"))
	u, err := client.GetUser(context.Background(), "user-token")
	require.NoError(t, err)
	assert.Equal(t, userID, u.ID)
}

func TestAuthClient_ResendAndRecover(t *testing.T) {
	var (
		mu    sync.Mutex
		paths []string
	)
	client := newTestAuthClient(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "sam@example.com", body["email"])
		if r.URL.Path == "/auth/v1/resend" {
			assert.Equal(t, "signup", body["type"])
		}
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, client.ResendVerification(context.Background(), "sam@example.com", ""))
	require.NoError(t, client.RecoverPassword(context.Background(), "sam@example.com", "http://x/reset"))
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"/auth/v1/resend", "/auth/v1/recover"}, paths)
}

func TestDecodeError(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantCode    string
		wantMessage string
	}{
		{"oauth style", `{"error":"invalid_grant","error_description":"Invalid login credentials"}`, "invalid_grant", "Invalid login credentials"},
		{"storage style", `{"statusCode":"404","error":"not_found","message":"Object not found"}`, "not_found", "Object not found"},
		{"plain text", `upstream timeout`, "", "upstream timeout"},
		{"empty", ``, "", "Bad Gateway"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := decodeError(http.StatusBadGateway, []byte(tt.raw))
			assert.Equal(t, tt.wantCode, err.Code)
			assert.Equal(t, tt.wantMessage, err.Message)
		})
	}
}
