package adapters

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerror "github.com/gestao-consultoria/backend/internal/domain/error"
)

const (
	testAnonKey    = "anon-key"
	testServiceKey = "service-role-key"
	testJWTSecret  = "super-secret-jwt-token-with-at-least-32-characters"
)

func newTestIdentityService(t *testing.T, handler http.HandlerFunc, secret string) (*identityService, *int32) {
	t.Helper()

	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	svc, err := NewIdentityService(SupabaseConfig{
		URL:            server.URL + "/",
		AnonKey:        testAnonKey,
		ServiceRoleKey: testServiceKey,
		JWTSecret:      secret,
		Timeout:        2 * time.Second,
	})
	require.NoError(t, err)

	return svc.(*identityService), &hits
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return token
}

func TestNewIdentityService_Validation(t *testing.T) {
	tests := []struct {
		name string
		cfg  SupabaseConfig
	}{
		{name: "missing url", cfg: SupabaseConfig{AnonKey: "a", ServiceRoleKey: "s"}},
		{name: "missing anon key", cfg: SupabaseConfig{URL: "http://localhost", ServiceRoleKey: "s"}},
		{name: "missing service role key", cfg: SupabaseConfig{URL: "http://localhost", AnonKey: "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewIdentityService(tt.cfg)
			assert.Error(t, err)
			assert.Nil(t, svc)
		})
	}
}

func TestIdentityService_GetUser_Remote(t *testing.T) {
	svc, _ := newTestIdentityService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/auth/v1/user", r.URL.Path)
		assert.Equal(t, testAnonKey, r.Header.Get("apikey"))

		if r.Header.Get("Authorization") != "Bearer good-token" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"code":401,"msg":"invalid JWT"}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":"11111111-2222-3333-4444-555555555555","email":"admin@consultoria.com"}`))
	}, "")

	t.Run("valid token", func(t *testing.T) {
		user, err := svc.GetUser(context.Background(), "good-token")
		require.NoError(t, err)
		assert.Equal(t, "11111111-2222-3333-4444-555555555555", user.ID)
		assert.Equal(t, "admin@consultoria.com", user.Email)
	})

	t.Run("rejected token", func(t *testing.T) {
		user, err := svc.GetUser(context.Background(), "bad-token")
		assert.ErrorIs(t, err, domainerror.ErrInvalidToken)
		assert.Nil(t, user)
	})
}

func TestIdentityService_GetUser_EmptyToken(t *testing.T) {
	svc, hits := newTestIdentityService(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}, "")

	_, err := svc.GetUser(context.Background(), "")

	assert.ErrorIs(t, err, domainerror.ErrInvalidToken)
	assert.Equal(t, int32(0), atomic.LoadInt32(hits))
}

func TestIdentityService_GetUser_Local(t *testing.T) {
	svc, hits := newTestIdentityService(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"msg":"invalid JWT"}`))
	}, testJWTSecret)

	t.Run("valid signature is verified without a network call", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{
			"sub":   "user-1",
			"email": "financeiro@consultoria.com",
			"exp":   time.Now().Add(time.Hour).Unix(),
		})

		user, err := svc.GetUser(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", user.ID)
		assert.Equal(t, "financeiro@consultoria.com", user.Email)
		assert.Equal(t, int32(0), atomic.LoadInt32(hits))
	})

	t.Run("expired token falls back to the auth api", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{
			"sub": "user-1",
			"exp": time.Now().Add(-time.Hour).Unix(),
		})

		_, err := svc.GetUser(context.Background(), token)
		assert.ErrorIs(t, err, domainerror.ErrInvalidToken)
		assert.Equal(t, int32(1), atomic.LoadInt32(hits))
	})
}

func TestIdentityService_DeleteUser(t *testing.T) {
	tests := []struct {
		name            string
		status          int
		body            string
		expectNotFound  bool
		expectedMessage string
	}{
		{name: "deleted", status: http.StatusOK, body: `{}`},
		{
			name:            "target not found",
			status:          http.StatusNotFound,
			body:            `{"code":404,"error_code":"user_not_found","msg":"User not found"}`,
			expectNotFound:  true,
			expectedMessage: "User not found",
		},
		{
			name:            "downstream failure",
			status:          http.StatusInternalServerError,
			body:            `{"message":"Database error deleting user"}`,
			expectedMessage: "Database error deleting user",
		},
		{
			name:            "unparseable error body",
			status:          http.StatusBadGateway,
			body:            `<html>bad gateway</html>`,
			expectedMessage: "identity provider returned status 502",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestIdentityService(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodDelete, r.Method)
				assert.Equal(t, "/auth/v1/admin/users/target-id", r.URL.Path)
				assert.Equal(t, testServiceKey, r.Header.Get("apikey"))
				assert.Equal(t, "Bearer "+testServiceKey, r.Header.Get("Authorization"))

				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}, "")

			err := svc.DeleteUser(context.Background(), "target-id")

			if tt.expectedMessage == "" {
				assert.NoError(t, err)
				return
			}

			var identityErr *domainerror.IdentityError
			require.True(t, errors.As(err, &identityErr), "expected IdentityError, got %v", err)
			assert.Equal(t, tt.status, identityErr.StatusCode)
			assert.Equal(t, tt.expectedMessage, identityErr.Message)
			assert.Equal(t, tt.expectNotFound, errors.Is(err, domainerror.ErrIdentityUserNotFound))
		})
	}
}

func TestIdentityService_DeleteUser_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	svc, err := NewIdentityService(SupabaseConfig{
		URL:            server.URL,
		AnonKey:        testAnonKey,
		ServiceRoleKey: testServiceKey,
	})
	require.NoError(t, err)

	err = svc.DeleteUser(context.Background(), "target-id")

	var identityErr *domainerror.IdentityError
	assert.Error(t, err)
	assert.False(t, errors.As(err, &identityErr))
}
