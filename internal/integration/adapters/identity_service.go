// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gestao-consultoria/backend/internal/application/adapter"
	"github.com/gestao-consultoria/backend/internal/domain/entity"
	domainerror "github.com/gestao-consultoria/backend/internal/domain/error"
)

// supabaseUser is the subset of the Auth API user object the service needs.
type supabaseUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// identityService implements the adapter.IdentityService interface on Supabase Auth.
type identityService struct {
	client         *supabaseClient
	anonKey        string
	serviceRoleKey string
	jwtSecret      []byte
}

// NewIdentityService creates a new Supabase-backed identity service instance.
func NewIdentityService(cfg SupabaseConfig) (adapter.IdentityService, error) {
	if cfg.URL == "" {
		return nil, errors.New("supabase URL is required")
	}
	if cfg.AnonKey == "" {
		return nil, errors.New("supabase anon key is required")
	}
	if cfg.ServiceRoleKey == "" {
		return nil, errors.New("supabase service role key is required")
	}

	var secret []byte
	if cfg.JWTSecret != "" {
		secret = []byte(cfg.JWTSecret)
	}

	return &identityService{
		client:         newSupabaseClient(cfg),
		anonKey:        cfg.AnonKey,
		serviceRoleKey: cfg.ServiceRoleKey,
		jwtSecret:      secret,
	}, nil
}

// GetUser resolves the owner of accessToken.
// Tokens are verified locally when a JWT secret is configured; otherwise, or when local
// verification fails, the Auth API is asked.
func (s *identityService) GetUser(ctx context.Context, accessToken string) (*entity.IdentityUser, error) {
	if accessToken == "" {
		return nil, domainerror.ErrInvalidToken
	}

	if s.jwtSecret != nil {
		if user, err := s.verifyLocally(accessToken); err == nil {
			return user, nil
		}
	}

	resp, err := s.client.do(ctx, http.MethodGet, "/auth/v1/user", s.anonKey, accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to validate token: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s", domainerror.ErrInvalidToken, resp.Message())
	}

	var user supabaseUser
	if err := json.Unmarshal(resp.Body, &user); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	if user.ID == "" {
		return nil, domainerror.ErrInvalidToken
	}

	return &entity.IdentityUser{
		ID:    user.ID,
		Email: user.Email,
	}, nil
}

// DeleteUser removes the account through the Auth admin API using the service role key.
func (s *identityService) DeleteUser(ctx context.Context, userID string) error {
	path := "/auth/v1/admin/users/" + url.PathEscape(userID)

	resp, err := s.client.do(ctx, http.MethodDelete, path, s.serviceRoleKey, s.serviceRoleKey)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if resp.OK() {
		return nil
	}

	if resp.StatusCode == http.StatusNotFound {
		return domainerror.NewIdentityError(resp.StatusCode, resp.Message(), domainerror.ErrIdentityUserNotFound)
	}

	return domainerror.NewIdentityError(resp.StatusCode, resp.Message(), nil)
}

// verifyLocally checks the HS256 signature and expiry of a Supabase access token.
func (s *identityService) verifyLocally(token string) (*entity.IdentityUser, error) {
	claims := jwt.MapClaims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("jwt parse: %w", err)
	}
	if !parsed.Valid {
		return nil, domainerror.ErrInvalidToken
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return nil, domainerror.ErrInvalidToken
	}

	email, _ := claims["email"].(string)

	return &entity.IdentityUser{
		ID:    subject,
		Email: email,
	}, nil
}
