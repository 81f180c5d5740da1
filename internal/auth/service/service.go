// Package service implements the admin login flow.
package service

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"realty-portal-backend/internal/auth/transport"
	"realty-portal-backend/platform/apperr"
	"realty-portal-backend/platform/config"
	"realty-portal-backend/platform/logger"
)

// Service authenticates the admin operator against env-configured credentials
// and issues access tokens. There is a single operator account; no user table.
type Service struct {
	cfg config.AuthConfig
	log *logger.Logger
}

// New creates a new auth service.
func New(cfg config.AuthConfig, log *logger.Logger) *Service {
	return &Service{cfg: cfg, log: log}
}

// Login verifies credentials and returns a signed access token.
func (s *Service) Login(ctx context.Context, req transport.LoginRequest) (transport.LoginResponse, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	adminEmail := strings.TrimSpace(strings.ToLower(s.cfg.GetAdminEmail()))
	hash := s.cfg.GetAdminPasswordHash()

	if adminEmail == "" || hash == "" {
		return transport.LoginResponse{}, apperr.Unavailable("admin login is not configured")
	}

	emailMatches := subtle.ConstantTimeCompare([]byte(email), []byte(adminEmail)) == 1
	passwordErr := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password))
	if !emailMatches || passwordErr != nil {
		s.log.AuthEvent("login", email, false, "invalid credentials")
		return transport.LoginResponse{}, apperr.Unauthorized("invalid credentials")
	}

	token, expiresAt, err := s.issueToken(email)
	if err != nil {
		return transport.LoginResponse{}, apperr.Internal("failed to issue token")
	}

	s.log.AuthEvent("login", email, true, "")
	return transport.LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}

func (s *Service) issueToken(email string) (string, time.Time, error) {
	ttl := s.cfg.GetAccessTokenTTL()
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	expiresAt := time.Now().Add(ttl)

	claims := jwt.MapClaims{
		"sub": email,
		"iat": time.Now().Unix(),
		"exp": expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.GetJWTSecret()))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}
