package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"realty-portal-backend/internal/auth/transport"
	"realty-portal-backend/platform/apperr"
	"realty-portal-backend/platform/config"
	"realty-portal-backend/platform/logger"
)

func testConfig(t *testing.T, password string) *config.Config {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return &config.Config{
		JWTSecret:         "test-secret",
		AccessTokenTTL:    time.Hour,
		AdminEmail:        "admin@example.com",
		AdminPasswordHash: string(hash),
	}
}

func TestLoginIssuesValidToken(t *testing.T) {
	cfg := testConfig(t, "correct horse battery staple")
	svc := New(cfg, logger.New("test"))

	resp, err := svc.Login(context.Background(), transport.LoginRequest{
		Email:    "Admin@Example.com",
		Password: "correct horse battery staple",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(resp.AccessToken, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if sub, _ := claims["sub"].(string); sub != "admin@example.com" {
		t.Errorf("sub = %q, want admin@example.com", sub)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc := New(testConfig(t, "right password"), logger.New("test"))

	_, err := svc.Login(context.Background(), transport.LoginRequest{
		Email:    "admin@example.com",
		Password: "wrong password",
	})
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperr.KindUnauthorized {
		t.Fatalf("wrong password should be unauthorized, got %v", err)
	}
}

func TestLoginRejectsWrongEmail(t *testing.T) {
	svc := New(testConfig(t, "secret password"), logger.New("test"))

	_, err := svc.Login(context.Background(), transport.LoginRequest{
		Email:    "intruder@example.com",
		Password: "secret password",
	})
	if err == nil {
		t.Fatal("unknown email should be rejected")
	}
}

func TestLoginUnconfiguredIsUnavailable(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	svc := New(cfg, logger.New("test"))

	_, err := svc.Login(context.Background(), transport.LoginRequest{
		Email:    "admin@example.com",
		Password: "whatever password",
	})
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperr.KindUnavailable {
		t.Fatalf("unconfigured login should be unavailable, got %v", err)
	}
}
