package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mcoutinho/retail-ledger-go/internal/domain"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService(t *testing.T, ttl time.Duration) *AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return NewAuthService("operator", string(hash), "test-secret", ttl, zap.NewNop())
}

func TestLoginAndValidate(t *testing.T) {
	svc := newTestAuthService(t, 15*time.Minute)

	resp, err := svc.Login(context.Background(), &LoginRequest{
		Username: "operator",
		Password: "s3cret",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatal("empty access token")
	}
	if resp.ExpiresIn != int((15 * time.Minute).Seconds()) {
		t.Errorf("expires_in = %d, want %d", resp.ExpiresIn, 900)
	}

	claims, err := svc.ValidateAccessToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("ValidateAccessToken: %v", err)
	}
	if claims.Sub != "operator" {
		t.Errorf("sub = %q, want operator", claims.Sub)
	}
	if claims.Type != "access" {
		t.Errorf("type = %q, want access", claims.Type)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newTestAuthService(t, 15*time.Minute)

	tests := []struct {
		name string
		req  LoginRequest
	}{
		{"wrong password", LoginRequest{Username: "operator", Password: "nope"}},
		{"wrong username", LoginRequest{Username: "intruder", Password: "s3cret"}},
		{"empty", LoginRequest{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), &tt.req)
			var unauthorized *domain.ErrUnauthorized
			if !errors.As(err, &unauthorized) {
				t.Errorf("error = %v, want ErrUnauthorized", err)
			}
		})
	}
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	svc := newTestAuthService(t, -time.Minute)

	resp, err := svc.Login(context.Background(), &LoginRequest{
		Username: "operator",
		Password: "s3cret",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	_, err = svc.ValidateAccessToken(resp.AccessToken)
	var unauthorized *domain.ErrUnauthorized
	if !errors.As(err, &unauthorized) {
		t.Errorf("error = %v, want ErrUnauthorized for expired token", err)
	}
}

func TestValidateRejectsGarbageToken(t *testing.T) {
	svc := newTestAuthService(t, 15*time.Minute)

	_, err := svc.ValidateAccessToken("not.a.jwt")
	var unauthorized *domain.ErrUnauthorized
	if !errors.As(err, &unauthorized) {
		t.Errorf("error = %v, want ErrUnauthorized", err)
	}
}
