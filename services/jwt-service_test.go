package services

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"project-manager/backend/models"
)

func TestResolveTokenMissing(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	_, err := svc.ResolveToken("")
	if !errors.Is(err, ErrMissingToken) {
		t.Errorf("ResolveToken(\"\") error = %v, want ErrMissingToken", err)
	}
}

func TestResolveTokenInvalid(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	tests := []struct {
		name   string
		header string
	}{
		{name: "garbage", header: "Bearer not-a-token"},
		{name: "no bearer prefix garbage", header: "not-a-token"},
		{name: "wrong secret", header: "Bearer " + signWith(t, "other-secret", time.Hour)},
		{name: "expired", header: "Bearer " + signWith(t, "test-secret", -time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ResolveToken(tt.header)
			if !errors.Is(err, ErrInvalidToken) {
				t.Errorf("ResolveToken() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestGenerateAndResolveToken(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	user := &models.User{
		ID:    primitive.NewObjectID(),
		Email: "a@x.com",
		Role:  models.RoleManager,
	}

	token, err := svc.GenerateAuthToken(user)
	if err != nil {
		t.Fatalf("GenerateAuthToken() error = %v", err)
	}

	principal, err := svc.ResolveToken("Bearer " + token)
	if err != nil {
		t.Fatalf("ResolveToken() error = %v", err)
	}
	if principal.ID != user.ID {
		t.Errorf("principal id = %v, want %v", principal.ID, user.ID)
	}
	if principal.Role != models.RoleManager {
		t.Errorf("principal role = %q, want %q", principal.Role, models.RoleManager)
	}
}

func signWith(t *testing.T, secret string, ttl time.Duration) string {
	t.Helper()
	claims := &Claims{
		UserID: primitive.NewObjectID().Hex(),
		Email:  "a@x.com",
		Role:   models.RoleMember,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return token
}
