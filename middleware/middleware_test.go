package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"project-manager/backend/models"
	"project-manager/backend/services"
)

func TestJWTAuthMiddlewareAttachesPrincipal(t *testing.T) {
	jwtService := services.NewJWTService("test-secret", time.Hour)
	user := &models.User{ID: primitive.NewObjectID(), Email: "a@x.com", Role: models.RoleMember}

	token, err := jwtService.GenerateAuthToken(user)
	if err != nil {
		t.Fatalf("GenerateAuthToken() error = %v", err)
	}

	var captured *models.Principal
	handler := JWTAuthMiddleware(jwtService)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = PrincipalFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if captured == nil {
		t.Fatal("principal was not attached to the request context")
	}
	if captured.ID != user.ID || captured.Role != models.RoleMember {
		t.Errorf("principal = %+v, want token identity", captured)
	}
}

func TestJWTAuthMiddlewareRejectsBadTokens(t *testing.T) {
	jwtService := services.NewJWTService("test-secret", time.Hour)

	handler := JWTAuthMiddleware(jwtService)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run for unauthenticated requests")
	}))

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "garbage token", header: "Bearer nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
		})
	}
}

func TestPrincipalFromContextWithoutMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if p := PrincipalFromContext(req.Context()); p != nil {
		t.Errorf("PrincipalFromContext() = %+v, want nil", p)
	}
}
