package services

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"project-manager/backend/models"
)

// Claims are the signed contents of an auth token. Downstream stores
// trust them verbatim; the token is the single trust boundary.
type Claims struct {
	UserID   string   `json:"userId"`
	Email    string   `json:"email"`
	Role     string   `json:"role"`
	Projects []string `json:"projects,omitempty"`
	jwt.RegisteredClaims
}

// JWTService signs and verifies HS256 auth tokens.
type JWTService struct {
	secret []byte
	expiry time.Duration
}

func NewJWTService(secret string, expiry time.Duration) *JWTService {
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}
	return &JWTService{secret: []byte(secret), expiry: expiry}
}

// GenerateAuthToken issues a token embedding the user's identity,
// email and role.
func (s *JWTService) GenerateAuthToken(user *models.User) (string, error) {
	claims := &Claims{
		UserID: user.ID.Hex(),
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ResolveToken turns an Authorization header value into the request
// principal. ErrMissingToken when the header is absent,
// ErrInvalidToken on any signature, format or expiry failure.
func (s *JWTService) ResolveToken(bearerHeader string) (*models.Principal, error) {
	if bearerHeader == "" {
		return nil, ErrMissingToken
	}
	tokenStr := strings.TrimPrefix(bearerHeader, "Bearer ")

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return &models.Principal{
		ID:       id,
		Email:    claims.Email,
		Role:     claims.Role,
		Projects: claims.Projects,
	}, nil
}
