package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"project-manager/backend/logging"
	"project-manager/backend/models"
	"project-manager/backend/repositories"
	"project-manager/backend/validation"
)

type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Role     string `json:"role" validate:"omitempty,oneof=admin manager member"`
}

// AuthService handles registration and login against the users
// collection.
type AuthService struct {
	users      repositories.UserRepository
	jwtService *JWTService
	hashCost   int
}

// NewAuthService wires the credential store. hashCost 0 selects the
// bcrypt default.
func NewAuthService(users repositories.UserRepository, jwtService *JWTService, hashCost int) *AuthService {
	if hashCost == 0 {
		hashCost = bcrypt.DefaultCost
	}
	return &AuthService{users: users, jwtService: jwtService, hashCost: hashCost}
}

// Register creates a user with a hashed password and default role
// member. Emails are lowercased before the duplicate check so the
// check and the unique index agree on case.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.PublicUser, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	email := strings.ToLower(input.Email)

	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return nil, ErrDuplicateEmail
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := input.Role
	if role == "" {
		role = models.RoleMember
	}

	now := time.Now().UTC()
	user := &models.User{
		Email:     email,
		Password:  string(hashed),
		Name:      input.Name,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	id, err := s.users.Insert(ctx, user)
	if err != nil {
		// The unique index on email is the backstop for registrations
		// racing past the FindByEmail check.
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to save user: %w", err)
	}
	user.ID = id

	logging.Logger.Infof("Event ID: USER_REGISTERED, Description: Registered user %s with role %s", user.Email, user.Role)
	return user.Public(), nil
}

// Login verifies credentials and issues an auth token. Unknown email
// and wrong password both surface as ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.PublicUser, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateAuthToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	logging.Logger.Infof("Event ID: USER_LOGIN, Description: User %s logged in", user.Email)
	return token, user.Public(), nil
}
