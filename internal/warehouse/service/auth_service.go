package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/garmentflow/wms/internal/middleware"
	"github.com/garmentflow/wms/internal/warehouse/entity"
	"github.com/garmentflow/wms/internal/warehouse/repository"
)

// AuthService registers users and issues JWTs.
type AuthService struct {
	repo      *repository.UserRepository
	jwtSecret string
	jwtIssuer string
	jwtExpire time.Duration
}

func NewAuthService(repo *repository.UserRepository, secret, issuer string, expire time.Duration) *AuthService {
	return &AuthService{
		repo:      repo,
		jwtSecret: secret,
		jwtIssuer: issuer,
		jwtExpire: expire,
	}
}

// RegisterRequest carries a signup.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	Role     string `json:"role" binding:"omitempty,oneof=admin manager staff"`
}

// LoginRequest carries a login attempt.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResult is what a successful login returns to the client.
type LoginResult struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// ErrInvalidCredentials covers both an unknown username and a wrong
// password, so a caller cannot probe which usernames exist.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Register creates a user with a bcrypt password hash. The role defaults
// to staff.
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*entity.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		ID:           entity.NewID(),
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		Role:         req.Role,
	}
	if user.Role == "" {
		user.Role = entity.RoleStaff
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, &DuplicateError{Key: "Username or email"}
		}
		return nil, err
	}
	return user, nil
}

// Login verifies the password and issues an HS256 token.
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*LoginResult, error) {
	user, err := s.repo.FindByUsername(ctx, strings.TrimSpace(req.Username))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	claims := &middleware.JWTClaims{
		UserID: user.ID,
		Name:   user.Username,
		Email:  user.Email,
		Roles:  []string{user.Role},
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.jwtIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpire)),
			ID:        uuid.New().String(),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, Role: user.Role}, nil
}
