package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/moneyapp/internal/models"
	"github.com/moneyapp/internal/repository"
	"github.com/moneyapp/pkg/crypto"
)

// MinPasswordLength is the shortest password accepted at signup or change
const MinPasswordLength = 6

// PasswordHasher hashes and verifies passwords one way
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
}

// AuthService handles registration, login and token validation
type AuthService struct {
	store            repository.Store
	hasher           PasswordHasher
	tokens           *TokenManager
	allowAdminSignup bool

	// digest compared against when the username is unknown, so both
	// failure paths pay for one hash comparison
	dummyOnce   sync.Once
	dummyDigest string
}

// NewAuthService creates a new AuthService
func NewAuthService(store repository.Store, hasher PasswordHasher, tokens *TokenManager, allowAdminSignup bool) *AuthService {
	return &AuthService{
		store:            store,
		hasher:           hasher,
		tokens:           tokens,
		allowAdminSignup: allowAdminSignup,
	}
}

// RegisterRequest represents the registration request
type RegisterRequest struct {
	Username  string      `json:"username" binding:"required,min=3,max=50"`
	Email     string      `json:"email" binding:"required,email"`
	FirstName string      `json:"first_name" binding:"max=100"`
	LastName  string      `json:"last_name" binding:"max=100"`
	Password  string      `json:"password" binding:"required,min=6,max=72"`
	Role      models.Role `json:"role" binding:"required"`
}

// LoginRequest represents the login request
type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// TokenResponse represents the JWT token response
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// Register creates a new active user
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*models.User, error) {
	role, err := models.ParseRole(string(req.Role))
	if err != nil {
		return nil, invalid("role", "%v", err)
	}
	if role == models.RoleAdmin && !s.allowAdminSignup {
		return nil, invalid("role", "admin accounts cannot be self-registered")
	}
	if err := validatePassword("password", req.Password); err != nil {
		return nil, err
	}
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, invalid("username", "must not be blank")
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	users := s.store.Users()

	// Check if username exists
	exists, err := users.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUsernameTaken
	}

	// Check if email exists
	exists, err = users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		PasswordHash: passwordHash,
		IsActive:     true,
		Role:         role,
	}

	// The unique indexes still win a race between the checks above and the insert
	if err := users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return nil, ErrConflict
		}
		return nil, err
	}

	return user, nil
}

// Authenticate checks a username and password pair
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.store.Users().GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.hasher.Verify(password, s.dummy())
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) || !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// Login authenticates a user and returns a JWT token
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*TokenResponse, error) {
	user, err := s.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.Username, user.ID, user.Role, s.tokens.TTL())
	if err != nil {
		return nil, err
	}

	return &TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(s.tokens.TTL() / time.Second),
	}, nil
}

func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		s.dummyDigest, _ = s.hasher.Hash("moneyapp-unknown-user")
	})
	return s.dummyDigest
}

// ValidateToken validates a JWT token and returns the claims
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	return s.tokens.Verify(tokenString)
}

// validatePassword counts characters for the lower bound and bytes for the
// upper one, since bcrypt only takes MaxPasswordBytes bytes of input
func validatePassword(field, password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return invalid(field, "must be at least %d characters", MinPasswordLength)
	}
	if len(password) > crypto.MaxPasswordBytes {
		return invalid(field, "must be at most %d bytes", crypto.MaxPasswordBytes)
	}
	return nil
}
