package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/moneyapp/internal/models"
)

var (
	// ErrInvalidToken is the umbrella for every verification failure
	ErrInvalidToken = errors.New("invalid token")

	ErrTokenSignature = fmt.Errorf("%w: bad signature or structure", ErrInvalidToken)
	ErrTokenExpired   = fmt.Errorf("%w: expired", ErrInvalidToken)
	ErrTokenClaims    = fmt.Errorf("%w: missing or malformed claims", ErrInvalidToken)
)

// Claims is the verified identity carried by a token
type Claims struct {
	Username string      `json:"username"`
	UserID   uint        `json:"id"`
	Role     models.Role `json:"role"`
}

// IsAdmin reports whether the caller holds the admin role
func (c *Claims) IsAdmin() bool {
	return c.Role == models.RoleAdmin
}

// tokenClaims is the signed payload. Pointer fields tell a missing claim from a zero value.
type tokenClaims struct {
	ID   *uint   `json:"id"`
	Role *string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 bearer tokens
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager creates a TokenManager with a default lifetime for Issue calls that pass ttl 0
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// TTL returns the default token lifetime
func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

// Issue signs a token for the given identity that expires after ttl.
// A zero ttl means the manager default; a negative ttl yields an already expired token.
func (m *TokenManager) Issue(username string, userID uint, role models.Role, ttl time.Duration) (string, error) {
	if ttl == 0 {
		ttl = m.ttl
	}
	now := m.now()
	roleStr := string(role)

	claims := &tokenClaims{
		ID:   &userID,
		Role: &roleStr,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify checks signature, expiry and claim presence, in that order
func (m *TokenManager) Verify(tokenString string) (*Claims, error) {
	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
			return nil, ErrTokenClaims
		default:
			return nil, fmt.Errorf("%w: %v", ErrTokenSignature, err)
		}
	}

	if claims.Subject == "" || claims.ID == nil || claims.Role == nil {
		return nil, ErrTokenClaims
	}
	role, err := models.ParseRole(*claims.Role)
	if err != nil {
		return nil, ErrTokenClaims
	}

	return &Claims{
		Username: claims.Subject,
		UserID:   *claims.ID,
		Role:     role,
	}, nil
}
