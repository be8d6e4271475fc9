package service

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/moneyapp/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "moneyapp_test_jwt_secret_key_0123456789"

func TestIssueAndVerify(t *testing.T) {
	m := NewTokenManager(testSecret, 20*time.Minute)

	token, err := m.Issue("alice", 7, models.RoleUser, 20*time.Minute)
	require.NoError(t, err)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, &Claims{Username: "alice", UserID: 7, Role: models.RoleUser}, claims)
	assert.False(t, claims.IsAdmin())
}

func TestIssueNeverRepeats(t *testing.T) {
	m := NewTokenManager(testSecret, time.Minute)

	first, err := m.Issue("alice", 7, models.RoleUser, 0)
	require.NoError(t, err)
	second, err := m.Issue("alice", 7, models.RoleUser, 0)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerifyExpired(t *testing.T) {
	m := NewTokenManager(testSecret, time.Minute)

	token, err := m.Issue("alice", 7, models.RoleUser, -1*time.Second)
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTamperedSignature(t *testing.T) {
	m := NewTokenManager(testSecret, time.Minute)

	token, err := m.Issue("alice", 7, models.RoleUser, time.Minute)
	require.NoError(t, err)

	sigStart := strings.LastIndex(token, ".") + 1
	sigLen := len(token) - sigStart
	// Every full base64 character of the signature carries signature bits; the last
	// one may only carry padding, so leave it alone.
	for i := sigStart; i < sigStart+sigLen-1; i++ {
		b := []byte(token)
		if b[i] == 'A' {
			b[i] = 'B'
		} else {
			b[i] = 'A'
		}
		_, err := m.Verify(string(b))
		require.ErrorIs(t, err, ErrTokenSignature, "flipped byte %d", i)
	}
}

func TestVerifyTamperedPayload(t *testing.T) {
	m := NewTokenManager(testSecret, time.Minute)

	token, err := m.Issue("alice", 7, models.RoleUser, time.Minute)
	require.NoError(t, err)

	// Swap the payload for one claiming admin, keep the original signature
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "alice", "id": 7, "role": "admin", "exp": time.Now().Add(time.Minute).Unix(),
	}).SignedString([]byte("some-other-secret-some-other-secret"))
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	forgedParts := strings.Split(forged, ".")
	spliced := parts[0] + "." + forgedParts[1] + "." + parts[2]

	_, err = m.Verify(spliced)
	assert.ErrorIs(t, err, ErrTokenSignature)

	_, err = m.Verify(forged)
	assert.ErrorIs(t, err, ErrTokenSignature, "token signed with another key")
}

func TestVerifyRejectsOtherAlgorithms(t *testing.T) {
	m := NewTokenManager(testSecret, time.Minute)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"sub": "alice", "id": 7, "role": "user", "exp": time.Now().Add(time.Minute).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrTokenSignature)

	_, err = m.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrTokenSignature)
}

func TestVerifyMissingClaims(t *testing.T) {
	m := NewTokenManager(testSecret, time.Minute)
	exp := time.Now().Add(time.Minute).Unix()

	cases := map[string]jwt.MapClaims{
		"no subject":   {"id": 7, "role": "user", "exp": exp},
		"no id":        {"sub": "alice", "role": "user", "exp": exp},
		"no role":      {"sub": "alice", "id": 7, "exp": exp},
		"null role":    {"sub": "alice", "id": 7, "role": nil, "exp": exp},
		"unknown role": {"sub": "alice", "id": 7, "role": "root", "exp": exp},
		"no expiry":    {"sub": "alice", "id": 7, "role": "user"},
	}
	for name, claims := range cases {
		t.Run(name, func(t *testing.T) {
			token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
			require.NoError(t, err)

			_, err = m.Verify(token)
			assert.ErrorIs(t, err, ErrTokenClaims)
		})
	}
}
