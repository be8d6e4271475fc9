package middleware

import (
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/moneyapp/internal/models"
	"github.com/moneyapp/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubValidator struct {
	claims *service.Claims
	seen   string
}

func (v *stubValidator) ValidateToken(token string) (*service.Claims, error) {
	v.seen = token
	if token != "good" {
		return nil, service.ErrTokenSignature
	}
	return v.claims, nil
}

func newAuthRouter(v TokenValidator) *gin.Engine {
	r := gin.New()
	r.Use(AuthMiddleware(v))
	r.GET("/me", func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, claims.Username)
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	v := &stubValidator{claims: &service.Claims{Username: "alice", UserID: 1, Role: models.RoleUser}}
	r := newAuthRouter(v)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good", http.StatusUnauthorized},
		{"no token", "Bearer", http.StatusUnauthorized},
		{"bad token", "Bearer bad", http.StatusUnauthorized},
		{"good token", "Bearer good", http.StatusOK},
		{"lowercase scheme", "bearer good", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, "alice", w.Body.String())
			} else {
				assert.Contains(t, w.Body.String(), unauthorizedMessage)
			}
		})
	}
}

func TestAuthMiddlewareHidesReason(t *testing.T) {
	for _, err := range []error{service.ErrTokenExpired, service.ErrTokenClaims, errors.New("boom")} {
		r := newAuthRouter(failingValidator{err})
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer whatever")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.NotContains(t, w.Body.String(), err.Error())
	}
}

type failingValidator struct{ err error }

func (f failingValidator) ValidateToken(string) (*service.Claims, error) { return nil, f.err }

func TestGetClaimsWithoutMiddleware(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, GetClaims(c))
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLoggerMiddleware())
	r.GET("/id", func(c *gin.Context) {
		c.String(http.StatusOK, RequestID(c))
	})

	t.Run("generated", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/id", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, w.Body.String(), 36)
		assert.Equal(t, w.Body.String(), w.Header().Get("X-Request-ID"))
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/id", nil)
		req.Header.Set("X-Request-ID", "abc-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, "abc-123", w.Body.String())
		assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
	})

	t.Run("oversized header replaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/id", nil)
		req.Header.Set("X-Request-ID", strings.Repeat("x", 200))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Len(t, w.Body.String(), 36)
	})
}

func TestInitLoggerWritesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, InitLogger(dir))
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		_ = InitLogger("")
	})

	LogInfo("hello %s", "file")
	assert.FileExists(t, dir+"/moneyapp.log")
}
