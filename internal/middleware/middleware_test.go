package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/table-reservations/internal/config"
	"github.com/BruksfildServices01/table-reservations/internal/domain/access"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func sign(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func newEngine(cfg *config.Config, action access.Action) *gin.Engine {
	r := gin.New()
	r.Use(RequestLogger(), CORSMiddleware(nil))
	r.GET("/x", AuthMiddleware(cfg), RequireAction(action), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": UserID(c), "role": Role(c), "req": RequestID(c)})
	})
	return r
}

func do(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth_MissingAndInvalid(t *testing.T) {
	cfg := &config.Config{JWTSecret: "s3cret"}
	r := newEngine(cfg, access.ViewTables)

	assert.Equal(t, http.StatusUnauthorized, do(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "garbage").Code)

	wrongKey := sign(t, "other", jwt.MapClaims{"sub": 1, "role": "admin", "exp": time.Now().Add(time.Hour).Unix()})
	assert.Equal(t, http.StatusUnauthorized, do(r, wrongKey).Code)

	expired := sign(t, "s3cret", jwt.MapClaims{"sub": 1, "role": "admin", "exp": time.Now().Add(-time.Hour).Unix()})
	assert.Equal(t, http.StatusUnauthorized, do(r, expired).Code)

	badRole := sign(t, "s3cret", jwt.MapClaims{"sub": 1, "role": "owner", "exp": time.Now().Add(time.Hour).Unix()})
	assert.Equal(t, http.StatusUnauthorized, do(r, badRole).Code)
}

func TestAuth_SetsContextAndRequestID(t *testing.T) {
	cfg := &config.Config{JWTSecret: "s3cret"}
	r := newEngine(cfg, access.ViewTables)

	tok := sign(t, "s3cret", jwt.MapClaims{"sub": 12, "role": "cajero", "exp": time.Now().Add(time.Hour).Unix()})
	w := do(r, tok)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user":12`)
	assert.Contains(t, w.Body.String(), `"role":"cashier"`)
	assert.NotEmpty(t, w.Header().Get(HeaderRequestID))
}

func TestRequireAction_Forbidden(t *testing.T) {
	cfg := &config.Config{JWTSecret: "s3cret"}
	r := newEngine(cfg, access.RunSweep)

	tok := sign(t, "s3cret", jwt.MapClaims{"sub": 3, "role": "waiter", "exp": time.Now().Add(time.Hour).Unix()})
	w := do(r, tok)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), `"error_code":"forbidden"`)
}

func TestCORS_Preflight(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware(nil))

	req := httptest.NewRequest(http.MethodOptions, "/anything", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_Allowlist(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://mesas.example.cl/"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	for origin, want := range map[string]string{
		"https://mesas.example.cl": "https://mesas.example.cl",
		"https://evil.example.com": "",
	} {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Origin", origin)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, want, w.Header().Get("Access-Control-Allow-Origin"), origin)
	}
}
