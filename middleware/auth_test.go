package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"blogaulas/models"
	"blogaulas/utils"
)

func newRouter(tokens *utils.TokenManager, chain ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler(zap.NewNop()))
	handlers := append(chain, func(c *gin.Context) {
		caller, ok := Caller(c)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"caller": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"caller": caller.Username})
	})
	r.GET("/x", handlers...)
	return r
}

func get(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequired(t *testing.T) {
	tokens := utils.NewTokenManager("s", time.Hour)
	token, err := tokens.GenerateJWT(models.Identity{ID: 1, Username: "prof1", Role: models.RoleTeacher})
	require.NoError(t, err)
	r := newRouter(tokens, AuthRequired(tokens))

	w := get(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"caller":"prof1"}`, w.Body.String())

	w = get(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"no token provided"}`, w.Body.String())

	w = get(r, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = get(r, "Bearer nope")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"invalid token"}`, w.Body.String())
}

func TestOptionalAuth(t *testing.T) {
	tokens := utils.NewTokenManager("s", time.Hour)
	token, err := tokens.GenerateJWT(models.Identity{ID: 2, Username: "aluno1", Role: models.RoleStudent})
	require.NoError(t, err)
	r := newRouter(tokens, OptionalAuth(tokens))

	w := get(r, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"caller":null}`, w.Body.String())

	w = get(r, "Bearer "+token)
	assert.JSONEq(t, `{"caller":"aluno1"}`, w.Body.String())

	w = get(r, "Bearer forged")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"caller":null}`, w.Body.String())

	expired := utils.NewTokenManager("s", -time.Minute)
	stale, err := expired.GenerateJWT(models.Identity{ID: 2, Username: "aluno1", Role: models.RoleStudent})
	require.NoError(t, err)
	w = get(r, "Bearer "+stale)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"caller":null}`, w.Body.String())
}

func TestRequireRole(t *testing.T) {
	tokens := utils.NewTokenManager("s", time.Hour)
	teacher, err := tokens.GenerateJWT(models.Identity{ID: 1, Username: "prof1", Role: models.RoleTeacher})
	require.NoError(t, err)
	student, err := tokens.GenerateJWT(models.Identity{ID: 2, Username: "aluno1", Role: models.RoleStudent})
	require.NoError(t, err)
	r := newRouter(tokens, AuthRequired(tokens), RequireRole(models.RoleTeacher))

	assert.Equal(t, http.StatusOK, get(r, "Bearer "+teacher).Code)

	w := get(r, "Bearer "+student)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":"teacher role required"}`, w.Body.String())

	unguarded := newRouter(tokens, RequireRole(models.RoleTeacher))
	assert.Equal(t, http.StatusUnauthorized, get(unguarded, "").Code)
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:8081"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://localhost:8081")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "http://localhost:8081", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/x", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestCORSAnyOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS(nil))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://anything")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}
