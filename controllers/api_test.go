package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"blogaulas/controllers"
	"blogaulas/database"
	"blogaulas/handlers"
	"blogaulas/models"
	"blogaulas/policy"
	"blogaulas/routes"
	"blogaulas/services"
	"blogaulas/testutil/memstore"
	"blogaulas/utils"
)

type testAPI struct {
	router *gin.Engine
	level  zap.AtomicLevel
	store  *memstore.Store
	tokens *utils.TokenManager
	pingOK bool
}

func newTestAPI(t *testing.T, strict bool) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := zap.NewNop()

	api := &testAPI{
		store:  memstore.New(),
		tokens: utils.NewTokenManager("test-secret", time.Hour),
		level:  zap.NewAtomicLevelAt(zap.InfoLevel),
		pingOK: true,
	}
	require.NoError(t, database.Seed(context.Background(), api.store.Users(), database.DefaultAccounts, log))

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	hub := services.NewHubService(nil, log)
	hub.Start(ctx)

	pol := policy.New(strict)
	authService, err := services.NewAuthService(api.store.Users(), api.tokens)
	require.NoError(t, err)

	api.router = routes.NewEngine(log, nil)
	routes.SetupRoutes(api.router, api.tokens,
		controllers.NewAuthController(authService),
		controllers.NewPostController(services.NewPostService(api.store.Posts(), pol, hub)),
		controllers.NewCommentController(services.NewCommentService(api.store.Posts(), api.store.Comments(), pol, hub)),
		controllers.NewUserController(services.NewUserService(api.store.Users(), pol)),
		controllers.NewHealthController(func(context.Context) error {
			if api.pingOK {
				return nil
			}
			return errors.New("db down")
		}),
		controllers.NewLogController(api.level),
		handlers.NewWebSocketHandler(hub, nil, log),
	)
	return api
}

func (a *testAPI) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testAPI) login(t *testing.T, username, password string) string {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"username": username, "password": password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func (a *testAPI) tokenFor(t *testing.T, id uint, username string, role models.Role) string {
	t.Helper()
	token, err := a.tokens.GenerateJWT(models.Identity{ID: id, Username: username, Role: role})
	require.NoError(t, err)
	return token
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]string](t, w)["error"]
}

func (a *testAPI) createPost(t *testing.T, token, title, content string) models.Post {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/posts", token, map[string]string{"title": title, "content": content})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[models.Post](t, w)
}

func TestLoginResponse(t *testing.T) {
	api := newTestAPI(t, false)
	w := api.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "prof1", "password": "senha123"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Message string          `json:"message"`
		Token   string          `json:"token"`
		User    models.Identity `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Login successful", resp.Message)
	assert.Equal(t, "prof1", resp.User.Username)
	assert.Equal(t, models.RoleTeacher, resp.User.Role)
	assert.NotContains(t, w.Body.String(), "password")

	id, err := api.tokens.ValidateJWT(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleTeacher, id.Role)
}

func TestLoginFailures(t *testing.T) {
	api := newTestAPI(t, false)

	wrong := api.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "prof1", "password": "x"})
	ghost := api.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "ghost", "password": "x"})
	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, http.StatusUnauthorized, ghost.Code)
	assert.Equal(t, wrong.Body.String(), ghost.Body.String())

	missing := api.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "prof1"})
	assert.Equal(t, http.StatusBadRequest, missing.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid request body", errorOf(t, w))
}

func TestMe(t *testing.T) {
	api := newTestAPI(t, false)
	token := api.login(t, "aluno1", "senha123")

	w := api.do(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	me := decode[models.Identity](t, w)
	assert.Equal(t, "aluno1", me.Username)
	assert.Equal(t, models.RoleStudent, me.Role)
}

func TestTokenRequired(t *testing.T) {
	api := newTestAPI(t, false)

	w := api.do(t, http.MethodPost, "/api/posts", "", map[string]string{"title": "T", "content": "C"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "no token provided", errorOf(t, w))

	w = api.do(t, http.MethodPost, "/api/posts", "garbage", map[string]string{"title": "T", "content": "C"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	other := utils.NewTokenManager("other-secret", time.Hour)
	forged, err := other.GenerateJWT(models.Identity{ID: 1, Username: "prof1", Role: models.RoleTeacher})
	require.NoError(t, err)
	w = api.do(t, http.MethodPost, "/api/posts", forged, map[string]string{"title": "T", "content": "C"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	expired := utils.NewTokenManager("test-secret", -time.Minute)
	old, err := expired.GenerateJWT(models.Identity{ID: 1, Username: "prof1", Role: models.RoleTeacher})
	require.NoError(t, err)
	w = api.do(t, http.MethodPost, "/api/posts", old, map[string]string{"title": "T", "content": "C"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTeacherCreatesPost(t *testing.T) {
	api := newTestAPI(t, false)
	token := api.login(t, "prof1", "senha123")

	post := api.createPost(t, token, "Aula 1", "Introdução")
	assert.Equal(t, "prof1", post.Author)
	assert.NotZero(t, post.ID)

	w := api.do(t, http.MethodGet, fmt.Sprintf("/api/posts/%d", post.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[models.Post](t, w)
	assert.Equal(t, "Aula 1", got.Title)
	assert.Empty(t, got.Comments)
}

func TestStudentCannotCreatePost(t *testing.T) {
	api := newTestAPI(t, false)
	token := api.login(t, "aluno1", "senha123")
	w := api.do(t, http.MethodPost, "/api/posts", token, map[string]string{"title": "T", "content": "C"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreatePostMissingFields(t *testing.T) {
	api := newTestAPI(t, false)
	token := api.login(t, "prof1", "senha123")
	w := api.do(t, http.MethodPost, "/api/posts", token, map[string]string{"title": "T"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "title and content are required", errorOf(t, w))
}

func TestListAndSearchPosts(t *testing.T) {
	api := newTestAPI(t, false)
	token := api.login(t, "prof1", "senha123")
	api.createPost(t, token, "Frações", "matemática básica")
	api.createPost(t, token, "Verbos", "português")

	w := api.do(t, http.MethodGet, "/api/posts", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	all := decode[[]models.Post](t, w)
	require.Len(t, all, 2)
	assert.Equal(t, "Verbos", all[0].Title)

	w = api.do(t, http.MethodGet, "/api/posts?q=MATEM", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	found := decode[[]models.Post](t, w)
	require.Len(t, found, 1)
	assert.Equal(t, "Frações", found[0].Title)

	w = api.do(t, http.MethodGet, "/api/posts?q=xyz", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestGetPostErrors(t *testing.T) {
	api := newTestAPI(t, false)

	w := api.do(t, http.MethodGet, "/api/posts/999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "post not found", errorOf(t, w))

	w = api.do(t, http.MethodGet, "/api/posts/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdatePost(t *testing.T) {
	api := newTestAPI(t, false)
	prof := api.login(t, "prof1", "senha123")
	post := api.createPost(t, prof, "T", "C")

	w := api.do(t, http.MethodPut, fmt.Sprintf("/api/posts/%d", post.ID), prof, map[string]string{"title": "T2", "content": "C2"})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode[models.Post](t, w)
	assert.Equal(t, "T2", updated.Title)
	assert.True(t, updated.CreatedAt.Equal(post.CreatedAt))

	w = api.do(t, http.MethodPut, "/api/posts/999", prof, map[string]string{"title": "T2", "content": "C2"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPostOwnershipModes(t *testing.T) {
	t.Run("permissive", func(t *testing.T) {
		api := newTestAPI(t, false)
		post := api.createPost(t, api.login(t, "prof1", "senha123"), "T", "C")
		student := api.login(t, "aluno1", "senha123")

		w := api.do(t, http.MethodPut, fmt.Sprintf("/api/posts/%d", post.ID), student, map[string]string{"title": "x", "content": "y"})
		assert.Equal(t, http.StatusOK, w.Code)
		w = api.do(t, http.MethodDelete, fmt.Sprintf("/api/posts/%d", post.ID), student, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("strict", func(t *testing.T) {
		api := newTestAPI(t, true)
		post := api.createPost(t, api.login(t, "prof1", "senha123"), "T", "C")
		student := api.login(t, "aluno1", "senha123")

		w := api.do(t, http.MethodPut, fmt.Sprintf("/api/posts/%d", post.ID), student, map[string]string{"title": "x", "content": "y"})
		assert.Equal(t, http.StatusForbidden, w.Code)
		w = api.do(t, http.MethodDelete, fmt.Sprintf("/api/posts/%d", post.ID), student, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)

		other := api.tokenFor(t, 50, "prof2", models.RoleTeacher)
		w = api.do(t, http.MethodDelete, fmt.Sprintf("/api/posts/%d", post.ID), other, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestAnonymousComment(t *testing.T) {
	api := newTestAPI(t, false)
	post := api.createPost(t, api.login(t, "prof1", "senha123"), "T", "C")

	w := api.do(t, http.MethodPost, fmt.Sprintf("/api/posts/%d/comments", post.ID), "", map[string]string{"author": "Visitante", "content": "Ótima aula"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	c := decode[models.Comment](t, w)
	assert.Equal(t, "Visitante", c.Author)
	assert.Equal(t, post.ID, c.PostID)

	w = api.do(t, http.MethodPost, "/api/posts/999/comments", "", map[string]string{"author": "a", "content": "b"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = api.do(t, http.MethodPost, fmt.Sprintf("/api/posts/%d/comments", post.ID), "", map[string]string{"content": "sem autor"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(t, http.MethodPost, fmt.Sprintf("/api/posts/%d/comments", post.ID), "garbage", map[string]string{"author": "a", "content": "b"})
	assert.Equal(t, http.StatusCreated, w.Code)
}

// A client holding an expired token can still comment, as an anonymous author.
func TestCommentWithExpiredToken(t *testing.T) {
	api := newTestAPI(t, false)
	post := api.createPost(t, api.login(t, "prof1", "senha123"), "T", "C")

	expired := utils.NewTokenManager("test-secret", -time.Minute)
	stale, err := expired.GenerateJWT(models.Identity{ID: 2, Username: "aluno1", Role: models.RoleStudent})
	require.NoError(t, err)

	path := fmt.Sprintf("/api/posts/%d/comments", post.ID)
	w := api.do(t, http.MethodPost, path, stale, map[string]string{"author": "aluno1", "content": "ainda posso?"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "aluno1", decode[models.Comment](t, w).Author)

	// Without a valid identity there is no username to fall back on.
	w = api.do(t, http.MethodPost, path, stale, map[string]string{"content": "sem autor"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCommentByLoggedInUserDefaultsAuthor(t *testing.T) {
	api := newTestAPI(t, false)
	post := api.createPost(t, api.login(t, "prof1", "senha123"), "T", "C")
	student := api.login(t, "aluno1", "senha123")

	w := api.do(t, http.MethodPost, fmt.Sprintf("/api/posts/%d/comments", post.ID), student, map[string]string{"content": "oi"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "aluno1", decode[models.Comment](t, w).Author)
}

func TestCommentEditAndDelete(t *testing.T) {
	api := newTestAPI(t, false)
	prof := api.login(t, "prof1", "senha123")
	student := api.login(t, "aluno1", "senha123")
	intruder := api.tokenFor(t, 77, "aluno2", models.RoleStudent)
	post := api.createPost(t, prof, "T", "C")

	w := api.do(t, http.MethodPost, fmt.Sprintf("/api/posts/%d/comments", post.ID), "", map[string]string{"author": "aluno1", "content": "oi"})
	require.Equal(t, http.StatusCreated, w.Code)
	c := decode[models.Comment](t, w)

	w = api.do(t, http.MethodPut, fmt.Sprintf("/api/comments/%d", c.ID), intruder, map[string]string{"content": "x"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = api.do(t, http.MethodDelete, fmt.Sprintf("/api/comments/%d", c.ID), intruder, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = api.do(t, http.MethodPut, fmt.Sprintf("/api/posts/%d/comments/%d", post.ID, c.ID), student, map[string]string{"content": "editado"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "editado", decode[models.Comment](t, w).Content)

	w = api.do(t, http.MethodPut, fmt.Sprintf("/api/comments/%d", c.ID), prof, map[string]string{"content": "x"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = api.do(t, http.MethodDelete, fmt.Sprintf("/api/comments/%d", c.ID), prof, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())

	w = api.do(t, http.MethodDelete, fmt.Sprintf("/api/comments/%d", c.ID), prof, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCommentsVanishWithPost(t *testing.T) {
	api := newTestAPI(t, false)
	prof := api.login(t, "prof1", "senha123")
	post := api.createPost(t, prof, "T", "C")

	w := api.do(t, http.MethodPost, fmt.Sprintf("/api/posts/%d/comments", post.ID), "", map[string]string{"author": "a", "content": "b"})
	require.Equal(t, http.StatusCreated, w.Code)
	c := decode[models.Comment](t, w)

	w = api.do(t, http.MethodDelete, fmt.Sprintf("/api/posts/%d", post.ID), prof, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())

	w = api.do(t, http.MethodGet, fmt.Sprintf("/api/posts/%d", post.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = api.do(t, http.MethodDelete, fmt.Sprintf("/api/comments/%d", c.ID), prof, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = api.do(t, http.MethodDelete, fmt.Sprintf("/api/posts/%d", post.ID), prof, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUsersEndpointsTeacherOnly(t *testing.T) {
	api := newTestAPI(t, false)
	student := api.login(t, "aluno1", "senha123")

	for _, path := range []string{"/api/users", "/api/users/teachers", "/api/users/students", "/api/users/export", "/api/users/1"} {
		w := api.do(t, http.MethodGet, path, student, nil)
		assert.Equal(t, http.StatusForbidden, w.Code, path)
		w = api.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
	w := api.do(t, http.MethodPost, "/api/users", student, map[string]string{"username": "z", "password": "pw", "role": "teacher"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUserManagement(t *testing.T) {
	api := newTestAPI(t, false)
	prof := api.login(t, "prof1", "senha123")

	w := api.do(t, http.MethodPost, "/api/users", prof, map[string]string{"username": "aluno2", "password": "pw", "role": "student"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[models.User](t, w)
	assert.NotContains(t, w.Body.String(), "password")

	w = api.do(t, http.MethodPost, "/api/users", prof, map[string]string{"username": "aluno2", "password": "pw", "role": "student"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = api.do(t, http.MethodPost, "/api/users", prof, map[string]string{"username": "x", "password": "pw", "role": "janitor"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(t, http.MethodGet, "/api/users/students", prof, nil)
	require.Equal(t, http.StatusOK, w.Code)
	students := decode[[]models.User](t, w)
	assert.Len(t, students, 2)

	w = api.do(t, http.MethodGet, "/api/users/teachers", prof, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.User](t, w), 1)

	w = api.do(t, http.MethodPut, fmt.Sprintf("/api/users/%d", created.ID), prof, map[string]string{"password": "nova"})
	require.Equal(t, http.StatusOK, w.Code)
	api.login(t, "aluno2", "nova")

	w = api.do(t, http.MethodGet, fmt.Sprintf("/api/users/%d", created.ID), prof, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "aluno2", decode[models.User](t, w).Username)

	w = api.do(t, http.MethodDelete, fmt.Sprintf("/api/users/%d", created.ID), prof, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"User deleted successfully"}`, w.Body.String())

	w = api.do(t, http.MethodGet, fmt.Sprintf("/api/users/%d", created.ID), prof, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteAdminReportsNotFound(t *testing.T) {
	api := newTestAPI(t, false)
	admin := &models.User{Username: "root", Role: models.RoleAdmin, PasswordHash: "x"}
	require.NoError(t, api.store.Users().Create(context.Background(), admin))
	prof := api.login(t, "prof1", "senha123")

	w := api.do(t, http.MethodDelete, fmt.Sprintf("/api/users/%d", admin.ID), prof, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	_, err := api.store.Users().FindByID(context.Background(), admin.ID)
	assert.NoError(t, err)
}

func TestExportUsers(t *testing.T) {
	api := newTestAPI(t, false)
	prof := api.login(t, "prof1", "senha123")

	w := api.do(t, http.MethodGet, "/api/users/export", prof, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PK")))
}

func TestStoreFailureHidesCause(t *testing.T) {
	api := newTestAPI(t, false)
	api.store.FailWith = errors.New("pq: connection refused on 10.0.0.5")

	w := api.do(t, http.MethodGet, "/api/posts", "", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal error", errorOf(t, w))
	assert.NotContains(t, w.Body.String(), "10.0.0.5")
}

func TestHealthAndMetrics(t *testing.T) {
	api := newTestAPI(t, false)

	w := api.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	api.pingOK = false
	w = api.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = api.do(t, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

func TestRequestIDEchoed(t *testing.T) {
	api := newTestAPI(t, false)
	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestLogLevelTeacherOnly(t *testing.T) {
	api := newTestAPI(t, false)
	prof := api.login(t, "prof1", "senha123")
	student := api.login(t, "aluno1", "senha123")

	w := api.do(t, http.MethodGet, "/api/admin/log-level", prof, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"level":"info"}`, w.Body.String())

	w = api.do(t, http.MethodPut, "/api/admin/log-level", student, map[string]string{"level": "debug"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, zap.InfoLevel, api.level.Level())

	w = api.do(t, http.MethodPut, "/api/admin/log-level", prof, map[string]string{"level": "debug"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"level":"debug"}`, w.Body.String())
	assert.Equal(t, zap.DebugLevel, api.level.Level())

	w = api.do(t, http.MethodPut, "/api/admin/log-level", prof, map[string]string{"level": "loud"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "unknown log level", errorOf(t, w))
	assert.Equal(t, zap.DebugLevel, api.level.Level())

	assert.Equal(t, http.StatusUnauthorized, api.do(t, http.MethodGet, "/api/admin/log-level", "", nil).Code)
}
