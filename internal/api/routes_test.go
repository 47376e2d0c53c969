package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"wellness/planner/internal/cache"
	"wellness/planner/internal/completion"
	"wellness/planner/internal/config"
	"wellness/planner/internal/domain"
	"wellness/planner/internal/lock"
	"wellness/planner/internal/logger"
	"wellness/planner/internal/planning"
	"wellness/planner/internal/repository/memory"
	"wellness/planner/internal/service"
	"wellness/planner/internal/storage"
)

const testJWTSecret = "api-test-secret"

type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

// upstream builds a completion router whose providers all answer with the
// given status and body.
func upstream(apiKey string, status int, body string) completion.Invoker {
	hc := &http.Client{Transport: roundTripperFunc(func(*http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: status,
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Body:       io.NopCloser(bytes.NewReader([]byte(body))),
		}, nil
	})}
	cfg := config.ProviderConfig{BaseURL: "http://upstream", APIKey: apiKey, Timeout: time.Second}
	return completion.NewRouter(map[string]completion.Invoker{
		completion.ProviderOpenAI: completion.NewClientWithHTTPClient(completion.ProviderOpenAI, cfg, hc),
		completion.ProviderGroq:   completion.NewClientWithHTTPClient(completion.ProviderGroq, cfg, hc),
	})
}

// answering returns a completion router that replies with content.
func answering(content string) completion.Invoker {
	body, _ := json.Marshal(map[string]any{
		"choices": []any{map[string]any{"message": map[string]any{"role": "assistant", "content": content}}},
	})
	return upstream("sk-test", http.StatusOK, string(body))
}

type testEnv struct {
	router *gin.Engine
	users  *memory.UserRepo
}

func newTestEnv(t *testing.T, inv completion.Invoker) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := logger.Nop()

	c := cache.NewMemory(time.Minute)
	t.Cleanup(func() { _ = c.Close() })

	users := memory.NewUserRepo()
	authSvc := service.NewAuthService(users, testJWTSecret, time.Hour, log)
	profiles := service.NewProfileService(memory.NewProfileRepo(), c, time.Minute, log)
	gen := planning.NewGenerator(inv, log)
	plans := service.NewPlanService(
		profiles, gen,
		service.NewPersister(memory.NewPlanRepo(), memory.NewPlanRepo(), log),
		lock.NewMemory(),
		storage.NewMemory("plans"),
		log,
	)

	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(log))
	SetupRoutes(router, testJWTSecret, authSvc, profiles, plans, service.NewAdvisorService(gen), log)
	return &testEnv{router: router, users: users}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// member registers a member account and returns its token.
func (e *testEnv) member(t *testing.T, email string) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{"name": "Member", "email": email, "password": "password123"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return e.login(t, email)
}

// admin creates an admin account directly in the store and returns its token.
func (e *testEnv) admin(t *testing.T) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	_, err = e.users.Create(context.Background(), &domain.User{
		Name:         "Root",
		Email:        "root@example.com",
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
	})
	require.NoError(t, err)
	return e.login(t, "root@example.com")
}

func (e *testEnv) login(t *testing.T, email string) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": email, "password": "password123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, answering("{}"))
	w := env.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", decode(t, w)["status"])
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	env := newTestEnv(t, answering("{}"))

	w := env.do(t, http.MethodGet, "/api/v1/plans", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/plans", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	env := newTestEnv(t, answering("{}"))
	member := env.member(t, "member@example.com")

	w := env.do(t, http.MethodGet, "/api/v1/admin/users/anyone/plans", member, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	admin := env.admin(t)
	w = env.do(t, http.MethodGet, "/api/v1/admin/users/anyone/plans", admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode(t, w)["plans"])
}

func TestRegister_DuplicateEmailConflicts(t *testing.T) {
	env := newTestEnv(t, answering("{}"))
	env.member(t, "dup@example.com")

	w := env.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{"name": "Again", "email": "dup@example.com", "password": "password123"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = env.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{"name": "Short", "email": "short@example.com", "password": "123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
