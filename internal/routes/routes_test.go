package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xyz-asif/lostfound/internal/config"
	"github.com/xyz-asif/lostfound/internal/features/users"
	"github.com/xyz-asif/lostfound/internal/pkg/clock"
	"github.com/xyz-asif/lostfound/internal/pkg/metrics"
	"github.com/xyz-asif/lostfound/internal/pkg/ratelimit"
)

type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Code   string          `json:"code"`
}

func testConfig() *config.Config {
	return &config.Config{
		StoreDriver:       config.DriverMemory,
		JWTSecret:         "test-secret",
		RateLimitRequests: 100,
		RateLimitWindow:   time.Minute,
	}
}

func newRouter(t *testing.T, deps Deps) (*gin.Engine, *Stores) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if deps.Config == nil {
		deps.Config = testConfig()
	}
	if deps.Clock == nil {
		deps.Clock = clock.Fixed{At: time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)}
	}
	stores := MemoryStores()
	r := gin.New()
	SetupRoutes(r, stores, deps)
	return r, stores
}

func do(t *testing.T, r http.Handler, method, path, token string, body any) (int, envelope) {
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
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func TestLostPhoneIsFoundAndResolved(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	r, _ := newRouter(t, Deps{Metrics: m})

	code, env := do(t, r, "POST", "/api/v1/users", "", map[string]string{"email": "owner@x.com", "name": "kamal"})
	require.Equal(t, http.StatusOK, code)
	owner := decode[struct {
		ID string `json:"id"`
	}](t, env.Data)

	code, env = do(t, r, "POST", "/api/v1/posts", "", map[string]string{
		"title":  "Black phone",
		"type":   "PHONE",
		"imei":   "356938035643809",
		"userId": owner.ID,
	})
	require.Equal(t, http.StatusOK, code)
	post := decode[struct {
		ID          string `json:"id"`
		Date        string `json:"date"`
		UserInitial string `json:"userInitial"`
	}](t, env.Data)
	assert.Equal(t, "2025-03-14", post.Date)
	assert.Equal(t, "K", post.UserInitial)

	code, env = do(t, r, "GET", "/api/v1/posts/search?type=phone&value=356938035643809", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, post.ID, decode[struct {
		ID string `json:"id"`
	}](t, env.Data).ID)

	claim := map[string]string{"postId": post.ID, "finderEmail": "finder@x.com", "finderName": "Finder"}
	code, env = do(t, r, "POST", "/api/v1/interactions/found", "", claim)
	require.Equal(t, http.StatusOK, code)
	interaction := decode[struct {
		ID         string `json:"id"`
		OwnerEmail string `json:"ownerEmail"`
		Status     string `json:"status"`
	}](t, env.Data)
	assert.Equal(t, "owner@x.com", interaction.OwnerEmail)
	assert.Equal(t, "PENDING", interaction.Status)

	code, env = do(t, r, "POST", "/api/v1/interactions/found", "", claim)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "DUPLICATE_CLAIM", env.Code)

	code, env = do(t, r, "GET", "/api/v1/interactions/user/owner@x.com/claims", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]json.RawMessage](t, env.Data), 1)

	code, env = do(t, r, "POST", "/api/v1/interactions/"+interaction.ID+"/confirm", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, decode[struct {
		PostResolved bool `json:"postResolved"`
	}](t, env.Data).PostResolved)

	code, env = do(t, r, "GET", "/api/v1/posts/"+post.ID, "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "RESOLVED", decode[struct {
		Status string `json:"status"`
	}](t, env.Data).Status)

	// Resolved posts no longer match.
	code, env = do(t, r, "GET", "/api/v1/posts/search?type=PHONE&value=356938035643809", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "POST_NOT_FOUND", env.Code)

	code, env = do(t, r, "GET", "/api/v1/interactions/user/finder@x.com/found", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]json.RawMessage](t, env.Data), 1)

}

func TestAdminPasswordSurvivesPublicUpsert(t *testing.T) {
	r, stores := newRouter(t, Deps{})
	ctx := context.Background()

	admin, err := stores.Users.UpsertByEmail(ctx, &users.User{Email: "boss@x.com", Name: "Boss", Roles: []string{users.RoleUser}})
	require.NoError(t, err)
	require.NoError(t, stores.Users.SetRoles(ctx, admin.ID.Hex(), []string{users.RoleAdmin}))

	login := func(password string) int {
		code, _ := do(t, r, "POST", "/api/v1/auth/admin/login", "", map[string]string{"email": "boss@x.com", "password": password})
		return code
	}
	require.Equal(t, http.StatusOK, login("real-secret"))

	code, _ := do(t, r, "POST", "/api/v1/users", "", map[string]string{"email": "boss@x.com", "name": "Mallory", "password": "attacker1"})
	require.Equal(t, http.StatusOK, code)

	assert.Equal(t, http.StatusUnauthorized, login("attacker1"))
	assert.Equal(t, http.StatusOK, login("real-secret"))

	stored, err := stores.Users.GetByEmail(ctx, "boss@x.com")
	require.NoError(t, err)
	assert.True(t, stored.IsAdmin(), "public upsert must not drop roles")
}

func TestAdminFlow(t *testing.T) {
	r, stores := newRouter(t, Deps{})
	ctx := context.Background()

	admin, err := stores.Users.UpsertByEmail(ctx, &users.User{Email: "boss@x.com", Name: "Boss", Roles: []string{users.RoleUser}})
	require.NoError(t, err)
	require.NoError(t, stores.Users.SetRoles(ctx, admin.ID.Hex(), []string{users.RoleAdmin}))

	code, _ := do(t, r, "GET", "/api/v1/admin/stats", "", nil)
	require.Equal(t, http.StatusUnauthorized, code)

	code, env := do(t, r, "POST", "/api/v1/auth/admin/login", "", map[string]string{"email": "boss@x.com", "password": "first-pass"})
	require.Equal(t, http.StatusOK, code)
	tokens := decode[struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}](t, env.Data)

	code, env = do(t, r, "POST", "/api/v1/auth/admin/refresh", "", map[string]string{"refreshToken": tokens.RefreshToken})
	require.Equal(t, http.StatusOK, code)

	code, env = do(t, r, "POST", "/api/v1/posts", "", map[string]string{"title": "Wallet", "type": "WALLET"})
	require.Equal(t, http.StatusOK, code)
	postID := decode[struct {
		ID string `json:"id"`
	}](t, env.Data).ID

	code, env = do(t, r, "POST", "/api/v1/interactions/found", "", map[string]string{"postId": postID, "finderEmail": "f@x.com"})
	require.Equal(t, http.StatusOK, code)
	claimID := decode[struct {
		ID string `json:"id"`
	}](t, env.Data).ID

	code, env = do(t, r, "POST", "/api/v1/admin/interactions/"+claimID+"/reject", tokens.AccessToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "REJECTED", decode[struct {
		Status string `json:"status"`
	}](t, env.Data).Status)

	code, _ = do(t, r, "POST", "/api/v1/interactions/"+claimID+"/confirm", "", nil)
	assert.Equal(t, http.StatusOK, code)

	code, env = do(t, r, "GET", "/api/v1/admin/stats", tokens.AccessToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, struct {
		Lost, Found, Resolved, Users int64
	}{0, 0, 1, 1}, decode[struct {
		Lost, Found, Resolved, Users int64
	}](t, env.Data))
}

func TestSearchIsRateLimited(t *testing.T) {
	r, _ := newRouter(t, Deps{Limiter: ratelimit.New(2, time.Minute)})

	for i := 0; i < 2; i++ {
		code, _ := do(t, r, "GET", "/api/v1/posts/search?type=PHONE&value=x", "", nil)
		assert.Equal(t, http.StatusNotFound, code)
	}
	code, env := do(t, r, "GET", "/api/v1/posts/search?type=PHONE&value=x", "", nil)
	assert.Equal(t, http.StatusTooManyRequests, code)
	assert.Equal(t, "RATE_LIMITED", env.Code)

	// Plain listing is not limited.
	code, _ = do(t, r, "GET", "/api/v1/posts", "", nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestTokenConfig(t *testing.T) {
	cfg := testConfig()
	cfg.JWTAccessTTL = 5 * time.Minute
	tokens := TokenConfig(cfg)
	assert.Equal(t, 5*time.Minute, tokens.AccessExpiry)
	assert.Equal(t, 7*24*time.Hour, tokens.RefreshExpiry)
	assert.Equal(t, "test-secret", tokens.Secret)
}
