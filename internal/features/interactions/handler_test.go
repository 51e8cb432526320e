package interactions

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xyz-asif/lostfound/internal/features/posts"
	"github.com/xyz-asif/lostfound/internal/pkg/ratelimit"
)

type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  string          `json:"error"`
	Code   string          `json:"code"`
}

func (f *fixture) router(limits ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api/v1")
	RegisterRoutes(api, f.svc, limits...)
	RegisterAdminRoutes(api.Group("/admin"), f.svc)
	return r
}

func call(t *testing.T, r http.Handler, method, path string, body any) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func TestHandler_ClaimFlow(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "o@x.com", "Owner", "")
	p := f.post(t, posts.PostRequest{Title: "phone", Type: "PHONE", UserID: owner.ID.Hex()})
	r := f.router()

	code, env := call(t, r, "POST", "/api/v1/interactions/found", map[string]string{
		"postId":      p.ID.Hex(),
		"finderEmail": "a@x.com",
	})
	require.Equal(t, http.StatusOK, code)
	var fi FoundInteraction
	require.NoError(t, json.Unmarshal(env.Data, &fi))
	assert.Equal(t, "o@x.com", fi.OwnerEmail)
	assert.Equal(t, StatusPending, fi.Status)

	code, env = call(t, r, "POST", "/api/v1/interactions/found", map[string]string{
		"postId":      p.ID.Hex(),
		"finderEmail": "a@x.com",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "DUPLICATE_CLAIM", env.Code)

	code, env = call(t, r, "GET", "/api/v1/interactions/user/o@x.com/claims", nil)
	require.Equal(t, http.StatusOK, code)
	var claims []FoundInteraction
	require.NoError(t, json.Unmarshal(env.Data, &claims))
	assert.Len(t, claims, 1)

	code, env = call(t, r, "POST", "/api/v1/interactions/"+fi.ID.Hex()+"/confirm", nil)
	require.Equal(t, http.StatusOK, code)
	var res ConfirmResult
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, StatusAccepted, res.Status)
	assert.True(t, res.PostResolved)
	assert.Equal(t, fi.ID, res.ID)

	code, env = call(t, r, "GET", "/api/v1/interactions/user/a@x.com/found", nil)
	require.Equal(t, http.StatusOK, code)
	var found []posts.Post
	require.NoError(t, json.Unmarshal(env.Data, &found))
	require.Len(t, found, 1)
	assert.Equal(t, posts.StatusResolved, found[0].Status)
}

func TestHandler_Errors(t *testing.T) {
	f := newFixture(t)
	p := f.post(t, posts.PostRequest{Title: "phone", Type: "PHONE"})
	r := f.router()

	code, env := call(t, r, "POST", "/api/v1/interactions/found", map[string]string{"postId": p.ID.Hex()})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "INVALID_CLAIM", env.Code)

	code, env = call(t, r, "POST", "/api/v1/interactions/000000000000000000000000/confirm", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "INTERACTION_NOT_FOUND", env.Code)

	_, env = call(t, r, "POST", "/api/v1/interactions/found", map[string]string{"postId": p.ID.Hex(), "finderEmail": "a@x.com"})
	var fi FoundInteraction
	require.NoError(t, json.Unmarshal(env.Data, &fi))

	code, _ = call(t, r, "POST", "/api/v1/admin/interactions/"+fi.ID.Hex()+"/reject", nil)
	require.Equal(t, http.StatusOK, code)

	code, env = call(t, r, "POST", "/api/v1/admin/interactions/"+fi.ID.Hex()+"/reject", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "INVALID_TRANSITION", env.Code)

	code, _ = call(t, r, "POST", "/api/v1/interactions/"+fi.ID.Hex()+"/confirm", nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestHandler_RecordFoundRateLimited(t *testing.T) {
	f := newFixture(t)
	p := f.post(t, posts.PostRequest{Title: "phone", Type: "PHONE"})
	r := f.router(ratelimit.Middleware(ratelimit.New(1, time.Minute)))

	code, _ := call(t, r, "POST", "/api/v1/interactions/found", map[string]string{"postId": p.ID.Hex(), "finderEmail": "a@x.com"})
	require.Equal(t, http.StatusOK, code)

	code, env := call(t, r, "POST", "/api/v1/interactions/found", map[string]string{"postId": p.ID.Hex(), "finderEmail": "b@x.com"})
	assert.Equal(t, http.StatusTooManyRequests, code)
	assert.Equal(t, "RATE_LIMITED", env.Code)

	// Other routes are not limited.
	code, _ = call(t, r, "GET", "/api/v1/interactions/user/a@x.com/claims", nil)
	assert.Equal(t, http.StatusOK, code)
}
