package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xyz-asif/lostfound/internal/features/users"
	"github.com/xyz-asif/lostfound/internal/pkg/jwt"
	"github.com/xyz-asif/lostfound/internal/pkg/logger"
	apperrors "github.com/xyz-asif/lostfound/pkg/errors"
)

type stubVerifier struct {
	user *GoogleUser
	err  error
}

func (s stubVerifier) VerifyIDToken(context.Context, string) (*GoogleUser, error) {
	return s.user, s.err
}

type fixture struct {
	svc    *Service
	users  *users.Service
	tokens *jwt.Config
}

func newFixture(t *testing.T, verifier TokenVerifier) *fixture {
	t.Helper()
	userSvc := users.NewService(users.NewMemoryStore(), logger.Discard())
	tokens := jwt.DefaultConfig("test-secret")
	return &fixture{
		svc:    NewService(userSvc, tokens, verifier, logger.Discard()),
		users:  userSvc,
		tokens: tokens,
	}
}

func (f *fixture) admin(t *testing.T, email, password string, roles ...string) *users.User {
	t.Helper()
	ctx := context.Background()
	u, err := f.users.Save(ctx, users.SaveUserRequest{Email: email, Name: "Admin", Password: password})
	require.NoError(t, err)
	if len(roles) > 0 {
		require.NoError(t, f.users.SetRoles(ctx, u.ID.Hex(), roles))
	}
	return u
}

func TestAdminLogin_FirstLoginSetsPassword(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.admin(t, "boss@x.com", "", users.RoleAdmin)

	res, err := f.svc.AdminLogin(ctx, "boss@x.com", "first-pass")
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.NotEmpty(t, res.RefreshToken)
	assert.Equal(t, "boss@x.com", res.User.Email)

	_, err = f.svc.AdminLogin(ctx, "boss@x.com", "other-pass")
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)

	_, err = f.svc.AdminLogin(ctx, "boss@x.com", "first-pass")
	require.NoError(t, err)
}

func TestAdminLogin_Rejections(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	f.admin(t, "user@x.com", "secret1")
	owner := f.admin(t, "owner@x.com", "secret1", users.RoleOwner)

	_, err := f.svc.AdminLogin(ctx, "nobody@x.com", "secret1")
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)

	_, err = f.svc.AdminLogin(ctx, "user@x.com", "secret1")
	require.ErrorIs(t, err, ErrAdminRequired)
	require.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = f.svc.AdminLogin(ctx, "owner@x.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	res, err := f.svc.AdminLogin(ctx, "owner@x.com", "secret1")
	require.NoError(t, err)
	claims, err := jwt.ValidateTokenOfType(res.AccessToken, jwt.TypeAccess, f.tokens)
	require.NoError(t, err)
	assert.True(t, claims.HasAnyRole(users.RoleOwner))

	_, err = f.users.ToggleBlocked(ctx, owner.ID.Hex())
	require.NoError(t, err)
	_, err = f.svc.AdminLogin(ctx, "owner@x.com", "secret1")
	require.ErrorIs(t, err, ErrAccountBlocked)
}

func TestRefresh(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	u := f.admin(t, "boss@x.com", "secret1", users.RoleAdmin)

	login, err := f.svc.AdminLogin(ctx, "boss@x.com", "secret1")
	require.NoError(t, err)

	res, err := f.svc.Refresh(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.Empty(t, res.RefreshToken)

	// Access tokens cannot be used to refresh.
	_, err = f.svc.Refresh(ctx, login.AccessToken)
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)

	_, err = f.users.ToggleBlocked(ctx, u.ID.Hex())
	require.NoError(t, err)
	_, err = f.svc.Refresh(ctx, login.RefreshToken)
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestGoogleSignIn(t *testing.T) {
	ctx := context.Background()

	disabled := newFixture(t, nil)
	_, err := disabled.svc.GoogleSignIn(ctx, "token")
	require.ErrorIs(t, err, apperrors.ErrUnavailable)

	f := newFixture(t, stubVerifier{user: &GoogleUser{UID: "g1", Email: "g@x.com", Name: "Gaya", Picture: "https://img.example/g.png"}})
	_, err = f.users.Save(ctx, users.SaveUserRequest{Email: "g@x.com", PhoneNumber: "+94 77 123 4567"})
	require.NoError(t, err)

	u, err := f.svc.GoogleSignIn(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, users.ProviderGoogle, u.AuthProvider)
	assert.Equal(t, "Gaya", u.Name)
	assert.Equal(t, "+94 77 123 4567", u.PhoneNumber, "sign-in keeps the stored phone")

	bad := newFixture(t, stubVerifier{err: errors.New("expired")})
	_, err = bad.svc.GoogleSignIn(ctx, "token")
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestGoogleUserFromClaims(t *testing.T) {
	gu := googleUserFromClaims("uid", map[string]interface{}{
		"email":          "a@x.com",
		"name":           "A",
		"picture":        "p",
		"email_verified": true,
	})
	assert.Equal(t, &GoogleUser{UID: "uid", Email: "a@x.com", Name: "A", Picture: "p", EmailVerified: true}, gu)
}

func TestAdminRequired(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := jwt.DefaultConfig("test-secret")

	r := gin.New()
	r.GET("/admin", AdminRequired(cfg), func(c *gin.Context) {
		c.JSON(200, gin.H{"email": c.GetString(ContextEmail)})
	})

	request := func(header string) (int, map[string]any) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/admin", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		r.ServeHTTP(w, req)
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		return w.Code, body
	}

	code, body := request("")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "AUTH_REQUIRED", body["code"])

	code, body = request("Token abc")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "INVALID_AUTH_FORMAT", body["code"])

	code, body = request("Bearer not.a.jwt")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "INVALID_TOKEN", body["code"])

	userToken, err := jwt.GenerateAccessToken("u1", "u@x.com", []string{users.RoleUser}, cfg)
	require.NoError(t, err)
	code, body = request("Bearer " + userToken)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "ADMIN_REQUIRED", body["code"])

	refresh, err := jwt.GenerateRefreshToken("a1", "a@x.com", []string{users.RoleAdmin}, cfg)
	require.NoError(t, err)
	code, _ = request("Bearer " + refresh)
	assert.Equal(t, http.StatusUnauthorized, code)

	expired := *cfg
	expired.Now = func() time.Time { return time.Now().Add(-time.Hour) }
	old, err := jwt.GenerateAccessToken("a1", "a@x.com", []string{users.RoleAdmin}, &expired)
	require.NoError(t, err)
	code, _ = request("Bearer " + old)
	assert.Equal(t, http.StatusUnauthorized, code)

	adminToken, err := jwt.GenerateAccessToken("a1", "a@x.com", []string{users.RoleAdmin}, cfg)
	require.NoError(t, err)
	code, body = request("Bearer " + adminToken)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "a@x.com", body["email"])
}

func TestHandler_Login(t *testing.T) {
	gin.SetMode(gin.TestMode)
	f := newFixture(t, nil)
	f.admin(t, "boss@x.com", "secret1", users.RoleAdmin)

	r := gin.New()
	RegisterRoutes(r.Group("/api/v1"), f.svc)

	post := func(path, body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusBadRequest, post("/api/v1/auth/admin/login", `{"email":"boss@x.com"}`).Code)
	assert.Equal(t, http.StatusUnauthorized, post("/api/v1/auth/admin/login", `{"email":"boss@x.com","password":"nope"}`).Code)

	w := post("/api/v1/auth/admin/login", `{"email":"boss@x.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "refreshToken")

	assert.Equal(t, http.StatusServiceUnavailable, post("/api/v1/auth/google", `{"idToken":"x"}`).Code)
}
