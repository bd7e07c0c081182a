package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"skillup_backend/internal/authgateway"
	"skillup_backend/internal/catalog"
	"skillup_backend/internal/config"
	"skillup_backend/internal/middleware"
	"skillup_backend/internal/service"
	"skillup_backend/internal/service/servicetest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	router   *gin.Engine
	gateway  *servicetest.Gateway
	sessions *servicetest.Sessions
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{JWT: config.JWTConfig{Secret: "test-secret", ExpireTime: time.Hour}}
	gw := &servicetest.Gateway{Identity: &authgateway.Identity{UID: "uid-1", Email: "ana@example.com", DisplayName: "Ana", Provider: "test"}}
	sessions := servicetest.NewSessions()
	plans := servicetest.NewPlans()
	filters := servicetest.NewFilters()

	catalogService := service.NewCatalogService(service.BuiltinSource{}, catalog.NewStore(), nil, nil)
	_, err := catalogService.Load(context.Background())
	require.NoError(t, err)

	authService := service.NewAuthService(gw, sessions, cfg)
	dashboardService := service.NewDashboardService(catalogService, catalog.NewFilterCache(16), plans, filters)

	authCtrl := NewAuthController(authService)
	dashCtrl := NewDashboardController(dashboardService)
	courseCtrl := NewCourseController(dashboardService)
	planCtrl := NewPlanController(service.NewPlanService(catalogService, plans))
	lbCtrl := NewLeaderboardController(service.NewLeaderboardService(catalogService, nil))
	profileCtrl := NewProfileController(service.NewProfileService(catalogService))
	splashCtrl := NewSplashController(authService)

	r := gin.New()
	api := r.Group("/api")
	api.GET("/splash", splashCtrl.Splash)
	api.POST("/auth/signin", authCtrl.SignIn)
	api.POST("/auth/signup", authCtrl.SignUp)
	api.POST("/auth/password-reset", authCtrl.SendPasswordReset)
	api.POST("/auth/password-reset/confirm", authCtrl.ConfirmPasswordReset)

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(authService))
	authed.POST("/auth/signout", authCtrl.SignOut)
	authed.GET("/dashboard", dashCtrl.GetDashboard)
	authed.PUT("/dashboard/filter", dashCtrl.UpdateFilter)
	authed.GET("/courses", courseCtrl.Search)
	authed.GET("/courses/suggestions", courseCtrl.Suggestions)
	authed.GET("/courses/:title", courseCtrl.Detail)
	authed.GET("/plan", planCtrl.List)
	authed.POST("/plan", planCtrl.Add)
	authed.DELETE("/plan/:title", planCtrl.Remove)
	authed.GET("/leaderboard", lbCtrl.GetLeaderboard)
	authed.GET("/profile", profileCtrl.GetProfile)

	return &testEnv{router: r, gateway: gw, sessions: sessions}
}

type apiResponse struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) (int, apiResponse) {
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
	e.router.ServeHTTP(w, req)

	var resp apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w.Code, resp
}

func (e *testEnv) signIn(t *testing.T) string {
	t.Helper()
	code, resp := e.do(t, http.MethodPost, "/api/auth/signin", "", SignInRequest{Email: "ana@example.com", Password: "secret1"})
	require.Equal(t, http.StatusOK, code)

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	return data.Token
}

func TestSignIn(t *testing.T) {
	env := newTestEnv(t)

	code, resp := env.do(t, http.MethodPost, "/api/auth/signin", "", SignInRequest{Email: "ana@example.com", Password: "secret1"})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Login Successful", resp.Message)
	assert.Contains(t, string(resp.Data), `"screen":"home"`)
	assert.Equal(t, 1, env.sessions.Len())
}

func TestSignIn_Validation(t *testing.T) {
	env := newTestEnv(t)

	code, resp := env.do(t, http.MethodPost, "/api/auth/signin", "", SignInRequest{Email: " ", Password: "x"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Please fill all fields", resp.Message)
	assert.Zero(t, env.gateway.Calls)
}

func TestSignIn_RemoteErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"rejected", &authgateway.AuthError{Kind: authgateway.KindRejected, Message: "The password is invalid or the user does not have a password."}, http.StatusUnauthorized},
		{"unavailable", &authgateway.AuthError{Kind: authgateway.KindUnavailable, Message: authgateway.MsgNetworkError}, http.StatusBadGateway},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.gateway.Err = tt.err

			code, resp := env.do(t, http.MethodPost, "/api/auth/signin", "", SignInRequest{Email: "ana@example.com", Password: "secret1"})
			assert.Equal(t, tt.wantCode, code)
			if ae, ok := tt.err.(*authgateway.AuthError); ok {
				assert.Equal(t, ae.Message, resp.Message)
			}
			assert.Equal(t, 0, env.sessions.Len())
		})
	}
}

func TestSignUp(t *testing.T) {
	env := newTestEnv(t)

	code, resp := env.do(t, http.MethodPost, "/api/auth/signup", "", SignUpRequest{Email: "a@b.com", Password: "secret1", ConfirmPassword: "secret2"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Passwords do not match", resp.Message)

	env.gateway.Err = &authgateway.AuthError{Kind: authgateway.KindConflict, Message: "The email address is already in use by another account."}
	code, _ = env.do(t, http.MethodPost, "/api/auth/signup", "", SignUpRequest{Email: "a@b.com", Password: "secret1", ConfirmPassword: "secret1"})
	assert.Equal(t, http.StatusConflict, code)

	env.gateway.Err = nil
	code, resp = env.do(t, http.MethodPost, "/api/auth/signup", "", SignUpRequest{Email: "a@b.com", Password: "secret1", ConfirmPassword: "secret1"})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Account Created", resp.Message)
	assert.Contains(t, string(resp.Data), `"screen":"signin"`)
}

func TestPasswordReset(t *testing.T) {
	env := newTestEnv(t)

	code, resp := env.do(t, http.MethodPost, "/api/auth/password-reset", "", PasswordResetRequest{})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Enter your email first", resp.Message)

	code, resp = env.do(t, http.MethodPost, "/api/auth/password-reset", "", PasswordResetRequest{Email: "a@b.com"})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Password reset link sent", resp.Message)

	code, _ = env.do(t, http.MethodPost, "/api/auth/password-reset/confirm", "", PasswordResetConfirmRequest{Token: "t", NewPassword: "secret1"})
	assert.Equal(t, http.StatusNotFound, code)
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	env := newTestEnv(t)

	code, _ := env.do(t, http.MethodGet, "/api/dashboard", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	token := env.signIn(t)
	code, _ = env.do(t, http.MethodPost, "/api/auth/signout", token, nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = env.do(t, http.MethodGet, "/api/dashboard", token, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestSplash(t *testing.T) {
	env := newTestEnv(t)

	_, resp := env.do(t, http.MethodGet, "/api/splash", "", nil)
	assert.Contains(t, string(resp.Data), `"screen":"signin"`)
	assert.Contains(t, string(resp.Data), `"durationMillis":3000`)

	token := env.signIn(t)
	_, resp = env.do(t, http.MethodGet, "/api/splash", token, nil)
	assert.Contains(t, string(resp.Data), `"screen":"home"`)
}

func TestDashboardFlow(t *testing.T) {
	env := newTestEnv(t)
	token := env.signIn(t)

	code, resp := env.do(t, http.MethodGet, "/api/dashboard", token, nil)
	require.Equal(t, http.StatusOK, code)
	var d service.Dashboard
	require.NoError(t, json.Unmarshal(resp.Data, &d))
	assert.Equal(t, "Hi, Ana 👋", d.Greeting)
	assert.Len(t, d.Popular, 3)

	code, resp = env.do(t, http.MethodPut, "/api/dashboard/filter", token, FilterRequest{Category: "Programming"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Filtered: Programming", resp.Message)

	code, resp = env.do(t, http.MethodPut, "/api/dashboard/filter", token, FilterRequest{Category: "Cooking"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Unknown category: Cooking", resp.Message)
}

func TestCourses(t *testing.T) {
	env := newTestEnv(t)
	token := env.signIn(t)

	code, resp := env.do(t, http.MethodGet, "/api/courses?q=design&category=Design", token, nil)
	require.Equal(t, http.StatusOK, code)
	var res service.SearchResult
	require.NoError(t, json.Unmarshal(resp.Data, &res))
	assert.Len(t, res.Continue, 1)
	assert.Len(t, res.Popular, 1)

	code, _ = env.do(t, http.MethodGet, "/api/courses?category=Cooking", token, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, resp = env.do(t, http.MethodGet, "/api/courses/suggestions?q=a", token, nil)
	require.Equal(t, http.StatusOK, code)
	var suggestions []json.RawMessage
	require.NoError(t, json.Unmarshal(resp.Data, &suggestions))
	assert.Len(t, suggestions, 5)

	code, resp = env.do(t, http.MethodGet, "/api/courses/"+url.PathEscape("Kotlin Basics"), token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(resp.Data), "This is a detailed overview of Kotlin Basics.")
	assert.Contains(t, string(resp.Data), `"screen":"course_detail"`)

	code, _ = env.do(t, http.MethodGet, "/api/courses/Nope", token, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestPlan(t *testing.T) {
	env := newTestEnv(t)
	token := env.signIn(t)

	code, resp := env.do(t, http.MethodPost, "/api/plan", token, AddToPlanRequest{Title: "Kotlin Basics"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Added to plan", resp.Message)

	_, resp = env.do(t, http.MethodPost, "/api/plan", token, AddToPlanRequest{Title: "Kotlin Basics"})
	assert.Equal(t, "Already in plan", resp.Message)

	code, _ = env.do(t, http.MethodPost, "/api/plan", token, AddToPlanRequest{Title: "Nope"})
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = env.do(t, http.MethodPost, "/api/plan", token, AddToPlanRequest{})
	assert.Equal(t, http.StatusBadRequest, code)

	_, resp = env.do(t, http.MethodGet, "/api/plan", token, nil)
	assert.Contains(t, string(resp.Data), "Kotlin Basics")

	_, resp = env.do(t, http.MethodDelete, "/api/plan/"+url.PathEscape("Kotlin Basics"), token, nil)
	assert.Equal(t, "Removed from plan", resp.Message)

	_, resp = env.do(t, http.MethodDelete, "/api/plan/"+url.PathEscape("Kotlin Basics"), token, nil)
	assert.Equal(t, "Not in plan", resp.Message)
}

func TestLeaderboardAndProfile(t *testing.T) {
	env := newTestEnv(t)
	token := env.signIn(t)

	code, resp := env.do(t, http.MethodGet, "/api/leaderboard?period=monthly", token, nil)
	require.Equal(t, http.StatusOK, code)
	var lb service.Leaderboard
	require.NoError(t, json.Unmarshal(resp.Data, &lb))
	assert.Len(t, lb.Podium, 3)
	require.NotNil(t, lb.You)
	assert.Equal(t, "Ana", lb.You.Name)

	code, _ = env.do(t, http.MethodGet, "/api/leaderboard?period=daily", token, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, resp = env.do(t, http.MethodGet, "/api/profile", token, nil)
	require.Equal(t, http.StatusOK, code)
	var p service.Profile
	require.NoError(t, json.Unmarshal(resp.Data, &p))
	assert.Equal(t, "A", p.Initial)
	assert.Len(t, p.Achievements, 3)
}

func TestHealthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ok := func(ctx context.Context) error { return nil }
	down := func(ctx context.Context) error { return errors.New("refused") }

	for _, tc := range []struct {
		checks map[string]HealthCheck
		want   int
	}{
		{map[string]HealthCheck{"database": ok, "redis": ok}, http.StatusOK},
		{map[string]HealthCheck{"database": ok, "redis": down}, http.StatusServiceUnavailable},
	} {
		r := gin.New()
		r.GET("/api/health", NewHealthController(tc.checks).HealthCheck)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
		assert.Equal(t, tc.want, w.Code)
	}
}
