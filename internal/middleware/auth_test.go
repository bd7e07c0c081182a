package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"skillup_backend/internal/model"
	"skillup_backend/internal/util"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubAuth struct {
	session *model.Session
	err     error
	token   string
}

func (s *stubAuth) Authenticate(ctx context.Context, token string) (*model.Session, error) {
	s.token = token
	return s.session, s.err
}

func newRouter(auth Authenticator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", AuthMiddleware(auth), func(c *gin.Context) {
		c.String(http.StatusOK, util.GetSessionFromContext(c).ID)
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		auth     *stubAuth
		header   string
		query    string
		wantCode int
		wantBody string
	}{
		{"no token", &stubAuth{}, "", "", http.StatusUnauthorized, ""},
		{"bearer header", &stubAuth{session: &model.Session{ID: "sid"}}, "Bearer abc", "", http.StatusOK, "sid"},
		{"query token", &stubAuth{session: &model.Session{ID: "sid"}}, "", "?token=abc", http.StatusOK, "sid"},
		{"expired session", &stubAuth{err: util.ErrSessionNotFound}, "Bearer abc", "", http.StatusUnauthorized, ""},
		{"store down", &stubAuth{err: errors.New("redis down")}, "Bearer abc", "", http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(tt.auth)
			req := httptest.NewRequest(http.MethodGet, "/me"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, w.Body.String())
				assert.Equal(t, "abc", tt.auth.token)
			}
		})
	}
}
