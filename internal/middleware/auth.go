package middleware

import (
	"context"
	"errors"
	"skillup_backend/internal/model"
	"skillup_backend/internal/util"
	"skillup_backend/pkg/logger"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Authenticator 校验令牌并返回仍然有效的会话
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.Session, error)
}

// BearerToken 读取 Authorization 头，兼容 ?token= 查询参数
func BearerToken(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return c.Query("token")
}

func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := BearerToken(c)
		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		session, err := auth.Authenticate(c.Request.Context(), tokenString)
		if err != nil {
			if !errors.Is(err, util.ErrSessionNotFound) {
				logger.Log.Error("Session lookup failed", zap.Error(err))
				util.InternalServerError(c)
			} else {
				util.Unauthorized(c)
			}
			c.Abort()
			return
		}

		c.Set(util.ContextSessionKey, session)
		c.Next()
	}
}
