package util

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"skillup_backend/internal/model"
)

// ContextSessionKey 中间件写入 gin.Context 的会话键
const ContextSessionKey = "session"

type Claims struct {
	SessionID   string `json:"sid"`
	UserID      string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"name,omitempty"`
	Provider    string `json:"provider"`
	jwt.RegisteredClaims
}

func GenerateJWT(session *model.Session, secret string) (string, error) {
	claims := &Claims{
		SessionID:   session.ID,
		UserID:      session.UserID,
		Email:       session.Email,
		DisplayName: session.DisplayName,
		Provider:    session.Provider,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.ID,
			Subject:   session.UserID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseJWT(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid && claims.SessionID != "" {
		return claims, nil
	}

	return nil, errors.New("invalid token claims")
}

// Session 由 token 中的声明还原会话
func (c *Claims) Session() *model.Session {
	s := &model.Session{
		ID:          c.SessionID,
		UserID:      c.UserID,
		Email:       c.Email,
		DisplayName: c.DisplayName,
		Provider:    c.Provider,
	}
	if c.ExpiresAt != nil {
		s.ExpiresAt = c.ExpiresAt.Time
	}
	return s
}

func GetSessionFromContext(c *gin.Context) *model.Session {
	v, exists := c.Get(ContextSessionKey)
	if !exists {
		return nil
	}
	session, ok := v.(*model.Session)
	if !ok {
		return nil
	}
	return session
}
