package service

import (
	"context"
	"errors"
	"skillup_backend/internal/authgateway"
	"skillup_backend/internal/config"
	"skillup_backend/internal/model"
	"skillup_backend/internal/util"
	"skillup_backend/pkg/logger"
	"skillup_backend/pkg/monitoring"
	"strings"
	"time"

	"go.uber.org/zap"
)

// AuthResult 认证成功后返回给客户端的内容
type AuthResult struct {
	Message    string            `json:"-"`
	Token      string            `json:"token,omitempty"`
	Session    *model.Session    `json:"session,omitempty"`
	Navigation *model.Navigation `json:"navigation"`
}

type AuthService struct {
	Gateway  authgateway.Gateway
	Sessions SessionStore
	Cfg      *config.Config

	now func() time.Time
}

func NewAuthService(gateway authgateway.Gateway, sessions SessionStore, cfg *config.Config) *AuthService {
	return &AuthService{
		Gateway:  gateway,
		Sessions: sessions,
		Cfg:      cfg,
		now:      time.Now,
	}
}

func observeAuth(operation string, err error) {
	outcome := "success"
	if err != nil {
		outcome = string(authgateway.AsAuthError(err).Kind)
	}
	monitoring.AuthRequests.WithLabelValues(operation, outcome).Inc()
}

// SignIn 校验输入后调用认证服务，成功则创建会话
func (s *AuthService) SignIn(ctx context.Context, email, password string) (_ *AuthResult, err error) {
	defer func() { observeAuth("signin", err) }()

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, authgateway.ValidationError(util.MsgFillAllFields)
	}

	identity, err := s.Gateway.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}

	session := &model.Session{
		ID:          model.GenerateUUID(),
		UserID:      identity.UID,
		Email:       identity.Email,
		DisplayName: identity.DisplayName,
		Provider:    identity.Provider,
		ExpiresAt:   s.now().Add(s.Cfg.JWT.ExpireTime),
	}
	if err := s.Sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	token, err := util.GenerateJWT(session, s.Cfg.JWT.Secret)
	if err != nil {
		// 令牌生成失败时不保留会话
		if delErr := s.Sessions.Delete(ctx, session.ID); delErr != nil {
			logger.Log.Warn("Failed to roll back session", zap.String("session", session.ID), zap.Error(delErr))
		}
		return nil, err
	}

	logger.Log.Info("User signed in", zap.String("uid", session.UserID), zap.String("provider", session.Provider))
	return &AuthResult{
		Message:    util.MsgLoginSuccessful,
		Token:      token,
		Session:    session,
		Navigation: model.NavigateTo(model.ScreenHome, true),
	}, nil
}

// SignUp 先检查两次密码是否一致，再检查必填与长度
func (s *AuthService) SignUp(ctx context.Context, email, password, confirmPassword string) (_ *AuthResult, err error) {
	defer func() { observeAuth("signup", err) }()

	email = strings.TrimSpace(email)
	switch {
	case password != confirmPassword:
		return nil, authgateway.ValidationError(util.MsgPasswordMismatch)
	case email == "" || password == "":
		return nil, authgateway.ValidationError(util.MsgFillAllFields)
	case len(password) < util.MinPasswordLength:
		return nil, authgateway.ValidationError(util.MsgPasswordTooShort)
	}

	identity, err := s.Gateway.SignUp(ctx, email, password)
	if err != nil {
		return nil, err
	}

	logger.Log.Info("User signed up", zap.String("uid", identity.UID), zap.String("provider", identity.Provider))
	return &AuthResult{
		Message:    util.MsgAccountCreated,
		Navigation: model.NavigateTo(model.ScreenSignIn, true),
	}, nil
}

func (s *AuthService) SendPasswordReset(ctx context.Context, email string) (_ string, err error) {
	defer func() { observeAuth("password_reset", err) }()

	email = strings.TrimSpace(email)
	if email == "" {
		return "", authgateway.ValidationError(util.MsgEnterEmailFirst)
	}

	if err := s.Gateway.SendPasswordReset(ctx, email); err != nil {
		return "", err
	}
	return util.MsgResetLinkSent, nil
}

// ConfirmPasswordReset 仅本地认证模式支持
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) (err error) {
	confirmer, ok := s.Gateway.(authgateway.PasswordResetConfirmer)
	if !ok {
		return util.ErrNotSupported
	}
	defer func() { observeAuth("password_reset_confirm", err) }()

	switch {
	case strings.TrimSpace(token) == "" || newPassword == "":
		return authgateway.ValidationError(util.MsgFillAllFields)
	case len(newPassword) < util.MinPasswordLength:
		return authgateway.ValidationError(util.MsgPasswordTooShort)
	}
	return confirmer.ConfirmPasswordReset(ctx, strings.TrimSpace(token), newPassword)
}

// Authenticate 解析令牌并确认会话仍然存在
func (s *AuthService) Authenticate(ctx context.Context, token string) (*model.Session, error) {
	claims, err := util.ParseJWT(token, s.Cfg.JWT.Secret)
	if err != nil {
		return nil, util.ErrSessionNotFound
	}
	return s.Sessions.Get(ctx, claims.SessionID)
}

// SignOut 删除会话，学习计划与筛选状态一并删除
func (s *AuthService) SignOut(ctx context.Context, session *model.Session) (*model.Navigation, error) {
	if err := s.Sessions.Delete(ctx, session.ID); err != nil {
		return nil, err
	}
	logger.Log.Info("User signed out", zap.String("uid", session.UserID))
	return model.NavigateTo(model.ScreenSignIn, true), nil
}

// SplashTarget 启动页结束后跳转的页面
func (s *AuthService) SplashTarget(ctx context.Context, token string) *model.Navigation {
	if token != "" {
		if _, err := s.Authenticate(ctx, token); err == nil {
			return model.NavigateTo(model.ScreenHome, true)
		} else if !errors.Is(err, util.ErrSessionNotFound) {
			logger.Log.Warn("Session lookup failed on splash", zap.Error(err))
		}
	}
	return model.NavigateTo(model.ScreenSignIn, true)
}
