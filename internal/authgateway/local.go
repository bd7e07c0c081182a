package authgateway

import (
	"context"
	"errors"
	"net/mail"
	"skillup_backend/internal/model"
	"skillup_backend/internal/util"
	"skillup_backend/pkg/logger"
	"skillup_backend/pkg/tracing"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// PasswordResetTokenExpiry 重置链接有效期
const PasswordResetTokenExpiry = time.Hour

const (
	// MaxLoginFailures 窗口内连续失败达到该次数后拒绝登录
	MaxLoginFailures   = 5
	LoginFailureWindow = 15 * time.Minute
)

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	UpdatePassword(ctx context.Context, email, passwordHash string) error
}

type ResetTokenStore interface {
	SaveResetToken(ctx context.Context, tokenHash, email string, ttl time.Duration) error
	// ConsumeResetToken 读取并删除，token 只能使用一次
	ConsumeResetToken(ctx context.Context, tokenHash string) (string, error)
}

// LoginAttemptStore 登录失败计数
type LoginAttemptStore interface {
	Failures(ctx context.Context, email string) (int, error)
	RecordFailure(ctx context.Context, email string, window time.Duration) (int, error)
	Reset(ctx context.Context, email string) error
}

// Local 本地开发用的认证实现，用户存 MySQL，密码 bcrypt
type Local struct {
	users    UserStore
	tokens   ResetTokenStore
	mailer   EmailProvider
	resetURL string

	// Attempts 为空时不限制失败次数
	Attempts LoginAttemptStore
}

func NewLocal(users UserStore, tokens ResetTokenStore, mailer EmailProvider, resetURL string) *Local {
	return &Local{
		users:    users,
		tokens:   tokens,
		mailer:   mailer,
		resetURL: resetURL,
	}
}

func (g *Local) Name() string {
	return util.AuthProviderLocal
}

func (g *Local) SignIn(ctx context.Context, email, password string) (_ *Identity, err error) {
	ctx, span := tracing.Start(ctx, "local.signIn")
	defer func() { tracing.End(span, err) }()

	email = strings.ToLower(email)
	if g.Attempts != nil {
		n, ferr := g.Attempts.Failures(ctx, email)
		if ferr != nil {
			return nil, unavailable(ferr)
		}
		if n >= MaxLoginFailures {
			return nil, knownError("TOO_MANY_ATTEMPTS_TRY_LATER")
		}
	}

	user, err := g.users.FindByEmail(ctx, email)
	if errors.Is(err, util.ErrUserNotFound) {
		return nil, g.loginFailed(ctx, email)
	}
	if err != nil {
		return nil, unavailable(err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, g.loginFailed(ctx, email)
	}

	if g.Attempts != nil {
		if rerr := g.Attempts.Reset(ctx, email); rerr != nil {
			logger.Log.Warn("Failed to reset login failures", zap.String("email", email), zap.Error(rerr))
		}
	}
	return g.identity(user), nil
}

func (g *Local) loginFailed(ctx context.Context, email string) *AuthError {
	if g.Attempts != nil {
		if _, err := g.Attempts.RecordFailure(ctx, email, LoginFailureWindow); err != nil {
			logger.Log.Warn("Failed to record login failure", zap.String("email", email), zap.Error(err))
		}
	}
	return knownError("INVALID_LOGIN_CREDENTIALS")
}

func (g *Local) SignUp(ctx context.Context, email, password string) (_ *Identity, err error) {
	ctx, span := tracing.Start(ctx, "local.signUp")
	defer func() { tracing.End(span, err) }()

	if _, perr := mail.ParseAddress(email); perr != nil {
		return nil, knownError("INVALID_EMAIL")
	}
	if len(password) < util.MinPasswordLength {
		return nil, knownError("WEAK_PASSWORD")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		UID:          model.GenerateUUID(),
		Email:        strings.ToLower(email),
		PasswordHash: string(hash),
	}
	if err := g.users.Create(ctx, user); err != nil {
		if errors.Is(err, util.ErrUserExists) {
			return nil, knownError("EMAIL_EXISTS")
		}
		return nil, unavailable(err)
	}

	return g.identity(user), nil
}

// SendPasswordReset 邮箱不存在时同样返回成功，避免暴露账户是否存在
func (g *Local) SendPasswordReset(ctx context.Context, email string) (err error) {
	ctx, span := tracing.Start(ctx, "local.sendPasswordReset")
	defer func() { tracing.End(span, err) }()

	user, err := g.users.FindByEmail(ctx, strings.ToLower(email))
	if errors.Is(err, util.ErrUserNotFound) {
		logger.Log.Info("Password reset requested for unknown email", zap.String("email", email))
		return nil
	}
	if err != nil {
		return unavailable(err)
	}

	token, tokenHash, err := GenerateToken()
	if err != nil {
		return err
	}
	if err := g.tokens.SaveResetToken(ctx, tokenHash, user.Email, PasswordResetTokenExpiry); err != nil {
		return unavailable(err)
	}

	html, text := renderPasswordResetEmail(g.resetURL + "?token=" + token)
	if err := g.mailer.Send(ctx, &Email{
		To:      user.Email,
		Subject: "Reset your SkillUp password",
		HTML:    html,
		Text:    text,
	}); err != nil {
		return unavailable(err)
	}
	return nil
}

// ConfirmPasswordReset 使用邮件中的 token 设置新密码
func (g *Local) ConfirmPasswordReset(ctx context.Context, token, newPassword string) (err error) {
	ctx, span := tracing.Start(ctx, "local.confirmPasswordReset")
	defer func() { tracing.End(span, err) }()

	if len(newPassword) < util.MinPasswordLength {
		return knownError("WEAK_PASSWORD")
	}

	email, err := g.tokens.ConsumeResetToken(ctx, HashToken(token))
	if errors.Is(err, util.ErrResetTokenInvalid) {
		return knownError("INVALID_OOB_CODE")
	}
	if err != nil {
		return unavailable(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := g.users.UpdatePassword(ctx, email, string(hash)); err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			return knownError("EMAIL_NOT_FOUND")
		}
		return unavailable(err)
	}
	return nil
}

func (g *Local) identity(user *model.User) *Identity {
	return &Identity{
		UID:         user.UID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Provider:    g.Name(),
	}
}

func unavailable(err error) *AuthError {
	return &AuthError{Kind: KindUnavailable, Message: MsgNetworkError, Err: err}
}
