// Package authgateway 对接托管认证服务。每次调用只发一次请求，成功或失败都是终态，不做重试。
package authgateway

import (
	"context"
	"errors"
)

// Identity 认证成功后得到的用户身份
type Identity struct {
	UID         string
	Email       string
	DisplayName string
	Provider    string
}

// Gateway 认证服务的最小接口
type Gateway interface {
	SignIn(ctx context.Context, email, password string) (*Identity, error)
	SignUp(ctx context.Context, email, password string) (*Identity, error)
	SendPasswordReset(ctx context.Context, email string) error
	Name() string
}

// PasswordResetConfirmer 由自行签发重置链接的实现提供
type PasswordResetConfirmer interface {
	ConfirmPasswordReset(ctx context.Context, token, newPassword string) error
}

// Kind 错误分类
type Kind string

const (
	// KindValidation 本地校验失败，未发起远程调用
	KindValidation Kind = "validation"
	// KindRejected 远端拒绝（密码错误、用户不存在等）
	KindRejected Kind = "rejected"
	// KindConflict 注册时邮箱已存在
	KindConflict Kind = "conflict"
	// KindUnavailable 网络错误或远端不可用
	KindUnavailable Kind = "unavailable"
)

// AuthError 的 Message 原样展示给用户
type AuthError struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	return e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// Remote 是否来自远程调用
func (e *AuthError) Remote() bool {
	return e.Kind != KindValidation
}

func ValidationError(message string) *AuthError {
	return &AuthError{Kind: KindValidation, Message: message}
}

// AsAuthError 取出错误链中的 AuthError，非 AuthError 统一视为不可用
func AsAuthError(err error) *AuthError {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae
	}
	return &AuthError{Kind: KindUnavailable, Message: MsgNetworkError, Err: err}
}
