package util

import "errors"

var (
	ErrCourseNotFound    = errors.New("course not found")
	ErrUnknownCategory   = errors.New("unknown category")
	ErrUnknownPeriod     = errors.New("unknown leaderboard period")
	ErrInvalidCatalog    = errors.New("invalid catalog")
	ErrSessionNotFound   = errors.New("session not found")
	ErrConcurrentUpdate  = errors.New("concurrent update, please retry")
	ErrUserNotFound      = errors.New("user not found")
	ErrUserExists        = errors.New("user already exists")
	ErrResetTokenInvalid = errors.New("password reset token is invalid or expired")
	ErrNotSupported      = errors.New("operation not supported by the configured provider")
)
