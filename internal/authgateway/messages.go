package authgateway

import "strings"

// MsgNetworkError 网络失败时展示的提示语
const MsgNetworkError = "A network error (such as timeout, interrupted connection or unreachable host) has occurred."

type remoteError struct {
	kind    Kind
	message string
}

// 托管服务返回的错误码与客户端 SDK 展示的文案保持一致
var remoteErrors = map[string]remoteError{
	"EMAIL_NOT_FOUND":             {KindRejected, "There is no user record corresponding to this identifier. The user may have been deleted."},
	"INVALID_PASSWORD":            {KindRejected, "The password is invalid or the user does not have a password."},
	"INVALID_LOGIN_CREDENTIALS":   {KindRejected, "The supplied auth credential is incorrect, malformed or has expired."},
	"USER_DISABLED":               {KindRejected, "The user account has been disabled by an administrator."},
	"INVALID_EMAIL":               {KindRejected, "The email address is badly formatted."},
	"MISSING_PASSWORD":            {KindRejected, "The given password is invalid."},
	"WEAK_PASSWORD":               {KindRejected, "The given password is invalid. [ Password should be at least 6 characters ]"},
	"EMAIL_EXISTS":                {KindConflict, "The email address is already in use by another account."},
	"TOO_MANY_ATTEMPTS_TRY_LATER": {KindRejected, "We have blocked all requests from this device due to unusual activity. Try again later."},
	"INVALID_OOB_CODE":            {KindRejected, "The action code is invalid. This can happen if the code is malformed, expired, or has already been used."},
	"OPERATION_NOT_ALLOWED":       {KindRejected, "This operation is not allowed. You must enable this service in the console."},
}

// remoteAuthError 把服务端错误消息（如 "WEAK_PASSWORD : Password should be at least 6 characters"）转换为 AuthError
func remoteAuthError(raw string) *AuthError {
	code := strings.TrimSpace(raw)
	if i := strings.Index(code, " : "); i >= 0 {
		code = strings.TrimSpace(code[:i])
	}

	if known, ok := remoteErrors[code]; ok {
		return &AuthError{Kind: known.kind, Code: code, Message: known.message}
	}
	if raw == "" {
		raw = "An internal error has occurred."
	}
	return &AuthError{Kind: KindRejected, Code: code, Message: raw}
}

func knownError(code string) *AuthError {
	known := remoteErrors[code]
	return &AuthError{Kind: known.kind, Code: code, Message: known.message}
}
