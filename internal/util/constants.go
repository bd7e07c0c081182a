package util

const (
	CatalogSourceBuiltin = "builtin"
	CatalogSourceLocal   = "local"
	CatalogSourceMinio   = "minio"
	CatalogSourceOSS     = "oss"
)

const (
	AuthProviderIdentityToolkit = "identitytoolkit"
	AuthProviderLocal           = "local"
)

// 返回给客户端的提示语
const (
	MsgFillAllFields    = "Please fill all fields"
	MsgPasswordMismatch = "Passwords do not match"
	MsgPasswordTooShort = "Password should be at least 6 characters"
	MsgEnterEmailFirst  = "Enter your email first"
	MsgLoginSuccessful  = "Login Successful"
	MsgAccountCreated   = "Account Created"
	MsgResetLinkSent    = "Password reset link sent"
	MsgSignedOut        = "Signed out"
	MsgAddedToPlan      = "Added to plan"
	MsgAlreadyInPlan    = "Already in plan"
	MsgRemovedFromPlan  = "Removed from plan"
	MsgNotInPlan        = "Not in plan"
	MsgNoResultsHint    = "Try a different keyword or category."
	MsgFilteredPrefix   = "Filtered: "
)

// MinPasswordLength 注册时密码最小长度
const MinPasswordLength = 6
