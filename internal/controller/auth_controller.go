package controller

import (
	"errors"
	"net/http"
	"skillup_backend/internal/authgateway"
	"skillup_backend/internal/service"
	"skillup_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// 字段不加 binding 校验，空值交给服务层返回统一提示语

// SignInRequest 登录请求
// swagger:model SignInRequest
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUpRequest 注册请求
// swagger:model SignUpRequest
type SignUpRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type PasswordResetRequest struct {
	Email string `json:"email"`
}

type PasswordResetConfirmRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// respondAuthError 本地校验 400，远端拒绝 401，邮箱已存在 409，网络错误 502
func respondAuthError(ctx *gin.Context, err error) {
	var ae *authgateway.AuthError
	if !errors.As(err, &ae) {
		util.LogInternalError(ctx, err)
		return
	}

	switch ae.Kind {
	case authgateway.KindValidation:
		util.BadRequest(ctx, ae.Message)
	case authgateway.KindConflict:
		util.Error(ctx, http.StatusConflict, ae.Message)
	case authgateway.KindUnavailable:
		util.Error(ctx, http.StatusBadGateway, ae.Message)
	default:
		util.Error(ctx, http.StatusUnauthorized, ae.Message)
	}
}

// SignIn godoc
// @Summary 邮箱密码登录
// @Description 校验输入后调用认证服务，成功返回会话令牌与跳转信息
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body SignInRequest true "登录信息"
// @Success 200 {object} util.Response{data=service.AuthResult} "Login Successful"
// @Failure 400 {object} util.Response "Please fill all fields"
// @Failure 401 {object} util.Response "认证服务拒绝"
// @Failure 502 {object} util.Response "网络错误"
// @Router /api/auth/signin [post]
func (c *AuthController) SignIn(ctx *gin.Context) {
	var req SignInRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	res, err := c.AuthService.SignIn(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondAuthError(ctx, err)
		return
	}
	util.SuccessMessage(ctx, res.Message, res)
}

// SignUp godoc
// @Summary 注册
// @Description 两次密码必须一致且不少于 6 位，成功后跳转到登录页
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body SignUpRequest true "注册信息"
// @Success 200 {object} util.Response{data=service.AuthResult} "Account Created"
// @Failure 400 {object} util.Response "输入不合法"
// @Failure 409 {object} util.Response "邮箱已被注册"
// @Failure 502 {object} util.Response "网络错误"
// @Router /api/auth/signup [post]
func (c *AuthController) SignUp(ctx *gin.Context) {
	var req SignUpRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	res, err := c.AuthService.SignUp(ctx.Request.Context(), req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		respondAuthError(ctx, err)
		return
	}
	util.SuccessMessage(ctx, res.Message, res)
}

// SendPasswordReset godoc
// @Summary 发送重置密码邮件
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body PasswordResetRequest true "邮箱"
// @Success 200 {object} util.Response "Password reset link sent"
// @Failure 400 {object} util.Response "Enter your email first"
// @Router /api/auth/password-reset [post]
func (c *AuthController) SendPasswordReset(ctx *gin.Context) {
	var req PasswordResetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	msg, err := c.AuthService.SendPasswordReset(ctx.Request.Context(), req.Email)
	if err != nil {
		respondAuthError(ctx, err)
		return
	}
	util.SuccessMessage(ctx, msg, nil)
}

// ConfirmPasswordReset godoc
// @Summary 使用邮件中的 token 设置新密码
// @Description 仅本地认证模式可用
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body PasswordResetConfirmRequest true "token 与新密码"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response "当前认证方式不支持"
// @Router /api/auth/password-reset/confirm [post]
func (c *AuthController) ConfirmPasswordReset(ctx *gin.Context) {
	var req PasswordResetConfirmRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	err := c.AuthService.ConfirmPasswordReset(ctx.Request.Context(), req.Token, req.NewPassword)
	if errors.Is(err, util.ErrNotSupported) {
		util.NotFound(ctx, err.Error())
		return
	}
	if err != nil {
		respondAuthError(ctx, err)
		return
	}
	util.SuccessMessage(ctx, "Password updated", nil)
}

// SignOut godoc
// @Summary 退出登录
// @Description 删除会话，学习计划与筛选状态随之清除
// @Tags 认证
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=object}
// @Failure 401 {object} util.Response
// @Router /api/auth/signout [post]
func (c *AuthController) SignOut(ctx *gin.Context) {
	session := util.GetSessionFromContext(ctx)
	if session == nil {
		util.Unauthorized(ctx)
		return
	}

	nav, err := c.AuthService.SignOut(ctx.Request.Context(), session)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.SuccessMessage(ctx, util.MsgSignedOut, gin.H{"navigation": nav})
}
