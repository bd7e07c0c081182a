package controller

import (
	"skillup_backend/internal/middleware"
	"skillup_backend/internal/model"
	"skillup_backend/internal/service"
	"skillup_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SplashController struct {
	AuthService *service.AuthService
}

func NewSplashController(authService *service.AuthService) *SplashController {
	return &SplashController{AuthService: authService}
}

// Splash godoc
// @Summary 启动页
// @Description 携带有效令牌时跳转首页，否则跳转登录页
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response{data=object}
// @Router /api/splash [get]
func (c *SplashController) Splash(ctx *gin.Context) {
	nav := c.AuthService.SplashTarget(ctx.Request.Context(), middleware.BearerToken(ctx))
	util.Success(ctx, gin.H{
		"durationMillis": model.SplashDurationMillis,
		"navigation":     nav,
	})
}
