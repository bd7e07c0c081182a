package controller

import (
	"skillup_backend/internal/service"
	"skillup_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProfileController struct {
	ProfileService *service.ProfileService
}

func NewProfileController(profileService *service.ProfileService) *ProfileController {
	return &ProfileController{ProfileService: profileService}
}

// GetProfile godoc
// @Summary 个人资料
// @Tags 个人中心
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.Profile}
// @Router /api/profile [get]
func (c *ProfileController) GetProfile(ctx *gin.Context) {
	session := util.GetSessionFromContext(ctx)
	if session == nil {
		util.Unauthorized(ctx)
		return
	}
	util.Success(ctx, c.ProfileService.Profile(session))
}
