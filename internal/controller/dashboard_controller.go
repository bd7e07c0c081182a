package controller

import (
	"errors"
	"skillup_backend/internal/model"
	"skillup_backend/internal/service"
	"skillup_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
}

func NewDashboardController(dashboardService *service.DashboardService) *DashboardController {
	return &DashboardController{DashboardService: dashboardService}
}

// FilterRequest 首页筛选条件
// swagger:model FilterRequest
type FilterRequest struct {
	SearchText string `json:"searchText"`
	Category   string `json:"category"`
}

// GetDashboard godoc
// @Summary 首页
// @Description 问候语、统计卡片、分类、按当前筛选条件过滤后的课程列表、搜索联想与学习计划
// @Tags 首页
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.Dashboard}
// @Failure 401 {object} util.Response
// @Router /api/dashboard [get]
func (c *DashboardController) GetDashboard(ctx *gin.Context) {
	session := util.GetSessionFromContext(ctx)
	if session == nil {
		util.Unauthorized(ctx)
		return
	}

	d, err := c.DashboardService.Dashboard(ctx.Request.Context(), session)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, d)
}

// UpdateFilter godoc
// @Summary 更新搜索词与分类
// @Description 分类变化时 message 为 "Filtered: <分类>"
// @Tags 首页
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body FilterRequest true "筛选条件"
// @Success 200 {object} util.Response{data=service.Dashboard}
// @Failure 400 {object} util.Response "未知分类"
// @Router /api/dashboard/filter [put]
func (c *DashboardController) UpdateFilter(ctx *gin.Context) {
	session := util.GetSessionFromContext(ctx)
	if session == nil {
		util.Unauthorized(ctx)
		return
	}

	var req FilterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	d, msg, err := c.DashboardService.UpdateFilter(ctx.Request.Context(), session, model.FilterState{
		SearchText: req.SearchText,
		Category:   req.Category,
	})
	if err != nil {
		if errors.Is(err, util.ErrUnknownCategory) {
			util.BadRequest(ctx, "Unknown category: "+req.Category)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	if msg == "" {
		util.Success(ctx, d)
		return
	}
	util.SuccessMessage(ctx, msg, d)
}
