package controller

import (
	"errors"
	"net/http"
	"skillup_backend/internal/service"
	"skillup_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PlanController struct {
	PlanService *service.PlanService
}

func NewPlanController(planService *service.PlanService) *PlanController {
	return &PlanController{PlanService: planService}
}

// AddToPlanRequest 加入学习计划
// swagger:model AddToPlanRequest
type AddToPlanRequest struct {
	Title string `json:"title" binding:"required"`
}

func (c *PlanController) respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrCourseNotFound):
		util.NotFound(ctx, "Course not found")
	case errors.Is(err, util.ErrConcurrentUpdate):
		util.Error(ctx, http.StatusConflict, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// List godoc
// @Summary 我的学习计划
// @Tags 学习计划
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Course}
// @Router /api/plan [get]
func (c *PlanController) List(ctx *gin.Context) {
	session := util.GetSessionFromContext(ctx)
	if session == nil {
		util.Unauthorized(ctx)
		return
	}

	items, err := c.PlanService.List(ctx.Request.Context(), session)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, items)
}

// Add godoc
// @Summary 加入学习计划
// @Description 已在计划中时列表不变，message 为 "Already in plan"
// @Tags 学习计划
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body AddToPlanRequest true "课程标题"
// @Success 200 {object} util.Response{data=service.PlanResult}
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/plan [post]
func (c *PlanController) Add(ctx *gin.Context) {
	session := util.GetSessionFromContext(ctx)
	if session == nil {
		util.Unauthorized(ctx)
		return
	}

	var req AddToPlanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	res, err := c.PlanService.Add(ctx.Request.Context(), session, req.Title)
	if err != nil {
		c.respondError(ctx, err)
		return
	}
	util.SuccessMessage(ctx, res.Message, res)
}

// Remove godoc
// @Summary 移出学习计划
// @Tags 学习计划
// @Produce json
// @Security BearerAuth
// @Param title path string true "课程标题"
// @Success 200 {object} util.Response{data=service.PlanResult}
// @Router /api/plan/{title} [delete]
func (c *PlanController) Remove(ctx *gin.Context) {
	session := util.GetSessionFromContext(ctx)
	if session == nil {
		util.Unauthorized(ctx)
		return
	}

	res, err := c.PlanService.Remove(ctx.Request.Context(), session, ctx.Param("title"))
	if err != nil {
		c.respondError(ctx, err)
		return
	}
	util.SuccessMessage(ctx, res.Message, res)
}
