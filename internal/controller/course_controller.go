package controller

import (
	"errors"
	"skillup_backend/internal/service"
	"skillup_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	DashboardService *service.DashboardService
}

func NewCourseController(dashboardService *service.DashboardService) *CourseController {
	return &CourseController{DashboardService: dashboardService}
}

// Search godoc
// @Summary 搜索课程
// @Description 按关键字（标题或分类，忽略大小写）与分类筛选，不改变会话中的筛选状态
// @Tags 课程
// @Produce json
// @Security BearerAuth
// @Param q query string false "关键字"
// @Param category query string false "分类，默认 All"
// @Success 200 {object} util.Response{data=service.SearchResult}
// @Failure 400 {object} util.Response "未知分类"
// @Router /api/courses [get]
func (c *CourseController) Search(ctx *gin.Context) {
	category := ctx.Query("category")
	res, err := c.DashboardService.Search(ctx.Query("q"), category)
	if err != nil {
		if errors.Is(err, util.ErrUnknownCategory) {
			util.BadRequest(ctx, "Unknown category: "+category)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, res)
}

// Suggestions godoc
// @Summary 搜索联想
// @Description 忽略分类，按标题去重，最多 5 条
// @Tags 课程
// @Produce json
// @Security BearerAuth
// @Param q query string false "关键字"
// @Success 200 {object} util.Response{data=[]model.Course}
// @Router /api/courses/suggestions [get]
func (c *CourseController) Suggestions(ctx *gin.Context) {
	util.Success(ctx, c.DashboardService.Suggestions(ctx.Query("q")))
}

// Detail godoc
// @Summary 课程详情
// @Tags 课程
// @Produce json
// @Security BearerAuth
// @Param title path string true "课程标题"
// @Success 200 {object} util.Response{data=service.CourseDetail}
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{title} [get]
func (c *CourseController) Detail(ctx *gin.Context) {
	detail, err := c.DashboardService.CourseDetail(ctx.Request.Context(), util.GetSessionFromContext(ctx), ctx.Param("title"))
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx, "Course not found")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}
