package controller

import (
	"errors"
	"skillup_backend/internal/model"
	"skillup_backend/internal/service"
	"skillup_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LeaderboardController struct {
	LeaderboardService *service.LeaderboardService
}

func NewLeaderboardController(leaderboardService *service.LeaderboardService) *LeaderboardController {
	return &LeaderboardController{LeaderboardService: leaderboardService}
}

// GetLeaderboard godoc
// @Summary 排行榜
// @Description 前三名、完整榜单与当前用户排名
// @Tags 排行榜
// @Produce json
// @Security BearerAuth
// @Param period query string false "weekly | monthly | all-time，默认 weekly"
// @Success 200 {object} util.Response{data=service.Leaderboard}
// @Failure 400 {object} util.Response "未知周期"
// @Router /api/leaderboard [get]
func (c *LeaderboardController) GetLeaderboard(ctx *gin.Context) {
	session := util.GetSessionFromContext(ctx)
	if session == nil {
		util.Unauthorized(ctx)
		return
	}

	period := model.LeaderboardPeriod(ctx.Query("period"))
	lb, err := c.LeaderboardService.Leaderboard(ctx.Request.Context(), session, period)
	if err != nil {
		if errors.Is(err, util.ErrUnknownPeriod) {
			util.BadRequest(ctx, "Unknown period: "+string(period))
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, lb)
}
