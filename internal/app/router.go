package app

import (
	"skillup_backend/docs"
	"skillup_backend/internal/config"
	"skillup_backend/internal/middleware"
	"skillup_backend/pkg/monitoring"
	"skillup_backend/pkg/security"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, s *services, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c, cfg)

	// 2. 需要会话的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(s.auth))
	{
		a.registerSessionRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		// 启动页带可选令牌，有有效会话时跳转首页
		public.GET("/splash", c.splash.Splash)

		// 认证接口单独限流
		authLimiter := security.RateLimiter(cfg.RateLimit.AuthMaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute)
		auth := public.Group("/auth", authLimiter)
		{
			auth.POST("/signin", c.auth.SignIn)
			auth.POST("/signup", c.auth.SignUp)
			auth.POST("/password-reset", c.auth.SendPasswordReset)
			auth.POST("/password-reset/confirm", c.auth.ConfirmPasswordReset)
		}
	}
}

func (a *App) registerSessionRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.POST("/auth/signout", c.auth.SignOut)
	rg.GET("/profile", c.profile.GetProfile)

	// 首页
	rg.GET("/dashboard", c.dashboard.GetDashboard)
	rg.PUT("/dashboard/filter", c.dashboard.UpdateFilter)

	// 课程
	rg.GET("/courses", c.course.Search)
	rg.GET("/courses/suggestions", c.course.Suggestions)
	rg.GET("/courses/:title", c.course.Detail)

	// 学习计划
	rg.GET("/plan", c.plan.List)
	rg.POST("/plan", c.plan.Add)
	rg.DELETE("/plan/:title", c.plan.Remove)

	// 排行榜
	rg.GET("/leaderboard", c.leaderboard.GetLeaderboard)
}
