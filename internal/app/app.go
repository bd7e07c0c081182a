package app

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"skillup_backend/internal/authgateway"
	"skillup_backend/internal/catalog"
	"skillup_backend/internal/config"
	"skillup_backend/internal/controller"
	"skillup_backend/internal/repository"
	"skillup_backend/internal/service"
	"skillup_backend/internal/util"
	"skillup_backend/pkg/database"
	"skillup_backend/pkg/logger"
	"skillup_backend/pkg/monitoring"
	"skillup_backend/pkg/security"
	"skillup_backend/pkg/tracing"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client

	services *services
	tracer   *sdktrace.TracerProvider
	// 后台任务（目录热加载）随 App 一起退出
	cancel context.CancelFunc
}

type repositories struct {
	user        *repository.UserRepository
	catalog     *repository.CatalogRepository
	session     *repository.SessionRepository
	plan        *repository.PlanRepository
	filter      *repository.FilterRepository
	resetToken  *repository.ResetTokenRepository
	attempts    *repository.LoginAttemptRepository
	leaderboard *repository.LeaderboardCache
}

type services struct {
	auth        *service.AuthService
	catalog     *service.CatalogService
	dashboard   *service.DashboardService
	plan        *service.PlanService
	leaderboard *service.LeaderboardService
	profile     *service.ProfileService
}

type controllers struct {
	auth        *controller.AuthController
	splash      *controller.SplashController
	dashboard   *controller.DashboardController
	course      *controller.CourseController
	plan        *controller.PlanController
	leaderboard *controller.LeaderboardController
	profile     *controller.ProfileController
	health      *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		catalog:     repository.NewCatalogRepository(db),
		session:     repository.NewSessionRepository(rdb),
		plan:        repository.NewPlanRepository(rdb),
		filter:      repository.NewFilterRepository(rdb),
		resetToken:  repository.NewResetTokenRepository(rdb),
		attempts:    repository.NewLoginAttemptRepository(rdb),
		leaderboard: repository.NewLeaderboardCache(rdb, cfg.Cache.LeaderboardTTL),
	}
}

// initGateway 按 auth.provider 选择认证实现
func initGateway(repos *repositories, cfg *config.Config) authgateway.Gateway {
	if cfg.Auth.Provider == util.AuthProviderLocal {
		mailer := authgateway.NewEmailProvider(cfg.Email)
		local := authgateway.NewLocal(repos.user, repos.resetToken, mailer, cfg.Auth.ResetURL)
		local.Attempts = repos.attempts
		return local
	}
	return authgateway.NewIdentityToolkit(cfg.Auth)
}

func (a *App) initServices(repos *repositories, cfg *config.Config) (*services, error) {
	source, err := service.NewCatalogSource(cfg)
	if err != nil {
		return nil, err
	}

	cache := catalog.NewFilterCache(cfg.Catalog.FilterCacheSize)
	cache.OnLookup = monitoring.ObserveFilterCache

	s := &services{}
	s.catalog = service.NewCatalogService(source, catalog.NewStore(), repos.catalog, repos.leaderboard)
	s.auth = service.NewAuthService(initGateway(repos, cfg), repos.session, cfg)
	s.dashboard = service.NewDashboardService(s.catalog, cache, repos.plan, repos.filter)
	s.plan = service.NewPlanService(s.catalog, repos.plan)
	s.leaderboard = service.NewLeaderboardService(s.catalog, repos.leaderboard)
	s.profile = service.NewProfileService(s.catalog)
	return s, nil
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth),
		splash:      controller.NewSplashController(s.auth),
		dashboard:   controller.NewDashboardController(s.dashboard),
		course:      controller.NewCourseController(s.dashboard),
		plan:        controller.NewPlanController(s.plan),
		leaderboard: controller.NewLeaderboardController(s.leaderboard),
		profile:     controller.NewProfileController(s.profile),
		health: controller.NewHealthController(map[string]controller.HealthCheck{
			"database": func(ctx context.Context) error {
				sqlDB, err := a.DB.DB()
				if err != nil {
					return err
				}
				return sqlDB.PingContext(ctx)
			},
			"redis": func(ctx context.Context) error {
				return a.Redis.Ping(ctx).Err()
			},
		}),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// startBackgroundTasks 目录来源为本地文件且开启 watch 时监听文件变化
func (a *App) startBackgroundTasks(ctx context.Context, s *services) {
	if !a.Config.Catalog.Watch {
		return
	}
	if _, ok := s.catalog.Source.(*service.LocalFileSource); !ok {
		logger.Log.Warn("catalog.watch only applies to the local source", zap.String("source", s.catalog.Source.Name()))
		return
	}

	go func() {
		if err := s.catalog.Watch(ctx); err != nil {
			logger.Log.Error("Catalog watcher stopped", zap.Error(err))
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")
	gin.SetMode(cfg.Server.Mode)

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	// 监控初始化
	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("skillup-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	repos := app.initRepositories(db, rdb, cfg)
	services, err := app.initServices(repos, cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
	}
	app.services = services

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 30*time.Second)
	_, err = services.catalog.Load(loadCtx)
	cancelLoad()
	if err != nil {
		logger.Log.Fatal("Failed to load catalog", zap.Error(err))
	}

	controllers := app.initControllers(services)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, services, cfg)

	bgCtx, cancel := context.WithCancel(context.Background())
	app.cancel = cancel
	app.startBackgroundTasks(bgCtx, services)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		logger.Log.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	a.cancel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if err := a.Redis.Close(); err != nil {
		logger.Log.Warn("Failed to close redis", zap.Error(err))
	}

	log.Println("Server exiting")
}
