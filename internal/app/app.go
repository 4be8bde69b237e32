package app

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"practice_backend/internal/config"
	"practice_backend/internal/controller"
	"practice_backend/internal/llm"
	"practice_backend/internal/middleware"
	"practice_backend/internal/repository"
	"practice_backend/internal/service"
	"practice_backend/pkg/database"
	"practice_backend/pkg/logger"
	"practice_backend/pkg/monitoring"
	"practice_backend/pkg/security"
	"practice_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config    *config.Config
	Router    *gin.Engine
	DB        *gorm.DB
	Redis     *redis.Client
	LLM       llm.Completer
	ipLimiter *security.IPLimiter
	tracer    *sdktrace.TracerProvider
}

type repositories struct {
	dimension *repository.KnowledgeDimensionRepository
	question  *repository.QuestionRepository
	answer    *repository.AnswerRecordRepository
}

type services struct {
	practice  *service.PracticeService
	dimension *service.KnowledgeDimensionService
}

type controllers struct {
	practice *controller.PracticeController
	health   *controller.HealthController
}

func initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		dimension: repository.NewKnowledgeDimensionRepository(db),
		question:  repository.NewQuestionRepository(db),
		answer:    repository.NewAnswerRecordRepository(db),
	}
}

func initServices(repos *repositories, completer llm.Completer, rng service.RandSource) *services {
	return &services{
		practice: service.NewPracticeService(
			service.NewDimensionSelector(repos.dimension, rng),
			service.NewQuestionGenerator(completer, repos.question, rng),
			service.NewAnswerGrader(completer, repos.question, repos.answer),
		),
		dimension: service.NewKnowledgeDimensionService(repos.dimension),
	}
}

func initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		practice: controller.NewPracticeController(s.practice, s.dimension),
		health:   controller.NewHealthController(db, rdb),
	}
}

// newCompleter mock 模式或网关配置错误时返回 Offline，所有请求走兜底
func newCompleter(cfg *config.LLMConfig) llm.Completer {
	if cfg.Mock {
		logger.Log.Warn("USE_MOCK 已开启，模型调用全部走兜底逻辑")
		return llm.Offline{Reason: "mock mode"}
	}

	gw, err := llm.NewGateway(llm.Config{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		Timeout: cfg.Timeout(),
	}, llm.NewHTTPClient(cfg.Timeout()))
	if err != nil {
		logger.Log.Error("Failed to initialize LLM gateway, falling back to offline mode", zap.Error(err))
		return llm.Offline{Reason: err.Error()}
	}

	logger.Log.Info("LLM gateway initialized",
		zap.String("base_url", cfg.BaseURL),
		zap.String("model", gw.ModelID()),
		zap.Duration("timeout", cfg.Timeout()),
	)
	return gw
}

// build 在已初始化的依赖上组装路由，测试直接调用
func build(cfg *config.Config, db *gorm.DB, rdb *redis.Client, completer llm.Completer, rng service.RandSource) *App {
	a := &App{
		Config:    cfg,
		DB:        db,
		Redis:     rdb,
		LLM:       completer,
		ipLimiter: security.NewIPLimiter(cfg.RateLimit.GlobalPerMinute, time.Minute),
	}

	repos := initRepositories(db)
	svcs := initServices(repos, completer, rng)
	ctrls := initControllers(svcs, db, rdb)

	monitoring.Init()

	router := gin.New()
	router.Use(gin.Recovery())
	a.setupMiddlewares(router, cfg)
	a.registerRoutes(router, ctrls, cfg)
	a.Router = router

	return a
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(middleware.RequestID())
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(a.ipLimiter.Middleware())

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	switch cfg.Server.Mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		gin.SetMode(cfg.Server.Mode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// 限流在 Redis 不可用时放行，服务仍可启动
		logger.Log.Error("Failed to initialize redis, rate limiting disabled", zap.Error(err))
	}

	var tp *sdktrace.TracerProvider
	if cfg.Tracing.Enabled {
		tp, err = tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	a := build(cfg, db, rdb, newCompleter(&cfg.LLM), service.NewDefaultRand())
	a.tracer = tp
	return a
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go a.ipLimiter.Cleanup(ctx)

	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("listen", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	a.Close(shutdownCtx)
	logger.Log.Info("Server exiting")
	_ = logger.Log.Sync()
}

// Close 释放数据库、Redis 与 tracer
func (a *App) Close(ctx context.Context) {
	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
