package app

import (
	"context"
	"eamcetpro_backend/internal/config"
	"eamcetpro_backend/internal/controller"
	"eamcetpro_backend/internal/repository"
	"eamcetpro_backend/internal/service"
	"eamcetpro_backend/pkg/database"
	"eamcetpro_backend/pkg/logger"
	"eamcetpro_backend/pkg/monitoring"
	"eamcetpro_backend/pkg/security"
	"eamcetpro_backend/pkg/tracing"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user      *repository.UserRepository
	test      *repository.TestRepository
	result    *repository.ResultRepository
	analytics *repository.AnalyticsRepository
	affiliate *repository.AffiliateRepository
	payment   *repository.PaymentRepository
}

type services struct {
	storage   *service.StorageService
	otp       *service.OTPService
	auth      *service.AuthService
	test      *service.TestService
	catalog   *service.CatalogService
	analytics *service.AnalyticsService
	exam      *service.ExamService
	session   *service.SessionService
	payment   *service.PaymentService
	affiliate *service.AffiliateService
}

type controllers struct {
	auth      *controller.AuthController
	test      *controller.TestController
	session   *controller.SessionController
	analytics *controller.AnalyticsController
	payment   *controller.PaymentController
	affiliate *controller.AffiliateController
	health    *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig swaps the active config and notifies registered listeners.
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Config = cfg
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:      repository.NewUserRepository(db),
		test:      repository.NewTestRepository(db),
		result:    repository.NewResultRepository(db),
		analytics: repository.NewAnalyticsRepository(db),
		affiliate: repository.NewAffiliateRepository(db),
		payment:   repository.NewPaymentRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.otp = service.NewOTPService(cfg, rdb)
	s.auth = service.NewAuthService(repos.user, s.otp, cfg)
	s.test = service.NewTestService(repos.test)
	s.catalog = service.NewCatalogService(repos.test, rdb, cfg)
	s.analytics = service.NewAnalyticsService(repos.analytics, cfg)
	s.exam = service.NewExamService(s.catalog, repos.result, s.analytics, db)
	s.session = service.NewSessionService(s.catalog, s.exam)
	s.payment = service.NewPaymentService(repos.payment, repos.user, cfg)
	s.affiliate = service.NewAffiliateService(repos.affiliate, cfg)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth, a.Config),
		test:      controller.NewTestController(s.test, s.catalog, s.exam, s.storage),
		session:   controller.NewSessionController(s.session),
		analytics: controller.NewAnalyticsController(s.analytics, s.exam),
		payment:   controller.NewPaymentController(s.payment),
		affiliate: controller.NewAffiliateController(s.affiliate),
		health:    controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg.Server.Mode)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
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

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	gin.SetMode(ginMode(cfg.Server.Mode))
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("eamcetpro", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func ginMode(mode string) string {
	if mode == "release" {
		return gin.ReleaseMode
	}
	return gin.DebugMode
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Stop the per-attempt countdown goroutines before the listener dies so no
	// forced submit fires into a closing server.
	if a.services != nil && a.services.session != nil {
		a.services.session.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
