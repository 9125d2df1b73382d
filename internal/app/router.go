package app

import (
	"eamcetpro_backend/internal/config"
	"eamcetpro_backend/internal/middleware"
	"eamcetpro_backend/internal/model"
	"eamcetpro_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c, repos, cfg)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerStudentRoutes(authGroup, c)
	}

	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/otp", c.auth.RequestOTP)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.POST("/logout", c.auth.Logout)
		public.POST("/auth/reset-password", c.auth.ResetPassword)
		public.GET("/auth/session", middleware.TryAuthMiddleware(cfg), c.auth.CheckSession)

		// Referral landing hits arrive before signup; auth is optional.
		public.GET("/affiliates/visit/:code", middleware.TryAuthMiddleware(cfg), c.affiliate.RecordVisit)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)

	rg.GET("/tests", c.test.ListTests)
	rg.GET("/tests/:id", c.test.GetCatalog)
	rg.POST("/tests/:id/submit", c.test.SubmitTest)

	sessions := rg.Group("/sessions")
	{
		sessions.POST("", c.session.Start)
		sessions.GET("/:id", c.session.Snapshot)
		sessions.POST("/:id/navigate/:number", c.session.Navigate)
		sessions.POST("/:id/next", c.session.Advance)
		sessions.POST("/:id/previous", c.session.Retreat)
		sessions.POST("/:id/answer", c.session.Answer)
		sessions.POST("/:id/clear", c.session.ClearResponse)
		sessions.POST("/:id/mark", c.session.ToggleMark)
		sessions.POST("/:id/submit", c.session.Submit)
	}

	rg.GET("/analytics", c.analytics.GetUserAnalytics)
	rg.GET("/results", c.analytics.ListResults)
	rg.GET("/results/:id", c.analytics.GetResult)

	rg.POST("/payments/orders", c.payment.CreateOrder)
	rg.POST("/payments/verify", c.payment.VerifyPayment)

	rg.POST("/affiliates", c.affiliate.Register)
	rg.GET("/affiliates/dashboard", c.affiliate.Dashboard)
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.POST("/tests", c.test.CreateTest)
		admin.POST("/tests/:id/sections", c.test.AddSection)
		admin.POST("/sections/:id/questions", c.test.AddQuestion)
		admin.POST("/tests/:id/publish", c.test.PublishTest)
		admin.POST("/uploads/figures", c.test.UploadFigure)
	}
}
