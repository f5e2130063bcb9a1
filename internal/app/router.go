package app

import (
	"interview_prep_backend/docs"
	"interview_prep_backend/internal/config"
	"interview_prep_backend/internal/middleware"
	"interview_prep_backend/internal/model"
	"interview_prep_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	// Swagger 文档
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	// Prometheus 指标
	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	{
		// 公开接口
		api.GET("/health", c.health.HealthCheck)
		api.POST("/register", c.auth.Register)
		api.POST("/login", c.auth.Login)

		// 需要登录的接口
		auth := api.Group("")
		auth.Use(middleware.AuthMiddleware(cfg))
		auth.Use(middleware.ActivityMiddleware(repos.user))
		{
			auth.GET("/profile", c.auth.GetProfile)
			auth.PUT("/profile", c.user.UpdateProfile)
			auth.POST("/profile/avatar", c.user.UploadAvatar)

			auth.GET("/questions", c.question.ListQuestions)
			auth.GET("/questions/:id", c.question.GetQuestion)

			auth.GET("/sections", c.section.ListSections)
			auth.GET("/sections/:id", c.section.GetSection)

			auth.GET("/plans", c.plan.ListPlans)
			auth.GET("/plans/:id", c.plan.GetPlan)

			auth.GET("/progress/overview", c.progress.GetOverview)
			auth.GET("/plans/:id/progress", c.progress.GetPlanProgress)
			auth.POST("/plans/:id/progress/answers", c.progress.RecordAnswers)
			auth.POST("/plans/:id/progress/complete", c.progress.MarkNodeComplete)
			auth.PUT("/plans/:id/progress/position", c.progress.UpdatePosition)
			auth.DELETE("/plans/:id/progress", c.progress.ResetProgress)
		}
	}

	a.registerAdminRoutes(router, c, repos, cfg)
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg))
	admin.Use(middleware.ActivityMiddleware(repos.user))

	adminOnly := admin.Group("")
	adminOnly.Use(middleware.RoleMiddleware(model.Admin))
	{
		adminOnly.POST("/questions", c.question.CreateQuestion)
		adminOnly.PUT("/questions/:id", c.question.UpdateQuestion)
		adminOnly.PATCH("/questions/:id/active", c.question.SetQuestionActive)
		adminOnly.DELETE("/questions/:id", c.question.DeleteQuestion)
		adminOnly.POST("/questions/import", c.question.ImportQuestions)
		adminOnly.POST("/questions/attachments", c.question.UploadAttachment)

		adminOnly.POST("/sections", c.section.CreateSection)
		adminOnly.PUT("/sections/:id", c.section.UpdateSection)
		adminOnly.PATCH("/sections/:id/active", c.section.SetSectionActive)
		adminOnly.POST("/sections/:id/relink", c.section.RelinkSection)
		adminOnly.DELETE("/sections/:id", c.section.DeleteSection)

		adminOnly.GET("/plan-templates", c.plan.ListTemplates)
		adminOnly.GET("/plan-templates/:id", c.plan.GetTemplate)
		adminOnly.POST("/plan-templates", c.plan.CreateTemplate)
		adminOnly.PUT("/plan-templates/:id", c.plan.UpdateTemplate)
		adminOnly.DELETE("/plan-templates/:id", c.plan.DeleteTemplate)
		adminOnly.POST("/plan-templates/:id/generate", c.plan.GeneratePlan)
		adminOnly.DELETE("/plans/:id", c.plan.DeletePlan)
	}
}
