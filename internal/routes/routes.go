package routes

import (
	"fmt"
	"memories-backend/internal/config"
	"memories-backend/internal/handlers"
	"memories-backend/internal/middleware"
	"memories-backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, cfg *config.Config) *gin.Engine {
	router := gin.New()

	router.Use(middleware.LoggerMiddleware())
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RateLimitMiddleware(60))

	router.Static("/uploads", cfg.File.UploadPath)

	authService := services.NewAuthService(db)
	aiService := services.NewAIService(cfg.AI)
	notebookService := services.NewNotebookService(db)
	memoryService := services.NewMemoryService(db, aiService)
	fileService := services.NewFileService(db, cfg.File.UploadPath, cfg.File.MaxUserStorage)

	authHandler := handlers.NewAuthHandler(authService, cfg)
	notebookHandler := handlers.NewNotebookHandler(notebookService, memoryService)
	memoryHandler := handlers.NewMemoryHandler(memoryService)
	shareHandler := handlers.NewShareHandler(db, cfg)
	aiHandler := handlers.NewAIHandler(aiService, memoryService)
	fileHandler := handlers.NewFileHandler(fileService, authService, cfg)
	adminHandler := handlers.NewAdminHandler(db)

	api := router.Group("/api")

	public := api.Group("")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// 分享页，无需登录
		shared := public.Group("/public")
		{
			shared.GET("/shared/:code", shareHandler.GetSharedNotebook)
			shared.GET("/shared-memory/:code", shareHandler.GetSharedMemory)
		}
	}

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(db, cfg))
	{
		user := protected.Group("/auth")
		{
			user.GET("/me", authHandler.GetMe)
			user.POST("/logout", authHandler.Logout)
		}

		notebooks := protected.Group("/notebooks")
		{
			notebooks.GET("", notebookHandler.GetNotebooks)
			notebooks.POST("", notebookHandler.CreateNotebook)

			notebooks.GET("/:id/memories", memoryHandler.GetMemories)
			notebooks.POST("/:id/memories", memoryHandler.CreateMemory)
			notebooks.GET("/:id/timeline", notebookHandler.GetNotebookTimeline)

			notebooks.POST("/:id/share", shareHandler.CreateNotebookShare)
			notebooks.DELETE("/:id/share", shareHandler.DeleteNotebookShare)

			notebooks.GET("/:id", notebookHandler.GetNotebook)
			notebooks.PUT("/:id", notebookHandler.UpdateNotebook)
			notebooks.DELETE("/:id", notebookHandler.DeleteNotebook)
		}

		memories := protected.Group("/memories")
		{
			memories.GET("/:id", memoryHandler.GetMemory)
			memories.PUT("/:id", memoryHandler.UpdateMemory)
			memories.DELETE("/:id", memoryHandler.DeleteMemory)

			memories.POST("/:id/share", shareHandler.CreateMemoryShare)
			memories.POST("/:id/photo", fileHandler.UploadPhoto)
			memories.DELETE("/:id/photo", fileHandler.RemovePhoto)
		}

		protected.GET("/stats", memoryHandler.GetUserStats)
		protected.GET("/timeline", memoryHandler.GetUserTimeline)
		protected.POST("/reflection", aiHandler.GenerateReflection)
		protected.POST("/beautify", aiHandler.BeautifyContent)
		protected.POST("/transcribe", aiHandler.TranscribeAudio)

		user_storage := protected.Group("/user")
		{
			user_storage.GET("/storage", fileHandler.GetUserStorage)
		}
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(db, cfg))
	admin.Use(middleware.AdminMiddleware())
	{
		admin.GET("/stats", adminHandler.GetSystemStats)
	}

	// 浏览器直接打开分享短链时重定向到前端页面
	router.GET("/shared/:code", func(c *gin.Context) {
		shareCode := c.Param("code")
		frontendURL := fmt.Sprintf("%s/shared/%s", cfg.Frontend.BaseURL, shareCode)
		c.Redirect(302, frontendURL)
	})

	router.GET("/shared-memory/:code", func(c *gin.Context) {
		shareCode := c.Param("code")
		frontendURL := fmt.Sprintf("%s/shared-memory/%s", cfg.Frontend.BaseURL, shareCode)
		c.Redirect(302, frontendURL)
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "服务运行正常",
		})
	})

	return router
}
