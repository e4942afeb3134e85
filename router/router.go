package router

import (
	"time"

	"fintrack/api"
	"fintrack/config"
	_ "fintrack/docs"
	"fintrack/middleware"
	"fintrack/service"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter wires all routes. The publisher may be nil when no queue
// is configured.
func SetupRouter(cfg *config.Config, storage *service.Storage, budgets *service.BudgetStore, publisher api.ContactPublisher) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.Default()

	r.Use(CORSMiddleware())

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"name":    "fintrack",
			"message": "personal finance tracker API",
		})
	})

	// uploaded avatars and receipt images
	r.Static("/uploads", storage.Dir())

	// Swagger docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		authHandler := api.NewAuthHandler(cfg, storage)
		passwordResetHandler := api.NewPasswordResetHandler(cfg)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", middleware.LoginRateLimit(5, time.Minute), authHandler.Login)

			auth.POST("/password/request-reset", passwordResetHandler.RequestPasswordReset)
			auth.POST("/password/reset", passwordResetHandler.ResetPassword)
		}

		transactionHandler := api.NewTransactionHandler(storage)
		// the category set is public
		v1.GET("/categories", transactionHandler.GetCategories)

		// contact form: open to anonymous visitors, but a signed-in
		// user's id is attached when a token is present
		contactHandler := api.NewContactHandler(publisher)
		v1.POST("/contact", middleware.OptionalJWTAuth(), contactHandler.Submit)

		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth())
		{
			authorized.POST("/auth/logout", authHandler.Logout)
			authorized.GET("/auth/profile", authHandler.GetProfile)
			authorized.PUT("/auth/profile", authHandler.UpdateProfile)
			authorized.PUT("/auth/password", authHandler.ChangePassword)

			transactions := authorized.Group("/transactions")
			{
				transactions.POST("", transactionHandler.Create)
				transactions.GET("", transactionHandler.List)
				transactions.GET("/:id", transactionHandler.Get)
			}

			goalHandler := api.NewGoalHandler()
			goals := authorized.Group("/goals")
			{
				goals.POST("", goalHandler.Create)
				goals.GET("", goalHandler.List)
				goals.PUT("/:id/progress", goalHandler.UpdateProgress)
				goals.POST("/:id/allocate", goalHandler.Allocate)
				goals.DELETE("/:id", goalHandler.Delete)
			}

			subscriptionHandler := api.NewSubscriptionHandler()
			subscriptions := authorized.Group("/subscriptions")
			{
				subscriptions.POST("", subscriptionHandler.Create)
				subscriptions.GET("", subscriptionHandler.List)
				subscriptions.PUT("/:id", subscriptionHandler.Update)
				subscriptions.DELETE("/:id", subscriptionHandler.Delete)
			}

			dashboardHandler := api.NewDashboardHandler(budgets)
			dashboard := authorized.Group("/dashboard")
			{
				dashboard.GET("/summary", dashboardHandler.GetSummary)
				dashboard.PUT("/budgets", dashboardHandler.SetBudgets)
			}

			exportHandler := api.NewExportHandler()
			export := authorized.Group("/export")
			{
				export.GET("/csv", exportHandler.ExportCSV)
				export.GET("/json", exportHandler.ExportJSON)
				export.GET("/xlsx", exportHandler.ExportXLSX)
			}
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	return r
}

// CORSMiddleware allows cross-origin requests from the web client.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
