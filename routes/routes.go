package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/vnkhanh/sesh-server/controllers"
	"github.com/vnkhanh/sesh-server/middleware"
)

func SetupRoutes(r *gin.Engine) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})
	r.GET("/health", controllers.HealthCheck)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", controllers.Register)
			auth.POST("/login", controllers.Login)
			auth.POST("/google/login", controllers.GoogleLoginHandler)
		}

		users := api.Group("/users")
		{
			users.GET("", middleware.AuthJWT(), controllers.GetUserByEmail)
			users.GET("/:id", controllers.GetUserByID)
		}

		protected := api.Group("/")
		protected.Use(middleware.AuthJWT())
		{
			protected.GET("/me", controllers.Me)
			protected.PATCH("/me", controllers.UpdateMe)
		}

		admin := protected.Group("/admin")
		admin.Use(middleware.RequireAdmin())
		{
			admin.GET("/users", controllers.ListUsers)
		}

		seshes := api.Group("/seshes")
		{
			seshes.POST("", middleware.AuthJWT(), middleware.RateLimitSeshCreate(), controllers.CreateSesh)
			seshes.GET("/:id", controllers.GetSesh)
			seshes.GET("/share/:shareURL", controllers.GetSeshByShareURL)
			// RSVP: sesh được middleware nạp sẵn vào context
			seshes.POST("/:id/accept", middleware.AuthJWT(), middleware.LoadSesh(), controllers.AcceptSesh)
			seshes.POST("/:id/decline", middleware.AuthJWT(), middleware.LoadSesh(), controllers.DeclineSesh)
		}
	}
}
