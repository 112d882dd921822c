package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/vnkhanh/sesh-server/config"
	"github.com/vnkhanh/sesh-server/routes"
	"github.com/vnkhanh/sesh-server/services"
)

func main() {
	// .env cho local, trên server dùng biến môi trường thật
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Kết nối DB + AutoMigrate
	config.ConnectDB()
	services.Init(config.DB)

	// Scheduler finalize sesh đã qua giờ
	scheduler := services.NewScheduler(config.DB)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer scheduler.Stop()

	// Tạo instance router
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return origin == "http://localhost:5173" || origin == "https://pfg-sesh.github.io"
		},
		AllowMethods:           []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:           []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:          []string{"Content-Length"},
		AllowCredentials:       true,
		MaxAge:                 12 * time.Hour,
		AllowWildcard:          true,
		AllowBrowserExtensions: true,
	}))

	// Route test server
	r.GET("/", func(c *gin.Context) {
		c.String(200, "Sesh server is running")
	})

	if err := r.SetTrustedProxies(nil); err != nil {
		panic(err)
	}

	// Setup routes khác
	routes.SetupRoutes(r)

	// Lấy PORT từ biến môi trường
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server listening on port %s\n", port)
	r.Run(":" + port)
}
