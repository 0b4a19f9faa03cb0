package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"mines-backend/internal/config"
	"mines-backend/internal/handlers"
	"mines-backend/internal/middleware"
	"mines-backend/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	redisService, err := services.NewRedisService(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisService.Close()

	jwtService := services.NewJWTService(cfg)

	gameEngine := services.NewGameEngine(redisService, redisService, redisService)

	wsHandler := handlers.NewWebSocketHandler(redisService)
	gameEngine.SetBroadcaster(wsHandler)

	authHandler := handlers.NewAuthHandler(redisService, jwtService)
	userHandler := handlers.NewUserHandler(redisService, cfg)
	gameHandler := handlers.NewGameHandler(gameEngine, redisService)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	router.POST("/auth/register", authHandler.Register)
	router.POST("/auth/login", authHandler.Login)

	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware(jwtService))
	protected.Use(middleware.RateLimitMiddleware(redisService))
	{
		protected.GET("/me", userHandler.GetCurrentUser)
		protected.POST("/logout", authHandler.Logout)
		protected.POST("/claim-daily", userHandler.ClaimDaily)

		protected.GET("/ws", wsHandler.HandleWebSocket)

		games := protected.Group("/games")
		{
			games.GET("/balance", gameHandler.GetBalance)
			games.GET("/history", gameHandler.GetGameHistory)
			games.GET("/transactions", userHandler.GetTransactions)

			mines := games.Group("/mines")
			{
				mines.POST("/start", gameHandler.StartGame)
				mines.POST("/reveal", gameHandler.RevealCell)
				mines.POST("/cashout", gameHandler.Cashout)
				mines.GET("/active", gameHandler.GetActiveGame)
			}
		}
	}

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
