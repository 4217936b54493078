package main

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/jobtrackr/backend/internal/config"
	"github.com/jobtrackr/backend/internal/database"
	"github.com/jobtrackr/backend/internal/handlers"
	"github.com/jobtrackr/backend/internal/services"
)

func main() {
	cfg := config.Load()

	db := database.Connect(cfg.DatabaseDSN)

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Printf("Redis unavailable at %s: %v; extraction limits disabled", cfg.RedisAddr, err)
		rdb = nil
	}

	llmService := services.NewLLMService(cfg)
	jobService := services.NewJobService(db)
	usageService := services.NewUsageService(rdb)
	analysisService := services.NewAnalysisService(llmService.Provider, cfg.LLMTimeout)

	jobHandler := handlers.NewJobHandler(llmService, jobService, usageService, analysisService)

	r := gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-User-ID"}
	r.Use(cors.New(corsConfig))

	api := r.Group("/api/v1")
	{
		api.GET("/health", handlers.HealthCheck)

		jobs := api.Group("/jobs", handlers.RequireUser())
		{
			jobs.POST("/preparse", jobHandler.Preparse)
			jobs.POST("/extract", jobHandler.Extract)
			jobs.POST("/workflow", jobHandler.Workflow)
			jobs.POST("/analyze", jobHandler.Analyze)

			jobs.POST("", jobHandler.CreateJob)
			jobs.GET("", jobHandler.ListJobs)
			jobs.GET("/status-counts", jobHandler.StatusCounts)
			jobs.GET("/:id", jobHandler.GetJob)
			jobs.PUT("/:id", jobHandler.UpdateJob)
			jobs.DELETE("/:id", jobHandler.DeleteJob)
			jobs.DELETE("", jobHandler.DeleteAllJobs)
		}
	}

	log.Printf("Server starting on port %s...", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
