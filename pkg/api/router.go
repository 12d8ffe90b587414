package api

import (
	"mapphone-go/pkg/api/handlers"
	"mapphone-go/pkg/api/middleware"
	"mapphone-go/pkg/services"

	"github.com/gin-gonic/gin"
)

func NewRouter(jobService *services.JobService) *gin.Engine {
	router := gin.New()

	// Middleware
	router.Use(middleware.RequestLogger())
	router.Use(middleware.ErrorHandler())

	// Health check
	router.GET("/health", handlers.HealthCheck)

	// Scraping contract
	router.POST("/start_scrape", handlers.StartScrape(jobService))
	router.GET("/scrape_status/:job_id", handlers.ScrapeStatus(jobService))
	router.POST("/scrape_batch", handlers.ScrapeBatch(jobService))
	router.GET("/download/:filename", handlers.Download(jobService))

	return router
}
