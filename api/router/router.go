package router

import (
	"github.com/gin-gonic/gin"

	"text-summary/api/handlers"
	"text-summary/api/middleware"
	"text-summary/services"
)

// New builds the HTTP router over the given service.
func New(svc *services.SummaryService) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestTrace())

	r.GET("/ping", handlers.PingHandler())
	r.GET("/health", handlers.HealthHandler())

	// v1 routes
	api := r.Group("/api/v1")
	{
		api.POST("/summaries", handlers.CreateSummaryHandler(svc))
		api.GET("/summaries", handlers.ListSummariesHandler(svc))
		api.GET("/summaries/:id", handlers.GetSummaryHandler(svc))
		api.PUT("/summaries/:id", handlers.UpdateSummaryHandler(svc))
		api.DELETE("/summaries/:id", handlers.DeleteSummaryHandler(svc))
	}

	return r
}
