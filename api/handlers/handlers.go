package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"text-summary/config"
	"text-summary/db"
)

// PingHandler godoc
// @Summary      Ping
// @Description  Liveness probe echoing the runtime environment
// @Produce      json
// @Router       /ping [get]
func PingHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		cfg := config.GetConfig()
		c.JSON(http.StatusOK, gin.H{
			"ping":        "pong!",
			"environment": cfg.Env.Environment,
			"testing":     cfg.Env.Testing,
		})
	}
}

// HealthHandler godoc
// @Summary      Health check
// @Description  Reports degraded when the database does not respond
// @Produce      json
// @Router       /health [get]
func HealthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "down", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
