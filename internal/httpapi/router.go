// Package httpapi exposes the journal over HTTP.
package httpapi

import (
	"github.com/gin-gonic/gin"

	"github.com/TelmenBay/leetlog/internal/logger"
)

// NewRouter builds the gin engine. Every /api route requires the X-User-Id
// header.
func NewRouter(h *Handler, log *logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), RequestLogger(log))

	router.GET("/healthcheck", HealthCheck)

	api := router.Group("/api")
	api.Use(RequireUser())
	{
		api.POST("/user-problem", h.AddProblem)
		api.POST("/user-problem/:id", h.SubmitLog)
		api.GET("/user-problem/:id/logs", h.Logs)
		api.DELETE("/user-problem/:id", h.DeleteUserProblem)
		api.POST("/user-problems/delete", h.DeleteUserProblems)
		api.DELETE("/log/:id", h.DeleteLog)
		api.GET("/dashboard", h.Dashboard)
		api.GET("/analytics", h.Analytics)
		api.GET("/preferences", h.Preferences)
		api.PUT("/preferences", h.SavePreferences)
	}

	return router
}
