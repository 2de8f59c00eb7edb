package api

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all application routes
func SetupRoutes(router *gin.Engine, h *Handlers) {
	api := router.Group("/api")
	{
		// Health check
		api.GET("/health", h.HealthCheck)

		// Cache stats
		api.GET("/cache/stats", h.CacheStats)

		api.GET("/dashboard", h.Dashboard)

		// Cases and their deadlines
		api.GET("/cases", h.ListCases)
		api.POST("/cases", h.CreateCase)
		api.GET("/cases/:id", h.GetCase)
		api.PUT("/cases/:id", h.UpdateCase)
		api.GET("/cases/:id/deadlines", h.ListDeadlines)
		api.POST("/cases/:id/deadlines", h.CreateDeadline)

		api.PUT("/deadlines/:id", h.UpdateDeadline)
		api.POST("/deadlines/:id/status", h.SetDeadlineStatus)

		// Schedule
		api.GET("/schedule", h.ListSchedule)
		api.POST("/schedule", h.CreateScheduleEvent)
		api.GET("/schedule/calendar", h.Calendar)
		api.PUT("/schedule/:id", h.UpdateScheduleEvent)

		// Directory
		api.GET("/employees", h.ListEmployees)
		api.POST("/employees", h.CreateEmployee)
		api.PUT("/employees/:id", h.UpdateEmployee)

		api.GET("/payroll", h.ListPayroll)
		api.POST("/payroll", h.CreatePayroll)

		api.GET("/precedents", h.ListPrecedents)
		api.POST("/precedents", h.CreatePrecedent)
		api.PUT("/precedents/:id", h.UpdatePrecedent)

		// Deadline mirror maintenance
		api.POST("/sync/reconcile", h.Reconcile)
		api.GET("/sync/logs", h.SyncLogs)
	}
}
