package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/TwisterMc/JobTwister/internal/api/handlers"
)

type Deps struct {
	Jobs     *handlers.JobHandler
	CSV      *handlers.CSVHandler
	Settings *handlers.SettingsHandler
	Events   *handlers.EventsHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	api := r.Group("/api")

	api.GET("/jobs", d.Jobs.List)
	api.POST("/jobs", d.Jobs.Create)
	api.GET("/jobs/:id", d.Jobs.Get)
	api.PUT("/jobs/:id", d.Jobs.Update)
	api.DELETE("/jobs/:id", d.Jobs.Delete)

	api.POST("/jobs/:id/interviews", d.Jobs.AddInterview)
	api.PUT("/jobs/:id/interviews/:interview_id", d.Jobs.UpdateInterview)
	api.DELETE("/jobs/:id/interviews/:interview_id", d.Jobs.RemoveInterview)

	api.GET("/stats", d.Jobs.Stats)
	api.GET("/stats/timeline", d.Jobs.Timeline)

	api.POST("/csv/import", d.CSV.Import)
	api.GET("/csv/export", d.CSV.Export)

	api.GET("/settings", d.Settings.Get)
	api.PUT("/settings", d.Settings.Update)

	// WebSocket
	r.GET("/ws/events", d.Events.Stream)
}
