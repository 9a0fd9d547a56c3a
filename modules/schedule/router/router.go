package router

import (
	"dayflow/modules/schedule/controller"

	"github.com/labstack/echo/v4"
)

// ScheduleRouter registers scheduling routes
type ScheduleRouter struct {
	ScheduleController *controller.ScheduleController
}

// NewScheduleRouter creates a new router
func NewScheduleRouter(scheduleController *controller.ScheduleController) *ScheduleRouter {
	return &ScheduleRouter{
		ScheduleController: scheduleController,
	}
}

// Setup registers scheduling routes
func (r *ScheduleRouter) Setup(e *echo.Echo) {
	v1 := e.Group("/api/v1")
	schedule := v1.Group("/schedule")

	events := schedule.Group("/events")
	events.POST("", r.ScheduleController.CreateEvent)
	events.GET("", r.ScheduleController.ListEvents)
	events.GET("/:id", r.ScheduleController.GetEvent)
	events.PUT("/:id", r.ScheduleController.UpdateEvent)
	events.DELETE("/:id", r.ScheduleController.DeleteEvent)

	blocks := schedule.Group("/time-blocks")
	blocks.POST("", r.ScheduleController.CreateTimeBlock)
	blocks.GET("/:id", r.ScheduleController.GetTimeBlock)
	blocks.PUT("/:id", r.ScheduleController.UpdateTimeBlock)
	blocks.DELETE("/:id", r.ScheduleController.DeleteTimeBlock)

	schedule.GET("/occurrences", r.ScheduleController.Occurrences)
	schedule.POST("/conflicts", r.ScheduleController.Conflicts)
	schedule.POST("/availability", r.ScheduleController.Availability)
	schedule.POST("/suggestions", r.ScheduleController.Suggestions)
}
