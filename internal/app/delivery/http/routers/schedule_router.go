package routers

import (
	"wellness-availability-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachScheduleRoutes(router chi.Router, c *controllers.ScheduleController) {
	router.Get("/schedule", c.GetSchedule)
	router.Put("/schedule", c.UpsertSchedule)
}
