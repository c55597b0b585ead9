package routers

import (
	"wellness-availability-service/internal/app/delivery/http/controllers"
	"wellness-availability-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAppointmentRoutes(router chi.Router, limiter *middlewares.RateLimiter, c *controllers.AppointmentController) {
	router.With(limiter.Limit).Post("/", c.CreateAppointment)
	router.Post("/check", c.CheckSlot)
	router.Patch("/{appointmentID}/status", c.UpdateStatus)
	router.With(limiter.Limit).Post("/{appointmentID}/reschedule", c.Reschedule)
	router.Post("/{appointmentID}/cancel", c.Cancel)
}
