package routers

import (
	"fmt"
	"wellness-availability-service/internal/app/config"
	"wellness-availability-service/internal/app/delivery/http/controllers"
	"wellness-availability-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Controllers struct {
	Availability *controllers.AvailabilityController
	Schedule     *controllers.ScheduleController
	Block        *controllers.BlockController
	Appointment  *controllers.AppointmentController
	Health       *controllers.HealthController
}

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	gatherer prometheus.Gatherer,
	c *Controllers,
) {
	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "X-Request-ID"},
		ExposedHeaders:   []string{"Link", "X-Request-ID", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))
	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging)
	router.Use(middlewares.ErrorHandler)

	router.Get("/health", c.Health.Health)
	router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)
	bookingLimiter := middlewares.BookingRateLimiter()

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Use(middlewares.GlobalRateLimit())
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/professionals/{professionalID}", func(r chi.Router) {
				attachAvailabilityRoutes(r, c.Availability)
				attachScheduleRoutes(r, c.Schedule)
				attachBlockRoutes(r, c.Block)
			})

			r.Route("/appointments", func(r chi.Router) {
				attachAppointmentRoutes(r, bookingLimiter, c.Appointment)
			})
		})
	})
}
