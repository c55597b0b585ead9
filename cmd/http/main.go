package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"wellness-availability-service/internal/app/config"
	"wellness-availability-service/internal/app/delivery/http/controllers"
	"wellness-availability-service/internal/app/delivery/http/middlewares"
	"wellness-availability-service/internal/app/delivery/http/routers"
	"wellness-availability-service/internal/app/drivers/database"
	"wellness-availability-service/internal/app/drivers/logger"
	"wellness-availability-service/internal/app/drivers/messaging"
	"wellness-availability-service/internal/app/drivers/storage"
	"wellness-availability-service/internal/app/services/core/appointments"
	"wellness-availability-service/internal/app/services/core/availability"
	"wellness-availability-service/internal/app/services/core/blocks"
	"wellness-availability-service/internal/app/services/core/housekeeping"
	"wellness-availability-service/internal/app/services/core/schedules"
	"wellness-availability-service/internal/app/services/shared/calendarsync"
	"wellness-availability-service/internal/app/services/shared/events"
	"wellness-availability-service/internal/app/services/shared/locker"
	"wellness-availability-service/internal/app/services/shared/metrics"
	"wellness-availability-service/internal/app/services/shared/redis"
	snapshotstorage "wellness-availability-service/internal/app/services/shared/storage"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	bootstrap := &config.Bootstrap{
		Router:         chi.NewRouter(),
		MongoDB:        database.NewMongoDB(driverConfig),
		Redis:          database.NewRedisClient(driverConfig),
		RabbitMQ:       messaging.NewRabbitMQ(driverConfig),
		Minio:          storage.NewMinio(driverConfig),
		Logger:         zapLogger,
		Registry:       registry,
		InternalConfig: internalConfig,
		DriverConfig:   driverConfig,
	}

	if err := bootstrapingTheApp(bootstrap); err != nil {
		zapLogger.Fatal("Failed to bootstrap the app", zap.Error(err))
	}

	server := &http.Server{
		Addr:              internalConfig.App.Port,
		Handler:           bootstrap.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zapLogger.Info("Server listening", zap.String("address", internalConfig.App.Port))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	zapLogger.Info("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error while shutting down dependencies: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) error {
	dbName := bootstrap.DriverConfig.MongoDB.DbName
	log := bootstrap.Logger

	// Repositories
	scheduleMongoRepository := schedules.NewScheduleMongoRepository(bootstrap.MongoDB, dbName)
	blockMongoRepository := blocks.NewBlockMongoRepository(bootstrap.MongoDB, dbName)
	appointmentMongoRepository := appointments.NewAppointmentMongoRepository(bootstrap.MongoDB, dbName)

	// Shared services
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockService := locker.NewLockService(redisRepository, log)
	snapshotStorage := snapshotstorage.NewMinioStorage(bootstrap.Minio, log)
	availabilityMetrics := metrics.NewAvailabilityMetrics(bootstrap.Registry)

	eventPublisher, err := events.NewPublisher(bootstrap.RabbitMQ, bootstrap.InternalConfig.Events, log)
	if err != nil {
		return err
	}

	// Usecases
	availabilityUsecase := availability.NewAvailabilityUsecase(
		scheduleMongoRepository,
		blockMongoRepository,
		appointmentMongoRepository,
		availabilityMetrics,
		bootstrap.InternalConfig,
		log,
	)
	scheduleUsecase := schedules.NewScheduleUsecase(scheduleMongoRepository, bootstrap.InternalConfig, log)
	blockUsecase := blocks.NewBlockUsecase(
		blockMongoRepository,
		snapshotStorage,
		availabilityMetrics,
		bootstrap.InternalConfig,
		log,
	)
	bookingUsecase := appointments.NewBookingUsecase(
		appointmentMongoRepository,
		scheduleMongoRepository,
		blockMongoRepository,
		lockService,
		eventPublisher,
		availabilityMetrics,
		bootstrap.InternalConfig,
		log,
	)

	// Background workers
	if bootstrap.InternalConfig.CalendarSync.Enabled {
		consumer, err := calendarsync.NewConsumer(bootstrap.RabbitMQ, bootstrap.InternalConfig.CalendarSync, blockUsecase, log)
		if err != nil {
			return err
		}
		if err := consumer.Start(context.Background()); err != nil {
			return err
		}
		bootstrap.ConsumerStop = consumer.Stop
	}

	housekeepingWorker := housekeeping.NewWorker(log, bootstrap.InternalConfig, lockService, blockUsecase)
	housekeepingWorker.Start(context.Background())
	bootstrap.HousekeepingStop = housekeepingWorker.Stop

	// Delivery
	rabbitMQPing := func(context.Context) error {
		if bootstrap.RabbitMQ.IsClosed() {
			return errors.New("connection closed")
		}
		return nil
	}
	healthChecks := map[string]controllers.Pinger{
		"mongodb":  func(ctx context.Context) error { return bootstrap.MongoDB.Ping(ctx, nil) },
		"redis":    func(ctx context.Context) error { return bootstrap.Redis.Ping(ctx).Err() },
		"rabbitmq": rabbitMQPing,
	}

	routers.SetupRoutes(
		bootstrap.Router,
		bootstrap.InternalConfig,
		middlewares.NewMiddlewares(log, bootstrap.InternalConfig),
		bootstrap.Registry,
		&routers.Controllers{
			Availability: controllers.NewAvailabilityController(log, availabilityUsecase, bootstrap.InternalConfig),
			Schedule:     controllers.NewScheduleController(log, scheduleUsecase, bootstrap.InternalConfig),
			Block:        controllers.NewBlockController(log, blockUsecase, bootstrap.InternalConfig),
			Appointment:  controllers.NewAppointmentController(log, bookingUsecase, bootstrap.InternalConfig),
			Health:       controllers.NewHealthController(log, bootstrap.InternalConfig, healthChecks),
		},
	)
	return nil
}
