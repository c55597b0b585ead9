package config

import (
	"wellness-availability-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "wellness"),
			Username: utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
			DB:       utils.GetEnvInt("REDIS_DB", 0),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		Minio: Minio{
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Username: utils.GetEnvString("MINIO_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MINIO_PASSWORD", "defaultPassword"),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                        utils.GetEnvString("APP_ENV", "development"),
			Port:                       utils.GetEnvString("APP_PORT", ":8080"),
			Version:                    utils.GetEnvString("APP_VERSION", "v1"),
			Timezone:                   utils.GetEnvString("APP_TIMEZONE", "Asia/Jakarta"),
			EndpointPrefix:             utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUEST", 20),
			ShutdownTimeoutInSeconds:   utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT_IN_SECONDS", 10),
			RequestBodyLimitInMegabyte: utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 6),
			BookingRequestsPerMinute:   utils.GetEnvInt("APP_BOOKING_REQUESTS_PER_MINUTE", 10),
			BookingBlockTimeInSeconds:  utils.GetEnvInt("APP_BOOKING_BLOCK_TIME_IN_SECONDS", 60),
		},
		Availability: Availability{
			DefaultGranularityMinutes: utils.GetEnvInt("AVAILABILITY_DEFAULT_GRANULARITY_MINUTES", 30),
			DefaultDurationMinutes:    utils.GetEnvInt("AVAILABILITY_DEFAULT_DURATION_MINUTES", 60),
			BookingHorizonDays:        utils.GetEnvInt("AVAILABILITY_BOOKING_HORIZON_DAYS", 90),
			ReadTimeoutInSeconds:      utils.GetEnvInt("AVAILABILITY_READ_TIMEOUT_IN_SECONDS", 5),
			EnforceWorkingHours:       utils.GetEnvBool("AVAILABILITY_ENFORCE_WORKING_HOURS", true),
			LockTTLInSeconds:          utils.GetEnvInt("AVAILABILITY_LOCK_TTL_IN_SECONDS", 10),
			LockRetryAttempts:         utils.GetEnvInt("AVAILABILITY_LOCK_RETRY_ATTEMPTS", 5),
			LockRetryDelayInMillis:    utils.GetEnvInt("AVAILABILITY_LOCK_RETRY_DELAY_IN_MILLIS", 100),
		},
		CalendarSync: CalendarSync{
			Enabled:           utils.GetEnvBool("CALENDAR_SYNC_ENABLED", true),
			Queue:             utils.GetEnvString("CALENDAR_SYNC_QUEUE", "calendar_sync"),
			Prefetch:          utils.GetEnvInt("CALENDAR_SYNC_PREFETCH", 10),
			MessagesPerSecond: utils.GetEnvInt("CALENDAR_SYNC_MESSAGES_PER_SECOND", 20),
			SnapshotBucket:    utils.GetEnvString("CALENDAR_SYNC_SNAPSHOT_BUCKET", "calendar-sync"),
		},
		Events: Events{
			Exchange: utils.GetEnvString("EVENTS_EXCHANGE", "appointments"),
			Queue:    utils.GetEnvString("EVENTS_APPOINTMENT_QUEUE", "appointment_events"),
		},
		Housekeeping: Housekeeping{
			CronSpec:      utils.GetEnvString("HOUSEKEEPING_CRON_SPEC", "@daily"),
			RetentionDays: utils.GetEnvInt("HOUSEKEEPING_RETENTION_DAYS", 30),
		},
	}
}
