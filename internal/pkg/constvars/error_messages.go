package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":        "is required",
	"min":             "must be at least %s",
	"max":             "must be at most %s",
	"numeric":         "must be a number",
	"oneof":           "must be one of [%s]",
	"gt":              "must be greater than %s",
	"gte":             "must be greater than or equal to %s",
	"lt":              "must be less than %s",
	"lte":             "must be less than or equal to %s",
	"required_if":     "is required when %s",
	"required_unless": "is required unless %s",
	"date_ymd":        "must be a date in YYYY-MM-DD format",
	"clock_hm":        "must be a time in HH:MM format",
	"weekday_token":   "must be a weekday number 1-7 or a weekday name",
	"dive":            "contains an invalid item",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":             true,
	"max":             true,
	"oneof":           true,
	"gt":              true,
	"gte":             true,
	"lt":              true,
	"lte":             true,
	"required_if":     true,
	"required_unless": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientResourceNotFound              = "the requested resource was not found"
	ErrClientTooManyRequests               = "too many requests, please slow down"

	ErrClientAvailabilityUnavailable  = "availability is temporarily unavailable, please try again"
	ErrClientSlotNoLongerAvailable    = "this time is no longer available"
	ErrClientSlotAlreadyTaken         = "this time slot has just been taken"
	ErrClientSlotBlocked              = "this time is not available"
	ErrClientBookingInProgress        = "another booking is in progress for this time, please try again"
	ErrClientBookingOutsideHorizon    = "this date cannot be booked"
	ErrClientBookingInThePast         = "this time has already passed"
	ErrClientOutsideWorkingHours      = "this time is outside the professional's working hours"
	ErrClientBlockManagedExternally   = "this block is managed by calendar sync"
	ErrClientAppointmentStatusLocked  = "this appointment can no longer be changed"
	ErrClientInvalidStatusTransition  = "this appointment status change is not allowed"
	ErrClientAppointmentChanged       = "this appointment was changed by another request, please reload it"
	ErrClientTimeRangeCrossesMidnight = "a time range must start and end on the same day"
)

// Error messages for developers
const (
	ErrDevInvalidInput             = "invalid input"
	ErrDevValidationFailed         = "request validation failed"
	ErrDevCannotParseJSON          = "cannot parse JSON into struct or other data types"
	ErrDevCannotMarshalJSON        = "cannot convert struct or other data types to JSON"
	ErrDevInvalidFormat            = "invalid %s format"
	ErrDevURLParamValidationFailed = "url param %s validation failed"
	ErrDevQueryParamInvalid        = "query param %s is invalid"
	ErrDevServerDeadlineExceeded   = "server deadline exceeded"
	ErrDevResourceNotFound         = "%s not found"
	ErrDevPanicRecovered           = "panic recovered while serving request"
	ErrDevTooManyRequests          = "rate limit exceeded for %s"

	ErrDevDBFailedToFindDocument     = "failed to find document"
	ErrDevDBFailedToIterateDocuments = "failed to iterate documents"
	ErrDevDBFailedToInsertDocument   = "failed to insert document"
	ErrDevDBFailedToUpdateDocument   = "failed to update document"
	ErrDevDBFailedToDeleteDocument   = "failed to delete document"
	ErrDevDBFailedToCreateIndex      = "failed to create index"
	ErrDevDBDuplicateKey             = "duplicate key on insert"

	ErrDevRedisSet          = "failed to set value in redis"
	ErrDevRedisGet          = "failed to get value of key %s from redis"
	ErrDevRedisDelete       = "failed to delete key from redis"
	ErrDevRedisExpire       = "failed to refresh key expiration in redis"
	ErrDevRedisLockNotOwned = "lock not owned by this client"

	ErrDevRabbitMQPublish = "failed to publish message to rabbitmq"
	ErrDevRabbitMQConsume = "failed to start consuming from rabbitmq"

	ErrDevMinioGetObject  = "failed to get object from minio"
	ErrDevMinioReadObject = "failed to read object from minio"

	ErrDevAvailabilityReadFailed  = "failed to read %s for availability"
	ErrDevSlotConflict            = "candidate %s overlaps existing appointment %s"
	ErrDevSlotTaken               = "candidate %s starts exactly at existing appointment %s"
	ErrDevSlotBlocked             = "candidate %s falls inside a blocked period"
	ErrDevPersistenceConflict     = "unique index rejected appointment write"
	ErrDevBookingLockNotAcquired  = "booking lock %s not acquired after %d attempts"
	ErrDevBookingOutsideHorizon   = "date %s is beyond the booking horizon of %d days"
	ErrDevBookingInThePast        = "requested start %s %s is in the past"
	ErrDevOutsideWorkingHours     = "candidate %s %s does not fit the working window"
	ErrDevBlockManagedExternally  = "block %s has source external"
	ErrDevAppointmentStatusLocked = "appointment %s is in terminal status %s"
	ErrDevInvalidStatusTransition = "transition %s -> %s is not allowed"
	ErrDevAppointmentChanged      = "appointment %s no longer at version %d"
	ErrDevWindowCrossesMidnight   = "window %s-%s crosses midnight"
)
