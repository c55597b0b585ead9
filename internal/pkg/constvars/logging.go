package constvars

const (
	LoggingRequestIDKey      = "request_id"
	LoggingDataKey           = "data"
	LoggingQueryParamsKey    = "query_params"
	LoggingResponseKey       = "response"
	LoggingRequestKey        = "request"
	LoggingResponseLengthKey = "response_length"
	LoggingErrorTypeKey      = "error_type"

	LoggingMethodKey     = "method"
	LoggingEndpointKey   = "endpoint"
	LoggingRemoteAddrKey = "remote_addr"
	LoggingUserAgentKey  = "user_agent"
	LoggingQueryKey      = "query"
	LoggingStatusCodeKey = "status_code"
	LoggingDurationKey   = "duration"
	LoggingSuccessKey    = "success"

	LoggingRedisKey              = "redis_key"
	LoggingLockValueKey          = "lock_value"
	LoggingLockStoredValueKey    = "lock_stored_value"
	LoggingLockExpectedValueKey  = "lock_expected_value"
	LoggingLockExpirationTimeKey = "lock_expiration_time"
	LoggingLockAttemptKey        = "lock_attempt"

	LoggingProfessionalIDKey = "professional_id"
	LoggingPatientIDKey      = "patient_id"
	LoggingAppointmentIDKey  = "appointment_id"
	LoggingBlockIDKey        = "block_id"
	LoggingBlockKindKey      = "block_kind"
	LoggingBlockSourceKey    = "block_source"
	LoggingCalendarIDKey     = "calendar_id"
	LoggingExternalIDKey     = "external_id"
	LoggingEventKey          = "event"
	LoggingDateKey           = "date"
	LoggingStartTimeKey      = "start_time"
	LoggingDurationMinKey    = "duration_minutes"
	LoggingGranularityKey    = "granularity_minutes"
	LoggingSlotsCountKey     = "slots_count"
	LoggingBlocksCountKey    = "blocks_count"
	LoggingAppointmentsKey   = "appointments_count"
	LoggingConflictKindKey   = "conflict_kind"
	LoggingStatusKey         = "status"

	LoggingQueueKey        = "queue"
	LoggingDeliveryTagKey  = "delivery_tag"
	LoggingSyncModeKey     = "sync_mode"
	LoggingPeriodsCountKey = "periods_count"
	LoggingObjectKey       = "object"
	LoggingBucketKey       = "bucket"
	LoggingDeletedCountKey = "deleted_count"
	LoggingCronSpecKey     = "cron_spec"
)
