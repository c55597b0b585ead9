package config

import "time"

type InternalConfig struct {
	App          App          `mapstructure:"app"`
	Availability Availability `mapstructure:"availability"`
	CalendarSync CalendarSync `mapstructure:"calendar_sync"`
	Events       Events       `mapstructure:"events"`
	Housekeeping Housekeeping `mapstructure:"housekeeping"`
}

type App struct {
	Env                        string `mapstructure:"env"`
	Port                       string `mapstructure:"port"`
	Version                    string `mapstructure:"version"`
	Timezone                   string `mapstructure:"timezone"`
	EndpointPrefix             string `mapstructure:"endpoint_prefix"`
	MaxRequests                int    `mapstructure:"max_requests"`
	ShutdownTimeoutInSeconds   int    `mapstructure:"shutdown_timeout_in_seconds"`
	RequestBodyLimitInMegabyte int    `mapstructure:"request_body_limit_in_megabyte"`
	BookingRequestsPerMinute   int    `mapstructure:"booking_requests_per_minute"`
	BookingBlockTimeInSeconds  int    `mapstructure:"booking_block_time_in_seconds"`
}

type Availability struct {
	DefaultGranularityMinutes int  `mapstructure:"default_granularity_minutes"`
	DefaultDurationMinutes    int  `mapstructure:"default_duration_minutes"`
	BookingHorizonDays        int  `mapstructure:"booking_horizon_days"`
	ReadTimeoutInSeconds      int  `mapstructure:"read_timeout_in_seconds"`
	EnforceWorkingHours       bool `mapstructure:"enforce_working_hours"`
	LockTTLInSeconds          int  `mapstructure:"lock_ttl_in_seconds"`
	LockRetryAttempts         int  `mapstructure:"lock_retry_attempts"`
	LockRetryDelayInMillis    int  `mapstructure:"lock_retry_delay_in_millis"`
}

type CalendarSync struct {
	Enabled           bool   `mapstructure:"enabled"`
	Queue             string `mapstructure:"queue"`
	Prefetch          int    `mapstructure:"prefetch"`
	MessagesPerSecond int    `mapstructure:"messages_per_second"`
	SnapshotBucket    string `mapstructure:"snapshot_bucket"`
}

type Events struct {
	Exchange string `mapstructure:"exchange"`
	Queue    string `mapstructure:"queue"`
}

type Housekeeping struct {
	CronSpec      string `mapstructure:"cron_spec"`
	RetentionDays int    `mapstructure:"retention_days"`
}

func (a Availability) LockTTL() time.Duration {
	return time.Duration(a.LockTTLInSeconds) * time.Second
}

func (a Availability) LockRetryDelay() time.Duration {
	return time.Duration(a.LockRetryDelayInMillis) * time.Millisecond
}

func (a Availability) ReadTimeout() time.Duration {
	return time.Duration(a.ReadTimeoutInSeconds) * time.Second
}

// Location falls back to UTC when Timezone is not a known IANA zone.
func (a App) Location() *time.Location {
	location, err := time.LoadLocation(a.Timezone)
	if err != nil {
		return time.UTC
	}
	return location
}
