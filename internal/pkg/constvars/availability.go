package constvars

const (
	MongoCollectionWorkingSchedules   = "working_schedules"
	MongoCollectionAvailabilityBlocks = "availability_blocks"
	MongoCollectionAppointments       = "appointments"
)

const (
	// booking:lock:{professional}:{date}
	BookingLockKeyFormat = "booking:lock:%s:%s"
	// housekeeping:leader
	HousekeepingLeaderLockKey = "housekeeping:leader"
)

const (
	EventAppointmentBooked      = "appointment.booked"
	EventAppointmentRescheduled = "appointment.rescheduled"
	EventAppointmentCancelled   = "appointment.cancelled"
	EventAppointmentStatus      = "appointment.status_changed"
)

const (
	DateLayout      = "2006-01-02"
	ClockLayout     = "15:04"
	LocalTimeLayout = "2006-01-02T15:04"

	MinutesPerDay             = 1440
	MaxAppointmentMinutes     = 720
	MaxAvailabilityRangeDays  = 31
	DefaultAvailabilityRange  = 7
	DefaultAppointmentMinutes = 60
)
