package constvars

const (
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	AvailabilityGetSuccess         = "get availability successfully"
	AvailabilityCalendarGetSuccess = "get availability calendar successfully"

	ScheduleGetSuccess     = "get working schedule successfully"
	ScheduleUpdatedSuccess = "working schedule updated successfully"

	BlockCreatedSuccess = "availability block created successfully"
	BlockListSuccess    = "get availability blocks successfully"
	BlockDeletedSuccess = "availability block deleted successfully"

	AppointmentCreatedSuccess       = "appointment booked successfully"
	AppointmentSlotFreeSuccess      = "the requested time is available"
	AppointmentSlotTakenSuccess     = "the requested time is not available"
	AppointmentStatusUpdatedSuccess = "appointment status updated successfully"
	AppointmentRescheduledSuccess   = "appointment rescheduled successfully"
	AppointmentCancelledSuccess     = "appointment cancelled successfully"
)
