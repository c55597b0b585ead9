package utils

import (
	"strings"
	"wellness-availability-service/internal/pkg/dto/requests"
)

func SanitizeCreateAppointmentRequest(input *requests.CreateAppointment) {
	input.ProfessionalID = strings.TrimSpace(input.ProfessionalID)
	input.PatientID = strings.TrimSpace(input.PatientID)
	input.ServiceID = strings.TrimSpace(input.ServiceID)
	input.Date = strings.TrimSpace(input.Date)
	input.StartTime = strings.TrimSpace(input.StartTime)
	input.Status = strings.ToLower(strings.TrimSpace(input.Status))
	input.Notes = strings.TrimSpace(input.Notes)
}

func SanitizeCheckSlotRequest(input *requests.CheckSlot) {
	input.ProfessionalID = strings.TrimSpace(input.ProfessionalID)
	input.Date = strings.TrimSpace(input.Date)
	input.StartTime = strings.TrimSpace(input.StartTime)
	input.ExcludeAppointmentID = strings.TrimSpace(input.ExcludeAppointmentID)
}

func SanitizeCreateAvailabilityBlockRequest(input *requests.CreateAvailabilityBlock) {
	input.Kind = strings.ToLower(strings.TrimSpace(input.Kind))
	input.Date = strings.TrimSpace(input.Date)
	input.StartDate = strings.TrimSpace(input.StartDate)
	input.EndDate = strings.TrimSpace(input.EndDate)
	input.StartTime = strings.TrimSpace(input.StartTime)
	input.EndTime = strings.TrimSpace(input.EndTime)
	input.Reason = strings.TrimSpace(input.Reason)
}

func SanitizeUpdateAppointmentStatusRequest(input *requests.UpdateAppointmentStatus) {
	input.Status = strings.ToLower(strings.TrimSpace(input.Status))
}
