package exceptions

import (
	"errors"
	"fmt"
	"wellness-availability-service/internal/pkg/constvars"
)

// Availability error taxonomy. A missing working window is not an error; it
// yields an empty slot list.
var (
	ErrDataUnavailable     = errors.New("availability data unavailable")
	ErrSlotConflict        = errors.New("slot conflict")
	ErrSlotTaken           = fmt.Errorf("%w: exact start match", ErrSlotConflict)
	ErrPersistenceConflict = fmt.Errorf("%w: rejected by storage", ErrSlotConflict)
	ErrBlockedSlot         = errors.New("blocked slot")
	ErrBookingInProgress   = errors.New("booking in progress")
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("not found")
)

var (
	ErrInputValidation = func(err error) *CustomError {
		return build(ErrInvalidInput, err, constvars.StatusBadRequest, FormatFirstValidationError(err), constvars.ErrDevValidationFailed, 3)
	}
	ErrCannotParseJSON = func(err error) *CustomError {
		return build(ErrInvalidInput, err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseJSON, 3)
	}
	ErrURLParamValidation = func(err error, paramName string) *CustomError {
		return build(ErrInvalidInput, err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevURLParamValidationFailed, paramName), 3)
	}
	ErrQueryParamInvalid = func(err error, paramName string) *CustomError {
		return build(ErrInvalidInput, err, constvars.StatusBadRequest, fmt.Sprintf("%s %s", paramName, "is invalid"), fmt.Sprintf(constvars.ErrDevQueryParamInvalid, paramName), 3)
	}
	ErrInvalidFormat = func(err error, source string) *CustomError {
		return build(ErrInvalidInput, err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevInvalidFormat, source), 3)
	}
	ErrCannotMarshalJSON = func(err error) *CustomError {
		return build(nil, err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCannotMarshalJSON, 3)
	}
	ErrServerDeadlineExceeded = func(err error) *CustomError {
		return build(ErrDataUnavailable, err, constvars.StatusGatewayTimeout, constvars.ErrClientServerLongRespond, constvars.ErrDevServerDeadlineExceeded, 3)
	}
	ErrResourceNotFound = func(err error, resource string) *CustomError {
		return build(ErrNotFound, err, constvars.StatusNotFound, constvars.ErrClientResourceNotFound, fmt.Sprintf(constvars.ErrDevResourceNotFound, resource), 3)
	}
	ErrTooManyRequests = func(client string) *CustomError {
		return build(nil, nil, constvars.StatusTooManyRequests, constvars.ErrClientTooManyRequests, fmt.Sprintf(constvars.ErrDevTooManyRequests, client), 3)
	}
	ErrPanicRecovered = func(err error) *CustomError {
		return build(nil, err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevPanicRecovered, 3)
	}

	// Mongo DB
	ErrMongoDBFindDocument = func(err error) *CustomError {
		return build(nil, err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToFindDocument, 3)
	}
	ErrMongoDBIterateDocuments = func(err error) *CustomError {
		return build(nil, err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToIterateDocuments, 3)
	}
	ErrMongoDBInsertDocument = func(err error) *CustomError {
		return build(nil, err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToInsertDocument, 3)
	}
	ErrMongoDBUpdateDocument = func(err error) *CustomError {
		return build(nil, err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToUpdateDocument, 3)
	}
	ErrMongoDBDeleteDocument = func(err error) *CustomError {
		return build(nil, err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToDeleteDocument, 3)
	}
	ErrMongoDBCreateIndex = func(err error) *CustomError {
		return build(nil, err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToCreateIndex, 3)
	}

	// Redis
	ErrRedisSet = func(err error) *CustomError {
		return build(nil, err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisSet, 3)
	}
	ErrRedisGet = func(err error, key string) *CustomError {
		return build(nil, err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRedisGet, key), 3)
	}
	ErrRedisDelete = func(err error) *CustomError {
		return build(nil, err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisDelete, 3)
	}
	ErrRedisExpire = func(err error) *CustomError {
		return build(nil, err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisExpire, 3)
	}
	ErrRedisUnlock = func(err error) *CustomError {
		return build(nil, err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisLockNotOwned, 3)
	}

	// RabbitMQ
	ErrRabbitMQPublish = func(err error) *CustomError {
		return build(nil, err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRabbitMQPublish, 3)
	}
	ErrRabbitMQConsume = func(err error) *CustomError {
		return build(nil, err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRabbitMQConsume, 3)
	}

	// Minio
	ErrMinioGetObject = func(err error) *CustomError {
		return build(nil, err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevMinioGetObject, 3)
	}
	ErrMinioReadObject = func(err error) *CustomError {
		return build(nil, err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevMinioReadObject, 3)
	}

	// Availability and booking
	ErrAvailabilityReadFailed = func(err error, source string) *CustomError {
		return build(ErrDataUnavailable, err, constvars.StatusServiceUnavailable, constvars.ErrClientAvailabilityUnavailable, fmt.Sprintf(constvars.ErrDevAvailabilityReadFailed, source), 3)
	}
	ErrSlotConflictWith = func(candidate, existing string) *CustomError {
		return build(ErrSlotConflict, nil, constvars.StatusConflict, constvars.ErrClientSlotNoLongerAvailable, fmt.Sprintf(constvars.ErrDevSlotConflict, candidate, existing), 3)
	}
	ErrSlotTakenBy = func(candidate, existing string) *CustomError {
		return build(ErrSlotTaken, nil, constvars.StatusConflict, constvars.ErrClientSlotAlreadyTaken, fmt.Sprintf(constvars.ErrDevSlotTaken, candidate, existing), 3)
	}
	ErrSlotBlockedAt = func(candidate string) *CustomError {
		return build(ErrBlockedSlot, nil, constvars.StatusConflict, constvars.ErrClientSlotBlocked, fmt.Sprintf(constvars.ErrDevSlotBlocked, candidate), 3)
	}
	ErrOutsideWorkingHours = func(date, candidate string) *CustomError {
		return build(ErrBlockedSlot, nil, constvars.StatusConflict, constvars.ErrClientOutsideWorkingHours, fmt.Sprintf(constvars.ErrDevOutsideWorkingHours, date, candidate), 3)
	}
	ErrPersistenceConflictOnWrite = func(err error) *CustomError {
		return build(ErrPersistenceConflict, err, constvars.StatusConflict, constvars.ErrClientSlotNoLongerAvailable, constvars.ErrDevPersistenceConflict, 3)
	}
	// ErrAppointmentChanged reports a write whose expected version was
	// overtaken by another writer.
	ErrAppointmentChanged = func(appointmentID string, version int) *CustomError {
		return build(ErrPersistenceConflict, nil, constvars.StatusConflict, constvars.ErrClientAppointmentChanged, fmt.Sprintf(constvars.ErrDevAppointmentChanged, appointmentID, version), 3)
	}
	ErrBookingLockNotAcquired = func(err error, key string, attempts int) *CustomError {
		return build(ErrBookingInProgress, err, constvars.StatusConflict, constvars.ErrClientBookingInProgress, fmt.Sprintf(constvars.ErrDevBookingLockNotAcquired, key, attempts), 3)
	}
	ErrBookingOutsideHorizon = func(date string, horizonDays int) *CustomError {
		return build(ErrInvalidInput, nil, constvars.StatusUnprocessableEntity, constvars.ErrClientBookingOutsideHorizon, fmt.Sprintf(constvars.ErrDevBookingOutsideHorizon, date, horizonDays), 3)
	}
	ErrBookingInThePast = func(date, start string) *CustomError {
		return build(ErrInvalidInput, nil, constvars.StatusUnprocessableEntity, constvars.ErrClientBookingInThePast, fmt.Sprintf(constvars.ErrDevBookingInThePast, date, start), 3)
	}
	ErrBlockManagedExternally = func(blockID string) *CustomError {
		return build(nil, nil, constvars.StatusForbidden, constvars.ErrClientBlockManagedExternally, fmt.Sprintf(constvars.ErrDevBlockManagedExternally, blockID), 3)
	}
	ErrAppointmentStatusLocked = func(appointmentID, status string) *CustomError {
		return build(nil, nil, constvars.StatusConflict, constvars.ErrClientAppointmentStatusLocked, fmt.Sprintf(constvars.ErrDevAppointmentStatusLocked, appointmentID, status), 3)
	}
	ErrInvalidStatusTransition = func(from, to string) *CustomError {
		return build(ErrInvalidInput, nil, constvars.StatusUnprocessableEntity, constvars.ErrClientInvalidStatusTransition, fmt.Sprintf(constvars.ErrDevInvalidStatusTransition, from, to), 3)
	}
	ErrWindowCrossesMidnight = func(start, end string) *CustomError {
		return build(ErrInvalidInput, nil, constvars.StatusUnprocessableEntity, constvars.ErrClientTimeRangeCrossesMidnight, fmt.Sprintf(constvars.ErrDevWindowCrossesMidnight, start, end), 3)
	}
)
