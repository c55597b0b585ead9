package availability

import (
	"context"
	"time"
	"wellness-availability-service/internal/app/contracts"
	"wellness-availability-service/internal/app/models"
	"wellness-availability-service/internal/pkg/exceptions"

	"golang.org/x/sync/errgroup"
)

// Snapshot is everything one availability decision reads for a professional
// and date range.
type Snapshot struct {
	Schedule     *models.WorkingSchedule
	Blocks       []models.AvailabilityBlock
	Appointments []models.Appointment
}

type SnapshotLoader struct {
	ScheduleRepository    contracts.ScheduleRepository
	BlockRepository       contracts.BlockRepository
	AppointmentRepository contracts.AppointmentRepository
	Timeout               time.Duration
}

// Load runs the three reads concurrently. Any failure fails the whole load;
// partial data could show booked or blocked time as open.
func (l *SnapshotLoader) Load(ctx context.Context, professionalID string, from, to models.Date) (*Snapshot, error) {
	if l.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.Timeout)
		defer cancel()
	}

	snap := &Snapshot{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		schedule, err := l.ScheduleRepository.FindByProfessionalID(gctx, professionalID)
		if err != nil {
			return exceptions.ErrAvailabilityReadFailed(err, "working schedule")
		}
		snap.Schedule = schedule
		return nil
	})
	g.Go(func() error {
		blocks, err := l.BlockRepository.FindByProfessionalBetween(gctx, professionalID, from, to)
		if err != nil {
			return exceptions.ErrAvailabilityReadFailed(err, "availability blocks")
		}
		snap.Blocks = blocks
		return nil
	})
	g.Go(func() error {
		appointments, err := l.AppointmentRepository.FindOccupyingByProfessionalBetween(gctx, professionalID, from, to)
		if err != nil {
			return exceptions.ErrAvailabilityReadFailed(err, "appointments")
		}
		snap.Appointments = appointments
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}
