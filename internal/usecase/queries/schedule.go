package queries

import (
	"context"
	"time"

	"equipsched/internal/domain/schedule"
	"equipsched/internal/pkg/errs"

	"github.com/google/uuid"
)

// ScheduleReadStore is the read-side port implemented by the pgx readstore.
type ScheduleReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ScheduleView, error)
	List(ctx context.Context, filters ScheduleFilters, limit int) ([]*ScheduleListItem, error)
	// FindBlockingByEquipment returns the reconstructed domain schedules of
	// one equipment that intersect [from, to) and are not cancelled. The
	// conflict engine runs over this snapshot.
	FindBlockingByEquipment(ctx context.Context, equipmentID uuid.UUID, from, to time.Time) ([]*schedule.Schedule, error)
	CountByStatus(ctx context.Context, equipmentID uuid.UUID, from, to time.Time) (map[string]int, error)
}

type EquipmentReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*EquipmentView, error)
	List(ctx context.Context, onlyActive bool, limit int) ([]*EquipmentView, error)
}

type ScheduleQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ScheduleView, error)
	List(ctx context.Context, filters ScheduleFilters, limit int) ([]*ScheduleListItem, error)
	CheckConflicts(ctx context.Context, equipmentID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]schedule.Conflict, error)
	GetAvailability(ctx context.Context, equipmentID uuid.UUID, from, to time.Time) ([]schedule.AvailabilityWindow, error)
	GetStatistics(ctx context.Context, equipmentID uuid.UUID, from, to time.Time) (*EquipmentStatistics, error)
}

type scheduleQueriesImpl struct {
	scheduleStore  ScheduleReadStore
	equipmentStore EquipmentReadStore
}

func NewScheduleQueries(scheduleStore ScheduleReadStore, equipmentStore EquipmentReadStore) ScheduleQueries {
	return &scheduleQueriesImpl{
		scheduleStore:  scheduleStore,
		equipmentStore: equipmentStore,
	}
}

func (q *scheduleQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ScheduleView, error) {
	return q.scheduleStore.FindByID(ctx, id)
}

func (q *scheduleQueriesImpl) List(ctx context.Context, filters ScheduleFilters, limit int) ([]*ScheduleListItem, error) {
	return q.scheduleStore.List(ctx, filters, ValidateLimit(limit))
}

// CheckConflicts runs the pure conflict engine over the current snapshot of
// the equipment's blocking schedules. It backs the pre-submit warning in the
// scheduling form; the same engine guards the write path.
func (q *scheduleQueriesImpl) CheckConflicts(ctx context.Context, equipmentID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]schedule.Conflict, error) {
	slot, err := schedule.NewInterval(start, end)
	if err != nil {
		return nil, err
	}

	existing, err := q.scheduleStore.FindBlockingByEquipment(ctx, equipmentID, start, end)
	if err != nil {
		return nil, errs.Wrap(err, "failed to load schedules for conflict check")
	}

	result, err := schedule.ValidateCandidate(schedule.Candidate{
		EquipmentID: equipmentID,
		Slot:        slot,
		ExcludeID:   excludeID,
	}, existing)
	if err != nil {
		return nil, err
	}
	return result.Conflicts, nil
}

// GetAvailability computes one AvailabilityWindow per day in [from, to].
// Day boundaries follow the timestamps' location; no timezone conversion
// happens below the handler layer.
func (q *scheduleQueriesImpl) GetAvailability(ctx context.Context, equipmentID uuid.UUID, from, to time.Time) ([]schedule.AvailabilityWindow, error) {
	if _, err := q.equipmentStore.FindByID(ctx, equipmentID); err != nil {
		return nil, err
	}

	firstDay := truncateToDay(from)
	lastDay := truncateToDay(to)

	rangeEnd := lastDay.Add(24 * time.Hour)
	existing, err := q.scheduleStore.FindBlockingByEquipment(ctx, equipmentID, firstDay, rangeEnd)
	if err != nil {
		return nil, errs.Wrap(err, "failed to load schedules for availability")
	}

	windows := make([]schedule.AvailabilityWindow, 0)
	for day := firstDay; !day.After(lastDay); day = day.Add(24 * time.Hour) {
		windows = append(windows, schedule.ComputeAvailability(equipmentID, day, existing, nil))
	}
	return windows, nil
}

func (q *scheduleQueriesImpl) GetStatistics(ctx context.Context, equipmentID uuid.UUID, from, to time.Time) (*EquipmentStatistics, error) {
	if _, err := q.equipmentStore.FindByID(ctx, equipmentID); err != nil {
		return nil, err
	}

	counts, err := q.scheduleStore.CountByStatus(ctx, equipmentID, from, to)
	if err != nil {
		return nil, errs.Wrap(err, "failed to count schedules")
	}

	existing, err := q.scheduleStore.FindBlockingByEquipment(ctx, equipmentID, from, to)
	if err != nil {
		return nil, errs.Wrap(err, "failed to load schedules for statistics")
	}

	period, err := schedule.NewInterval(from, to)
	if err != nil {
		return nil, err
	}

	var scheduledHours float64
	for _, s := range existing {
		if clipped, ok := period.Intersection(s.Slot()); ok {
			scheduledHours += clipped.Hours()
		}
	}

	stats := &EquipmentStatistics{
		EquipmentID:        equipmentID,
		TotalSchedules:     sumCounts(counts),
		ActiveSchedules:    counts[schedule.StatusActive.String()],
		UpcomingSchedules:  counts[schedule.StatusScheduled.String()],
		CompletedSchedules: counts[schedule.StatusCompleted.String()],
		CancelledSchedules: counts[schedule.StatusCancelled.String()],
		ScheduledHours:     scheduledHours,
	}
	if periodHours := period.Hours(); periodHours > 0 {
		stats.UtilizationRate = scheduledHours / periodHours
	}
	if blocking := len(existing); blocking > 0 {
		var total float64
		for _, s := range existing {
			total += s.Slot().Hours()
		}
		stats.AverageScheduleDuration = total / float64(blocking)
	}
	return stats, nil
}

func sumCounts(counts map[string]int) int {
	total := 0
	for _, n := range counts {
		total += n
	}
	return total
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
