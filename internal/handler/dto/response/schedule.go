package response

import (
	"time"

	"equipsched/internal/domain/schedule"
	"equipsched/internal/usecase/queries"

	"github.com/google/uuid"
)

type ScheduleResponse struct {
	ID            uuid.UUID  `json:"id"`
	EquipmentID   uuid.UUID  `json:"equipmentId"`
	EquipmentName string     `json:"equipmentName"`
	StartTime     time.Time  `json:"startTime"`
	EndTime       time.Time  `json:"endTime"`
	Status        string     `json:"status"`
	ProjectID     *uuid.UUID `json:"projectId,omitempty"`
	OperatorID    *uuid.UUID `json:"operatorId,omitempty"`
	OperatorName  *string    `json:"operatorName,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
	CreatedBy     uuid.UUID  `json:"createdBy"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

type ScheduleListResponse struct {
	ID            uuid.UUID `json:"id"`
	EquipmentID   uuid.UUID `json:"equipmentId"`
	EquipmentName string    `json:"equipmentName"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

type ConflictResponse struct {
	EquipmentID           uuid.UUID `json:"equipmentId"`
	ConflictingScheduleID uuid.UUID `json:"conflictingScheduleId"`
	OverlapStart          time.Time `json:"overlapStart"`
	OverlapEnd            time.Time `json:"overlapEnd"`
	OverlapHours          float64   `json:"overlapHours"`
	Type                  string    `json:"type"`
}

type ConflictCheckResponse struct {
	HasConflicts bool               `json:"hasConflicts"`
	Conflicts    []ConflictResponse `json:"conflicts"`
}

type PeriodResponse struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

type AvailabilityWindowResponse struct {
	EquipmentID      uuid.UUID          `json:"equipmentId"`
	Date             string             `json:"date"`
	IsAvailable      bool               `json:"isAvailable"`
	ScheduledHours   float64            `json:"scheduledHours"`
	AvailablePeriods []PeriodResponse   `json:"availablePeriods"`
	Conflicts        []ConflictResponse `json:"conflicts,omitempty"`
}

type EquipmentStatisticsResponse struct {
	EquipmentID             uuid.UUID `json:"equipmentId"`
	TotalSchedules          int       `json:"totalSchedules"`
	ActiveSchedules         int       `json:"activeSchedules"`
	UpcomingSchedules       int       `json:"upcomingSchedules"`
	CompletedSchedules      int       `json:"completedSchedules"`
	CancelledSchedules      int       `json:"cancelledSchedules"`
	ScheduledHours          float64   `json:"scheduledHours"`
	UtilizationRate         float64   `json:"utilizationRate"`
	AverageScheduleDuration float64   `json:"averageScheduleDuration"`
}

func FromScheduleView(view *queries.ScheduleView) *ScheduleResponse {
	return &ScheduleResponse{
		ID:            view.ID,
		EquipmentID:   view.EquipmentID,
		EquipmentName: view.EquipmentName,
		StartTime:     view.StartTime,
		EndTime:       view.EndTime,
		Status:        view.Status,
		ProjectID:     view.ProjectID,
		OperatorID:    view.OperatorID,
		OperatorName:  view.OperatorName,
		Notes:         view.Notes,
		CreatedBy:     view.CreatedBy,
		CreatedAt:     view.CreatedAt,
		UpdatedAt:     view.UpdatedAt,
	}
}

func FromScheduleListItem(item *queries.ScheduleListItem) *ScheduleListResponse {
	return &ScheduleListResponse{
		ID:            item.ID,
		EquipmentID:   item.EquipmentID,
		EquipmentName: item.EquipmentName,
		StartTime:     item.StartTime,
		EndTime:       item.EndTime,
		Status:        item.Status,
		CreatedAt:     item.CreatedAt,
	}
}

func FromConflicts(conflicts []schedule.Conflict) []ConflictResponse {
	result := make([]ConflictResponse, len(conflicts))
	for i, c := range conflicts {
		result[i] = ConflictResponse{
			EquipmentID:           c.EquipmentID,
			ConflictingScheduleID: c.ConflictingScheduleID,
			OverlapStart:          c.OverlapStart,
			OverlapEnd:            c.OverlapEnd,
			OverlapHours:          c.OverlapHours,
			Type:                  string(c.Type),
		}
	}
	return result
}

func FromAvailabilityWindow(w schedule.AvailabilityWindow) AvailabilityWindowResponse {
	periods := make([]PeriodResponse, len(w.AvailablePeriods))
	for i, p := range w.AvailablePeriods {
		periods[i] = PeriodResponse{StartTime: p.Start(), EndTime: p.End()}
	}
	return AvailabilityWindowResponse{
		EquipmentID:      w.EquipmentID,
		Date:             w.Date.Format("2006-01-02"),
		IsAvailable:      w.IsAvailable,
		ScheduledHours:   w.ScheduledHours,
		AvailablePeriods: periods,
		Conflicts:        FromConflicts(w.Conflicts),
	}
}

func FromEquipmentStatistics(stats *queries.EquipmentStatistics) *EquipmentStatisticsResponse {
	return &EquipmentStatisticsResponse{
		EquipmentID:             stats.EquipmentID,
		TotalSchedules:          stats.TotalSchedules,
		ActiveSchedules:         stats.ActiveSchedules,
		UpcomingSchedules:       stats.UpcomingSchedules,
		CompletedSchedules:      stats.CompletedSchedules,
		CancelledSchedules:      stats.CancelledSchedules,
		ScheduledHours:          stats.ScheduledHours,
		UtilizationRate:         stats.UtilizationRate,
		AverageScheduleDuration: stats.AverageScheduleDuration,
	}
}
