package api

import (
	"errors"
	"net/http"

	"equipsched/internal/domain/schedule"
	reqdto "equipsched/internal/handler/dto/request"
	resdto "equipsched/internal/handler/dto/response"
	"equipsched/internal/handler/httperr"
	"equipsched/internal/handler/middleware"
	"equipsched/internal/infra"
	"equipsched/internal/pkg/errs"
	"equipsched/internal/usecase/commands"
	"equipsched/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ScheduleHandler struct {
	scheduleCommands commands.ScheduleCommands
	scheduleQueries  queries.ScheduleQueries
}

func NewScheduleHandler(scheduleCommands commands.ScheduleCommands, scheduleQueries queries.ScheduleQueries) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleCommands: scheduleCommands,
		scheduleQueries:  scheduleQueries,
	}
}

// @Summary Create schedule
// @Description Book one piece of equipment for a half-open time interval
// @Tags schedules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateScheduleRequest true "Schedule request"
// @Success 201 {object} resdto.ScheduleResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} resdto.ConflictCheckResponse
// @Failure 422 {object} map[string]string
// @Router /schedules [post]
func (h *ScheduleHandler) CreateSchedule(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.New("user id missing from context"), "Unauthorized", nil)
		return
	}

	var req reqdto.CreateScheduleRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	view, err := h.scheduleCommands.Create(c.Request.Context(), req, userID)
	if err != nil {
		h.respondScheduleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromScheduleView(view))
}

// @Summary Get schedule
// @Description Get schedule by ID
// @Tags schedules
// @Produce json
// @Security BearerAuth
// @Param id path string true "Schedule ID"
// @Success 200 {object} resdto.ScheduleResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /schedules/{id} [get]
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	view, err := h.scheduleQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromScheduleView(view))
}

// @Summary List schedules
// @Description List schedules with optional equipment, project, operator, status, and period filters
// @Tags schedules
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.ScheduleListResponse
// @Failure 400 {object} map[string]string
// @Router /schedules [get]
func (h *ScheduleHandler) ListSchedules(c *gin.Context) {
	var query reqdto.ListSchedulesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}

	filters := queries.ScheduleFilters{
		EquipmentID: query.EquipmentID,
		ProjectID:   query.ProjectID,
		OperatorID:  query.OperatorID,
		Status:      query.Status,
		From:        query.From,
		To:          query.To,
	}

	items, err := h.scheduleQueries.List(c.Request.Context(), filters, query.Limit)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}

	response := make([]*resdto.ScheduleListResponse, len(items))
	for i, item := range items {
		response[i] = resdto.FromScheduleListItem(item)
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Update schedule
// @Description Reschedule and reassign an existing schedule
// @Tags schedules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Schedule ID"
// @Param request body reqdto.UpdateScheduleRequest true "Schedule update"
// @Success 200 {object} resdto.ScheduleResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} resdto.ConflictCheckResponse
// @Failure 422 {object} map[string]string
// @Router /schedules/{id} [put]
func (h *ScheduleHandler) UpdateSchedule(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req reqdto.UpdateScheduleRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	view, err := h.scheduleCommands.Update(c.Request.Context(), id, req)
	if err != nil {
		h.respondScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromScheduleView(view))
}

// @Summary Update schedule status
// @Description Move a schedule through its lifecycle
// @Tags schedules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Schedule ID"
// @Param request body reqdto.UpdateScheduleStatusRequest true "Status update"
// @Success 200 {object} resdto.ScheduleResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /schedules/{id}/status [patch]
func (h *ScheduleHandler) UpdateScheduleStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req reqdto.UpdateScheduleStatusRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	view, err := h.scheduleCommands.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.respondScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromScheduleView(view))
}

// @Summary Cancel schedule
// @Description Cancel a schedule; the slot becomes available again
// @Tags schedules
// @Security BearerAuth
// @Param id path string true "Schedule ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /schedules/{id} [delete]
func (h *ScheduleHandler) CancelSchedule(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.scheduleCommands.Cancel(c.Request.Context(), id); err != nil {
		h.respondScheduleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Check conflicts
// @Description Report every overlap a candidate slot has with existing schedules
// @Tags schedules
// @Produce json
// @Security BearerAuth
// @Param equipment_id query string true "Equipment ID"
// @Param start_time query string true "Candidate start (RFC3339)"
// @Param end_time query string true "Candidate end (RFC3339)"
// @Param exclude_id query string false "Schedule ID to exclude"
// @Success 200 {object} resdto.ConflictCheckResponse
// @Failure 400 {object} map[string]string
// @Router /schedules/conflicts/check [get]
func (h *ScheduleHandler) CheckConflicts(c *gin.Context) {
	var query reqdto.CheckConflictsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}

	conflicts, err := h.scheduleQueries.CheckConflicts(
		c.Request.Context(), query.EquipmentID, query.StartTime, query.EndTime, query.ExcludeID,
	)
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidInterval) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "End time must be after start time", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.ConflictCheckResponse{
		HasConflicts: len(conflicts) > 0,
		Conflicts:    resdto.FromConflicts(conflicts),
	})
}

func (h *ScheduleHandler) respondScheduleError(c *gin.Context, err error) {
	var conflictErr *commands.ConflictError
	if errors.As(err, &conflictErr) {
		// The full conflict list rides in the detail field so clients can
		// render each overlap.
		httperr.AbortWithError(c, http.StatusConflict, err, "Schedule conflict", resdto.ConflictCheckResponse{
			HasConflicts: true,
			Conflicts:    resdto.FromConflicts(conflictErr.Conflicts),
		})
		return
	}

	switch {
	case errors.Is(err, commands.ErrScheduleNotFound),
		infraNotFound(err):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
	case errors.Is(err, commands.ErrEquipmentNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Equipment not found", nil)
	case errors.Is(err, commands.ErrEquipmentNotSchedulable):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Equipment cannot be scheduled", nil)
	case errors.Is(err, commands.ErrScheduleConflict):
		httperr.AbortWithError(c, http.StatusConflict, err, "Schedule conflict", nil)
	case errors.Is(err, commands.ErrDomainValidation):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Invalid schedule", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
	}
}

func infraNotFound(err error) bool {
	return infra.IsKind(err, infra.KindNotFound)
}

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return uuid.Nil, false
	}
	return id, true
}
