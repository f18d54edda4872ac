package api

import (
	"errors"
	"net/http"
	"time"

	reqdto "equipsched/internal/handler/dto/request"
	resdto "equipsched/internal/handler/dto/response"
	"equipsched/internal/handler/httperr"
	"equipsched/internal/pkg/errs"
	"equipsched/internal/usecase/commands"
	"equipsched/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type EquipmentHandler struct {
	equipmentCommands commands.EquipmentCommands
	equipmentQueries  queries.EquipmentQueries
	scheduleQueries   queries.ScheduleQueries
}

func NewEquipmentHandler(
	equipmentCommands commands.EquipmentCommands,
	equipmentQueries queries.EquipmentQueries,
	scheduleQueries queries.ScheduleQueries,
) *EquipmentHandler {
	return &EquipmentHandler{
		equipmentCommands: equipmentCommands,
		equipmentQueries:  equipmentQueries,
		scheduleQueries:   scheduleQueries,
	}
}

// @Summary Create equipment
// @Description Register a new piece of equipment in the fleet
// @Tags equipment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateEquipmentRequest true "Equipment request"
// @Success 201 {object} resdto.EquipmentResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /equipment [post]
func (h *EquipmentHandler) CreateEquipment(c *gin.Context) {
	var req reqdto.CreateEquipmentRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	view, err := h.equipmentCommands.Create(c.Request.Context(), req)
	if err != nil {
		h.respondEquipmentError(c, err)
		return
	}

	h.respondEquipmentView(c, http.StatusCreated, view)
}

// @Summary Get equipment
// @Description Get equipment by ID
// @Tags equipment
// @Produce json
// @Security BearerAuth
// @Param id path string true "Equipment ID"
// @Success 200 {object} resdto.EquipmentResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /equipment/{id} [get]
func (h *EquipmentHandler) GetEquipment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	view, err := h.equipmentQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondEquipmentError(c, err)
		return
	}

	h.respondEquipmentView(c, http.StatusOK, view)
}

// @Summary List equipment
// @Description List equipment, optionally limited to active machines
// @Tags equipment
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.EquipmentResponse
// @Failure 400 {object} map[string]string
// @Router /equipment [get]
func (h *EquipmentHandler) ListEquipment(c *gin.Context) {
	var query reqdto.ListEquipmentQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}

	views, err := h.equipmentQueries.List(c.Request.Context(), query.OnlyActive, query.Limit)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}

	response, err := resdto.FromEquipmentViews(views)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Update equipment
// @Description Update equipment master data
// @Tags equipment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Equipment ID"
// @Param request body reqdto.UpdateEquipmentRequest true "Equipment update"
// @Success 200 {object} resdto.EquipmentResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /equipment/{id} [put]
func (h *EquipmentHandler) UpdateEquipment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req reqdto.UpdateEquipmentRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	view, err := h.equipmentCommands.Update(c.Request.Context(), id, req)
	if err != nil {
		h.respondEquipmentError(c, err)
		return
	}

	h.respondEquipmentView(c, http.StatusOK, view)
}

// @Summary Update equipment status
// @Description Change the operational status of equipment
// @Tags equipment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Equipment ID"
// @Param request body reqdto.UpdateEquipmentStatusRequest true "Status update"
// @Success 200 {object} resdto.EquipmentResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /equipment/{id}/status [patch]
func (h *EquipmentHandler) UpdateEquipmentStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req reqdto.UpdateEquipmentStatusRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	view, err := h.equipmentCommands.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.respondEquipmentError(c, err)
		return
	}

	h.respondEquipmentView(c, http.StatusOK, view)
}

// @Summary Deactivate equipment
// @Description Soft-delete equipment; existing schedules are kept
// @Tags equipment
// @Security BearerAuth
// @Param id path string true "Equipment ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /equipment/{id} [delete]
func (h *EquipmentHandler) DeactivateEquipment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.equipmentCommands.Deactivate(c.Request.Context(), id); err != nil {
		h.respondEquipmentError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Get equipment availability
// @Description Per-day availability windows over a date range
// @Tags equipment
// @Produce json
// @Security BearerAuth
// @Param id path string true "Equipment ID"
// @Param start_date query string true "Range start (YYYY-MM-DD)"
// @Param end_date query string true "Range end (YYYY-MM-DD), inclusive"
// @Success 200 {array} resdto.AvailabilityWindowResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /equipment/{id}/availability [get]
func (h *EquipmentHandler) GetAvailability(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var query reqdto.AvailabilityQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	if query.EndDate.Before(query.StartDate) {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.New("end_date before start_date"), "Invalid date range", nil)
		return
	}

	windows, err := h.scheduleQueries.GetAvailability(c.Request.Context(), id, query.StartDate, query.EndDate)
	if err != nil {
		h.respondEquipmentError(c, err)
		return
	}

	response := make([]resdto.AvailabilityWindowResponse, len(windows))
	for i, w := range windows {
		response[i] = resdto.FromAvailabilityWindow(w)
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Get equipment statistics
// @Description Scheduling load and utilization over a period
// @Tags equipment
// @Produce json
// @Security BearerAuth
// @Param id path string true "Equipment ID"
// @Param start_date query string true "Period start (YYYY-MM-DD)"
// @Param end_date query string true "Period end (YYYY-MM-DD), inclusive"
// @Success 200 {object} resdto.EquipmentStatisticsResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /equipment/{id}/statistics [get]
func (h *EquipmentHandler) GetStatistics(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var query reqdto.StatisticsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	if query.EndDate.Before(query.StartDate) {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.New("end_date before start_date"), "Invalid date range", nil)
		return
	}

	// Inclusive date range becomes the half-open period [start, end+24h).
	stats, err := h.scheduleQueries.GetStatistics(c.Request.Context(), id, query.StartDate, query.EndDate.Add(24*time.Hour))
	if err != nil {
		h.respondEquipmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromEquipmentStatistics(stats))
}

func (h *EquipmentHandler) respondEquipmentView(c *gin.Context, status int, view *queries.EquipmentView) {
	response, err := resdto.FromEquipmentView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}
	c.JSON(status, response)
}

func (h *EquipmentHandler) respondEquipmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrEquipmentNotFound),
		infraNotFound(err):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Equipment not found", nil)
	case errors.Is(err, commands.ErrDuplicateSerialNumber):
		httperr.AbortWithError(c, http.StatusConflict, err, "Serial number already registered", nil)
	case errors.Is(err, commands.ErrDomainValidation):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Invalid equipment", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
	}
}
