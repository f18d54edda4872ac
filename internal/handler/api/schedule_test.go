//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"equipsched/internal/domain/schedule"
	"equipsched/internal/domain/user"
	"equipsched/internal/handler/api"
	resdto "equipsched/internal/handler/dto/response"
	"equipsched/internal/usecase/commands"
	"equipsched/internal/usecase/queries"
	"equipsched/tests/common/builder"
	"equipsched/tests/common/httptest"
	"equipsched/tests/common/testutil"
	commandsmock "equipsched/tests/mock/commands"
	queriesmock "equipsched/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ScheduleHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockScheduleCommands
	mockQueries  *queriesmock.MockScheduleQueries
	handler      *api.ScheduleHandler
}

func (s *ScheduleHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockScheduleCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockScheduleQueries(s.mockCtrl)
	s.handler = api.NewScheduleHandler(s.mockCommands, s.mockQueries)

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		// Mock authenticated user
		c.Set("user_id", uuid.New())
		c.Set("user_role", user.RoleOperator)
		c.Next()
	}

	// Setup routes
	s.router.POST("/schedules", authMiddleware, s.handler.CreateSchedule)
	s.router.GET("/schedules", authMiddleware, s.handler.ListSchedules)
	s.router.GET("/schedules/conflicts/check", authMiddleware, s.handler.CheckConflicts)
	s.router.GET("/schedules/:id", authMiddleware, s.handler.GetSchedule)
	s.router.PUT("/schedules/:id", authMiddleware, s.handler.UpdateSchedule)
	s.router.PATCH("/schedules/:id/status", authMiddleware, s.handler.UpdateScheduleStatus)
	s.router.DELETE("/schedules/:id", authMiddleware, s.handler.CancelSchedule)
}

func (s *ScheduleHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestScheduleHandlerSuite(t *testing.T) {
	suite.Run(t, new(ScheduleHandlerTestSuite))
}

type testCaseSchedule struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

// ================================================================================
// TestCreateSchedule
// ================================================================================

func (s *ScheduleHandlerTestSuite) TestCreateSchedule() {
	url := "/schedules"

	reqBody := builder.NewScheduleBuilder().BuildCreateRequestDTO()
	returnView := builder.NewScheduleBuilder().BuildViewQuery()

	missing := []testCaseSchedule{
		{name: "missing field: equipment_id (required)", mutate: testutil.Field("equipment_id", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: start_time (required)", mutate: testutil.Field("start_time", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: end_time (required)", mutate: testutil.Field("end_time", nil), expectCode: http.StatusBadRequest},
		{name: "malformed start_time", mutate: testutil.Field("start_time", "not-a-time"), expectCode: http.StatusBadRequest},
	}

	s.Run("success: returns 201 Created for valid request", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var response resdto.ScheduleResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(returnView.ID, response.ID)
		s.Equal(returnView.EquipmentID, response.EquipmentID)
		s.Equal(returnView.Status, response.Status)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		for _, tc := range missing {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
			})
		}
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: 409 Conflict carries the full conflict list", func() {
		existingID := uuid.New()
		conflictErr := &commands.ConflictError{Conflicts: []schedule.Conflict{
			{
				EquipmentID:           reqBody.EquipmentID,
				ConflictingScheduleID: existingID,
				OverlapStart:          reqBody.StartTime,
				OverlapEnd:            reqBody.EndTime,
				OverlapHours:          4,
				Type:                  schedule.FullOverlap,
			},
		}}
		s.mockCommands.EXPECT().Create(gomock.Any(), reqBody, gomock.Any()).
			Return(nil, conflictErr).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Schedule conflict")

		var errorBody struct {
			Detail resdto.ConflictCheckResponse `json:"detail"`
		}
		httptest.DecodeResponseBody(s.T(), rec.Body, &errorBody)
		s.True(errorBody.Detail.HasConflicts)
		s.Len(errorBody.Detail.Conflicts, 1)
		s.Equal(existingID, errorBody.Detail.Conflicts[0].ConflictingScheduleID)
		s.Equal("full_overlap", errorBody.Detail.Conflicts[0].Type)
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "equipment not found",
				commandsError:  commands.ErrEquipmentNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Equipment not found",
			},
			{
				name:           "equipment not schedulable",
				commandsError:  commands.ErrEquipmentNotSchedulable,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "Equipment cannot be scheduled",
			},
			{
				name:           "exclusion constraint race",
				commandsError:  commands.ErrScheduleConflict,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "Schedule conflict",
			},
			{
				name:           "domain validation error",
				commandsError:  commands.ErrDomainValidation,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "Invalid schedule",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Create(gomock.Any(), reqBody, gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestGetSchedule
// ================================================================================

func (s *ScheduleHandlerTestSuite) TestGetSchedule() {
	scheduleID := uuid.New()
	url := "/schedules/" + scheduleID.String()

	returnView := builder.NewScheduleBuilder().WithID(scheduleID).BuildViewQuery()

	s.Run("success: returns 200 OK with ScheduleResponse", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), scheduleID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response resdto.ScheduleResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(scheduleID, response.ID)
		s.Equal(returnView.EquipmentName, response.EquipmentName)
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/schedules/invalid-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})

	s.Run("error: 404 Not Found for missing schedule", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), scheduleID).
			Return(nil, commands.ErrScheduleNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Not found")
	})
}

// ================================================================================
// TestListSchedules
// ================================================================================

func (s *ScheduleHandlerTestSuite) TestListSchedules() {
	baseURL := "/schedules"

	items := []*queries.ScheduleListItem{
		builder.NewScheduleBuilder().BuildListItem(),
		builder.NewScheduleBuilder().WithStatus("active").BuildListItem(),
	}

	s.Run("success: returns schedule list", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), queries.ScheduleFilters{}, 0).
			Return(items, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, baseURL, nil, "bearer-token")

		var response []resdto.ScheduleListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, len(items))
	})

	s.Run("success: filters are forwarded", func() {
		equipmentID := uuid.New()
		status := "scheduled"
		expectedFilters := queries.ScheduleFilters{EquipmentID: &equipmentID, Status: &status}

		s.mockQueries.EXPECT().List(gomock.Any(), expectedFilters, 10).
			Return(items[:1], nil).Times(1)

		url := baseURL + "?equipment_id=" + equipmentID.String() + "&status=scheduled&limit=10"
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response []resdto.ScheduleListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 1)
	})

	s.Run("error: 400 Bad Request for unknown status filter", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, baseURL+"?status=bogus", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid query")
	})

	s.Run("error: returns 500 Internal Server Error on query error", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), queries.ScheduleFilters{}, 0).
			Return(nil, errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, baseURL, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal error")
	})
}

// ================================================================================
// TestUpdateSchedule
// ================================================================================

func (s *ScheduleHandlerTestSuite) TestUpdateSchedule() {
	scheduleID := uuid.New()
	url := "/schedules/" + scheduleID.String()

	reqBody := builder.NewScheduleBuilder().BuildUpdateRequestDTO()
	returnView := builder.NewScheduleBuilder().WithID(scheduleID).BuildViewQuery()

	s.Run("success: returns 200 OK with updated schedule", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), scheduleID, gomock.Any()).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "bearer-token")

		var response resdto.ScheduleResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(scheduleID, response.ID)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		testCases := []testCaseSchedule{
			{name: "missing field: start_time (required)", mutate: testutil.Field("start_time", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: end_time (required)", mutate: testutil.Field("end_time", nil), expectCode: http.StatusBadRequest},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, requestMap, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
			})
		}
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "schedule not found",
				commandsError:  commands.ErrScheduleNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Not found",
			},
			{
				name:           "slot taken",
				commandsError:  commands.ErrScheduleConflict,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "Schedule conflict",
			},
			{
				name:           "editing a completed schedule",
				commandsError:  commands.ErrDomainValidation,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "Invalid schedule",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Update(gomock.Any(), scheduleID, reqBody).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestUpdateScheduleStatus
// ================================================================================

func (s *ScheduleHandlerTestSuite) TestUpdateScheduleStatus() {
	scheduleID := uuid.New()
	url := "/schedules/" + scheduleID.String() + "/status"

	returnView := builder.NewScheduleBuilder().WithID(scheduleID).WithStatus("active").BuildViewQuery()

	s.Run("success: returns 200 OK with new status", func() {
		s.mockCommands.EXPECT().UpdateStatus(gomock.Any(), scheduleID, "active").
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, gin.H{"status": "active"}, "bearer-token")

		var response resdto.ScheduleResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("active", response.Status)
	})

	s.Run("error: 400 Bad Request for unknown status", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, gin.H{"status": "bogus"}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: 422 on invalid lifecycle transition", func() {
		s.mockCommands.EXPECT().UpdateStatus(gomock.Any(), scheduleID, "scheduled").
			Return(nil, commands.ErrDomainValidation).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, gin.H{"status": "scheduled"}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Invalid schedule")
	})
}

// ================================================================================
// TestCancelSchedule
// ================================================================================

func (s *ScheduleHandlerTestSuite) TestCancelSchedule() {
	scheduleID := uuid.New()
	url := "/schedules/" + scheduleID.String()

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), scheduleID).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/schedules/invalid-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})

	s.Run("error: 404 Not Found for missing schedule", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), scheduleID).
			Return(commands.ErrScheduleNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Not found")
	})

	s.Run("error: 422 when already cancelled", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), scheduleID).
			Return(commands.ErrDomainValidation).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Invalid schedule")
	})
}

// ================================================================================
// TestCheckConflicts
// ================================================================================

func (s *ScheduleHandlerTestSuite) TestCheckConflicts() {
	equipmentID := uuid.New()
	start := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	end := start.Add(4 * time.Hour)
	url := "/schedules/conflicts/check" +
		"?equipment_id=" + equipmentID.String() +
		"&start_time=" + start.Format(time.RFC3339) +
		"&end_time=" + end.Format(time.RFC3339)

	s.Run("success: no conflicts", func() {
		s.mockQueries.EXPECT().CheckConflicts(gomock.Any(), equipmentID, start, end, (*uuid.UUID)(nil)).
			Return(nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response resdto.ConflictCheckResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.False(response.HasConflicts)
		s.Empty(response.Conflicts)
	})

	s.Run("success: reports each overlap", func() {
		conflicts := []schedule.Conflict{
			{
				EquipmentID:           equipmentID,
				ConflictingScheduleID: uuid.New(),
				OverlapStart:          start,
				OverlapEnd:            start.Add(2 * time.Hour),
				OverlapHours:          2,
				Type:                  schedule.PartialOverlap,
			},
			{
				EquipmentID:           equipmentID,
				ConflictingScheduleID: uuid.New(),
				OverlapStart:          start.Add(2 * time.Hour),
				OverlapEnd:            end,
				OverlapHours:          2,
				Type:                  schedule.FullOverlap,
			},
		}
		s.mockQueries.EXPECT().CheckConflicts(gomock.Any(), equipmentID, start, end, (*uuid.UUID)(nil)).
			Return(conflicts, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response resdto.ConflictCheckResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.True(response.HasConflicts)
		s.Len(response.Conflicts, 2)
		s.Equal("partial_overlap", response.Conflicts[0].Type)
	})

	s.Run("success: exclude_id is forwarded", func() {
		excludeID := uuid.New()
		s.mockQueries.EXPECT().CheckConflicts(gomock.Any(), equipmentID, start, end, &excludeID).
			Return(nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"&exclude_id="+excludeID.String(), nil, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 Bad Request when end is not after start", func() {
		s.mockQueries.EXPECT().CheckConflicts(gomock.Any(), equipmentID, end, start, (*uuid.UUID)(nil)).
			Return(nil, schedule.ErrInvalidInterval).Times(1)

		reversed := "/schedules/conflicts/check" +
			"?equipment_id=" + equipmentID.String() +
			"&start_time=" + end.Format(time.RFC3339) +
			"&end_time=" + start.Format(time.RFC3339)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, reversed, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "End time must be after start time")
	})

	s.Run("error: 400 Bad Request when equipment_id is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/schedules/conflicts/check", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid query")
	})
}
