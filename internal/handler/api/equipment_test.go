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

type EquipmentHandlerTestSuite struct {
	suite.Suite
	router              *gin.Engine
	mockCtrl            *gomock.Controller
	mockCommands        *commandsmock.MockEquipmentCommands
	mockQueries         *queriesmock.MockEquipmentQueries
	mockScheduleQueries *queriesmock.MockScheduleQueries
	handler             *api.EquipmentHandler
}

func (s *EquipmentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockEquipmentCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockEquipmentQueries(s.mockCtrl)
	s.mockScheduleQueries = queriesmock.NewMockScheduleQueries(s.mockCtrl)
	s.handler = api.NewEquipmentHandler(s.mockCommands, s.mockQueries, s.mockScheduleQueries)

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		// Mock authenticated user
		c.Set("user_id", uuid.New())
		c.Set("user_role", user.RoleManager)
		c.Next()
	}

	// Setup routes
	s.router.POST("/equipment", authMiddleware, s.handler.CreateEquipment)
	s.router.GET("/equipment", authMiddleware, s.handler.ListEquipment)
	s.router.GET("/equipment/:id", authMiddleware, s.handler.GetEquipment)
	s.router.PUT("/equipment/:id", authMiddleware, s.handler.UpdateEquipment)
	s.router.PATCH("/equipment/:id/status", authMiddleware, s.handler.UpdateEquipmentStatus)
	s.router.DELETE("/equipment/:id", authMiddleware, s.handler.DeactivateEquipment)
	s.router.GET("/equipment/:id/availability", authMiddleware, s.handler.GetAvailability)
	s.router.GET("/equipment/:id/statistics", authMiddleware, s.handler.GetStatistics)
}

func (s *EquipmentHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestEquipmentHandlerSuite(t *testing.T) {
	suite.Run(t, new(EquipmentHandlerTestSuite))
}

// ================================================================================
// TestCreateEquipment
// ================================================================================

func (s *EquipmentHandlerTestSuite) TestCreateEquipment() {
	url := "/equipment"

	reqBody := builder.NewEquipmentBuilder().BuildCreateRequestDTO()
	returnView := builder.NewEquipmentBuilder().BuildViewQuery()

	s.Run("success: returns 201 Created for valid request", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var response resdto.EquipmentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(returnView.Name, response.Name)
		s.Equal(returnView.EquipmentType, response.EquipmentType)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		testCases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing field: name (required)", mutate: testutil.Field("name", nil)},
			{name: "missing field: equipment_type (required)", mutate: testutil.Field("equipment_type", nil)},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: 409 Conflict for duplicate serial number", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), reqBody).
			Return(nil, commands.ErrDuplicateSerialNumber).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Serial number already registered")
	})

	s.Run("error: 422 on domain validation error", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), reqBody).
			Return(nil, commands.ErrDomainValidation).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Invalid equipment")
	})
}

// ================================================================================
// TestGetEquipment / TestListEquipment
// ================================================================================

func (s *EquipmentHandlerTestSuite) TestGetEquipment() {
	equipmentID := uuid.New()
	url := "/equipment/" + equipmentID.String()

	returnView := builder.NewEquipmentBuilder().WithID(equipmentID).BuildViewQuery()

	s.Run("success: returns 200 OK with EquipmentResponse", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), equipmentID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response resdto.EquipmentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(equipmentID, response.ID)
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/equipment/invalid-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})

	s.Run("error: 404 Not Found for missing equipment", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), equipmentID).
			Return(nil, commands.ErrEquipmentNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Equipment not found")
	})
}

func (s *EquipmentHandlerTestSuite) TestListEquipment() {
	views := []*queries.EquipmentView{
		builder.NewEquipmentBuilder().BuildViewQuery(),
		builder.NewEquipmentBuilder().WithName("Crane Liebherr LTM").WithEquipmentType("crane").BuildViewQuery(),
	}

	s.Run("success: returns equipment list", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), false, 0).
			Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/equipment", nil, "bearer-token")

		var response []resdto.EquipmentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, len(views))
	})

	s.Run("success: only_active filter is forwarded", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), true, 5).
			Return(views[:1], nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/equipment?only_active=true&limit=5", nil, "bearer-token")

		var response []resdto.EquipmentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 1)
	})

	s.Run("error: returns 500 Internal Server Error on query error", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), false, 0).
			Return(nil, errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/equipment", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal error")
	})
}

// ================================================================================
// TestUpdateEquipmentStatus / TestDeactivateEquipment
// ================================================================================

func (s *EquipmentHandlerTestSuite) TestUpdateEquipmentStatus() {
	equipmentID := uuid.New()
	url := "/equipment/" + equipmentID.String() + "/status"

	returnView := builder.NewEquipmentBuilder().WithID(equipmentID).WithStatus("maintenance").BuildViewQuery()

	s.Run("success: returns 200 OK with new status", func() {
		s.mockCommands.EXPECT().UpdateStatus(gomock.Any(), equipmentID, "maintenance").
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, gin.H{"status": "maintenance"}, "bearer-token")

		var response resdto.EquipmentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("maintenance", response.Status)
	})

	s.Run("error: 400 Bad Request for unknown status", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, gin.H{"status": "bogus"}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: 422 when leaving retired", func() {
		s.mockCommands.EXPECT().UpdateStatus(gomock.Any(), equipmentID, "available").
			Return(nil, commands.ErrDomainValidation).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, gin.H{"status": "available"}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Invalid equipment")
	})
}

func (s *EquipmentHandlerTestSuite) TestDeactivateEquipment() {
	equipmentID := uuid.New()
	url := "/equipment/" + equipmentID.String()

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().Deactivate(gomock.Any(), equipmentID).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 404 Not Found for missing equipment", func() {
		s.mockCommands.EXPECT().Deactivate(gomock.Any(), equipmentID).
			Return(commands.ErrEquipmentNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Equipment not found")
	})
}

// ================================================================================
// TestGetAvailability
// ================================================================================

func (s *EquipmentHandlerTestSuite) TestGetAvailability() {
	equipmentID := uuid.New()
	baseURL := "/equipment/" + equipmentID.String() + "/availability"
	url := baseURL + "?start_date=2026-03-10&end_date=2026-03-11"

	day1 := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	day2 := day1.Add(24 * time.Hour)

	s.Run("success: one window per day", func() {
		windows := []schedule.AvailabilityWindow{
			{EquipmentID: equipmentID, Date: day1, IsAvailable: true, ScheduledHours: 0},
			{EquipmentID: equipmentID, Date: day2, IsAvailable: true, ScheduledHours: 4},
		}
		s.mockScheduleQueries.EXPECT().GetAvailability(gomock.Any(), equipmentID, day1, day2).
			Return(windows, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response []resdto.AvailabilityWindowResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 2)
		s.Equal("2026-03-10", response[0].Date)
		s.Equal("2026-03-11", response[1].Date)
	})

	s.Run("error: 400 Bad Request when end_date precedes start_date", func() {
		reversed := baseURL + "?start_date=2026-03-11&end_date=2026-03-10"
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, reversed, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid date range")
	})

	s.Run("error: 400 Bad Request when dates are missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, baseURL, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid query")
	})

	s.Run("error: 404 Not Found for missing equipment", func() {
		s.mockScheduleQueries.EXPECT().GetAvailability(gomock.Any(), equipmentID, day1, day2).
			Return(nil, commands.ErrEquipmentNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Equipment not found")
	})
}

// ================================================================================
// TestGetStatistics
// ================================================================================

func (s *EquipmentHandlerTestSuite) TestGetStatistics() {
	equipmentID := uuid.New()
	url := "/equipment/" + equipmentID.String() + "/statistics?start_date=2026-03-01&end_date=2026-03-31"

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	// Inclusive end date: the queried period runs through the end of March 31.
	to := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	s.Run("success: returns 200 OK with statistics", func() {
		stats := &queries.EquipmentStatistics{
			EquipmentID:        equipmentID,
			TotalSchedules:     12,
			ActiveSchedules:    1,
			UpcomingSchedules:  5,
			CompletedSchedules: 4,
			CancelledSchedules: 2,
			ScheduledHours:     96,
			UtilizationRate:    96.0 / 744.0,
		}
		s.mockScheduleQueries.EXPECT().GetStatistics(gomock.Any(), equipmentID, from, to).
			Return(stats, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response resdto.EquipmentStatisticsResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(12, response.TotalSchedules)
		s.InDelta(96.0/744.0, response.UtilizationRate, 1e-9)
	})

	s.Run("error: 404 Not Found for missing equipment", func() {
		s.mockScheduleQueries.EXPECT().GetStatistics(gomock.Any(), equipmentID, from, to).
			Return(nil, commands.ErrEquipmentNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Equipment not found")
	})
}
