//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"courtbook/internal/domain/member"
	"courtbook/internal/handler/api"
	reqdto "courtbook/internal/handler/dto/request"
	"courtbook/internal/pkg/errs"
	"courtbook/tests/common/httptest"
	"courtbook/tests/common/testutil"
	commandsmock "courtbook/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type MaintenanceHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockMaintenanceCommands
	handler      *api.MaintenanceHandler
}

func (s *MaintenanceHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockMaintenanceCommands(s.mockCtrl)
	s.handler = api.NewMaintenanceHandler(s.mockCommands)

	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("member_id", uuid.New())
		c.Set("member_role", member.RoleAdmin)
		c.Next()
	}

	s.router.POST("/resources/:id/maintenance", authMiddleware, s.handler.Create)
	s.router.DELETE("/maintenance/:id", authMiddleware, s.handler.Delete)
}

func (s *MaintenanceHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestMaintenanceHandlerSuite(t *testing.T) {
	suite.Run(t, new(MaintenanceHandlerTestSuite))
}

func (s *MaintenanceHandlerTestSuite) TestCreate() {
	resourceID := uuid.New()
	url := "/resources/" + resourceID.String() + "/maintenance"
	reqBody := reqdto.CreateMaintenanceRequest{
		StartAt: time.Date(2026, 7, 5, 8, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2026, 7, 5, 12, 0, 0, 0, time.UTC),
		Reason:  "resurfacing",
	}

	s.Run("success: returns 201 Created with the window id", func() {
		windowID := uuid.New()
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).Return(windowID, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var body map[string]string
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(windowID.String(), body["id"])
	})

	s.Run("error: 400 on validation failures", func() {
		cases := []struct {
			name   string
			mutate func(map[string]any)
		}{
			{name: "missing field: start_at", mutate: testutil.Field("start_at", nil)},
			{name: "missing field: end_at", mutate: testutil.Field("end_at", nil)},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "VALIDATION")
			})
		}
	})

	s.Run("error: inverted window returns 400", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(uuid.Nil, errs.Mark(errs.New("start after end"), errs.ErrInvalidTimeSlot)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "VALIDATION")
	})
}

func (s *MaintenanceHandlerTestSuite) TestDelete() {
	windowID := uuid.New()
	url := "/maintenance/" + windowID.String()

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), windowID).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 404 for a missing window", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), windowID).
			Return(errs.Mark(errs.New("missing"), errs.ErrMaintenanceNotFound)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "NOT_FOUND")
	})
}
