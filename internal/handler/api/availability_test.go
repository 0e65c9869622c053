//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"courtbook/internal/handler/api"
	"courtbook/internal/pkg/errs"
	"courtbook/internal/usecase/queries"
	"courtbook/tests/common/httptest"
	queriesmock "courtbook/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AvailabilityHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockAvailabilityQueries
	handler     *api.AvailabilityHandler
}

func (s *AvailabilityHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockAvailabilityQueries(s.mockCtrl)
	s.handler = api.NewAvailabilityHandler(s.mockQueries)

	s.router.GET("/resources/:id/availability", s.handler.GetAvailability)
}

func (s *AvailabilityHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAvailabilityHandlerSuite(t *testing.T) {
	suite.Run(t, new(AvailabilityHandlerTestSuite))
}

func (s *AvailabilityHandlerTestSuite) TestGetAvailability() {
	resourceID := uuid.New()
	url := "/resources/" + resourceID.String() + "/availability?date=2026-07-02"

	s.Run("success: returns the slot grid", func() {
		start := time.Date(2026, 7, 2, 8, 0, 0, 0, time.UTC)
		view := &queries.AvailabilityView{
			ResourceID: resourceID,
			Date:       "2026-07-02",
			Slots: []queries.AvailabilitySlot{
				{Start: start, End: start.Add(time.Hour), Status: queries.SlotAvailable},
				{Start: start.Add(time.Hour), End: start.Add(2 * time.Hour), Status: queries.SlotBooked},
			},
			RemainingDays: 13,
		}
		s.mockQueries.EXPECT().ForDate(gomock.Any(), resourceID, "2026-07-02").Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("2026-07-02", body["date"])
		s.Equal(float64(13), body["windowRemainingDays"])
		slots, ok := body["slots"].([]any)
		s.True(ok)
		s.Len(slots, 2)
	})

	s.Run("success: stale flag survives serialization", func() {
		view := &queries.AvailabilityView{ResourceID: resourceID, Date: "2026-07-02", Stale: true}
		s.mockQueries.EXPECT().ForDate(gomock.Any(), resourceID, "2026-07-02").Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(true, body["stale"])
	})

	s.Run("error: missing date parameter", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/resources/"+resourceID.String()+"/availability", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "VALIDATION")
	})

	s.Run("error: malformed resource id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/resources/nope/availability?date=2026-07-02", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "VALIDATION")
	})

	s.Run("error: unknown resource returns 404", func() {
		s.mockQueries.EXPECT().ForDate(gomock.Any(), resourceID, "2026-07-02").
			Return(nil, errs.Mark(errs.New("missing"), errs.ErrResourceNotFound)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "NOT_FOUND")
	})

	s.Run("error: malformed date returns 400", func() {
		s.mockQueries.EXPECT().ForDate(gomock.Any(), resourceID, "02-07-2026").
			Return(nil, errs.Mark(errs.New("bad date"), errs.ErrInvalidTimeSlot)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/resources/"+resourceID.String()+"/availability?date=02-07-2026", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "VALIDATION")
	})
}
