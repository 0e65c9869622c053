//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"courtbook/internal/domain/member"
	"courtbook/internal/handler/api"
	"courtbook/internal/pkg/errs"
	"courtbook/internal/usecase/queries"
	"courtbook/tests/common/builder"
	"courtbook/tests/common/httptest"
	"courtbook/tests/common/testutil"
	commandsmock "courtbook/tests/mock/commands"
	queriesmock "courtbook/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockReservationCommands
	mockQueries  *queriesmock.MockReservationQueries
	handler      *api.ReservationHandler
	memberID     uuid.UUID
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockReservationCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockReservationQueries(s.mockCtrl)
	s.handler = api.NewReservationHandler(s.mockCommands, s.mockQueries)
	s.memberID = uuid.New()

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("member_id", s.memberID)
		c.Set("member_role", member.RoleMember)
		c.Next()
	}

	s.router.POST("/bookings", authMiddleware, s.handler.CreateBooking)
	s.router.GET("/bookings", authMiddleware, s.handler.ListBookings)
	s.router.GET("/bookings/:id", authMiddleware, s.handler.GetBooking)
	s.router.DELETE("/bookings/:id", authMiddleware, s.handler.CancelBooking)
}

func (s *ReservationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

func (s *ReservationHandlerTestSuite) TestCreateBooking() {
	url := "/bookings"
	reqBody := builder.NewBookingBuilder().BuildCreateRequestDTO()

	s.Run("success: returns 201 Created with the new booking id", func() {
		newID := uuid.New()
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).Return(newID, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var body map[string]string
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(newID.String(), body["id"])
	})

	s.Run("error: 401 without credentials", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []struct {
			name   string
			mutate func(map[string]any)
		}{
			{name: "missing field: resource_id", mutate: testutil.Field("resource_id", nil)},
			{name: "missing field: start_time", mutate: testutil.Field("start_time", nil)},
			{name: "missing field: end_time", mutate: testutil.Field("end_time", nil)},
			{name: "malformed start_time", mutate: testutil.Field("start_time", "not-a-time")},
			{name: "negative guest fee", mutate: testutil.Field("guest_details", []map[string]any{{"name": "Sam", "fee_cents": -5}})},
			{name: "guest without a name", mutate: testutil.Field("guest_details", []map[string]any{{"fee_cents": 100}})},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "VALIDATION")
			})
		}
	})

	s.Run("error: usecase sentinels map onto the taxonomy", func() {
		cases := []struct {
			name       string
			err        error
			expectCode int
			expectTag  string
		}{
			{name: "slot conflict -> 409 CONFLICT", err: errs.Mark(errs.New("overlap"), errs.ErrSlotConflict), expectCode: http.StatusConflict, expectTag: "CONFLICT"},
			{name: "not eligible -> 403 ELIGIBILITY", err: errs.Mark(errs.New("suspended"), errs.ErrNotEligible), expectCode: http.StatusForbidden, expectTag: "ELIGIBILITY"},
			{name: "out of window -> 422 OUT_OF_WINDOW", err: errs.Mark(errs.New("too far"), errs.ErrOutOfBookingWindow), expectCode: http.StatusUnprocessableEntity, expectTag: "OUT_OF_WINDOW"},
			{name: "bad slot -> 400 VALIDATION", err: errs.Mark(errs.New("off grid"), errs.ErrInvalidTimeSlot), expectCode: http.StatusBadRequest, expectTag: "VALIDATION"},
			{name: "unknown resource -> 404 NOT_FOUND", err: errs.Mark(errs.New("missing"), errs.ErrResourceNotFound), expectCode: http.StatusNotFound, expectTag: "NOT_FOUND"},
			{name: "unexpected -> 500 INTERNAL", err: errs.New("boom"), expectCode: http.StatusInternalServerError, expectTag: "INTERNAL"},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).Return(uuid.Nil, tc.err).Times(1)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, tc.expectTag)
			})
		}
	})
}

func (s *ReservationHandlerTestSuite) TestGetBooking() {
	view := builder.NewBookingBuilder().WithMemberID(s.memberID).BuildView()
	url := "/bookings/" + view.ID.String()

	s.Run("success: returns the booking", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.memberID, "member", view.ID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(view.ID.String(), body["id"])
		s.Equal(view.ResourceName, body["resourceName"])
	})

	s.Run("error: 404 for other members' bookings", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.memberID, "member", view.ID).
			Return(nil, errs.Mark(errs.New("hidden"), errs.ErrReservationNotFound)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "NOT_FOUND")
	})

	s.Run("error: 400 on malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/not-a-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "VALIDATION")
	})
}

func (s *ReservationHandlerTestSuite) TestListBookings() {
	s.Run("success: returns the member's bookings", func() {
		items := []*queries.ReservationListItem{
			builder.NewBookingBuilder().BuildListItem(),
			builder.NewBookingBuilder().BuildListItem(),
		}
		s.mockQueries.EXPECT().ListByMember(gomock.Any(), s.memberID, 0).Return(items, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings", nil, "bearer-token")

		var body []map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body, 2)
	})

	s.Run("success: limit query parameter is forwarded", func() {
		s.mockQueries.EXPECT().ListByMember(gomock.Any(), s.memberID, 5).Return(nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings?limit=5", nil, "bearer-token")
		s.Equal(http.StatusOK, rec.Code)
	})
}

func (s *ReservationHandlerTestSuite) TestCancelBooking() {
	reservationID := uuid.New()
	url := "/bookings/" + reservationID.String()

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), reservationID, s.memberID, member.RoleMember).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 404 when hidden or missing", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), reservationID, s.memberID, member.RoleMember).
			Return(errs.Mark(errs.New("missing"), errs.ErrReservationNotFound)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "NOT_FOUND")
	})
}
