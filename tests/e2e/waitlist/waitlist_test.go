//go:build e2e

package waitlist_test

import (
	"net/http"
	"testing"
	"time"

	"courtbook/internal/domain/member"
	"courtbook/internal/handler/dto/response"
	"courtbook/tests/common/authtest"
	"courtbook/tests/common/builder"
	"courtbook/tests/common/dbtest"
	"courtbook/tests/common/httptest"
	"courtbook/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	waitlistURL = "/api/waitlist"
	bookingsURL = "/api/bookings"
)

type WaitlistSuite struct {
	e2e.SharedSuite
}

func (s *WaitlistSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestWaitlistSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(WaitlistSuite))
}

func tomorrowAt(hour int) time.Time {
	d := time.Now().UTC().AddDate(0, 0, 1)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, time.UTC)
}

func (s *WaitlistSuite) bookedSlot(t *testing.T, resourceID, ownerID uuid.UUID, start time.Time) uuid.UUID {
	t.Helper()
	return dbtest.CreateTestReservation(t, s.DB, resourceID, ownerID, start, start.Add(time.Hour), "confirmed")
}

// =============================================================================
// TestJoinWaitlist - Waitlist registration API tests
// =============================================================================

func (s *WaitlistSuite) TestJoinWaitlist() {
	s.Run("Normal case: Member can queue for a booked slot", func() {
		t := s.T()

		ownerID := dbtest.CreateTestMember(t, s.DB, "owner@example.com", "member")
		hopefulID := dbtest.CreateTestMember(t, s.DB, "hopeful@example.com", "member")
		resourceID := dbtest.CreateTestResource(t, s.DB, "Court 1", 60)
		token := authtest.TokenFor(t, s.Config.JWT, hopefulID, member.RoleMember)

		start := tomorrowAt(10)
		s.bookedSlot(t, resourceID, ownerID, start)

		reqBody := builder.NewWaitlistBuilder().
			WithResourceID(resourceID).
			WithSlotStart(start).
			BuildJoinRequestDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, waitlistURL, reqBody, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var entry response.WaitlistEntryResponse
		err := httptest.DecodeResponseBody(t, w.Body, &entry)
		require.NoError(t, err)
		require.Equal(t, "pending", entry.Status)
		require.Equal(t, hopefulID, entry.MemberID)

		// Rejoining returns the live entry instead of creating a duplicate.
		w2 := httptest.PerformRequest(t, s.Router, http.MethodPost, waitlistURL, reqBody, token)
		require.Equal(t, http.StatusOK, w2.Code, w2.Body.String())

		var rejoined response.WaitlistEntryResponse
		err = httptest.DecodeResponseBody(t, w2.Body, &rejoined)
		require.NoError(t, err)
		require.Equal(t, entry.ID, rejoined.ID)
	})

	s.Run("Error case: A free slot has no waitlist", func() {
		t := s.T()

		hopefulID := dbtest.CreateTestMember(t, s.DB, "hopeful@example.com", "member")
		resourceID := dbtest.CreateTestResource(t, s.DB, "Court 1", 60)
		token := authtest.TokenFor(t, s.Config.JWT, hopefulID, member.RoleMember)

		reqBody := builder.NewWaitlistBuilder().
			WithResourceID(resourceID).
			WithSlotStart(tomorrowAt(10)).
			BuildJoinRequestDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, waitlistURL, reqBody, token)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "INVALID_STATE")
	})
}

// =============================================================================
// TestWaitlistPromotion - Cancellation drives the notification pipeline
// =============================================================================

func (s *WaitlistSuite) TestWaitlistPromotion() {
	s.Run("Normal case: Cancelling a booking notifies pending members", func() {
		t := s.T()

		ownerID := dbtest.CreateTestMember(t, s.DB, "owner@example.com", "member")
		hopefulID := dbtest.CreateTestMember(t, s.DB, "hopeful@example.com", "member")
		resourceID := dbtest.CreateTestResource(t, s.DB, "Court 1", 60)
		ownerToken := authtest.TokenFor(t, s.Config.JWT, ownerID, member.RoleMember)
		hopefulToken := authtest.TokenFor(t, s.Config.JWT, hopefulID, member.RoleMember)

		start := tomorrowAt(10)
		reservationID := s.bookedSlot(t, resourceID, ownerID, start)

		reqBody := builder.NewWaitlistBuilder().
			WithResourceID(resourceID).
			WithSlotStart(start).
			BuildJoinRequestDTO()
		jw := httptest.PerformRequest(t, s.Router, http.MethodPost, waitlistURL, reqBody, hopefulToken)
		require.Equal(t, http.StatusCreated, jw.Code, jw.Body.String())

		var entry response.WaitlistEntryResponse
		err := httptest.DecodeResponseBody(t, jw.Body, &entry)
		require.NoError(t, err)

		cw := httptest.PerformRequest(t, s.Router, http.MethodDelete, bookingsURL+"/"+reservationID.String(), nil, ownerToken)
		require.Equal(t, http.StatusNoContent, cw.Code, cw.Body.String())

		// The outbox worker picks up the slot_freed job asynchronously.
		require.Eventually(t, func() bool {
			return dbtest.WaitlistEntryStatus(t, s.DB, entry.ID) == "notified"
		}, 5*time.Second, 100*time.Millisecond, "pending entry should be promoted to notified")

		// The notified member can now claim the freed slot.
		claim := builder.NewBookingBuilder().
			WithResourceID(resourceID).
			WithSlot(start, start.Add(time.Hour)).
			BuildCreateRequestDTO()
		bw := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, claim, hopefulToken)
		require.Equal(t, http.StatusCreated, bw.Code, bw.Body.String())

		require.Eventually(t, func() bool {
			return dbtest.WaitlistEntryStatus(t, s.DB, entry.ID) == "consumed"
		}, 2*time.Second, 50*time.Millisecond, "claiming the slot should consume the notification")
	})
}

// =============================================================================
// TestWithdrawWaitlist - Waitlist withdrawal API tests
// =============================================================================

func (s *WaitlistSuite) TestWithdrawWaitlist() {
	s.Run("Normal case: Member can withdraw a pending entry", func() {
		t := s.T()

		ownerID := dbtest.CreateTestMember(t, s.DB, "owner@example.com", "member")
		hopefulID := dbtest.CreateTestMember(t, s.DB, "hopeful@example.com", "member")
		resourceID := dbtest.CreateTestResource(t, s.DB, "Court 1", 60)
		token := authtest.TokenFor(t, s.Config.JWT, hopefulID, member.RoleMember)

		start := tomorrowAt(10)
		s.bookedSlot(t, resourceID, ownerID, start)

		reqBody := builder.NewWaitlistBuilder().
			WithResourceID(resourceID).
			WithSlotStart(start).
			BuildJoinRequestDTO()
		jw := httptest.PerformRequest(t, s.Router, http.MethodPost, waitlistURL, reqBody, token)
		require.Equal(t, http.StatusCreated, jw.Code)

		var entry response.WaitlistEntryResponse
		err := httptest.DecodeResponseBody(t, jw.Body, &entry)
		require.NoError(t, err)

		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, waitlistURL+"/"+entry.ID.String(), nil, token)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
		require.Equal(t, "withdrawn", dbtest.WaitlistEntryStatus(t, s.DB, entry.ID))
	})

	s.Run("Error case: Members cannot withdraw someone else's entry", func() {
		t := s.T()

		ownerID := dbtest.CreateTestMember(t, s.DB, "owner@example.com", "member")
		hopefulID := dbtest.CreateTestMember(t, s.DB, "hopeful@example.com", "member")
		malloryID := dbtest.CreateTestMember(t, s.DB, "mallory@example.com", "member")
		resourceID := dbtest.CreateTestResource(t, s.DB, "Court 1", 60)
		hopefulToken := authtest.TokenFor(t, s.Config.JWT, hopefulID, member.RoleMember)
		malloryToken := authtest.TokenFor(t, s.Config.JWT, malloryID, member.RoleMember)

		start := tomorrowAt(10)
		s.bookedSlot(t, resourceID, ownerID, start)

		reqBody := builder.NewWaitlistBuilder().
			WithResourceID(resourceID).
			WithSlotStart(start).
			BuildJoinRequestDTO()
		jw := httptest.PerformRequest(t, s.Router, http.MethodPost, waitlistURL, reqBody, hopefulToken)
		require.Equal(t, http.StatusCreated, jw.Code)

		var entry response.WaitlistEntryResponse
		err := httptest.DecodeResponseBody(t, jw.Body, &entry)
		require.NoError(t, err)

		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, waitlistURL+"/"+entry.ID.String(), nil, malloryToken)
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "FORBIDDEN")
		require.Equal(t, "pending", dbtest.WaitlistEntryStatus(t, s.DB, entry.ID))
	})
}
