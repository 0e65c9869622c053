//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"courtbook/internal/domain/member"
	"courtbook/internal/domain/reservation"
	"courtbook/internal/pkg/clock"
	"courtbook/internal/pkg/errs"
	"courtbook/internal/usecase/commands"
	"courtbook/internal/usecase/shared"
	sharedmock "courtbook/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationCommandsTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	uow          *sharedmock.MockUnitOfWork
	tx           *sharedmock.MockTx
	reads        *sharedmock.MockCommandReads
	reservations *sharedmock.MockReservationRepository
	waitlistRepo *sharedmock.MockWaitlistRepository
	outbox       *sharedmock.MockOutboxRepository
	clock        *clock.MockClock
	cmd          commands.ReservationCommands

	resourceID uuid.UUID
	memberID   uuid.UUID
}

func TestReservationCommandsSuite(t *testing.T) {
	suite.Run(t, new(ReservationCommandsTestSuite))
}

func (s *ReservationCommandsTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.uow = sharedmock.NewMockUnitOfWork(s.ctrl)
	s.tx = sharedmock.NewMockTx(s.ctrl)
	s.reads = sharedmock.NewMockCommandReads(s.ctrl)
	s.reservations = sharedmock.NewMockReservationRepository(s.ctrl)
	s.waitlistRepo = sharedmock.NewMockWaitlistRepository(s.ctrl)
	s.outbox = sharedmock.NewMockOutboxRepository(s.ctrl)
	s.clock = clock.NewMockClock(time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC))
	s.cmd = commands.NewReservationCommands(s.uow, reservation.NewBookingWindow(14), s.clock)

	s.resourceID = uuid.New()
	s.memberID = uuid.New()

	s.uow.EXPECT().CommandReads().Return(s.reads).AnyTimes()
	s.tx.EXPECT().Reservations().Return(s.reservations).AnyTimes()
	s.tx.EXPECT().Waitlist().Return(s.waitlistRepo).AnyTimes()
	s.tx.EXPECT().Outbox().Return(s.outbox).AnyTimes()
	s.tx.EXPECT().Reads().Return(s.reads).AnyTimes()
}

func (s *ReservationCommandsTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ReservationCommandsTestSuite) expectWithin() {
	s.uow.EXPECT().Within(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, s.tx)
		})
}

func (s *ReservationCommandsTestSuite) resourceSnapshot() *shared.ResourceSnapshot {
	return &shared.ResourceSnapshot{
		ID:                 s.resourceID,
		Name:               "Court 1",
		OpenHour:           8,
		CloseHour:          22,
		SlotGranularityMin: 60,
		Timezone:           "UTC",
	}
}

func (s *ReservationCommandsTestSuite) memberSnapshot(standing string) *shared.MemberSnapshot {
	return &shared.MemberSnapshot{
		ID:       s.memberID,
		Email:    "alex@example.com",
		Role:     "member",
		Standing: standing,
	}
}

func (s *ReservationCommandsTestSuite) validInput() commands.CreateBookingInput {
	return commands.CreateBookingInput{
		ResourceID: s.resourceID,
		MemberID:   s.memberID,
		Role:       member.RoleMember,
		StartTime:  time.Date(2026, 7, 2, 10, 0, 0, 0, time.UTC),
		EndTime:    time.Date(2026, 7, 2, 11, 0, 0, 0, time.UTC),
	}
}

func (s *ReservationCommandsTestSuite) TestCreate() {
	s.Run("success: confirmed booking without guests", func() {
		s.reads.EXPECT().ResourceByID(gomock.Any(), s.resourceID).Return(s.resourceSnapshot(), nil)
		s.reads.EXPECT().MemberByID(gomock.Any(), s.memberID).Return(s.memberSnapshot("active"), nil)
		s.expectWithin()
		s.reservations.EXPECT().Create(gomock.Any(), gomock.Any()).Return(uuid.New(), nil)
		s.waitlistRepo.EXPECT().ConsumeNotified(gomock.Any(), s.resourceID, s.memberID, gomock.Any()).Return(false, nil)

		id, err := s.cmd.Create(context.Background(), s.validInput())
		s.NoError(err)
		s.NotEqual(uuid.Nil, id)
	})

	s.Run("success: guest fees enqueue a billing hold", func() {
		s.reads.EXPECT().ResourceByID(gomock.Any(), s.resourceID).Return(s.resourceSnapshot(), nil)
		s.reads.EXPECT().MemberByID(gomock.Any(), s.memberID).Return(s.memberSnapshot("active"), nil)
		s.expectWithin()
		s.reservations.EXPECT().Create(gomock.Any(), gomock.Any()).Return(uuid.New(), nil)
		s.waitlistRepo.EXPECT().ConsumeNotified(gomock.Any(), s.resourceID, s.memberID, gomock.Any()).Return(false, nil)
		s.outbox.EXPECT().Enqueue(gomock.Any(), shared.JobBillingHold, gomock.Any(), gomock.Any()).Return(nil)

		in := s.validInput()
		in.Guests = []commands.GuestInput{{Name: "Sam", FeeCents: 1500}}
		_, err := s.cmd.Create(context.Background(), in)
		s.NoError(err)
	})

	s.Run("success: zero-fee guests skip billing", func() {
		s.reads.EXPECT().ResourceByID(gomock.Any(), s.resourceID).Return(s.resourceSnapshot(), nil)
		s.reads.EXPECT().MemberByID(gomock.Any(), s.memberID).Return(s.memberSnapshot("active"), nil)
		s.expectWithin()
		s.reservations.EXPECT().Create(gomock.Any(), gomock.Any()).Return(uuid.New(), nil)
		s.waitlistRepo.EXPECT().ConsumeNotified(gomock.Any(), s.resourceID, s.memberID, gomock.Any()).Return(true, nil)

		in := s.validInput()
		in.Guests = []commands.GuestInput{{Name: "Sam", FeeCents: 0}}
		_, err := s.cmd.Create(context.Background(), in)
		s.NoError(err)
	})

	s.Run("error: suspended member is not eligible", func() {
		s.reads.EXPECT().ResourceByID(gomock.Any(), s.resourceID).Return(s.resourceSnapshot(), nil)
		s.reads.EXPECT().MemberByID(gomock.Any(), s.memberID).Return(s.memberSnapshot("suspended"), nil)

		_, err := s.cmd.Create(context.Background(), s.validInput())
		s.ErrorIs(err, errs.ErrNotEligible)
	})

	s.Run("error: start time off the slot grid", func() {
		s.reads.EXPECT().ResourceByID(gomock.Any(), s.resourceID).Return(s.resourceSnapshot(), nil)

		in := s.validInput()
		in.StartTime = in.StartTime.Add(17 * time.Minute)
		in.EndTime = in.EndTime.Add(17 * time.Minute)
		_, err := s.cmd.Create(context.Background(), in)
		s.ErrorIs(err, errs.ErrInvalidTimeSlot)
	})

	s.Run("error: member cannot book multiple slots", func() {
		s.reads.EXPECT().ResourceByID(gomock.Any(), s.resourceID).Return(s.resourceSnapshot(), nil)

		in := s.validInput()
		in.EndTime = in.StartTime.Add(2 * time.Hour)
		_, err := s.cmd.Create(context.Background(), in)
		s.ErrorIs(err, errs.ErrInvalidTimeSlot)
	})

	s.Run("success: staff may book multi-slot ranges", func() {
		s.reads.EXPECT().ResourceByID(gomock.Any(), s.resourceID).Return(s.resourceSnapshot(), nil)
		s.reads.EXPECT().MemberByID(gomock.Any(), s.memberID).Return(s.memberSnapshot("active"), nil)
		s.expectWithin()
		s.reservations.EXPECT().Create(gomock.Any(), gomock.Any()).Return(uuid.New(), nil)
		s.waitlistRepo.EXPECT().ConsumeNotified(gomock.Any(), s.resourceID, s.memberID, gomock.Any()).Return(false, nil)

		in := s.validInput()
		in.Role = member.RoleStaff
		in.EndTime = in.StartTime.Add(3 * time.Hour)
		_, err := s.cmd.Create(context.Background(), in)
		s.NoError(err)
	})

	s.Run("error: outside the booking window", func() {
		s.reads.EXPECT().ResourceByID(gomock.Any(), s.resourceID).Return(s.resourceSnapshot(), nil)

		in := s.validInput()
		in.StartTime = time.Date(2026, 7, 20, 10, 0, 0, 0, time.UTC)
		in.EndTime = in.StartTime.Add(time.Hour)
		_, err := s.cmd.Create(context.Background(), in)
		s.ErrorIs(err, errs.ErrOutOfBookingWindow)
	})

	s.Run("error: start in the past", func() {
		s.reads.EXPECT().ResourceByID(gomock.Any(), s.resourceID).Return(s.resourceSnapshot(), nil)

		in := s.validInput()
		in.StartTime = time.Date(2026, 6, 30, 10, 0, 0, 0, time.UTC)
		in.EndTime = in.StartTime.Add(time.Hour)
		_, err := s.cmd.Create(context.Background(), in)
		s.ErrorIs(err, errs.ErrInvalidTimeSlot)
	})

	s.Run("error: blank guest name", func() {
		s.reads.EXPECT().ResourceByID(gomock.Any(), s.resourceID).Return(s.resourceSnapshot(), nil)
		s.reads.EXPECT().MemberByID(gomock.Any(), s.memberID).Return(s.memberSnapshot("active"), nil)

		in := s.validInput()
		in.Guests = []commands.GuestInput{{Name: "  ", FeeCents: 100}}
		_, err := s.cmd.Create(context.Background(), in)
		s.ErrorIs(err, errs.ErrInvalidGuest)
	})

	s.Run("error: slot conflict surfaces from the repository", func() {
		s.reads.EXPECT().ResourceByID(gomock.Any(), s.resourceID).Return(s.resourceSnapshot(), nil)
		s.reads.EXPECT().MemberByID(gomock.Any(), s.memberID).Return(s.memberSnapshot("active"), nil)
		s.expectWithin()
		s.reservations.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(uuid.Nil, errs.Mark(errs.New("overlap"), errs.ErrSlotConflict))

		_, err := s.cmd.Create(context.Background(), s.validInput())
		s.ErrorIs(err, errs.ErrSlotConflict)
	})

	s.Run("error: end before start", func() {
		in := s.validInput()
		in.EndTime = in.StartTime.Add(-time.Hour)
		_, err := s.cmd.Create(context.Background(), in)
		s.ErrorIs(err, errs.ErrInvalidTimeSlot)
	})
}

func (s *ReservationCommandsTestSuite) TestCancel() {
	reservationID := uuid.New()
	slotStart := time.Date(2026, 7, 2, 10, 0, 0, 0, time.UTC)
	snap := &shared.ReservationSnapshot{
		ID:         reservationID,
		ResourceID: s.resourceID,
		MemberID:   s.memberID,
		Status:     "confirmed",
		SlotStart:  slotStart,
		SlotEnd:    slotStart.Add(time.Hour),
	}

	s.Run("success: owner cancel enqueues slot_freed", func() {
		s.expectWithin()
		s.reads.EXPECT().ReservationByID(gomock.Any(), reservationID).Return(snap, nil)
		s.reservations.EXPECT().Cancel(gomock.Any(), reservationID).Return(&shared.CancelOutcome{
			Cancelled:  true,
			ResourceID: s.resourceID,
			MemberID:   s.memberID,
			SlotStart:  snap.SlotStart,
			SlotEnd:    snap.SlotEnd,
		}, nil)
		s.outbox.EXPECT().Enqueue(gomock.Any(), shared.JobSlotFreed, gomock.Any(), gomock.Any()).Return(nil)

		err := s.cmd.Cancel(context.Background(), reservationID, s.memberID, member.RoleMember)
		s.NoError(err)
	})

	s.Run("success: repeat cancel is a no-op without a second slot_freed", func() {
		s.expectWithin()
		s.reads.EXPECT().ReservationByID(gomock.Any(), reservationID).Return(snap, nil)
		s.reservations.EXPECT().Cancel(gomock.Any(), reservationID).Return(&shared.CancelOutcome{Cancelled: false}, nil)

		err := s.cmd.Cancel(context.Background(), reservationID, s.memberID, member.RoleMember)
		s.NoError(err)
	})

	s.Run("error: another member's reservation reads as not found", func() {
		s.expectWithin()
		s.reads.EXPECT().ReservationByID(gomock.Any(), reservationID).Return(snap, nil)

		err := s.cmd.Cancel(context.Background(), reservationID, uuid.New(), member.RoleMember)
		s.ErrorIs(err, errs.ErrReservationNotFound)
	})

	s.Run("success: staff may cancel on behalf of members", func() {
		s.expectWithin()
		s.reads.EXPECT().ReservationByID(gomock.Any(), reservationID).Return(snap, nil)
		s.reservations.EXPECT().Cancel(gomock.Any(), reservationID).Return(&shared.CancelOutcome{
			Cancelled:  true,
			ResourceID: s.resourceID,
			MemberID:   s.memberID,
			SlotStart:  snap.SlotStart,
			SlotEnd:    snap.SlotEnd,
		}, nil)
		s.outbox.EXPECT().Enqueue(gomock.Any(), shared.JobSlotFreed, gomock.Any(), gomock.Any()).Return(nil)

		err := s.cmd.Cancel(context.Background(), reservationID, uuid.New(), member.RoleStaff)
		s.NoError(err)
	})
}
