//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"courtbook/internal/domain/member"
	"courtbook/internal/domain/waitlist"
	"courtbook/internal/pkg/clock"
	"courtbook/internal/pkg/errs"
	"courtbook/internal/usecase/commands"
	"courtbook/internal/usecase/shared"
	sharedmock "courtbook/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type WaitlistCommandsTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	uow          *sharedmock.MockUnitOfWork
	tx           *sharedmock.MockTx
	reads        *sharedmock.MockCommandReads
	waitlistRepo *sharedmock.MockWaitlistRepository
	clock        *clock.MockClock
	cmd          commands.WaitlistCommands

	resourceID uuid.UUID
	memberID   uuid.UUID
	slotStart  time.Time
}

func TestWaitlistCommandsSuite(t *testing.T) {
	suite.Run(t, new(WaitlistCommandsTestSuite))
}

func (s *WaitlistCommandsTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.uow = sharedmock.NewMockUnitOfWork(s.ctrl)
	s.tx = sharedmock.NewMockTx(s.ctrl)
	s.reads = sharedmock.NewMockCommandReads(s.ctrl)
	s.waitlistRepo = sharedmock.NewMockWaitlistRepository(s.ctrl)
	s.clock = clock.NewMockClock(time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC))
	s.cmd = commands.NewWaitlistCommands(s.uow, 30*time.Minute, s.clock)

	s.resourceID = uuid.New()
	s.memberID = uuid.New()
	s.slotStart = time.Date(2026, 7, 2, 10, 0, 0, 0, time.UTC)

	s.uow.EXPECT().CommandReads().Return(s.reads).AnyTimes()
	s.tx.EXPECT().Waitlist().Return(s.waitlistRepo).AnyTimes()
	s.tx.EXPECT().Reads().Return(s.reads).AnyTimes()
}

func (s *WaitlistCommandsTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *WaitlistCommandsTestSuite) expectWithin() {
	s.uow.EXPECT().Within(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, s.tx)
		})
}

func (s *WaitlistCommandsTestSuite) resourceSnapshot() *shared.ResourceSnapshot {
	return &shared.ResourceSnapshot{
		ID:                 s.resourceID,
		Name:               "Court 1",
		OpenHour:           8,
		CloseHour:          22,
		SlotGranularityMin: 60,
		Timezone:           "UTC",
	}
}

func (s *WaitlistCommandsTestSuite) joinInput() commands.JoinWaitlistInput {
	return commands.JoinWaitlistInput{
		ResourceID: s.resourceID,
		MemberID:   s.memberID,
		SlotStart:  s.slotStart,
	}
}

func (s *WaitlistCommandsTestSuite) TestJoin() {
	s.Run("success: booked slot accepts a new entry", func() {
		s.reads.EXPECT().ResourceByID(gomock.Any(), s.resourceID).Return(s.resourceSnapshot(), nil)
		s.expectWithin()
		s.reads.EXPECT().HasConfirmedReservationIn(gomock.Any(), s.resourceID, s.slotStart, s.slotStart.Add(time.Hour)).Return(true, nil)
		s.waitlistRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).
			Return(&shared.WaitlistSnapshot{ID: uuid.New(), Status: "pending"}, true, nil)

		snap, created, err := s.cmd.Join(context.Background(), s.joinInput())
		s.NoError(err)
		s.True(created)
		s.NotNil(snap)
	})

	s.Run("success: rejoining returns the live entry", func() {
		s.reads.EXPECT().ResourceByID(gomock.Any(), s.resourceID).Return(s.resourceSnapshot(), nil)
		s.expectWithin()
		s.reads.EXPECT().HasConfirmedReservationIn(gomock.Any(), s.resourceID, s.slotStart, s.slotStart.Add(time.Hour)).Return(true, nil)
		existing := &shared.WaitlistSnapshot{ID: uuid.New(), Status: "pending"}
		s.waitlistRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(existing, false, nil)

		snap, created, err := s.cmd.Join(context.Background(), s.joinInput())
		s.NoError(err)
		s.False(created)
		s.Equal(existing.ID, snap.ID)
	})

	s.Run("error: free slot cannot be waitlisted", func() {
		s.reads.EXPECT().ResourceByID(gomock.Any(), s.resourceID).Return(s.resourceSnapshot(), nil)
		s.expectWithin()
		s.reads.EXPECT().HasConfirmedReservationIn(gomock.Any(), s.resourceID, s.slotStart, s.slotStart.Add(time.Hour)).Return(false, nil)

		_, _, err := s.cmd.Join(context.Background(), s.joinInput())
		s.ErrorIs(err, errs.ErrSlotNotBooked)
	})

	s.Run("error: off-grid slot start", func() {
		s.reads.EXPECT().ResourceByID(gomock.Any(), s.resourceID).Return(s.resourceSnapshot(), nil)

		in := s.joinInput()
		in.SlotStart = in.SlotStart.Add(20 * time.Minute)
		_, _, err := s.cmd.Join(context.Background(), in)
		s.ErrorIs(err, errs.ErrInvalidTimeSlot)
	})

	s.Run("error: slot in the past", func() {
		s.reads.EXPECT().ResourceByID(gomock.Any(), s.resourceID).Return(s.resourceSnapshot(), nil)

		in := s.joinInput()
		in.SlotStart = time.Date(2026, 6, 30, 10, 0, 0, 0, time.UTC)
		_, _, err := s.cmd.Join(context.Background(), in)
		s.ErrorIs(err, errs.ErrInvalidTimeSlot)
	})
}

func (s *WaitlistCommandsTestSuite) TestWithdraw() {
	entryID := uuid.New()
	snap := &shared.WaitlistSnapshot{
		ID:         entryID,
		ResourceID: s.resourceID,
		MemberID:   s.memberID,
		SlotStart:  s.slotStart,
		Status:     "pending",
	}

	s.Run("success: owner withdraws a pending entry", func() {
		s.expectWithin()
		s.reads.EXPECT().WaitlistEntryByID(gomock.Any(), entryID).Return(snap, nil)
		s.waitlistRepo.EXPECT().Transition(gomock.Any(), entryID, waitlist.StatusPending, waitlist.StatusWithdrawn).Return(true, nil)

		s.NoError(s.cmd.Withdraw(context.Background(), entryID, s.memberID, member.RoleMember))
	})

	s.Run("error: non-owner member is rejected", func() {
		s.expectWithin()
		s.reads.EXPECT().WaitlistEntryByID(gomock.Any(), entryID).Return(snap, nil)

		err := s.cmd.Withdraw(context.Background(), entryID, uuid.New(), member.RoleMember)
		s.ErrorIs(err, errs.ErrWaitlistNotOwned)
	})

	s.Run("error: notified entry can no longer be withdrawn", func() {
		s.expectWithin()
		s.reads.EXPECT().WaitlistEntryByID(gomock.Any(), entryID).Return(snap, nil)
		s.waitlistRepo.EXPECT().Transition(gomock.Any(), entryID, waitlist.StatusPending, waitlist.StatusWithdrawn).Return(false, nil)

		err := s.cmd.Withdraw(context.Background(), entryID, s.memberID, member.RoleMember)
		s.ErrorIs(err, waitlist.ErrInvalidTransition)
	})

	s.Run("success: staff may withdraw on behalf of members", func() {
		s.expectWithin()
		s.reads.EXPECT().WaitlistEntryByID(gomock.Any(), entryID).Return(snap, nil)
		s.waitlistRepo.EXPECT().Transition(gomock.Any(), entryID, waitlist.StatusPending, waitlist.StatusWithdrawn).Return(true, nil)

		s.NoError(s.cmd.Withdraw(context.Background(), entryID, uuid.New(), member.RoleStaff))
	})
}

func (s *WaitlistCommandsTestSuite) TestExpireOverdue() {
	s.expectWithin()
	// grace = 30m, now = 09:00 -> deadline 08:30
	deadline := time.Date(2026, 7, 1, 8, 30, 0, 0, time.UTC)
	s.waitlistRepo.EXPECT().ExpireOverdue(gomock.Any(), deadline).Return(int64(3), nil)

	n, err := s.cmd.ExpireOverdue(context.Background())
	s.NoError(err)
	s.Equal(int64(3), n)
}
