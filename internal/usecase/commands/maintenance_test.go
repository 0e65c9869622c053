//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"courtbook/internal/pkg/clock"
	"courtbook/internal/pkg/errs"
	"courtbook/internal/usecase/commands"
	"courtbook/internal/usecase/shared"
	sharedmock "courtbook/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type MaintenanceCommandsTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	uow         *sharedmock.MockUnitOfWork
	tx          *sharedmock.MockTx
	reads       *sharedmock.MockCommandReads
	maintenance *sharedmock.MockMaintenanceRepository
	outbox      *sharedmock.MockOutboxRepository
	cmd         commands.MaintenanceCommands

	resourceID uuid.UUID
}

func TestMaintenanceCommandsSuite(t *testing.T) {
	suite.Run(t, new(MaintenanceCommandsTestSuite))
}

func (s *MaintenanceCommandsTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.uow = sharedmock.NewMockUnitOfWork(s.ctrl)
	s.tx = sharedmock.NewMockTx(s.ctrl)
	s.reads = sharedmock.NewMockCommandReads(s.ctrl)
	s.maintenance = sharedmock.NewMockMaintenanceRepository(s.ctrl)
	s.outbox = sharedmock.NewMockOutboxRepository(s.ctrl)
	clk := clock.NewMockClock(time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC))
	s.cmd = commands.NewMaintenanceCommands(s.uow, clk)

	s.resourceID = uuid.New()

	s.uow.EXPECT().CommandReads().Return(s.reads).AnyTimes()
	s.tx.EXPECT().Maintenance().Return(s.maintenance).AnyTimes()
	s.tx.EXPECT().Outbox().Return(s.outbox).AnyTimes()
}

func (s *MaintenanceCommandsTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *MaintenanceCommandsTestSuite) expectWithin() {
	s.uow.EXPECT().Within(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, s.tx)
		})
}

func (s *MaintenanceCommandsTestSuite) TestCreate() {
	startAt := time.Date(2026, 7, 5, 8, 0, 0, 0, time.UTC)
	endAt := time.Date(2026, 7, 5, 12, 0, 0, 0, time.UTC)

	s.Run("success: schedules start and end events at the boundaries", func() {
		s.reads.EXPECT().ResourceByID(gomock.Any(), s.resourceID).Return(&shared.ResourceSnapshot{ID: s.resourceID}, nil)
		s.expectWithin()
		windowID := uuid.New()
		s.maintenance.EXPECT().Insert(gomock.Any(), s.resourceID, startAt, endAt, "resurfacing").Return(windowID, nil)
		s.outbox.EXPECT().Enqueue(gomock.Any(), shared.JobMaintenanceStart, gomock.Any(), startAt).Return(nil)
		s.outbox.EXPECT().Enqueue(gomock.Any(), shared.JobMaintenanceEnd, gomock.Any(), endAt).Return(nil)

		id, err := s.cmd.Create(context.Background(), commands.CreateMaintenanceInput{
			ResourceID: s.resourceID,
			StartAt:    startAt,
			EndAt:      endAt,
			Reason:     "resurfacing",
		})
		s.NoError(err)
		s.Equal(windowID, id)
	})

	s.Run("error: start must precede end", func() {
		_, err := s.cmd.Create(context.Background(), commands.CreateMaintenanceInput{
			ResourceID: s.resourceID,
			StartAt:    endAt,
			EndAt:      startAt,
		})
		s.ErrorIs(err, errs.ErrInvalidTimeSlot)
	})

	s.Run("error: window entirely in the past", func() {
		_, err := s.cmd.Create(context.Background(), commands.CreateMaintenanceInput{
			ResourceID: s.resourceID,
			StartAt:    time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC),
			EndAt:      time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC),
		})
		s.ErrorIs(err, errs.ErrInvalidTimeSlot)
	})

	s.Run("error: unknown resource", func() {
		s.reads.EXPECT().ResourceByID(gomock.Any(), s.resourceID).
			Return(nil, errs.Mark(errs.New("missing"), errs.ErrResourceNotFound))

		_, err := s.cmd.Create(context.Background(), commands.CreateMaintenanceInput{
			ResourceID: s.resourceID,
			StartAt:    startAt,
			EndAt:      endAt,
		})
		s.ErrorIs(err, errs.ErrResourceNotFound)
	})
}

func (s *MaintenanceCommandsTestSuite) TestDelete() {
	windowID := uuid.New()

	s.Run("success", func() {
		s.expectWithin()
		s.maintenance.EXPECT().Delete(gomock.Any(), windowID).
			Return(&shared.MaintenanceSnapshot{ID: windowID, ResourceID: s.resourceID}, nil)

		s.NoError(s.cmd.Delete(context.Background(), windowID))
	})

	s.Run("error: missing window", func() {
		s.expectWithin()
		s.maintenance.EXPECT().Delete(gomock.Any(), windowID).Return(nil, nil)

		err := s.cmd.Delete(context.Background(), windowID)
		s.ErrorIs(err, errs.ErrMaintenanceNotFound)
	})
}
