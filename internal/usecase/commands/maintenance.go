package commands

import (
	"context"
	"encoding/json"
	"time"

	"courtbook/internal/pkg/clock"
	"courtbook/internal/pkg/errs"
	"courtbook/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateMaintenanceInput struct {
	ResourceID uuid.UUID
	StartAt    time.Time
	EndAt      time.Time
	Reason     string
}

type MaintenanceCommands interface {
	Create(ctx context.Context, in CreateMaintenanceInput) (uuid.UUID, error)
	Delete(ctx context.Context, windowID uuid.UUID) error
}

type maintenanceCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewMaintenanceCommands(uow shared.UnitOfWork, clk clock.Clock) MaintenanceCommands {
	return &maintenanceCommandsImpl{uow: uow, clock: clk}
}

// Create blocks a time range on a resource and schedules the start/end events
// through the outbox so they fire at the window boundaries.
func (c *maintenanceCommandsImpl) Create(ctx context.Context, in CreateMaintenanceInput) (uuid.UUID, error) {
	if !in.StartAt.Before(in.EndAt) {
		return uuid.Nil, errs.Mark(errs.New("maintenance start must precede end"), errs.ErrInvalidTimeSlot)
	}
	if in.EndAt.Before(c.clock.Now()) {
		return uuid.Nil, errs.Mark(errs.New("maintenance window is entirely in the past"), errs.ErrInvalidTimeSlot)
	}
	if _, err := c.uow.CommandReads().ResourceByID(ctx, in.ResourceID); err != nil {
		return uuid.Nil, err
	}

	var windowID uuid.UUID
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, err := tx.Maintenance().Insert(ctx, in.ResourceID, in.StartAt, in.EndAt, in.Reason)
		if err != nil {
			return err
		}
		windowID = id

		payload, err := json.Marshal(shared.MaintenancePayload{
			WindowID:   id,
			ResourceID: in.ResourceID,
			StartAt:    in.StartAt,
			EndAt:      in.EndAt,
		})
		if err != nil {
			return errs.Wrap(err, "failed to encode maintenance payload")
		}
		if err := tx.Outbox().Enqueue(ctx, shared.JobMaintenanceStart, payload, in.StartAt); err != nil {
			return err
		}
		return tx.Outbox().Enqueue(ctx, shared.JobMaintenanceEnd, payload, in.EndAt)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return windowID, nil
}

func (c *maintenanceCommandsImpl) Delete(ctx context.Context, windowID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Maintenance().Delete(ctx, windowID)
		if err != nil {
			return err
		}
		if snap == nil {
			return errs.Mark(errs.New("no maintenance window with that id"), errs.ErrMaintenanceNotFound)
		}
		return nil
	})
}
