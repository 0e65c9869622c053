package commands

import (
	"context"
	"time"

	"courtbook/internal/domain/member"
	"courtbook/internal/domain/waitlist"
	"courtbook/internal/pkg/clock"
	"courtbook/internal/pkg/errs"
	"courtbook/internal/usecase/shared"

	"github.com/google/uuid"
)

type JoinWaitlistInput struct {
	ResourceID uuid.UUID
	MemberID   uuid.UUID
	SlotStart  time.Time
}

type WaitlistCommands interface {
	// Join registers interest in a currently booked slot. Re-joining the same
	// slot returns the live entry with created=false.
	Join(ctx context.Context, in JoinWaitlistInput) (entry *shared.WaitlistSnapshot, created bool, err error)
	Withdraw(ctx context.Context, entryID, actorID uuid.UUID, actorRole member.Role) error
	// ExpireOverdue closes notified entries whose grace window has lapsed.
	// Called by the background worker, returns the number of entries expired.
	ExpireOverdue(ctx context.Context) (int64, error)
}

type waitlistCommandsImpl struct {
	uow   shared.UnitOfWork
	grace time.Duration
	clock clock.Clock
}

func NewWaitlistCommands(uow shared.UnitOfWork, grace time.Duration, clk clock.Clock) WaitlistCommands {
	return &waitlistCommandsImpl{uow: uow, grace: grace, clock: clk}
}

func (c *waitlistCommandsImpl) Join(ctx context.Context, in JoinWaitlistInput) (*shared.WaitlistSnapshot, bool, error) {
	reads := c.uow.CommandReads()
	resSnap, err := reads.ResourceByID(ctx, in.ResourceID)
	if err != nil {
		return nil, false, err
	}
	res, err := resSnap.ToDomain()
	if err != nil {
		return nil, false, errs.Wrap(err, "resource row is inconsistent")
	}
	if !res.AlignsToGrid(in.SlotStart) {
		return nil, false, errs.Mark(errs.New("slot start is off the slot grid"), errs.ErrInvalidTimeSlot)
	}
	if in.SlotStart.Before(c.clock.Now()) {
		return nil, false, errs.Mark(errs.New("slot start is in the past"), errs.ErrInvalidTimeSlot)
	}

	var (
		snap    *shared.WaitlistSnapshot
		created bool
	)
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// Only booked slots are waitlistable; a free slot should just be
		// booked. The check runs inside the transaction so a concurrent
		// cancellation cannot slip an entry past the gate.
		slotEnd := in.SlotStart.Add(res.SlotDuration())
		booked, err := tx.Reads().HasConfirmedReservationIn(ctx, in.ResourceID, in.SlotStart, slotEnd)
		if err != nil {
			return err
		}
		if !booked {
			return errs.Mark(errs.New("target slot has no confirmed reservation"), errs.ErrSlotNotBooked)
		}

		entry := waitlist.NewEntry(in.ResourceID, in.MemberID, in.SlotStart)
		snap, created, err = tx.Waitlist().Insert(ctx, entry)
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return snap, created, nil
}

func (c *waitlistCommandsImpl) Withdraw(ctx context.Context, entryID, actorID uuid.UUID, actorRole member.Role) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().WaitlistEntryByID(ctx, entryID)
		if err != nil {
			return err
		}
		if snap.MemberID != actorID && !actorRole.CanManageOthers() {
			return errs.Mark(errs.New("entry belongs to another member"), errs.ErrWaitlistNotOwned)
		}

		ok, err := tx.Waitlist().Transition(ctx, entryID, waitlist.StatusPending, waitlist.StatusWithdrawn)
		if err != nil {
			return err
		}
		if !ok {
			// Notified or already closed entries cannot be withdrawn.
			return errs.Wrap(waitlist.ErrInvalidTransition, "entry is no longer pending")
		}
		return nil
	})
}

func (c *waitlistCommandsImpl) ExpireOverdue(ctx context.Context) (int64, error) {
	deadline := c.clock.Now().Add(-c.grace)
	var expired int64
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		n, err := tx.Waitlist().ExpireOverdue(ctx, deadline)
		if err != nil {
			return err
		}
		expired = n
		return nil
	})
	return expired, err
}
