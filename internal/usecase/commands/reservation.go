package commands

import (
	"context"
	"encoding/json"
	"time"

	"courtbook/internal/domain/member"
	"courtbook/internal/domain/reservation"
	"courtbook/internal/pkg/clock"
	"courtbook/internal/pkg/errs"
	"courtbook/internal/usecase/shared"

	"github.com/google/uuid"
)

type GuestInput struct {
	Name       string
	Identifier string
	FeeCents   int64
}

type CreateBookingInput struct {
	ResourceID uuid.UUID
	MemberID   uuid.UUID
	Role       member.Role
	StartTime  time.Time
	EndTime    time.Time
	Guests     []GuestInput
}

type ReservationCommands interface {
	Create(ctx context.Context, in CreateBookingInput) (uuid.UUID, error)
	Cancel(ctx context.Context, reservationID, actorID uuid.UUID, actorRole member.Role) error
}

type reservationCommandsImpl struct {
	uow    shared.UnitOfWork
	window reservation.BookingWindow
	clock  clock.Clock
}

func NewReservationCommands(uow shared.UnitOfWork, window reservation.BookingWindow, clk clock.Clock) ReservationCommands {
	return &reservationCommandsImpl{uow: uow, window: window, clock: clk}
}

// Create runs the full booking pipeline: shape validation, window gate,
// eligibility gate, then the transactional commit where the exclusion
// constraint arbitrates concurrent writers. Guests ride along as line items
// and never influence the conflict check.
func (c *reservationCommandsImpl) Create(ctx context.Context, in CreateBookingInput) (uuid.UUID, error) {
	slot, err := reservation.NewTimeSlot(in.StartTime, in.EndTime)
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrInvalidTimeSlot)
	}

	reads := c.uow.CommandReads()
	resSnap, err := reads.ResourceByID(ctx, in.ResourceID)
	if err != nil {
		return uuid.Nil, err
	}
	res, err := resSnap.ToDomain()
	if err != nil {
		return uuid.Nil, errs.Wrap(err, "resource row is inconsistent")
	}

	now := c.clock.Now()
	if err := slot.ValidateNotPast(now); err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrInvalidTimeSlot)
	}
	if !res.AlignsToGrid(slot.Start()) {
		return uuid.Nil, errs.Mark(errs.New("start time is off the slot grid"), errs.ErrInvalidTimeSlot)
	}
	if !in.Role.CanManageOthers() {
		if err := slot.ValidateSingleSlot(res.SlotDuration()); err != nil {
			return uuid.Nil, errs.Mark(err, errs.ErrInvalidTimeSlot)
		}
	}
	if err := c.window.Validate(now, slot.Start(), res.Location()); err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrOutOfBookingWindow)
	}

	memSnap, err := reads.MemberByID(ctx, in.MemberID)
	if err != nil {
		return uuid.Nil, err
	}
	standing, err := member.NewStanding(memSnap.Standing)
	if err != nil {
		return uuid.Nil, errs.Wrap(err, "member row is inconsistent")
	}
	// The eligibility gate must surface as its own failure, never as a slot
	// conflict, so clients can distinguish "fix your membership" from "pick
	// another slot".
	if !standing.CanBook() {
		return uuid.Nil, errs.Mark(errs.New("membership standing is "+memSnap.Standing), errs.ErrNotEligible)
	}

	guests := make([]reservation.Guest, 0, len(in.Guests))
	for _, g := range in.Guests {
		guest, err := reservation.NewGuest(g.Name, g.Identifier, g.FeeCents)
		if err != nil {
			return uuid.Nil, errs.Mark(err, errs.ErrInvalidGuest)
		}
		guests = append(guests, guest)
	}

	entity := reservation.NewReservation(in.ResourceID, in.MemberID, slot, guests)

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Reservations().Create(ctx, entity); err != nil {
			return err
		}
		// Close out the member's notified waitlist entry when this booking is
		// the claim on a freed slot.
		if _, err := tx.Waitlist().ConsumeNotified(ctx, in.ResourceID, in.MemberID, slot.Start()); err != nil {
			return err
		}
		if total := entity.GuestFeesTotal(); total > 0 {
			payload, err := json.Marshal(shared.BillingHoldPayload{
				ReservationID: entity.ID(),
				MemberID:      in.MemberID,
				AmountCents:   total,
				GuestCount:    len(guests),
			})
			if err != nil {
				return errs.Wrap(err, "failed to encode billing hold payload")
			}
			if err := tx.Outbox().Enqueue(ctx, shared.JobBillingHold, payload, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return entity.ID(), nil
}

// Cancel is idempotent: cancelling an already-cancelled reservation succeeds
// without re-enqueueing the slot_freed job, so the waitlist pipeline never
// fires twice for one slot.
func (c *reservationCommandsImpl) Cancel(ctx context.Context, reservationID, actorID uuid.UUID, actorRole member.Role) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().ReservationByID(ctx, reservationID)
		if err != nil {
			return err
		}
		if snap.MemberID != actorID && !actorRole.CanManageOthers() {
			// Hide other members' reservations rather than confirming they exist.
			return errs.Mark(errs.New("reservation belongs to another member"), errs.ErrReservationNotFound)
		}

		outcome, err := tx.Reservations().Cancel(ctx, reservationID)
		if err != nil {
			return err
		}
		if !outcome.Cancelled {
			return nil
		}

		payload, err := json.Marshal(shared.SlotFreedPayload{
			ReservationID: reservationID,
			ResourceID:    outcome.ResourceID,
			MemberID:      outcome.MemberID,
			SlotStart:     outcome.SlotStart,
			SlotEnd:       outcome.SlotEnd,
		})
		if err != nil {
			return errs.Wrap(err, "failed to encode slot freed payload")
		}
		return tx.Outbox().Enqueue(ctx, shared.JobSlotFreed, payload, c.clock.Now())
	})
}
