package repository

import (
	"context"
	"errors"
	"time"

	"courtbook/internal/domain/reservation"
	"courtbook/internal/infra"
	"courtbook/internal/infra/converter"
	"courtbook/internal/infra/db"
	"courtbook/internal/pkg/errs"
	"courtbook/internal/pkg/pgconv"
	"courtbook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgErrCodeExclusionViolation  = "23P01"
	pgErrCodeUniqueViolation     = "23505"
	pgErrCodeForeignKeyViolation = "23503"
)

type ReservationRepository struct {
	db db.DBTX
}

func NewReservationRepository(dbtx db.DBTX) *ReservationRepository {
	return &ReservationRepository{db: dbtx}
}

// Create commits the slot claim. The exclusion constraint on (resource_id,
// slot) arbitrates concurrent inserts; losing the race surfaces as
// errs.ErrSlotConflict, not as a serialization retry.
func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) (uuid.UUID, error) {
	guests, err := converter.GuestsToJSON(res.Guests())
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to encode reservation guests", err)
	}

	const query = `
		INSERT INTO reservations (id, resource_id, member_id, slot, status, guests)
		VALUES ($1, $2, $3, $4::tstzrange, $5, $6)
		RETURNING id`

	var id uuid.UUID
	err = r.db.QueryRow(ctx, query,
		res.ID(),
		res.ResourceID(),
		res.MemberID(),
		pgconv.RangeToTstzrange(res.TimeSlot().Start(), res.TimeSlot().End()),
		string(res.Status()),
		guests,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgErrCodeExclusionViolation:
				return uuid.Nil, errs.Mark(
					infra.WrapRepoErr("slot overlaps a confirmed reservation", err, infra.KindConflict),
					errs.ErrSlotConflict,
				)
			case pgErrCodeForeignKeyViolation:
				return uuid.Nil, infra.WrapRepoErr("reservation references a missing row", err, infra.KindForeignKeyViolated)
			case pgErrCodeUniqueViolation:
				return uuid.Nil, infra.WrapRepoErr("duplicate reservation id", err, infra.KindDuplicateKey)
			}
		}
		return uuid.Nil, infra.WrapRepoErr("failed to create reservation", err)
	}
	return id, nil
}

// Cancel flips confirmed to cancelled. Zero rows on an existing reservation
// means it was already cancelled; the outcome reports that without error so
// callers stay idempotent.
func (r *ReservationRepository) Cancel(ctx context.Context, id uuid.UUID) (*shared.CancelOutcome, error) {
	const update = `
		UPDATE reservations
		SET status = 'cancelled', updated_at = now()
		WHERE id = $1 AND status = 'confirmed'
		RETURNING resource_id, member_id, lower(slot), upper(slot)`

	outcome := &shared.CancelOutcome{Cancelled: true}
	err := r.db.QueryRow(ctx, update, id).Scan(
		&outcome.ResourceID, &outcome.MemberID, &outcome.SlotStart, &outcome.SlotEnd,
	)
	if err == nil {
		return outcome, nil
	}
	if !pgconv.IsNoRows(err) {
		return nil, infra.WrapRepoErr("failed to cancel reservation", err)
	}

	const lookup = `
		SELECT resource_id, member_id, lower(slot), upper(slot)
		FROM reservations
		WHERE id = $1`

	var resourceID, memberID uuid.UUID
	var slotStart, slotEnd time.Time
	err = r.db.QueryRow(ctx, lookup, id).Scan(&resourceID, &memberID, &slotStart, &slotEnd)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, errs.Mark(
				infra.WrapRepoErr("reservation not found", err, infra.KindNotFound),
				errs.ErrReservationNotFound,
			)
		}
		return nil, infra.WrapRepoErr("failed to look up reservation", err)
	}
	return &shared.CancelOutcome{
		Cancelled:  false,
		ResourceID: resourceID,
		MemberID:   memberID,
		SlotStart:  slotStart,
		SlotEnd:    slotEnd,
	}, nil
}
