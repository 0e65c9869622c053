package readstore

import (
	"context"
	"time"

	"courtbook/internal/infra"
	"courtbook/internal/infra/converter"
	"courtbook/internal/infra/db"
	"courtbook/internal/pkg/errs"
	"courtbook/internal/pkg/pgconv"
	"courtbook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ReservationReadStore struct {
	db db.DBTX
}

func NewReservationReadStore(dbtx db.DBTX) *ReservationReadStore {
	return &ReservationReadStore{db: dbtx}
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	const query = `
		SELECT rv.id, rv.resource_id, rs.name, rv.member_id,
			lower(rv.slot), upper(rv.slot), rv.status, rv.guests,
			rv.created_at, rv.updated_at
		FROM reservations rv
		JOIN resources rs ON rs.id = rv.resource_id
		WHERE rv.id = $1`

	var view queries.ReservationView
	var guests []byte
	err := r.db.QueryRow(ctx, query, id).Scan(
		&view.ID, &view.ResourceID, &view.ResourceName, &view.MemberID,
		&view.StartTime, &view.EndTime, &view.Status, &guests,
		&view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, errs.Mark(
				infra.WrapRepoErr("reservation not found", err, infra.KindNotFound),
				errs.ErrReservationNotFound,
			)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}

	view.Guests, err = converter.GuestViewsFromJSON(guests)
	if err != nil {
		return nil, infra.WrapRepoErr("reservation guests column is malformed", err)
	}
	return &view, nil
}

func (r *ReservationReadStore) FindByMemberID(ctx context.Context, memberID uuid.UUID, limit int32) ([]*queries.ReservationListItem, error) {
	const query = `
		SELECT rv.id, rv.resource_id, rs.name,
			lower(rv.slot), upper(rv.slot), rv.status, rv.guests, rv.created_at
		FROM reservations rv
		JOIN resources rs ON rs.id = rv.resource_id
		WHERE rv.member_id = $1
		ORDER BY lower(rv.slot) DESC
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, memberID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find reservations by member", err)
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*queries.ReservationListItem, error) {
		var item queries.ReservationListItem
		var guests []byte
		err := row.Scan(&item.ID, &item.ResourceID, &item.ResourceName,
			&item.StartTime, &item.EndTime, &item.Status, &guests, &item.CreatedAt)
		item.GuestCount = converter.GuestCountFromJSON(guests)
		return &item, err
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan reservation list", err)
	}
	return items, nil
}

// HasConfirmedOverlapping backs the waitlist join gate.
func (r *ReservationReadStore) HasConfirmedOverlapping(ctx context.Context, resourceID uuid.UUID, start, end time.Time) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM reservations
			WHERE resource_id = $1 AND status = 'confirmed'
				AND slot && tstzrange($2, $3, '[)')
		)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, resourceID, start, end).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check for confirmed reservation", err)
	}
	return exists, nil
}
