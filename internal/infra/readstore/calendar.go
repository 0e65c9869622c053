package readstore

import (
	"context"
	"time"

	"courtbook/internal/infra"
	"courtbook/internal/infra/db"
	"courtbook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CalendarReadStore assembles the canonical busy calendar from our own
// reservations and maintenance windows. External feeds are fetched elsewhere.
type CalendarReadStore struct {
	db        db.DBTX
	resources *ResourceReadStore
}

func NewCalendarReadStore(dbtx db.DBTX) *CalendarReadStore {
	return &CalendarReadStore{db: dbtx, resources: NewResourceReadStore(dbtx)}
}

func (r *CalendarReadStore) FindResourceByID(ctx context.Context, id uuid.UUID) (*queries.ResourceView, error) {
	return r.resources.FindByID(ctx, id)
}

func (r *CalendarReadStore) BusyCalendarFor(ctx context.Context, resourceID uuid.UUID, from, to time.Time) (queries.BusyCalendar, error) {
	cal := queries.BusyCalendar{Format: queries.FormatSlots}

	const reservations = `
		SELECT lower(slot), upper(slot)
		FROM reservations
		WHERE resource_id = $1 AND status = 'confirmed'
			AND slot && tstzrange($2, $3, '[)')
		ORDER BY lower(slot)`

	rows, err := r.db.Query(ctx, reservations, resourceID, from, to)
	if err != nil {
		return cal, infra.WrapRepoErr("failed to load busy reservations", err)
	}
	booked, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (queries.BusySlot, error) {
		s := queries.BusySlot{Kind: queries.BusyReserved}
		err := row.Scan(&s.Start, &s.End)
		return s, err
	})
	if err != nil {
		return cal, infra.WrapRepoErr("failed to scan busy reservations", err)
	}
	cal.Slots = booked

	const maintenance = `
		SELECT starts_at, ends_at
		FROM maintenance_windows
		WHERE resource_id = $1 AND starts_at < $3 AND ends_at > $2
		ORDER BY starts_at`

	rows, err = r.db.Query(ctx, maintenance, resourceID, from, to)
	if err != nil {
		return cal, infra.WrapRepoErr("failed to load maintenance windows", err)
	}
	blocked, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (queries.BusySlot, error) {
		s := queries.BusySlot{Kind: queries.BusyMaintenance}
		err := row.Scan(&s.Start, &s.End)
		return s, err
	})
	if err != nil {
		return cal, infra.WrapRepoErr("failed to scan maintenance windows", err)
	}
	cal.Slots = append(cal.Slots, blocked...)

	return cal, nil
}
