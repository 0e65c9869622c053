package repository

import (
	"context"
	"time"

	"courtbook/internal/domain/waitlist"
	"courtbook/internal/infra"
	"courtbook/internal/infra/db"
	"courtbook/internal/pkg/pgconv"
	"courtbook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type WaitlistRepository struct {
	db db.DBTX
}

func NewWaitlistRepository(dbtx db.DBTX) *WaitlistRepository {
	return &WaitlistRepository{db: dbtx}
}

// Insert relies on the partial unique index over live entries: a second join
// for the same (resource, member, slot) hits DO NOTHING and we hand back the
// existing entry instead.
func (r *WaitlistRepository) Insert(ctx context.Context, e *waitlist.Entry) (*shared.WaitlistSnapshot, bool, error) {
	const insert = `
		INSERT INTO waitlist_entries (id, resource_id, member_id, slot_start, status)
		VALUES ($1, $2, $3, $4, 'pending')
		ON CONFLICT (resource_id, member_id, slot_start)
			WHERE status IN ('pending', 'notified') DO NOTHING
		RETURNING id, status, created_at, notified_at`

	snap := &shared.WaitlistSnapshot{
		ResourceID: e.ResourceID(),
		MemberID:   e.MemberID(),
		SlotStart:  e.SlotStart(),
	}
	err := r.db.QueryRow(ctx, insert, e.ID(), e.ResourceID(), e.MemberID(), e.SlotStart()).
		Scan(&snap.ID, &snap.Status, &snap.CreatedAt, &snap.NotifiedAt)
	if err == nil {
		return snap, true, nil
	}
	if !pgconv.IsNoRows(err) {
		return nil, false, infra.WrapRepoErr("failed to insert waitlist entry", err)
	}

	const lookup = `
		SELECT id, status, created_at, notified_at
		FROM waitlist_entries
		WHERE resource_id = $1 AND member_id = $2 AND slot_start = $3
			AND status IN ('pending', 'notified')`

	err = r.db.QueryRow(ctx, lookup, e.ResourceID(), e.MemberID(), e.SlotStart()).
		Scan(&snap.ID, &snap.Status, &snap.CreatedAt, &snap.NotifiedAt)
	if err != nil {
		return nil, false, infra.WrapRepoErr("failed to read back live waitlist entry", err)
	}
	return snap, false, nil
}

// PromotePending notifies every pending entry for the freed slot at once.
func (r *WaitlistRepository) PromotePending(ctx context.Context, resourceID uuid.UUID, slotStart time.Time, at time.Time) ([]*shared.WaitlistSnapshot, error) {
	const query = `
		UPDATE waitlist_entries
		SET status = 'notified', notified_at = $3
		WHERE resource_id = $1 AND slot_start = $2 AND status = 'pending'
		RETURNING id, resource_id, member_id, slot_start, status, created_at, notified_at`

	rows, err := r.db.Query(ctx, query, resourceID, slotStart, at)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to promote pending waitlist entries", err)
	}
	snaps, err := pgx.CollectRows(rows, scanWaitlistSnapshot)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan promoted waitlist entries", err)
	}
	return snaps, nil
}

func (r *WaitlistRepository) ConsumeNotified(ctx context.Context, resourceID, memberID uuid.UUID, slotStart time.Time) (bool, error) {
	const query = `
		UPDATE waitlist_entries
		SET status = 'consumed'
		WHERE resource_id = $1 AND member_id = $2 AND slot_start = $3 AND status = 'notified'`

	tag, err := r.db.Exec(ctx, query, resourceID, memberID, slotStart)
	if err != nil {
		return false, infra.WrapRepoErr("failed to consume notified waitlist entry", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *WaitlistRepository) Transition(ctx context.Context, id uuid.UUID, from, to waitlist.Status) (bool, error) {
	const query = `
		UPDATE waitlist_entries
		SET status = $3
		WHERE id = $1 AND status = $2`

	tag, err := r.db.Exec(ctx, query, id, string(from), string(to))
	if err != nil {
		return false, infra.WrapRepoErr("failed to transition waitlist entry", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *WaitlistRepository) ExpireOverdue(ctx context.Context, deadline time.Time) (int64, error) {
	const query = `
		UPDATE waitlist_entries
		SET status = 'expired'
		WHERE status = 'notified' AND notified_at <= $1`

	tag, err := r.db.Exec(ctx, query, deadline)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to expire overdue waitlist entries", err)
	}
	return tag.RowsAffected(), nil
}

func scanWaitlistSnapshot(row pgx.CollectableRow) (*shared.WaitlistSnapshot, error) {
	var snap shared.WaitlistSnapshot
	err := row.Scan(&snap.ID, &snap.ResourceID, &snap.MemberID, &snap.SlotStart,
		&snap.Status, &snap.CreatedAt, &snap.NotifiedAt)
	return &snap, err
}
