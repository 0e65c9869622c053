package readstore

import (
	"context"

	"courtbook/internal/infra"
	"courtbook/internal/infra/db"
	"courtbook/internal/pkg/errs"
	"courtbook/internal/pkg/pgconv"
	"courtbook/internal/usecase/shared"

	"github.com/google/uuid"
)

type WaitlistReadStore struct {
	db db.DBTX
}

func NewWaitlistReadStore(dbtx db.DBTX) *WaitlistReadStore {
	return &WaitlistReadStore{db: dbtx}
}

func (r *WaitlistReadStore) FindByID(ctx context.Context, id uuid.UUID) (*shared.WaitlistSnapshot, error) {
	const query = `
		SELECT id, resource_id, member_id, slot_start, status, created_at, notified_at
		FROM waitlist_entries
		WHERE id = $1`

	var snap shared.WaitlistSnapshot
	err := r.db.QueryRow(ctx, query, id).Scan(
		&snap.ID, &snap.ResourceID, &snap.MemberID, &snap.SlotStart,
		&snap.Status, &snap.CreatedAt, &snap.NotifiedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, errs.Mark(
				infra.WrapRepoErr("waitlist entry not found", err, infra.KindNotFound),
				errs.ErrWaitlistEntryNotFound,
			)
		}
		return nil, infra.WrapRepoErr("failed to find waitlist entry by ID", err)
	}
	return &snap, nil
}
