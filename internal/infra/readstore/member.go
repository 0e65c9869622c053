package readstore

import (
	"context"

	"courtbook/internal/infra"
	"courtbook/internal/infra/db"
	"courtbook/internal/pkg/pgconv"
	"courtbook/internal/usecase/shared"

	"github.com/google/uuid"
)

// MemberReadStore serves the eligibility gate; the membership system owns the
// rows, we only read role and standing.
type MemberReadStore struct {
	db db.DBTX
}

func NewMemberReadStore(dbtx db.DBTX) *MemberReadStore {
	return &MemberReadStore{db: dbtx}
}

func (r *MemberReadStore) FindByID(ctx context.Context, id uuid.UUID) (*shared.MemberSnapshot, error) {
	const query = `
		SELECT id, email, role, standing
		FROM members
		WHERE id = $1`

	var snap shared.MemberSnapshot
	err := r.db.QueryRow(ctx, query, id).Scan(&snap.ID, &snap.Email, &snap.Role, &snap.Standing)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("member not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find member by ID", err)
	}
	return &snap, nil
}
