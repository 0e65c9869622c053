package readstore

import (
	"context"

	"courtbook/internal/infra"
	"courtbook/internal/infra/db"

	"github.com/google/uuid"
)

type MaintenanceReadStore struct {
	db db.DBTX
}

func NewMaintenanceReadStore(dbtx db.DBTX) *MaintenanceReadStore {
	return &MaintenanceReadStore{db: dbtx}
}

// Exists lets the scheduler skip events for windows deleted after enqueue.
func (r *MaintenanceReadStore) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM maintenance_windows WHERE id = $1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check maintenance window", err)
	}
	return exists, nil
}
