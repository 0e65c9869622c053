package repository

import (
	"context"
	"errors"
	"time"

	"courtbook/internal/infra"
	"courtbook/internal/infra/db"
	"courtbook/internal/pkg/pgconv"
	"courtbook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type MaintenanceRepository struct {
	db db.DBTX
}

func NewMaintenanceRepository(dbtx db.DBTX) *MaintenanceRepository {
	return &MaintenanceRepository{db: dbtx}
}

func (r *MaintenanceRepository) Insert(ctx context.Context, resourceID uuid.UUID, startAt, endAt time.Time, reason string) (uuid.UUID, error) {
	const query = `
		INSERT INTO maintenance_windows (id, resource_id, starts_at, ends_at, reason)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	var id uuid.UUID
	err := r.db.QueryRow(ctx, query, uuid.New(), resourceID, startAt, endAt, reason).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrCodeForeignKeyViolation {
			return uuid.Nil, infra.WrapRepoErr("maintenance window references a missing resource", err, infra.KindForeignKeyViolated)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to insert maintenance window", err)
	}
	return id, nil
}

func (r *MaintenanceRepository) Delete(ctx context.Context, id uuid.UUID) (*shared.MaintenanceSnapshot, error) {
	const query = `
		DELETE FROM maintenance_windows
		WHERE id = $1
		RETURNING id, resource_id, starts_at, ends_at, reason`

	var snap shared.MaintenanceSnapshot
	err := r.db.QueryRow(ctx, query, id).Scan(&snap.ID, &snap.ResourceID, &snap.StartAt, &snap.EndAt, &snap.Reason)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to delete maintenance window", err)
	}
	return &snap, nil
}
