package repository

import (
	"context"
	"time"

	"courtbook/internal/infra"
	"courtbook/internal/infra/db"
	"courtbook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type OutboxRepository struct {
	db db.DBTX
}

func NewOutboxRepository(dbtx db.DBTX) *OutboxRepository {
	return &OutboxRepository{db: dbtx}
}

func (r *OutboxRepository) Enqueue(ctx context.Context, kind string, payload []byte, runAt time.Time) error {
	const query = `
		INSERT INTO notification_jobs (id, kind, payload, run_at)
		VALUES ($1, $2, $3, $4)`

	if _, err := r.db.Exec(ctx, query, uuid.New(), kind, payload, runAt); err != nil {
		return infra.WrapRepoErr("failed to enqueue notification job", err)
	}
	return nil
}

// ClaimDue must run inside a transaction; SKIP LOCKED keeps concurrent
// workers off each other's batch until commit.
func (r *OutboxRepository) ClaimDue(ctx context.Context, now time.Time, limit int32) ([]*shared.OutboxJob, error) {
	const query = `
		SELECT id, kind, payload, run_at, attempts
		FROM notification_jobs
		WHERE status = 'queued' AND run_at <= $1
		ORDER BY run_at, created_at
		LIMIT $2
		FOR UPDATE SKIP LOCKED`

	rows, err := r.db.Query(ctx, query, now, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim due notification jobs", err)
	}
	jobs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*shared.OutboxJob, error) {
		var job shared.OutboxJob
		err := row.Scan(&job.ID, &job.Kind, &job.Payload, &job.RunAt, &job.Attempts)
		return &job, err
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan notification jobs", err)
	}
	return jobs, nil
}

func (r *OutboxRepository) MarkDone(ctx context.Context, id uuid.UUID) error {
	const query = `
		UPDATE notification_jobs
		SET status = 'done', updated_at = now()
		WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, id); err != nil {
		return infra.WrapRepoErr("failed to mark notification job done", err)
	}
	return nil
}

// MarkFailed reschedules when retryAt is set, otherwise buries the job.
func (r *OutboxRepository) MarkFailed(ctx context.Context, id uuid.UUID, lastError string, retryAt *time.Time) error {
	if retryAt != nil {
		const reschedule = `
			UPDATE notification_jobs
			SET attempts = attempts + 1, last_error = $2, run_at = $3, updated_at = now()
			WHERE id = $1`
		if _, err := r.db.Exec(ctx, reschedule, id, lastError, *retryAt); err != nil {
			return infra.WrapRepoErr("failed to reschedule notification job", err)
		}
		return nil
	}

	const bury = `
		UPDATE notification_jobs
		SET status = 'failed', attempts = attempts + 1, last_error = $2, updated_at = now()
		WHERE id = $1`
	if _, err := r.db.Exec(ctx, bury, id, lastError); err != nil {
		return infra.WrapRepoErr("failed to bury notification job", err)
	}
	return nil
}
