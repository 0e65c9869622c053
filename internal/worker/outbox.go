package worker

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"courtbook/internal/notifier"
	"courtbook/internal/pkg/clock"
	"courtbook/internal/pkg/errs"
	"courtbook/internal/usecase/commands"
	"courtbook/internal/usecase/shared"
)

const (
	claimBatchSize = 10
	maxJobAttempts = 5
	retryBase      = 5 * time.Second
)

// Worker drains the notification_jobs outbox and sweeps overdue waitlist
// notifications. Jobs are claimed with SKIP LOCKED, so multiple instances can
// run side by side.
type Worker struct {
	uow      shared.UnitOfWork
	waitlist commands.WaitlistCommands
	events   notifier.Publisher
	billing  BillingGateway
	clock    clock.Clock
	interval time.Duration

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewWorker(
	uow shared.UnitOfWork,
	waitlist commands.WaitlistCommands,
	events notifier.Publisher,
	billing BillingGateway,
	clk clock.Clock,
	interval time.Duration,
) *Worker {
	return &Worker{
		uow:      uow,
		waitlist: waitlist,
		events:   events,
		billing:  billing,
		clock:    clk,
		interval: interval,
	}
}

func (w *Worker) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	w.wg.Add(1)
	go w.loop(ctx)
}

func (w *Worker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}

func (w *Worker) loop(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.drainOutbox(ctx); err != nil {
				slog.Error("outbox drain failed", "error", err.Error())
			}
			if expired, err := w.waitlist.ExpireOverdue(ctx); err != nil {
				slog.Error("waitlist expiry sweep failed", "error", err.Error())
			} else if expired > 0 {
				slog.Info("expired overdue waitlist entries", "count", expired)
			}
		}
	}
}

// drainOutbox claims one batch and handles each job inside the claiming
// transaction, so a crash re-delivers unfinished jobs (at-least-once).
func (w *Worker) drainOutbox(ctx context.Context) error {
	return w.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		jobs, err := tx.Outbox().ClaimDue(ctx, w.clock.Now(), claimBatchSize)
		if err != nil {
			return err
		}

		for _, job := range jobs {
			if err := w.handle(ctx, tx, job); err != nil {
				slog.Warn("notification job failed",
					"job_id", job.ID.String(),
					"kind", job.Kind,
					"attempt", job.Attempts+1,
					"error", err.Error())

				var retryAt *time.Time
				if job.Attempts+1 < maxJobAttempts {
					at := w.clock.Now().Add(retryBase << job.Attempts)
					retryAt = &at
				}
				if markErr := tx.Outbox().MarkFailed(ctx, job.ID, err.Error(), retryAt); markErr != nil {
					return markErr
				}
				continue
			}
			if err := tx.Outbox().MarkDone(ctx, job.ID); err != nil {
				return err
			}
		}
		return nil
	})
}

func (w *Worker) handle(ctx context.Context, tx shared.Tx, job *shared.OutboxJob) error {
	switch job.Kind {
	case shared.JobSlotFreed:
		return w.handleSlotFreed(ctx, tx, job.Payload)
	case shared.JobBillingHold:
		return w.handleBillingHold(ctx, job.Payload)
	case shared.JobMaintenanceStart:
		return w.handleMaintenance(ctx, tx, job.Payload, notifier.EventMaintenanceStart)
	case shared.JobMaintenanceEnd:
		return w.handleMaintenance(ctx, tx, job.Payload, notifier.EventMaintenanceEnd)
	default:
		return errs.Newf("unknown job kind %q", job.Kind)
	}
}

// handleSlotFreed announces the cancellation, then promotes every pending
// waitlist entry for the slot in one shot. Promoted members race for the slot
// through the normal booking path; the conflict guard picks the winner.
func (w *Worker) handleSlotFreed(ctx context.Context, tx shared.Tx, payload []byte) error {
	var freed shared.SlotFreedPayload
	if err := json.Unmarshal(payload, &freed); err != nil {
		return errs.Wrap(err, "malformed slot_freed payload")
	}

	cancelled, err := notifier.NewEvent(notifier.EventBookingCancelled, freed.ResourceID, map[string]any{
		"reservation_id": freed.ReservationID,
		"slot_start":     freed.SlotStart,
		"slot_end":       freed.SlotEnd,
	})
	if err != nil {
		return err
	}
	w.events.Publish(cancelled)

	promoted, err := tx.Waitlist().PromotePending(ctx, freed.ResourceID, freed.SlotStart, w.clock.Now())
	if err != nil {
		return err
	}
	if len(promoted) == 0 {
		return nil
	}

	available, err := notifier.NewEvent(notifier.EventSlotAvailable, freed.ResourceID, map[string]any{
		"slot_start":       freed.SlotStart,
		"slot_end":         freed.SlotEnd,
		"notified_members": len(promoted),
	})
	if err != nil {
		return err
	}
	w.events.Publish(available)

	slog.Info("waitlist promoted",
		"resource_id", freed.ResourceID.String(),
		"slot_start", freed.SlotStart,
		"notified", len(promoted))
	return nil
}

func (w *Worker) handleBillingHold(ctx context.Context, payload []byte) error {
	var hold shared.BillingHoldPayload
	if err := json.Unmarshal(payload, &hold); err != nil {
		return errs.Wrap(err, "malformed billing_hold payload")
	}
	return w.billing.PlaceHold(ctx, hold)
}

func (w *Worker) handleMaintenance(ctx context.Context, tx shared.Tx, payload []byte, eventType notifier.EventType) error {
	var mp shared.MaintenancePayload
	if err := json.Unmarshal(payload, &mp); err != nil {
		return errs.Wrap(err, "malformed maintenance payload")
	}

	// Windows can be deleted after their events were scheduled.
	exists, err := tx.Reads().MaintenanceWindowExists(ctx, mp.WindowID)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}

	event, err := notifier.NewEvent(eventType, mp.ResourceID, map[string]any{
		"window_id": mp.WindowID,
		"start_at":  mp.StartAt,
		"end_at":    mp.EndAt,
	})
	if err != nil {
		return err
	}
	w.events.Publish(event)
	return nil
}
