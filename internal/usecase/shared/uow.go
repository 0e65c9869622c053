package shared

import (
	"context"
	"time"

	"courtbook/internal/domain/reservation"
	"courtbook/internal/domain/resource"
	"courtbook/internal/domain/waitlist"

	"github.com/google/uuid"
)

// UnitOfWork wraps every write path in a retried transaction; see
// infra/uow for the Postgres implementation.
type UnitOfWork interface {
	// Within: full transaction for write operations with retry on
	// serialization failures and deadlocks.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: validation reads outside a transaction.
	CommandReads() CommandReads
}

type Tx interface {
	Reservations() ReservationRepository
	Waitlist() WaitlistRepository
	Maintenance() MaintenanceRepository
	Outbox() OutboxRepository
	Reads() CommandReads
}

type CommandReads interface {
	ResourceByID(ctx context.Context, id uuid.UUID) (*ResourceSnapshot, error)
	MemberByID(ctx context.Context, id uuid.UUID) (*MemberSnapshot, error)
	ReservationByID(ctx context.Context, id uuid.UUID) (*ReservationSnapshot, error)
	WaitlistEntryByID(ctx context.Context, id uuid.UUID) (*WaitlistSnapshot, error)
	// HasConfirmedReservationIn reports whether any confirmed reservation
	// overlaps [start, end) on the resource.
	HasConfirmedReservationIn(ctx context.Context, resourceID uuid.UUID, start, end time.Time) (bool, error)
	// MaintenanceWindowExists lets the worker skip scheduled events for
	// windows deleted after their jobs were enqueued.
	MaintenanceWindowExists(ctx context.Context, id uuid.UUID) (bool, error)
}

type ReservationRepository interface {
	Create(ctx context.Context, res *reservation.Reservation) (uuid.UUID, error)
	// Cancel flips confirmed -> cancelled. Cancelled=false with nil error
	// means the reservation was already cancelled (idempotent no-op).
	Cancel(ctx context.Context, id uuid.UUID) (*CancelOutcome, error)
}

type WaitlistRepository interface {
	// Insert is idempotent per (resource, slot start, member): when a live
	// entry already exists it is returned with created=false.
	Insert(ctx context.Context, e *waitlist.Entry) (entry *WaitlistSnapshot, created bool, err error)
	// PromotePending flips every pending entry for the exact slot to
	// notified and returns the promoted snapshots (simultaneous fan-out).
	PromotePending(ctx context.Context, resourceID uuid.UUID, slotStart time.Time, at time.Time) ([]*WaitlistSnapshot, error)
	// ConsumeNotified closes a notified entry matching a successful booking.
	ConsumeNotified(ctx context.Context, resourceID, memberID uuid.UUID, slotStart time.Time) (bool, error)
	// Transition moves one entry between statuses; false when the entry was
	// not in the expected from status.
	Transition(ctx context.Context, id uuid.UUID, from, to waitlist.Status) (bool, error)
	// ExpireOverdue closes notified entries whose notification is older than
	// the deadline and returns how many were expired.
	ExpireOverdue(ctx context.Context, deadline time.Time) (int64, error)
}

type MaintenanceRepository interface {
	Insert(ctx context.Context, resourceID uuid.UUID, startAt, endAt time.Time, reason string) (uuid.UUID, error)
	// Delete returns the removed window, or nil when nothing matched.
	Delete(ctx context.Context, id uuid.UUID) (*MaintenanceSnapshot, error)
}

type OutboxRepository interface {
	Enqueue(ctx context.Context, kind string, payload []byte, runAt time.Time) error
	// ClaimDue locks up to limit due jobs for this worker (SKIP LOCKED).
	ClaimDue(ctx context.Context, now time.Time, limit int32) ([]*OutboxJob, error)
	MarkDone(ctx context.Context, id uuid.UUID) error
	// MarkFailed bumps the attempt counter and reschedules or buries the job.
	MarkFailed(ctx context.Context, id uuid.UUID, lastError string, retryAt *time.Time) error
}

type CancelOutcome struct {
	Cancelled  bool // false: already cancelled
	ResourceID uuid.UUID
	MemberID   uuid.UUID
	SlotStart  time.Time
	SlotEnd    time.Time
}

type ResourceSnapshot struct {
	ID                 uuid.UUID
	Name               string
	OpenHour           int
	CloseHour          int
	SlotGranularityMin int
	Timezone           string
	BusyFeedURL        *string
}

func (s *ResourceSnapshot) ToDomain() (*resource.Resource, error) {
	return resource.NewResource(s.ID, s.Name, s.OpenHour, s.CloseHour, s.SlotGranularityMin, s.Timezone, s.BusyFeedURL)
}

type MemberSnapshot struct {
	ID       uuid.UUID
	Email    string
	Role     string
	Standing string
}

type ReservationSnapshot struct {
	ID         uuid.UUID
	ResourceID uuid.UUID
	MemberID   uuid.UUID
	Status     string
	SlotStart  time.Time
	SlotEnd    time.Time
}

type WaitlistSnapshot struct {
	ID         uuid.UUID
	ResourceID uuid.UUID
	MemberID   uuid.UUID
	SlotStart  time.Time
	Status     string
	CreatedAt  time.Time
	NotifiedAt *time.Time
}

type MaintenanceSnapshot struct {
	ID         uuid.UUID
	ResourceID uuid.UUID
	StartAt    time.Time
	EndAt      time.Time
	Reason     string
}

type OutboxJob struct {
	ID       uuid.UUID
	Kind     string
	Payload  []byte
	RunAt    time.Time
	Attempts int32
}
