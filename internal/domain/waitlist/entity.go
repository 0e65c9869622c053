package waitlist

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus     = errors.New("invalid waitlist status")
	ErrInvalidTransition = errors.New("invalid waitlist transition")
)

type Status string

// Lifecycle: pending -> notified -> {consumed | expired}. A member-initiated
// withdrawal from pending is its own terminal state, not an expiry.
const (
	StatusPending   Status = "pending"
	StatusNotified  Status = "notified"
	StatusConsumed  Status = "consumed"
	StatusExpired   Status = "expired"
	StatusWithdrawn Status = "withdrawn"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusNotified, StatusConsumed, StatusExpired, StatusWithdrawn:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	switch s {
	case StatusConsumed, StatusExpired, StatusWithdrawn:
		return true
	default:
		return false
	}
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// Entry records one member's desire to book a specific resource slot once it
// frees up. Entries target the exact slot start, not a range.
type Entry struct {
	id         uuid.UUID
	resourceID uuid.UUID
	memberID   uuid.UUID
	slotStart  time.Time
	status     Status
	createdAt  time.Time
	notifiedAt *time.Time
}

func NewEntry(resourceID, memberID uuid.UUID, slotStart time.Time) *Entry {
	return &Entry{
		id:         uuid.New(),
		resourceID: resourceID,
		memberID:   memberID,
		slotStart:  slotStart,
		status:     StatusPending,
	}
}

func ReconstructEntry(
	id, resourceID, memberID uuid.UUID,
	slotStart time.Time,
	status Status,
	createdAt time.Time,
	notifiedAt *time.Time,
) *Entry {
	return &Entry{
		id:         id,
		resourceID: resourceID,
		memberID:   memberID,
		slotStart:  slotStart,
		status:     status,
		createdAt:  createdAt,
		notifiedAt: notifiedAt,
	}
}

// Notify marks the entry as told about the freed slot.
func (e *Entry) Notify(at time.Time) error {
	if e.status != StatusPending {
		return ErrInvalidTransition
	}
	e.status = StatusNotified
	e.notifiedAt = &at
	return nil
}

// Consume closes the entry after the member booked the freed slot.
func (e *Entry) Consume() error {
	if e.status != StatusNotified {
		return ErrInvalidTransition
	}
	e.status = StatusConsumed
	return nil
}

// Expire closes the entry once the grace window lapses without a booking.
func (e *Entry) Expire() error {
	if e.status != StatusNotified {
		return ErrInvalidTransition
	}
	e.status = StatusExpired
	return nil
}

// Withdraw is the member backing out before any notification.
func (e *Entry) Withdraw() error {
	if e.status != StatusPending {
		return ErrInvalidTransition
	}
	e.status = StatusWithdrawn
	return nil
}

// GraceDeadline is the instant after which a notified entry may expire.
func (e *Entry) GraceDeadline(grace time.Duration) (time.Time, bool) {
	if e.status != StatusNotified || e.notifiedAt == nil {
		return time.Time{}, false
	}
	return e.notifiedAt.Add(grace), true
}

func (e *Entry) ID() uuid.UUID          { return e.id }
func (e *Entry) ResourceID() uuid.UUID  { return e.resourceID }
func (e *Entry) MemberID() uuid.UUID    { return e.memberID }
func (e *Entry) SlotStart() time.Time   { return e.slotStart }
func (e *Entry) Status() Status         { return e.status }
func (e *Entry) CreatedAt() time.Time   { return e.createdAt }
func (e *Entry) NotifiedAt() *time.Time { return e.notifiedAt }
