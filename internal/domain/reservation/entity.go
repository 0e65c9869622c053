package reservation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAlreadyCancelled = errors.New("reservation is already cancelled")
	ErrInvalidStatus    = errors.New("invalid reservation status")
)

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusConfirmed, StatusCancelled:
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

// Reservation is the committed claim on one resource slot. Transitions are
// one-way: confirmed -> cancelled. A time change is cancel + rebook.
type Reservation struct {
	id         uuid.UUID
	resourceID uuid.UUID
	memberID   uuid.UUID
	timeSlot   TimeSlot
	status     Status
	guests     []Guest
	createdAt  time.Time
	updatedAt  time.Time
}

func NewReservation(resourceID, memberID uuid.UUID, slot TimeSlot, guests []Guest) *Reservation {
	return &Reservation{
		id:         uuid.New(),
		resourceID: resourceID,
		memberID:   memberID,
		timeSlot:   slot,
		status:     StatusConfirmed,
		guests:     guests,
	}
}

func ReconstructReservation(
	id, resourceID, memberID uuid.UUID,
	slot TimeSlot,
	status Status,
	guests []Guest,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:         id,
		resourceID: resourceID,
		memberID:   memberID,
		timeSlot:   slot,
		status:     status,
		guests:     guests,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// Cancel is idempotent: cancelling a cancelled reservation reports
// ErrAlreadyCancelled so callers can skip the waitlist pipeline.
func (r *Reservation) Cancel() error {
	if r.status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	r.status = StatusCancelled
	return nil
}

func (r *Reservation) IsActive() bool {
	return r.status == StatusConfirmed
}

func (r *Reservation) GuestFeesTotal() int64 {
	return TotalGuestFees(r.guests)
}

func (r *Reservation) ID() uuid.UUID         { return r.id }
func (r *Reservation) ResourceID() uuid.UUID { return r.resourceID }
func (r *Reservation) MemberID() uuid.UUID   { return r.memberID }
func (r *Reservation) TimeSlot() TimeSlot    { return r.timeSlot }
func (r *Reservation) Status() Status        { return r.status }
func (r *Reservation) Guests() []Guest       { return r.guests }
func (r *Reservation) CreatedAt() time.Time  { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time  { return r.updatedAt }
