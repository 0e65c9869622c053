package shared

import (
	"time"

	"github.com/google/uuid"
)

// Outbox job kinds. Jobs are written inside the same transaction as the state
// change they announce, so downstream effects are ordered after durable commit.
const (
	JobSlotFreed        = "slot_freed"
	JobBillingHold      = "billing_hold"
	JobMaintenanceStart = "maintenance_start"
	JobMaintenanceEnd   = "maintenance_end"
)

// SlotFreedPayload announces a cancellation. The worker publishes
// BOOKING_CANCELLED, then promotes pending waitlist entries for the slot.
type SlotFreedPayload struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	ResourceID    uuid.UUID `json:"resource_id"`
	MemberID      uuid.UUID `json:"member_id"`
	SlotStart     time.Time `json:"slot_start"`
	SlotEnd       time.Time `json:"slot_end"`
}

// BillingHoldPayload asks the billing collaborator to place a hold for guest
// fees. Fire and forget: billing failures never unwind the reservation.
type BillingHoldPayload struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	MemberID      uuid.UUID `json:"member_id"`
	AmountCents   int64     `json:"amount_cents"`
	GuestCount    int       `json:"guest_count"`
}

// MaintenancePayload drives the scheduled MAINTENANCE_START / MAINTENANCE_END
// events; run_at carries the schedule, the payload only identifies the window.
type MaintenancePayload struct {
	WindowID   uuid.UUID `json:"window_id"`
	ResourceID uuid.UUID `json:"resource_id"`
	StartAt    time.Time `json:"start_at"`
	EndAt      time.Time `json:"end_at"`
}
