package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Read models (DTOs for the read side)

type ReservationView struct {
	ID           uuid.UUID   `json:"id"`
	ResourceID   uuid.UUID   `json:"resource_id"`
	ResourceName string      `json:"resource_name"`
	MemberID     uuid.UUID   `json:"member_id"`
	StartTime    time.Time   `json:"start_time"`
	EndTime      time.Time   `json:"end_time"`
	Status       string      `json:"status"`
	Guests       []GuestView `json:"guests,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

type GuestView struct {
	Name       string `json:"name"`
	Identifier string `json:"identifier,omitempty"`
	FeeCents   int64  `json:"fee_cents"`
}

type ReservationListItem struct {
	ID           uuid.UUID `json:"id"`
	ResourceID   uuid.UUID `json:"resource_id"`
	ResourceName string    `json:"resource_name"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Status       string    `json:"status"`
	GuestCount   int       `json:"guest_count"`
	CreatedAt    time.Time `json:"created_at"`
}

type ResourceView struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	OpenHour           int       `json:"open_hour"`
	CloseHour          int       `json:"close_hour"`
	SlotGranularityMin int       `json:"slot_granularity_min"`
	Timezone           string    `json:"timezone"`
	BusyFeedURL        *string   `json:"-"`
}

type WaitlistEntryView struct {
	ID         uuid.UUID  `json:"id"`
	ResourceID uuid.UUID  `json:"resource_id"`
	MemberID   uuid.UUID  `json:"member_id"`
	SlotStart  time.Time  `json:"slot_start"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	NotifiedAt *time.Time `json:"notified_at,omitempty"`
}

type ReservationQueries interface {
	GetByID(ctx context.Context, actorID uuid.UUID, actorRole string, id uuid.UUID) (*ReservationView, error)
	ListByMember(ctx context.Context, memberID uuid.UUID, limit int) ([]*ReservationListItem, error)
}

type ReservationReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	FindByMemberID(ctx context.Context, memberID uuid.UUID, limit int32) ([]*ReservationListItem, error)
}
