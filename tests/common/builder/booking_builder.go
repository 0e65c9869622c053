//go:build unit || e2e

package builder

import (
	"time"

	reqdto "courtbook/internal/handler/dto/request"
	"courtbook/internal/usecase/commands"
	"courtbook/internal/usecase/queries"
	"courtbook/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ReservationID uuid.UUID
	ResourceID    uuid.UUID
	ResourceName  string
	MemberID      uuid.UUID
	StartTime     time.Time
	EndTime       time.Time
	Status        string
	Guests        []reqdto.GuestDetail
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Now().UTC().Truncate(time.Second)
	start := now.Add(24 * time.Hour).Truncate(time.Hour)
	return &BookingBuilder{
		ReservationID: uuid.New(),
		ResourceID:    uuid.New(),
		ResourceName:  "Court 1",
		MemberID:      uuid.New(),
		StartTime:     start,
		EndTime:       start.Add(time.Hour),
		Status:        "confirmed",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Build methods
func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		ResourceID:   b.ResourceID,
		StartTime:    b.StartTime,
		EndTime:      b.EndTime,
		GuestDetails: b.Guests,
	}
}

func (b *BookingBuilder) BuildCreateInput() commands.CreateBookingInput {
	guests := make([]commands.GuestInput, len(b.Guests))
	for i, g := range b.Guests {
		guests[i] = commands.GuestInput{Name: g.Name, Identifier: g.Identifier, FeeCents: g.FeeCents}
	}
	return commands.CreateBookingInput{
		ResourceID: b.ResourceID,
		MemberID:   b.MemberID,
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
		Guests:     guests,
	}
}

func (b *BookingBuilder) BuildView() *queries.ReservationView {
	guests := make([]queries.GuestView, len(b.Guests))
	for i, g := range b.Guests {
		guests[i] = queries.GuestView{Name: g.Name, Identifier: g.Identifier, FeeCents: g.FeeCents}
	}
	return &queries.ReservationView{
		ID:           b.ReservationID,
		ResourceID:   b.ResourceID,
		ResourceName: b.ResourceName,
		MemberID:     b.MemberID,
		StartTime:    b.StartTime,
		EndTime:      b.EndTime,
		Status:       b.Status,
		Guests:       guests,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

func (b *BookingBuilder) BuildListItem() *queries.ReservationListItem {
	return &queries.ReservationListItem{
		ID:           b.ReservationID,
		ResourceID:   b.ResourceID,
		ResourceName: b.ResourceName,
		StartTime:    b.StartTime,
		EndTime:      b.EndTime,
		Status:       b.Status,
		GuestCount:   len(b.Guests),
		CreatedAt:    b.CreatedAt,
	}
}

func (b *BookingBuilder) BuildSnapshot() *shared.ReservationSnapshot {
	return &shared.ReservationSnapshot{
		ID:         b.ReservationID,
		ResourceID: b.ResourceID,
		MemberID:   b.MemberID,
		Status:     b.Status,
		SlotStart:  b.StartTime,
		SlotEnd:    b.EndTime,
	}
}

// Fluent builder methods
func (b *BookingBuilder) WithResourceID(id uuid.UUID) *BookingBuilder {
	b.ResourceID = id
	return b
}

func (b *BookingBuilder) WithMemberID(id uuid.UUID) *BookingBuilder {
	b.MemberID = id
	return b
}

func (b *BookingBuilder) WithSlot(start, end time.Time) *BookingBuilder {
	b.StartTime = start
	b.EndTime = end
	return b
}

func (b *BookingBuilder) WithGuest(name, identifier string, feeCents int64) *BookingBuilder {
	b.Guests = append(b.Guests, reqdto.GuestDetail{Name: name, Identifier: identifier, FeeCents: feeCents})
	return b
}

func (b *BookingBuilder) AsCancelled() *BookingBuilder {
	b.Status = "cancelled"
	return b
}
