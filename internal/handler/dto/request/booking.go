package request

import (
	"time"

	"courtbook/internal/usecase/commands"

	"github.com/google/uuid"
)

type GuestDetail struct {
	Name       string `json:"name" binding:"required"`
	Identifier string `json:"identifier"`
	FeeCents   int64  `json:"fee_cents" binding:"gte=0"`
}

type CreateBookingRequest struct {
	ResourceID   uuid.UUID     `json:"resource_id" binding:"required"`
	StartTime    time.Time     `json:"start_time" binding:"required"`
	EndTime      time.Time     `json:"end_time" binding:"required"`
	GuestDetails []GuestDetail `json:"guest_details" binding:"omitempty,dive"`
}

func (r *CreateBookingRequest) GuestInputs() []commands.GuestInput {
	guests := make([]commands.GuestInput, len(r.GuestDetails))
	for i, g := range r.GuestDetails {
		guests[i] = commands.GuestInput{Name: g.Name, Identifier: g.Identifier, FeeCents: g.FeeCents}
	}
	return guests
}
