package response

import (
	"time"

	"courtbook/internal/usecase/queries"

	"github.com/google/uuid"
)

type AvailabilitySlotResponse struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Status    string    `json:"status"`
}

type AvailabilityResponse struct {
	ResourceID    uuid.UUID                  `json:"resourceId"`
	Date          string                     `json:"date"`
	Slots         []AvailabilitySlotResponse `json:"slots"`
	RemainingDays int                        `json:"windowRemainingDays"`
	Stale         bool                       `json:"stale,omitempty"`
}

func FromAvailabilityView(view *queries.AvailabilityView) *AvailabilityResponse {
	slots := make([]AvailabilitySlotResponse, len(view.Slots))
	for i, s := range view.Slots {
		slots[i] = AvailabilitySlotResponse{StartTime: s.Start, EndTime: s.End, Status: string(s.Status)}
	}
	return &AvailabilityResponse{
		ResourceID:    view.ResourceID,
		Date:          view.Date,
		Slots:         slots,
		RemainingDays: view.RemainingDays,
		Stale:         view.Stale,
	}
}
