package response

import (
	"time"

	"courtbook/internal/usecase/shared"

	"github.com/google/uuid"
)

type WaitlistEntryResponse struct {
	ID         uuid.UUID  `json:"id"`
	ResourceID uuid.UUID  `json:"resourceId"`
	MemberID   uuid.UUID  `json:"memberId"`
	SlotStart  time.Time  `json:"slotStart"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"createdAt"`
	NotifiedAt *time.Time `json:"notifiedAt,omitempty"`
}

func FromWaitlistSnapshot(snap *shared.WaitlistSnapshot) *WaitlistEntryResponse {
	return &WaitlistEntryResponse{
		ID:         snap.ID,
		ResourceID: snap.ResourceID,
		MemberID:   snap.MemberID,
		SlotStart:  snap.SlotStart,
		Status:     snap.Status,
		CreatedAt:  snap.CreatedAt,
		NotifiedAt: snap.NotifiedAt,
	}
}
