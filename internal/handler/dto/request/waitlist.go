package request

import (
	"time"

	"github.com/google/uuid"
)

type JoinWaitlistRequest struct {
	ResourceID      uuid.UUID `json:"resource_id" binding:"required"`
	TargetSlotStart time.Time `json:"target_slot_start" binding:"required"`
}
