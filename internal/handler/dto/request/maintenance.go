package request

import "time"

type CreateMaintenanceRequest struct {
	StartAt time.Time `json:"start_at" binding:"required"`
	EndAt   time.Time `json:"end_at" binding:"required"`
	Reason  string    `json:"reason" binding:"max=500"`
}
