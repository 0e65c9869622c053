package response

import "github.com/google/uuid"

type MaintenanceCreatedResponse struct {
	ID uuid.UUID `json:"id"`
}
