package response

import (
	"time"

	"courtbook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type GuestResponse struct {
	Name       string `json:"name"`
	Identifier string `json:"identifier,omitempty"`
	FeeCents   int64  `json:"feeCents"`
}

type ReservationResponse struct {
	ID           uuid.UUID       `json:"id"`
	ResourceID   uuid.UUID       `json:"resourceId"`
	ResourceName string          `json:"resourceName"`
	MemberID     uuid.UUID       `json:"memberId"`
	StartTime    time.Time       `json:"startTime"`
	EndTime      time.Time       `json:"endTime"`
	Status       string          `json:"status"`
	Guests       []GuestResponse `json:"guests,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

type ReservationListResponse struct {
	ID           uuid.UUID `json:"id"`
	ResourceID   uuid.UUID `json:"resourceId"`
	ResourceName string    `json:"resourceName"`
	StartTime    time.Time `json:"startTime"`
	EndTime      time.Time `json:"endTime"`
	Status       string    `json:"status"`
	GuestCount   int       `json:"guestCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

type BookingCreatedResponse struct {
	ID uuid.UUID `json:"id"`
}

func FromReservationView(view *queries.ReservationView) *ReservationResponse {
	resp := &ReservationResponse{}
	_ = copier.Copy(resp, view)
	return resp
}

func FromReservationListItem(item *queries.ReservationListItem) *ReservationListResponse {
	resp := &ReservationListResponse{}
	_ = copier.Copy(resp, item)
	return resp
}
