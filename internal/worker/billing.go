package worker

import (
	"context"
	"log/slog"

	"courtbook/internal/usecase/shared"
)

// BillingGateway places holds for guest fees. Billing is an external
// collaborator: failures here never unwind a reservation.
type BillingGateway interface {
	PlaceHold(ctx context.Context, hold shared.BillingHoldPayload) error
}

// LogBillingGateway records holds in the log stream; the production gateway
// lives with the billing system and is injected at bootstrap.
type LogBillingGateway struct{}

func NewLogBillingGateway() *LogBillingGateway {
	return &LogBillingGateway{}
}

func (g *LogBillingGateway) PlaceHold(_ context.Context, hold shared.BillingHoldPayload) error {
	slog.Info("billing hold placed",
		"reservation_id", hold.ReservationID.String(),
		"member_id", hold.MemberID.String(),
		"amount_cents", hold.AmountCents,
		"guest_count", hold.GuestCount)
	return nil
}
