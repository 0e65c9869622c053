package converter

import (
	"encoding/json"

	"courtbook/internal/domain/reservation"
	"courtbook/internal/pkg/errs"
	"courtbook/internal/usecase/queries"
)

// GuestRecord is the JSONB shape stored on the reservations row. Guests are
// billing line items only; nothing in conflict detection reads this column.
type GuestRecord struct {
	Name       string `json:"name"`
	Identifier string `json:"identifier,omitempty"`
	FeeCents   int64  `json:"fee_cents"`
}

func GuestsToJSON(guests []reservation.Guest) ([]byte, error) {
	records := make([]GuestRecord, len(guests))
	for i, g := range guests {
		records[i] = GuestRecord{Name: g.Name(), Identifier: g.Identifier(), FeeCents: g.FeeCents()}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, errs.Wrap(err, "failed to encode guest records")
	}
	return data, nil
}

func GuestViewsFromJSON(data []byte) ([]queries.GuestView, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var records []GuestRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errs.Wrap(err, "failed to decode guest records")
	}
	views := make([]queries.GuestView, len(records))
	for i, r := range records {
		views[i] = queries.GuestView{Name: r.Name, Identifier: r.Identifier, FeeCents: r.FeeCents}
	}
	return views, nil
}

func GuestCountFromJSON(data []byte) int {
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return 0
	}
	return len(records)
}
