package queries

import (
	"encoding/json"
	"time"

	"courtbook/internal/pkg/errs"
)

// BusyFormat discriminates the two calendar shapes we accept. The enveloped
// "slots" shape is the canonical contract; the flat "intervals" shape exists
// for legacy feeds that predate the envelope and carry no status tags.
type BusyFormat string

const (
	FormatSlots     BusyFormat = "slots"
	FormatIntervals BusyFormat = "intervals"
)

type BusyKind string

const (
	BusyReserved    BusyKind = "reserved"
	BusyMaintenance BusyKind = "maintenance"
)

type BusySlot struct {
	Start time.Time `json:"start_time"`
	End   time.Time `json:"end_time"`
	Kind  BusyKind  `json:"kind"`
}

type BusyInterval struct {
	Start time.Time `json:"start_time"`
	End   time.Time `json:"end_time"`
}

// BusyCalendar is the versioned busy-time contract. Exactly one of Slots or
// Intervals is populated, selected by Format.
type BusyCalendar struct {
	Format    BusyFormat     `json:"format"`
	Slots     []BusySlot     `json:"slots,omitempty"`
	Intervals []BusyInterval `json:"intervals,omitempty"`
}

var ErrMalformedBusyPayload = errs.New("malformed busy payload")

// ParseBusyPayload decodes a feed response. Enveloped payloads declare their
// format; a bare JSON array is the legacy flat-interval shape.
func ParseBusyPayload(data []byte) (BusyCalendar, error) {
	trimmed := firstNonSpace(data)
	if trimmed == '[' {
		var intervals []BusyInterval
		if err := json.Unmarshal(data, &intervals); err != nil {
			return BusyCalendar{}, errs.Mark(err, ErrMalformedBusyPayload)
		}
		return BusyCalendar{Format: FormatIntervals, Intervals: intervals}, nil
	}

	var cal BusyCalendar
	if err := json.Unmarshal(data, &cal); err != nil {
		return BusyCalendar{}, errs.Mark(err, ErrMalformedBusyPayload)
	}
	switch cal.Format {
	case FormatSlots, FormatIntervals:
		return cal, nil
	default:
		return BusyCalendar{}, ErrMalformedBusyPayload
	}
}

func firstNonSpace(data []byte) byte {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return b
	}
	return 0
}
