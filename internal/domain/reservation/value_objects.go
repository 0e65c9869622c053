package reservation

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidInterval  = errors.New("start time must be before end time")
	ErrSlotInPast       = errors.New("start time cannot be in the past")
	ErrWrongSlotLength  = errors.New("member bookings must span exactly one slot")
	ErrEmptyGuestName   = errors.New("guest name cannot be empty")
	ErrNegativeGuestFee = errors.New("guest fee cannot be negative")
)

// TimeSlot is a half-open interval [start, end) on one resource.
type TimeSlot struct {
	start time.Time
	end   time.Time
}

func NewTimeSlot(start, end time.Time) (TimeSlot, error) {
	if !start.Before(end) {
		return TimeSlot{}, ErrInvalidInterval
	}
	return TimeSlot{start: start, end: end}, nil
}

func (ts TimeSlot) Start() time.Time {
	return ts.start
}

func (ts TimeSlot) End() time.Time {
	return ts.end
}

func (ts TimeSlot) Duration() time.Duration {
	return ts.end.Sub(ts.start)
}

// Overlaps reports whether two half-open intervals share any instant.
func (ts TimeSlot) Overlaps(other TimeSlot) bool {
	return ts.start.Before(other.end) && other.start.Before(ts.end)
}

func (ts TimeSlot) ToTstzrange() string {
	return fmt.Sprintf("[%s,%s)", ts.start.UTC().Format(time.RFC3339), ts.end.UTC().Format(time.RFC3339))
}

func (ts TimeSlot) ValidateNotPast(now time.Time) error {
	if ts.start.Before(now) {
		return ErrSlotInPast
	}
	return nil
}

// ValidateSingleSlot enforces the fixed one-slot duration for member bookings.
func (ts TimeSlot) ValidateSingleSlot(granularity time.Duration) error {
	if ts.Duration() != granularity {
		return ErrWrongSlotLength
	}
	return nil
}

// Guest is a billable line item on a reservation. Guests never count as
// occupants for overlap detection; the fee is the only thing billing sees.
type Guest struct {
	name       string
	identifier string
	feeCents   int64
}

func NewGuest(name, identifier string, feeCents int64) (Guest, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Guest{}, ErrEmptyGuestName
	}
	if feeCents < 0 {
		return Guest{}, ErrNegativeGuestFee
	}
	return Guest{name: name, identifier: strings.TrimSpace(identifier), feeCents: feeCents}, nil
}

func (g Guest) Name() string       { return g.name }
func (g Guest) Identifier() string { return g.identifier }
func (g Guest) FeeCents() int64    { return g.feeCents }

func TotalGuestFees(guests []Guest) int64 {
	var total int64
	for _, g := range guests {
		total += g.feeCents
	}
	return total
}
