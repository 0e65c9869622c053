package reservation

import (
	"errors"
	"math"
	"time"
)

var ErrOutsideWindow = errors.New("target date outside booking window")

// BookingWindow is the rolling horizon inside which new reservations may be
// created. Evaluation is at calendar-day granularity in the resource's
// timezone: the HorizonDays-th future date is bookable, the next is not.
type BookingWindow struct {
	HorizonDays int
}

func NewBookingWindow(horizonDays int) BookingWindow {
	if horizonDays < 0 {
		horizonDays = 0
	}
	return BookingWindow{HorizonDays: horizonDays}
}

// Validate gates a target instant against [today, today+HorizonDays].
func (w BookingWindow) Validate(now, target time.Time, loc *time.Location) error {
	days := w.daysUntil(now, target, loc)
	if days < 0 || days > w.HorizonDays {
		return ErrOutsideWindow
	}
	return nil
}

// RemainingDays reports how many more days the target stays inside the
// window; 0 means the target sits on the boundary date. Negative values mean
// the target is already outside.
func (w BookingWindow) RemainingDays(now, target time.Time, loc *time.Location) int {
	return w.HorizonDays - w.daysUntil(now, target, loc)
}

func (w BookingWindow) daysUntil(now, target time.Time, loc *time.Location) int {
	today := midnight(now.In(loc))
	targetDay := midnight(target.In(loc))
	// Round absorbs DST days that are 23 or 25 hours long.
	return int(math.Round(targetDay.Sub(today).Hours() / 24))
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
