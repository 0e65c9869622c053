package queries

import (
	"context"
	"time"

	"courtbook/internal/domain/reservation"
	"courtbook/internal/domain/resource"
	"courtbook/internal/pkg/clock"
	"courtbook/internal/pkg/errs"

	"github.com/google/uuid"
)

type SlotStatus string

const (
	SlotAvailable   SlotStatus = "AVAILABLE"
	SlotBooked      SlotStatus = "BOOKED"
	SlotMaintenance SlotStatus = "MAINTENANCE"
	SlotClosed      SlotStatus = "CLOSED"
)

// AvailabilitySlot is derived, never persisted: always recomputable from the
// reservation set, resource config and maintenance blocks.
type AvailabilitySlot struct {
	Start  time.Time  `json:"start_time"`
	End    time.Time  `json:"end_time"`
	Status SlotStatus `json:"status"`
}

type AvailabilityView struct {
	ResourceID    uuid.UUID          `json:"resource_id"`
	Date          string             `json:"date"`
	Slots         []AvailabilitySlot `json:"slots"`
	RemainingDays int                `json:"window_remaining_days"`
	Stale         bool               `json:"stale,omitempty"`
}

type AvailabilityQueries interface {
	// ForDate derives the slot grid for one local calendar date, given as
	// YYYY-MM-DD and interpreted in the resource's timezone.
	ForDate(ctx context.Context, resourceID uuid.UUID, date string) (*AvailabilityView, error)
}

// CalendarReadStore supplies busy time from our own tables, already in the
// canonical slots format.
type CalendarReadStore interface {
	FindResourceByID(ctx context.Context, id uuid.UUID) (*ResourceView, error)
	BusyCalendarFor(ctx context.Context, resourceID uuid.UUID, from, to time.Time) (BusyCalendar, error)
}

// BusyFeed fetches external busy time for resources shared with partner
// facilities. Implementations must be retry-bounded; a failure here is
// TRANSIENT and never cached.
type BusyFeed interface {
	Fetch(ctx context.Context, feedURL string, from, to time.Time) (BusyCalendar, error)
}

type availabilityQueriesImpl struct {
	store  CalendarReadStore
	feed   BusyFeed
	window reservation.BookingWindow
	clock  clock.Clock
}

func NewAvailabilityQueries(store CalendarReadStore, feed BusyFeed, window reservation.BookingWindow, clk clock.Clock) AvailabilityQueries {
	return &availabilityQueriesImpl{store: store, feed: feed, window: window, clock: clk}
}

func (q *availabilityQueriesImpl) ForDate(ctx context.Context, resourceID uuid.UUID, date string) (*AvailabilityView, error) {
	view, err := q.store.FindResourceByID(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	res, err := resource.NewResource(view.ID, view.Name, view.OpenHour, view.CloseHour, view.SlotGranularityMin, view.Timezone, view.BusyFeedURL)
	if err != nil {
		return nil, err
	}

	// The date means a calendar day where the resource lives, not where the
	// caller is.
	day, err := time.ParseInLocation("2006-01-02", date, res.Location())
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "date must be YYYY-MM-DD"), errs.ErrInvalidTimeSlot)
	}

	openAt, closeAt := res.OpeningOn(day)

	local, err := q.store.BusyCalendarFor(ctx, resourceID, openAt, closeAt)
	if err != nil {
		return nil, err
	}
	calendars := []BusyCalendar{local}

	// A feed outage degrades to our own calendar rather than failing the
	// read; the response is flagged stale so clients can re-fetch.
	stale := false
	if url := res.BusyFeedURL(); url != nil {
		external, feedErr := q.feed.Fetch(ctx, *url, openAt, closeAt)
		if feedErr != nil {
			if !errs.IsTransient(feedErr) {
				return nil, feedErr
			}
			stale = true
		} else {
			calendars = append(calendars, external)
		}
	}

	slots := DeriveSlots(res, day, calendars...)

	return &AvailabilityView{
		ResourceID:    resourceID,
		Date:          date,
		Slots:         slots,
		RemainingDays: q.window.RemainingDays(q.clock.Now(), day, res.Location()),
		Stale:         stale,
	}, nil
}

// DeriveSlots computes the slot grid for one resource day. Pure function:
// no side effects, full AVAILABLE grid when nothing is busy.
func DeriveSlots(res *resource.Resource, date time.Time, calendars ...BusyCalendar) []AvailabilitySlot {
	openAt, closeAt := res.OpeningOn(date)
	gran := res.SlotDuration()

	slots := make([]AvailabilitySlot, 0, res.SlotCount())
	for start := openAt; start.Before(closeAt); start = start.Add(gran) {
		end := start.Add(gran)
		status := SlotAvailable
		for _, cal := range calendars {
			if s := busyStatus(cal, start, end, res.Location()); s != SlotAvailable {
				// Maintenance wins over booked so clients do not offer
				// waitlisting on blocked slots.
				if status != SlotMaintenance {
					status = s
				}
			}
		}
		slots = append(slots, AvailabilitySlot{Start: start, End: end, Status: status})
	}
	return slots
}

func busyStatus(cal BusyCalendar, start, end time.Time, loc *time.Location) SlotStatus {
	switch cal.Format {
	case FormatSlots:
		for _, s := range cal.Slots {
			if s.Start.Before(end) && start.Before(s.End) {
				if s.Kind == BusyMaintenance {
					return SlotMaintenance
				}
				return SlotBooked
			}
		}
	case FormatIntervals:
		// Legacy fallback: no status tags and hour-granularity comparison
		// only. Each candidate slot's hour range is tested against every
		// interval's hour range.
		slotFrom, slotTo := hourRange(start.In(loc), end.In(loc))
		for _, iv := range cal.Intervals {
			ivFrom, ivTo := hourRange(iv.Start.In(loc), iv.End.In(loc))
			if ivFrom < slotTo && slotFrom < ivTo {
				return SlotBooked
			}
		}
	}
	return SlotAvailable
}

// hourRange widens an interval to whole hours-of-day: floor of the start,
// ceiling of the end. An end past midnight clamps to the end of the day.
func hourRange(start, end time.Time) (int, int) {
	from := start.Hour()
	to := end.Hour()
	if end.Minute() != 0 || end.Second() != 0 || end.Nanosecond() != 0 {
		to++
	}
	if to <= from {
		if start.Year() != end.Year() || start.YearDay() != end.YearDay() {
			to = 24
		} else {
			to = from + 1
		}
	}
	return from, to
}
