package resource

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyResourceName    = errors.New("resource name cannot be empty")
	ErrResourceNameTooLong  = errors.New("resource name is too long (max 255 characters)")
	ErrInvalidOperatingHour = errors.New("operating hours must satisfy 0 <= open < close <= 24")
	ErrInvalidGranularity   = errors.New("slot granularity must divide the operating window evenly")
	ErrUnknownTimezone      = errors.New("unknown IANA timezone")
)

const MaxResourceNameLength = 255

// Resource is a bookable physical asset (court, pool lane, gym room).
// Operating hours are whole hours in the resource's local timezone; the slot
// grid is derived from them at granularity boundaries.
type Resource struct {
	id             uuid.UUID
	name           string
	openHour       int
	closeHour      int
	slotGranMin    int
	location       *time.Location
	busyFeedURL    *string
	createdAt      time.Time
	updatedAt      time.Time
}

func NewResource(id uuid.UUID, name string, openHour, closeHour, slotGranMin int, tz string, busyFeedURL *string) (*Resource, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyResourceName
	}
	if len(name) > MaxResourceNameLength {
		return nil, ErrResourceNameTooLong
	}
	if openHour < 0 || closeHour <= openHour || closeHour > 24 {
		return nil, ErrInvalidOperatingHour
	}
	if slotGranMin <= 0 || ((closeHour-openHour)*60)%slotGranMin != 0 {
		return nil, ErrInvalidGranularity
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, ErrUnknownTimezone
	}

	return &Resource{
		id:          id,
		name:        name,
		openHour:    openHour,
		closeHour:   closeHour,
		slotGranMin: slotGranMin,
		location:    loc,
		busyFeedURL: busyFeedURL,
	}, nil
}

// OpeningOn returns the [open, close) instant pair for the given local date.
func (r *Resource) OpeningOn(date time.Time) (time.Time, time.Time) {
	y, m, d := date.In(r.location).Date()
	openAt := time.Date(y, m, d, r.openHour, 0, 0, 0, r.location)
	closeAt := time.Date(y, m, d, r.closeHour, 0, 0, 0, r.location)
	return openAt, closeAt
}

// SlotCount is the number of grid slots in one operating day.
func (r *Resource) SlotCount() int {
	return (r.closeHour - r.openHour) * 60 / r.slotGranMin
}

// AlignsToGrid reports whether start sits exactly on a slot boundary within
// operating hours on its own date.
func (r *Resource) AlignsToGrid(start time.Time) bool {
	openAt, closeAt := r.OpeningOn(start)
	if start.Before(openAt) || !start.Before(closeAt) {
		return false
	}
	offset := start.Sub(openAt)
	return offset%(time.Duration(r.slotGranMin)*time.Minute) == 0
}

func (r *Resource) SlotDuration() time.Duration {
	return time.Duration(r.slotGranMin) * time.Minute
}

func (r *Resource) ID() uuid.UUID            { return r.id }
func (r *Resource) Name() string             { return r.name }
func (r *Resource) OpenHour() int            { return r.openHour }
func (r *Resource) CloseHour() int           { return r.closeHour }
func (r *Resource) SlotGranularityMin() int  { return r.slotGranMin }
func (r *Resource) Location() *time.Location { return r.location }
func (r *Resource) BusyFeedURL() *string     { return r.busyFeedURL }
func (r *Resource) CreatedAt() time.Time     { return r.createdAt }
func (r *Resource) UpdatedAt() time.Time     { return r.updatedAt }
