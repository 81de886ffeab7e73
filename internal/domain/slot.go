package domain

import (
	"time"

	"github.com/ign-garage/booking-service/pkg/types"
)

// AvailableSlot represents a bookable time slot on a concrete date.
type AvailableSlot struct {
	SlotID         string // "YYYY-MM-DD_HH:MM_HH:MM"
	Date           time.Time
	StartTime      types.TimeString
	EndTime        types.TimeString
	AvailableSpots int
	TotalSpots     int
}

// IsFull returns true if the slot has no available spots.
func (s *AvailableSlot) IsFull() bool {
	return s.AvailableSpots <= 0
}

// DisplayTime returns the slot window as shown to customers, e.g. "09:00 - 11:00".
func (s *AvailableSlot) DisplayTime() string {
	return string(s.StartTime) + " - " + string(s.EndTime)
}

// ClosedDay marks a whole day as not bookable: either a single calendar
// date (bank holiday, staff training) or a recurring weekday (closed
// every Sunday).
type ClosedDay struct {
	ID          int64
	Date        time.Time     // zero for recurring closures
	DayOfWeek   *time.Weekday // set only when IsRecurring
	IsRecurring bool
	Reason      *string
	CreatedAt   time.Time
}

// AppliesTo reports whether the closure covers the given date.
func (c *ClosedDay) AppliesTo(date time.Time) bool {
	if c.IsRecurring {
		return c.DayOfWeek != nil && *c.DayOfWeek == date.Weekday()
	}
	return c.Date.Format(DateFormat) == date.Format(DateFormat)
}

// UnavailableSlot blocks a single slot on a single date without closing
// the whole day.
type UnavailableSlot struct {
	ID        int64
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Reason    *string
	CreatedAt time.Time
}

// Matches reports whether the blocked slot is exactly the given slot window.
func (u *UnavailableSlot) Matches(date time.Time, start, end types.TimeString) bool {
	return u.Date.Format(DateFormat) == date.Format(DateFormat) &&
		u.StartTime == start && u.EndTime == end
}
