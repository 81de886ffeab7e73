package domain

import (
	"time"

	"github.com/ign-garage/booking-service/pkg/types"
)

// SlotConfiguration defines the bookable week: opening window, slot length,
// capacity per slot and the booking horizon. Exactly one configuration is
// active at a time; availability and booking both refuse to operate without one.
type SlotConfiguration struct {
	ID                  int64
	StartTime           types.TimeString // opening time, inclusive
	EndTime             types.TimeString // closing time, slots must end by it
	SlotDurationMinutes int
	SlotsPerTimeSlot    int // capacity of each generated slot
	DaysOfWeek          []time.Weekday
	MinLeadTimeDays     int // earliest bookable day = today + N
	MaxBookingDays      int // furthest bookable day = today + N
	IsActive            bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsOpenOn reports whether the configuration opens the garage on the given weekday.
func (c *SlotConfiguration) IsOpenOn(day time.Weekday) bool {
	for _, d := range c.DaysOfWeek {
		if d == day {
			return true
		}
	}
	return false
}

// BookableRange returns the inclusive [from, to] window of bookable dates
// relative to today, truncated to midnight.
func (c *SlotConfiguration) BookableRange(today time.Time) (time.Time, time.Time) {
	base := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	return base.AddDate(0, 0, c.MinLeadTimeDays), base.AddDate(0, 0, c.MaxBookingDays)
}

// SlotTimes generates the (start, end) pairs of one working day. A trailing
// remainder shorter than the slot duration is not emitted.
func (c *SlotConfiguration) SlotTimes() [][2]types.TimeString {
	if c.SlotDurationMinutes <= 0 {
		return nil
	}
	open, err := c.StartTime.Minutes()
	if err != nil {
		return nil
	}
	closing, err := c.EndTime.Minutes()
	if err != nil {
		return nil
	}

	var out [][2]types.TimeString
	for cur := open; cur+c.SlotDurationMinutes <= closing; cur += c.SlotDurationMinutes {
		out = append(out, [2]types.TimeString{
			types.FromMinutes(cur),
			types.FromMinutes(cur + c.SlotDurationMinutes),
		})
	}
	return out
}
