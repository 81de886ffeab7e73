package get_available_slots

import (
	"time"

	"github.com/ign-garage/booking-service/internal/domain"
	"github.com/ign-garage/booking-service/pkg/types"
)

// buildAvailability раскладывает окно бронирования в выдачу по дням.
// Нерабочие и закрытые дни (разовые и повторяющиеся) пропускаются целиком,
// заблокированные и заполненные слоты — точечно, прошедшие слоты
// сегодняшнего дня не показываются.
func buildAvailability(
	config *domain.SlotConfiguration,
	from, to time.Time,
	now time.Time,
	closedDays []*domain.ClosedDay,
	blockedSlots []*domain.UnavailableSlot,
	counts map[string]int,
) *Response {
	closedDates := make(map[string]bool, len(closedDays))
	closedWeekdays := make(map[time.Weekday]bool)
	for _, day := range closedDays {
		if day.IsRecurring {
			if day.DayOfWeek != nil {
				closedWeekdays[*day.DayOfWeek] = true
			}
			continue
		}
		closedDates[day.Date.Format(domain.DateFormat)] = true
	}

	slotTimes := config.SlotTimes()
	nowTime := types.NewTimeString(now)
	today := now.Format(domain.DateFormat)

	days := make([]DayAvailability, 0)
	for date := from; !date.After(to); date = date.AddDate(0, 0, 1) {
		dateKey := date.Format(domain.DateFormat)

		if !config.IsOpenOn(date.Weekday()) || closedDates[dateKey] || closedWeekdays[date.Weekday()] {
			continue
		}

		slots := make([]Slot, 0, len(slotTimes))
		for _, window := range slotTimes {
			start, end := window[0], window[1]

			// Сегодняшние слоты, которые уже начались, не предлагаем
			if dateKey == today && !nowTime.IsBefore(start) {
				continue
			}

			if isBlocked(blockedSlots, date, start, end) {
				continue
			}

			key := domain.SlotKeyFor(date, start, end)
			available := config.SlotsPerTimeSlot - counts[key]

			// Заполненный слот клиенту не показываем вовсе
			if available <= 0 {
				continue
			}

			slot := domain.AvailableSlot{
				SlotID:         key,
				Date:           date,
				StartTime:      start,
				EndTime:        end,
				AvailableSpots: available,
				TotalSpots:     config.SlotsPerTimeSlot,
			}

			slots = append(slots, Slot{
				SlotID:         slot.SlotID,
				StartTime:      string(slot.StartTime),
				EndTime:        string(slot.EndTime),
				DisplayTime:    slot.DisplayTime(),
				AvailableSpots: slot.AvailableSpots,
				TotalSpots:     slot.TotalSpots,
			})
		}

		if len(slots) > 0 {
			days = append(days, DayAvailability{Date: dateKey, Slots: slots})
		}
	}

	return &Response{Days: days}
}

// isBlocked проверяет точечную блокировку слота администратором
func isBlocked(blocked []*domain.UnavailableSlot, date time.Time, start, end types.TimeString) bool {
	for _, slot := range blocked {
		if slot.Matches(date, start, end) {
			return true
		}
	}
	return false
}
