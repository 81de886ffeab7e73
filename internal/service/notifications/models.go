package notifications

import "github.com/ign-garage/booking-service/internal/domain"

// Каналы уведомлений в метриках и логах
const (
	ChannelCalendar = "calendar"
	ChannelEmail    = "email"
)

// Task задание на уведомления по одному подтверждённому бронированию.
// Содержит всё необходимое для обоих каналов, чтобы воркеры не ходили в базу.
type Task struct {
	Booking  domain.Booking
	Customer domain.Customer
}
