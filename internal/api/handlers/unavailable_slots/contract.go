package unavailable_slots

import (
	"context"
	"time"

	"github.com/ign-garage/booking-service/internal/domain"
)

// ScheduleService интерфейс сервиса расписания
type ScheduleService interface {
	ListUnavailableSlots(ctx context.Context, from, to time.Time) ([]*domain.UnavailableSlot, error)
	CreateUnavailableSlot(ctx context.Context, slot *domain.UnavailableSlot) (*domain.UnavailableSlot, error)
	DeleteUnavailableSlot(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
