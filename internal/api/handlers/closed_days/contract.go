package closed_days

import (
	"context"
	"time"

	"github.com/ign-garage/booking-service/internal/domain"
)

// ScheduleService интерфейс сервиса расписания
type ScheduleService interface {
	ListClosedDays(ctx context.Context, from, to time.Time) ([]*domain.ClosedDay, error)
	CreateClosedDay(ctx context.Context, day *domain.ClosedDay) (*domain.ClosedDay, error)
	DeleteClosedDay(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
