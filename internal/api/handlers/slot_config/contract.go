package slot_config

import (
	"context"

	"github.com/ign-garage/booking-service/internal/domain"
)

// ScheduleService интерфейс сервиса расписания
type ScheduleService interface {
	GetConfiguration(ctx context.Context) (*domain.SlotConfiguration, error)
	UpdateConfiguration(ctx context.Context, config *domain.SlotConfiguration) (*domain.SlotConfiguration, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
