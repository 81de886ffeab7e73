package create_booking

import (
	"context"
	"time"

	"github.com/ign-garage/booking-service/internal/domain"
	"github.com/ign-garage/booking-service/internal/service/notifications"
	"github.com/ign-garage/booking-service/internal/service/pricing"
	"github.com/ign-garage/booking-service/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetForSlot(ctx context.Context, date time.Time, start, end types.TimeString) ([]*domain.Booking, error)
	CountCreatedOn(ctx context.Context, day time.Time) (int, error)
}

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	Upsert(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
}

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	GetActiveConfiguration(ctx context.Context) (*domain.SlotConfiguration, error)
	ListClosedDays(ctx context.Context, from, to time.Time) ([]*domain.ClosedDay, error)
	ListUnavailableSlots(ctx context.Context, from, to time.Time) ([]*domain.UnavailableSlot, error)
}

// RateProvider отдаёт актуальный документ конфигурации тарифов
type RateProvider interface {
	Get(ctx context.Context) (*domain.RateConfiguration, error)
}

// PricingService пересчитывает цены на сервере: суммам клиента не доверяем
type PricingService interface {
	ComputeCatalog(engineSizeCc int, cfg *domain.RateConfiguration) (*domain.ServiceCatalog, error)
	ApplyDiscounts(catalog *domain.ServiceCatalog, sel pricing.Selection) *domain.ServiceCatalog
	TotalPrice(catalog *domain.ServiceCatalog, sel pricing.Selection) float64
}

// NotificationDispatcher принимает задание на уведомления после фиксации
// бронирования
type NotificationDispatcher interface {
	Enqueue(task notifications.Task)
}

// AvailabilityCache интерфейс кэша доступности
type AvailabilityCache interface {
	InvalidateAvailability(ctx context.Context)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс метрик исходов бронирования
type Metrics interface {
	IncBookingOutcome(outcome string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
