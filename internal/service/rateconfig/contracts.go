package rateconfig

import (
	"context"

	"github.com/ign-garage/booking-service/internal/domain"
)

// Repository интерфейс репозитория конфигурации тарифов
type Repository interface {
	Get(ctx context.Context) (*domain.StoredRateConfiguration, error)
	Replace(ctx context.Context, document *domain.RateConfiguration, updatedBy *string) (*domain.StoredRateConfiguration, error)
}

// Cache интерфейс кэша конфигурации тарифов.
// Инвалидация выполняется синхронно после каждого успешного сохранения.
type Cache interface {
	GetRateConfiguration(ctx context.Context, out interface{}) bool
	SetRateConfiguration(ctx context.Context, document interface{})
	InvalidateRateConfiguration(ctx context.Context)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
