package get_rate_config

import (
	"context"

	"github.com/ign-garage/booking-service/internal/domain"
)

type RateConfigService interface {
	Get(ctx context.Context) (*domain.RateConfiguration, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
