package update_rate_config

import (
	"context"

	"github.com/ign-garage/booking-service/internal/domain"
)

type RateConfigService interface {
	Update(ctx context.Context, document *domain.RateConfiguration, updatedBy *string) ([]string, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
