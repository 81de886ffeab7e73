package rateconfig

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ign-garage/booking-service/internal/domain"
	repo "github.com/ign-garage/booking-service/internal/infra/storage/rateconfig"
)

// Service сервис конфигурации тарифов: чтение через кэш, запись с полной
// валидацией документа
type Service struct {
	repo     Repository
	cache    Cache // может быть nil, если Redis выключен
	validate *validator.Validate
	logger   Logger
}

// NewService создает новый экземпляр сервиса конфигурации тарифов
func NewService(repo Repository, cache Cache, logger Logger) *Service {
	v := validator.New()

	// В ошибках валидации показываем json-имена полей: админ оперирует
	// документом, а не Go-структурой
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	return &Service{
		repo:     repo,
		cache:    cache,
		validate: v,
		logger:   logger,
	}
}

// Get возвращает актуальный документ конфигурации тарифов.
// Сначала пробует кэш, затем базу; найденный в базе документ кэшируется.
func (s *Service) Get(ctx context.Context) (*domain.RateConfiguration, error) {
	if s.cache != nil {
		var cached domain.RateConfiguration
		if s.cache.GetRateConfiguration(ctx, &cached) {
			return &cached, nil
		}
	}

	stored, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, repo.ErrConfigNotFound) {
			s.logger.Warn("Get: rate configuration has never been saved")
			return nil, ErrConfigNotFound
		}
		s.logger.Error("Get: repository error: %v", err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	if s.cache != nil {
		s.cache.SetRateConfiguration(ctx, &stored.Document)
	}

	return &stored.Document, nil
}

// Update валидирует и сохраняет полную замену документа конфигурации.
// Возвращает предупреждения о неполном покрытии диапазонов двигателя:
// они не блокируют сохранение, но попадают в ответ админу.
func (s *Service) Update(ctx context.Context, document *domain.RateConfiguration, updatedBy *string) ([]string, error) {
	if err := s.validateDocument(document); err != nil {
		s.logger.Warn("Update: rate configuration rejected: %v", err)
		return nil, err
	}

	warnings := s.completenessWarnings(document)

	if _, err := s.repo.Replace(ctx, document, updatedBy); err != nil {
		s.logger.Error("Update: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	// Кэш сбрасывается синхронно: следующий расчёт цен обязан видеть
	// новые тарифы
	if s.cache != nil {
		s.cache.InvalidateRateConfiguration(ctx)
	}

	s.logger.Info("Update: rate configuration saved (%d warnings)", len(warnings))
	return warnings, nil
}

// validateDocument прогоняет документ через структурную валидацию и
// возвращает ошибки по каждому полю
func (s *Service) validateDocument(document *domain.RateConfiguration) error {
	err := s.validate.Struct(document)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: validateDocument: %v", ErrInternal, err)
	}

	fields := make([]FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		fields = append(fields, FieldError{
			Field:   trimNamespace(fe.Namespace()),
			Message: messageFor(fe),
		})
	}

	return &ValidationError{Fields: fields}
}

// completenessWarnings проверяет, что тарифные таблицы покрывают все шесть
// диапазонов объёма двигателя. Пропущенный диапазон считается нулём при
// расчёте, поэтому о нём стоит предупредить.
func (s *Service) completenessWarnings(document *domain.RateConfiguration) []string {
	warnings := make([]string, 0)

	tables := []struct {
		name   string
		prices domain.BandPrices
	}{
		{"servicePricing.hourlyRates.oilChange", document.ServicePricing.HourlyRates.OilChange},
		{"servicePricing.hourlyRates.interim", document.ServicePricing.HourlyRates.Interim},
		{"servicePricing.hourlyRates.full", document.ServicePricing.HourlyRates.Full},
		{"servicePricing.hourlyRates.major", document.ServicePricing.HourlyRates.Major},
		{"servicePricing.partCosts.airFilter", document.ServicePricing.PartCosts.AirFilter},
		{"servicePricing.partCosts.pollenFilter", document.ServicePricing.PartCosts.PollenFilter},
		{"servicePricing.partCosts.oilFilter", document.ServicePricing.PartCosts.OilFilter},
		{"servicePricing.oilQty", document.ServicePricing.OilQty},
	}

	for _, table := range tables {
		for _, band := range domain.AllBands {
			if _, ok := table.prices[band]; !ok {
				warnings = append(warnings, fmt.Sprintf("%s: no value for %q, it will price as zero", table.name, band))
			}
		}
	}

	return warnings
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}

// trimNamespace убирает имя корневой структуры из пути поля
func trimNamespace(namespace string) string {
	if idx := strings.Index(namespace, "."); idx >= 0 {
		return namespace[idx+1:]
	}
	return namespace
}
