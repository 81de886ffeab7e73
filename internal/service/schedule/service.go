package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ign-garage/booking-service/internal/domain"
	scheduleRepo "github.com/ign-garage/booking-service/internal/infra/storage/schedule"
)

// Service сервис расписания: конфигурация слотов, закрытые дни и
// точечные блокировки
type Service struct {
	repo   Repository
	cache  AvailabilityCache // может быть nil, если Redis выключен
	logger Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(repo Repository, cache AvailabilityCache, logger Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// GetConfiguration возвращает активную конфигурацию слотов
func (s *Service) GetConfiguration(ctx context.Context) (*domain.SlotConfiguration, error) {
	config, err := s.repo.GetActiveConfiguration(ctx)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrConfigNotFound) {
			s.logger.Warn("GetConfiguration: no active slot configuration")
			return nil, ErrConfigNotFound
		}
		s.logger.Error("GetConfiguration: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetConfiguration - repository error: %v", ErrInternal, err)
	}
	return config, nil
}

// UpdateConfiguration заменяет активную конфигурацию слотов
func (s *Service) UpdateConfiguration(ctx context.Context, config *domain.SlotConfiguration) (*domain.SlotConfiguration, error) {
	if err := validateConfiguration(config); err != nil {
		s.logger.Warn("UpdateConfiguration: validation failed: %v", err)
		return nil, err
	}

	// Конфигурация одна; репозиторий обновляет по id, поэтому сначала
	// находим активную строку
	current, err := s.repo.GetActiveConfiguration(ctx)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrConfigNotFound) {
			return nil, ErrConfigNotFound
		}
		s.logger.Error("UpdateConfiguration: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpdateConfiguration - repository error: %v", ErrInternal, err)
	}
	config.ID = current.ID

	updated, err := s.repo.UpdateConfiguration(ctx, config)
	if err != nil {
		s.logger.Error("UpdateConfiguration: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpdateConfiguration - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx)
	s.logger.Info("UpdateConfiguration: slot configuration replaced, %d slots per day", len(updated.SlotTimes()))
	return updated, nil
}

// ListClosedDays возвращает закрытые дни в диапазоне дат
func (s *Service) ListClosedDays(ctx context.Context, from, to time.Time) ([]*domain.ClosedDay, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: to must not be before from", ErrInvalidInput)
	}

	days, err := s.repo.ListClosedDays(ctx, from, to)
	if err != nil {
		s.logger.Error("ListClosedDays: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListClosedDays - repository error: %v", ErrInternal, err)
	}
	return days, nil
}

// CreateClosedDay закрывает день целиком: разовую дату или каждый
// день недели. Существующие бронирования на закрытые дни не трогаются:
// гараж обзванивает клиентов сам.
func (s *Service) CreateClosedDay(ctx context.Context, day *domain.ClosedDay) (*domain.ClosedDay, error) {
	if day.IsRecurring {
		if day.DayOfWeek == nil || *day.DayOfWeek < time.Sunday || *day.DayOfWeek > time.Saturday {
			return nil, fmt.Errorf("%w: dayOfWeek between 0 and 6 is required for a recurring closure", ErrInvalidInput)
		}
		day.Date = time.Time{}
	} else {
		if day.Date.IsZero() {
			return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
		}
		day.DayOfWeek = nil
	}

	created, err := s.repo.CreateClosedDay(ctx, day)
	if err != nil {
		s.logger.Error("CreateClosedDay: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateClosedDay - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx)
	if day.IsRecurring {
		s.logger.Info("CreateClosedDay: every %s closed", day.DayOfWeek.String())
	} else {
		s.logger.Info("CreateClosedDay: %s closed", day.Date.Format(domain.DateFormat))
	}
	return created, nil
}

// DeleteClosedDay снова открывает дату
func (s *Service) DeleteClosedDay(ctx context.Context, id int64) error {
	if err := s.repo.DeleteClosedDay(ctx, id); err != nil {
		if errors.Is(err, scheduleRepo.ErrClosedDayNotFound) {
			return ErrClosedDayNotFound
		}
		s.logger.Error("DeleteClosedDay: repository error: %v", err)
		return fmt.Errorf("%w: DeleteClosedDay - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx)
	return nil
}

// ListUnavailableSlots возвращает точечные блокировки в диапазоне дат
func (s *Service) ListUnavailableSlots(ctx context.Context, from, to time.Time) ([]*domain.UnavailableSlot, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: to must not be before from", ErrInvalidInput)
	}

	slots, err := s.repo.ListUnavailableSlots(ctx, from, to)
	if err != nil {
		s.logger.Error("ListUnavailableSlots: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListUnavailableSlots - repository error: %v", ErrInternal, err)
	}
	return slots, nil
}

// CreateUnavailableSlot блокирует один слот на одну дату
func (s *Service) CreateUnavailableSlot(ctx context.Context, slot *domain.UnavailableSlot) (*domain.UnavailableSlot, error) {
	if slot.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := slot.StartTime.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}
	if err := slot.EndTime.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
	}
	if !slot.StartTime.IsBefore(slot.EndTime) {
		return nil, fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	created, err := s.repo.CreateUnavailableSlot(ctx, slot)
	if err != nil {
		s.logger.Error("CreateUnavailableSlot: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateUnavailableSlot - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx)
	s.logger.Info("CreateUnavailableSlot: %s %s-%s blocked",
		slot.Date.Format(domain.DateFormat), slot.StartTime, slot.EndTime)
	return created, nil
}

// DeleteUnavailableSlot снимает блокировку слота
func (s *Service) DeleteUnavailableSlot(ctx context.Context, id int64) error {
	if err := s.repo.DeleteUnavailableSlot(ctx, id); err != nil {
		if errors.Is(err, scheduleRepo.ErrUnavailableSlotNotFound) {
			return ErrUnavailableSlotNotFound
		}
		s.logger.Error("DeleteUnavailableSlot: repository error: %v", err)
		return fmt.Errorf("%w: DeleteUnavailableSlot - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx)
	return nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.InvalidateAvailability(ctx)
	}
}

// validateConfiguration проверяет согласованность конфигурации слотов
func validateConfiguration(config *domain.SlotConfiguration) error {
	if err := config.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}
	if err := config.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
	}
	if !config.StartTime.IsBefore(config.EndTime) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}
	if config.SlotDurationMinutes <= 0 {
		return fmt.Errorf("%w: slotDurationMinutes must be positive", ErrInvalidInput)
	}
	if config.SlotsPerTimeSlot <= 0 {
		return fmt.Errorf("%w: slotsPerTimeSlot must be positive", ErrInvalidInput)
	}
	if config.MinLeadTimeDays < 0 {
		return fmt.Errorf("%w: minLeadTimeDays must not be negative", ErrInvalidInput)
	}
	if config.MaxBookingDays <= 0 || config.MaxBookingDays > domain.MaxAvailabilityRangeDays {
		return fmt.Errorf("%w: maxBookingDays must be between 1 and %d", ErrInvalidInput, domain.MaxAvailabilityRangeDays)
	}
	if config.MinLeadTimeDays > config.MaxBookingDays {
		return fmt.Errorf("%w: minLeadTimeDays must not exceed maxBookingDays", ErrInvalidInput)
	}
	if len(config.DaysOfWeek) == 0 {
		return fmt.Errorf("%w: at least one working day is required", ErrInvalidInput)
	}
	if len(config.SlotTimes()) == 0 {
		return fmt.Errorf("%w: working hours do not fit a single slot", ErrInvalidInput)
	}
	return nil
}
