package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/ign-garage/booking-service/internal/domain"
	scheduleRepo "github.com/ign-garage/booking-service/internal/infra/storage/schedule"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	cache        AvailabilityCache // может быть nil, если Redis выключен
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	cache AvailabilityCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		cache:        cache,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов.
// Выдача считается по трём источникам: сетка из конфигурации слотов,
// блокировки администратора и занятость из активных бронирований.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 1. Кэш: выдача одинакова для всех клиентов с одним горизонтом
	if uc.cache != nil {
		var cached Response
		if uc.cache.GetAvailability(ctx, req.Days, &cached) {
			return &cached, nil
		}
	}

	now := uc.timeProvider.Now()

	// 2. Конфигурация слотов
	config, err := uc.scheduleRepo.GetActiveConfiguration(ctx)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrConfigNotFound) {
			uc.logger.Warn("GetAvailableSlots: no active slot configuration")
			return nil, ErrNoSlotConfiguration
		}
		uc.logger.Error("GetAvailableSlots: failed to get slot configuration: %v", err)
		return nil, fmt.Errorf("%w: failed to get slot configuration: %v", ErrInternal, err)
	}

	from, to := config.BookableRange(now)

	// Запрошенный горизонт может только сузить окно бронирования
	if req.Days > 0 {
		capped := from.AddDate(0, 0, req.Days-1)
		if capped.Before(to) {
			to = capped
		}
	}

	// 3. Блокировки администратора на всё окно
	closedDays, err := uc.scheduleRepo.ListClosedDays(ctx, from, to)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list closed days: %v", err)
		return nil, fmt.Errorf("%w: failed to list closed days: %v", ErrInternal, err)
	}

	blockedSlots, err := uc.scheduleRepo.ListUnavailableSlots(ctx, from, to)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list unavailable slots: %v", err)
		return nil, fmt.Errorf("%w: failed to list unavailable slots: %v", ErrInternal, err)
	}

	// 4. Занятость: активные бронирования, сгруппированные по слотам
	counts, err := uc.bookingRepo.CountActiveByDateRange(ctx, from, to)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to count bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to count bookings: %v", ErrInternal, err)
	}

	resp := buildAvailability(config, from, to, now, closedDays, blockedSlots, counts)

	uc.logger.Info("GetAvailableSlots: %d days in window %s..%s",
		len(resp.Days), from.Format(domain.DateFormat), to.Format(domain.DateFormat))

	if uc.cache != nil {
		uc.cache.SetAvailability(ctx, req.Days, resp)
	}

	return resp, nil
}
