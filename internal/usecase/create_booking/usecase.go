package create_booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ign-garage/booking-service/internal/domain"
	scheduleRepo "github.com/ign-garage/booking-service/internal/infra/storage/schedule"
	"github.com/ign-garage/booking-service/internal/service/notifications"
	"github.com/ign-garage/booking-service/internal/service/pricing"
	rateSvc "github.com/ign-garage/booking-service/internal/service/rateconfig"
	"github.com/ign-garage/booking-service/pkg/metrics"
	"github.com/ign-garage/booking-service/pkg/txmanager"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	customerRepo CustomerRepository
	scheduleRepo ScheduleRepository
	rateProvider RateProvider
	pricing      PricingService
	dispatcher   NotificationDispatcher // может быть nil
	cache        AvailabilityCache      // может быть nil
	txManager    TransactionManager
	metrics      Metrics // может быть nil
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	customerRepo CustomerRepository,
	scheduleRepo ScheduleRepository,
	rateProvider RateProvider,
	pricingService PricingService,
	dispatcher NotificationDispatcher,
	cache AvailabilityCache,
	txManager TransactionManager,
	m Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		customerRepo: customerRepo,
		scheduleRepo: scheduleRepo,
		rateProvider: rateProvider,
		pricing:      pricingService,
		dispatcher:   dispatcher,
		cache:        cache,
		txManager:    txManager,
		metrics:      m,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка вместимости и вставка выполняются в одной сериализуемой
// транзакции: два конкурирующих запроса на последнее место не могут
// закоммититься оба.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: reg=%s, date=%s, slot=%s-%s, services=%d",
		req.Vehicle.Registration, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime, len(req.ServiceIDs))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		uc.incOutcome(metrics.OutcomeValidationFailed)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Пересчитываем цены на сервере по актуальным тарифам
	servicesData, totalPrice, err := uc.priceSelection(ctx, req)
	if err != nil {
		return nil, err
	}

	// 3. Дешёвый отказ без транзакции: закрытый день, чужая сетка или
	// занятый слот отсеиваются до того, как мы возьмём блокировки
	if _, err := uc.gate(ctx, req, now); err != nil {
		uc.incOutcome(outcomeFor(err))
		return nil, err
	}

	var result *domain.Booking
	var customer *domain.Customer

	// 4. Обязательная перепроверка и вставка — в сериализуемой транзакции
	txErr := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Всё перечитывается внутри транзакции: между предпроверкой
		// и коммитом админ мог поменять сетку, а конкурент — занять слот
		if _, err := uc.gate(txCtx, req, now); err != nil {
			return err
		}

		// 4.2. Референс: порядковый номер за день, уникален внутри транзакции
		createdToday, err := uc.bookingRepo.CountCreatedOn(txCtx, now)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to count todays bookings: %v", err)
			return fmt.Errorf("%w: failed to count todays bookings: %v", ErrInternal, err)
		}
		reference := fmt.Sprintf("%s-%s-%03d",
			domain.BookingReferencePrefix, now.Format(domain.BookingReferenceDateFormat), createdToday+1)

		// 4.3. Клиент: повторное бронирование обновляет запись по email
		customer, err = uc.customerRepo.Upsert(txCtx, &domain.Customer{
			FirstName:     strings.TrimSpace(req.Customer.FirstName),
			LastName:      strings.TrimSpace(req.Customer.LastName),
			Email:         strings.ToLower(strings.TrimSpace(req.Customer.Email)),
			ContactNumber: strings.TrimSpace(req.Customer.ContactNumber),
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to upsert customer: %v", err)
			return fmt.Errorf("%w: failed to upsert customer: %v", ErrInternal, err)
		}

		// 4.4. Создаем бронирование со снимком автомобиля и цен
		booking := &domain.Booking{
			Reference:  reference,
			CustomerID: customer.ID,
			Vehicle: domain.VehicleSnapshot{
				Registration: normalizeRegistration(req.Vehicle.Registration),
				Make:         req.Vehicle.Make,
				Model:        req.Vehicle.Model,
				EngineSizeCc: &req.Vehicle.EngineSizeCc,
				FuelType:     req.Vehicle.FuelType,
				VehicleClass: req.Vehicle.VehicleClass,
			},
			BookingDate:           req.Date,
			StartTime:             req.StartTime,
			EndTime:               req.EndTime,
			ServicesData:          servicesData,
			TotalPrice:            totalPrice,
			IsBlueLightCardHolder: req.IsBlueLightCardHolder,
			Status:                domain.StatusConfirmed,
			Notes:                 req.Notes,
		}

		result, err = uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		return nil
	})

	if txErr != nil {
		uc.incOutcome(outcomeFor(txErr))
		if errors.Is(txErr, txmanager.ErrSerialization) {
			uc.logger.Warn("CreateBooking: serialization conflict: %v", txErr)
			return nil, ErrSlotFull
		}
		if errors.Is(txErr, txmanager.ErrTimeout) {
			uc.logger.Error("CreateBooking: transaction timed out: %v", txErr)
			return nil, fmt.Errorf("%w: transaction timed out", ErrInternal)
		}
		return nil, txErr
	}

	uc.incOutcome(metrics.OutcomeConfirmed)
	uc.logger.Info("CreateBooking: created booking id=%d ref=%s", result.ID, result.Reference)

	// 5. Слот занят — кэш доступности устарел
	if uc.cache != nil {
		uc.cache.InvalidateAvailability(ctx)
	}

	// 6. Уведомления асинхронны: их неуспех не откатывает бронирование
	if uc.dispatcher != nil {
		uc.dispatcher.Enqueue(notifications.Task{
			Booking:  *result,
			Customer: *customer,
		})
	}

	return &Response{
		ID:          result.ID,
		Reference:   result.Reference,
		BookingDate: result.BookingDate,
		StartTime:   result.StartTime,
		EndTime:     result.EndTime,
		Status:      string(result.Status),
		Services:    result.ServicesData,
		TotalPrice:  result.TotalPrice,
		CreatedAt:   result.CreatedAt,
	}, nil
}

// gate проверяет расписание и занятость слота: конфигурация, окно
// бронирования, сетка, закрытые дни (разовые и повторяющиеся), точечные
// блокировки, вместимость. Вне транзакции это дешёвый отказ без
// блокировок; внутри транзакции — обязательная перепроверка, и чтение
// занятости берёт FOR UPDATE.
func (uc *UseCase) gate(ctx context.Context, req *Request, now time.Time) (*domain.SlotConfiguration, error) {
	config, err := uc.scheduleRepo.GetActiveConfiguration(ctx)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrConfigNotFound) {
			uc.logger.Warn("CreateBooking: no active slot configuration")
			return nil, ErrNoSlotConfiguration
		}
		uc.logger.Error("CreateBooking: failed to get slot configuration: %v", err)
		return nil, fmt.Errorf("%w: failed to get slot configuration: %v", ErrInternal, err)
	}

	// Дата в окне бронирования и гараж работает в этот день недели
	if err := validateDate(config, req.Date, now); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// Запрошенное окно совпадает с сеткой слотов
	if err := validateSlotTimes(config, req.StartTime, req.EndTime); err != nil {
		uc.logger.Warn("CreateBooking: slot validation failed: %v", err)
		return nil, err
	}

	// День не закрыт администратором: разово или повторяющимся закрытием
	closedDays, err := uc.scheduleRepo.ListClosedDays(ctx, req.Date, req.Date)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to list closed days: %v", err)
		return nil, fmt.Errorf("%w: failed to list closed days: %v", ErrInternal, err)
	}
	for _, day := range closedDays {
		if day.AppliesTo(req.Date) {
			uc.logger.Warn("CreateBooking: %s is a closed day", req.Date.Format(domain.DateFormat))
			return nil, ErrGarageClosed
		}
	}

	// Слот не заблокирован точечно
	blocked, err := uc.scheduleRepo.ListUnavailableSlots(ctx, req.Date, req.Date)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to list unavailable slots: %v", err)
		return nil, fmt.Errorf("%w: failed to list unavailable slots: %v", ErrInternal, err)
	}
	for _, slot := range blocked {
		if slot.Matches(req.Date, req.StartTime, req.EndTime) {
			uc.logger.Warn("CreateBooking: slot %s %s-%s is blocked",
				req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)
			return nil, ErrSlotUnavailable
		}
	}

	// Вместимость слота
	existing, err := uc.bookingRepo.GetForSlot(ctx, req.Date, req.StartTime, req.EndTime)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get slot bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get slot bookings: %v", ErrInternal, err)
	}

	taken := countActiveBookings(existing)
	if taken >= config.SlotsPerTimeSlot {
		uc.logger.Warn("CreateBooking: slot full, %d/%d spots taken", taken, config.SlotsPerTimeSlot)
		return nil, ErrSlotFull
	}

	return config, nil
}

// priceSelection пересчитывает каталог по тарифам и возвращает снимок
// выбранных позиций вместе с итоговой суммой
func (uc *UseCase) priceSelection(ctx context.Context, req *Request) (json.RawMessage, float64, error) {
	rateConfig, err := uc.rateProvider.Get(ctx)
	if err != nil {
		if errors.Is(err, rateSvc.ErrConfigNotFound) {
			uc.logger.Warn("CreateBooking: rate configuration has never been saved")
			uc.incOutcome(metrics.OutcomeValidationFailed)
			return nil, 0, ErrPricingUnavailable
		}
		uc.logger.Error("CreateBooking: failed to get rate configuration: %v", err)
		uc.incOutcome(metrics.OutcomeInternalError)
		return nil, 0, fmt.Errorf("%w: failed to get rate configuration: %v", ErrInternal, err)
	}

	catalog, err := uc.pricing.ComputeCatalog(req.Vehicle.EngineSizeCc, rateConfig)
	if err != nil {
		uc.logger.Warn("CreateBooking: pricing failed for cc=%d: %v", req.Vehicle.EngineSizeCc, err)
		uc.incOutcome(metrics.OutcomeValidationFailed)
		return nil, 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	sel := pricing.Selection{
		ServiceIDs:            req.ServiceIDs,
		IsBlueLightCardHolder: req.IsBlueLightCardHolder,
	}
	catalog = uc.pricing.ApplyDiscounts(catalog, sel)

	selected := make(map[string]bool, len(req.ServiceIDs))
	for _, id := range req.ServiceIDs {
		selected[id] = true
	}

	items := make([]domain.ServiceItem, 0, len(req.ServiceIDs))
	for _, item := range catalog.AllItems() {
		if selected[item.ID] {
			items = append(items, item)
			delete(selected, item.ID)
		}
	}
	if len(selected) > 0 {
		unknown := make([]string, 0, len(selected))
		for id := range selected {
			unknown = append(unknown, id)
		}
		uc.logger.Warn("CreateBooking: unknown service ids: %v", unknown)
		uc.incOutcome(metrics.OutcomeValidationFailed)
		return nil, 0, fmt.Errorf("%w: unknown service ids: %v", ErrInvalidInput, unknown)
	}

	servicesData, err := json.Marshal(items)
	if err != nil {
		uc.incOutcome(metrics.OutcomeInternalError)
		return nil, 0, fmt.Errorf("%w: failed to marshal services snapshot: %v", ErrInternal, err)
	}

	return servicesData, uc.pricing.TotalPrice(catalog, sel), nil
}

// incOutcome учитывает исход попытки бронирования в метриках
func (uc *UseCase) incOutcome(outcome string) {
	if uc.metrics != nil {
		uc.metrics.IncBookingOutcome(outcome)
	}
}

// outcomeFor переводит ошибку транзакции в метку метрики
func outcomeFor(err error) string {
	switch {
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrNoSlotConfiguration),
		errors.Is(err, ErrDateOutOfRange),
		errors.Is(err, ErrInvalidTimeSlot):
		return metrics.OutcomeValidationFailed
	case errors.Is(err, ErrGarageClosed):
		return metrics.OutcomeDayClosed
	case errors.Is(err, ErrSlotUnavailable):
		return metrics.OutcomeSlotUnavailable
	case errors.Is(err, ErrSlotFull):
		return metrics.OutcomeCapacityFull
	case errors.Is(err, txmanager.ErrSerialization):
		return metrics.OutcomeConcurrencyConflict
	case errors.Is(err, txmanager.ErrTimeout):
		return metrics.OutcomeTimeout
	default:
		return metrics.OutcomeInternalError
	}
}

// normalizeRegistration приводит регистрационный номер к канонической форме
func normalizeRegistration(reg string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(reg), " ", ""))
}
