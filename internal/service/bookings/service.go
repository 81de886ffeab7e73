package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/ign-garage/booking-service/internal/domain"
	bookingRepo "github.com/ign-garage/booking-service/internal/infra/storage/booking"
	"github.com/ign-garage/booking-service/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo    BookingRepository
	calendarClient CalendarClient // может быть nil, если календарь выключен
	cache          AvailabilityCache
	logger         Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	calendarClient CalendarClient,
	cache AvailabilityCache,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:    bookingRepo,
		calendarClient: calendarClient,
		cache:          cache,
		logger:         logger,
	}
}

// GetByReference получает бронирование по референсу.
// Референс — единственный идентификатор, который знает клиент.
func (s *Service) GetByReference(ctx context.Context, reference string) (*models.BookingResponse, error) {
	s.logger.Info("GetByReference: fetching booking ref=%s", reference)

	booking, err := s.bookingRepo.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByReference: booking ref=%s not found", reference)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByReference: repository error for ref=%s: %v", reference, err)
		return nil, fmt.Errorf("%w: GetByReference - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetCustomerHistory получает историю бронирований клиента
func (s *Service) GetCustomerHistory(ctx context.Context, customerID int64) (*models.BookingListResponse, error) {
	s.logger.Info("GetCustomerHistory: fetching bookings for customer=%d", customerID)

	bookings, err := s.bookingRepo.GetByCustomerID(ctx, customerID)
	if err != nil {
		s.logger.Error("GetCustomerHistory: repository error for customer=%d: %v", customerID, err)
		return nil, fmt.Errorf("%w: GetCustomerHistory - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCustomerHistory: fetched %d bookings for customer=%d", len(bookings), customerID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование по референсу.
// Слот освобождается в тот же момент: кэш доступности сбрасывается синхронно.
// Удаление события календаря выполняется по принципу graceful degradation —
// его неуспех не откатывает отмену.
func (s *Service) Cancel(ctx context.Context, reference string, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking ref=%s", reference)

	booking, err := s.bookingRepo.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking ref=%s not found", reference)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for ref=%s: %v", reference, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking ref=%s cannot be cancelled, status=%s", reference, booking.Status)
		return ErrCannotCancel
	}

	if len(req.CancellationReason) > domain.MaxCancellationReasonLength {
		s.logger.Warn("Cancel: cancellation reason too long for ref=%s", reference)
		return fmt.Errorf("%w: cancellation reason too long", ErrInvalidInput)
	}

	if err := s.bookingRepo.Cancel(ctx, booking.ID, req.CancellationReason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for ref=%s: %v", reference, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if s.cache != nil {
		s.cache.InvalidateAvailability(ctx)
	}

	if s.calendarClient != nil && booking.CalendarEventID != nil {
		if err := s.calendarClient.DeleteEvent(ctx, *booking.CalendarEventID); err != nil {
			s.logger.Warn("Cancel: failed to delete calendar event=%s for ref=%s: %v",
				*booking.CalendarEventID, reference, err)
		}
	}

	s.logger.Info("Cancel: successfully cancelled booking ref=%s", reference)
	return nil
}

// UpdateStatus обновляет статус бронирования (админ-операция).
// Перевод в неактивный статус освобождает слот, поэтому кэш доступности
// сбрасывается.
func (s *Service) UpdateStatus(ctx context.Context, reference string, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking ref=%s to status=%s", reference, req.Status)

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for ref=%s", req.Status, reference)
		return fmt.Errorf("%w: invalid status", ErrInvalidStatus)
	}

	booking, err := s.bookingRepo.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking ref=%s not found", reference)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for ref=%s: %v", reference, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, booking.ID, newStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for ref=%s: %v", reference, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	if s.cache != nil && booking.IsActive() != newStatus.IsActiveStatus() {
		s.cache.InvalidateAvailability(ctx)
	}

	s.logger.Info("UpdateStatus: booking ref=%s updated to status=%s", reference, newStatus)
	return nil
}
