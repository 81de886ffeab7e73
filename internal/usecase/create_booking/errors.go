package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrNoSlotConfiguration возвращается, когда активная конфигурация слотов отсутствует
	ErrNoSlotConfiguration = errors.New("create_booking: no active slot configuration")

	// ErrDateOutOfRange возвращается, когда дата вне окна бронирования
	ErrDateOutOfRange = errors.New("create_booking: date is outside the booking window")

	// ErrGarageClosed возвращается, когда гараж не работает в указанную дату
	ErrGarageClosed = errors.New("create_booking: garage is closed on this date")

	// ErrInvalidTimeSlot возвращается, когда запрошенное время не совпадает с сеткой слотов
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrSlotUnavailable возвращается, когда слот заблокирован администратором
	ErrSlotUnavailable = errors.New("create_booking: slot is unavailable")

	// ErrSlotFull возвращается, когда все места в слоте заняты
	ErrSlotFull = errors.New("create_booking: slot is fully booked")

	// ErrPricingUnavailable возвращается, когда конфигурация тарифов ещё не сохранена
	ErrPricingUnavailable = errors.New("create_booking: rate configuration is not available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
