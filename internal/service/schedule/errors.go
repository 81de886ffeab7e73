package schedule

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("schedule service: invalid input data")

	// ErrConfigNotFound возвращается, когда активная конфигурация слотов не найдена
	ErrConfigNotFound = errors.New("schedule service: slot configuration not found")

	// ErrClosedDayNotFound возвращается, когда закрытый день не найден
	ErrClosedDayNotFound = errors.New("schedule service: closed day not found")

	// ErrUnavailableSlotNotFound возвращается, когда заблокированный слот не найден
	ErrUnavailableSlotNotFound = errors.New("schedule service: unavailable slot not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("schedule service: internal error")
)
