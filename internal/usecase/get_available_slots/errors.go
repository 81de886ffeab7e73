package get_available_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrNoSlotConfiguration возвращается, когда активная конфигурация слотов отсутствует
	ErrNoSlotConfiguration = errors.New("get_available_slots: no active slot configuration")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
