package gcalendar

import "errors"

var (
	// ErrEventNotFound возвращается, когда событие календаря не найдено
	ErrEventNotFound = errors.New("calendar event not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("gcalendar client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе календаря
	ErrInvalidResponse = errors.New("gcalendar client: invalid response")
)
