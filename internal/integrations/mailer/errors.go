package mailer

import "errors"

var (
	// ErrRejected возвращается, когда почтовый сервис отклонил письмо
	ErrRejected = errors.New("mailer: message rejected")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("mailer client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе почтового сервиса
	ErrInvalidResponse = errors.New("mailer client: invalid response")
)
