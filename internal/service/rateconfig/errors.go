package rateconfig

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfigNotFound возвращается, когда конфигурация тарифов ещё не сохранена
	ErrConfigNotFound = errors.New("rate configuration not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("rateconfig service: internal error")
)

// FieldError одна ошибка валидации с путём до поля документа
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError список ошибок валидации документа.
// Документ отклоняется целиком: частичных сохранений нет.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Field, f.Message)
	}
	return "rate configuration rejected: " + strings.Join(parts, "; ")
}

// AsValidationError извлекает ValidationError из цепочки ошибок
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
