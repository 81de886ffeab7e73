package pricing

import "errors"

var (
	// ErrInvalidEngineSize возвращается при неположительном объёме двигателя.
	// Расчёт цен всегда требует конкретного значения: "неизвестного" диапазона нет.
	ErrInvalidEngineSize = errors.New("pricing: engine size must be a positive number of cc")
)
