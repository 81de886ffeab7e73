package schedule

import "errors"

var (
	// ErrConfigNotFound возвращается, когда активная конфигурация слотов не найдена
	ErrConfigNotFound = errors.New("schedule.repository: active slot configuration not found")

	// ErrClosedDayNotFound возвращается, когда закрытый день не найден
	ErrClosedDayNotFound = errors.New("schedule.repository: closed day not found")

	// ErrUnavailableSlotNotFound возвращается, когда заблокированный слот не найден
	ErrUnavailableSlotNotFound = errors.New("schedule.repository: unavailable slot not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
