package vehicledata

import "errors"

var (
	// ErrVehicleNotFound возвращается, когда регистрационный номер не найден у провайдера
	ErrVehicleNotFound = errors.New("vehicle not found for registration")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("vehicledata client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от провайдера
	ErrInvalidResponse = errors.New("vehicledata client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation:
	// провайдер недоступен, клиент может ввести данные вручную
	ErrServiceDegraded = errors.New("vehicledata provider unavailable: graceful degradation applied")
)
