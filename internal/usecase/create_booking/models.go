package create_booking

import (
	"encoding/json"
	"time"

	"github.com/ign-garage/booking-service/pkg/types"
)

// CustomerInput данные клиента из формы бронирования
type CustomerInput struct {
	FirstName     string
	LastName      string
	Email         string
	ContactNumber string
}

// VehicleInput данные автомобиля из формы бронирования.
// Заполняются lookup-ом по регистрационному номеру, но могут быть
// введены вручную, поэтому валидируются заново.
type VehicleInput struct {
	Registration string
	Make         *string
	Model        *string
	EngineSizeCc int
	FuelType     *string
	VehicleClass *string
}

// Request модель запроса на создание бронирования
type Request struct {
	Customer CustomerInput
	Vehicle  VehicleInput

	Date      time.Time        // Дата бронирования (без времени)
	StartTime types.TimeString // Начало слота, например "09:00"
	EndTime   types.TimeString // Конец слота, например "11:00"

	// Выбранные позиции каталога; цены пересчитываются на сервере
	ServiceIDs            []string
	IsBlueLightCardHolder bool

	Notes *string
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID          int64
	Reference   string
	BookingDate time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
	Status      string

	// Прайс-снимок выбранных позиций на момент подтверждения
	Services   json.RawMessage
	TotalPrice float64

	CreatedAt time.Time
}
