package get_available_slots

// Request модель запроса доступных слотов
type Request struct {
	// Days ограничивает горизонт выдачи; 0 означает полное окно
	// бронирования из конфигурации слотов
	Days int
}

// Slot один доступный слот в выдаче
type Slot struct {
	SlotID         string `json:"slotId"`      // "YYYY-MM-DD_HH:MM_HH:MM"
	StartTime      string `json:"startTime"`   // "09:00"
	EndTime        string `json:"endTime"`     // "11:00"
	DisplayTime    string `json:"displayTime"` // "09:00 - 11:00"
	AvailableSpots int    `json:"availableSpots"`
	TotalSpots     int    `json:"totalSpots"`
}

// DayAvailability слоты одного рабочего дня
type DayAvailability struct {
	Date  string `json:"date"` // "2026-03-15"
	Slots []Slot `json:"slots"`
}

// Response модель ответа с доступными слотами по дням.
// Закрытые дни и дни вне рабочей недели в выдачу не попадают.
type Response struct {
	Days []DayAvailability `json:"days"`
}
