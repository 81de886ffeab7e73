package gcalendar

// Event событие календаря гаража
type Event struct {
	Summary     string    `json:"summary"`
	Description string    `json:"description"`
	Start       EventTime `json:"start"`
	End         EventTime `json:"end"`
}

// EventTime момент начала или конца события
type EventTime struct {
	DateTime string `json:"dateTime"` // RFC 3339
	TimeZone string `json:"timeZone"`
}

// CreatedEvent ответ календаря на создание события
type CreatedEvent struct {
	ID       string `json:"id"`
	HTMLLink string `json:"htmlLink"`
	Status   string `json:"status"`
}
