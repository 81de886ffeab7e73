package notifications

import (
	"context"

	"github.com/ign-garage/booking-service/internal/integrations/gcalendar"
	"github.com/ign-garage/booking-service/internal/integrations/mailer"
)

// CalendarClient интерфейс клиента календаря гаража
type CalendarClient interface {
	CreateEvent(ctx context.Context, event *gcalendar.Event) (*gcalendar.CreatedEvent, error)
}

// MailClient интерфейс почтового клиента
type MailClient interface {
	Send(ctx context.Context, msg *mailer.Message) (*mailer.SendResult, error)
}

// BookingRepository нужен диспетчеру только для сохранения ID созданного
// события календаря
type BookingRepository interface {
	SetCalendarEventID(ctx context.Context, bookingID int64, eventID string) error
}

// Metrics интерфейс метрик уведомлений
type Metrics interface {
	IncNotificationRetry(channel string)
	IncNotificationFailure(channel string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
