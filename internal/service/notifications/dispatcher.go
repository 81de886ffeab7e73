package notifications

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ign-garage/booking-service/internal/domain"
	"github.com/ign-garage/booking-service/internal/integrations/gcalendar"
	"github.com/ign-garage/booking-service/internal/integrations/mailer"
)

const (
	// Таймаут на одну попытку доставки в канал
	attemptTimeout = 15 * time.Second

	// База экспоненциального бэкоффа: 2s, 4s, 8s
	backoffBase = 2 * time.Second

	eventTimeZone = "Europe/London"
)

// Dispatcher асинхронный диспетчер уведомлений о бронированиях.
// Бронирование уже зафиксировано в базе, когда задание попадает в очередь:
// ни отказ календаря, ни отказ почты не откатывают его. Каналы доставляются
// независимо и параллельно, каждый со своими ретраями.
type Dispatcher struct {
	calendar    CalendarClient // может быть nil, если календарь выключен
	mail        MailClient     // может быть nil, если почта выключена
	bookingRepo BookingRepository
	metrics     Metrics // может быть nil
	logger      Logger

	fromAddress string
	garageCopy  string
	maxRetries  int
	backoff     time.Duration

	queue chan Task
	wg    sync.WaitGroup

	startOnce sync.Once
	stopOnce  sync.Once
}

// NewDispatcher создает диспетчер с ограниченной очередью.
// workers и queueSize приходят из конфигурации.
func NewDispatcher(
	calendar CalendarClient,
	mail MailClient,
	bookingRepo BookingRepository,
	metrics Metrics,
	logger Logger,
	fromAddress string,
	garageCopy string,
	maxRetries int,
	queueSize int,
) *Dispatcher {
	if maxRetries < 1 {
		maxRetries = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	return &Dispatcher{
		calendar:    calendar,
		mail:        mail,
		bookingRepo: bookingRepo,
		metrics:     metrics,
		logger:      logger,
		fromAddress: fromAddress,
		garageCopy:  garageCopy,
		maxRetries:  maxRetries,
		backoff:     backoffBase,
		queue:       make(chan Task, queueSize),
	}
}

// Start запускает воркеров диспетчера
func (d *Dispatcher) Start(workers int) {
	d.startOnce.Do(func() {
		if workers < 1 {
			workers = 1
		}
		for i := 0; i < workers; i++ {
			d.wg.Add(1)
			go d.worker()
		}
		d.logger.Info("notifications: dispatcher started with %d workers", workers)
	})
}

// Stop закрывает очередь и дожидается доставки уже принятых заданий
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() {
		close(d.queue)
		d.wg.Wait()
		d.logger.Info("notifications: dispatcher stopped")
	})
}

// Enqueue ставит задание в очередь, никогда не блокируя вызывающего.
// Переполненная очередь означает потерю уведомления, не бронирования.
func (d *Dispatcher) Enqueue(task Task) {
	select {
	case d.queue <- task:
	default:
		d.logger.Error("notifications: queue full, dropping notifications for booking ref=%s", task.Booking.Reference)
		d.incFailure(ChannelCalendar)
		d.incFailure(ChannelEmail)
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for task := range d.queue {
		d.process(task)
	}
}

// process доставляет оба канала параллельно: медленный календарь не должен
// задерживать письмо
func (d *Dispatcher) process(task Task) {
	var wg sync.WaitGroup

	if d.calendar != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.deliverCalendar(task)
		}()
	}

	if d.mail != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.deliverEmail(task)
		}()
	}

	wg.Wait()
}

func (d *Dispatcher) deliverCalendar(task Task) {
	event := buildEvent(&task.Booking, &task.Customer)

	var created *gcalendar.CreatedEvent
	err := d.withRetries(ChannelCalendar, task.Booking.Reference, func(ctx context.Context) error {
		var attemptErr error
		created, attemptErr = d.calendar.CreateEvent(ctx, event)
		return attemptErr
	})
	if err != nil {
		return
	}

	// ID события нужен для удаления при отмене бронирования
	ctx, cancel := context.WithTimeout(context.Background(), attemptTimeout)
	defer cancel()
	if err := d.bookingRepo.SetCalendarEventID(ctx, task.Booking.ID, created.ID); err != nil {
		d.logger.Error("notifications: failed to store calendar event id=%s for booking ref=%s: %v",
			created.ID, task.Booking.Reference, err)
	}
}

func (d *Dispatcher) deliverEmail(task Task) {
	msg := buildConfirmationEmail(&task.Booking, &task.Customer, d.fromAddress, d.garageCopy)

	_ = d.withRetries(ChannelEmail, task.Booking.Reference, func(ctx context.Context) error {
		_, attemptErr := d.mail.Send(ctx, msg)
		return attemptErr
	})
}

// withRetries выполняет попытки доставки с экспоненциальным бэкоффом.
// Каждая попытка ограничена собственным таймаутом.
func (d *Dispatcher) withRetries(channel, reference string, attempt func(ctx context.Context) error) error {
	var lastErr error

	for i := 0; i < d.maxRetries; i++ {
		if i > 0 {
			time.Sleep(d.backoff << (i - 1))
			if d.metrics != nil {
				d.metrics.IncNotificationRetry(channel)
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), attemptTimeout)
		lastErr = attempt(ctx)
		cancel()

		if lastErr == nil {
			if i > 0 {
				d.logger.Info("notifications: %s delivered for booking ref=%s after %d retries", channel, reference, i)
			}
			return nil
		}

		d.logger.Warn("notifications: %s attempt %d/%d failed for booking ref=%s: %v",
			channel, i+1, d.maxRetries, reference, lastErr)
	}

	d.logger.Error("notifications: %s delivery given up for booking ref=%s: %v", channel, reference, lastErr)
	d.incFailure(channel)
	return lastErr
}

func (d *Dispatcher) incFailure(channel string) {
	if d.metrics != nil {
		d.metrics.IncNotificationFailure(channel)
	}
}

func buildEvent(b *domain.Booking, c *domain.Customer) *gcalendar.Event {
	summary := fmt.Sprintf("%s: %s", b.Reference, vehicleLabel(&b.Vehicle))

	desc := &strings.Builder{}
	fmt.Fprintf(desc, "Customer: %s %s (%s, %s)\n", c.FirstName, c.LastName, c.Email, c.ContactNumber)
	fmt.Fprintf(desc, "Vehicle: %s\n", vehicleLabel(&b.Vehicle))
	fmt.Fprintf(desc, "Total: £%.2f\n", b.TotalPrice)
	if b.Notes != nil && *b.Notes != "" {
		fmt.Fprintf(desc, "Notes: %s\n", *b.Notes)
	}

	date := b.BookingDate.Format(domain.DateFormat)
	return &gcalendar.Event{
		Summary:     summary,
		Description: desc.String(),
		Start: gcalendar.EventTime{
			DateTime: fmt.Sprintf("%sT%s:00", date, b.StartTime),
			TimeZone: eventTimeZone,
		},
		End: gcalendar.EventTime{
			DateTime: fmt.Sprintf("%sT%s:00", date, b.EndTime),
			TimeZone: eventTimeZone,
		},
	}
}

func buildConfirmationEmail(b *domain.Booking, c *domain.Customer, from, garageCopy string) *mailer.Message {
	to := []string{c.Email}
	if garageCopy != "" {
		to = append(to, garageCopy)
	}

	body := &strings.Builder{}
	fmt.Fprintf(body, "Dear %s,\n\n", c.FirstName)
	fmt.Fprintf(body, "Your booking is confirmed.\n\n")
	fmt.Fprintf(body, "Reference: %s\n", b.Reference)
	fmt.Fprintf(body, "Date: %s\n", b.BookingDate.Format(domain.DateFormat))
	fmt.Fprintf(body, "Time: %s - %s\n", b.StartTime, b.EndTime)
	fmt.Fprintf(body, "Vehicle: %s\n", vehicleLabel(&b.Vehicle))
	fmt.Fprintf(body, "Total: £%.2f\n\n", b.TotalPrice)
	fmt.Fprintf(body, "Please quote your reference if you need to change or cancel the booking.\n")

	return &mailer.Message{
		From:     from,
		To:       to,
		Subject:  fmt.Sprintf("Booking confirmed: %s", b.Reference),
		TextBody: body.String(),
	}
}

func vehicleLabel(v *domain.VehicleSnapshot) string {
	parts := make([]string, 0, 3)
	if v.Make != nil && *v.Make != "" {
		parts = append(parts, *v.Make)
	}
	if v.Model != nil && *v.Model != "" {
		parts = append(parts, *v.Model)
	}
	parts = append(parts, v.Registration)
	return strings.Join(parts, " ")
}
