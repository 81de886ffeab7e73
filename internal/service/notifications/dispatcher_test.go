package notifications

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ign-garage/booking-service/internal/domain"
	"github.com/ign-garage/booking-service/internal/integrations/gcalendar"
	"github.com/ign-garage/booking-service/internal/integrations/mailer"
	"github.com/ign-garage/booking-service/pkg/ptr"
	"github.com/ign-garage/booking-service/pkg/types"
)

type fakeCalendar struct {
	mu       sync.Mutex
	calls    int
	failures int // столько первых вызовов вернут ошибку
	events   []*gcalendar.Event
}

func (f *fakeCalendar) CreateEvent(ctx context.Context, event *gcalendar.Event) (*gcalendar.CreatedEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.calls <= f.failures {
		return nil, errors.New("calendar unavailable")
	}
	f.events = append(f.events, event)
	return &gcalendar.CreatedEvent{ID: "evt-123", Status: "confirmed"}, nil
}

type fakeMailer struct {
	mu       sync.Mutex
	calls    int
	failures int
	messages []*mailer.Message
}

func (f *fakeMailer) Send(ctx context.Context, msg *mailer.Message) (*mailer.SendResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.calls <= f.failures {
		return nil, errors.New("smtp down")
	}
	f.messages = append(f.messages, msg)
	return &mailer.SendResult{MessageID: "msg-1", Status: "sent"}, nil
}

type fakeBookingRepo struct {
	mu       sync.Mutex
	eventIDs map[int64]string
}

func (f *fakeBookingRepo) SetCalendarEventID(ctx context.Context, bookingID int64, eventID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.eventIDs == nil {
		f.eventIDs = map[int64]string{}
	}
	f.eventIDs[bookingID] = eventID
	return nil
}

type fakeMetrics struct {
	mu       sync.Mutex
	retries  map[string]int
	failures map[string]int
}

func (f *fakeMetrics) IncNotificationRetry(channel string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.retries == nil {
		f.retries = map[string]int{}
	}
	f.retries[channel]++
}

func (f *fakeMetrics) IncNotificationFailure(channel string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failures == nil {
		f.failures = map[string]int{}
	}
	f.failures[channel]++
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testTask() Task {
	return Task{
		Booking: domain.Booking{
			ID:        42,
			Reference: "IGN-20260315-001",
			Vehicle: domain.VehicleSnapshot{
				Registration: "AB12CDE",
				Make:         ptr.Ptr("Ford"),
				Model:        ptr.Ptr("Focus"),
			},
			BookingDate: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
			StartTime:   types.TimeString("09:00"),
			EndTime:     types.TimeString("11:00"),
			TotalPrice:  181.99,
			Status:      domain.StatusConfirmed,
		},
		Customer: domain.Customer{
			ID:            7,
			FirstName:     "Jane",
			LastName:      "Doe",
			Email:         "jane@example.com",
			ContactNumber: "07700900000",
		},
	}
}

func newTestDispatcher(cal *fakeCalendar, mail *fakeMailer, repo *fakeBookingRepo, m *fakeMetrics) *Dispatcher {
	var calClient CalendarClient
	if cal != nil {
		calClient = cal
	}
	var mailClient MailClient
	if mail != nil {
		mailClient = mail
	}
	var metrics Metrics
	if m != nil {
		metrics = m
	}
	d := NewDispatcher(calClient, mailClient, repo, metrics, nopLogger{}, "garage@example.com", "workshop@example.com", 3, 8)
	d.backoff = time.Millisecond
	return d
}

func TestDispatcher_DeliversBothChannels(t *testing.T) {
	cal := &fakeCalendar{}
	mail := &fakeMailer{}
	repo := &fakeBookingRepo{}

	d := newTestDispatcher(cal, mail, repo, nil)
	d.Start(2)

	d.Enqueue(testTask())
	d.Stop()

	require.Len(t, cal.events, 1)
	assert.Contains(t, cal.events[0].Summary, "IGN-20260315-001")
	assert.Equal(t, "2026-03-15T09:00:00", cal.events[0].Start.DateTime)
	assert.Equal(t, "2026-03-15T11:00:00", cal.events[0].End.DateTime)

	require.Len(t, mail.messages, 1)
	assert.Equal(t, []string{"jane@example.com", "workshop@example.com"}, mail.messages[0].To)
	assert.Contains(t, mail.messages[0].Subject, "IGN-20260315-001")
	assert.Contains(t, mail.messages[0].TextBody, "09:00 - 11:00")

	assert.Equal(t, "evt-123", repo.eventIDs[42])
}

func TestDispatcher_RetriesThenSucceeds(t *testing.T) {
	cal := &fakeCalendar{failures: 2}
	mail := &fakeMailer{}
	repo := &fakeBookingRepo{}
	metrics := &fakeMetrics{}

	d := newTestDispatcher(cal, mail, repo, metrics)
	d.Start(1)

	d.Enqueue(testTask())
	d.Stop()

	assert.Equal(t, 3, cal.calls, "two failures then success")
	assert.Equal(t, 2, metrics.retries[ChannelCalendar])
	assert.Zero(t, metrics.failures[ChannelCalendar])
	assert.Equal(t, "evt-123", repo.eventIDs[42])
}

func TestDispatcher_GivesUpAfterMaxRetriesWithoutAffectingOtherChannel(t *testing.T) {
	cal := &fakeCalendar{failures: 10}
	mail := &fakeMailer{}
	repo := &fakeBookingRepo{}
	metrics := &fakeMetrics{}

	d := newTestDispatcher(cal, mail, repo, metrics)
	d.Start(1)

	d.Enqueue(testTask())
	d.Stop()

	assert.Equal(t, 3, cal.calls, "stops at the retry limit")
	assert.Equal(t, 1, metrics.failures[ChannelCalendar])
	assert.Empty(t, repo.eventIDs)

	// Письмо доставлено несмотря на отказ календаря
	require.Len(t, mail.messages, 1)
	assert.Zero(t, metrics.failures[ChannelEmail])
}

func TestDispatcher_EnqueueNeverBlocksWhenQueueFull(t *testing.T) {
	metrics := &fakeMetrics{}
	d := NewDispatcher(nil, nil, &fakeBookingRepo{}, metrics, nopLogger{}, "garage@example.com", "", 1, 1)
	d.backoff = time.Millisecond

	// Воркеры не запущены: очередь заполняется первым заданием
	d.Enqueue(testTask())

	done := make(chan struct{})
	go func() {
		d.Enqueue(testTask())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Enqueue blocked on a full queue")
	}

	assert.Equal(t, 1, metrics.failures[ChannelCalendar])
	assert.Equal(t, 1, metrics.failures[ChannelEmail])
}

func TestDispatcher_DisabledChannelsSkipped(t *testing.T) {
	mail := &fakeMailer{}
	repo := &fakeBookingRepo{}

	d := newTestDispatcher(nil, mail, repo, nil)
	d.Start(1)

	d.Enqueue(testTask())
	d.Stop()

	require.Len(t, mail.messages, 1)
	assert.Empty(t, repo.eventIDs, "no calendar client, no event id")
}
