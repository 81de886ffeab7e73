package create_booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ign-garage/booking-service/internal/domain"
	"github.com/ign-garage/booking-service/internal/service/notifications"
	"github.com/ign-garage/booking-service/internal/service/pricing"
	rateSvc "github.com/ign-garage/booking-service/internal/service/rateconfig"
	"github.com/ign-garage/booking-service/pkg/types"
)

type fakeBookingRepo struct {
	mu       sync.Mutex
	nextID   int64
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	stored := *booking
	stored.ID = f.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	f.bookings = append(f.bookings, &stored)
	return &stored, nil
}

func (f *fakeBookingRepo) GetForSlot(ctx context.Context, date time.Time, start, end types.TimeString) ([]*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.BookingDate.Format(domain.DateFormat) == date.Format(domain.DateFormat) &&
			b.StartTime == start && b.EndTime == end {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) CountCreatedOn(ctx context.Context, day time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.bookings), nil
}

type fakeCustomerRepo struct {
	mu     sync.Mutex
	nextID int64
	byMail map[string]int64
}

func (f *fakeCustomerRepo) Upsert(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.byMail == nil {
		f.byMail = map[string]int64{}
	}
	id, ok := f.byMail[customer.Email]
	if !ok {
		f.nextID++
		id = f.nextID
		f.byMail[customer.Email] = id
	}
	stored := *customer
	stored.ID = id
	return &stored, nil
}

type fakeScheduleRepo struct {
	config  *domain.SlotConfiguration
	closed  []*domain.ClosedDay
	blocked []*domain.UnavailableSlot
}

func (f *fakeScheduleRepo) GetActiveConfiguration(ctx context.Context) (*domain.SlotConfiguration, error) {
	return f.config, nil
}

func (f *fakeScheduleRepo) ListClosedDays(ctx context.Context, from, to time.Time) ([]*domain.ClosedDay, error) {
	var out []*domain.ClosedDay
	for _, d := range f.closed {
		if d.IsRecurring || (!d.Date.Before(from) && !d.Date.After(to)) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeScheduleRepo) ListUnavailableSlots(ctx context.Context, from, to time.Time) ([]*domain.UnavailableSlot, error) {
	return f.blocked, nil
}

type fakeRateProvider struct {
	config *domain.RateConfiguration
	err    error
}

func (f *fakeRateProvider) Get(ctx context.Context) (*domain.RateConfiguration, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.config, nil
}

// serialTxManager последовательно выполняет транзакции, как это делает
// Postgres на уровне SERIALIZABLE для конфликтующих записей
type serialTxManager struct {
	mu    sync.Mutex
	calls int
}

func (m *serialTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return fn(ctx)
}

type fakeDispatcher struct {
	mu    sync.Mutex
	tasks []notifications.Task
}

func (f *fakeDispatcher) Enqueue(task notifications.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, task)
}

type fakeCache struct {
	mu            sync.Mutex
	invalidations int
}

func (f *fakeCache) InvalidateAvailability(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidations++
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

// Вторник
var testNow = time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)

func testSlotConfig() *domain.SlotConfiguration {
	return &domain.SlotConfiguration{
		StartTime:           types.TimeString("09:00"),
		EndTime:             types.TimeString("17:00"),
		SlotDurationMinutes: 120,
		SlotsPerTimeSlot:    2,
		DaysOfWeek: []time.Weekday{
			time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
		},
		MinLeadTimeDays: 0,
		MaxBookingDays:  14,
		IsActive:        true,
	}
}

func testRateConfig() *domain.RateConfiguration {
	doc := &domain.RateConfiguration{}
	doc.MotClass4.Enabled = true
	doc.MotClass4.StandardPrice = 54.85
	return doc
}

type testEnv struct {
	uc         *UseCase
	bookings   *fakeBookingRepo
	dispatcher *fakeDispatcher
	cache      *fakeCache
	tx         *serialTxManager
}

func newTestEnv(schedule *fakeScheduleRepo, rates *fakeRateProvider) *testEnv {
	env := &testEnv{
		bookings:   &fakeBookingRepo{},
		dispatcher: &fakeDispatcher{},
		cache:      &fakeCache{},
		tx:         &serialTxManager{},
	}
	env.uc = NewUseCase(
		env.bookings,
		&fakeCustomerRepo{},
		schedule,
		rates,
		pricing.NewService(),
		env.dispatcher,
		env.cache,
		env.tx,
		nil,
		nopLogger{},
	)
	env.uc.timeProvider = fixedTime{now: testNow}
	return env
}

func validRequest() *Request {
	return &Request{
		Customer: CustomerInput{
			FirstName:     "Jane",
			LastName:      "Doe",
			Email:         "Jane@Example.com",
			ContactNumber: "07700900000",
		},
		Vehicle: VehicleInput{
			Registration: "ab12 cde",
			EngineSizeCc: 1400,
		},
		Date:       time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
		StartTime:  types.TimeString("09:00"),
		EndTime:    types.TimeString("11:00"),
		ServiceIDs: []string{domain.ItemIDMot},
	}
}

func TestExecute_CreatesBookingWithServerSidePrice(t *testing.T) {
	env := newTestEnv(&fakeScheduleRepo{config: testSlotConfig()}, &fakeRateProvider{config: testRateConfig()})

	resp, err := env.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "IGN-20260901-001", resp.Reference)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.InDelta(t, 54.85, resp.TotalPrice, 0.001)
	assert.JSONEq(t, `[{
		"id": "mot",
		"name": "MOT (Class 4)",
		"basePrice": 54.85,
		"finalPrice": 54.85,
		"discounts": [],
		"type": "service"
	}]`, string(resp.Services))

	require.Len(t, env.bookings.bookings, 1)
	stored := env.bookings.bookings[0]
	assert.Equal(t, "AB12CDE", stored.Vehicle.Registration, "registration is normalized")

	assert.Equal(t, 1, env.cache.invalidations)
	require.Len(t, env.dispatcher.tasks, 1)
	assert.Equal(t, "jane@example.com", env.dispatcher.tasks[0].Customer.Email)
}

func TestExecute_ReferencesAreSequentialPerDay(t *testing.T) {
	env := newTestEnv(&fakeScheduleRepo{config: testSlotConfig()}, &fakeRateProvider{config: testRateConfig()})

	first, err := env.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	second := validRequest()
	second.StartTime = types.TimeString("11:00")
	second.EndTime = types.TimeString("13:00")
	resp, err := env.uc.Execute(context.Background(), second)
	require.NoError(t, err)

	assert.Equal(t, "IGN-20260901-001", first.Reference)
	assert.Equal(t, "IGN-20260901-002", resp.Reference)
}

func TestExecute_SlotFullRejected(t *testing.T) {
	env := newTestEnv(&fakeScheduleRepo{config: testSlotConfig()}, &fakeRateProvider{config: testRateConfig()})

	for i := 0; i < 2; i++ {
		_, err := env.uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)
	}

	_, err := env.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotFull)
	assert.Len(t, env.bookings.bookings, 2)
}

func TestExecute_ConcurrentRequestsNeverOverbook(t *testing.T) {
	env := newTestEnv(&fakeScheduleRepo{config: testSlotConfig()}, &fakeRateProvider{config: testRateConfig()})

	const attempts = 8
	errs := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.uc.Execute(context.Background(), validRequest())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var confirmed, full int
	for err := range errs {
		switch {
		case err == nil:
			confirmed++
		default:
			require.ErrorIs(t, err, ErrSlotFull)
			full++
		}
	}

	assert.Equal(t, 2, confirmed, "capacity is two spots")
	assert.Equal(t, attempts-2, full)
	assert.Len(t, env.bookings.bookings, 2)
}

func TestExecute_ClosedDayRejected(t *testing.T) {
	schedule := &fakeScheduleRepo{
		config: testSlotConfig(),
		closed: []*domain.ClosedDay{
			{ID: 1, Date: time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)},
		},
	}
	env := newTestEnv(schedule, &fakeRateProvider{config: testRateConfig()})

	_, err := env.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrGarageClosed)
	assert.Empty(t, env.bookings.bookings)
}

func TestExecute_RecurringClosureRejected(t *testing.T) {
	// запрос на среду 2026-09-02, гараж закрыт по средам
	wednesday := time.Wednesday
	schedule := &fakeScheduleRepo{
		config: testSlotConfig(),
		closed: []*domain.ClosedDay{
			{ID: 1, IsRecurring: true, DayOfWeek: &wednesday},
		},
	}
	env := newTestEnv(schedule, &fakeRateProvider{config: testRateConfig()})

	_, err := env.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrGarageClosed)
	assert.Empty(t, env.bookings.bookings)
}

func TestExecute_RejectedRequestsSkipTransaction(t *testing.T) {
	schedule := &fakeScheduleRepo{
		config: testSlotConfig(),
		closed: []*domain.ClosedDay{
			{ID: 1, Date: time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)},
		},
	}
	env := newTestEnv(schedule, &fakeRateProvider{config: testRateConfig()})

	_, err := env.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrGarageClosed)
	assert.Equal(t, 0, env.tx.calls, "отказ по расписанию не должен открывать транзакцию")
}

func TestExecute_BlockedSlotRejected(t *testing.T) {
	schedule := &fakeScheduleRepo{
		config: testSlotConfig(),
		blocked: []*domain.UnavailableSlot{
			{
				ID:        1,
				Date:      time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
				StartTime: types.TimeString("09:00"),
				EndTime:   types.TimeString("11:00"),
			},
		},
	}
	env := newTestEnv(schedule, &fakeRateProvider{config: testRateConfig()})

	_, err := env.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestExecute_OffGridSlotRejected(t *testing.T) {
	env := newTestEnv(&fakeScheduleRepo{config: testSlotConfig()}, &fakeRateProvider{config: testRateConfig()})

	req := validRequest()
	req.StartTime = types.TimeString("10:00")
	req.EndTime = types.TimeString("12:00")

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_UnknownServiceIDRejected(t *testing.T) {
	env := newTestEnv(&fakeScheduleRepo{config: testSlotConfig()}, &fakeRateProvider{config: testRateConfig()})

	req := validRequest()
	req.ServiceIDs = []string{"jet-wash"}

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_MissingRateConfigurationRejected(t *testing.T) {
	env := newTestEnv(&fakeScheduleRepo{config: testSlotConfig()}, &fakeRateProvider{err: rateSvc.ErrConfigNotFound})

	_, err := env.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrPricingUnavailable)
}

func TestExecute_InvalidEmailRejected(t *testing.T) {
	env := newTestEnv(&fakeScheduleRepo{config: testSlotConfig()}, &fakeRateProvider{config: testRateConfig()})

	req := validRequest()
	req.Customer.Email = "not-an-email"

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, env.bookings.bookings)
}
