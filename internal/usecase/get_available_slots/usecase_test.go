package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ign-garage/booking-service/internal/domain"
	scheduleRepo "github.com/ign-garage/booking-service/internal/infra/storage/schedule"
	"github.com/ign-garage/booking-service/pkg/ptr"
	"github.com/ign-garage/booking-service/pkg/types"
)

type fakeBookingRepo struct {
	counts map[string]int
}

func (f *fakeBookingRepo) CountActiveByDateRange(ctx context.Context, from, to time.Time) (map[string]int, error) {
	return f.counts, nil
}

type fakeScheduleRepo struct {
	config    *domain.SlotConfiguration
	configErr error
	closed    []*domain.ClosedDay
	blocked   []*domain.UnavailableSlot
}

func (f *fakeScheduleRepo) GetActiveConfiguration(ctx context.Context) (*domain.SlotConfiguration, error) {
	if f.configErr != nil {
		return nil, f.configErr
	}
	return f.config, nil
}

func (f *fakeScheduleRepo) ListClosedDays(ctx context.Context, from, to time.Time) ([]*domain.ClosedDay, error) {
	return f.closed, nil
}

func (f *fakeScheduleRepo) ListUnavailableSlots(ctx context.Context, from, to time.Time) ([]*domain.UnavailableSlot, error) {
	return f.blocked, nil
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Вторник
var testNow = time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)

func testConfig() *domain.SlotConfiguration {
	return &domain.SlotConfiguration{
		StartTime:           types.TimeString("09:00"),
		EndTime:             types.TimeString("17:00"),
		SlotDurationMinutes: 120,
		SlotsPerTimeSlot:    4,
		DaysOfWeek: []time.Weekday{
			time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
		},
		MinLeadTimeDays: 0,
		MaxBookingDays:  6,
		IsActive:        true,
	}
}

func newTestUseCase(bookings *fakeBookingRepo, schedule *fakeScheduleRepo) *UseCase {
	uc := NewUseCase(bookings, schedule, nil, nopLogger{})
	uc.timeProvider = fixedTime{now: testNow}
	return uc
}

func TestExecute_GeneratesSlotGridForOpenDays(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{counts: map[string]int{}}, &fakeScheduleRepo{config: testConfig()})

	resp, err := uc.Execute(context.Background(), &Request{})
	require.NoError(t, err)

	// Окно 1..7 сентября: Вт-Пт + Пн следующей недели, выходные выпадают
	require.Len(t, resp.Days, 5)
	assert.Equal(t, "2026-09-01", resp.Days[0].Date)
	assert.Equal(t, "2026-09-04", resp.Days[3].Date)
	assert.Equal(t, "2026-09-07", resp.Days[4].Date)

	// Полный день: 09-11, 11-13, 13-15, 15-17
	wednesday := resp.Days[1]
	require.Len(t, wednesday.Slots, 4)
	assert.Equal(t, "2026-09-02_09:00_11:00", wednesday.Slots[0].SlotID)
	assert.Equal(t, "09:00 - 11:00", wednesday.Slots[0].DisplayTime)
	assert.Equal(t, 4, wednesday.Slots[0].AvailableSpots)
	assert.Equal(t, 4, wednesday.Slots[0].TotalSpots)
}

func TestExecute_PastSlotsOfTodayHidden(t *testing.T) {
	// Сейчас 10:30: слот 09:00 уже начался и не предлагается
	uc := newTestUseCase(&fakeBookingRepo{counts: map[string]int{}}, &fakeScheduleRepo{config: testConfig()})

	resp, err := uc.Execute(context.Background(), &Request{Days: 1})
	require.NoError(t, err)

	require.Len(t, resp.Days, 1)
	today := resp.Days[0]
	assert.Equal(t, "2026-09-01", today.Date)
	require.Len(t, today.Slots, 3)
	assert.Equal(t, "11:00", today.Slots[0].StartTime)
}

func TestExecute_ClosedDayExcluded(t *testing.T) {
	schedule := &fakeScheduleRepo{
		config: testConfig(),
		closed: []*domain.ClosedDay{
			{ID: 1, Date: time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC), Reason: ptr.Ptr("bank holiday")},
		},
	}
	uc := newTestUseCase(&fakeBookingRepo{counts: map[string]int{}}, schedule)

	resp, err := uc.Execute(context.Background(), &Request{})
	require.NoError(t, err)

	for _, day := range resp.Days {
		assert.NotEqual(t, "2026-09-02", day.Date)
	}
}

func TestExecute_BlockedSlotExcluded(t *testing.T) {
	schedule := &fakeScheduleRepo{
		config: testConfig(),
		blocked: []*domain.UnavailableSlot{
			{
				ID:        1,
				Date:      time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
				StartTime: types.TimeString("11:00"),
				EndTime:   types.TimeString("13:00"),
			},
		},
	}
	uc := newTestUseCase(&fakeBookingRepo{counts: map[string]int{}}, schedule)

	resp, err := uc.Execute(context.Background(), &Request{})
	require.NoError(t, err)

	wednesday := resp.Days[1]
	require.Equal(t, "2026-09-02", wednesday.Date)
	require.Len(t, wednesday.Slots, 3)
	for _, slot := range wednesday.Slots {
		assert.NotEqual(t, "11:00", slot.StartTime)
	}
}

func TestExecute_BookingCountsReduceAvailability(t *testing.T) {
	bookings := &fakeBookingRepo{counts: map[string]int{
		"2026-09-02_09:00_11:00": 3,
	}}
	uc := newTestUseCase(bookings, &fakeScheduleRepo{config: testConfig()})

	resp, err := uc.Execute(context.Background(), &Request{})
	require.NoError(t, err)

	wednesday := resp.Days[1]
	assert.Equal(t, 1, wednesday.Slots[0].AvailableSpots)
	assert.Equal(t, 4, wednesday.Slots[1].AvailableSpots)
}

func TestExecute_FullSlotsNotEmitted(t *testing.T) {
	bookings := &fakeBookingRepo{counts: map[string]int{
		"2026-09-02_09:00_11:00": 4, // ровно вместимость
		"2026-09-02_11:00_13:00": 5, // перебор после смены конфигурации
	}}
	uc := newTestUseCase(bookings, &fakeScheduleRepo{config: testConfig()})

	resp, err := uc.Execute(context.Background(), &Request{})
	require.NoError(t, err)

	wednesday := resp.Days[1]
	require.Equal(t, "2026-09-02", wednesday.Date)
	require.Len(t, wednesday.Slots, 2)
	for _, slot := range wednesday.Slots {
		assert.Positive(t, slot.AvailableSpots)
		assert.NotEqual(t, "09:00", slot.StartTime)
		assert.NotEqual(t, "11:00", slot.StartTime)
	}
}

func TestExecute_FullyBookedDayDropped(t *testing.T) {
	// Один слот в день, одно место — занятый день исчезает из выдачи
	config := testConfig()
	config.StartTime = types.TimeString("09:00")
	config.EndTime = types.TimeString("11:00")
	config.SlotsPerTimeSlot = 1
	config.DaysOfWeek = []time.Weekday{time.Wednesday}
	config.MaxBookingDays = 1

	bookings := &fakeBookingRepo{counts: map[string]int{
		"2026-09-02_09:00_11:00": 1,
	}}
	uc := newTestUseCase(bookings, &fakeScheduleRepo{config: config})

	resp, err := uc.Execute(context.Background(), &Request{})
	require.NoError(t, err)

	assert.Empty(t, resp.Days)
}

func TestExecute_RecurringClosureRemovesEveryMatchingWeekday(t *testing.T) {
	config := testConfig()
	config.MaxBookingDays = 13 // окно 1..14 сентября: две среды

	schedule := &fakeScheduleRepo{
		config: config,
		closed: []*domain.ClosedDay{
			{ID: 1, IsRecurring: true, DayOfWeek: ptr.Ptr(time.Wednesday), Reason: ptr.Ptr("no MOT tester")},
		},
	}
	uc := newTestUseCase(&fakeBookingRepo{counts: map[string]int{}}, schedule)

	resp, err := uc.Execute(context.Background(), &Request{})
	require.NoError(t, err)

	require.NotEmpty(t, resp.Days)
	for _, day := range resp.Days {
		assert.NotEqual(t, "2026-09-02", day.Date)
		assert.NotEqual(t, "2026-09-09", day.Date)
	}
}

func TestExecute_NoConfigurationMappedToError(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{counts: map[string]int{}},
		&fakeScheduleRepo{configErr: scheduleRepo.ErrConfigNotFound},
	)

	_, err := uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrNoSlotConfiguration)
}

func TestExecute_NegativeDaysRejected(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{counts: map[string]int{}}, &fakeScheduleRepo{config: testConfig()})

	_, err := uc.Execute(context.Background(), &Request{Days: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
