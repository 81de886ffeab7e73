package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ign-garage/booking-service/internal/domain"
	scheduleRepo "github.com/ign-garage/booking-service/internal/infra/storage/schedule"
	"github.com/ign-garage/booking-service/pkg/types"
)

type fakeRepo struct {
	config       *domain.SlotConfiguration
	closedDays   []*domain.ClosedDay
	blockedSlots []*domain.UnavailableSlot
	nextID       int64
}

func (f *fakeRepo) GetActiveConfiguration(ctx context.Context) (*domain.SlotConfiguration, error) {
	if f.config == nil {
		return nil, scheduleRepo.ErrConfigNotFound
	}
	return f.config, nil
}

func (f *fakeRepo) UpdateConfiguration(ctx context.Context, config *domain.SlotConfiguration) (*domain.SlotConfiguration, error) {
	if f.config == nil || f.config.ID != config.ID {
		return nil, scheduleRepo.ErrConfigNotFound
	}
	config.UpdatedAt = time.Now()
	f.config = config
	return config, nil
}

func (f *fakeRepo) ListClosedDays(ctx context.Context, from, to time.Time) ([]*domain.ClosedDay, error) {
	return f.closedDays, nil
}

func (f *fakeRepo) CreateClosedDay(ctx context.Context, day *domain.ClosedDay) (*domain.ClosedDay, error) {
	f.nextID++
	day.ID = f.nextID
	day.CreatedAt = time.Now()
	f.closedDays = append(f.closedDays, day)
	return day, nil
}

func (f *fakeRepo) DeleteClosedDay(ctx context.Context, id int64) error {
	for i, day := range f.closedDays {
		if day.ID == id {
			f.closedDays = append(f.closedDays[:i], f.closedDays[i+1:]...)
			return nil
		}
	}
	return scheduleRepo.ErrClosedDayNotFound
}

func (f *fakeRepo) ListUnavailableSlots(ctx context.Context, from, to time.Time) ([]*domain.UnavailableSlot, error) {
	return f.blockedSlots, nil
}

func (f *fakeRepo) CreateUnavailableSlot(ctx context.Context, slot *domain.UnavailableSlot) (*domain.UnavailableSlot, error) {
	f.nextID++
	slot.ID = f.nextID
	slot.CreatedAt = time.Now()
	f.blockedSlots = append(f.blockedSlots, slot)
	return slot, nil
}

func (f *fakeRepo) DeleteUnavailableSlot(ctx context.Context, id int64) error {
	for i, slot := range f.blockedSlots {
		if slot.ID == id {
			f.blockedSlots = append(f.blockedSlots[:i], f.blockedSlots[i+1:]...)
			return nil
		}
	}
	return scheduleRepo.ErrUnavailableSlotNotFound
}

type fakeCache struct {
	invalidations int
}

func (f *fakeCache) InvalidateAvailability(ctx context.Context) {
	f.invalidations++
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func activeConfig() *domain.SlotConfiguration {
	return &domain.SlotConfiguration{
		ID:                  1,
		StartTime:           "09:00",
		EndTime:             "17:00",
		SlotDurationMinutes: 120,
		SlotsPerTimeSlot:    2,
		DaysOfWeek: []time.Weekday{
			time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
		},
		MinLeadTimeDays: 1,
		MaxBookingDays:  14,
		IsActive:        true,
	}
}

func TestUpdateConfiguration_ReplacesActiveAndInvalidatesCache(t *testing.T) {
	repo := &fakeRepo{config: activeConfig()}
	cache := &fakeCache{}
	svc := NewService(repo, cache, nopLogger{})

	next := activeConfig()
	next.ID = 0 // клиент не знает внутренний id
	next.SlotsPerTimeSlot = 3

	updated, err := svc.UpdateConfiguration(context.Background(), next)
	require.NoError(t, err)

	assert.Equal(t, int64(1), updated.ID)
	assert.Equal(t, 3, repo.config.SlotsPerTimeSlot)
	assert.Equal(t, 1, cache.invalidations)
}

func TestUpdateConfiguration_RejectsInvalidConfig(t *testing.T) {
	repo := &fakeRepo{config: activeConfig()}
	cache := &fakeCache{}
	svc := NewService(repo, cache, nopLogger{})

	tests := []struct {
		name   string
		mutate func(c *domain.SlotConfiguration)
	}{
		{"start after end", func(c *domain.SlotConfiguration) { c.StartTime, c.EndTime = "17:00", "09:00" }},
		{"zero duration", func(c *domain.SlotConfiguration) { c.SlotDurationMinutes = 0 }},
		{"zero capacity", func(c *domain.SlotConfiguration) { c.SlotsPerTimeSlot = 0 }},
		{"negative lead time", func(c *domain.SlotConfiguration) { c.MinLeadTimeDays = -1 }},
		{"lead time beyond horizon", func(c *domain.SlotConfiguration) { c.MinLeadTimeDays = 20 }},
		{"horizon above limit", func(c *domain.SlotConfiguration) { c.MaxBookingDays = domain.MaxAvailabilityRangeDays + 1 }},
		{"no working days", func(c *domain.SlotConfiguration) { c.DaysOfWeek = nil }},
		{"duration does not fit working hours", func(c *domain.SlotConfiguration) { c.SlotDurationMinutes = 600 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := activeConfig()
			tt.mutate(config)

			_, err := svc.UpdateConfiguration(context.Background(), config)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	assert.Equal(t, 0, cache.invalidations)
}

func TestUpdateConfiguration_NoActiveConfig(t *testing.T) {
	svc := NewService(&fakeRepo{}, &fakeCache{}, nopLogger{})

	_, err := svc.UpdateConfiguration(context.Background(), activeConfig())
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestClosedDays_CreateAndDelete(t *testing.T) {
	repo := &fakeRepo{}
	cache := &fakeCache{}
	svc := NewService(repo, cache, nopLogger{})

	reason := "Bank holiday"
	day, err := svc.CreateClosedDay(context.Background(), &domain.ClosedDay{
		Date:   time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC),
		Reason: &reason,
	})
	require.NoError(t, err)
	assert.NotZero(t, day.ID)
	assert.Equal(t, 1, cache.invalidations)

	require.NoError(t, svc.DeleteClosedDay(context.Background(), day.ID))
	assert.Empty(t, repo.closedDays)
	assert.Equal(t, 2, cache.invalidations)

	err = svc.DeleteClosedDay(context.Background(), day.ID)
	assert.ErrorIs(t, err, ErrClosedDayNotFound)
}

func TestCreateClosedDay_RecurringWeekday(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, &fakeCache{}, nopLogger{})

	sunday := time.Sunday
	day, err := svc.CreateClosedDay(context.Background(), &domain.ClosedDay{
		IsRecurring: true,
		DayOfWeek:   &sunday,
	})
	require.NoError(t, err)

	require.NotNil(t, day.DayOfWeek)
	assert.Equal(t, time.Sunday, *day.DayOfWeek)
	assert.True(t, day.Date.IsZero())

	// закрытие действует на каждое воскресенье
	assert.True(t, day.AppliesTo(time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)))
	assert.True(t, day.AppliesTo(time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC)))
	assert.False(t, day.AppliesTo(time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)))
}

func TestCreateClosedDay_RejectsInvalidVariants(t *testing.T) {
	svc := NewService(&fakeRepo{}, &fakeCache{}, nopLogger{})

	// разовое закрытие без даты
	_, err := svc.CreateClosedDay(context.Background(), &domain.ClosedDay{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// повторяющееся закрытие без дня недели
	_, err = svc.CreateClosedDay(context.Background(), &domain.ClosedDay{IsRecurring: true})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// день недели вне диапазона
	bad := time.Weekday(7)
	_, err = svc.CreateClosedDay(context.Background(), &domain.ClosedDay{IsRecurring: true, DayOfWeek: &bad})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateUnavailableSlot_ValidatesTimes(t *testing.T) {
	svc := NewService(&fakeRepo{}, &fakeCache{}, nopLogger{})
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)

	_, err := svc.CreateUnavailableSlot(context.Background(), &domain.UnavailableSlot{
		Date:      date,
		StartTime: types.TimeString("25:00"),
		EndTime:   types.TimeString("11:00"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateUnavailableSlot(context.Background(), &domain.UnavailableSlot{
		Date:      date,
		StartTime: types.TimeString("11:00"),
		EndTime:   types.TimeString("09:00"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	created, err := svc.CreateUnavailableSlot(context.Background(), &domain.UnavailableSlot{
		Date:      date,
		StartTime: types.TimeString("09:00"),
		EndTime:   types.TimeString("11:00"),
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
}

func TestDeleteUnavailableSlot_NotFound(t *testing.T) {
	svc := NewService(&fakeRepo{}, &fakeCache{}, nopLogger{})

	err := svc.DeleteUnavailableSlot(context.Background(), 42)
	assert.ErrorIs(t, err, ErrUnavailableSlotNotFound)
}

func TestListClosedDays_RejectsInvertedRange(t *testing.T) {
	svc := NewService(&fakeRepo{}, &fakeCache{}, nopLogger{})

	from := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, -1)

	_, err := svc.ListClosedDays(context.Background(), from, to)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.ListUnavailableSlots(context.Background(), from, to)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
