package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/ign-garage/booking-service/internal/domain"
	"github.com/ign-garage/booking-service/pkg/dbmetrics"
	"github.com/ign-garage/booking-service/pkg/psqlbuilder"
)

// DBExecutor интерфейс для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий расписания: конфигурация слотов, закрытые дни
// и заблокированные слоты
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetActiveConfiguration получает активную конфигурацию слотов.
// Активной может быть только одна конфигурация; без неё доступность
// и бронирование не работают.
func (r *Repository) GetActiveConfiguration(ctx context.Context) (*domain.SlotConfiguration, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"start_time",
		"end_time",
		"slot_duration_minutes",
		"slots_per_time_slot",
		"days_of_week",
		"min_lead_time_days",
		"max_booking_days",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("slot_configurations").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("updated_at DESC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveConfiguration - build select query: %v", ErrBuildQuery, err)
	}

	var config domain.SlotConfiguration
	var days pq.Int64Array
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&config.ID,
		&config.StartTime,
		&config.EndTime,
		&config.SlotDurationMinutes,
		&config.SlotsPerTimeSlot,
		&days,
		&config.MinLeadTimeDays,
		&config.MaxBookingDays,
		&config.IsActive,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveConfiguration - scan config: %v", ErrScanRow, err)
	}

	config.DaysOfWeek = make([]time.Weekday, len(days))
	for i, d := range days {
		config.DaysOfWeek[i] = time.Weekday(d)
	}
	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return &config, nil
}

// UpdateConfiguration обновляет активную конфигурацию слотов
func (r *Repository) UpdateConfiguration(ctx context.Context, config *domain.SlotConfiguration) (*domain.SlotConfiguration, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	days := make(pq.Int64Array, len(config.DaysOfWeek))
	for i, d := range config.DaysOfWeek {
		days[i] = int64(d)
	}

	query, args, err := psqlbuilder.Update("slot_configurations").
		Set("start_time", config.StartTime).
		Set("end_time", config.EndTime).
		Set("slot_duration_minutes", config.SlotDurationMinutes).
		Set("slots_per_time_slot", config.SlotsPerTimeSlot).
		Set("days_of_week", days).
		Set("min_lead_time_days", config.MinLeadTimeDays).
		Set("max_booking_days", config.MaxBookingDays).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": config.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpdateConfiguration - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateConfiguration - execute update: %v", ErrExecQuery, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return config, nil
}

// ListClosedDays получает закрытые дни в диапазоне дат (включительно)
func (r *Repository) ListClosedDays(ctx context.Context, from, to time.Time) ([]*domain.ClosedDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// Повторяющиеся закрытия действуют на любой диапазон дат
	query, args, err := psqlbuilder.Select(
		"id",
		"closed_date",
		"day_of_week",
		"is_recurring",
		"reason",
		"created_at",
	).
		From("closed_days").
		Where(squirrel.Or{
			squirrel.Eq{"is_recurring": true},
			squirrel.And{
				squirrel.GtOrEq{"closed_date": from},
				squirrel.LtOrEq{"closed_date": to},
			},
		}).
		OrderBy("is_recurring DESC, closed_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListClosedDays - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListClosedDays - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	closedDays := make([]*domain.ClosedDay, 0)
	for rows.Next() {
		var day domain.ClosedDay
		var date sql.NullTime
		var dayOfWeek sql.NullInt64
		var createdAt sql.NullTime

		if err := rows.Scan(&day.ID, &date, &dayOfWeek, &day.IsRecurring, &day.Reason, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: ListClosedDays - scan row: %v", ErrScanRow, err)
		}

		day.Date = date.Time
		if dayOfWeek.Valid {
			weekday := time.Weekday(dayOfWeek.Int64)
			day.DayOfWeek = &weekday
		}
		day.CreatedAt = createdAt.Time
		closedDays = append(closedDays, &day)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListClosedDays - rows error: %v", ErrScanRow, err)
	}

	return closedDays, nil
}

// CreateClosedDay закрывает день для бронирования: разовую дату или
// повторяющийся день недели. Повторная запись того же дня обновляет причину.
func (r *Repository) CreateClosedDay(ctx context.Context, day *domain.ClosedDay) (*domain.ClosedDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("closed_days")
	if day.IsRecurring {
		var dayOfWeek sql.NullInt64
		if day.DayOfWeek != nil {
			dayOfWeek = sql.NullInt64{Int64: int64(*day.DayOfWeek), Valid: true}
		}
		insertBuilder = insertBuilder.
			Columns("day_of_week", "is_recurring", "reason").
			Values(dayOfWeek, true, day.Reason).
			Suffix(`ON CONFLICT (day_of_week) WHERE is_recurring
				DO UPDATE SET reason = EXCLUDED.reason RETURNING id, created_at`)
	} else {
		insertBuilder = insertBuilder.
			Columns("closed_date", "is_recurring", "reason").
			Values(day.Date, false, day.Reason).
			Suffix(`ON CONFLICT (closed_date) WHERE NOT is_recurring
				DO UPDATE SET reason = EXCLUDED.reason RETURNING id, created_at`)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateClosedDay - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&day.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: CreateClosedDay - execute insert: %v", ErrExecQuery, err)
	}

	day.CreatedAt = createdAt.Time
	return day, nil
}

// DeleteClosedDay снова открывает дату для бронирования
func (r *Repository) DeleteClosedDay(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("closed_days").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteClosedDay - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteClosedDay - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteClosedDay - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrClosedDayNotFound
	}

	return nil
}

// ListUnavailableSlots получает заблокированные слоты в диапазоне дат (включительно)
func (r *Repository) ListUnavailableSlots(ctx context.Context, from, to time.Time) ([]*domain.UnavailableSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"slot_date",
		"start_time",
		"end_time",
		"reason",
		"created_at",
	).
		From("unavailable_slots").
		Where(squirrel.GtOrEq{"slot_date": from}).
		Where(squirrel.LtOrEq{"slot_date": to}).
		OrderBy("slot_date ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListUnavailableSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListUnavailableSlots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.UnavailableSlot, 0)
	for rows.Next() {
		var slot domain.UnavailableSlot
		var createdAt sql.NullTime

		if err := rows.Scan(&slot.ID, &slot.Date, &slot.StartTime, &slot.EndTime, &slot.Reason, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: ListUnavailableSlots - scan row: %v", ErrScanRow, err)
		}

		slot.CreatedAt = createdAt.Time
		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListUnavailableSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// CreateUnavailableSlot блокирует один слот на одну дату
func (r *Repository) CreateUnavailableSlot(ctx context.Context, slot *domain.UnavailableSlot) (*domain.UnavailableSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("unavailable_slots").
		Columns("slot_date", "start_time", "end_time", "reason").
		Values(slot.Date, slot.StartTime, slot.EndTime, slot.Reason).
		Suffix("ON CONFLICT (slot_date, start_time, end_time) DO UPDATE SET reason = EXCLUDED.reason RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateUnavailableSlot - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&slot.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: CreateUnavailableSlot - execute insert: %v", ErrExecQuery, err)
	}

	slot.CreatedAt = createdAt.Time
	return slot, nil
}

// DeleteUnavailableSlot снимает блокировку слота
func (r *Repository) DeleteUnavailableSlot(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("unavailable_slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteUnavailableSlot - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteUnavailableSlot - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteUnavailableSlot - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrUnavailableSlotNotFound
	}

	return nil
}
