package booking

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
	"github.com/ign-garage/booking-service/pkg/types"
)

var bookingColumns = []string{
	"id",
	"reference",
	"customer_id",
	"vehicle_registration",
	"vehicle_make",
	"vehicle_model",
	"vehicle_engine_size_cc",
	"vehicle_fuel_type",
	"vehicle_class",
	"booking_date",
	"start_time",
	"end_time",
	"services_data",
	"total_price",
	"is_blue_light_card_holder",
	"status",
	"notes",
	"calendar_event_id",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция (через context.Value), использует её.
// Подсчёт занятости слота и вставка должны выполняться в одной транзакции,
// иначе вместимость слота не гарантируется.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"reference",
			"customer_id",
			"vehicle_registration",
			"vehicle_make",
			"vehicle_model",
			"vehicle_engine_size_cc",
			"vehicle_fuel_type",
			"vehicle_class",
			"booking_date",
			"start_time",
			"end_time",
			"services_data",
			"total_price",
			"is_blue_light_card_holder",
			"status",
			"notes",
		).
		Values(
			booking.Reference,
			booking.CustomerID,
			booking.Vehicle.Registration,
			booking.Vehicle.Make,
			booking.Vehicle.Model,
			booking.Vehicle.EngineSizeCc,
			booking.Vehicle.FuelType,
			booking.Vehicle.VehicleClass,
			booking.BookingDate,
			booking.StartTime,
			booking.EndTime,
			[]byte(booking.ServicesData),
			booking.TotalPrice,
			booking.IsBlueLightCardHolder,
			booking.Status,
			booking.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, fmt.Errorf("%w: Create - reference %s: %v", ErrDuplicateReference, booking.Reference, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanBooking(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// GetByReference получает бронирование по клиентскому референсу (IGN-YYYYMMDD-NNN)
func (r *Repository) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"reference": reference}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByReference - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanBooking(executor.QueryRowContext(ctx, query, args...), "GetByReference")
}

// GetForSlot получает активные бронирования конкретного слота.
// Если вызывается внутри транзакции, строки блокируются через FOR UPDATE:
// так подсчёт занятости и вставка нового бронирования не разойдутся
// с конкурирующими транзакциями.
func (r *Repository) GetForSlot(ctx context.Context, date time.Time, start, end types.TimeString) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"booking_date": date}).
		Where(squirrel.Eq{"start_time": start}).
		Where(squirrel.Eq{"end_time": end}).
		Where(squirrel.NotEq{"status": inactiveStatusStrings()}).
		OrderBy("id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetForSlot - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetForSlot - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// CountActiveByDateRange считает активные бронирования по каждому слоту
// в диапазоне дат. Ключ результата - domain.SlotKeyFor(date, start, end).
// Используется при построении списка доступности одним запросом.
func (r *Repository) CountActiveByDateRange(ctx context.Context, from, to time.Time) (map[string]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"booking_date",
		"start_time",
		"end_time",
		"COUNT(*)",
	).
		From("bookings").
		Where(squirrel.GtOrEq{"booking_date": from}).
		Where(squirrel.LtOrEq{"booking_date": to}).
		Where(squirrel.NotEq{"status": inactiveStatusStrings()}).
		GroupBy("booking_date", "start_time", "end_time").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CountActiveByDateRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountActiveByDateRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			date       time.Time
			start, end types.TimeString
			count      int
		)
		if err := rows.Scan(&date, &start, &end, &count); err != nil {
			return nil, fmt.Errorf("%w: CountActiveByDateRange - scan row: %v", ErrScanRow, err)
		}
		counts[domain.SlotKeyFor(date, start, end)] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountActiveByDateRange - rows error: %v", ErrScanRow, err)
	}

	return counts, nil
}

// CountCreatedOn считает бронирования, созданные в указанную дату (по created_at).
// Используется для генерации порядкового номера в референсе; корректен только
// внутри той же транзакции, что и последующая вставка.
func (r *Repository) CountCreatedOn(ctx context.Context, day time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where("created_at >= ?", day.Truncate(24*time.Hour)).
		Where("created_at < ?", day.Truncate(24*time.Hour).AddDate(0, 0, 1)).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountCreatedOn - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountCreatedOn - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// GetByCustomerID получает историю бронирований клиента
func (r *Repository) GetByCustomerID(ctx context.Context, customerID int64) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("booking_date DESC, start_time DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// Cancel отменяет бронирование с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// SetCalendarEventID сохраняет идентификатор события календаря после успешной
// синхронизации. Выполняется вне транзакции бронирования.
func (r *Repository) SetCalendarEventID(ctx context.Context, id int64, eventID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("calendar_event_id", eventID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetCalendarEventID - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetCalendarEventID - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetCalendarEventID - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

func (r *Repository) scanBooking(row *sql.Row, op string) (*domain.Booking, error) {
	var booking domain.Booking
	var servicesData []byte
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.Reference,
		&booking.CustomerID,
		&booking.Vehicle.Registration,
		&booking.Vehicle.Make,
		&booking.Vehicle.Model,
		&booking.Vehicle.EngineSizeCc,
		&booking.Vehicle.FuelType,
		&booking.Vehicle.VehicleClass,
		&booking.BookingDate,
		&booking.StartTime,
		&booking.EndTime,
		&servicesData,
		&booking.TotalPrice,
		&booking.IsBlueLightCardHolder,
		&booking.Status,
		&booking.Notes,
		&booking.CalendarEventID,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan booking: %v", ErrScanRow, op, err)
	}

	booking.ServicesData = servicesData
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var servicesData []byte
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&booking.ID,
			&booking.Reference,
			&booking.CustomerID,
			&booking.Vehicle.Registration,
			&booking.Vehicle.Make,
			&booking.Vehicle.Model,
			&booking.Vehicle.EngineSizeCc,
			&booking.Vehicle.FuelType,
			&booking.Vehicle.VehicleClass,
			&booking.BookingDate,
			&booking.StartTime,
			&booking.EndTime,
			&servicesData,
			&booking.TotalPrice,
			&booking.IsBlueLightCardHolder,
			&booking.Status,
			&booking.Notes,
			&booking.CalendarEventID,
			&booking.CancellationReason,
			&booking.CancelledAt,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		booking.ServicesData = servicesData
		booking.CreatedAt = createdAt.Time
		booking.UpdatedAt = updatedAt.Time

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func inactiveStatusStrings() []string {
	out := make([]string, len(domain.InactiveStatuses))
	for i, s := range domain.InactiveStatuses {
		out[i] = string(s)
	}
	return out
}
