package rateconfig

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/ign-garage/booking-service/internal/domain"
	"github.com/ign-garage/booking-service/pkg/dbmetrics"
	"github.com/ign-garage/booking-service/pkg/psqlbuilder"
)

// DBExecutor интерфейс для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий конфигурации тарифов.
// Документ хранится целиком в одной JSONB строке: админ всегда сохраняет
// полную замену, частичных обновлений нет.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации тарифов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает актуальную конфигурацию тарифов
func (r *Repository) Get(ctx context.Context) (*domain.StoredRateConfiguration, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"document",
		"updated_by",
		"created_at",
		"updated_at",
	).
		From("rate_configurations").
		OrderBy("id DESC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var stored domain.StoredRateConfiguration
	var raw []byte
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&stored.ID,
		&raw,
		&stored.UpdatedBy,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan config: %v", ErrScanRow, err)
	}

	if err := json.Unmarshal(raw, &stored.Document); err != nil {
		return nil, fmt.Errorf("%w: Get - document: %v", ErrUnmarshalDocument, err)
	}

	stored.CreatedAt = createdAt.Time
	stored.UpdatedAt = updatedAt.Time

	return &stored, nil
}

// Replace сохраняет полную замену документа конфигурации.
// Перезаписывает единственную строку, либо создаёт её при первом сохранении.
func (r *Repository) Replace(ctx context.Context, document *domain.RateConfiguration, updatedBy *string) (*domain.StoredRateConfiguration, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	raw, err := json.Marshal(document)
	if err != nil {
		return nil, fmt.Errorf("%w: Replace: %v", ErrMarshalDocument, err)
	}

	query, args, err := psqlbuilder.Insert("rate_configurations").
		Columns("singleton", "document", "updated_by").
		Values(true, raw, updatedBy).
		Suffix(`ON CONFLICT (singleton) DO UPDATE SET
			document = EXCLUDED.document,
			updated_by = EXCLUDED.updated_by,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Replace - build insert query: %v", ErrBuildQuery, err)
	}

	stored := &domain.StoredRateConfiguration{
		Document:  *document,
		UpdatedBy: updatedBy,
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&stored.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Replace - execute insert: %v", ErrExecQuery, err)
	}

	stored.CreatedAt = createdAt.Time
	stored.UpdatedAt = updatedAt.Time

	return stored, nil
}
