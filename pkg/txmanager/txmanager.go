// Package txmanager runs functions inside serializable database transactions
// with a bounded time budget, using the metrics-aware dbmetrics.DB.
package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/ign-garage/booking-service/pkg/dbmetrics"
)

const (
	// defaultTimeout bounds the whole transaction, BeginTx included, so a
	// booking attempt can never hold row locks indefinitely.
	defaultTimeout = 8 * time.Second

	// serializationRetries is the number of automatic retries on a
	// serialization failure before the error is surfaced.
	serializationRetries = 2
)

// ErrSerialization is returned when the transaction repeatedly loses
// serialization conflicts against concurrent transactions.
var ErrSerialization = errors.New("txmanager: serialization conflict")

// ErrTimeout is returned when the transaction exceeds its time budget.
var ErrTimeout = errors.New("txmanager: transaction timed out")

// TransactionManager executes functions in serializable transactions.
type TransactionManager struct {
	db      *dbmetrics.DB
	timeout time.Duration
}

// NewTransactionManager creates a manager with the default time budget.
func NewTransactionManager(db *dbmetrics.DB) *TransactionManager {
	return &TransactionManager{db: db, timeout: defaultTimeout}
}

// DoSerializable runs fn inside a serializable transaction. The transaction
// is committed when fn returns nil and rolled back otherwise. Serialization
// failures (SQLSTATE 40001) are retried a bounded number of times; the
// context passed to fn carries the transaction for repositories.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	txCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	var lastErr error
	for attempt := 0; attempt <= serializationRetries; attempt++ {
		lastErr = m.runOnce(txCtx, fn)
		if lastErr == nil {
			return nil
		}
		if !IsSerializationFailure(lastErr) {
			break
		}
	}

	if errors.Is(lastErr, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, lastErr)
	}
	if IsSerializationFailure(lastErr) {
		return fmt.Errorf("%w: %v", ErrSerialization, lastErr)
	}
	return lastErr
}

func (m *TransactionManager) runOnce(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("txmanager: begin: %w", err)
	}

	if err := fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("txmanager: commit: %w", err)
	}
	return nil
}

// IsSerializationFailure reports whether err is a PostgreSQL serialization
// conflict (SQLSTATE 40001), at any level of wrapping.
func IsSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "40001"
	}
	return false
}
