// Package simpletxmanager is the plain *sql.DB counterpart of txmanager,
// used when metrics are disabled.
package simpletxmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ign-garage/booking-service/pkg/dbmetrics"
	"github.com/ign-garage/booking-service/pkg/txmanager"
)

const defaultTimeout = 8 * time.Second

// TransactionManager executes functions in serializable transactions on a
// plain *sql.DB.
type TransactionManager struct {
	db      *sql.DB
	timeout time.Duration
}

// NewTransactionManager creates a manager with the default time budget.
func NewTransactionManager(db *sql.DB) *TransactionManager {
	return &TransactionManager{db: db, timeout: defaultTimeout}
}

// DoSerializable runs fn inside a serializable transaction, retrying bounded
// serialization conflicts. See txmanager.TransactionManager for semantics.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	txCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	var lastErr error
	for attempt := 0; attempt <= 2; attempt++ {
		lastErr = m.runOnce(txCtx, fn)
		if lastErr == nil {
			return nil
		}
		if !txmanager.IsSerializationFailure(lastErr) {
			break
		}
	}

	if errors.Is(lastErr, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", txmanager.ErrTimeout, lastErr)
	}
	if txmanager.IsSerializationFailure(lastErr) {
		return fmt.Errorf("%w: %v", txmanager.ErrSerialization, lastErr)
	}
	return lastErr
}

func (m *TransactionManager) runOnce(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("simpletxmanager: begin: %w", err)
	}

	wrapped := &dbmetrics.SqlTxWrapper{Tx: tx}
	if err := fn(dbmetrics.WithTx(ctx, wrapped)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("simpletxmanager: commit: %w", err)
	}
	return nil
}
