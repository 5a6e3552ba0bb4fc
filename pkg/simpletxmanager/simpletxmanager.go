// Package simpletxmanager менеджер транзакций поверх обычного *sql.DB
// (вариант без метрик, используется при выключенном [metrics])
package simpletxmanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avlasov/ABP-BookingPlatform/pkg/dbmetrics"
)

// TransactionManager выполняет функции внутри транзакции *sql.DB
type TransactionManager struct {
	db *sql.DB
}

// NewTransactionManager создает менеджер транзакций
func NewTransactionManager(db *sql.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// Do выполняет fn внутри транзакции с уровнем изоляции по умолчанию
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.do(ctx, nil, fn)
}

// DoSerializable выполняет fn внутри сериализуемой транзакции
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.do(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, fn)
}

// DoReadOnly выполняет fn внутри read-only транзакции
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.do(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

func (m *TransactionManager) do(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("simpletxmanager: begin transaction: %w", err)
	}

	txCtx := dbmetrics.WithTx(ctx, tx)

	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("simpletxmanager: rollback after %v: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("simpletxmanager: commit transaction: %w", err)
	}

	return nil
}
