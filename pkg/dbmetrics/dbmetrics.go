// Package dbmetrics обёртка над *sql.DB со сбором метрик и
// пробросом активной транзакции через context
package dbmetrics

import (
	"context"
	"database/sql"
	"time"

	"github.com/avlasov/ABP-BookingPlatform/pkg/metrics"
)

// DBExecutor минимальный интерфейс выполнения запросов
// Ему удовлетворяют *sql.DB, *sql.Tx, *DB и *Tx
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// TxExecutor интерфейс исполнителя внутри транзакции
type TxExecutor interface {
	DBExecutor
	Commit() error
	Rollback() error
}

// DB обёртка над *sql.DB, замеряющая длительность каждого запроса
type DB struct {
	db      *sql.DB
	metrics *metrics.Metrics
}

// WrapWithDefault оборачивает db и запускает фоновый сбор статистики
// connection pool до закрытия stop
func WrapWithDefault(db *sql.DB, m *metrics.Metrics, serviceName string, stop <-chan struct{}) *DB {
	wrapped := &DB{db: db, metrics: m}

	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				stats := db.Stats()
				m.SetDBPoolStats(stats.OpenConnections, stats.Idle, stats.InUse)
			}
		}
	}()

	return wrapped
}

func (d *DB) observe(operation string, start time.Time) {
	d.metrics.ObserveDBQuery(operation, time.Since(start).Seconds())
}

// ExecContext выполняет запрос без результата
func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	defer d.observe("exec", time.Now())
	return d.db.ExecContext(ctx, query, args...)
}

// QueryContext выполняет запрос с множественным результатом
func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	defer d.observe("query", time.Now())
	return d.db.QueryContext(ctx, query, args...)
}

// QueryRowContext выполняет запрос с одной строкой результата
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	defer d.observe("query_row", time.Now())
	return d.db.QueryRowContext(ctx, query, args...)
}

// BeginTx начинает транзакцию, запросы внутри неё тоже попадают в метрики
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	tx, err := d.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Tx{tx: tx, metrics: d.metrics}, nil
}

// Tx обёртка над *sql.Tx с метриками
type Tx struct {
	tx      *sql.Tx
	metrics *metrics.Metrics
}

func (t *Tx) observe(operation string, start time.Time) {
	t.metrics.ObserveDBQuery(operation, time.Since(start).Seconds())
}

// ExecContext выполняет запрос без результата внутри транзакции
func (t *Tx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	defer t.observe("tx_exec", time.Now())
	return t.tx.ExecContext(ctx, query, args...)
}

// QueryContext выполняет запрос с множественным результатом внутри транзакции
func (t *Tx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	defer t.observe("tx_query", time.Now())
	return t.tx.QueryContext(ctx, query, args...)
}

// QueryRowContext выполняет запрос с одной строкой результата внутри транзакции
func (t *Tx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	defer t.observe("tx_query_row", time.Now())
	return t.tx.QueryRowContext(ctx, query, args...)
}

// Commit фиксирует транзакцию
func (t *Tx) Commit() error { return t.tx.Commit() }

// Rollback откатывает транзакцию
func (t *Tx) Rollback() error { return t.tx.Rollback() }
