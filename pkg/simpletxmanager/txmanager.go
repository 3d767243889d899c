package simpletxmanager

import (
	"context"
	"database/sql"

	"github.com/quickcourt/QC-BookingService/pkg/dbmetrics"
	"github.com/quickcourt/QC-BookingService/pkg/txmanager"
)

// sqlDBAdapter адаптирует *sql.DB под txmanager.TxBeginner
type sqlDBAdapter struct {
	db *sql.DB
}

// BeginTx начинает транзакцию (*sql.Tx реализует dbmetrics.TxExecutor)
func (a *sqlDBAdapter) BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	return a.db.BeginTx(ctx, opts)
}

// NewTransactionManager создает transaction manager поверх чистого *sql.DB
// Используется, когда метрики выключены и обёртка dbmetrics не нужна
func NewTransactionManager(db *sql.DB) *txmanager.TransactionManager {
	return txmanager.NewTransactionManager(&sqlDBAdapter{db: db})
}
