package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jortega/restobar-api/internal/application/inventory"
	"github.com/jortega/restobar-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL. Es la unidad
// de trabajo del motor de inventario: cabecera, líneas, movimientos y upserts de
// stock se confirman o deshacen juntos.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit
// o Rollback. El SELECT FOR UPDATE de stock dentro de fn serializa los registros
// concurrentes sobre el mismo par (artículo, almacén).
func (r *TxRunner) Run(ctx context.Context, fn func(
	transRepo repository.TransaccionRepository,
	stockRepo repository.StockRepository,
	movRepo repository.MovimientoRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	transRepo := NewTransaccionRepository(tx)
	stockRepo := NewStockRepository(tx)
	movRepo := NewMovimientoRepository(tx)

	if err := fn(transRepo, stockRepo, movRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
