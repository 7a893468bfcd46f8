package memory

import (
	"context"

	"github.com/jortega/restobar-api/internal/application/inventory"
	"github.com/jortega/restobar-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner simula la atomicidad del documento sobre el store en memoria:
// serializa las transacciones y restaura un snapshot si fn falla, de modo que
// nunca queden registros parciales (mismo contrato que el runner PostgreSQL).
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run toma el candado de transacción, captura el snapshot y ejecuta fn con los
// repositorios del store. Error de fn (o ctx cancelado) = restaurar snapshot.
func (r *TxRunner) Run(ctx context.Context, fn func(
	transRepo repository.TransaccionRepository,
	stockRepo repository.StockRepository,
	movRepo repository.MovimientoRepository,
) error) error {
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	snap := r.s.takeSnapshot()
	if err := fn(r.s.Transacciones(), r.s.Stocks(), r.s.Movimientos()); err != nil {
		r.s.restore(snap)
		return err
	}
	if err := ctx.Err(); err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}
