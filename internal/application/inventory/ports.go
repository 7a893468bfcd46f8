package inventory

import (
	"context"

	"github.com/jortega/restobar-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza atomicidad por documento: cualquier error deshace la
// cabecera, las líneas, los movimientos y los upserts de stock juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		transRepo repository.TransaccionRepository,
		stockRepo repository.StockRepository,
		movRepo repository.MovimientoRepository,
	) error) error
}
