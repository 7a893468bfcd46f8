package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jortega/restobar-api/internal/domain/entity"
)

// KardexFiltro acota la reconstrucción del kardex.
type KardexFiltro struct {
	ArticuloID string
	AlmacenID  string
	Desde      *time.Time
	Hasta      *time.Time
}

// MovimientoRepository define el puerto de persistencia del ledger de movimientos.
// Los movimientos son inmutables: solo inserción y lectura.
type MovimientoRepository interface {
	Create(movimiento *entity.MovimientoInventario) error
	ListByTransaccion(transaccionID string) ([]*entity.MovimientoInventario, error)
	// ListKardex devuelve los movimientos del filtro ordenados por
	// (created_at, fecha) ascendente: el orden de inserción manda sobre la fecha
	// de negocio para que el saldo corrido coincida con el orden real de registro.
	ListKardex(filtro KardexFiltro) ([]*entity.MovimientoInventario, error)
	// SumDeltasBefore suma los deltas (IN positivo, OUT negativo) del par
	// estrictamente anteriores a la fecha dada: el saldo inicial de una ventana.
	SumDeltasBefore(articuloID, almacenID string, antes time.Time) (decimal.Decimal, error)
}
