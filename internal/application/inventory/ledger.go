package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jortega/restobar-api/internal/domain"
	"github.com/jortega/restobar-api/internal/domain/entity"
	dominv "github.com/jortega/restobar-api/internal/domain/inventory"
	"github.com/jortega/restobar-api/internal/domain/repository"
)

// Ledger materializa el saldo por (artículo, almacén) y anexa la fila inmutable
// del movimiento, siempre dentro de la transacción del caller. Invariante:
// la suma de deltas de movimientos de un par es igual a StockAlmacen.CantidadVenta.
type Ledger struct {
	// permitirNegativo: política configurable. Activada (default) una salida puede
	// dejar el saldo en negativo para no bloquear ventas durante brechas de
	// conciliación; desactivada retorna ErrStockInsuficiente.
	permitirNegativo bool
}

// NewLedger construye el ledger con la política de stock negativo.
func NewLedger(permitirNegativo bool) *Ledger {
	return &Ledger{permitirNegativo: permitirNegativo}
}

// Posting describe un movimiento atómico a registrar.
type Posting struct {
	TransaccionID string
	DetalleID     string
	Articulo      *entity.Articulo // artículo afectado (componente si viene de un kit)
	AlmacenID     string
	Direccion     string
	CantidadVenta decimal.Decimal // magnitud positiva, unidad de venta
	KitOrigenID   string
	Fecha         time.Time
	CreatedBy     string
}

// PostMovement bloquea la fila de stock del par, aplica el delta en ambas unidades
// y anexa el movimiento. Si el par no existe, el delta firmado es el saldo inicial
// (una salida inicial arranca en negativo).
func (l *Ledger) PostMovement(
	stockRepo repository.StockRepository,
	movRepo repository.MovimientoRepository,
	p Posting,
) error {
	if p.CantidadVenta.LessThanOrEqual(decimal.Zero) {
		return domain.ErrEntradaInvalida
	}
	if p.Direccion != entity.DireccionEntrada && p.Direccion != entity.DireccionSalida {
		return domain.ErrEntradaInvalida
	}

	// Bloquea la fila del par (SELECT FOR UPDATE); pares distintos no se bloquean entre sí.
	stock, err := stockRepo.GetForUpdate(p.Articulo.ID, p.AlmacenID)
	if err != nil {
		return err
	}

	delta := p.CantidadVenta
	if p.Direccion == entity.DireccionSalida {
		delta = delta.Neg()
	}
	nuevoVenta := dominv.NormalizeQty(stock.CantidadVenta.Add(delta))
	if !l.permitirNegativo && nuevoVenta.IsNegative() {
		return domain.ErrStockInsuficiente
	}
	nuevoAlmacen, err := dominv.ToStorage(p.Articulo.FactorConversion, nuevoVenta)
	if err != nil {
		return err
	}

	stock.CantidadVenta = nuevoVenta
	stock.CantidadAlmacen = dominv.NormalizeQty(nuevoAlmacen)
	stock.UpdatedAt = p.Fecha
	if err := stockRepo.Upsert(stock); err != nil {
		return err
	}

	mov := &entity.MovimientoInventario{
		ID:            uuid.New().String(),
		TransaccionID: p.TransaccionID,
		DetalleID:     p.DetalleID,
		ArticuloID:    p.Articulo.ID,
		AlmacenID:     p.AlmacenID,
		Direccion:     p.Direccion,
		CantidadVenta: p.CantidadVenta,
		KitOrigenID:   p.KitOrigenID,
		Fecha:         p.Fecha,
		CreatedAt:     time.Now(),
		CreatedBy:     p.CreatedBy,
	}
	return movRepo.Create(mov)
}
