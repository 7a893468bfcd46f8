package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovimientoInventario es la fila atómica del ledger: una por (detalle, artículo
// afectado, almacén afectado). Inmutable y append-only. Una línea simple produce
// un movimiento; una línea kit produce uno por componente (el kit no tiene stock
// propio) con KitOrigenID apuntando al artículo kit. Un traslado produce
// exactamente dos movimientos (OUT origen, IN destino) de la misma transacción.
type MovimientoInventario struct {
	ID            string
	TransaccionID string
	DetalleID     string
	ArticuloID    string
	AlmacenID     string
	Direccion     string          // IN | OUT
	CantidadVenta decimal.Decimal // siempre en unidad de venta, magnitud positiva
	KitOrigenID   string          // artículo kit que generó el movimiento, si aplica
	Fecha         time.Time       // fecha de negocio (occurred_at)
	CreatedAt     time.Time       // orden real de registro
	CreatedBy     string
}

// Delta devuelve el efecto con signo del movimiento sobre el saldo.
func (m *MovimientoInventario) Delta() decimal.Decimal {
	if m.Direccion == DireccionSalida {
		return m.CantidadVenta.Neg()
	}
	return m.CantidadVenta
}
