package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción de inventario.
const (
	TransaccionCompra   = "PURCHASE"
	TransaccionConsumo  = "CONSUMPTION"
	TransaccionAjuste   = "ADJUSTMENT"
	TransaccionTraslado = "TRANSFER"
)

// Estados de pago de una compra (independientes del efecto en stock).
const (
	EstadoPendiente = "PENDIENTE"
	EstadoParcial   = "PARCIAL"
	EstadoPagada    = "PAGADA"
	EstadoActiva    = "ACTIVA" // transacciones sin seguimiento de pago
)

// Direcciones de movimiento.
const (
	DireccionEntrada = "IN"
	DireccionSalida  = "OUT"
)

// TransaccionInventario es la cabecera de un documento de inventario
// (compra, consumo, ajuste o traslado). Se crea una vez por documento,
// nunca se borra; solo se enmienda con una transacción de reversa vinculada.
type TransaccionInventario struct {
	ID              string
	Codigo          string // folio único legible (COM-000001)
	Tipo            string // PURCHASE | CONSUMPTION | ADJUSTMENT | TRANSFER
	AlmacenID       string // contexto principal; destino en traslados
	AlmacenOrigenID string // solo traslados
	Fecha           time.Time
	Estado          string
	MontoTotal      decimal.Decimal // suma de subtotales de línea (transacciones con costo)
	Referencia      string          // factura, orden, documento del proveedor
	Proveedor       string
	Notas           string
	AutorizadoPor   string
	CreatedAt       time.Time
	CreatedBy       string
}

// TransaccionDetalle es una línea de una transacción. Captura el factor de
// conversión y, para kits, el multiplicador al momento del registro: cambios
// posteriores del catálogo nunca alteran líneas ya registradas.
type TransaccionDetalle struct {
	ID                string
	TransaccionID     string
	ArticuloID        string
	CantidadIngresada decimal.Decimal
	UnidadIngresada   string // STORAGE | RETAIL
	Direccion         string // IN | OUT
	FactorConversion  decimal.Decimal  // snapshot
	MultiplicadorKit  *decimal.Decimal // snapshot, solo líneas kit
	CostoUnitario     *decimal.Decimal
	Subtotal          *decimal.Decimal
}
