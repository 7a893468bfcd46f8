package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockAlmacen es el saldo materializado por (artículo, almacén): la fuente de
// verdad de "cuánto hay ahora". Invariante: CantidadAlmacen == CantidadVenta / factor
// del artículo (con tolerancia), y ambas reflejan la suma de todos los deltas de
// movimientos del par desde el inicio.
type StockAlmacen struct {
	ArticuloID      string
	AlmacenID       string
	CantidadVenta   decimal.Decimal // unidad canónica
	CantidadAlmacen decimal.Decimal // derivada: CantidadVenta / FactorConversion
	UpdatedAt       time.Time
}
