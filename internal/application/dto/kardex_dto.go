package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// KardexRequest filtros del kardex. Todos opcionales; códigos, no IDs.
type KardexRequest struct {
	CodigoArticulo string     `query:"codigo_articulo"`
	CodigoAlmacen  string     `query:"codigo_almacen"`
	Desde          *time.Time `query:"desde"`
	Hasta          *time.Time `query:"hasta"`
}

// KardexMovimientoDTO un movimiento con su saldo corrido resultante.
type KardexMovimientoDTO struct {
	MovimientoID  string          `json:"movimiento_id"`
	TransaccionID string          `json:"transaccion_id"`
	Fecha         time.Time       `json:"fecha"`
	CreatedAt     time.Time       `json:"created_at"`
	Direccion     string          `json:"direccion"`
	CantidadVenta decimal.Decimal `json:"cantidad_venta"`
	Saldo         decimal.Decimal `json:"saldo"`
	KitOrigenID   string          `json:"kit_origen_id,omitempty"`
}

// KardexGrupoDTO kardex de un par (artículo, almacén): saldo inicial + movimientos.
type KardexGrupoDTO struct {
	ArticuloID   string                `json:"articulo_id"`
	AlmacenID    string                `json:"almacen_id"`
	SaldoInicial decimal.Decimal       `json:"saldo_inicial"`
	Movimientos  []KardexMovimientoDTO `json:"movimientos"`
	SaldoFinal   decimal.Decimal       `json:"saldo_final"`
}

// KardexResponse respuesta completa del kardex.
type KardexResponse struct {
	Grupos []KardexGrupoDTO `json:"grupos"`
}

// StockResumenDTO saldo actual materializado de un par (artículo, almacén).
type StockResumenDTO struct {
	ArticuloID      string          `json:"articulo_id"`
	AlmacenID       string          `json:"almacen_id"`
	CantidadVenta   decimal.Decimal `json:"cantidad_venta"`
	CantidadAlmacen decimal.Decimal `json:"cantidad_almacen"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
