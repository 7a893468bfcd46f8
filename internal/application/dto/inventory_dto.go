package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineaDocumentoRequest línea de un documento de inventario. Unidad vacía = RETAIL.
type LineaDocumentoRequest struct {
	CodigoArticulo string           `json:"codigo_articulo"`
	Cantidad       decimal.Decimal  `json:"cantidad"`
	Unidad         string           `json:"unidad,omitempty"` // STORAGE | RETAIL
	CostoUnitario  *decimal.Decimal `json:"costo_unitario,omitempty"`
}

// RegistrarCompraRequest body para POST /api/inventario/compras.
type RegistrarCompraRequest struct {
	NumeroDocumento string                  `json:"numero_documento"`
	Proveedor       string                  `json:"proveedor"`
	CodigoAlmacen   string                  `json:"codigo_almacen"`
	Estado          string                  `json:"estado,omitempty"` // PENDIENTE | PARCIAL | PAGADA
	Notas           string                  `json:"notas,omitempty"`
	Lineas          []LineaDocumentoRequest `json:"lineas"`
}

// RegistrarConsumoRequest body para POST /api/inventario/consumos.
type RegistrarConsumoRequest struct {
	Motivo        string                  `json:"motivo"`
	AutorizadoPor string                  `json:"autorizado_por"`
	CodigoAlmacen string                  `json:"codigo_almacen"`
	Lineas        []LineaDocumentoRequest `json:"lineas"`
}

// RegistrarTrasladoRequest body para POST /api/inventario/traslados.
type RegistrarTrasladoRequest struct {
	CodigoAlmacenOrigen  string                  `json:"codigo_almacen_origen"`
	CodigoAlmacenDestino string                  `json:"codigo_almacen_destino"`
	Notas                string                  `json:"notas,omitempty"`
	Lineas               []LineaDocumentoRequest `json:"lineas"`
}

// RegistrarFacturaRequest movimientos de stock de una factura finalizada
// (lo invoca el flujo de facturación al cerrar la venta).
type RegistrarFacturaRequest struct {
	NumeroFactura string                  `json:"numero_factura"`
	Fecha         time.Time               `json:"fecha"`
	CodigoAlmacen string                  `json:"codigo_almacen"`
	Lineas        []LineaDocumentoRequest `json:"lineas"`
}

// TransaccionResponse resultado de registrar un documento.
type TransaccionResponse struct {
	ID          string          `json:"id"`
	Codigo      string          `json:"codigo"`
	Tipo        string          `json:"tipo"`
	Estado      string          `json:"estado"`
	MontoTotal  decimal.Decimal `json:"monto_total"`
	Movimientos int             `json:"movimientos"`
}

// ReversaResponse resultado de revertir los movimientos de una factura.
// Reversed 0 con CodigoAjuste vacío = factura sin líneas con efecto en stock.
type ReversaResponse struct {
	CodigoAjuste string `json:"codigo_ajuste,omitempty"`
	Reversed     int    `json:"reversed"`
}
