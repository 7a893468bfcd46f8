package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de artículo.
const (
	ArticuloTerminado = "TERMINADO" // artículo simple con stock propio
	ArticuloKit       = "KIT"       // compuesto virtual, sin stock propio
)

// Unidades de medida por artículo.
const (
	UnidadAlmacen = "STORAGE" // unidad de almacenamiento (caja, bulto)
	UnidadVenta   = "RETAIL"  // unidad de venta (botella, porción) — unidad canónica del ledger
)

// Articulo representa un artículo del catálogo con dos unidades de medida.
// FactorConversion indica cuántas unidades de venta equivalen a una unidad de almacén
// (ej. 1 caja = 12 botellas → factor 12). Una vez referenciado por un movimiento,
// solo los campos descriptivos son editables.
type Articulo struct {
	ID               string
	Codigo           string // código único (SKU)
	Nombre           string
	Descripcion      string
	Tipo             string // TERMINADO | KIT
	UnidadAlmacenStr string // nombre de la unidad de almacén ("caja")
	UnidadVentaStr   string // nombre de la unidad de venta ("botella")
	FactorConversion decimal.Decimal
	AlmacenID        string // almacén por defecto
	CostoUnitario    decimal.Decimal
	Activo           bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ArticuloKitComponente es una línea de la receta de un artículo KIT.
// CantidadVenta está expresada en la unidad de venta del componente.
// El consumo de un kit es sum(CantidadVenta * cantidad_de_kits) sobre sus componentes.
type ArticuloKitComponente struct {
	ID            string
	KitID         string
	ComponenteID  string
	CantidadVenta decimal.Decimal
	Activo        bool
}
