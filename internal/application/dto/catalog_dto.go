package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ComponenteKitRequest línea de receta al crear un artículo KIT.
type ComponenteKitRequest struct {
	CodigoComponente string          `json:"codigo_componente"`
	CantidadVenta    decimal.Decimal `json:"cantidad_venta"`
}

// CreateArticuloRequest body para POST /api/articulos.
type CreateArticuloRequest struct {
	Codigo           string                 `json:"codigo"`
	Nombre           string                 `json:"nombre"`
	Descripcion      string                 `json:"descripcion,omitempty"`
	Tipo             string                 `json:"tipo"` // TERMINADO | KIT
	UnidadAlmacen    string                 `json:"unidad_almacen,omitempty"`
	UnidadVenta      string                 `json:"unidad_venta,omitempty"`
	FactorConversion decimal.Decimal        `json:"factor_conversion"`
	CodigoAlmacen    string                 `json:"codigo_almacen,omitempty"` // almacén por defecto
	CostoUnitario    decimal.Decimal        `json:"costo_unitario,omitempty"`
	Componentes      []ComponenteKitRequest `json:"componentes,omitempty"` // solo KIT
}

// ArticuloResponse representación de un artículo del catálogo.
type ArticuloResponse struct {
	ID               string          `json:"id"`
	Codigo           string          `json:"codigo"`
	Nombre           string          `json:"nombre"`
	Descripcion      string          `json:"descripcion,omitempty"`
	Tipo             string          `json:"tipo"`
	UnidadAlmacen    string          `json:"unidad_almacen"`
	UnidadVenta      string          `json:"unidad_venta"`
	FactorConversion decimal.Decimal `json:"factor_conversion"`
	Activo           bool            `json:"activo"`
	CreatedAt        time.Time       `json:"created_at"`
}

// CreateAlmacenRequest body para POST /api/almacenes.
type CreateAlmacenRequest struct {
	Codigo    string `json:"codigo"`
	Nombre    string `json:"nombre"`
	Direccion string `json:"direccion,omitempty"`
}

// AlmacenResponse representación de un almacén.
type AlmacenResponse struct {
	ID        string `json:"id"`
	Codigo    string `json:"codigo"`
	Nombre    string `json:"nombre"`
	Direccion string `json:"direccion,omitempty"`
	Activo    bool   `json:"activo"`
}
