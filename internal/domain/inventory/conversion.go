package inventory

import (
	"github.com/shopspring/decimal"
	"github.com/jortega/restobar-api/internal/domain"
	"github.com/jortega/restobar-api/internal/domain/entity"
)

// epsilon por debajo del cual una cantidad se trata como cero (deriva decimal
// acumulada tras miles de registros).
var epsilon = decimal.New(1, -6) // 1e-6

// NormalizeQty aplasta a cero las cantidades dentro de la tolerancia.
func NormalizeQty(q decimal.Decimal) decimal.Decimal {
	if q.Abs().LessThan(epsilon) {
		return decimal.Zero
	}
	return q
}

// ToRetail convierte una cantidad ingresada a la unidad de venta (canónica del ledger).
// RETAIL pasa directo; STORAGE multiplica por el factor de conversión del artículo.
// Retorna ErrConversionInvalida si factor <= 0 o cantidad <= 0.
func ToRetail(factor decimal.Decimal, unidad string, cantidad decimal.Decimal) (decimal.Decimal, error) {
	if factor.LessThanOrEqual(decimal.Zero) || cantidad.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, domain.ErrConversionInvalida
	}
	switch unidad {
	case entity.UnidadVenta:
		return cantidad, nil
	case entity.UnidadAlmacen:
		return cantidad.Mul(factor), nil
	}
	return decimal.Zero, domain.ErrConversionInvalida
}

// ToStorage deriva la cantidad en unidad de almacén a partir de la cantidad de venta.
// Acepta cantidades negativas (saldos en negativo son política permitida).
func ToStorage(factor, cantidadVenta decimal.Decimal) (decimal.Decimal, error) {
	if factor.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, domain.ErrConversionInvalida
	}
	return cantidadVenta.Div(factor), nil
}

// ComponenteExpandido es una pseudo-línea resultado de descomponer un kit.
type ComponenteExpandido struct {
	ComponenteID  string
	CantidadVenta decimal.Decimal // en unidad de venta del componente
}

// ExpandKit descompone el consumo de un kit en sus componentes activos:
// cantidad_componente = receta.CantidadVenta * cantidadKitVenta.
// El kit mismo no recibe movimiento (es virtual, solo los componentes tienen stock).
// Retorna ErrKitSinComponentes si no hay componentes activos.
func ExpandKit(componentes []*entity.ArticuloKitComponente, cantidadKitVenta decimal.Decimal) ([]ComponenteExpandido, error) {
	if cantidadKitVenta.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrConversionInvalida
	}
	var out []ComponenteExpandido
	for _, comp := range componentes {
		if !comp.Activo {
			continue
		}
		out = append(out, ComponenteExpandido{
			ComponenteID:  comp.ComponenteID,
			CantidadVenta: comp.CantidadVenta.Mul(cantidadKitVenta),
		})
	}
	if len(out) == 0 {
		return nil, domain.ErrKitSinComponentes
	}
	return out, nil
}
