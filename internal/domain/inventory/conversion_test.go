package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jortega/restobar-api/internal/domain"
	"github.com/jortega/restobar-api/internal/domain/entity"
	"github.com/jortega/restobar-api/internal/domain/inventory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Conversión de unidades
// ──────────────────────────────────────────────────────────────────────────────

func TestToRetail_UnidadAlmacenMultiplicaPorFactor(t *testing.T) {
	factor := decimal.NewFromInt(12) // 1 caja = 12 botellas

	got, err := inventory.ToRetail(factor, entity.UnidadAlmacen, decimal.NewFromInt(10))
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(120)), "10 cajas deben ser 120 botellas, fue %s", got)
}

func TestToRetail_UnidadVentaPasaDirecto(t *testing.T) {
	factor := decimal.NewFromInt(12)

	got, err := inventory.ToRetail(factor, entity.UnidadVenta, decimal.NewFromInt(5))
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(5)))
}

func TestToRetail_FactorOCantidadInvalidos(t *testing.T) {
	casos := []struct {
		nombre   string
		factor   decimal.Decimal
		cantidad decimal.Decimal
	}{
		{"factor cero", decimal.Zero, decimal.NewFromInt(1)},
		{"factor negativo", decimal.NewFromInt(-3), decimal.NewFromInt(1)},
		{"cantidad cero", decimal.NewFromInt(12), decimal.Zero},
		{"cantidad negativa", decimal.NewFromInt(12), decimal.NewFromInt(-4)},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			_, err := inventory.ToRetail(c.factor, entity.UnidadAlmacen, c.cantidad)
			assert.ErrorIs(t, err, domain.ErrConversionInvalida)
		})
	}
}

func TestToRetail_UnidadDesconocida(t *testing.T) {
	_, err := inventory.ToRetail(decimal.NewFromInt(12), "DOCENA", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrConversionInvalida)
}

// Ida y vuelta STORAGE → RETAIL → STORAGE reproduce el valor original dentro de 1e-6.
func TestConversion_IdaYVuelta(t *testing.T) {
	factor := decimal.NewFromFloat(7.5)
	original := decimal.NewFromFloat(13.4)

	retail, err := inventory.ToRetail(factor, entity.UnidadAlmacen, original)
	require.NoError(t, err)
	storage, err := inventory.ToStorage(factor, retail)
	require.NoError(t, err)

	diff := storage.Sub(original).Abs()
	assert.True(t, diff.LessThan(decimal.New(1, -6)), "round-trip con deriva %s", diff)
}

func TestNormalizeQty_AplastaResiduos(t *testing.T) {
	assert.True(t, inventory.NormalizeQty(decimal.New(3, -9)).IsZero())
	assert.True(t, inventory.NormalizeQty(decimal.New(-3, -9)).IsZero())
	assert.False(t, inventory.NormalizeQty(decimal.New(2, -6)).IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Descomposición de kits
// ──────────────────────────────────────────────────────────────────────────────

func TestExpandKit_EscalaComponentesPorCantidad(t *testing.T) {
	receta := []*entity.ArticuloKitComponente{
		{ComponenteID: "art-x", CantidadVenta: decimal.NewFromInt(2), Activo: true},
		{ComponenteID: "art-y", CantidadVenta: decimal.NewFromInt(1), Activo: true},
	}

	lineas, err := inventory.ExpandKit(receta, decimal.NewFromInt(3))
	require.NoError(t, err)
	require.Len(t, lineas, 2)
	assert.Equal(t, "art-x", lineas[0].ComponenteID)
	assert.True(t, lineas[0].CantidadVenta.Equal(decimal.NewFromInt(6)))
	assert.Equal(t, "art-y", lineas[1].ComponenteID)
	assert.True(t, lineas[1].CantidadVenta.Equal(decimal.NewFromInt(3)))
}

func TestExpandKit_IgnoraComponentesInactivos(t *testing.T) {
	receta := []*entity.ArticuloKitComponente{
		{ComponenteID: "art-x", CantidadVenta: decimal.NewFromInt(2), Activo: true},
		{ComponenteID: "art-viejo", CantidadVenta: decimal.NewFromInt(9), Activo: false},
	}

	lineas, err := inventory.ExpandKit(receta, decimal.NewFromInt(1))
	require.NoError(t, err)
	require.Len(t, lineas, 1)
	assert.Equal(t, "art-x", lineas[0].ComponenteID)
}

func TestExpandKit_SinComponentesActivos(t *testing.T) {
	receta := []*entity.ArticuloKitComponente{
		{ComponenteID: "art-viejo", CantidadVenta: decimal.NewFromInt(1), Activo: false},
	}

	_, err := inventory.ExpandKit(receta, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrKitSinComponentes)

	_, err = inventory.ExpandKit(nil, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrKitSinComponentes)
}

func TestExpandKit_CantidadInvalida(t *testing.T) {
	receta := []*entity.ArticuloKitComponente{
		{ComponenteID: "art-x", CantidadVenta: decimal.NewFromInt(2), Activo: true},
	}
	_, err := inventory.ExpandKit(receta, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrConversionInvalida)
}
