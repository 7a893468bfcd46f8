package catalog_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jortega/restobar-api/internal/application/catalog"
	"github.com/jortega/restobar-api/internal/application/dto"
	"github.com/jortega/restobar-api/internal/domain"
	"github.com/jortega/restobar-api/internal/domain/entity"
	"github.com/jortega/restobar-api/internal/infrastructure/memory"
)

func newCatalogo(t *testing.T) (*memory.Store, *catalog.ArticuloUseCase, *catalog.AlmacenUseCase) {
	t.Helper()
	s := memory.NewStore()
	return s, catalog.NewArticuloUseCase(s.Articulos(), s.Almacenes()), catalog.NewAlmacenUseCase(s.Almacenes())
}

func TestArticulo_CreateTerminado(t *testing.T) {
	_, articulos, _ := newCatalogo(t)

	resp, err := articulos.Create(dto.CreateArticuloRequest{
		Codigo:           "GAS-350",
		Nombre:           "Gaseosa 350ml",
		Tipo:             entity.ArticuloTerminado,
		FactorConversion: decimal.NewFromInt(12),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.UnidadAlmacen, resp.UnidadAlmacen, "unidades por defecto STORAGE/RETAIL")
	assert.Equal(t, entity.UnidadVenta, resp.UnidadVenta)
	assert.True(t, resp.Activo)
}

func TestArticulo_CodigoDuplicado(t *testing.T) {
	_, articulos, _ := newCatalogo(t)

	req := dto.CreateArticuloRequest{
		Codigo:           "GAS-350",
		Nombre:           "Gaseosa 350ml",
		Tipo:             entity.ArticuloTerminado,
		FactorConversion: decimal.NewFromInt(12),
	}
	_, err := articulos.Create(req)
	require.NoError(t, err)
	_, err = articulos.Create(req)
	assert.ErrorIs(t, err, domain.ErrDuplicado)
}

func TestArticulo_FactorInvalido(t *testing.T) {
	_, articulos, _ := newCatalogo(t)

	_, err := articulos.Create(dto.CreateArticuloRequest{
		Codigo:           "X-1",
		Nombre:           "Inválido",
		Tipo:             entity.ArticuloTerminado,
		FactorConversion: decimal.NewFromInt(-3),
	})
	assert.ErrorIs(t, err, domain.ErrConversionInvalida)
}

// Un kit exige receta, se fija a unidad RETAIL con factor 1 y no admite
// componentes que sean a su vez kits.
func TestArticulo_CreateKit(t *testing.T) {
	s, articulos, _ := newCatalogo(t)

	_, err := articulos.Create(dto.CreateArticuloRequest{
		Codigo: "POLLO", Nombre: "Pollo broaster", Tipo: entity.ArticuloTerminado,
		FactorConversion: decimal.NewFromInt(1),
	})
	require.NoError(t, err)

	resp, err := articulos.Create(dto.CreateArticuloRequest{
		Codigo: "COMBO-1",
		Nombre: "Combo pollo",
		Tipo:   entity.ArticuloKit,
		Componentes: []dto.ComponenteKitRequest{
			{CodigoComponente: "POLLO", CantidadVenta: decimal.NewFromInt(1)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.UnidadVenta, resp.UnidadAlmacen)
	assert.True(t, resp.FactorConversion.Equal(decimal.NewFromInt(1)))

	receta, err := s.Articulos().GetKitComponentes(resp.ID)
	require.NoError(t, err)
	require.Len(t, receta, 1)
}

func TestArticulo_KitSinComponentes(t *testing.T) {
	_, articulos, _ := newCatalogo(t)

	_, err := articulos.Create(dto.CreateArticuloRequest{
		Codigo: "COMBO-2",
		Nombre: "Combo vacío",
		Tipo:   entity.ArticuloKit,
	})
	assert.ErrorIs(t, err, domain.ErrKitSinComponentes)
}

func TestArticulo_KitNoAlmacenable(t *testing.T) {
	_, articulos, _ := newCatalogo(t)

	_, err := articulos.Create(dto.CreateArticuloRequest{
		Codigo:        "COMBO-3",
		Nombre:        "Combo en cajas",
		Tipo:          entity.ArticuloKit,
		UnidadAlmacen: entity.UnidadAlmacen,
		Componentes: []dto.ComponenteKitRequest{
			{CodigoComponente: "POLLO", CantidadVenta: decimal.NewFromInt(1)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrKitNoAlmacenable,
		"un kit no puede declararse en unidad de almacén")
}

func TestArticulo_KitDeKitRechazado(t *testing.T) {
	_, articulos, _ := newCatalogo(t)

	_, err := articulos.Create(dto.CreateArticuloRequest{
		Codigo: "POLLO", Nombre: "Pollo", Tipo: entity.ArticuloTerminado,
		FactorConversion: decimal.NewFromInt(1),
	})
	require.NoError(t, err)
	_, err = articulos.Create(dto.CreateArticuloRequest{
		Codigo: "COMBO-A", Nombre: "Combo A", Tipo: entity.ArticuloKit,
		Componentes: []dto.ComponenteKitRequest{{CodigoComponente: "POLLO", CantidadVenta: decimal.NewFromInt(1)}},
	})
	require.NoError(t, err)

	_, err = articulos.Create(dto.CreateArticuloRequest{
		Codigo: "COMBO-B", Nombre: "Combo de combos", Tipo: entity.ArticuloKit,
		Componentes: []dto.ComponenteKitRequest{{CodigoComponente: "COMBO-A", CantidadVenta: decimal.NewFromInt(2)}},
	})
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida, "la expansión de kits es de un solo nivel")
}

// La búsqueda ignora mayúsculas y diacríticos: "limon" encuentra "Limón".
func TestArticulo_BusquedaSinAcentos(t *testing.T) {
	_, articulos, _ := newCatalogo(t)

	for _, art := range []struct{ codigo, nombre string }{
		{"LIMON", "Limón de Pica"},
		{"AZUCAR", "Azúcar rubia"},
		{"SAL", "Sal de mar"},
	} {
		_, err := articulos.Create(dto.CreateArticuloRequest{
			Codigo: art.codigo, Nombre: art.nombre, Tipo: entity.ArticuloTerminado,
			FactorConversion: decimal.NewFromInt(1),
		})
		require.NoError(t, err)
	}

	out, err := articulos.List("limon", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "LIMON", out[0].Codigo)

	out, err = articulos.List("AZÚCAR", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, out, 1, "la consulta con acentos también debe plegar")
	assert.Equal(t, "AZUCAR", out[0].Codigo)
}

func TestAlmacen_CreateYDuplicado(t *testing.T) {
	_, _, almacenes := newCatalogo(t)

	resp, err := almacenes.Create(dto.CreateAlmacenRequest{Codigo: "BOD", Nombre: "Bodega central"})
	require.NoError(t, err)
	assert.True(t, resp.Activo)

	_, err = almacenes.Create(dto.CreateAlmacenRequest{Codigo: "BOD", Nombre: "Otra"})
	assert.ErrorIs(t, err, domain.ErrDuplicado)
}

func TestAlmacen_Deactivate(t *testing.T) {
	_, _, almacenes := newCatalogo(t)

	_, err := almacenes.Create(dto.CreateAlmacenRequest{Codigo: "BOD", Nombre: "Bodega"})
	require.NoError(t, err)
	require.NoError(t, almacenes.Deactivate("BOD"))

	resp, err := almacenes.GetByCodigo("BOD")
	require.NoError(t, err)
	assert.False(t, resp.Activo)
}
