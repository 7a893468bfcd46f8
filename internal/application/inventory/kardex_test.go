package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jortega/restobar-api/internal/application/dto"
	"github.com/jortega/restobar-api/internal/domain"
	"github.com/jortega/restobar-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Kardex
// ──────────────────────────────────────────────────────────────────────────────

// El saldo corrido del kardex sin ventana coincide con el stock materializado.
func TestKardex_SaldoFinalCoincideConStock(t *testing.T) {
	m := newMotor(t, true)
	bodega := crearAlmacen(t, m.store, "BOD")
	crearAlmacen(t, m.store, "SALA")
	gaseosa := crearArticulo(t, m.store, "GAS-350", 12)
	ctx := context.Background()

	_, err := m.writer.RegisterPurchase(ctx, testUser, dto.RegistrarCompraRequest{
		NumeroDocumento: "FC-200",
		CodigoAlmacen:   "BOD",
		Lineas:          []dto.LineaDocumentoRequest{lineaConCosto("GAS-350", 10, entity.UnidadAlmacen, "18000")},
	})
	require.NoError(t, err)
	_, err = m.writer.RegisterConsumption(ctx, testUser, dto.RegistrarConsumoRequest{
		Motivo:        "rotura",
		CodigoAlmacen: "BOD",
		Lineas:        []dto.LineaDocumentoRequest{linea("GAS-350", 5, "")},
	})
	require.NoError(t, err)
	_, err = m.writer.RegisterTransfer(ctx, testUser, dto.RegistrarTrasladoRequest{
		CodigoAlmacenOrigen:  "BOD",
		CodigoAlmacenDestino: "SALA",
		Lineas:               []dto.LineaDocumentoRequest{linea("GAS-350", 40, "")},
	})
	require.NoError(t, err)

	resp, err := m.kardex.GetKardex(ctx, dto.KardexRequest{CodigoArticulo: "GAS-350"})
	require.NoError(t, err)
	require.Len(t, resp.Grupos, 2, "un grupo por par (artículo, almacén) tocado")

	for _, grupo := range resp.Grupos {
		esperado := saldoDe(t, m.store, gaseosa.ID, grupo.AlmacenID)
		assert.True(t, grupo.SaldoFinal.Equal(esperado),
			"el saldo final del kardex (%s) debe coincidir con el stock (%s)", grupo.SaldoFinal, esperado)
		// Y el último saldo corrido debe ser el saldo final del grupo.
		ultimo := grupo.Movimientos[len(grupo.Movimientos)-1]
		assert.True(t, ultimo.Saldo.Equal(grupo.SaldoFinal))
	}

	// El grupo de bodega tiene la secuencia completa: +120, −5, −40.
	var grupoBodega *dto.KardexGrupoDTO
	for i := range resp.Grupos {
		if resp.Grupos[i].AlmacenID == bodega.ID {
			grupoBodega = &resp.Grupos[i]
		}
	}
	require.NotNil(t, grupoBodega)
	require.Len(t, grupoBodega.Movimientos, 3)
	assert.True(t, grupoBodega.Movimientos[0].Saldo.Equal(decimal.NewFromInt(120)))
	assert.True(t, grupoBodega.Movimientos[1].Saldo.Equal(decimal.NewFromInt(115)))
	assert.True(t, grupoBodega.Movimientos[2].Saldo.Equal(decimal.NewFromInt(75)))
}

// Consistencia de ventana: saldo inicial + deltas de la ventana = saldo final,
// y el saldo inicial es exactamente la suma de deltas anteriores a la ventana.
func TestKardex_VentanaConsistente(t *testing.T) {
	m := newMotor(t, true)
	sala := crearAlmacen(t, m.store, "SALA")
	gaseosa := crearArticulo(t, m.store, "GAS-350", 12)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	// Tres salidas por factura con fechas de negocio controladas.
	for i, n := range []string{"FV-300", "FV-301", "FV-302"} {
		_, err := m.writer.RegisterInvoiceMovements(ctx, testUser, dto.RegistrarFacturaRequest{
			NumeroFactura: n,
			Fecha:         base.AddDate(0, 0, i*7), // 1, 8 y 15 de agosto
			CodigoAlmacen: "SALA",
			Lineas:        []dto.LineaDocumentoRequest{linea("GAS-350", int64(i+1), "")},
		})
		require.NoError(t, err)
	}

	// Ventana que deja fuera la primera salida (−1) y toma las otras dos.
	desde := base.AddDate(0, 0, 3)
	resp, err := m.kardex.GetKardex(ctx, dto.KardexRequest{
		CodigoArticulo: "GAS-350",
		CodigoAlmacen:  "SALA",
		Desde:          &desde,
	})
	require.NoError(t, err)
	require.Len(t, resp.Grupos, 1)
	grupo := resp.Grupos[0]

	assert.True(t, grupo.SaldoInicial.Equal(decimal.NewFromInt(-1)),
		"saldo inicial = suma de deltas anteriores a la ventana, fue %s", grupo.SaldoInicial)
	require.Len(t, grupo.Movimientos, 2)

	acumulado := grupo.SaldoInicial
	for _, mov := range grupo.Movimientos {
		delta := mov.CantidadVenta
		if mov.Direccion == entity.DireccionSalida {
			delta = delta.Neg()
		}
		acumulado = acumulado.Add(delta)
		assert.True(t, mov.Saldo.Equal(acumulado))
	}
	assert.True(t, grupo.SaldoFinal.Equal(acumulado))
	assert.True(t, grupo.SaldoFinal.Equal(saldoDe(t, m.store, gaseosa.ID, sala.ID)),
		"la ventana termina hoy: su saldo final es el stock actual")
}

// El kardex ordena por orden de inserción (created_at) antes que por fecha de
// negocio: un documento retro-fechado aparece después de los ya registrados.
func TestKardex_OrdenDeInsercionMandaSobreFecha(t *testing.T) {
	m := newMotor(t, true)
	crearAlmacen(t, m.store, "SALA")
	crearArticulo(t, m.store, "GAS-350", 12)
	ctx := context.Background()

	hoy := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	_, err := m.writer.RegisterInvoiceMovements(ctx, testUser, dto.RegistrarFacturaRequest{
		NumeroFactura: "FV-310",
		Fecha:         hoy,
		CodigoAlmacen: "SALA",
		Lineas:        []dto.LineaDocumentoRequest{linea("GAS-350", 2, "")},
	})
	require.NoError(t, err)

	// Documento registrado después pero con fecha de negocio anterior.
	_, err = m.writer.RegisterInvoiceMovements(ctx, testUser, dto.RegistrarFacturaRequest{
		NumeroFactura: "FV-311",
		Fecha:         hoy.AddDate(0, 0, -5),
		CodigoAlmacen: "SALA",
		Lineas:        []dto.LineaDocumentoRequest{linea("GAS-350", 3, "")},
	})
	require.NoError(t, err)

	resp, err := m.kardex.GetKardex(ctx, dto.KardexRequest{CodigoArticulo: "GAS-350"})
	require.NoError(t, err)
	require.Len(t, resp.Grupos, 1)
	movs := resp.Grupos[0].Movimientos
	require.Len(t, movs, 2)

	assert.True(t, movs[0].Fecha.After(movs[1].Fecha),
		"el retro-fechado va al final aunque su fecha de negocio sea anterior")
	assert.True(t, movs[0].Saldo.Equal(decimal.NewFromInt(-2)))
	assert.True(t, movs[1].Saldo.Equal(decimal.NewFromInt(-5)))
}

func TestKardex_FiltroArticuloInexistente(t *testing.T) {
	m := newMotor(t, true)
	_, err := m.kardex.GetKardex(context.Background(), dto.KardexRequest{CodigoArticulo: "NADA"})
	assert.ErrorIs(t, err, domain.ErrNoEncontrado)
}

func TestKardex_SinMovimientosDevuelveVacio(t *testing.T) {
	m := newMotor(t, true)
	crearAlmacen(t, m.store, "SALA")
	crearArticulo(t, m.store, "GAS-350", 12)

	resp, err := m.kardex.GetKardex(context.Background(), dto.KardexRequest{CodigoArticulo: "GAS-350"})
	require.NoError(t, err)
	assert.Empty(t, resp.Grupos)
}

// ──────────────────────────────────────────────────────────────────────────────
// Resumen de stock
// ──────────────────────────────────────────────────────────────────────────────

func TestStockResumen_FiltraPorAlmacen(t *testing.T) {
	m := newMotor(t, true)
	bodega := crearAlmacen(t, m.store, "BOD")
	crearAlmacen(t, m.store, "SALA")
	crearArticulo(t, m.store, "GAS-350", 12)
	crearArticulo(t, m.store, "AGUA-600", 24)
	ctx := context.Background()

	_, err := m.writer.RegisterPurchase(ctx, testUser, dto.RegistrarCompraRequest{
		NumeroDocumento: "FC-400",
		CodigoAlmacen:   "BOD",
		Lineas: []dto.LineaDocumentoRequest{
			lineaConCosto("GAS-350", 1, entity.UnidadAlmacen, "18000"),
			lineaConCosto("AGUA-600", 1, entity.UnidadAlmacen, "10000"),
		},
	})
	require.NoError(t, err)
	_, err = m.writer.RegisterTransfer(ctx, testUser, dto.RegistrarTrasladoRequest{
		CodigoAlmacenOrigen:  "BOD",
		CodigoAlmacenDestino: "SALA",
		Lineas:               []dto.LineaDocumentoRequest{linea("GAS-350", 4, "")},
	})
	require.NoError(t, err)

	resumen, err := m.kardex.GetStockSummary(ctx, "", "BOD", 20, 0)
	require.NoError(t, err)
	require.Len(t, resumen, 2, "dos artículos con saldo en bodega")
	for _, fila := range resumen {
		assert.Equal(t, bodega.ID, fila.AlmacenID)
	}

	soloGaseosa, err := m.kardex.GetStockSummary(ctx, "GAS-350", "", 20, 0)
	require.NoError(t, err)
	require.Len(t, soloGaseosa, 2, "la gaseosa tiene saldo en bodega y en sala")
}
