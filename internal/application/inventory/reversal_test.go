package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jortega/restobar-api/internal/application/dto"
	"github.com/jortega/restobar-api/internal/application/inventory"
	"github.com/jortega/restobar-api/internal/domain"
	"github.com/jortega/restobar-api/internal/domain/entity"
	"github.com/jortega/restobar-api/internal/domain/repository"
	"github.com/jortega/restobar-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Reversa de facturas
// ──────────────────────────────────────────────────────────────────────────────

// La reversa restaura exactamente el estado de stock anterior a la factura.
func TestReversa_RestauraElStock(t *testing.T) {
	m := newMotor(t, true)
	sala := crearAlmacen(t, m.store, "SALA")
	gaseosa := crearArticulo(t, m.store, "GAS-350", 12)

	_, err := m.writer.RegisterPurchase(context.Background(), testUser, dto.RegistrarCompraRequest{
		NumeroDocumento: "FC-100",
		CodigoAlmacen:   "SALA",
		Lineas:          []dto.LineaDocumentoRequest{lineaConCosto("GAS-350", 5, entity.UnidadAlmacen, "18000")},
	})
	require.NoError(t, err)
	antes := saldoDe(t, m.store, gaseosa.ID, sala.ID) // 60

	_, err = m.writer.RegisterInvoiceMovements(context.Background(), testUser, dto.RegistrarFacturaRequest{
		NumeroFactura: "FV-0100",
		CodigoAlmacen: "SALA",
		Lineas:        []dto.LineaDocumentoRequest{linea("GAS-350", 9, "")},
	})
	require.NoError(t, err)
	require.True(t, saldoDe(t, m.store, gaseosa.ID, sala.ID).Equal(antes.Sub(decimal.NewFromInt(9))))

	resp, err := m.reversal.ReverseInvoiceMovements(context.Background(), testUser, "FV-0100")
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Reversed)
	assert.NotEmpty(t, resp.CodigoAjuste)

	despues := saldoDe(t, m.store, gaseosa.ID, sala.ID)
	assert.True(t, despues.Equal(antes),
		"la reversa debe devolver el saldo a %s, fue %s", antes, despues)
}

// Las filas de la factura original no se modifican: la reversa agrega filas
// compensatorias bajo una transacción AJUSTE nueva.
func TestReversa_NoTocaLasFilasOriginales(t *testing.T) {
	m := newMotor(t, true)
	crearAlmacen(t, m.store, "SALA")
	crearArticulo(t, m.store, "GAS-350", 12)

	factura, err := m.writer.RegisterInvoiceMovements(context.Background(), testUser, dto.RegistrarFacturaRequest{
		NumeroFactura: "FV-0101",
		CodigoAlmacen: "SALA",
		Lineas:        []dto.LineaDocumentoRequest{linea("GAS-350", 4, "")},
	})
	require.NoError(t, err)

	resp, err := m.reversal.ReverseInvoiceMovements(context.Background(), testUser, "FV-0101")
	require.NoError(t, err)

	originales, err := m.store.Movimientos().ListByTransaccion(factura.ID)
	require.NoError(t, err)
	require.Len(t, originales, 1)
	assert.Equal(t, entity.DireccionSalida, originales[0].Direccion, "la fila original sigue siendo OUT")

	ajuste, err := m.store.Transacciones().GetByCodigo(resp.CodigoAjuste)
	require.NoError(t, err)
	require.NotNil(t, ajuste)
	assert.Equal(t, entity.TransaccionAjuste, ajuste.Tipo)
	assert.Equal(t, "FV-0101", ajuste.Referencia)

	compensatorios, err := m.store.Movimientos().ListByTransaccion(ajuste.ID)
	require.NoError(t, err)
	require.Len(t, compensatorios, 1)
	assert.Equal(t, entity.DireccionEntrada, compensatorios[0].Direccion)
	assert.True(t, compensatorios[0].CantidadVenta.Equal(originales[0].CantidadVenta),
		"misma magnitud, dirección invertida")
}

// Segunda reversa de la misma factura → ErrYaRevertida, sin efectos.
func TestReversa_Idempotente(t *testing.T) {
	m := newMotor(t, true)
	sala := crearAlmacen(t, m.store, "SALA")
	gaseosa := crearArticulo(t, m.store, "GAS-350", 12)

	_, err := m.writer.RegisterInvoiceMovements(context.Background(), testUser, dto.RegistrarFacturaRequest{
		NumeroFactura: "FV-0102",
		CodigoAlmacen: "SALA",
		Lineas:        []dto.LineaDocumentoRequest{linea("GAS-350", 6, "")},
	})
	require.NoError(t, err)

	_, err = m.reversal.ReverseInvoiceMovements(context.Background(), testUser, "FV-0102")
	require.NoError(t, err)
	saldoTrasReversa := saldoDe(t, m.store, gaseosa.ID, sala.ID)

	_, err = m.reversal.ReverseInvoiceMovements(context.Background(), testUser, "FV-0102")
	assert.ErrorIs(t, err, domain.ErrYaRevertida)

	assert.True(t, saldoDe(t, m.store, gaseosa.ID, sala.ID).Equal(saldoTrasReversa),
		"el intento repetido no debe alterar el stock")
}

// Factura sin movimientos de inventario (venta solo de servicios): no-op con
// Reversed 0, sin error y sin transacción de ajuste.
func TestReversa_FacturaSinMovimientos(t *testing.T) {
	m := newMotor(t, true)

	resp, err := m.reversal.ReverseInvoiceMovements(context.Background(), testUser, "FV-9999")
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Reversed)
	assert.Empty(t, resp.CodigoAjuste)

	ajustes, err := m.store.Transacciones().ListByReferencia("FV-9999", entity.TransaccionAjuste)
	require.NoError(t, err)
	assert.Empty(t, ajustes)
}

func TestReversa_NumeroVacio(t *testing.T) {
	m := newMotor(t, true)
	_, err := m.reversal.ReverseInvoiceMovements(context.Background(), testUser, "")
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)
}

// runnerConDemora agrega latencia antes de delegar en el runner real, simulando
// el viaje de red de una transacción contra la base de datos.
type runnerConDemora struct {
	inner  inventory.TxRunner
	demora time.Duration
}

func (r *runnerConDemora) Run(ctx context.Context, fn func(
	transRepo repository.TransaccionRepository,
	stockRepo repository.StockRepository,
	movRepo repository.MovimientoRepository,
) error) error {
	time.Sleep(r.demora)
	return r.inner.Run(ctx, fn)
}

// Dos reversas concurrentes de la misma factura: exactamente una compensa, la
// otra recibe ErrYaRevertida y el saldo queda restaurado, nunca sobre-corregido.
func TestReversa_ConcurrenteCompensaUnaSolaVez(t *testing.T) {
	s := memory.NewStore()
	ledger := inventory.NewLedger(true)
	runner := &runnerConDemora{inner: memory.NewTxRunner(s), demora: 25 * time.Millisecond}
	writer := inventory.NewTransactionWriter(memory.NewTxRunner(s), ledger, s.Articulos(), s.Almacenes(), s)
	reversal := inventory.NewReversalEngine(runner, ledger, s.Articulos(), s)

	sala := crearAlmacen(t, s, "SALA")
	gaseosa := crearArticulo(t, s, "GAS-350", 12)
	_, err := writer.RegisterInvoiceMovements(context.Background(), testUser, dto.RegistrarFacturaRequest{
		NumeroFactura: "FV-0110",
		CodigoAlmacen: "SALA",
		Lineas:        []dto.LineaDocumentoRequest{linea("GAS-350", 5, "")},
	})
	require.NoError(t, err)

	resultados := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := reversal.ReverseInvoiceMovements(context.Background(), testUser, "FV-0110")
			resultados <- err
		}()
	}
	wg.Wait()
	close(resultados)

	var exitosas, rechazadas int
	for err := range resultados {
		switch {
		case err == nil:
			exitosas++
		case errors.Is(err, domain.ErrYaRevertida):
			rechazadas++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, exitosas, "solo una reversa debe ganar")
	assert.Equal(t, 1, rechazadas)
	assert.True(t, saldoDe(t, s, gaseosa.ID, sala.ID).IsZero(),
		"la compensación doble dejaría el saldo en +5 en vez de 0")

	ajustes, err := s.Transacciones().ListByReferencia("FV-0110", entity.TransaccionAjuste)
	require.NoError(t, err)
	assert.Len(t, ajustes, 1, "un solo AJUSTE referencia la factura")
}

// Una factura con kit revierte los movimientos de los componentes conservando
// la traza del kit de origen.
func TestReversa_ConservaKitOrigen(t *testing.T) {
	m := newMotor(t, true)
	cocina := crearAlmacen(t, m.store, "COC")
	pollo := crearArticulo(t, m.store, "POLLO", 1)
	papas := crearArticulo(t, m.store, "PAPAS", 1)
	combo := crearKit(t, m.store, "COMBO-1", componenteKit{pollo, 1}, componenteKit{papas, 2})

	_, err := m.writer.RegisterInvoiceMovements(context.Background(), testUser, dto.RegistrarFacturaRequest{
		NumeroFactura: "FV-0103",
		CodigoAlmacen: "COC",
		Lineas:        []dto.LineaDocumentoRequest{linea("COMBO-1", 2, "")},
	})
	require.NoError(t, err)

	resp, err := m.reversal.ReverseInvoiceMovements(context.Background(), testUser, "FV-0103")
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Reversed, "una compensación por cada movimiento de componente")

	ajuste, err := m.store.Transacciones().GetByCodigo(resp.CodigoAjuste)
	require.NoError(t, err)
	movs, err := m.store.Movimientos().ListByTransaccion(ajuste.ID)
	require.NoError(t, err)
	require.Len(t, movs, 2)
	for _, mov := range movs {
		assert.Equal(t, combo.ID, mov.KitOrigenID, "la compensación conserva el kit de origen")
	}

	assert.True(t, saldoDe(t, m.store, pollo.ID, cocina.ID).IsZero())
	assert.True(t, saldoDe(t, m.store, papas.ID, cocina.ID).IsZero())
}
