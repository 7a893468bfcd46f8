package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jortega/restobar-api/internal/application/dto"
	"github.com/jortega/restobar-api/internal/domain"
	"github.com/jortega/restobar-api/internal/domain/entity"
	"github.com/jortega/restobar-api/internal/domain/repository"
)

// ReversalEngine genera los movimientos compensatorios de una factura anulada:
// misma magnitud, dirección invertida, agrupados bajo una transacción AJUSTE nueva
// que referencia la factura original. Las filas originales nunca se tocan.
type ReversalEngine struct {
	txRunner     TxRunner
	ledger       *Ledger
	articuloRepo repository.ArticuloRepository
	secuencia    repository.SecuenciaRepository
}

// NewReversalEngine construye el motor de reversas. Las transacciones y
// movimientos se leen siempre a través de los repositorios ligados a la
// unidad de trabajo del TxRunner.
func NewReversalEngine(
	txRunner TxRunner,
	ledger *Ledger,
	articuloRepo repository.ArticuloRepository,
	secuencia repository.SecuenciaRepository,
) *ReversalEngine {
	return &ReversalEngine{
		txRunner:     txRunner,
		ledger:       ledger,
		articuloRepo: articuloRepo,
		secuencia:    secuencia,
	}
}

// ReverseInvoiceMovements localiza los movimientos vinculados a la factura y
// registra uno compensatorio por cada uno. Idempotente: si ya existe un AJUSTE
// referenciando la factura retorna ErrYaRevertida; si la factura no tiene
// movimientos (venta solo de servicios) retorna Reversed 0 sin error.
// La detección de reversa previa corre dentro de la unidad de trabajo, con las
// transacciones originales bloqueadas (FOR UPDATE): dos reversas concurrentes
// de la misma factura se serializan y solo la primera compensa.
func (e *ReversalEngine) ReverseInvoiceMovements(ctx context.Context, userID, numeroFactura string) (*dto.ReversaResponse, error) {
	if numeroFactura == "" {
		return nil, domain.ErrEntradaInvalida
	}

	resp := &dto.ReversaResponse{}
	err := e.txRunner.Run(ctx, func(
		transRepo repository.TransaccionRepository,
		stockRepo repository.StockRepository,
		movRepo repository.MovimientoRepository,
	) error {
		// Bloquear primero las originales: la reversa concurrente queda
		// esperando aquí y al despertar ve el AJUSTE ya confirmado.
		originales, err := transRepo.ListByReferenciaForUpdate(numeroFactura, entity.TransaccionConsumo)
		if err != nil {
			return err
		}
		ajustes, err := transRepo.ListByReferencia(numeroFactura, entity.TransaccionAjuste)
		if err != nil {
			return err
		}
		if len(ajustes) > 0 {
			return domain.ErrYaRevertida
		}

		var movimientos []*entity.MovimientoInventario
		for _, trans := range originales {
			movs, err := movRepo.ListByTransaccion(trans.ID)
			if err != nil {
				return err
			}
			movimientos = append(movimientos, movs...)
		}
		if len(movimientos) == 0 {
			return nil
		}

		codigo, err := e.secuencia.NextCodigo(ambitoAjuste)
		if err != nil {
			return err
		}
		now := time.Now()
		ajuste := &entity.TransaccionInventario{
			ID:         uuid.New().String(),
			Codigo:     codigo,
			Tipo:       entity.TransaccionAjuste,
			AlmacenID:  movimientos[0].AlmacenID,
			Fecha:      now,
			Estado:     entity.EstadoActiva,
			Referencia: numeroFactura,
			Notas:      "reversa de factura " + numeroFactura,
			CreatedAt:  now,
			CreatedBy:  userID,
		}
		if err := transRepo.Create(ajuste); err != nil {
			return err
		}
		for _, mov := range movimientos {
			articulo, err := e.articuloRepo.GetByID(mov.ArticuloID)
			if err != nil {
				return err
			}
			if articulo == nil {
				return domain.ErrNoEncontrado
			}
			direccion := entity.DireccionEntrada
			if mov.Direccion == entity.DireccionEntrada {
				direccion = entity.DireccionSalida
			}
			detalle := &entity.TransaccionDetalle{
				ID:                uuid.New().String(),
				TransaccionID:     ajuste.ID,
				ArticuloID:        mov.ArticuloID,
				CantidadIngresada: mov.CantidadVenta,
				UnidadIngresada:   entity.UnidadVenta,
				Direccion:         direccion,
				FactorConversion:  articulo.FactorConversion,
			}
			if err := transRepo.CreateDetalle(detalle); err != nil {
				return err
			}
			if err := e.ledger.PostMovement(stockRepo, movRepo, Posting{
				TransaccionID: ajuste.ID,
				DetalleID:     detalle.ID,
				Articulo:      articulo,
				AlmacenID:     mov.AlmacenID,
				Direccion:     direccion,
				CantidadVenta: mov.CantidadVenta,
				KitOrigenID:   mov.KitOrigenID,
				Fecha:         now,
				CreatedBy:     userID,
			}); err != nil {
				return err
			}
			resp.Reversed++
		}
		resp.CodigoAjuste = ajuste.Codigo
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
