package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jortega/restobar-api/internal/application/dto"
	"github.com/jortega/restobar-api/internal/domain"
	"github.com/jortega/restobar-api/internal/domain/entity"
	dominv "github.com/jortega/restobar-api/internal/domain/inventory"
	"github.com/jortega/restobar-api/internal/domain/repository"
)

// Ámbitos de folio por familia de documento.
const (
	ambitoCompra   = "COM"
	ambitoConsumo  = "CON"
	ambitoTraslado = "TRA"
	ambitoAjuste   = "AJU"
)

// TransactionWriter registra documentos de inventario (compra, consumo, traslado,
// salida por factura): valida cada línea, resuelve unidades y kits, y registra
// cabecera + líneas + movimientos + saldos en una sola transacción.
type TransactionWriter struct {
	txRunner     TxRunner
	ledger       *Ledger
	articuloRepo repository.ArticuloRepository
	almacenRepo  repository.AlmacenRepository
	secuencia    repository.SecuenciaRepository
}

// NewTransactionWriter construye el escritor de transacciones.
func NewTransactionWriter(
	txRunner TxRunner,
	ledger *Ledger,
	articuloRepo repository.ArticuloRepository,
	almacenRepo repository.AlmacenRepository,
	secuencia repository.SecuenciaRepository,
) *TransactionWriter {
	return &TransactionWriter{
		txRunner:     txRunner,
		ledger:       ledger,
		articuloRepo: articuloRepo,
		almacenRepo:  almacenRepo,
		secuencia:    secuencia,
	}
}

// lineaResuelta es una línea validada con su detalle (snapshots incluidos) y los
// movimientos que producirá. Una línea simple produce un posting; una línea kit,
// uno por componente; un traslado, dos por línea.
type lineaResuelta struct {
	detalle  *entity.TransaccionDetalle
	postings []Posting
}

// errLinea envuelve un error de validación con el número de línea y el código
// del artículo ofensor, preservando el sentinel para errors.Is.
func errLinea(idx int, codigo string, err error) error {
	return fmt.Errorf("línea %d (%s): %w", idx+1, codigo, err)
}

// resolverArticulo valida existencia y estado del artículo de una línea.
func (w *TransactionWriter) resolverArticulo(idx int, codigo string) (*entity.Articulo, error) {
	if codigo == "" {
		return nil, errLinea(idx, codigo, domain.ErrEntradaInvalida)
	}
	articulo, err := w.articuloRepo.GetByCodigo(codigo)
	if err != nil {
		return nil, err
	}
	if articulo == nil {
		return nil, errLinea(idx, codigo, domain.ErrNoEncontrado)
	}
	if !articulo.Activo {
		return nil, errLinea(idx, codigo, domain.ErrArticuloInactivo)
	}
	return articulo, nil
}

// resolverLinea valida y expande una línea: conversión a unidad de venta y, si el
// artículo es KIT y la operación lo permite (solo consumos), descomposición en
// componentes. El detalle captura factor y multiplicador al momento del registro.
func (w *TransactionWriter) resolverLinea(
	idx int,
	in dto.LineaDocumentoRequest,
	direccion string,
	permitirKit bool,
	costoObligatorio bool,
) (*lineaResuelta, error) {
	articulo, err := w.resolverArticulo(idx, in.CodigoArticulo)
	if err != nil {
		return nil, err
	}

	unidad := in.Unidad
	if unidad == "" {
		unidad = entity.UnidadVenta
	}
	cantidadVenta, err := dominv.ToRetail(articulo.FactorConversion, unidad, in.Cantidad)
	if err != nil {
		return nil, errLinea(idx, in.CodigoArticulo, err)
	}

	if costoObligatorio && (in.CostoUnitario == nil || in.CostoUnitario.IsNegative()) {
		return nil, errLinea(idx, in.CodigoArticulo, domain.ErrEntradaInvalida)
	}

	detalle := &entity.TransaccionDetalle{
		ID:                uuid.New().String(),
		ArticuloID:        articulo.ID,
		CantidadIngresada: in.Cantidad,
		UnidadIngresada:   unidad,
		Direccion:         direccion,
		FactorConversion:  articulo.FactorConversion,
		CostoUnitario:     in.CostoUnitario,
	}
	if in.CostoUnitario != nil {
		subtotal := in.Cantidad.Mul(*in.CostoUnitario)
		detalle.Subtotal = &subtotal
	}

	if articulo.Tipo == entity.ArticuloKit {
		if !permitirKit {
			return nil, errLinea(idx, in.CodigoArticulo, domain.ErrKitNoAlmacenable)
		}
		componentes, err := w.articuloRepo.GetKitComponentes(articulo.ID)
		if err != nil {
			return nil, err
		}
		expandidos, err := dominv.ExpandKit(componentes, cantidadVenta)
		if err != nil {
			return nil, errLinea(idx, in.CodigoArticulo, err)
		}
		multiplicador := cantidadVenta
		detalle.MultiplicadorKit = &multiplicador

		linea := &lineaResuelta{detalle: detalle}
		for _, comp := range expandidos {
			compArticulo, err := w.articuloRepo.GetByID(comp.ComponenteID)
			if err != nil {
				return nil, err
			}
			if compArticulo == nil || !compArticulo.Activo {
				return nil, errLinea(idx, in.CodigoArticulo, domain.ErrKitSinComponentes)
			}
			linea.postings = append(linea.postings, Posting{
				Articulo:      compArticulo,
				Direccion:     direccion,
				CantidadVenta: comp.CantidadVenta,
				KitOrigenID:   articulo.ID,
			})
		}
		return linea, nil
	}

	return &lineaResuelta{
		detalle: detalle,
		postings: []Posting{{
			Articulo:      articulo,
			Direccion:     direccion,
			CantidadVenta: cantidadVenta,
		}},
	}, nil
}

// resolverAlmacen valida existencia y estado de un almacén por código.
func (w *TransactionWriter) resolverAlmacen(codigo string) (*entity.Almacen, error) {
	if codigo == "" {
		return nil, domain.ErrEntradaInvalida
	}
	almacen, err := w.almacenRepo.GetByCodigo(codigo)
	if err != nil {
		return nil, err
	}
	if almacen == nil {
		return nil, domain.ErrNoEncontrado
	}
	if !almacen.Activo {
		return nil, domain.ErrAlmacenInactivo
	}
	return almacen, nil
}

// registrar persiste cabecera, líneas y movimientos en una sola transacción.
// Cualquier error deshace el documento completo: nunca quedan registros parciales.
func (w *TransactionWriter) registrar(
	ctx context.Context,
	trans *entity.TransaccionInventario,
	lineas []*lineaResuelta,
) (int, error) {
	movimientos := 0
	err := w.txRunner.Run(ctx, func(
		transRepo repository.TransaccionRepository,
		stockRepo repository.StockRepository,
		movRepo repository.MovimientoRepository,
	) error {
		if err := transRepo.Create(trans); err != nil {
			return err
		}
		for _, linea := range lineas {
			linea.detalle.TransaccionID = trans.ID
			if err := transRepo.CreateDetalle(linea.detalle); err != nil {
				return err
			}
			for _, p := range linea.postings {
				p.TransaccionID = trans.ID
				p.DetalleID = linea.detalle.ID
				p.Fecha = trans.Fecha
				p.CreatedBy = trans.CreatedBy
				if err := w.ledger.PostMovement(stockRepo, movRepo, p); err != nil {
					return err
				}
				movimientos++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return movimientos, nil
}

// montoTotal suma los subtotales de las líneas que llevan costo.
func montoTotal(lineas []*lineaResuelta) decimal.Decimal {
	total := decimal.Zero
	for _, linea := range lineas {
		if linea.detalle.Subtotal != nil {
			total = total.Add(*linea.detalle.Subtotal)
		}
	}
	return total
}

// RegisterPurchase registra una compra: una entrada (IN) por línea, costo
// obligatorio, estado de pago indicado por el caller (independiente del stock).
func (w *TransactionWriter) RegisterPurchase(ctx context.Context, userID string, in dto.RegistrarCompraRequest) (*dto.TransaccionResponse, error) {
	if in.NumeroDocumento == "" || len(in.Lineas) == 0 {
		return nil, domain.ErrEntradaInvalida
	}
	estado := in.Estado
	if estado == "" {
		estado = entity.EstadoPendiente
	}
	switch estado {
	case entity.EstadoPendiente, entity.EstadoParcial, entity.EstadoPagada:
	default:
		return nil, domain.ErrEntradaInvalida
	}
	almacen, err := w.resolverAlmacen(in.CodigoAlmacen)
	if err != nil {
		return nil, err
	}

	lineas := make([]*lineaResuelta, 0, len(in.Lineas))
	for i, l := range in.Lineas {
		linea, err := w.resolverLinea(i, l, entity.DireccionEntrada, false, true)
		if err != nil {
			return nil, err
		}
		for j := range linea.postings {
			linea.postings[j].AlmacenID = almacen.ID
		}
		lineas = append(lineas, linea)
	}

	codigo, err := w.secuencia.NextCodigo(ambitoCompra)
	if err != nil {
		return nil, err
	}
	trans := &entity.TransaccionInventario{
		ID:         uuid.New().String(),
		Codigo:     codigo,
		Tipo:       entity.TransaccionCompra,
		AlmacenID:  almacen.ID,
		Fecha:      time.Now(),
		Estado:     estado,
		MontoTotal: montoTotal(lineas),
		Referencia: in.NumeroDocumento,
		Proveedor:  in.Proveedor,
		Notas:      in.Notas,
		CreatedAt:  time.Now(),
		CreatedBy:  userID,
	}

	movimientos, err := w.registrar(ctx, trans, lineas)
	if err != nil {
		return nil, err
	}
	return toTransaccionResponse(trans, movimientos), nil
}

// RegisterConsumption registra un consumo interno: una salida (OUT) por línea,
// con descomposición de kits cuando aplica.
func (w *TransactionWriter) RegisterConsumption(ctx context.Context, userID string, in dto.RegistrarConsumoRequest) (*dto.TransaccionResponse, error) {
	if in.Motivo == "" || len(in.Lineas) == 0 {
		return nil, domain.ErrEntradaInvalida
	}
	almacen, err := w.resolverAlmacen(in.CodigoAlmacen)
	if err != nil {
		return nil, err
	}

	lineas := make([]*lineaResuelta, 0, len(in.Lineas))
	for i, l := range in.Lineas {
		linea, err := w.resolverLinea(i, l, entity.DireccionSalida, true, false)
		if err != nil {
			return nil, err
		}
		for j := range linea.postings {
			linea.postings[j].AlmacenID = almacen.ID
		}
		lineas = append(lineas, linea)
	}

	codigo, err := w.secuencia.NextCodigo(ambitoConsumo)
	if err != nil {
		return nil, err
	}
	trans := &entity.TransaccionInventario{
		ID:            uuid.New().String(),
		Codigo:        codigo,
		Tipo:          entity.TransaccionConsumo,
		AlmacenID:     almacen.ID,
		Fecha:         time.Now(),
		Estado:        entity.EstadoActiva,
		MontoTotal:    montoTotal(lineas),
		Notas:         in.Motivo,
		AutorizadoPor: in.AutorizadoPor,
		CreatedAt:     time.Now(),
		CreatedBy:     userID,
	}

	movimientos, err := w.registrar(ctx, trans, lineas)
	if err != nil {
		return nil, err
	}
	return toTransaccionResponse(trans, movimientos), nil
}

// RegisterTransfer registra un traslado entre almacenes: exactamente dos
// movimientos por línea (OUT origen, IN destino) compartiendo el mismo detalle.
func (w *TransactionWriter) RegisterTransfer(ctx context.Context, userID string, in dto.RegistrarTrasladoRequest) (*dto.TransaccionResponse, error) {
	if len(in.Lineas) == 0 {
		return nil, domain.ErrEntradaInvalida
	}
	if in.CodigoAlmacenOrigen == in.CodigoAlmacenDestino {
		return nil, domain.ErrMismoAlmacen
	}
	origen, err := w.resolverAlmacen(in.CodigoAlmacenOrigen)
	if err != nil {
		return nil, err
	}
	destino, err := w.resolverAlmacen(in.CodigoAlmacenDestino)
	if err != nil {
		return nil, err
	}
	if origen.ID == destino.ID {
		return nil, domain.ErrMismoAlmacen
	}

	lineas := make([]*lineaResuelta, 0, len(in.Lineas))
	for i, l := range in.Lineas {
		linea, err := w.resolverLinea(i, l, entity.DireccionSalida, false, false)
		if err != nil {
			return nil, err
		}
		// Un posting resuelto por línea (kits rechazados); se duplica a OUT/IN.
		base := linea.postings[0]
		salida := base
		salida.Direccion = entity.DireccionSalida
		salida.AlmacenID = origen.ID
		entrada := base
		entrada.Direccion = entity.DireccionEntrada
		entrada.AlmacenID = destino.ID
		linea.postings = []Posting{salida, entrada}
		lineas = append(lineas, linea)
	}

	codigo, err := w.secuencia.NextCodigo(ambitoTraslado)
	if err != nil {
		return nil, err
	}
	trans := &entity.TransaccionInventario{
		ID:              uuid.New().String(),
		Codigo:          codigo,
		Tipo:            entity.TransaccionTraslado,
		AlmacenID:       destino.ID,
		AlmacenOrigenID: origen.ID,
		Fecha:           time.Now(),
		Estado:          entity.EstadoActiva,
		Notas:           in.Notas,
		CreatedAt:       time.Now(),
		CreatedBy:       userID,
	}

	movimientos, err := w.registrar(ctx, trans, lineas)
	if err != nil {
		return nil, err
	}
	return toTransaccionResponse(trans, movimientos), nil
}

// RegisterInvoiceMovements registra las salidas de stock de una factura finalizada.
// Lo invoca el flujo de facturación de forma síncrona al cerrar la venta; la
// transacción queda vinculada a la factura por Referencia para su reversa.
func (w *TransactionWriter) RegisterInvoiceMovements(ctx context.Context, userID string, in dto.RegistrarFacturaRequest) (*dto.TransaccionResponse, error) {
	if in.NumeroFactura == "" || len(in.Lineas) == 0 {
		return nil, domain.ErrEntradaInvalida
	}
	almacen, err := w.resolverAlmacen(in.CodigoAlmacen)
	if err != nil {
		return nil, err
	}

	lineas := make([]*lineaResuelta, 0, len(in.Lineas))
	for i, l := range in.Lineas {
		linea, err := w.resolverLinea(i, l, entity.DireccionSalida, true, false)
		if err != nil {
			return nil, err
		}
		for j := range linea.postings {
			linea.postings[j].AlmacenID = almacen.ID
		}
		lineas = append(lineas, linea)
	}

	fecha := in.Fecha
	if fecha.IsZero() {
		fecha = time.Now()
	}
	codigo, err := w.secuencia.NextCodigo(ambitoConsumo)
	if err != nil {
		return nil, err
	}
	trans := &entity.TransaccionInventario{
		ID:         uuid.New().String(),
		Codigo:     codigo,
		Tipo:       entity.TransaccionConsumo,
		AlmacenID:  almacen.ID,
		Fecha:      fecha,
		Estado:     entity.EstadoActiva,
		Referencia: in.NumeroFactura,
		Notas:      "salida por factura " + in.NumeroFactura,
		CreatedAt:  time.Now(),
		CreatedBy:  userID,
	}

	movimientos, err := w.registrar(ctx, trans, lineas)
	if err != nil {
		return nil, err
	}
	return toTransaccionResponse(trans, movimientos), nil
}

func toTransaccionResponse(trans *entity.TransaccionInventario, movimientos int) *dto.TransaccionResponse {
	return &dto.TransaccionResponse{
		ID:          trans.ID,
		Codigo:      trans.Codigo,
		Tipo:        trans.Tipo,
		Estado:      trans.Estado,
		MontoTotal:  trans.MontoTotal,
		Movimientos: movimientos,
	}
}
