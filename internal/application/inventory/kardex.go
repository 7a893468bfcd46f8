package inventory

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jortega/restobar-api/internal/application/dto"
	"github.com/jortega/restobar-api/internal/domain"
	dominv "github.com/jortega/restobar-api/internal/domain/inventory"
	"github.com/jortega/restobar-api/internal/domain/repository"
)

// KardexReader reconstruye el kardex: por cada par (artículo, almacén) del filtro,
// saldo inicial + secuencia cronológica de movimientos con saldo corrido.
// Solo lee filas ya registradas; repetible para cualquier combinación de filtros.
type KardexReader struct {
	movRepo      repository.MovimientoRepository
	stockRepo    repository.StockRepository
	articuloRepo repository.ArticuloRepository
	almacenRepo  repository.AlmacenRepository
}

// NewKardexReader construye el lector.
func NewKardexReader(
	movRepo repository.MovimientoRepository,
	stockRepo repository.StockRepository,
	articuloRepo repository.ArticuloRepository,
	almacenRepo repository.AlmacenRepository,
) *KardexReader {
	return &KardexReader{
		movRepo:      movRepo,
		stockRepo:    stockRepo,
		articuloRepo: articuloRepo,
		almacenRepo:  almacenRepo,
	}
}

// resolverFiltro traduce códigos del request a IDs internos.
func (k *KardexReader) resolverFiltro(in dto.KardexRequest) (repository.KardexFiltro, error) {
	filtro := repository.KardexFiltro{Desde: in.Desde, Hasta: in.Hasta}
	if in.CodigoArticulo != "" {
		articulo, err := k.articuloRepo.GetByCodigo(in.CodigoArticulo)
		if err != nil {
			return filtro, err
		}
		if articulo == nil {
			return filtro, domain.ErrNoEncontrado
		}
		filtro.ArticuloID = articulo.ID
	}
	if in.CodigoAlmacen != "" {
		almacen, err := k.almacenRepo.GetByCodigo(in.CodigoAlmacen)
		if err != nil {
			return filtro, err
		}
		if almacen == nil {
			return filtro, domain.ErrNoEncontrado
		}
		filtro.AlmacenID = almacen.ID
	}
	return filtro, nil
}

// GetKardex reconstruye el kardex del filtro. El saldo inicial de cada par es la
// suma de deltas anteriores a la ventana; el saldo corrido se pliega en el orden
// (created_at, fecha) que devuelve el repositorio.
func (k *KardexReader) GetKardex(ctx context.Context, in dto.KardexRequest) (*dto.KardexResponse, error) {
	filtro, err := k.resolverFiltro(in)
	if err != nil {
		return nil, err
	}
	movimientos, err := k.movRepo.ListKardex(filtro)
	if err != nil {
		return nil, err
	}

	type par struct{ articuloID, almacenID string }
	grupos := make(map[par]*dto.KardexGrupoDTO)
	var orden []par

	for _, mov := range movimientos {
		clave := par{mov.ArticuloID, mov.AlmacenID}
		grupo, ok := grupos[clave]
		if !ok {
			saldoInicial := decimal.Zero
			if filtro.Desde != nil {
				saldoInicial, err = k.movRepo.SumDeltasBefore(mov.ArticuloID, mov.AlmacenID, *filtro.Desde)
				if err != nil {
					return nil, err
				}
			}
			grupo = &dto.KardexGrupoDTO{
				ArticuloID:   mov.ArticuloID,
				AlmacenID:    mov.AlmacenID,
				SaldoInicial: saldoInicial,
				SaldoFinal:   saldoInicial,
			}
			grupos[clave] = grupo
			orden = append(orden, clave)
		}
		saldo := dominv.NormalizeQty(grupo.SaldoFinal.Add(mov.Delta()))
		grupo.SaldoFinal = saldo
		grupo.Movimientos = append(grupo.Movimientos, dto.KardexMovimientoDTO{
			MovimientoID:  mov.ID,
			TransaccionID: mov.TransaccionID,
			Fecha:         mov.Fecha,
			CreatedAt:     mov.CreatedAt,
			Direccion:     mov.Direccion,
			CantidadVenta: mov.CantidadVenta,
			Saldo:         saldo,
			KitOrigenID:   mov.KitOrigenID,
		})
	}

	resp := &dto.KardexResponse{Grupos: make([]dto.KardexGrupoDTO, 0, len(orden))}
	for _, clave := range orden {
		resp.Grupos = append(resp.Grupos, *grupos[clave])
	}
	return resp, nil
}

// GetStockSummary devuelve los saldos materializados actuales, filtrables por
// artículo y/o almacén (códigos).
func (k *KardexReader) GetStockSummary(ctx context.Context, codigoArticulo, codigoAlmacen string, limit, offset int) ([]dto.StockResumenDTO, error) {
	filtro := repository.StockFiltro{}
	if codigoArticulo != "" {
		articulo, err := k.articuloRepo.GetByCodigo(codigoArticulo)
		if err != nil {
			return nil, err
		}
		if articulo == nil {
			return nil, domain.ErrNoEncontrado
		}
		filtro.ArticuloID = articulo.ID
	}
	if codigoAlmacen != "" {
		almacen, err := k.almacenRepo.GetByCodigo(codigoAlmacen)
		if err != nil {
			return nil, err
		}
		if almacen == nil {
			return nil, domain.ErrNoEncontrado
		}
		filtro.AlmacenID = almacen.ID
	}
	stocks, err := k.stockRepo.List(filtro, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockResumenDTO, 0, len(stocks))
	for _, s := range stocks {
		out = append(out, dto.StockResumenDTO{
			ArticuloID:      s.ArticuloID,
			AlmacenID:       s.AlmacenID,
			CantidadVenta:   s.CantidadVenta,
			CantidadAlmacen: s.CantidadAlmacen,
			UpdatedAt:       s.UpdatedAt,
		})
	}
	return out, nil
}
