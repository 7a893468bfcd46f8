package repository

import "github.com/jortega/restobar-api/internal/domain/entity"

// StockFiltro acota el resumen de saldos por artículo y/o almacén.
type StockFiltro struct {
	ArticuloID string
	AlmacenID  string
}

// StockRepository define el puerto para consultar/actualizar el saldo materializado
// por (artículo, almacén). Las escrituras ocurren dentro de transacciones para
// garantizar el invariante de conciliación.
type StockRepository interface {
	Get(articuloID, almacenID string) (*entity.StockAlmacen, error)
	// GetForUpdate bloquea la fila del par (SELECT FOR UPDATE) para serializar
	// registros concurrentes sobre el mismo par sin bloquear pares distintos.
	GetForUpdate(articuloID, almacenID string) (*entity.StockAlmacen, error)
	Upsert(stock *entity.StockAlmacen) error
	List(filtro StockFiltro, limit, offset int) ([]*entity.StockAlmacen, error)
}
