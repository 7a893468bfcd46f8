package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/jortega/restobar-api/internal/domain/entity"
	"github.com/jortega/restobar-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockCols = `articulo_id, almacen_id, cantidad_venta, cantidad_almacen, updated_at`

// Get obtiene el saldo actual de un artículo en un almacén. Si el par no existe
// devuelve una fila en cero (el ledger la materializa en el primer movimiento).
func (r *StockRepo) Get(articuloID, almacenID string) (*entity.StockAlmacen, error) {
	query := `
		SELECT ` + stockCols + `
		FROM stock_almacen WHERE articulo_id = $1 AND almacen_id = $2`
	return r.scanOne(query, articuloID, almacenID)
}

// GetForUpdate obtiene el saldo y bloquea la fila (SELECT FOR UPDATE): registros
// concurrentes sobre el mismo par se serializan; pares distintos no se bloquean.
func (r *StockRepo) GetForUpdate(articuloID, almacenID string) (*entity.StockAlmacen, error) {
	query := `
		SELECT ` + stockCols + `
		FROM stock_almacen WHERE articulo_id = $1 AND almacen_id = $2
		FOR UPDATE`
	return r.scanOne(query, articuloID, almacenID)
}

func (r *StockRepo) scanOne(query, articuloID, almacenID string) (*entity.StockAlmacen, error) {
	var s entity.StockAlmacen
	err := r.q.QueryRow(context.Background(), query, articuloID, almacenID).Scan(
		&s.ArticuloID, &s.AlmacenID, &s.CantidadVenta, &s.CantidadAlmacen, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockAlmacen{
				ArticuloID:      articuloID,
				AlmacenID:       almacenID,
				CantidadVenta:   decimal.Zero,
				CantidadAlmacen: decimal.Zero,
			}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza el saldo del par (artículo, almacén) en ambas unidades.
func (r *StockRepo) Upsert(stock *entity.StockAlmacen) error {
	query := `
		INSERT INTO stock_almacen (articulo_id, almacen_id, cantidad_venta, cantidad_almacen, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (articulo_id, almacen_id)
		DO UPDATE SET cantidad_venta = EXCLUDED.cantidad_venta,
		              cantidad_almacen = EXCLUDED.cantidad_almacen,
		              updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		stock.ArticuloID, stock.AlmacenID, stock.CantidadVenta, stock.CantidadAlmacen,
	)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// List devuelve los saldos materializados, filtrables por artículo y/o almacén.
func (r *StockRepo) List(filtro repository.StockFiltro, limit, offset int) ([]*entity.StockAlmacen, error) {
	query := `
		SELECT ` + stockCols + `
		FROM stock_almacen WHERE 1=1`
	args := []any{}
	pos := 1
	if filtro.ArticuloID != "" {
		query += fmt.Sprintf(" AND articulo_id = $%d", pos)
		args = append(args, filtro.ArticuloID)
		pos++
	}
	if filtro.AlmacenID != "" {
		query += fmt.Sprintf(" AND almacen_id = $%d", pos)
		args = append(args, filtro.AlmacenID)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY articulo_id, almacen_id LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockAlmacen
	for rows.Next() {
		var s entity.StockAlmacen
		if err := rows.Scan(&s.ArticuloID, &s.AlmacenID, &s.CantidadVenta, &s.CantidadAlmacen, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
