package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jortega/restobar-api/internal/domain/entity"
	"github.com/jortega/restobar-api/internal/domain/repository"
)

var _ repository.MovimientoRepository = (*MovimientoRepo)(nil)

// MovimientoRepo implementación del ledger de movimientos sobre PostgreSQL
// (usable con pool o tx). Solo INSERT y SELECT: las filas son inmutables.
type MovimientoRepo struct {
	q Querier
}

// NewMovimientoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovimientoRepository(q Querier) *MovimientoRepo {
	return &MovimientoRepo{q: q}
}

const movimientoCols = `id, transaccion_id, detalle_id, articulo_id, almacen_id, direccion, cantidad_venta, kit_origen_id, fecha, created_at, created_by`

// Create anexa un movimiento al ledger.
func (r *MovimientoRepo) Create(movimiento *entity.MovimientoInventario) error {
	query := `
		INSERT INTO movimientos_inventario (` + movimientoCols + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	kitOrigen := (*string)(nil)
	if movimiento.KitOrigenID != "" {
		kitOrigen = &movimiento.KitOrigenID
	}
	createdBy := (*string)(nil)
	if movimiento.CreatedBy != "" {
		createdBy = &movimiento.CreatedBy
	}
	_, err := r.q.Exec(context.Background(), query,
		movimiento.ID, movimiento.TransaccionID, movimiento.DetalleID,
		movimiento.ArticuloID, movimiento.AlmacenID, movimiento.Direccion,
		movimiento.CantidadVenta, kitOrigen, movimiento.Fecha, movimiento.CreatedAt, createdBy,
	)
	if err != nil {
		return fmt.Errorf("create movimiento: %w", err)
	}
	return nil
}

func (r *MovimientoRepo) scanRows(query string, args ...any) ([]*entity.MovimientoInventario, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movimientos: %w", err)
	}
	defer rows.Close()
	var list []*entity.MovimientoInventario
	for rows.Next() {
		var m entity.MovimientoInventario
		var kitOrigen, createdBy *string
		if err := rows.Scan(&m.ID, &m.TransaccionID, &m.DetalleID, &m.ArticuloID, &m.AlmacenID,
			&m.Direccion, &m.CantidadVenta, &kitOrigen, &m.Fecha, &m.CreatedAt, &createdBy); err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		if kitOrigen != nil {
			m.KitOrigenID = *kitOrigen
		}
		if createdBy != nil {
			m.CreatedBy = *createdBy
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// ListByTransaccion lista los movimientos de una transacción en orden de registro.
func (r *MovimientoRepo) ListByTransaccion(transaccionID string) ([]*entity.MovimientoInventario, error) {
	query := `
		SELECT ` + movimientoCols + `
		FROM movimientos_inventario WHERE transaccion_id = $1
		ORDER BY created_at, fecha`
	return r.scanRows(query, transaccionID)
}

// ListKardex lista los movimientos del filtro ordenados por (created_at, fecha)
// ascendente: el orden de inserción manda sobre la fecha de negocio.
func (r *MovimientoRepo) ListKardex(filtro repository.KardexFiltro) ([]*entity.MovimientoInventario, error) {
	query := `
		SELECT ` + movimientoCols + `
		FROM movimientos_inventario WHERE 1=1`
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
	if filtro.Desde != nil {
		query += fmt.Sprintf(" AND fecha >= $%d", pos)
		args = append(args, *filtro.Desde)
		pos++
	}
	if filtro.Hasta != nil {
		query += fmt.Sprintf(" AND fecha <= $%d", pos)
		args = append(args, *filtro.Hasta)
		pos++
	}
	query += " ORDER BY created_at, fecha"
	return r.scanRows(query, args...)
}

// SumDeltasBefore suma los deltas del par estrictamente anteriores a la fecha:
// saldo inicial de una ventana de kardex.
func (r *MovimientoRepo) SumDeltasBefore(articuloID, almacenID string, antes time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN direccion = 'IN' THEN cantidad_venta ELSE -cantidad_venta END), 0)
		FROM movimientos_inventario
		WHERE articulo_id = $1 AND almacen_id = $2 AND fecha < $3`
	var suma decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, articuloID, almacenID, antes).Scan(&suma)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum deltas: %w", err)
	}
	return suma, nil
}
