package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jortega/restobar-api/internal/domain"
	"github.com/jortega/restobar-api/internal/domain/entity"
	"github.com/jortega/restobar-api/internal/domain/repository"
)

var _ repository.TransaccionRepository = (*TransaccionRepo)(nil)

// TransaccionRepo implementación sobre PostgreSQL (usable con pool o tx).
// Cabeceras y líneas solo se insertan y consultan, nunca se actualizan.
type TransaccionRepo struct {
	q Querier
}

// NewTransaccionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransaccionRepository(q Querier) *TransaccionRepo {
	return &TransaccionRepo{q: q}
}

const transaccionCols = `id, codigo, tipo, almacen_id, almacen_origen_id, fecha, estado, monto_total, referencia, proveedor, notas, autorizado_por, created_at, created_by`

// Create persiste la cabecera de un documento de inventario.
func (r *TransaccionRepo) Create(t *entity.TransaccionInventario) error {
	query := `
		INSERT INTO transacciones_inventario (` + transaccionCols + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	almacenOrigen := (*string)(nil)
	if t.AlmacenOrigenID != "" {
		almacenOrigen = &t.AlmacenOrigenID
	}
	createdBy := (*string)(nil)
	if t.CreatedBy != "" {
		createdBy = &t.CreatedBy
	}
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.Codigo, t.Tipo, t.AlmacenID, almacenOrigen, t.Fecha, t.Estado,
		t.MontoTotal, t.Referencia, t.Proveedor, t.Notas, t.AutorizadoPor,
		t.CreatedAt, createdBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("create transaccion: %w", err)
	}
	return nil
}

// CreateDetalle persiste una línea con sus snapshots de factor y multiplicador.
func (r *TransaccionRepo) CreateDetalle(d *entity.TransaccionDetalle) error {
	query := `
		INSERT INTO transaccion_detalles (id, transaccion_id, articulo_id, cantidad_ingresada, unidad_ingresada, direccion, factor_conversion, multiplicador_kit, costo_unitario, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.TransaccionID, d.ArticuloID, d.CantidadIngresada, d.UnidadIngresada,
		d.Direccion, d.FactorConversion, d.MultiplicadorKit, d.CostoUnitario, d.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("create detalle: %w", err)
	}
	return nil
}

func (r *TransaccionRepo) scanOne(query string, args ...any) (*entity.TransaccionInventario, error) {
	var t entity.TransaccionInventario
	var almacenOrigen, createdBy *string
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&t.ID, &t.Codigo, &t.Tipo, &t.AlmacenID, &almacenOrigen, &t.Fecha, &t.Estado,
		&t.MontoTotal, &t.Referencia, &t.Proveedor, &t.Notas, &t.AutorizadoPor,
		&t.CreatedAt, &createdBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaccion: %w", err)
	}
	if almacenOrigen != nil {
		t.AlmacenOrigenID = *almacenOrigen
	}
	if createdBy != nil {
		t.CreatedBy = *createdBy
	}
	return &t, nil
}

// GetByID obtiene una transacción por ID.
func (r *TransaccionRepo) GetByID(id string) (*entity.TransaccionInventario, error) {
	query := `SELECT ` + transaccionCols + ` FROM transacciones_inventario WHERE id = $1`
	return r.scanOne(query, id)
}

// GetByCodigo obtiene una transacción por su folio.
func (r *TransaccionRepo) GetByCodigo(codigo string) (*entity.TransaccionInventario, error) {
	query := `SELECT ` + transaccionCols + ` FROM transacciones_inventario WHERE codigo = $1`
	return r.scanOne(query, codigo)
}

// ListByReferencia lista transacciones vinculadas a una referencia externa
// (número de factura, documento de proveedor), opcionalmente por tipo.
func (r *TransaccionRepo) ListByReferencia(referencia, tipo string) ([]*entity.TransaccionInventario, error) {
	return r.listByReferencia(referencia, tipo, false)
}

// ListByReferenciaForUpdate bloquea las filas devueltas (FOR UPDATE) hasta el
// commit de la transacción en curso. Solo tiene sentido dentro de un TxRunner.
func (r *TransaccionRepo) ListByReferenciaForUpdate(referencia, tipo string) ([]*entity.TransaccionInventario, error) {
	return r.listByReferencia(referencia, tipo, true)
}

func (r *TransaccionRepo) listByReferencia(referencia, tipo string, lock bool) ([]*entity.TransaccionInventario, error) {
	query := `SELECT ` + transaccionCols + ` FROM transacciones_inventario WHERE referencia = $1`
	args := []any{referencia}
	if tipo != "" {
		query += " AND tipo = $2"
		args = append(args, tipo)
	}
	query += " ORDER BY created_at"
	if lock {
		query += " FOR UPDATE"
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list by referencia: %w", err)
	}
	defer rows.Close()
	var list []*entity.TransaccionInventario
	for rows.Next() {
		var t entity.TransaccionInventario
		var almacenOrigen, createdBy *string
		if err := rows.Scan(&t.ID, &t.Codigo, &t.Tipo, &t.AlmacenID, &almacenOrigen, &t.Fecha,
			&t.Estado, &t.MontoTotal, &t.Referencia, &t.Proveedor, &t.Notas, &t.AutorizadoPor,
			&t.CreatedAt, &createdBy); err != nil {
			return nil, fmt.Errorf("scan transaccion: %w", err)
		}
		if almacenOrigen != nil {
			t.AlmacenOrigenID = *almacenOrigen
		}
		if createdBy != nil {
			t.CreatedBy = *createdBy
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// ListDetalles lista las líneas de una transacción.
func (r *TransaccionRepo) ListDetalles(transaccionID string) ([]*entity.TransaccionDetalle, error) {
	query := `
		SELECT id, transaccion_id, articulo_id, cantidad_ingresada, unidad_ingresada, direccion, factor_conversion, multiplicador_kit, costo_unitario, subtotal
		FROM transaccion_detalles WHERE transaccion_id = $1`
	rows, err := r.q.Query(context.Background(), query, transaccionID)
	if err != nil {
		return nil, fmt.Errorf("list detalles: %w", err)
	}
	defer rows.Close()
	var list []*entity.TransaccionDetalle
	for rows.Next() {
		var d entity.TransaccionDetalle
		if err := rows.Scan(&d.ID, &d.TransaccionID, &d.ArticuloID, &d.CantidadIngresada,
			&d.UnidadIngresada, &d.Direccion, &d.FactorConversion, &d.MultiplicadorKit,
			&d.CostoUnitario, &d.Subtotal); err != nil {
			return nil, fmt.Errorf("scan detalle: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}
