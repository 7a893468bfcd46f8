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

var _ repository.AlmacenRepository = (*AlmacenRepo)(nil)

// AlmacenRepo implementación del catálogo de almacenes sobre PostgreSQL.
type AlmacenRepo struct {
	q Querier
}

// NewAlmacenRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAlmacenRepository(q Querier) *AlmacenRepo {
	return &AlmacenRepo{q: q}
}

const almacenCols = `id, codigo, nombre, direccion, activo, created_at, updated_at`

// Create persiste un almacén.
func (r *AlmacenRepo) Create(a *entity.Almacen) error {
	query := `
		INSERT INTO almacenes (` + almacenCols + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.Codigo, a.Nombre, a.Direccion, a.Activo, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("insert almacen: %w", err)
	}
	return nil
}

func (r *AlmacenRepo) scanOne(query string, args ...any) (*entity.Almacen, error) {
	var a entity.Almacen
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&a.ID, &a.Codigo, &a.Nombre, &a.Direccion, &a.Activo, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get almacen: %w", err)
	}
	return &a, nil
}

// GetByID obtiene un almacén por ID.
func (r *AlmacenRepo) GetByID(id string) (*entity.Almacen, error) {
	return r.scanOne(`SELECT `+almacenCols+` FROM almacenes WHERE id = $1`, id)
}

// GetByCodigo obtiene un almacén por su código único.
func (r *AlmacenRepo) GetByCodigo(codigo string) (*entity.Almacen, error) {
	return r.scanOne(`SELECT `+almacenCols+` FROM almacenes WHERE codigo = $1`, codigo)
}

// Update actualiza los campos descriptivos de un almacén.
func (r *AlmacenRepo) Update(a *entity.Almacen) error {
	query := `
		UPDATE almacenes
		SET nombre = $2, direccion = $3, activo = $4, updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, a.ID, a.Nombre, a.Direccion, a.Activo)
	if err != nil {
		return fmt.Errorf("update almacen: %w", err)
	}
	return nil
}

// List lista almacenes paginados por código.
func (r *AlmacenRepo) List(limit, offset int) ([]*entity.Almacen, error) {
	query := `SELECT ` + almacenCols + ` FROM almacenes ORDER BY codigo LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list almacenes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Almacen
	for rows.Next() {
		var a entity.Almacen
		if err := rows.Scan(&a.ID, &a.Codigo, &a.Nombre, &a.Direccion, &a.Activo, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan almacen: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
