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

var _ repository.ArticuloRepository = (*ArticuloRepo)(nil)

// ArticuloRepo implementación del catálogo de artículos sobre PostgreSQL.
type ArticuloRepo struct {
	q Querier
}

// NewArticuloRepository construye el adaptador. Pasar pool o tx (Querier).
func NewArticuloRepository(q Querier) *ArticuloRepo {
	return &ArticuloRepo{q: q}
}

const articuloCols = `id, codigo, nombre, descripcion, tipo, unidad_almacen, unidad_venta, factor_conversion, almacen_id, costo_unitario, activo, created_at, updated_at`

// Create persiste un artículo y, si es KIT, su receta.
func (r *ArticuloRepo) Create(a *entity.Articulo, componentes []*entity.ArticuloKitComponente) error {
	query := `
		INSERT INTO articulos (` + articuloCols + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	almacenID := (*string)(nil)
	if a.AlmacenID != "" {
		almacenID = &a.AlmacenID
	}
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.Codigo, a.Nombre, a.Descripcion, a.Tipo, a.UnidadAlmacenStr, a.UnidadVentaStr,
		a.FactorConversion, almacenID, a.CostoUnitario, a.Activo, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("insert articulo: %w", err)
	}
	for _, comp := range componentes {
		compQuery := `
			INSERT INTO articulo_kit_componentes (id, kit_id, componente_id, cantidad_venta, activo)
			VALUES ($1, $2, $3, $4, $5)`
		if _, err := r.q.Exec(context.Background(), compQuery,
			comp.ID, comp.KitID, comp.ComponenteID, comp.CantidadVenta, comp.Activo); err != nil {
			return fmt.Errorf("insert componente kit: %w", err)
		}
	}
	return nil
}

func (r *ArticuloRepo) scanOne(query string, args ...any) (*entity.Articulo, error) {
	var a entity.Articulo
	var almacenID *string
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&a.ID, &a.Codigo, &a.Nombre, &a.Descripcion, &a.Tipo, &a.UnidadAlmacenStr,
		&a.UnidadVentaStr, &a.FactorConversion, &almacenID, &a.CostoUnitario,
		&a.Activo, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get articulo: %w", err)
	}
	if almacenID != nil {
		a.AlmacenID = *almacenID
	}
	return &a, nil
}

// GetByID obtiene un artículo por ID.
func (r *ArticuloRepo) GetByID(id string) (*entity.Articulo, error) {
	return r.scanOne(`SELECT `+articuloCols+` FROM articulos WHERE id = $1`, id)
}

// GetByCodigo obtiene un artículo por su código único.
func (r *ArticuloRepo) GetByCodigo(codigo string) (*entity.Articulo, error) {
	return r.scanOne(`SELECT `+articuloCols+` FROM articulos WHERE codigo = $1`, codigo)
}

// GetKitComponentes devuelve la receta de un artículo KIT.
func (r *ArticuloRepo) GetKitComponentes(kitID string) ([]*entity.ArticuloKitComponente, error) {
	query := `
		SELECT id, kit_id, componente_id, cantidad_venta, activo
		FROM articulo_kit_componentes WHERE kit_id = $1`
	rows, err := r.q.Query(context.Background(), query, kitID)
	if err != nil {
		return nil, fmt.Errorf("list componentes kit: %w", err)
	}
	defer rows.Close()
	var list []*entity.ArticuloKitComponente
	for rows.Next() {
		var c entity.ArticuloKitComponente
		if err := rows.Scan(&c.ID, &c.KitID, &c.ComponenteID, &c.CantidadVenta, &c.Activo); err != nil {
			return nil, fmt.Errorf("scan componente kit: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update actualiza los campos descriptivos de un artículo. El factor de conversión
// de líneas ya registradas no se ve afectado (snapshot en el detalle).
func (r *ArticuloRepo) Update(a *entity.Articulo) error {
	query := `
		UPDATE articulos
		SET nombre = $2, descripcion = $3, unidad_almacen = $4, unidad_venta = $5,
		    factor_conversion = $6, costo_unitario = $7, activo = $8, updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.Nombre, a.Descripcion, a.UnidadAlmacenStr, a.UnidadVentaStr,
		a.FactorConversion, a.CostoUnitario, a.Activo,
	)
	if err != nil {
		return fmt.Errorf("update articulo: %w", err)
	}
	return nil
}

// List lista artículos paginados por código.
func (r *ArticuloRepo) List(limit, offset int) ([]*entity.Articulo, error) {
	query := `SELECT ` + articuloCols + ` FROM articulos ORDER BY codigo LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list articulos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Articulo
	for rows.Next() {
		var a entity.Articulo
		var almacenID *string
		if err := rows.Scan(&a.ID, &a.Codigo, &a.Nombre, &a.Descripcion, &a.Tipo,
			&a.UnidadAlmacenStr, &a.UnidadVentaStr, &a.FactorConversion, &almacenID,
			&a.CostoUnitario, &a.Activo, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan articulo: %w", err)
		}
		if almacenID != nil {
			a.AlmacenID = *almacenID
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
