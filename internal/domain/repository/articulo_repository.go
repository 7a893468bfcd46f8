package repository

import "github.com/jortega/restobar-api/internal/domain/entity"

// ArticuloRepository define el puerto de persistencia del catálogo de artículos (DIP).
type ArticuloRepository interface {
	Create(articulo *entity.Articulo, componentes []*entity.ArticuloKitComponente) error
	GetByID(id string) (*entity.Articulo, error)
	GetByCodigo(codigo string) (*entity.Articulo, error)
	// GetKitComponentes devuelve la receta vigente de un artículo KIT (incluye inactivos;
	// el resolver filtra por Activo).
	GetKitComponentes(kitID string) ([]*entity.ArticuloKitComponente, error)
	Update(articulo *entity.Articulo) error
	List(limit, offset int) ([]*entity.Articulo, error)
}
