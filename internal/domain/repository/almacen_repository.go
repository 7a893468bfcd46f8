package repository

import "github.com/jortega/restobar-api/internal/domain/entity"

// AlmacenRepository define el puerto de persistencia para almacenes (DIP).
type AlmacenRepository interface {
	Create(almacen *entity.Almacen) error
	GetByID(id string) (*entity.Almacen, error)
	GetByCodigo(codigo string) (*entity.Almacen, error)
	Update(almacen *entity.Almacen) error
	List(limit, offset int) ([]*entity.Almacen, error)
}
