package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/jortega/restobar-api/internal/application/dto"
	"github.com/jortega/restobar-api/internal/domain"
	"github.com/jortega/restobar-api/internal/domain/entity"
	"github.com/jortega/restobar-api/internal/domain/repository"
)

// AlmacenUseCase casos de uso del catálogo de almacenes.
type AlmacenUseCase struct {
	almacenRepo repository.AlmacenRepository
}

// NewAlmacenUseCase construye el caso de uso de almacenes.
func NewAlmacenUseCase(almacenRepo repository.AlmacenRepository) *AlmacenUseCase {
	return &AlmacenUseCase{almacenRepo: almacenRepo}
}

// Create da de alta un almacén con código único.
func (uc *AlmacenUseCase) Create(in dto.CreateAlmacenRequest) (*dto.AlmacenResponse, error) {
	if in.Codigo == "" || in.Nombre == "" {
		return nil, domain.ErrEntradaInvalida
	}
	existing, err := uc.almacenRepo.GetByCodigo(in.Codigo)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicado
	}
	now := time.Now()
	almacen := &entity.Almacen{
		ID:        uuid.New().String(),
		Codigo:    in.Codigo,
		Nombre:    in.Nombre,
		Direccion: in.Direccion,
		Activo:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.almacenRepo.Create(almacen); err != nil {
		return nil, err
	}
	return toAlmacenResponse(almacen), nil
}

// GetByCodigo obtiene un almacén.
func (uc *AlmacenUseCase) GetByCodigo(codigo string) (*dto.AlmacenResponse, error) {
	almacen, err := uc.almacenRepo.GetByCodigo(codigo)
	if err != nil {
		return nil, err
	}
	if almacen == nil {
		return nil, domain.ErrNoEncontrado
	}
	return toAlmacenResponse(almacen), nil
}

// List lista almacenes paginados.
func (uc *AlmacenUseCase) List(page dto.PageRequest) ([]*dto.AlmacenResponse, error) {
	page.DefaultPage()
	almacenes, err := uc.almacenRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.AlmacenResponse, 0, len(almacenes))
	for _, a := range almacenes {
		out = append(out, toAlmacenResponse(a))
	}
	return out, nil
}

// Deactivate marca un almacén como inactivo: deja de aceptar movimientos
// nuevos pero su historial sigue consultable en el kardex.
func (uc *AlmacenUseCase) Deactivate(codigo string) error {
	almacen, err := uc.almacenRepo.GetByCodigo(codigo)
	if err != nil {
		return err
	}
	if almacen == nil {
		return domain.ErrNoEncontrado
	}
	almacen.Activo = false
	almacen.UpdatedAt = time.Now()
	return uc.almacenRepo.Update(almacen)
}

func toAlmacenResponse(a *entity.Almacen) *dto.AlmacenResponse {
	return &dto.AlmacenResponse{
		ID:        a.ID,
		Codigo:    a.Codigo,
		Nombre:    a.Nombre,
		Direccion: a.Direccion,
		Activo:    a.Activo,
	}
}
