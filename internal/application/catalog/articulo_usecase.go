package catalog

import (
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jortega/restobar-api/internal/application/dto"
	"github.com/jortega/restobar-api/internal/domain"
	"github.com/jortega/restobar-api/internal/domain/entity"
	"github.com/jortega/restobar-api/internal/domain/repository"
)

// ArticuloUseCase casos de uso del catálogo de artículos: alta (terminados y
// kits con receta), consulta y búsqueda.
type ArticuloUseCase struct {
	articuloRepo repository.ArticuloRepository
	almacenRepo  repository.AlmacenRepository
}

// NewArticuloUseCase construye el caso de uso de artículos.
func NewArticuloUseCase(articuloRepo repository.ArticuloRepository, almacenRepo repository.AlmacenRepository) *ArticuloUseCase {
	return &ArticuloUseCase{articuloRepo: articuloRepo, almacenRepo: almacenRepo}
}

// Create da de alta un artículo. Para KIT la receta es obligatoria, las
// unidades se fijan a RETAIL y el factor a 1: un kit no se almacena, se
// expande a componentes al registrar movimientos.
func (uc *ArticuloUseCase) Create(in dto.CreateArticuloRequest) (*dto.ArticuloResponse, error) {
	if in.Codigo == "" || in.Nombre == "" {
		return nil, domain.ErrEntradaInvalida
	}
	if in.Tipo != entity.ArticuloTerminado && in.Tipo != entity.ArticuloKit {
		return nil, domain.ErrEntradaInvalida
	}
	existing, err := uc.articuloRepo.GetByCodigo(in.Codigo)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicado
	}

	almacenID := ""
	if in.CodigoAlmacen != "" {
		almacen, err := uc.almacenRepo.GetByCodigo(in.CodigoAlmacen)
		if err != nil {
			return nil, err
		}
		if almacen == nil {
			return nil, domain.ErrNoEncontrado
		}
		almacenID = almacen.ID
	}

	now := time.Now()
	articulo := &entity.Articulo{
		ID:            uuid.New().String(),
		Codigo:        in.Codigo,
		Nombre:        in.Nombre,
		Descripcion:   in.Descripcion,
		Tipo:          in.Tipo,
		AlmacenID:     almacenID,
		CostoUnitario: in.CostoUnitario,
		Activo:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	var componentes []*entity.ArticuloKitComponente
	switch in.Tipo {
	case entity.ArticuloTerminado:
		articulo.UnidadAlmacenStr = in.UnidadAlmacen
		if articulo.UnidadAlmacenStr == "" {
			articulo.UnidadAlmacenStr = entity.UnidadAlmacen
		}
		articulo.UnidadVentaStr = in.UnidadVenta
		if articulo.UnidadVentaStr == "" {
			articulo.UnidadVentaStr = entity.UnidadVenta
		}
		articulo.FactorConversion = in.FactorConversion
		if articulo.FactorConversion.IsZero() {
			articulo.FactorConversion = decimal.NewFromInt(1)
		}
		if articulo.FactorConversion.LessThanOrEqual(decimal.Zero) {
			return nil, domain.ErrConversionInvalida
		}
	case entity.ArticuloKit:
		if in.UnidadAlmacen == entity.UnidadAlmacen {
			return nil, domain.ErrKitNoAlmacenable
		}
		articulo.UnidadAlmacenStr = entity.UnidadVenta
		articulo.UnidadVentaStr = entity.UnidadVenta
		articulo.FactorConversion = decimal.NewFromInt(1)
		if len(in.Componentes) == 0 {
			return nil, domain.ErrKitSinComponentes
		}
		for _, comp := range in.Componentes {
			if comp.CantidadVenta.LessThanOrEqual(decimal.Zero) {
				return nil, domain.ErrEntradaInvalida
			}
			compArt, err := uc.articuloRepo.GetByCodigo(comp.CodigoComponente)
			if err != nil {
				return nil, err
			}
			if compArt == nil {
				return nil, domain.ErrNoEncontrado
			}
			// Un kit no puede contener otro kit: la expansión es de un nivel.
			if compArt.Tipo != entity.ArticuloTerminado {
				return nil, domain.ErrEntradaInvalida
			}
			componentes = append(componentes, &entity.ArticuloKitComponente{
				ID:            uuid.New().String(),
				KitID:         articulo.ID,
				ComponenteID:  compArt.ID,
				CantidadVenta: comp.CantidadVenta,
				Activo:        true,
			})
		}
	}

	if err := uc.articuloRepo.Create(articulo, componentes); err != nil {
		return nil, err
	}
	return toArticuloResponse(articulo), nil
}

// GetByCodigo obtiene un artículo del catálogo.
func (uc *ArticuloUseCase) GetByCodigo(codigo string) (*dto.ArticuloResponse, error) {
	articulo, err := uc.articuloRepo.GetByCodigo(codigo)
	if err != nil {
		return nil, err
	}
	if articulo == nil {
		return nil, domain.ErrNoEncontrado
	}
	return toArticuloResponse(articulo), nil
}

// List lista artículos paginados. Con q no vacío filtra por código o nombre,
// insensible a mayúsculas y acentos ("limon" encuentra "Limón").
func (uc *ArticuloUseCase) List(q string, page dto.PageRequest) ([]*dto.ArticuloResponse, error) {
	page.DefaultPage()
	limit := page.Limit
	if q != "" {
		// Con búsqueda se trae una página amplia y se filtra en memoria.
		limit = 500
	}
	articulos, err := uc.articuloRepo.List(limit, page.Offset)
	if err != nil {
		return nil, err
	}
	folded := normalizarBusqueda(q)
	out := make([]*dto.ArticuloResponse, 0, len(articulos))
	for _, a := range articulos {
		if folded != "" &&
			!strings.Contains(normalizarBusqueda(a.Codigo), folded) &&
			!strings.Contains(normalizarBusqueda(a.Nombre), folded) {
			continue
		}
		out = append(out, toArticuloResponse(a))
		if q != "" && len(out) >= page.Limit {
			break
		}
	}
	return out, nil
}

// Deactivate marca un artículo como inactivo; sus movimientos históricos
// permanecen en el ledger.
func (uc *ArticuloUseCase) Deactivate(codigo string) error {
	articulo, err := uc.articuloRepo.GetByCodigo(codigo)
	if err != nil {
		return err
	}
	if articulo == nil {
		return domain.ErrNoEncontrado
	}
	articulo.Activo = false
	articulo.UpdatedAt = time.Now()
	return uc.articuloRepo.Update(articulo)
}

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizarBusqueda baja a minúsculas y elimina diacríticos para comparar.
func normalizarBusqueda(s string) string {
	folded, _, err := transform.String(foldTransformer, strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return folded
}

func toArticuloResponse(a *entity.Articulo) *dto.ArticuloResponse {
	return &dto.ArticuloResponse{
		ID:               a.ID,
		Codigo:           a.Codigo,
		Nombre:           a.Nombre,
		Descripcion:      a.Descripcion,
		Tipo:             a.Tipo,
		UnidadAlmacen:    a.UnidadAlmacenStr,
		UnidadVenta:      a.UnidadVentaStr,
		FactorConversion: a.FactorConversion,
		Activo:           a.Activo,
		CreatedAt:        a.CreatedAt,
	}
}
