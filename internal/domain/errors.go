package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNoEncontrado       = errors.New("recurso no encontrado")
	ErrEntradaInvalida    = errors.New("entrada inválida")
	ErrDuplicado          = errors.New("recurso duplicado")
	ErrNoAutorizado       = errors.New("no autorizado")
	ErrConflicto          = errors.New("conflicto con el estado actual")
	ErrCredenciales       = errors.New("credenciales inválidas")
	ErrArticuloInactivo   = errors.New("artículo inactivo")
	ErrAlmacenInactivo    = errors.New("almacén inactivo")
	ErrConversionInvalida = errors.New("factor de conversión o cantidad inválidos")
	ErrKitSinComponentes  = errors.New("el kit no tiene componentes activos")
	ErrKitNoAlmacenable   = errors.New("un kit no puede comprarse, ajustarse ni trasladarse")
	ErrMismoAlmacen       = errors.New("almacén origen y destino no pueden ser el mismo")
	ErrYaRevertida        = errors.New("la factura ya fue revertida")
	ErrStockInsuficiente  = errors.New("stock insuficiente")
)
