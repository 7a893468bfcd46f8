package repository

import "github.com/jortega/restobar-api/internal/domain/entity"

// TransaccionRepository define el puerto de persistencia para cabeceras y líneas
// de documentos de inventario. Las cabeceras nunca se borran ni se mutan; una
// reversa es una transacción nueva vinculada por Referencia.
type TransaccionRepository interface {
	Create(transaccion *entity.TransaccionInventario) error
	CreateDetalle(detalle *entity.TransaccionDetalle) error
	GetByID(id string) (*entity.TransaccionInventario, error)
	GetByCodigo(codigo string) (*entity.TransaccionInventario, error)
	// ListByReferencia devuelve las transacciones vinculadas a una referencia externa
	// (número de factura, documento de proveedor), opcionalmente filtradas por tipo.
	ListByReferencia(referencia, tipo string) ([]*entity.TransaccionInventario, error)
	// ListByReferenciaForUpdate es ListByReferencia con bloqueo de fila hasta el
	// fin de la transacción en curso: dos reversas concurrentes de la misma
	// referencia se serializan aquí.
	ListByReferenciaForUpdate(referencia, tipo string) ([]*entity.TransaccionInventario, error)
	ListDetalles(transaccionID string) ([]*entity.TransaccionDetalle, error)
}
