package entity

import "time"

// Almacen representa una bodega o punto de almacenamiento (multi-almacén).
// No guarda cantidades; el stock vive en StockAlmacen por (artículo, almacén).
type Almacen struct {
	ID        string
	Codigo    string // código único
	Nombre    string
	Direccion string
	Activo    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
