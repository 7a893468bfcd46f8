package memory

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jortega/restobar-api/internal/domain"
	"github.com/jortega/restobar-api/internal/domain/entity"
	"github.com/jortega/restobar-api/internal/domain/repository"
)

// Adaptadores por entidad sobre el Store (un tipo por puerto para evitar
// colisiones de nombres de método).

// ── Artículos ─────────────────────────────────────────────────────────────────

var _ repository.ArticuloRepository = (*ArticuloRepo)(nil)

type ArticuloRepo struct{ s *Store }

func (s *Store) Articulos() *ArticuloRepo { return &ArticuloRepo{s: s} }

func (r *ArticuloRepo) Create(articulo *entity.Articulo, componentes []*entity.ArticuloKitComponente) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.articulosPorCodigo[articulo.Codigo]; ok {
		return domain.ErrDuplicado
	}
	a := *articulo
	r.s.articulos[a.ID] = &a
	r.s.articulosPorCodigo[a.Codigo] = a.ID
	for _, comp := range componentes {
		c := *comp
		r.s.componentes[a.ID] = append(r.s.componentes[a.ID], &c)
	}
	return nil
}

func (r *ArticuloRepo) GetByID(id string) (*entity.Articulo, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.articulos[id]
	if !ok {
		return nil, nil
	}
	copia := *a
	return &copia, nil
}

func (r *ArticuloRepo) GetByCodigo(codigo string) (*entity.Articulo, error) {
	r.s.mu.RLock()
	id, ok := r.s.articulosPorCodigo[codigo]
	r.s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return r.GetByID(id)
}

func (r *ArticuloRepo) GetKitComponentes(kitID string) ([]*entity.ArticuloKitComponente, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	comps := r.s.componentes[kitID]
	out := make([]*entity.ArticuloKitComponente, 0, len(comps))
	for _, c := range comps {
		copia := *c
		out = append(out, &copia)
	}
	return out, nil
}

func (r *ArticuloRepo) Update(articulo *entity.Articulo) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.articulos[articulo.ID]; !ok {
		return domain.ErrNoEncontrado
	}
	copia := *articulo
	r.s.articulos[articulo.ID] = &copia
	return nil
}

func (r *ArticuloRepo) List(limit, offset int) ([]*entity.Articulo, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	todos := make([]*entity.Articulo, 0, len(r.s.articulos))
	for _, a := range r.s.articulos {
		copia := *a
		todos = append(todos, &copia)
	}
	sort.Slice(todos, func(i, j int) bool { return todos[i].Codigo < todos[j].Codigo })
	return paginar(todos, limit, offset), nil
}

// ── Almacenes ─────────────────────────────────────────────────────────────────

var _ repository.AlmacenRepository = (*AlmacenRepo)(nil)

type AlmacenRepo struct{ s *Store }

func (s *Store) Almacenes() *AlmacenRepo { return &AlmacenRepo{s: s} }

func (r *AlmacenRepo) Create(almacen *entity.Almacen) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.almacenesPorCodigo[almacen.Codigo]; ok {
		return domain.ErrDuplicado
	}
	copia := *almacen
	r.s.almacenes[copia.ID] = &copia
	r.s.almacenesPorCodigo[copia.Codigo] = copia.ID
	return nil
}

func (r *AlmacenRepo) GetByID(id string) (*entity.Almacen, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.almacenes[id]
	if !ok {
		return nil, nil
	}
	copia := *a
	return &copia, nil
}

func (r *AlmacenRepo) GetByCodigo(codigo string) (*entity.Almacen, error) {
	r.s.mu.RLock()
	id, ok := r.s.almacenesPorCodigo[codigo]
	r.s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return r.GetByID(id)
}

func (r *AlmacenRepo) Update(almacen *entity.Almacen) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.almacenes[almacen.ID]; !ok {
		return domain.ErrNoEncontrado
	}
	copia := *almacen
	r.s.almacenes[almacen.ID] = &copia
	return nil
}

func (r *AlmacenRepo) List(limit, offset int) ([]*entity.Almacen, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	todos := make([]*entity.Almacen, 0, len(r.s.almacenes))
	for _, a := range r.s.almacenes {
		copia := *a
		todos = append(todos, &copia)
	}
	sort.Slice(todos, func(i, j int) bool { return todos[i].Codigo < todos[j].Codigo })
	return paginar(todos, limit, offset), nil
}

// ── Stock ─────────────────────────────────────────────────────────────────────

var _ repository.StockRepository = (*StockRepo)(nil)

type StockRepo struct{ s *Store }

func (s *Store) Stocks() *StockRepo { return &StockRepo{s: s} }

func (r *StockRepo) Get(articuloID, almacenID string) (*entity.StockAlmacen, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	stock, ok := r.s.stocks[stockKey(articuloID, almacenID)]
	if !ok {
		return &entity.StockAlmacen{ArticuloID: articuloID, AlmacenID: almacenID, CantidadVenta: decimal.Zero, CantidadAlmacen: decimal.Zero}, nil
	}
	copia := *stock
	return &copia, nil
}

// GetForUpdate: el txMu del Store ya serializa los escritores; equivale a Get.
func (r *StockRepo) GetForUpdate(articuloID, almacenID string) (*entity.StockAlmacen, error) {
	return r.Get(articuloID, almacenID)
}

func (r *StockRepo) Upsert(stock *entity.StockAlmacen) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	copia := *stock
	r.s.stocks[stockKey(stock.ArticuloID, stock.AlmacenID)] = &copia
	return nil
}

func (r *StockRepo) List(filtro repository.StockFiltro, limit, offset int) ([]*entity.StockAlmacen, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var todos []*entity.StockAlmacen
	for _, s := range r.s.stocks {
		if filtro.ArticuloID != "" && s.ArticuloID != filtro.ArticuloID {
			continue
		}
		if filtro.AlmacenID != "" && s.AlmacenID != filtro.AlmacenID {
			continue
		}
		copia := *s
		todos = append(todos, &copia)
	}
	sort.Slice(todos, func(i, j int) bool {
		if todos[i].ArticuloID != todos[j].ArticuloID {
			return todos[i].ArticuloID < todos[j].ArticuloID
		}
		return todos[i].AlmacenID < todos[j].AlmacenID
	})
	return paginar(todos, limit, offset), nil
}

// ── Transacciones ─────────────────────────────────────────────────────────────

var _ repository.TransaccionRepository = (*TransaccionRepo)(nil)

type TransaccionRepo struct{ s *Store }

func (s *Store) Transacciones() *TransaccionRepo { return &TransaccionRepo{s: s} }

func (r *TransaccionRepo) Create(transaccion *entity.TransaccionInventario) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.transPorCodigo[transaccion.Codigo]; ok {
		return domain.ErrDuplicado
	}
	copia := *transaccion
	r.s.transacciones[copia.ID] = &copia
	r.s.transPorCodigo[copia.Codigo] = copia.ID
	return nil
}

func (r *TransaccionRepo) CreateDetalle(detalle *entity.TransaccionDetalle) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	copia := *detalle
	r.s.detalles[copia.TransaccionID] = append(r.s.detalles[copia.TransaccionID], &copia)
	return nil
}

func (r *TransaccionRepo) GetByID(id string) (*entity.TransaccionInventario, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.transacciones[id]
	if !ok {
		return nil, nil
	}
	copia := *t
	return &copia, nil
}

func (r *TransaccionRepo) GetByCodigo(codigo string) (*entity.TransaccionInventario, error) {
	r.s.mu.RLock()
	id, ok := r.s.transPorCodigo[codigo]
	r.s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return r.GetByID(id)
}

func (r *TransaccionRepo) ListByReferencia(referencia, tipo string) ([]*entity.TransaccionInventario, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.TransaccionInventario
	for _, t := range r.s.transacciones {
		if t.Referencia != referencia {
			continue
		}
		if tipo != "" && t.Tipo != tipo {
			continue
		}
		copia := *t
		out = append(out, &copia)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// ListByReferenciaForUpdate equivale a ListByReferencia: el candado de
// transacción del store ya serializa a los escritores en memoria.
func (r *TransaccionRepo) ListByReferenciaForUpdate(referencia, tipo string) ([]*entity.TransaccionInventario, error) {
	return r.ListByReferencia(referencia, tipo)
}

func (r *TransaccionRepo) ListDetalles(transaccionID string) ([]*entity.TransaccionDetalle, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	dets := r.s.detalles[transaccionID]
	out := make([]*entity.TransaccionDetalle, 0, len(dets))
	for _, d := range dets {
		copia := *d
		out = append(out, &copia)
	}
	return out, nil
}

// ── Movimientos ───────────────────────────────────────────────────────────────

var _ repository.MovimientoRepository = (*MovimientoRepo)(nil)

type MovimientoRepo struct{ s *Store }

func (s *Store) Movimientos() *MovimientoRepo { return &MovimientoRepo{s: s} }

func (r *MovimientoRepo) Create(movimiento *entity.MovimientoInventario) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	copia := *movimiento
	r.s.movimientos = append(r.s.movimientos, &copia)
	return nil
}

func (r *MovimientoRepo) ListByTransaccion(transaccionID string) ([]*entity.MovimientoInventario, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.MovimientoInventario
	for _, m := range r.s.movimientos {
		if m.TransaccionID == transaccionID {
			copia := *m
			out = append(out, &copia)
		}
	}
	return out, nil
}

func (r *MovimientoRepo) ListKardex(filtro repository.KardexFiltro) ([]*entity.MovimientoInventario, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.MovimientoInventario
	for _, m := range r.s.movimientos {
		if filtro.ArticuloID != "" && m.ArticuloID != filtro.ArticuloID {
			continue
		}
		if filtro.AlmacenID != "" && m.AlmacenID != filtro.AlmacenID {
			continue
		}
		if filtro.Desde != nil && m.Fecha.Before(*filtro.Desde) {
			continue
		}
		if filtro.Hasta != nil && m.Fecha.After(*filtro.Hasta) {
			continue
		}
		copia := *m
		out = append(out, &copia)
	}
	// created_at manda sobre la fecha de negocio: el saldo corrido debe seguir
	// el orden real de registro aunque haya fechas retroactivas.
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].Fecha.Before(out[j].Fecha)
	})
	return out, nil
}

func (r *MovimientoRepo) SumDeltasBefore(articuloID, almacenID string, antes time.Time) (decimal.Decimal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	suma := decimal.Zero
	for _, m := range r.s.movimientos {
		if m.ArticuloID != articuloID || m.AlmacenID != almacenID {
			continue
		}
		if !m.Fecha.Before(antes) {
			continue
		}
		suma = suma.Add(m.Delta())
	}
	return suma, nil
}

// ── Usuarios ──────────────────────────────────────────────────────────────────

var _ repository.UserRepository = (*UserRepo)(nil)

type UserRepo struct{ s *Store }

func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

func (r *UserRepo) Create(user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	email := strings.ToLower(user.Email)
	if _, ok := r.s.usersPorEmail[email]; ok {
		return domain.ErrDuplicado
	}
	copia := *user
	r.s.users[copia.ID] = &copia
	r.s.usersPorEmail[email] = copia.ID
	return nil
}

func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	r.s.mu.RLock()
	id, ok := r.s.usersPorEmail[strings.ToLower(email)]
	r.s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return r.GetByID(id)
}

func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	copia := *u
	return &copia, nil
}

func paginar[T any](items []*T, limit, offset int) []*T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
