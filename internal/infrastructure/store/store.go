// Package store arma el juego de repositorios según el driver configurado.
// Toda la aplicación depende de los puertos de dominio; este paquete es el
// único punto donde se decide si detrás hay memoria o PostgreSQL.
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jortega/restobar-api/internal/application/inventory"
	"github.com/jortega/restobar-api/internal/domain/repository"
	"github.com/jortega/restobar-api/internal/infrastructure/memory"
	"github.com/jortega/restobar-api/internal/infrastructure/postgres"
	"github.com/jortega/restobar-api/pkg/config"
)

// Repos agrupa los repositorios y el runner transaccional de un driver.
type Repos struct {
	Articulos     repository.ArticuloRepository
	Almacenes     repository.AlmacenRepository
	Stocks        repository.StockRepository
	Transacciones repository.TransaccionRepository
	Movimientos   repository.MovimientoRepository
	Secuencias    repository.SecuenciaRepository
	Users         repository.UserRepository
	TxRunner      inventory.TxRunner

	pool *pgxpool.Pool
}

// New construye el juego de repositorios para el driver configurado.
// Con "postgres" abre el pool y verifica conectividad; con "memory" el
// estado vive en el proceso (útil en desarrollo y tests).
func New(ctx context.Context, cfg *config.Config) (*Repos, error) {
	switch cfg.Store.Driver {
	case "memory":
		s := memory.NewStore()
		return &Repos{
			Articulos:     s.Articulos(),
			Almacenes:     s.Almacenes(),
			Stocks:        s.Stocks(),
			Transacciones: s.Transacciones(),
			Movimientos:   s.Movimientos(),
			Secuencias:    s,
			Users:         s.Users(),
			TxRunner:      memory.NewTxRunner(s),
		}, nil
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("store postgres: %w", err)
		}
		return &Repos{
			Articulos:     postgres.NewArticuloRepository(pool),
			Almacenes:     postgres.NewAlmacenRepository(pool),
			Stocks:        postgres.NewStockRepository(pool),
			Transacciones: postgres.NewTransaccionRepository(pool),
			Movimientos:   postgres.NewMovimientoRepository(pool),
			Secuencias:    postgres.NewSecuenciaRepository(pool),
			Users:         postgres.NewUserRepository(pool),
			TxRunner:      postgres.NewTxRunner(pool),
			pool:          pool,
		}, nil
	default:
		return nil, fmt.Errorf("driver de store desconocido: %q", cfg.Store.Driver)
	}
}

// Close libera los recursos del driver (el pool en postgres; no-op en memory).
func (r *Repos) Close() {
	if r.pool != nil {
		r.pool.Close()
	}
}
