// Package memory implementa el juego completo de repositorios sobre estructuras
// en memoria, intercambiable con el backend PostgreSQL detrás de los mismos
// puertos. Se usa en modo de datos simulados (STORE_DRIVER=memory) y en tests.
package memory

import (
	"fmt"
	"sync"

	"github.com/jortega/restobar-api/internal/domain/entity"
)

// Store contiene todas las tablas en memoria. Un solo mutex protege las lecturas
// y escrituras; txMu serializa las transacciones completas para poder restaurar
// un snapshot en caso de rollback.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	articulos          map[string]*entity.Articulo
	articulosPorCodigo map[string]string
	componentes        map[string][]*entity.ArticuloKitComponente
	almacenes          map[string]*entity.Almacen
	almacenesPorCodigo map[string]string
	stocks             map[string]*entity.StockAlmacen // clave articuloID|almacenID
	transacciones      map[string]*entity.TransaccionInventario
	transPorCodigo     map[string]string
	detalles           map[string][]*entity.TransaccionDetalle
	movimientos        []*entity.MovimientoInventario
	users              map[string]*entity.User
	usersPorEmail      map[string]string
	secuencias         map[string]int64
}

// NewStore construye un store vacío.
func NewStore() *Store {
	return &Store{
		articulos:          make(map[string]*entity.Articulo),
		articulosPorCodigo: make(map[string]string),
		componentes:        make(map[string][]*entity.ArticuloKitComponente),
		almacenes:          make(map[string]*entity.Almacen),
		almacenesPorCodigo: make(map[string]string),
		stocks:             make(map[string]*entity.StockAlmacen),
		transacciones:      make(map[string]*entity.TransaccionInventario),
		transPorCodigo:     make(map[string]string),
		detalles:           make(map[string][]*entity.TransaccionDetalle),
		users:              make(map[string]*entity.User),
		usersPorEmail:      make(map[string]string),
		secuencias:         make(map[string]int64),
	}
}

func stockKey(articuloID, almacenID string) string {
	return articuloID + "|" + almacenID
}

// snapshot captura el estado mutado por una transacción de documento.
type snapshot struct {
	stocks         map[string]*entity.StockAlmacen
	transacciones  map[string]*entity.TransaccionInventario
	transPorCodigo map[string]string
	detalles       map[string][]*entity.TransaccionDetalle
	numMovimientos int
	secuencias     map[string]int64
}

func (s *Store) takeSnapshot() *snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := &snapshot{
		stocks:         make(map[string]*entity.StockAlmacen, len(s.stocks)),
		transacciones:  make(map[string]*entity.TransaccionInventario, len(s.transacciones)),
		transPorCodigo: make(map[string]string, len(s.transPorCodigo)),
		detalles:       make(map[string][]*entity.TransaccionDetalle, len(s.detalles)),
		numMovimientos: len(s.movimientos),
		secuencias:     make(map[string]int64, len(s.secuencias)),
	}
	for k, v := range s.stocks {
		snap.stocks[k] = v
	}
	for k, v := range s.transacciones {
		snap.transacciones[k] = v
	}
	for k, v := range s.transPorCodigo {
		snap.transPorCodigo[k] = v
	}
	for k, v := range s.detalles {
		snap.detalles[k] = v
	}
	for k, v := range s.secuencias {
		snap.secuencias[k] = v
	}
	return snap
}

func (s *Store) restore(snap *snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stocks = snap.stocks
	s.transacciones = snap.transacciones
	s.transPorCodigo = snap.transPorCodigo
	s.detalles = snap.detalles
	s.movimientos = s.movimientos[:snap.numMovimientos]
	s.secuencias = snap.secuencias
}

// NextCodigo implementa repository.SecuenciaRepository: contador por ámbito,
// único y no reutilizable.
func (s *Store) NextCodigo(ambito string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.secuencias[ambito]++
	return fmt.Sprintf("%s-%06d", ambito, s.secuencias[ambito]), nil
}
