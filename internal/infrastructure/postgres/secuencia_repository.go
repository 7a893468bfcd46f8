package postgres

import (
	"context"
	"fmt"

	"github.com/jortega/restobar-api/internal/domain/repository"
)

var _ repository.SecuenciaRepository = (*SecuenciaRepo)(nil)

// SecuenciaRepo asigna folios consecutivos por ámbito sobre una tabla de
// contadores. El upsert con RETURNING hace la asignación atómica: dos
// llamadas concurrentes nunca reciben el mismo número.
type SecuenciaRepo struct {
	q Querier
}

// NewSecuenciaRepository construye el asignador de folios.
func NewSecuenciaRepository(q Querier) *SecuenciaRepo {
	return &SecuenciaRepo{q: q}
}

// NextCodigo devuelve el siguiente folio del ámbito, con formato AMBITO-000001.
// Los números consumidos no se reutilizan aunque la transacción que los pidió
// termine en rollback: pueden quedar huecos en la numeración.
func (r *SecuenciaRepo) NextCodigo(ambito string) (string, error) {
	query := `
		INSERT INTO folio_secuencias (ambito, valor)
		VALUES ($1, 1)
		ON CONFLICT (ambito) DO UPDATE SET valor = folio_secuencias.valor + 1
		RETURNING valor`
	var valor int64
	if err := r.q.QueryRow(context.Background(), query, ambito).Scan(&valor); err != nil {
		return "", fmt.Errorf("next folio %s: %w", ambito, err)
	}
	return fmt.Sprintf("%s-%06d", ambito, valor), nil
}
