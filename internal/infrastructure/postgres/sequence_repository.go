package postgres

import (
	"context"
	"fmt"

	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo numérotation monotone par type de document et par exercice.
// Compteur dédié : les numéros attribués ne sont jamais réutilisés, même après
// suppression d'un document.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construit l'adaptateur du compteur. Passer pool ou tx (Querier).
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Next incrémente et retourne le compteur (doc_type, year). L'upsert verrouille
// la ligne du compteur, donc deux numérotations concurrentes se sérialisent.
func (r *SequenceRepo) Next(docType string, year int) (int, error) {
	var value int
	err := r.q.QueryRow(context.Background(), `
		INSERT INTO sequences (doc_type, year, value) VALUES ($1, $2, 1)
		ON CONFLICT (doc_type, year) DO UPDATE SET value = sequences.value + 1
		RETURNING value`,
		docType, year,
	).Scan(&value)
	if err != nil {
		return 0, fmt.Errorf("next sequence %s/%d: %w", docType, year, err)
	}
	return value, nil
}
