package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/entity"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implémentation du livre des mouvements sur PostgreSQL (pool ou tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construit l'adaptateur du livre. Passer pool ou tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste une écriture du livre.
func (r *MovementRepo) Create(m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, product_id, kind, quantity, reference, document_id, stock_before, stock_after, actor, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.ProductID, m.Kind, m.Quantity, m.Reference, m.DocumentID,
		m.StockBefore, m.StockAfter, m.Actor, m.Date, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// ListByProduct retourne les écritures d'un produit, les plus récentes d'abord.
func (r *MovementRepo) ListByProduct(productID string, limit int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, product_id, kind, quantity, reference, document_id, stock_before, stock_after, actor, date, created_at
		FROM stock_movements WHERE product_id = $1
		ORDER BY date DESC, created_at DESC LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, productID, limit)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var movements []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(
			&m.ID, &m.ProductID, &m.Kind, &m.Quantity, &m.Reference, &m.DocumentID,
			&m.StockBefore, &m.StockAfter, &m.Actor, &m.Date, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		movements = append(movements, &m)
	}
	return movements, rows.Err()
}

// SumByProduct retourne la somme des deltas du produit résolu.
func (r *MovementRepo) SumByProduct(productID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(quantity), 0) FROM stock_movements WHERE product_id = $1`,
		productID,
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum movements: %w", err)
	}
	return sum, nil
}

// DeleteByDocument supprime les écritures d'un document pour une nature donnée
// et retourne les écritures supprimées.
func (r *MovementRepo) DeleteByDocument(documentID, kind string) ([]*entity.StockMovement, error) {
	query := `
		DELETE FROM stock_movements WHERE document_id = $1 AND kind = $2
		RETURNING id, product_id, kind, quantity, reference, document_id, stock_before, stock_after, actor, date, created_at`
	rows, err := r.q.Query(context.Background(), query, documentID, kind)
	if err != nil {
		return nil, fmt.Errorf("delete movements: %w", err)
	}
	defer rows.Close()

	var deleted []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(
			&m.ID, &m.ProductID, &m.Kind, &m.Quantity, &m.Reference, &m.DocumentID,
			&m.StockBefore, &m.StockAfter, &m.Actor, &m.Date, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan deleted movement: %w", err)
		}
		deleted = append(deleted, &m)
	}
	return deleted, rows.Err()
}

// DeleteAll vide le livre. Réservé au replay.
func (r *MovementRepo) DeleteAll() error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM stock_movements`)
	if err != nil {
		return fmt.Errorf("delete all movements: %w", err)
	}
	return nil
}

// CountAll retourne le nombre d'écritures du livre.
func (r *MovementRepo) CountAll() (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM stock_movements`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return count, nil
}
