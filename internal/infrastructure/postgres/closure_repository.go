package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/entity"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/repository"
)

var _ repository.ClosureRepository = (*ClosureRepo)(nil)

// ClosureRepo implémentation du port ClosureRepository sur PostgreSQL (pool ou tx).
type ClosureRepo struct {
	q Querier
}

// NewClosureRepository construit l'adaptateur clôtures. Passer pool ou tx (Querier).
func NewClosureRepository(q Querier) *ClosureRepo {
	return &ClosureRepo{q: q}
}

// Create persiste l'en-tête d'une clôture annuelle.
func (r *ClosureRepo) Create(c *entity.AnnualClosure) error {
	query := `
		INSERT INTO annual_closures (id, year, closed_at, closed_by)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query, c.ID, c.Year, c.ClosedAt, c.ClosedBy)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyClosed
		}
		return fmt.Errorf("insert closure: %w", err)
	}
	return nil
}

// CreateStockLine fige le stock d'un produit à la clôture.
func (r *ClosureRepo) CreateStockLine(l *entity.ClosureStockLine) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO closure_stock_lines (closure_id, product_id, stock) VALUES ($1, $2, $3)`,
		l.ClosureID, l.ProductID, l.Stock,
	)
	if err != nil {
		return fmt.Errorf("insert closure stock line: %w", err)
	}
	return nil
}

// CreateBalanceLine fige le solde d'un client à la clôture.
func (r *ClosureRepo) CreateBalanceLine(l *entity.ClosureBalanceLine) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO closure_balance_lines (closure_id, client_id, balance) VALUES ($1, $2, $3)`,
		l.ClosureID, l.ClientID, l.Balance,
	)
	if err != nil {
		return fmt.Errorf("insert closure balance line: %w", err)
	}
	return nil
}

// GetByYear obtient la clôture d'un exercice.
func (r *ClosureRepo) GetByYear(year int) (*entity.AnnualClosure, error) {
	var c entity.AnnualClosure
	err := r.q.QueryRow(context.Background(),
		`SELECT id, year, closed_at, closed_by FROM annual_closures WHERE year = $1`,
		year,
	).Scan(&c.ID, &c.Year, &c.ClosedAt, &c.ClosedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get closure: %w", err)
	}
	return &c, nil
}

// LatestYear retourne l'exercice de la clôture la plus récente, 0 si aucune.
func (r *ClosureRepo) LatestYear() (int, error) {
	var year int
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(MAX(year), 0) FROM annual_closures`,
	).Scan(&year)
	if err != nil {
		return 0, fmt.Errorf("latest closure year: %w", err)
	}
	return year, nil
}
