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

var _ repository.ContractRepository = (*ContractRepo)(nil)

// ContractRepo implémentation du port ContractRepository sur PostgreSQL (pool ou tx).
type ContractRepo struct {
	q Querier
}

// NewContractRepository construit l'adaptateur contrats. Passer pool ou tx (Querier).
func NewContractRepository(q Querier) *ContractRepo {
	return &ContractRepo{q: q}
}

// Create persiste un contrat.
func (r *ContractRepo) Create(c *entity.Contract) error {
	query := `
		INSERT INTO contracts (id, client_id, reference, start_date, end_date, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.ClientID, c.Reference, c.StartDate, c.EndDate, c.Active, c.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert contract: %w", err)
	}
	return nil
}

// GetByID obtient un contrat par ID.
func (r *ContractRepo) GetByID(id string) (*entity.Contract, error) {
	query := `SELECT id, client_id, reference, start_date, end_date, active, created_at FROM contracts WHERE id = $1`
	var c entity.Contract
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.ClientID, &c.Reference, &c.StartDate, &c.EndDate, &c.Active, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get contract: %w", err)
	}
	return &c, nil
}

// ListByClient retourne les contrats d'un client.
func (r *ContractRepo) ListByClient(clientID string) ([]*entity.Contract, error) {
	query := `SELECT id, client_id, reference, start_date, end_date, active, created_at FROM contracts WHERE client_id = $1 ORDER BY start_date DESC`
	rows, err := r.q.Query(context.Background(), query, clientID)
	if err != nil {
		return nil, fmt.Errorf("list contracts: %w", err)
	}
	defer rows.Close()

	var contracts []*entity.Contract
	for rows.Next() {
		var c entity.Contract
		if err := rows.Scan(
			&c.ID, &c.ClientID, &c.Reference, &c.StartDate, &c.EndDate, &c.Active, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan contract: %w", err)
		}
		contracts = append(contracts, &c)
	}
	return contracts, rows.Err()
}
