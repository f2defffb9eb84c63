package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/entity"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implémentation du port ClientRepository sur PostgreSQL (pool ou tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construit l'adaptateur clients. Passer pool ou tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

const clientColumns = `id, name, nif, address, phone, seuil_credit, report_a_nouveau, solde_courant, active, created_at, updated_at`

func scanClient(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	err := row.Scan(
		&c.ID, &c.Name, &c.NIF, &c.Address, &c.Phone, &c.SeuilCredit,
		&c.ReportANouveau, &c.SoldeCourant, &c.Active, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste un nouveau client.
func (r *ClientRepo) Create(c *entity.Client) error {
	query := `
		INSERT INTO clients (id, name, nif, address, phone, seuil_credit, report_a_nouveau, solde_courant, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.Name, c.NIF, c.Address, c.Phone, c.SeuilCredit,
		c.ReportANouveau, c.SoldeCourant, c.Active, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByID obtient un client par ID.
func (r *ClientRepo) GetByID(id string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	c, err := scanClient(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

// List liste les clients, éventuellement restreint aux actifs.
func (r *ClientRepo) List(activeOnly bool) ([]*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients`
	if activeOnly {
		query += ` WHERE active`
	}
	query += ` ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var clients []*entity.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

// Patch applique les champs non nuls du patch.
func (r *ClientRepo) Patch(id string, patch entity.ClientPatch) error {
	query := `
		UPDATE clients SET
			name = COALESCE($2, name),
			nif = COALESCE($3, nif),
			address = COALESCE($4, address),
			phone = COALESCE($5, phone),
			seuil_credit = COALESCE($6, seuil_credit),
			active = COALESCE($7, active),
			updated_at = now()
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		id, patch.Name, patch.NIF, patch.Address, patch.Phone, patch.SeuilCredit, patch.Active,
	)
	if err != nil {
		return fmt.Errorf("patch client: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateSoldeCache rafraîchit le solde courant mis en cache.
func (r *ClientRepo) UpdateSoldeCache(id string, solde decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE clients SET solde_courant = $2, updated_at = now() WHERE id = $1`,
		id, solde,
	)
	if err != nil {
		return fmt.Errorf("update solde cache: %w", err)
	}
	return nil
}

// UpdateReportANouveau écrit le report à nouveau. Réservé à la clôture annuelle.
func (r *ClientRepo) UpdateReportANouveau(id string, montant decimal.Decimal) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE clients SET report_a_nouveau = $2, updated_at = now() WHERE id = $1`,
		id, montant,
	)
	if err != nil {
		return fmt.Errorf("update report à nouveau: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
