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

var _ repository.ReceptionRepository = (*ReceptionRepo)(nil)

// ReceptionRepo implémentation du port ReceptionRepository sur PostgreSQL (pool ou tx).
type ReceptionRepo struct {
	q Querier
}

// NewReceptionRepository construit l'adaptateur réceptions. Passer pool ou tx (Querier).
func NewReceptionRepository(q Querier) *ReceptionRepo {
	return &ReceptionRepo{q: q}
}

const receptionColumns = `id, product_id, reference, qty_announced, qty_received, ecart_motif, destination, date, created_at, created_by`

func scanReception(row pgx.Row) (*entity.Reception, error) {
	var rec entity.Reception
	err := row.Scan(
		&rec.ID, &rec.ProductID, &rec.Reference, &rec.QtyAnnounced, &rec.QtyReceived,
		&rec.EcartMotif, &rec.Destination, &rec.Date, &rec.CreatedAt, &rec.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Create persiste une réception.
func (r *ReceptionRepo) Create(rec *entity.Reception) error {
	query := `
		INSERT INTO receptions (id, product_id, reference, qty_announced, qty_received, ecart_motif, destination, date, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		rec.ID, rec.ProductID, rec.Reference, rec.QtyAnnounced, rec.QtyReceived,
		rec.EcartMotif, rec.Destination, rec.Date, rec.CreatedAt, rec.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert reception: %w", err)
	}
	return nil
}

// GetByID obtient une réception par ID.
func (r *ReceptionRepo) GetByID(id string) (*entity.Reception, error) {
	query := `SELECT ` + receptionColumns + ` FROM receptions WHERE id = $1`
	rec, err := scanReception(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reception: %w", err)
	}
	return rec, nil
}

// Delete supprime une réception (ses écritures de stock sont contre-passées en amont).
func (r *ReceptionRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM receptions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete reception: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List retourne les réceptions, les plus récentes d'abord.
func (r *ReceptionRepo) List(limit int) ([]*entity.Reception, error) {
	query := `SELECT ` + receptionColumns + ` FROM receptions ORDER BY date DESC, created_at DESC LIMIT $1`
	rows, err := r.q.Query(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("list receptions: %w", err)
	}
	defer rows.Close()

	var receptions []*entity.Reception
	for rows.Next() {
		rec, err := scanReception(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reception: %w", err)
		}
		receptions = append(receptions, rec)
	}
	return receptions, rows.Err()
}

// ListOnStock retourne toutes les réceptions SUR_STOCK dans l'ordre chronologique du replay.
func (r *ReceptionRepo) ListOnStock() ([]*entity.Reception, error) {
	query := `SELECT ` + receptionColumns + ` FROM receptions WHERE destination = $1 ORDER BY date, created_at`
	rows, err := r.q.Query(context.Background(), query, entity.DestinationSurStock)
	if err != nil {
		return nil, fmt.Errorf("list receptions sur stock: %w", err)
	}
	defer rows.Close()

	var receptions []*entity.Reception
	for rows.Next() {
		rec, err := scanReception(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reception: %w", err)
		}
		receptions = append(receptions, rec)
	}
	return receptions, rows.Err()
}
