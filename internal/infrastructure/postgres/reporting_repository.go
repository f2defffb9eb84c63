package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/entity"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/repository"
)

var _ repository.ReportingRepository = (*ReportingRepo)(nil)

// ReportingRepo projections en lecture seule pour les états.
// Agrégation SQL pure, documents annulés exclus.
type ReportingRepo struct {
	pool *pgxpool.Pool
}

// NewReportingRepository construit l'adaptateur de reporting.
func NewReportingRepository(pool *pgxpool.Pool) *ReportingRepo {
	return &ReportingRepo{pool: pool}
}

// DailySales agrège les ventes facturées par jour de gestion sur la période.
func (r *ReportingRepo) DailySales(from, to time.Time) ([]*repository.DailySalesRow, error) {
	const query = `
		SELECT date::date,
		       COALESCE(SUM(total_ht), 0)  AS total_ht,
		       COALESCE(SUM(total_tva), 0) AS total_tva,
		       COALESCE(SUM(total_ttc), 0) AS total_ttc,
		       COUNT(*)                     AS count
		FROM invoices
		WHERE type = $1 AND status <> $2 AND date BETWEEN $3 AND $4
		GROUP BY date::date
		ORDER BY date::date`
	rows, err := r.pool.Query(context.Background(), query,
		entity.DocFacture, entity.StatusAnnulee, from, to)
	if err != nil {
		return nil, fmt.Errorf("reporting.DailySales: %w", err)
	}
	defer rows.Close()

	var results []*repository.DailySalesRow
	for rows.Next() {
		var row repository.DailySalesRow
		if err := rows.Scan(&row.Date, &row.TotalHT, &row.TotalTVA, &row.TotalTTC, &row.Count); err != nil {
			return nil, fmt.Errorf("reporting.DailySales scan: %w", err)
		}
		results = append(results, &row)
	}
	return results, rows.Err()
}

// ProductMovements agrège entrées et sorties de stock par produit sur la période.
func (r *ReportingRepo) ProductMovements(from, to time.Time) ([]*repository.ProductMovementRow, error) {
	const query = `
		SELECT m.product_id,
		       p.name,
		       COALESCE(SUM(CASE WHEN m.quantity > 0 THEN m.quantity ELSE 0 END), 0) AS entrees,
		       COALESCE(SUM(CASE WHEN m.quantity < 0 THEN -m.quantity ELSE 0 END), 0) AS sorties
		FROM stock_movements m
		JOIN products p ON p.id = m.product_id
		WHERE m.date BETWEEN $1 AND $2
		GROUP BY m.product_id, p.name
		ORDER BY p.name`
	rows, err := r.pool.Query(context.Background(), query, from, to)
	if err != nil {
		return nil, fmt.Errorf("reporting.ProductMovements: %w", err)
	}
	defer rows.Close()

	var results []*repository.ProductMovementRow
	for rows.Next() {
		var row repository.ProductMovementRow
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.Entrees, &row.Sorties); err != nil {
			return nil, fmt.Errorf("reporting.ProductMovements scan: %w", err)
		}
		results = append(results, &row)
	}
	return results, rows.Err()
}
