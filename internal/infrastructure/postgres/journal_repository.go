package postgres

import (
	"context"
	"fmt"

	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/entity"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/repository"
)

var _ repository.JournalRepository = (*JournalRepo)(nil)

// JournalRepo implémentation du journal des annulations sur PostgreSQL (pool ou tx).
type JournalRepo struct {
	q Querier
}

// NewJournalRepository construit l'adaptateur du journal. Passer pool ou tx (Querier).
func NewJournalRepository(q Querier) *JournalRepo {
	return &JournalRepo{q: q}
}

// CreateRecord persiste une entrée du journal des annulations.
func (r *JournalRepo) CreateRecord(rec *entity.CancellationRecord) error {
	query := `
		INSERT INTO cancellation_records (id, invoice_id, original_ht, original_ttc, motif, actor, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		rec.ID, rec.InvoiceID, rec.OriginalHT, rec.OriginalTTC, rec.Motif, rec.Actor, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert cancellation record: %w", err)
	}
	return nil
}

// CreateLine persiste le détail de re-créditation d'une ligne annulée.
func (r *JournalRepo) CreateLine(l *entity.CancellationLine) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO cancellation_lines (record_id, product_id, qty_restored) VALUES ($1, $2, $3)`,
		l.RecordID, l.ProductID, l.QtyRestored,
	)
	if err != nil {
		return fmt.Errorf("insert cancellation line: %w", err)
	}
	return nil
}

// ListByInvoice retourne les entrées du journal visant une facture.
func (r *JournalRepo) ListByInvoice(invoiceID string) ([]*entity.CancellationRecord, error) {
	query := `
		SELECT id, invoice_id, original_ht, original_ttc, motif, actor, created_at
		FROM cancellation_records WHERE invoice_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list cancellation records: %w", err)
	}
	defer rows.Close()

	var records []*entity.CancellationRecord
	for rows.Next() {
		var rec entity.CancellationRecord
		if err := rows.Scan(
			&rec.ID, &rec.InvoiceID, &rec.OriginalHT, &rec.OriginalTTC,
			&rec.Motif, &rec.Actor, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan cancellation record: %w", err)
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}
