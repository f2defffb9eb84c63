package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/entity"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/finance"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implémentation du port InvoiceRepository sur PostgreSQL (pool ou tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construit l'adaptateur factures/avoirs. Passer pool ou tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, number, type, date, client_id, origin_invoice_id, contract_id, terms, total_ht, total_tva, total_ttc, status, credit_status, cancel_motif, motif, created_at, updated_at, created_by`

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := row.Scan(
		&inv.ID, &inv.Number, &inv.Type, &inv.Date, &inv.ClientID, &inv.OriginInvoiceID,
		&inv.ContractID, &inv.Terms, &inv.TotalHT, &inv.TotalTVA, &inv.TotalTTC,
		&inv.Status, &inv.CreditStatus, &inv.CancelMotif, &inv.Motif,
		&inv.CreatedAt, &inv.UpdatedAt, &inv.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// Create persiste l'en-tête d'un document.
func (r *InvoiceRepo) Create(inv *entity.Invoice) error {
	query := `
		INSERT INTO invoices (id, number, type, date, client_id, origin_invoice_id, contract_id, terms, total_ht, total_tva, total_ttc, status, credit_status, cancel_motif, motif, created_at, updated_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.Number, inv.Type, inv.Date, inv.ClientID, inv.OriginInvoiceID,
		inv.ContractID, inv.Terms, inv.TotalHT, inv.TotalTVA, inv.TotalTTC,
		inv.Status, inv.CreditStatus, inv.CancelMotif, inv.Motif,
		inv.CreatedAt, inv.UpdatedAt, inv.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateLine persiste une ligne de document.
func (r *InvoiceRepo) CreateLine(line *entity.InvoiceLine) error {
	query := `
		INSERT INTO invoice_lines (id, invoice_id, product_id, quantity, prix_catalogue, remise_pct, prix_net, montant_ht)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.InvoiceID, line.ProductID, line.Quantity,
		line.PrixCatalogue, line.RemisePct, line.PrixNet, line.MontantHT,
	)
	if err != nil {
		return fmt.Errorf("insert invoice line: %w", err)
	}
	return nil
}

// GetByID obtient un document par ID.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	inv, err := scanInvoice(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// GetLines retourne les lignes d'un document.
func (r *InvoiceRepo) GetLines(invoiceID string) ([]*entity.InvoiceLine, error) {
	query := `
		SELECT id, invoice_id, product_id, quantity, prix_catalogue, remise_pct, prix_net, montant_ht
		FROM invoice_lines WHERE invoice_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("get invoice lines: %w", err)
	}
	defer rows.Close()

	var lines []*entity.InvoiceLine
	for rows.Next() {
		var l entity.InvoiceLine
		if err := rows.Scan(
			&l.ID, &l.InvoiceID, &l.ProductID, &l.Quantity,
			&l.PrixCatalogue, &l.RemisePct, &l.PrixNet, &l.MontantHT,
		); err != nil {
			return nil, fmt.Errorf("scan invoice line: %w", err)
		}
		lines = append(lines, &l)
	}
	return lines, rows.Err()
}

// DeleteLines supprime les lignes d'un document (réédition de brouillon).
func (r *InvoiceRepo) DeleteLines(invoiceID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM invoice_lines WHERE invoice_id = $1`, invoiceID)
	if err != nil {
		return fmt.Errorf("delete invoice lines: %w", err)
	}
	return nil
}

// List retourne les documents, filtrés par client si clientID est non vide.
func (r *InvoiceRepo) List(clientID string, limit int) ([]*entity.Invoice, error) {
	var rows pgx.Rows
	var err error
	if clientID != "" {
		query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE client_id = $1 ORDER BY date DESC, created_at DESC LIMIT $2`
		rows, err = r.q.Query(context.Background(), query, clientID, limit)
	} else {
		query := `SELECT ` + invoiceColumns + ` FROM invoices ORDER BY date DESC, created_at DESC LIMIT $1`
		rows, err = r.q.Query(context.Background(), query, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

// UpdateTotals écrit les totaux HT/TVA/TTC du document.
func (r *InvoiceRepo) UpdateTotals(id string, totals finance.Totals, updatedAt time.Time) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE invoices SET total_ht = $2, total_tva = $3, total_ttc = $4, updated_at = $5 WHERE id = $1`,
		id, totals.HT, totals.TVA, totals.TTC, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice totals: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus change le statut du cycle de vie.
func (r *InvoiceRepo) UpdateStatus(id, status string, updatedAt time.Time) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE invoices SET status = $2, updated_at = $3 WHERE id = $1`,
		id, status, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateCreditStatus écrit le sous-statut dérivé des avoirs cumulés.
func (r *InvoiceRepo) UpdateCreditStatus(id, creditStatus string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE invoices SET credit_status = $2 WHERE id = $1`,
		id, creditStatus,
	)
	if err != nil {
		return fmt.Errorf("update credit status: %w", err)
	}
	return nil
}

// ZeroOut met à zéro totaux et lignes, pose ANNULEE et le motif. Chemin d'annulation.
func (r *InvoiceRepo) ZeroOut(id, motif string, updatedAt time.Time) error {
	cmd, err := r.q.Exec(context.Background(), `
		UPDATE invoices SET total_ht = 0, total_tva = 0, total_ttc = 0,
			status = $2, cancel_motif = $3, updated_at = $4
		WHERE id = $1`,
		id, entity.StatusAnnulee, motif, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("zero out invoice: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	_, err = r.q.Exec(context.Background(), `
		UPDATE invoice_lines SET quantity = 0, montant_ht = 0 WHERE invoice_id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("zero out invoice lines: %w", err)
	}
	return nil
}

// SumCreditNotesTTC cumule le TTC des avoirs non annulés visant la facture d'origine.
func (r *InvoiceRepo) SumCreditNotesTTC(originInvoiceID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(), `
		SELECT COALESCE(SUM(total_ttc), 0) FROM invoices
		WHERE type = $1 AND origin_invoice_id = $2 AND status <> $3`,
		entity.DocAvoir, originInvoiceID, entity.StatusAnnulee,
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum credit notes: %w", err)
	}
	return sum, nil
}

// SumTTCByClientAfterYear cumule le TTC des documents non annulés d'un type pour
// un client, exercice strictement postérieur à afterYear (0 = depuis l'origine).
func (r *InvoiceRepo) SumTTCByClientAfterYear(clientID, docType string, afterYear int) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(), `
		SELECT COALESCE(SUM(total_ttc), 0) FROM invoices
		WHERE client_id = $1 AND type = $2 AND status <> $3
		  AND EXTRACT(YEAR FROM date)::int > $4`,
		clientID, docType, entity.StatusAnnulee, afterYear,
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum invoices after year: %w", err)
	}
	return sum, nil
}

// SumTTCByClientInYear cumule le TTC des documents non annulés d'un type pour un
// client sur un exercice donné.
func (r *InvoiceRepo) SumTTCByClientInYear(clientID, docType string, year int) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(), `
		SELECT COALESCE(SUM(total_ttc), 0) FROM invoices
		WHERE client_id = $1 AND type = $2 AND status <> $3
		  AND EXTRACT(YEAR FROM date)::int = $4`,
		clientID, docType, entity.StatusAnnulee, year,
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum invoices in year: %w", err)
	}
	return sum, nil
}

// ListReplayableLines retourne les lignes de tous les documents non annulés,
// dans l'ordre chronologique du replay.
func (r *InvoiceRepo) ListReplayableLines() ([]*repository.ReplayableLine, error) {
	query := `
		SELECT i.id, i.type, i.number, l.product_id, l.quantity, i.date, i.created_at, i.created_by
		FROM invoices i
		JOIN invoice_lines l ON l.invoice_id = i.id
		WHERE i.status <> $1
		ORDER BY i.date, i.created_at, l.id`
	rows, err := r.q.Query(context.Background(), query, entity.StatusAnnulee)
	if err != nil {
		return nil, fmt.Errorf("list replayable lines: %w", err)
	}
	defer rows.Close()

	var lines []*repository.ReplayableLine
	for rows.Next() {
		var l repository.ReplayableLine
		if err := rows.Scan(
			&l.InvoiceID, &l.InvoiceType, &l.Number, &l.ProductID,
			&l.Quantity, &l.Date, &l.CreatedAt, &l.Actor,
		); err != nil {
			return nil, fmt.Errorf("scan replayable line: %w", err)
		}
		lines = append(lines, &l)
	}
	return lines, rows.Err()
}
