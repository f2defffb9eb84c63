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

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implémentation du port PaymentRepository sur PostgreSQL (pool ou tx).
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construit l'adaptateur règlements. Passer pool ou tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

const paymentColumns = `id, client_id, invoice_id, amount, mode, reference, bordereau_id, status, date, created_at, created_by`

func scanPayment(row pgx.Row) (*entity.Payment, error) {
	var p entity.Payment
	err := row.Scan(
		&p.ID, &p.ClientID, &p.InvoiceID, &p.Amount, &p.Mode, &p.Reference,
		&p.BordereauID, &p.Status, &p.Date, &p.CreatedAt, &p.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un règlement.
func (r *PaymentRepo) Create(p *entity.Payment) error {
	query := `
		INSERT INTO payments (id, client_id, invoice_id, amount, mode, reference, bordereau_id, status, date, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.ClientID, p.InvoiceID, p.Amount, p.Mode, p.Reference,
		p.BordereauID, p.Status, p.Date, p.CreatedAt, p.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// GetByID obtient un règlement par ID.
func (r *PaymentRepo) GetByID(id string) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	p, err := scanPayment(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return p, nil
}

// ListByClient retourne les règlements d'un client, les plus récents d'abord.
func (r *PaymentRepo) ListByClient(clientID string, limit int) ([]*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE client_id = $1 ORDER BY date DESC, created_at DESC LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, clientID, limit)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var payments []*entity.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// SumByClientAfterYear cumule les règlements d'un client dont l'exercice est
// strictement postérieur à afterYear (0 = depuis l'origine).
func (r *PaymentRepo) SumByClientAfterYear(clientID string, afterYear int) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(), `
		SELECT COALESCE(SUM(amount), 0) FROM payments
		WHERE client_id = $1 AND EXTRACT(YEAR FROM date)::int > $2`,
		clientID, afterYear,
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum payments after year: %w", err)
	}
	return sum, nil
}

// SumByClientInYear cumule les règlements d'un client sur un exercice donné.
func (r *PaymentRepo) SumByClientInYear(clientID string, year int) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(), `
		SELECT COALESCE(SUM(amount), 0) FROM payments
		WHERE client_id = $1 AND EXTRACT(YEAR FROM date)::int = $2`,
		clientID, year,
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum payments in year: %w", err)
	}
	return sum, nil
}

// CreateBordereau persiste un bordereau de remise en banque.
func (r *PaymentRepo) CreateBordereau(b *entity.Bordereau) error {
	query := `
		INSERT INTO bordereaux (id, number, bank, total, date, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		b.ID, b.Number, b.Bank, b.Total, b.Date, b.CreatedAt, b.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert bordereau: %w", err)
	}
	return nil
}

// AttachToBordereau rattache des paiements au bordereau et les passe ENCAISSE.
func (r *PaymentRepo) AttachToBordereau(bordereauID string, paymentIDs []string) error {
	cmd, err := r.q.Exec(context.Background(), `
		UPDATE payments SET bordereau_id = $1, status = $2 WHERE id = ANY($3)`,
		bordereauID, entity.PaymentEncaisse, paymentIDs,
	)
	if err != nil {
		return fmt.Errorf("attach payments: %w", err)
	}
	if int(cmd.RowsAffected()) != len(paymentIDs) {
		return domain.ErrNotFound
	}
	return nil
}
