package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/application/ports"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/entity"
)

// PaymentUseCase enregistre les règlements clients et les bordereaux de
// remise en banque.
type PaymentUseCase struct {
	txRunner       ports.TxRunner
	plafondEspeces decimal.Decimal
}

// NewPaymentUseCase construit le cas d'usage.
func NewPaymentUseCase(txRunner ports.TxRunner, plafondEspeces decimal.Decimal) *PaymentUseCase {
	return &PaymentUseCase{txRunner: txRunner, plafondEspeces: plafondEspeces}
}

// RecordPaymentInput entrée d'enregistrement d'un règlement.
// InvoiceID nul = avance non affectée.
type RecordPaymentInput struct {
	ClientID  string
	InvoiceID *string
	Amount    decimal.Decimal
	Mode      string
	Reference string
	Date      time.Time
	Actor     string
}

// RecordPayment valide et persiste un règlement, puis rafraîchit le solde
// mis en cache du client. Espèces au-dessus du plafond réglementaire et modes
// encadrés sans référence sont rejetés avant persistance.
func (uc *PaymentUseCase) RecordPayment(ctx context.Context, in RecordPaymentInput) (*entity.Payment, error) {
	if in.ClientID == "" || !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	switch in.Mode {
	case entity.ModeEspeces:
		if in.Amount.GreaterThan(uc.plafondEspeces) {
			return nil, &domain.CashCeilingError{Amount: in.Amount, Ceiling: uc.plafondEspeces}
		}
	case entity.ModeCheque, entity.ModeVirement, entity.ModeVersement:
		if in.Reference == "" {
			return nil, domain.ErrInvalidInput
		}
	default:
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	date := in.Date
	if date.IsZero() {
		date = now
	}
	status := entity.PaymentEnAttente
	if in.Mode == entity.ModeEspeces {
		status = entity.PaymentEncaisse
	}
	payment := &entity.Payment{
		ID:        uuid.New().String(),
		ClientID:  in.ClientID,
		InvoiceID: in.InvoiceID,
		Amount:    in.Amount,
		Mode:      in.Mode,
		Reference: in.Reference,
		Status:    status,
		Date:      date,
		CreatedAt: now,
		CreatedBy: in.Actor,
	}

	err := uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		client, err := r.Clients.GetByID(in.ClientID)
		if err != nil {
			return err
		}
		if client == nil || !client.Active {
			return domain.ErrNotFound
		}
		if in.InvoiceID != nil && *in.InvoiceID != "" {
			inv, err := r.Invoices.GetByID(*in.InvoiceID)
			if err != nil {
				return err
			}
			if inv == nil || inv.ClientID != client.ID {
				return domain.ErrNotFound
			}
			if inv.Status == entity.StatusAnnulee {
				return domain.ErrAlreadyCancelled
			}
		}
		if err := r.Payments.Create(payment); err != nil {
			return err
		}
		return refreshSoldeCache(r, client)
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// CreateBordereauInput entrée de création d'un bordereau de remise en banque.
type CreateBordereauInput struct {
	Bank       string
	PaymentIDs []string
	Date       time.Time
	Actor      string
}

// CreateBordereau regroupe des paiements (chèques, versements) sur un
// bordereau numéroté, cumule leur total et les passe ENCAISSE.
func (uc *PaymentUseCase) CreateBordereau(ctx context.Context, in CreateBordereauInput) (*entity.Bordereau, error) {
	if in.Bank == "" || len(in.PaymentIDs) == 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	date := in.Date
	if date.IsZero() {
		date = now
	}

	var bordereau *entity.Bordereau
	err := uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		total := decimal.Zero
		for _, id := range in.PaymentIDs {
			p, err := r.Payments.GetByID(id)
			if err != nil {
				return err
			}
			if p == nil {
				return domain.ErrNotFound
			}
			if p.Mode == entity.ModeEspeces || p.BordereauID != nil {
				return domain.ErrInvalidInput
			}
			total = total.Add(p.Amount)
		}

		seq, err := r.Sequences.Next("BORDEREAU", date.Year())
		if err != nil {
			return err
		}
		bordereau = &entity.Bordereau{
			ID:        uuid.New().String(),
			Number:    fmt.Sprintf("%03d/%d", seq, date.Year()),
			Bank:      in.Bank,
			Total:     total,
			Date:      date,
			CreatedAt: now,
			CreatedBy: in.Actor,
		}
		if err := r.Payments.CreateBordereau(bordereau); err != nil {
			return err
		}
		return r.Payments.AttachToBordereau(bordereau.ID, in.PaymentIDs)
	})
	if err != nil {
		return nil, err
	}
	return bordereau, nil
}
