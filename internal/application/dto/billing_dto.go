package dto

import (
	"github.com/shopspring/decimal"

	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/entity"
)

// InvoiceLineRequest ligne saisie d'une facture ou d'un avoir (quantité positive).
type InvoiceLineRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity"`
	RemisePct decimal.Decimal `json:"remise_pct"`
}

// CreateInvoiceRequest body pour POST /api/invoices.
// Terms obligatoire pour une FACTURE ; origin_invoice_id et motif pour un AVOIR.
type CreateInvoiceRequest struct {
	Type            string               `json:"type" validate:"required,oneof=FACTURE AVOIR"`
	ClientID        string               `json:"client_id" validate:"required"`
	Date            string               `json:"date" validate:"required"`
	Lines           []InvoiceLineRequest `json:"lines" validate:"required,min=1,dive"`
	Terms           string               `json:"terms,omitempty" validate:"omitempty,oneof=COMPTANT A_TERME SUR_AVANCE"`
	OriginInvoiceID *string              `json:"origin_invoice_id,omitempty"`
	Motif           string               `json:"motif,omitempty"`
	ContractID      *string              `json:"contract_id,omitempty"`
	PaymentMode     string               `json:"payment_mode,omitempty" validate:"omitempty,oneof=ESPECES CHEQUE VIREMENT VERSEMENT"`
	PaymentRef      string               `json:"payment_ref,omitempty"`
}

// UpdateDraftRequest body pour PUT /api/invoices/:id/lines (brouillon uniquement).
type UpdateDraftRequest struct {
	Lines []InvoiceLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// CancelInvoiceRequest body pour POST /api/invoices/:id/cancel.
type CancelInvoiceRequest struct {
	Motif string `json:"motif" validate:"required"`
}

// InvoiceLineResponse ligne de document en réponse.
type InvoiceLineResponse struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	PrixCatalogue decimal.Decimal `json:"prix_catalogue"`
	RemisePct     decimal.Decimal `json:"remise_pct"`
	PrixNet       decimal.Decimal `json:"prix_net"`
	MontantHT     decimal.Decimal `json:"montant_ht"`
}

// InvoiceResponse document avec lignes pour GET /api/invoices/:id.
type InvoiceResponse struct {
	ID              string                `json:"id"`
	Number          string                `json:"number"`
	Type            string                `json:"type"`
	Date            string                `json:"date"`
	ClientID        string                `json:"client_id"`
	OriginInvoiceID *string               `json:"origin_invoice_id,omitempty"`
	ContractID      *string               `json:"contract_id,omitempty"`
	Terms           string                `json:"terms,omitempty"`
	TotalHT         decimal.Decimal       `json:"total_ht"`
	TotalTVA        decimal.Decimal       `json:"total_tva"`
	TotalTTC        decimal.Decimal       `json:"total_ttc"`
	Status          string                `json:"status"`
	CreditStatus    string                `json:"credit_status,omitempty"`
	CancelMotif     string                `json:"cancel_motif,omitempty"`
	Motif           string                `json:"motif,omitempty"`
	CreatedBy       string                `json:"created_by"`
	Lines           []InvoiceLineResponse `json:"lines,omitempty"`
}

// FromInvoice convertit l'entité en réponse, lignes incluses si fournies.
func FromInvoice(inv *entity.Invoice, lines []*entity.InvoiceLine) InvoiceResponse {
	out := InvoiceResponse{
		ID:              inv.ID,
		Number:          inv.Number,
		Type:            inv.Type,
		Date:            inv.Date.Format("2006-01-02"),
		ClientID:        inv.ClientID,
		OriginInvoiceID: inv.OriginInvoiceID,
		ContractID:      inv.ContractID,
		Terms:           inv.Terms,
		TotalHT:         inv.TotalHT,
		TotalTVA:        inv.TotalTVA,
		TotalTTC:        inv.TotalTTC,
		Status:          inv.Status,
		CreditStatus:    inv.CreditStatus,
		CancelMotif:     inv.CancelMotif,
		Motif:           inv.Motif,
		CreatedBy:       inv.CreatedBy,
	}
	for _, l := range lines {
		out.Lines = append(out.Lines, InvoiceLineResponse{
			ID:            l.ID,
			ProductID:     l.ProductID,
			Quantity:      l.Quantity,
			PrixCatalogue: l.PrixCatalogue,
			RemisePct:     l.RemisePct,
			PrixNet:       l.PrixNet,
			MontantHT:     l.MontantHT,
		})
	}
	return out
}

// RecordPaymentRequest body pour POST /api/payments.
type RecordPaymentRequest struct {
	ClientID  string          `json:"client_id" validate:"required"`
	InvoiceID *string         `json:"invoice_id,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Mode      string          `json:"mode" validate:"required,oneof=ESPECES CHEQUE VIREMENT VERSEMENT"`
	Reference string          `json:"reference,omitempty"`
	Date      string          `json:"date" validate:"required"`
}

// PaymentResponse règlement en réponse.
type PaymentResponse struct {
	ID          string          `json:"id"`
	ClientID    string          `json:"client_id"`
	InvoiceID   *string         `json:"invoice_id,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Mode        string          `json:"mode"`
	Reference   string          `json:"reference,omitempty"`
	BordereauID *string         `json:"bordereau_id,omitempty"`
	Status      string          `json:"status"`
	Date        string          `json:"date"`
	CreatedBy   string          `json:"created_by"`
}

// FromPayment convertit l'entité en réponse.
func FromPayment(p *entity.Payment) PaymentResponse {
	return PaymentResponse{
		ID:          p.ID,
		ClientID:    p.ClientID,
		InvoiceID:   p.InvoiceID,
		Amount:      p.Amount,
		Mode:        p.Mode,
		Reference:   p.Reference,
		BordereauID: p.BordereauID,
		Status:      p.Status,
		Date:        p.Date.Format("2006-01-02"),
		CreatedBy:   p.CreatedBy,
	}
}

// CreateBordereauRequest body pour POST /api/bordereaux.
type CreateBordereauRequest struct {
	Bank       string   `json:"bank" validate:"required"`
	PaymentIDs []string `json:"payment_ids" validate:"required,min=1"`
	Date       string   `json:"date" validate:"required"`
}

// BordereauResponse bordereau en réponse.
type BordereauResponse struct {
	ID        string          `json:"id"`
	Number    string          `json:"number"`
	Bank      string          `json:"bank"`
	Total     decimal.Decimal `json:"total"`
	Date      string          `json:"date"`
	CreatedBy string          `json:"created_by"`
}

// FromBordereau convertit l'entité en réponse.
func FromBordereau(b *entity.Bordereau) BordereauResponse {
	return BordereauResponse{
		ID:        b.ID,
		Number:    b.Number,
		Bank:      b.Bank,
		Total:     b.Total,
		Date:      b.Date.Format("2006-01-02"),
		CreatedBy: b.CreatedBy,
	}
}

// BalanceResponse solde courant recalculé d'un client.
type BalanceResponse struct {
	ClientID string          `json:"client_id"`
	Balance  decimal.Decimal `json:"balance"`
}
