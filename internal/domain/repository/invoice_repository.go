package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/entity"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/finance"
)

// ReplayableLine est la projection d'une ligne de document non annulé,
// consommée par le replay du ledger (flux chronologique).
type ReplayableLine struct {
	InvoiceID   string
	InvoiceType string // FACTURE ou AVOIR
	Number      string
	ProductID   string
	Quantity    decimal.Decimal
	Date        time.Time // date de gestion du document
	CreatedAt   time.Time // horodatage de création d'origine (tie-break)
	Actor       string
}

// InvoiceRepository définit le port de persistance des factures et avoirs.
// Les mutations sont des opérations nommées et typées, jamais de mise à jour
// générique colonne/valeur.
type InvoiceRepository interface {
	Create(inv *entity.Invoice) error
	CreateLine(line *entity.InvoiceLine) error
	GetByID(id string) (*entity.Invoice, error)
	GetLines(invoiceID string) ([]*entity.InvoiceLine, error)
	DeleteLines(invoiceID string) error
	List(clientID string, limit int) ([]*entity.Invoice, error)

	UpdateTotals(id string, totals finance.Totals, updatedAt time.Time) error
	UpdateStatus(id, status string, updatedAt time.Time) error
	UpdateCreditStatus(id, creditStatus string) error
	// ZeroOut met à zéro les totaux de la facture et les montants/quantités de
	// toutes ses lignes, pose le statut ANNULEE et le motif. Chemin d'annulation.
	ZeroOut(id, motif string, updatedAt time.Time) error

	// SumCreditNotesTTC retourne le cumul TTC des avoirs non annulés visant la facture d'origine.
	SumCreditNotesTTC(originInvoiceID string) (decimal.Decimal, error)
	// SumTTCByClientAfterYear cumule le TTC des documents non annulés d'un type,
	// pour un client, dont l'exercice est strictement postérieur à afterYear
	// (afterYear=0 : depuis l'origine).
	SumTTCByClientAfterYear(clientID, docType string, afterYear int) (decimal.Decimal, error)
	SumTTCByClientInYear(clientID, docType string, year int) (decimal.Decimal, error)

	// ListReplayableLines retourne les lignes de tous les documents non annulés,
	// ordonnées par date de gestion puis date de création.
	ListReplayableLines() ([]*ReplayableLine, error)
}
