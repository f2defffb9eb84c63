package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CancellationRecord est une entrée du journal des annulations, immuable.
// Elle conserve les montants d'origine de la facture avant leur mise à zéro.
type CancellationRecord struct {
	ID         string
	InvoiceID  string
	OriginalHT decimal.Decimal
	OriginalTTC decimal.Decimal
	Motif      string
	Actor      string
	CreatedAt  time.Time
}

// CancellationLine détaille la re-créditation de stock d'une ligne annulée.
type CancellationLine struct {
	RecordID    string
	ProductID   string // produit résolu (parent ou autonome)
	QtyRestored decimal.Decimal
}
