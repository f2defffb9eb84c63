package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Modes de règlement.
const (
	ModeEspeces   = "ESPECES"
	ModeCheque    = "CHEQUE"
	ModeVirement  = "VIREMENT"
	ModeVersement = "VERSEMENT" // versement bancaire direct
)

// Statuts d'encaissement d'un paiement.
const (
	PaymentEnAttente = "EN_ATTENTE" // chèque/virement non encore encaissé
	PaymentEncaisse  = "ENCAISSE"
)

// Payment représente un règlement client.
// InvoiceID nul = avance (paiement non affecté à une facture).
type Payment struct {
	ID          string
	ClientID    string
	InvoiceID   *string
	Amount      decimal.Decimal
	Mode        string
	Reference   string  // n° de chèque ou de virement, obligatoire hors espèces
	BordereauID *string // renseigné quand le paiement est remis en banque
	Status      string
	Date        time.Time
	CreatedAt   time.Time
	CreatedBy   string
}

// Bordereau regroupe des paiements (chèques, versements) remis en banque.
type Bordereau struct {
	ID        string
	Number    string
	Bank      string
	Total     decimal.Decimal
	Date      time.Time
	CreatedAt time.Time
	CreatedBy string
}
