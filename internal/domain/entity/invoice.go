package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Types de document commercial.
const (
	DocFacture = "FACTURE"
	DocAvoir   = "AVOIR" // toujours rattaché à une facture d'origine
)

// Statuts du cycle de vie d'une facture.
// BROUILLON -> CONFIRMEE (verrouillée) -> ANNULEE (irréversible, compensation).
const (
	StatusBrouillon = "BROUILLON"
	StatusConfirmee = "CONFIRMEE"
	StatusAnnulee   = "ANNULEE"
)

// Modalités de vente.
const (
	TermsComptant  = "COMPTANT"   // règlement immédiat, paiement créé dans la même transaction
	TermsATerme    = "A_TERME"    // à crédit, soumis au seuil de crédit
	TermsSurAvance = "SUR_AVANCE" // imputé sur l'avance du client
)

// Sous-statut informatif d'une facture visée par des avoirs.
const (
	CreditPartiel = "PARTIELLEMENT_UTILISEE"
	CreditTotal   = "TOTALEMENT_UTILISEE"
)

// Invoice représente une facture ou un avoir (distingués par Type).
// Une fois confirmée, elle n'est plus mutée que par le chemin d'annulation.
type Invoice struct {
	ID              string
	Number          string // séquence monotone NNN/AAAA par type et par exercice
	Type            string // FACTURE ou AVOIR
	Date            time.Time
	ClientID        string
	OriginInvoiceID *string // AVOIR uniquement
	ContractID      *string
	Terms           string // COMPTANT, A_TERME, SUR_AVANCE
	TotalHT         decimal.Decimal
	TotalTVA        decimal.Decimal
	TotalTTC        decimal.Decimal
	Status          string
	CreditStatus    string // dérivé des avoirs cumulés contre cette facture ("" si aucun)
	CancelMotif     string // renseigné à l'annulation
	Motif           string // motif de l'avoir
	CreatedAt       time.Time
	UpdatedAt       time.Time
	CreatedBy       string
}

// InvoiceLine est une ligne de facture ou d'avoir.
// Prix catalogue, remise et prix net sont conservés pour l'audit et la réimpression.
type InvoiceLine struct {
	ID            string
	InvoiceID     string
	ProductID     string
	Quantity      decimal.Decimal // négative pour une ligne d'avoir
	PrixCatalogue decimal.Decimal
	RemisePct     decimal.Decimal // taux de remise en %
	PrixNet       decimal.Decimal // catalogue * (1 - remise/100)
	MontantHT     decimal.Decimal // arrondi à 2 décimales au niveau ligne
}
