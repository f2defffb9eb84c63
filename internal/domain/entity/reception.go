package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Destinations d'une réception.
const (
	DestinationSurStock    = "SUR_STOCK"    // entre au dépôt : génère un mouvement de stock
	DestinationSurChantier = "SUR_CHANTIER" // livrée directement sur site : aucun mouvement
)

// Reception représente un bon de livraison entrant.
// Un écart entre annoncé et reçu exige un motif.
type Reception struct {
	ID           string
	ProductID    string
	Reference    string // n° de bon de livraison fournisseur
	QtyAnnounced decimal.Decimal
	QtyReceived  decimal.Decimal
	EcartMotif   string // obligatoire si QtyReceived != QtyAnnounced
	Destination  string // SUR_STOCK ou SUR_CHANTIER
	Date         time.Time
	CreatedAt    time.Time
	CreatedBy    string
}

// Ecart retourne reçu - annoncé.
func (r *Reception) Ecart() decimal.Decimal {
	return r.QtyReceived.Sub(r.QtyAnnounced)
}
