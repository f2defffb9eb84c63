package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Natures de mouvement de stock.
const (
	MovementReception         = "RECEPTION"            // entrée sur réception "sur stock"
	MovementVente             = "VENTE"                // sortie sur ligne de facture (quantité négative)
	MovementRetourAvoir       = "RETOUR_AVOIR"         // retour sur ligne d'avoir (quantité positive)
	MovementAnnulationVente   = "ANNULATION_VENTE"     // compensation d'une facture annulée (positive)
	MovementAnnulationReception = "ANNULATION_RECEPTION" // contre-passation d'une réception supprimée
	MovementCorrectionManuelle = "CORRECTION_MANUELLE"  // ajustement explicite (reversion de brouillon, inventaire)
)

// StockMovement est une écriture du livre de stock, immuable une fois créée.
// ProductID est toujours le produit propriétaire du stock (parent ou autonome) ;
// les corrections passent par des écritures compensatoires, jamais par mutation.
type StockMovement struct {
	ID          string
	ProductID   string          // produit résolu (jamais un enfant)
	Kind        string          // l'une des constantes Movement*
	Quantity    decimal.Decimal // delta signé
	Reference   string          // texte libre, mentionne le produit enfant d'origine le cas échéant
	DocumentID  string          // document à l'origine du mouvement (facture, avoir, réception)
	StockBefore decimal.Decimal
	StockAfter  decimal.Decimal
	Actor       string // username de l'opérateur
	Date        time.Time // date de gestion (jour métier)
	CreatedAt   time.Time
}
