package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product représente un produit du catalogue du dépôt.
// StockActuel est un champ dérivé : seul le livre des mouvements (ledger) le modifie.
// ParentStockID non nul = variante de prix/conditionnement dont le stock physique
// appartient au produit parent ; son propre StockActuel ne fait pas foi.
type Product struct {
	ID            string
	Name          string
	Unit          string          // sac, tonne, palette...
	PrixCatalogue decimal.Decimal // prix de vente catalogue
	PrixRevient   decimal.Decimal // prix de revient
	TauxTVA       decimal.Decimal // en % : 0, 9, 19
	StockInitial  decimal.Decimal
	StockActuel   decimal.Decimal // dérivé, écrit uniquement par le ledger
	ParentStockID *string         // auto-référence vers le propriétaire du stock physique
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ProductPatch énumère les champs modifiables d'un produit (nil = inchangé).
// StockInitial/StockActuel n'y figurent pas : le stock ne se modifie que par le ledger.
type ProductPatch struct {
	Name          *string
	Unit          *string
	PrixCatalogue *decimal.Decimal
	PrixRevient   *decimal.Decimal
	TauxTVA       *decimal.Decimal
	ParentStockID *string
	Active        *bool
}
