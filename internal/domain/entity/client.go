package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client représente un client du dépôt.
// SoldeCourant est un cache de confort : la valeur faisant foi est toujours
// recalculée (voir billing.RunningBalance). Positif = avance, négatif = dette.
type Client struct {
	ID             string
	Name           string
	NIF            string // identifiant fiscal
	Address        string
	Phone          string
	SeuilCredit    decimal.Decimal // dette maximale tolérée en A_TERME
	ReportANouveau decimal.Decimal // solde reporté de l'exercice précédent (clôture)
	SoldeCourant   decimal.Decimal // cache, rafraîchi après chaque opération engageante
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ClientPatch énumère les champs modifiables d'un client (nil = inchangé).
// ReportANouveau n'y figure pas : seule la clôture annuelle l'écrit.
type ClientPatch struct {
	Name        *string
	NIF         *string
	Address     *string
	Phone       *string
	SeuilCredit *decimal.Decimal
	Active      *bool
}
