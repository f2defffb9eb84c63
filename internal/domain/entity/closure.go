package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// AnnualClosure est l'instantané de clôture d'exercice, unique par année et permanent.
// Il fige stocks et soldes, et alimente le report à nouveau des clients.
type AnnualClosure struct {
	ID       string
	Year     int
	ClosedAt time.Time
	ClosedBy string
}

// ClosureStockLine fige le stock d'un produit à la clôture.
type ClosureStockLine struct {
	ClosureID string
	ProductID string
	Stock     decimal.Decimal
}

// ClosureBalanceLine fige le solde d'un client à la clôture.
type ClosureBalanceLine struct {
	ClosureID string
	ClientID  string
	Balance   decimal.Decimal
}
