package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailySalesRow est une ligne d'agrégat journalier des ventes.
type DailySalesRow struct {
	Date     time.Time
	TotalHT  decimal.Decimal
	TotalTVA decimal.Decimal
	TotalTTC decimal.Decimal
	Count    int
}

// ProductMovementRow est un agrégat de mouvements par produit sur une période.
type ProductMovementRow struct {
	ProductID   string
	ProductName string
	Entrees     decimal.Decimal
	Sorties     decimal.Decimal
}

// ReportingRepository expose des projections en lecture seule pour les états.
// Aucune règle métier : agrégation SQL sur les enregistrements persistés,
// documents annulés exclus.
type ReportingRepository interface {
	DailySales(from, to time.Time) ([]*DailySalesRow, error)
	ProductMovements(from, to time.Time) ([]*ProductMovementRow, error)
}
