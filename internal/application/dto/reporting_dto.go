package dto

import (
	"github.com/shopspring/decimal"

	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/application/billing"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/repository"
)

// DailySalesResponse agrégat journalier des ventes.
type DailySalesResponse struct {
	Date     string          `json:"date"`
	TotalHT  decimal.Decimal `json:"total_ht"`
	TotalTVA decimal.Decimal `json:"total_tva"`
	TotalTTC decimal.Decimal `json:"total_ttc"`
	Count    int             `json:"count"`
}

// FromDailySales convertit les lignes d'agrégat en réponse.
func FromDailySales(rows []*repository.DailySalesRow) []DailySalesResponse {
	out := make([]DailySalesResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, DailySalesResponse{
			Date:     r.Date.Format("2006-01-02"),
			TotalHT:  r.TotalHT,
			TotalTVA: r.TotalTVA,
			TotalTTC: r.TotalTTC,
			Count:    r.Count,
		})
	}
	return out
}

// ProductMovementResponse agrégat entrées/sorties par produit.
type ProductMovementResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Entrees     decimal.Decimal `json:"entrees"`
	Sorties     decimal.Decimal `json:"sorties"`
}

// FromProductMovements convertit les lignes d'agrégat en réponse.
func FromProductMovements(rows []*repository.ProductMovementRow) []ProductMovementResponse {
	out := make([]ProductMovementResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, ProductMovementResponse{
			ProductID:   r.ProductID,
			ProductName: r.ProductName,
			Entrees:     r.Entrees,
			Sorties:     r.Sorties,
		})
	}
	return out
}

// YearBalanceResponse situation annuelle d'un client.
type YearBalanceResponse struct {
	ClientID string          `json:"client_id"`
	Year     int             `json:"year"`
	Opening  decimal.Decimal `json:"opening"`
	Payments decimal.Decimal `json:"payments"`
	Avoirs   decimal.Decimal `json:"avoirs"`
	Factures decimal.Decimal `json:"factures"`
	Closing  decimal.Decimal `json:"closing"`
}

// FromYearBalances convertit les situations annuelles en réponse.
func FromYearBalances(rows []*billing.YearBalance) []YearBalanceResponse {
	out := make([]YearBalanceResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, YearBalanceResponse{
			ClientID: r.ClientID,
			Year:     r.Year,
			Opening:  r.Opening,
			Payments: r.Payments,
			Avoirs:   r.Avoirs,
			Factures: r.Factures,
			Closing:  r.Closing,
		})
	}
	return out
}
