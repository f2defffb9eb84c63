package dto

import (
	"github.com/shopspring/decimal"

	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/entity"
)

// CreateProductRequest body pour POST /api/products.
type CreateProductRequest struct {
	Name          string          `json:"name" validate:"required"`
	Unit          string          `json:"unit" validate:"required"`
	PrixCatalogue decimal.Decimal `json:"prix_catalogue"`
	PrixRevient   decimal.Decimal `json:"prix_revient"`
	TauxTVA       decimal.Decimal `json:"taux_tva"`
	StockInitial  decimal.Decimal `json:"stock_initial"`
	ParentStockID *string         `json:"parent_stock_id,omitempty"`
}

// PatchProductRequest body pour PATCH /api/products/:id (champs absents = inchangés).
type PatchProductRequest struct {
	Name          *string          `json:"name,omitempty"`
	Unit          *string          `json:"unit,omitempty"`
	PrixCatalogue *decimal.Decimal `json:"prix_catalogue,omitempty"`
	PrixRevient   *decimal.Decimal `json:"prix_revient,omitempty"`
	TauxTVA       *decimal.Decimal `json:"taux_tva,omitempty"`
	ParentStockID *string          `json:"parent_stock_id,omitempty"`
	Active        *bool            `json:"active,omitempty"`
}

// ProductResponse produit en réponse.
type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Unit          string          `json:"unit"`
	PrixCatalogue decimal.Decimal `json:"prix_catalogue"`
	PrixRevient   decimal.Decimal `json:"prix_revient"`
	TauxTVA       decimal.Decimal `json:"taux_tva"`
	StockInitial  decimal.Decimal `json:"stock_initial"`
	StockActuel   decimal.Decimal `json:"stock_actuel"`
	ParentStockID *string         `json:"parent_stock_id,omitempty"`
	Active        bool            `json:"active"`
}

// FromProduct convertit l'entité en réponse.
func FromProduct(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Unit:          p.Unit,
		PrixCatalogue: p.PrixCatalogue,
		PrixRevient:   p.PrixRevient,
		TauxTVA:       p.TauxTVA,
		StockInitial:  p.StockInitial,
		StockActuel:   p.StockActuel,
		ParentStockID: p.ParentStockID,
		Active:        p.Active,
	}
}

// CreateClientRequest body pour POST /api/clients.
type CreateClientRequest struct {
	Name        string          `json:"name" validate:"required"`
	NIF         string          `json:"nif"`
	Address     string          `json:"address"`
	Phone       string          `json:"phone"`
	SeuilCredit decimal.Decimal `json:"seuil_credit"`
}

// PatchClientRequest body pour PATCH /api/clients/:id (champs absents = inchangés).
type PatchClientRequest struct {
	Name        *string          `json:"name,omitempty"`
	NIF         *string          `json:"nif,omitempty"`
	Address     *string          `json:"address,omitempty"`
	Phone       *string          `json:"phone,omitempty"`
	SeuilCredit *decimal.Decimal `json:"seuil_credit,omitempty"`
	Active      *bool            `json:"active,omitempty"`
}

// ClientResponse client en réponse.
type ClientResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	NIF            string          `json:"nif,omitempty"`
	Address        string          `json:"address,omitempty"`
	Phone          string          `json:"phone,omitempty"`
	SeuilCredit    decimal.Decimal `json:"seuil_credit"`
	ReportANouveau decimal.Decimal `json:"report_a_nouveau"`
	SoldeCourant   decimal.Decimal `json:"solde_courant"`
	Active         bool            `json:"active"`
}

// FromClient convertit l'entité en réponse.
func FromClient(c *entity.Client) ClientResponse {
	return ClientResponse{
		ID:             c.ID,
		Name:           c.Name,
		NIF:            c.NIF,
		Address:        c.Address,
		Phone:          c.Phone,
		SeuilCredit:    c.SeuilCredit,
		ReportANouveau: c.ReportANouveau,
		SoldeCourant:   c.SoldeCourant,
		Active:         c.Active,
	}
}
