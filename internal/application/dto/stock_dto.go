package dto

import (
	"github.com/shopspring/decimal"

	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/entity"
)

// CreateReceptionRequest body pour POST /api/receptions.
// Date au format AAAA-MM-JJ (jour de gestion).
type CreateReceptionRequest struct {
	ProductID    string          `json:"product_id" validate:"required"`
	Reference    string          `json:"reference" validate:"required"`
	QtyAnnounced decimal.Decimal `json:"qty_announced"`
	QtyReceived  decimal.Decimal `json:"qty_received"`
	EcartMotif   string          `json:"ecart_motif,omitempty"`
	Destination  string          `json:"destination" validate:"required,oneof=SUR_STOCK SUR_CHANTIER"`
	Date         string          `json:"date" validate:"required"`
}

// ReceptionResponse réception en réponse.
type ReceptionResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"product_id"`
	Reference    string          `json:"reference"`
	QtyAnnounced decimal.Decimal `json:"qty_announced"`
	QtyReceived  decimal.Decimal `json:"qty_received"`
	Ecart        decimal.Decimal `json:"ecart"`
	EcartMotif   string          `json:"ecart_motif,omitempty"`
	Destination  string          `json:"destination"`
	Date         string          `json:"date"`
	CreatedBy    string          `json:"created_by"`
}

// FromReception convertit l'entité en réponse.
func FromReception(r *entity.Reception) ReceptionResponse {
	return ReceptionResponse{
		ID:           r.ID,
		ProductID:    r.ProductID,
		Reference:    r.Reference,
		QtyAnnounced: r.QtyAnnounced,
		QtyReceived:  r.QtyReceived,
		Ecart:        r.Ecart(),
		EcartMotif:   r.EcartMotif,
		Destination:  r.Destination,
		Date:         r.Date.Format("2006-01-02"),
		CreatedBy:    r.CreatedBy,
	}
}

// MovementResponse écriture du livre de stock en réponse.
type MovementResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	Kind        string          `json:"kind"`
	Quantity    decimal.Decimal `json:"quantity"`
	Reference   string          `json:"reference"`
	DocumentID  string          `json:"document_id,omitempty"`
	StockBefore decimal.Decimal `json:"stock_before"`
	StockAfter  decimal.Decimal `json:"stock_after"`
	Actor       string          `json:"actor"`
	Date        string          `json:"date"`
}

// FromMovement convertit l'écriture en réponse.
func FromMovement(m *entity.StockMovement) MovementResponse {
	return MovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		Kind:        m.Kind,
		Quantity:    m.Quantity,
		Reference:   m.Reference,
		DocumentID:  m.DocumentID,
		StockBefore: m.StockBefore,
		StockAfter:  m.StockAfter,
		Actor:       m.Actor,
		Date:        m.Date.Format("2006-01-02"),
	}
}

// RecalculateResponse résultat d'un recalcul de stock.
type RecalculateResponse struct {
	ProductID string          `json:"product_id"`
	Stock     decimal.Decimal `json:"stock"`
}

// ReplayResponse résultat du rejeu complet du livre.
type ReplayResponse struct {
	Movements int `json:"movements"`
	Products  int `json:"products"`
}
