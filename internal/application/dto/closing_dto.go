package dto

import "github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/entity"

// CloseYearRequest body pour POST /api/closures.
type CloseYearRequest struct {
	Year int `json:"year" validate:"required,min=2000,max=2100"`
}

// ClosureResponse clôture annuelle en réponse.
type ClosureResponse struct {
	ID       string `json:"id"`
	Year     int    `json:"year"`
	ClosedAt string `json:"closed_at"`
	ClosedBy string `json:"closed_by"`
	Products int    `json:"products,omitempty"`
	Clients  int    `json:"clients,omitempty"`
}

// FromClosure convertit l'entité en réponse.
func FromClosure(c *entity.AnnualClosure) ClosureResponse {
	return ClosureResponse{
		ID:       c.ID,
		Year:     c.Year,
		ClosedAt: c.ClosedAt.Format("2006-01-02 15:04:05"),
		ClosedBy: c.ClosedBy,
	}
}
