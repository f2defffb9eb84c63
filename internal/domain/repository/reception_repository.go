package repository

import "github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/entity"

// ReceptionRepository définit le port de persistance des réceptions.
type ReceptionRepository interface {
	Create(r *entity.Reception) error
	GetByID(id string) (*entity.Reception, error)
	Delete(id string) error
	List(limit int) ([]*entity.Reception, error)
	// ListOnStock retourne toutes les réceptions SUR_STOCK, ordonnées par
	// date de gestion puis date de création (flux chronologique du replay).
	ListOnStock() ([]*entity.Reception, error)
}
