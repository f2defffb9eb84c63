package repository

import (
	"github.com/shopspring/decimal"

	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/entity"
)

// ClientRepository définit le port de persistance des clients.
type ClientRepository interface {
	Create(c *entity.Client) error
	GetByID(id string) (*entity.Client, error)
	List(activeOnly bool) ([]*entity.Client, error)
	Patch(id string, patch entity.ClientPatch) error
	// UpdateSoldeCache rafraîchit le solde courant mis en cache (meilleur effort,
	// la valeur faisant foi est recalculée).
	UpdateSoldeCache(id string, solde decimal.Decimal) error
	// UpdateReportANouveau écrit le report à nouveau. Réservé à la clôture annuelle.
	UpdateReportANouveau(id string, montant decimal.Decimal) error
}
