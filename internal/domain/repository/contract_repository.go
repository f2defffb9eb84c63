package repository

import "github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/entity"

// ContractRepository définit le port de persistance des contrats.
type ContractRepository interface {
	Create(c *entity.Contract) error
	GetByID(id string) (*entity.Contract, error)
	ListByClient(clientID string) ([]*entity.Contract, error)
}
