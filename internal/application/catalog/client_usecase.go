package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/entity"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/repository"
)

// ClientUseCase gère le fichier clients. Le solde et le report à nouveau
// appartiennent au moteur de solde et à la clôture, jamais à la saisie.
type ClientUseCase struct {
	clientRepo repository.ClientRepository
}

// NewClientUseCase construit le cas d'usage.
func NewClientUseCase(clientRepo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{clientRepo: clientRepo}
}

// CreateClientInput entrée de création d'un client.
type CreateClientInput struct {
	Name        string
	NIF         string
	Address     string
	Phone       string
	SeuilCredit decimal.Decimal
}

// Create valide et persiste un client.
func (uc *ClientUseCase) Create(ctx context.Context, in CreateClientInput) (*entity.Client, error) {
	if in.Name == "" || in.SeuilCredit.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	c := &entity.Client{
		ID:          uuid.New().String(),
		Name:        in.Name,
		NIF:         in.NIF,
		Address:     in.Address,
		Phone:       in.Phone,
		SeuilCredit: in.SeuilCredit,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.clientRepo.Create(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Get retourne un client par ID.
func (uc *ClientUseCase) Get(ctx context.Context, id string) (*entity.Client, error) {
	c, err := uc.clientRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

// List retourne le fichier clients (actifs seuls ou complet).
func (uc *ClientUseCase) List(ctx context.Context, activeOnly bool) ([]*entity.Client, error) {
	return uc.clientRepo.List(activeOnly)
}

// Patch applique une mise à jour partielle typée (champs nil inchangés).
func (uc *ClientUseCase) Patch(ctx context.Context, id string, patch entity.ClientPatch) error {
	existing, err := uc.clientRepo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	if patch.SeuilCredit != nil && patch.SeuilCredit.LessThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	return uc.clientRepo.Patch(id, patch)
}

// Deactivate désactive un client (suppression logique uniquement).
func (uc *ClientUseCase) Deactivate(ctx context.Context, id string) error {
	inactive := false
	return uc.Patch(ctx, id, entity.ClientPatch{Active: &inactive})
}
