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

// ProductUseCase gère le catalogue produits.
// Le stock ne se touche jamais ici : il appartient au ledger.
type ProductUseCase struct {
	productRepo repository.ProductRepository
}

// NewProductUseCase construit le cas d'usage.
func NewProductUseCase(productRepo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo}
}

// CreateProductInput entrée de création d'un produit.
type CreateProductInput struct {
	Name          string
	Unit          string
	PrixCatalogue decimal.Decimal
	PrixRevient   decimal.Decimal
	TauxTVA       decimal.Decimal
	StockInitial  decimal.Decimal
	ParentStockID *string
}

// Create valide et persiste un produit. Un parent de stock désigné doit
// exister et ne pas être lui-même une variante enfant.
func (uc *ProductUseCase) Create(ctx context.Context, in CreateProductInput) (*entity.Product, error) {
	if in.Name == "" || in.PrixCatalogue.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.TauxTVA.LessThan(decimal.Zero) || in.StockInitial.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.ParentStockID != nil && *in.ParentStockID != "" {
		parent, err := uc.productRepo.GetByID(*in.ParentStockID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, domain.ErrUnknownProduct
		}
		if parent.ParentStockID != nil && *parent.ParentStockID != "" {
			return nil, domain.ErrInvalidInput // pas de chaîne enfant -> enfant
		}
	}

	now := time.Now()
	p := &entity.Product{
		ID:            uuid.New().String(),
		Name:          in.Name,
		Unit:          in.Unit,
		PrixCatalogue: in.PrixCatalogue,
		PrixRevient:   in.PrixRevient,
		TauxTVA:       in.TauxTVA,
		StockInitial:  in.StockInitial,
		StockActuel:   in.StockInitial,
		ParentStockID: in.ParentStockID,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.productRepo.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Get retourne un produit par ID.
func (uc *ProductUseCase) Get(ctx context.Context, id string) (*entity.Product, error) {
	p, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// List retourne le catalogue (actifs seuls ou complet).
func (uc *ProductUseCase) List(ctx context.Context, activeOnly bool) ([]*entity.Product, error) {
	return uc.productRepo.List(activeOnly)
}

// Patch applique une mise à jour partielle typée (champs nil inchangés).
func (uc *ProductUseCase) Patch(ctx context.Context, id string, patch entity.ProductPatch) error {
	existing, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	if patch.PrixCatalogue != nil && patch.PrixCatalogue.LessThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if patch.TauxTVA != nil && patch.TauxTVA.LessThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if patch.ParentStockID != nil && *patch.ParentStockID != "" {
		if *patch.ParentStockID == id {
			return domain.ErrInvalidInput
		}
		parent, err := uc.productRepo.GetByID(*patch.ParentStockID)
		if err != nil {
			return err
		}
		if parent == nil {
			return domain.ErrUnknownProduct
		}
	}
	return uc.productRepo.Patch(id, patch)
}

// Deactivate désactive un produit (jamais de suppression physique :
// les documents et le livre le référencent).
func (uc *ProductUseCase) Deactivate(ctx context.Context, id string) error {
	inactive := false
	return uc.Patch(ctx, id, entity.ProductPatch{Active: &inactive})
}
