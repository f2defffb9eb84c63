package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/application/ports"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/entity"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/repository"
)

// Ledger est le moteur du livre des mouvements de stock.
// Toute variation de stock_actuel passe par lui : écriture du mouvement et
// mise à jour du produit résolu dans la même transaction, ligne produit
// verrouillée (SELECT FOR UPDATE) entre la lecture du stock avant et
// l'écriture du stock après.
type Ledger struct {
	txRunner ports.TxRunner
}

// NewLedger construit le moteur.
func NewLedger(txRunner ports.TxRunner) *Ledger {
	return &Ledger{txRunner: txRunner}
}

// PostInput décrit une écriture à passer au livre.
// CreatedAt à zéro = maintenant ; le replay fournit l'horodatage d'origine.
type PostInput struct {
	ProductID  string
	Kind       string
	Quantity   decimal.Decimal // delta signé
	Reference  string
	DocumentID string
	Actor      string
	Date       time.Time
	CreatedAt  time.Time
}

// Post passe une écriture dans sa propre transaction.
func (l *Ledger) Post(ctx context.Context, in PostInput) (*entity.StockMovement, error) {
	var mov *entity.StockMovement
	err := l.txRunner.Run(ctx, func(r ports.TxRepos) error {
		var err error
		mov, err = PostInTx(r, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// ResolveStockOwner remonte la chaîne parent_stock_id jusqu'au produit
// propriétaire du stock physique. Retourne (propriétaire, produit demandé).
// Une chaîne cyclique est traitée comme un produit inconnu.
func ResolveStockOwner(products repository.ProductRepository, productID string) (*entity.Product, *entity.Product, error) {
	original, err := products.GetByID(productID)
	if err != nil {
		return nil, nil, err
	}
	if original == nil {
		return nil, nil, domain.ErrUnknownProduct
	}
	owner := original
	seen := map[string]bool{owner.ID: true}
	for owner.ParentStockID != nil && *owner.ParentStockID != "" {
		parent, err := products.GetByID(*owner.ParentStockID)
		if err != nil {
			return nil, nil, err
		}
		if parent == nil || seen[parent.ID] {
			return nil, nil, domain.ErrUnknownProduct
		}
		seen[parent.ID] = true
		owner = parent
	}
	return owner, original, nil
}

// PostInTx passe une écriture avec les répertoires de la transaction appelante.
// Résout le produit vers son propriétaire de stock, annote la référence avec le
// produit enfant d'origine, capture stock avant/après et met à jour le produit.
func PostInTx(r ports.TxRepos, in PostInput) (*entity.StockMovement, error) {
	owner, original, err := ResolveStockOwner(r.Products, in.ProductID)
	if err != nil {
		return nil, err
	}

	switch in.Kind {
	case entity.MovementVente, entity.MovementRetourAvoir:
		// Un produit "groupe" (propriétaire du stock d'autres produits) ne se vend pas directement.
		hasChildren, err := r.Products.HasChildren(original.ID)
		if err != nil {
			return nil, err
		}
		if hasChildren {
			return nil, domain.ErrParentProductNotSellable
		}
	case entity.MovementReception, entity.MovementAnnulationReception:
		// Les réceptions visent le propriétaire du stock, jamais une variante enfant.
		if original.ParentStockID != nil && *original.ParentStockID != "" {
			return nil, domain.ErrReceptionForbiddenOnChild
		}
	}

	reference := in.Reference
	if owner.ID != original.ID {
		reference = fmt.Sprintf("%s [via produit %s]", reference, original.Name)
	}

	// Verrou de la ligne propriétaire : stock avant/après cohérents même avec
	// plusieurs écrivains.
	locked, err := r.Products.GetForUpdate(owner.ID)
	if err != nil {
		return nil, err
	}
	if locked == nil {
		return nil, domain.ErrUnknownProduct
	}

	now := time.Now()
	createdAt := in.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	date := in.Date
	if date.IsZero() {
		date = now
	}

	before := locked.StockActuel
	after := before.Add(in.Quantity)

	mov := &entity.StockMovement{
		ID:          uuid.New().String(),
		ProductID:   owner.ID,
		Kind:        in.Kind,
		Quantity:    in.Quantity,
		Reference:   reference,
		DocumentID:  in.DocumentID,
		StockBefore: before,
		StockAfter:  after,
		Actor:       in.Actor,
		Date:        date,
		CreatedAt:   createdAt,
	}
	if err := r.Movements.Create(mov); err != nil {
		return nil, err
	}
	if err := r.Products.UpdateStock(owner.ID, after); err != nil {
		return nil, err
	}
	return mov, nil
}

// Reverse supprime les écritures d'un document pour une nature donnée et
// décrémente le stock des produits concernés de la somme des deltas supprimés.
// Utilisé à la suppression d'une réception ; jamais pour une vente confirmée
// (celles-ci passent par des écritures compensatoires ANNULATION_VENTE).
func (l *Ledger) Reverse(ctx context.Context, documentID, kind string) error {
	return l.txRunner.Run(ctx, func(r ports.TxRepos) error {
		return ReverseInTx(r, documentID, kind)
	})
}

// ReverseInTx est la variante composable de Reverse.
func ReverseInTx(r ports.TxRepos, documentID, kind string) error {
	deleted, err := r.Movements.DeleteByDocument(documentID, kind)
	if err != nil {
		return err
	}
	sums := make(map[string]decimal.Decimal)
	for _, m := range deleted {
		sums[m.ProductID] = sums[m.ProductID].Add(m.Quantity)
	}
	for productID, sum := range sums {
		locked, err := r.Products.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrUnknownProduct
		}
		if err := r.Products.UpdateStock(productID, locked.StockActuel.Sub(sum)); err != nil {
			return err
		}
	}
	return nil
}

// Recalculate repose stock_actuel = stock_initial + somme des écritures du
// produit résolu. Idempotent ; seul chemin sanctionné de résorption de dérive
// avec ReplayAll.
func (l *Ledger) Recalculate(ctx context.Context, productID string) (decimal.Decimal, error) {
	var result decimal.Decimal
	err := l.txRunner.Run(ctx, func(r ports.TxRepos) error {
		owner, _, err := ResolveStockOwner(r.Products, productID)
		if err != nil {
			return err
		}
		locked, err := r.Products.GetForUpdate(owner.ID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrUnknownProduct
		}
		sum, err := r.Movements.SumByProduct(owner.ID)
		if err != nil {
			return err
		}
		result = locked.StockInitial.Add(sum)
		return r.Products.UpdateStock(owner.ID, result)
	})
	if err != nil {
		return decimal.Decimal{}, err
	}
	return result, nil
}
