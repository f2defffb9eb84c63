package repository

import (
	"github.com/shopspring/decimal"

	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/entity"
)

// ProductRepository définit le port de persistance du catalogue produits.
// Le stock vit sur la ligne produit ; seules les opérations du ledger l'écrivent.
type ProductRepository interface {
	Create(p *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetForUpdate verrouille la ligne produit (SELECT FOR UPDATE) pour
	// sérialiser les écritures de stock dans une transaction.
	GetForUpdate(id string) (*entity.Product, error)
	// HasChildren indique si des produits actifs pointent ce produit comme parent de stock.
	HasChildren(id string) (bool, error)
	List(activeOnly bool) ([]*entity.Product, error)
	Patch(id string, patch entity.ProductPatch) error
	// UpdateStock écrit stock_actuel. Réservé au ledger.
	UpdateStock(id string, stock decimal.Decimal) error
	// ResetAllStocks remet stock_actuel = stock_initial pour tous les produits (replay).
	ResetAllStocks() error
}
