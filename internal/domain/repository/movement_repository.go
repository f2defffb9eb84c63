package repository

import (
	"github.com/shopspring/decimal"

	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/entity"
)

// MovementRepository définit le port du livre des mouvements de stock.
// Le livre est en ajout seul ; les seules suppressions autorisées passent par
// DeleteByDocument (réception supprimée) et DeleteAll (replay complet).
type MovementRepository interface {
	Create(m *entity.StockMovement) error
	ListByProduct(productID string, limit int) ([]*entity.StockMovement, error)
	// SumByProduct retourne la somme des deltas du produit résolu.
	SumByProduct(productID string) (decimal.Decimal, error)
	// DeleteByDocument supprime les écritures d'un document pour une nature donnée
	// et retourne les écritures supprimées (pour décrémenter le stock).
	DeleteByDocument(documentID, kind string) ([]*entity.StockMovement, error)
	// DeleteAll vide le livre. Réservé au replay.
	DeleteAll() error
	CountAll() (int, error)
}
