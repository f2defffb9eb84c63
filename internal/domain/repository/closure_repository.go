package repository

import "github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/entity"

// ClosureRepository définit le port de persistance des clôtures annuelles.
// Une clôture n'est jamais modifiée ni supprimée.
type ClosureRepository interface {
	Create(c *entity.AnnualClosure) error
	CreateStockLine(l *entity.ClosureStockLine) error
	CreateBalanceLine(l *entity.ClosureBalanceLine) error
	GetByYear(year int) (*entity.AnnualClosure, error)
	// LatestYear retourne l'exercice de la clôture la plus récente, 0 si aucune.
	LatestYear() (int, error)
}
