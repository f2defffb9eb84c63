package reporting

import (
	"context"
	"time"

	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/application/billing"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/repository"
)

// ReportingUseCase produit les états de consultation : agrégats journaliers
// et situation annuelle des créances. Lecture seule, aucune règle métier en
// double — les totaux viennent des documents persistés, les soldes du moteur
// de solde.
type ReportingUseCase struct {
	reportingRepo repository.ReportingRepository
	clientRepo    repository.ClientRepository
	balance       *billing.BalanceService
}

// NewReportingUseCase construit le cas d'usage.
func NewReportingUseCase(
	reportingRepo repository.ReportingRepository,
	clientRepo repository.ClientRepository,
	balance *billing.BalanceService,
) *ReportingUseCase {
	return &ReportingUseCase{reportingRepo: reportingRepo, clientRepo: clientRepo, balance: balance}
}

// DailySales retourne les ventes agrégées par jour sur la période.
func (uc *ReportingUseCase) DailySales(ctx context.Context, from, to time.Time) ([]*repository.DailySalesRow, error) {
	if to.Before(from) {
		return nil, domain.ErrInvalidInput
	}
	return uc.reportingRepo.DailySales(from, to)
}

// ProductMovements retourne les entrées/sorties cumulées par produit sur la période.
func (uc *ReportingUseCase) ProductMovements(ctx context.Context, from, to time.Time) ([]*repository.ProductMovementRow, error) {
	if to.Before(from) {
		return nil, domain.ErrInvalidInput
	}
	return uc.reportingRepo.ProductMovements(from, to)
}

// Receivables produit l'état annuel des créances : la situation de chaque
// client actif pour l'exercice demandé (ouverture + détail de l'année).
// Projection de consultation : jamais utilisée pour admettre une facture.
func (uc *ReportingUseCase) Receivables(ctx context.Context, year int) ([]*billing.YearBalance, error) {
	if year <= 0 {
		return nil, domain.ErrInvalidInput
	}
	clients, err := uc.clientRepo.List(true)
	if err != nil {
		return nil, err
	}
	rows := make([]*billing.YearBalance, 0, len(clients))
	for _, c := range clients {
		yb, err := uc.balance.BalanceAsOfYear(ctx, c.ID, year)
		if err != nil {
			return nil, err
		}
		rows = append(rows, yb)
	}
	return rows, nil
}
