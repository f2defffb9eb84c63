package closing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/application/ports"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/entity"
)

// ClosureUseCase porte la clôture annuelle : instantané permanent des stocks
// et des soldes, et amorçage du report à nouveau de l'exercice suivant.
type ClosureUseCase struct {
	txRunner ports.TxRunner
}

// NewClosureUseCase construit le cas d'usage.
func NewClosureUseCase(txRunner ports.TxRunner) *ClosureUseCase {
	return &ClosureUseCase{txRunner: txRunner}
}

// Result résume une clôture effectuée.
type Result struct {
	Closure  *entity.AnnualClosure
	Products int
	Clients  int
}

// Close clôture un exercice : refuse si l'année est déjà clôturée, fige le
// stock de chaque produit et le solde recalculé de chaque client actif, puis
// écrit ce solde en report à nouveau. Opération à sens unique, une seule
// transaction.
func (uc *ClosureUseCase) Close(ctx context.Context, year int, actor string) (*Result, error) {
	if year <= 0 {
		return nil, domain.ErrInvalidInput
	}
	var result Result
	err := uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		existing, err := r.Closures.GetByYear(year)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrAlreadyClosed
		}

		// Borne des sommes figée avant d'enregistrer la clôture en cours :
		// les soldes figés doivent inclure l'exercice que l'on clôture.
		prevYear, err := r.Closures.LatestYear()
		if err != nil {
			return err
		}

		closure := &entity.AnnualClosure{
			ID:       uuid.New().String(),
			Year:     year,
			ClosedAt: time.Now(),
			ClosedBy: actor,
		}
		if err := r.Closures.Create(closure); err != nil {
			return err
		}

		products, err := r.Products.List(false)
		if err != nil {
			return err
		}
		for _, p := range products {
			if err := r.Closures.CreateStockLine(&entity.ClosureStockLine{
				ClosureID: closure.ID,
				ProductID: p.ID,
				Stock:     p.StockActuel,
			}); err != nil {
				return err
			}
		}

		clients, err := r.Clients.List(true)
		if err != nil {
			return err
		}
		for _, c := range clients {
			balance, err := clientBalance(r, c, prevYear)
			if err != nil {
				return err
			}
			if err := r.Closures.CreateBalanceLine(&entity.ClosureBalanceLine{
				ClosureID: closure.ID,
				ClientID:  c.ID,
				Balance:   balance,
			}); err != nil {
				return err
			}
			if err := r.Clients.UpdateReportANouveau(c.ID, balance); err != nil {
				return err
			}
			if err := r.Clients.UpdateSoldeCache(c.ID, balance); err != nil {
				return err
			}
		}

		result = Result{Closure: closure, Products: len(products), Clients: len(clients)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// clientBalance applique la formule du solde courant avec une borne explicite
// (la dernière clôture précédant celle en cours).
func clientBalance(r ports.TxRepos, client *entity.Client, afterYear int) (decimal.Decimal, error) {
	pay, err := r.Payments.SumByClientAfterYear(client.ID, afterYear)
	if err != nil {
		return decimal.Decimal{}, err
	}
	avoirs, err := r.Invoices.SumTTCByClientAfterYear(client.ID, entity.DocAvoir, afterYear)
	if err != nil {
		return decimal.Decimal{}, err
	}
	factures, err := r.Invoices.SumTTCByClientAfterYear(client.ID, entity.DocFacture, afterYear)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return client.ReportANouveau.Add(pay).Add(avoirs).Sub(factures), nil
}
