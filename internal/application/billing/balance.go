package billing

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/entity"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/repository"
)

// BalanceService calcule les soldes clients et arbitre l'admission à crédit.
// Solde positif = avance disponible, négatif = dette.
type BalanceService struct {
	clientRepo  repository.ClientRepository
	invoiceRepo repository.InvoiceRepository
	paymentRepo repository.PaymentRepository
	closureRepo repository.ClosureRepository
}

// NewBalanceService construit le service avec des répertoires hors transaction
// (lectures d'admission et de consultation).
func NewBalanceService(
	clientRepo repository.ClientRepository,
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
	closureRepo repository.ClosureRepository,
) *BalanceService {
	return &BalanceService{
		clientRepo:  clientRepo,
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		closureRepo: closureRepo,
	}
}

// runningBalance applique la formule du solde courant :
// report à nouveau + paiements + avoirs TTC - factures TTC, en ne comptant que
// les exercices strictement postérieurs à la dernière clôture (documents
// annulés exclus par les requêtes de somme).
func runningBalance(
	invoices repository.InvoiceRepository,
	payments repository.PaymentRepository,
	closures repository.ClosureRepository,
	client *entity.Client,
) (decimal.Decimal, error) {
	lastYear, err := closures.LatestYear()
	if err != nil {
		return decimal.Decimal{}, err
	}
	pay, err := payments.SumByClientAfterYear(client.ID, lastYear)
	if err != nil {
		return decimal.Decimal{}, err
	}
	avoirs, err := invoices.SumTTCByClientAfterYear(client.ID, entity.DocAvoir, lastYear)
	if err != nil {
		return decimal.Decimal{}, err
	}
	factures, err := invoices.SumTTCByClientAfterYear(client.ID, entity.DocFacture, lastYear)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return client.ReportANouveau.Add(pay).Add(avoirs).Sub(factures), nil
}

// checkCredit vérifie l'admission d'une facture à terme : le solde projeté
// après facturation doit rester au-dessus de -seuil. En cas de refus, l'erreur
// porte le montant manquant pour l'opérateur.
func checkCredit(balance, newTTC, seuil decimal.Decimal) error {
	projected := balance.Sub(newTTC)
	if projected.GreaterThanOrEqual(seuil.Neg()) {
		return nil
	}
	return &domain.CreditShortfallError{
		Projected: projected,
		Threshold: seuil,
		Shortfall: seuil.Neg().Sub(projected),
	}
}

// RunningBalance recalcule le solde courant d'un client (valeur faisant foi).
func (s *BalanceService) RunningBalance(ctx context.Context, clientID string) (decimal.Decimal, error) {
	client, err := s.clientRepo.GetByID(clientID)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if client == nil {
		return decimal.Decimal{}, domain.ErrNotFound
	}
	return runningBalance(s.invoiceRepo, s.paymentRepo, s.closureRepo, client)
}

// CheckCredit simule l'admission d'un montant TTC à terme pour un client.
func (s *BalanceService) CheckCredit(ctx context.Context, clientID string, ttc decimal.Decimal) error {
	client, err := s.clientRepo.GetByID(clientID)
	if err != nil {
		return err
	}
	if client == nil {
		return domain.ErrNotFound
	}
	balance, err := runningBalance(s.invoiceRepo, s.paymentRepo, s.closureRepo, client)
	if err != nil {
		return err
	}
	return checkCredit(balance, ttc, client.SeuilCredit)
}

// YearBalance est la projection "situation client" d'un exercice :
// solde d'ouverture (historique avant l'exercice replié) et détail de l'année.
type YearBalance struct {
	ClientID string
	Year     int
	Opening  decimal.Decimal
	Payments decimal.Decimal
	Avoirs   decimal.Decimal
	Factures decimal.Decimal
	Closing  decimal.Decimal
}

// BalanceAsOfYear calcule la situation d'un client pour un exercice donné.
// Projection de consultation uniquement (état annuel des créances) : elle ne
// sert jamais à admettre une nouvelle facture.
func (s *BalanceService) BalanceAsOfYear(ctx context.Context, clientID string, year int) (*YearBalance, error) {
	client, err := s.clientRepo.GetByID(clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	lastClosure, err := s.closureRepo.LatestYear()
	if err != nil {
		return nil, err
	}

	// Ouverture = report à nouveau + mouvements entre la dernière clôture
	// (exclue) et le début de l'exercice : après(lastClosure) - après(year-1).
	sumBetween := func(f func(string, int) (decimal.Decimal, error)) (decimal.Decimal, error) {
		since, err := f(clientID, lastClosure)
		if err != nil {
			return decimal.Decimal{}, err
		}
		fromYear, err := f(clientID, year-1)
		if err != nil {
			return decimal.Decimal{}, err
		}
		return since.Sub(fromYear), nil
	}

	payBefore, err := sumBetween(s.paymentRepo.SumByClientAfterYear)
	if err != nil {
		return nil, err
	}
	avoirsBefore, err := sumBetween(func(id string, y int) (decimal.Decimal, error) {
		return s.invoiceRepo.SumTTCByClientAfterYear(id, entity.DocAvoir, y)
	})
	if err != nil {
		return nil, err
	}
	facturesBefore, err := sumBetween(func(id string, y int) (decimal.Decimal, error) {
		return s.invoiceRepo.SumTTCByClientAfterYear(id, entity.DocFacture, y)
	})
	if err != nil {
		return nil, err
	}

	opening := client.ReportANouveau.Add(payBefore).Add(avoirsBefore).Sub(facturesBefore)

	payments, err := s.paymentRepo.SumByClientInYear(clientID, year)
	if err != nil {
		return nil, err
	}
	avoirs, err := s.invoiceRepo.SumTTCByClientInYear(clientID, entity.DocAvoir, year)
	if err != nil {
		return nil, err
	}
	factures, err := s.invoiceRepo.SumTTCByClientInYear(clientID, entity.DocFacture, year)
	if err != nil {
		return nil, err
	}

	return &YearBalance{
		ClientID: clientID,
		Year:     year,
		Opening:  opening,
		Payments: payments,
		Avoirs:   avoirs,
		Factures: factures,
		Closing:  opening.Add(payments).Add(avoirs).Sub(factures),
	}, nil
}
