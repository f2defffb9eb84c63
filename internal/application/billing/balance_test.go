package billing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/application/billing"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/entity"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/infrastructure/memory"
)

func newBalanceService(store *memory.Store) *billing.BalanceService {
	repos := store.Repos()
	return billing.NewBalanceService(repos.Clients, repos.Invoices, repos.Payments, repos.Closures)
}

// seedSituation pose un client avec un report à nouveau de 1 000 et un
// historique 2025 : facture 8 000, avoir 500, paiement 3 000.
func seedSituation(t *testing.T, store *memory.Store) {
	t.Helper()
	repos := store.Repos()
	require.NoError(t, repos.Clients.Create(&entity.Client{
		ID:             clientID,
		Name:           "Entreprise BTP Batna",
		SeuilCredit:    d("10000"),
		ReportANouveau: d("1000"),
		Active:         true,
	}))
	originID := "inv-fact-1"
	require.NoError(t, repos.Invoices.Create(&entity.Invoice{
		ID:       originID,
		Type:     entity.DocFacture,
		ClientID: clientID,
		Date:     date("2025-03-01"),
		TotalTTC: d("8000"),
		Status:   entity.StatusConfirmee,
	}))
	require.NoError(t, repos.Invoices.Create(&entity.Invoice{
		ID:              "inv-avoir-1",
		Type:            entity.DocAvoir,
		ClientID:        clientID,
		Date:            date("2025-03-15"),
		OriginInvoiceID: &originID,
		TotalTTC:        d("500"),
		Status:          entity.StatusConfirmee,
	}))
	require.NoError(t, repos.Payments.Create(&entity.Payment{
		ID:       "pay-1",
		ClientID: clientID,
		Amount:   d("3000"),
		Mode:     entity.ModeEspeces,
		Status:   entity.PaymentEncaisse,
		Date:     date("2025-04-01"),
	}))
}

func TestRunningBalance_FormuleComplete(t *testing.T) {
	store := memory.NewStore()
	seedSituation(t, store)
	svc := newBalanceService(store)

	// 1000 (report) + 3000 (paiements) + 500 (avoirs) - 8000 (factures) = -3500.
	balance, err := svc.RunningBalance(context.Background(), clientID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(d("-3500")), "solde = %s", balance)
}

func TestRunningBalance_IgnoreLesDocumentsAnnules(t *testing.T) {
	store := memory.NewStore()
	seedSituation(t, store)
	repos := store.Repos()
	require.NoError(t, repos.Invoices.Create(&entity.Invoice{
		ID:       "inv-annulee",
		Type:     entity.DocFacture,
		ClientID: clientID,
		Date:     date("2025-05-01"),
		TotalTTC: d("99999"),
		Status:   entity.StatusAnnulee,
	}))
	svc := newBalanceService(store)

	balance, err := svc.RunningBalance(context.Background(), clientID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(d("-3500")))
}

func TestRunningBalance_RepartDeLaDerniereCloture(t *testing.T) {
	store := memory.NewStore()
	seedSituation(t, store)
	repos := store.Repos()

	// Clôture 2025 : l'historique 2025 est replié dans le report à nouveau.
	require.NoError(t, repos.Closures.Create(&entity.AnnualClosure{
		ID:   "clo-2025",
		Year: 2025,
	}))
	require.NoError(t, repos.Clients.UpdateReportANouveau(clientID, d("-3500")))
	svc := newBalanceService(store)

	// Seul le report compte : les documents 2025 ne sont plus re-sommés.
	balance, err := svc.RunningBalance(context.Background(), clientID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(d("-3500")))

	// Un paiement 2026 s'ajoute au report.
	require.NoError(t, repos.Payments.Create(&entity.Payment{
		ID:       "pay-2026",
		ClientID: clientID,
		Amount:   d("2000"),
		Mode:     entity.ModeEspeces,
		Date:     date("2026-01-10"),
	}))
	balance, err = svc.RunningBalance(context.Background(), clientID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(d("-1500")))
}

func TestRunningBalance_ClientInconnu(t *testing.T) {
	store := memory.NewStore()
	svc := newBalanceService(store)

	_, err := svc.RunningBalance(context.Background(), "absent")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCheckCredit_SimulationAdmission(t *testing.T) {
	store := memory.NewStore()
	seedSituation(t, store) // solde -3500, seuil 10000
	svc := newBalanceService(store)
	ctx := context.Background()

	// Projeté -9500 : admis.
	assert.NoError(t, svc.CheckCredit(ctx, clientID, d("6000")))

	// Projeté -10500 : refusé, manque 500.
	err := svc.CheckCredit(ctx, clientID, d("7000"))
	require.ErrorIs(t, err, domain.ErrCreditLimitExceeded)
	var shortfall *domain.CreditShortfallError
	require.ErrorAs(t, err, &shortfall)
	assert.True(t, shortfall.Shortfall.Equal(d("500")))
}

func TestBalanceAsOfYear_SituationAnnuelle(t *testing.T) {
	store := memory.NewStore()
	seedSituation(t, store)
	repos := store.Repos()

	// Activité 2026 par-dessus l'historique 2025.
	require.NoError(t, repos.Invoices.Create(&entity.Invoice{
		ID:       "inv-2026",
		Type:     entity.DocFacture,
		ClientID: clientID,
		Date:     date("2026-02-01"),
		TotalTTC: d("4000"),
		Status:   entity.StatusConfirmee,
	}))
	require.NoError(t, repos.Payments.Create(&entity.Payment{
		ID:       "pay-2026b",
		ClientID: clientID,
		Amount:   d("1500"),
		Mode:     entity.ModeEspeces,
		Date:     date("2026-03-01"),
	}))
	svc := newBalanceService(store)

	yb, err := svc.BalanceAsOfYear(context.Background(), clientID, 2026)
	require.NoError(t, err)

	// Ouverture 2026 = report 1000 + historique 2025 (-4500) = -3500.
	assert.True(t, yb.Opening.Equal(d("-3500")), "ouverture = %s", yb.Opening)
	assert.True(t, yb.Payments.Equal(d("1500")))
	assert.True(t, yb.Factures.Equal(d("4000")))
	assert.True(t, yb.Avoirs.IsZero())
	assert.True(t, yb.Closing.Equal(d("-6000")), "clôture = %s", yb.Closing)
}
