package closing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/application/closing"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/entity"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/infrastructure/memory"
)

const clientID = "cli-sarl-aures"

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// seedExercice pose un produit (stock 60) et un client dont l'activité 2025
// laisse une dette de 4 500 : facture 8 000, avoir 500, paiement 3 000.
func seedExercice(t *testing.T, store *memory.Store) {
	t.Helper()
	repos := store.Repos()
	require.NoError(t, repos.Products.Create(&entity.Product{
		ID:           "prod-ciment",
		Name:         "Ciment CPJ 42.5",
		StockInitial: d("100"),
		StockActuel:  d("60"),
		Active:       true,
	}))
	require.NoError(t, repos.Clients.Create(&entity.Client{
		ID:          clientID,
		Name:        "SARL Aurès Construction",
		SeuilCredit: d("10000"),
		Active:      true,
	}))
	originID := "inv-1"
	require.NoError(t, repos.Invoices.Create(&entity.Invoice{
		ID:       originID,
		Type:     entity.DocFacture,
		ClientID: clientID,
		Date:     date("2025-06-01"),
		TotalTTC: d("8000"),
		Status:   entity.StatusConfirmee,
	}))
	require.NoError(t, repos.Invoices.Create(&entity.Invoice{
		ID:              "inv-2",
		Type:            entity.DocAvoir,
		ClientID:        clientID,
		Date:            date("2025-07-01"),
		OriginInvoiceID: &originID,
		TotalTTC:        d("500"),
		Status:          entity.StatusConfirmee,
	}))
	require.NoError(t, repos.Payments.Create(&entity.Payment{
		ID:       "pay-1",
		ClientID: clientID,
		Amount:   d("3000"),
		Mode:     entity.ModeEspeces,
		Date:     date("2025-08-01"),
	}))
}

func TestClose_FigeStocksEtSoldes(t *testing.T) {
	store := memory.NewStore()
	seedExercice(t, store)
	uc := closing.NewClosureUseCase(store)

	result, err := uc.Close(context.Background(), 2025, "admin")
	require.NoError(t, err)
	assert.Equal(t, 2025, result.Closure.Year)
	assert.Equal(t, "admin", result.Closure.ClosedBy)
	assert.Equal(t, 1, result.Products)
	assert.Equal(t, 1, result.Clients)

	// Le report à nouveau amorce l'exercice suivant avec le solde replié.
	client, err := store.Repos().Clients.GetByID(clientID)
	require.NoError(t, err)
	assert.True(t, client.ReportANouveau.Equal(d("-4500")), "report = %s", client.ReportANouveau)
	assert.True(t, client.SoldeCourant.Equal(d("-4500")))

	closure, err := store.Repos().Closures.GetByYear(2025)
	require.NoError(t, err)
	require.NotNil(t, closure)

	latest, err := store.Repos().Closures.LatestYear()
	require.NoError(t, err)
	assert.Equal(t, 2025, latest)
}

func TestClose_ExerciceDejaClos(t *testing.T) {
	store := memory.NewStore()
	seedExercice(t, store)
	uc := closing.NewClosureUseCase(store)
	ctx := context.Background()

	_, err := uc.Close(ctx, 2025, "admin")
	require.NoError(t, err)

	_, err = uc.Close(ctx, 2025, "admin")
	assert.ErrorIs(t, err, domain.ErrAlreadyClosed)
}

func TestClose_ClotureSuccessive(t *testing.T) {
	store := memory.NewStore()
	seedExercice(t, store)
	uc := closing.NewClosureUseCase(store)
	ctx := context.Background()

	_, err := uc.Close(ctx, 2025, "admin")
	require.NoError(t, err)

	// Activité 2026 : paiement de 4 500 qui solde la dette.
	require.NoError(t, store.Repos().Payments.Create(&entity.Payment{
		ID:       "pay-2026",
		ClientID: clientID,
		Amount:   d("4500"),
		Mode:     entity.ModeEspeces,
		Date:     date("2026-02-01"),
	}))

	result, err := uc.Close(ctx, 2026, "admin")
	require.NoError(t, err)
	assert.Equal(t, 2026, result.Closure.Year)

	// Report 2026 = report 2025 (-4500) + paiement 2026 (+4500) = 0.
	// Les documents 2025, repliés, ne sont pas recomptés.
	client, err := store.Repos().Clients.GetByID(clientID)
	require.NoError(t, err)
	assert.True(t, client.ReportANouveau.IsZero(), "report = %s", client.ReportANouveau)
}

func TestClose_AnneeInvalide(t *testing.T) {
	store := memory.NewStore()
	uc := closing.NewClosureUseCase(store)

	_, err := uc.Close(context.Background(), 0, "admin")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
