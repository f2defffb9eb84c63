package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/application/billing"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/entity"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/infrastructure/memory"
)

const (
	testActor = "karim"

	cimentID = "prod-ciment"
	clientID = "cli-entreprise-batna"
)

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

// plafondEspeces de test, aligné sur la réglementation (100 000).
var plafond = d("100000")

// seedVente pose un produit à 1 000 HT (TVA 19%, stock 100) et un client
// actif avec un seuil de crédit de 10 000.
func seedVente(t *testing.T, store *memory.Store) {
	t.Helper()
	repos := store.Repos()
	require.NoError(t, repos.Products.Create(&entity.Product{
		ID:            cimentID,
		Name:          "Ciment CPJ 42.5",
		Unit:          "tonne",
		PrixCatalogue: d("1000"),
		TauxTVA:       d("19"),
		StockInitial:  d("100"),
		StockActuel:   d("100"),
		Active:        true,
	}))
	require.NoError(t, repos.Clients.Create(&entity.Client{
		ID:          clientID,
		Name:        "Entreprise BTP Batna",
		SeuilCredit: d("10000"),
		Active:      true,
	}))
}

// seedVenteSansTVA : variante à TVA 0 pour des montants TTC ronds.
func seedVenteSansTVA(t *testing.T, store *memory.Store) {
	t.Helper()
	seedVente(t, store)
	taux := decimal.Zero
	require.NoError(t, store.Repos().Products.Patch(cimentID, entity.ProductPatch{TauxTVA: &taux}))
}

func newInvoiceUC(store *memory.Store) *billing.InvoiceUseCase {
	return billing.NewInvoiceUseCase(store, plafond)
}

func ligne(qty string) []billing.LineInput {
	return []billing.LineInput{{ProductID: cimentID, Quantity: d(qty)}}
}

// ────────────────────────────────────────────────────────────────────────────
// Facture au comptant
// ────────────────────────────────────────────────────────────────────────────

func TestCreate_FactureComptantEspeces(t *testing.T) {
	store := memory.NewStore()
	seedVente(t, store)
	uc := newInvoiceUC(store)

	inv, err := uc.Create(context.Background(), billing.CreateInvoiceInput{
		Type:        entity.DocFacture,
		ClientID:    clientID,
		Date:        date("2025-04-01"),
		Lines:       ligne("1"),
		Terms:       entity.TermsComptant,
		PaymentMode: entity.ModeEspeces,
		Actor:       testActor,
	})
	require.NoError(t, err)

	assert.Equal(t, "001/2025", inv.Number)
	assert.Equal(t, entity.StatusBrouillon, inv.Status)
	assert.True(t, inv.TotalHT.Equal(d("1000")))
	assert.True(t, inv.TotalTVA.Equal(d("190")))
	assert.True(t, inv.TotalTTC.Equal(d("1190")))

	// Le stock sort immédiatement.
	product, err := store.Repos().Products.GetByID(cimentID)
	require.NoError(t, err)
	assert.True(t, product.StockActuel.Equal(d("99")))

	// Le paiement comptant est créé et encaissé dans la même transaction.
	payments, err := store.Repos().Payments.ListByClient(clientID, 0)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.True(t, payments[0].Amount.Equal(d("1190")))
	assert.Equal(t, entity.PaymentEncaisse, payments[0].Status)
	require.NotNil(t, payments[0].InvoiceID)
	assert.Equal(t, inv.ID, *payments[0].InvoiceID)
}

func TestCreate_ComptantEspecesAuDessusDuPlafond(t *testing.T) {
	store := memory.NewStore()
	seedVente(t, store)
	// 100 tonnes x 1190 TTC = 119 000 > plafond 100 000.
	uc := newInvoiceUC(store)

	_, err := uc.Create(context.Background(), billing.CreateInvoiceInput{
		Type:        entity.DocFacture,
		ClientID:    clientID,
		Lines:       ligne("100"),
		Terms:       entity.TermsComptant,
		PaymentMode: entity.ModeEspeces,
		Actor:       testActor,
	})
	require.ErrorIs(t, err, domain.ErrCashPaymentOverLimit)

	var ceiling *domain.CashCeilingError
	require.ErrorAs(t, err, &ceiling)
	assert.True(t, ceiling.Amount.Equal(d("119000")))
	assert.True(t, ceiling.Ceiling.Equal(plafond))

	// Rien n'est persisté.
	invoices, err := store.Repos().Invoices.List("", 0)
	require.NoError(t, err)
	assert.Empty(t, invoices)
	product, err := store.Repos().Products.GetByID(cimentID)
	require.NoError(t, err)
	assert.True(t, product.StockActuel.Equal(d("100")))
}

func TestCreate_ComptantChequeSansReference(t *testing.T) {
	store := memory.NewStore()
	seedVente(t, store)
	uc := newInvoiceUC(store)

	_, err := uc.Create(context.Background(), billing.CreateInvoiceInput{
		Type:        entity.DocFacture,
		ClientID:    clientID,
		Lines:       ligne("1"),
		Terms:       entity.TermsComptant,
		PaymentMode: entity.ModeCheque,
		Actor:       testActor,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_ComptantChequeEnAttente(t *testing.T) {
	store := memory.NewStore()
	seedVente(t, store)
	uc := newInvoiceUC(store)

	_, err := uc.Create(context.Background(), billing.CreateInvoiceInput{
		Type:        entity.DocFacture,
		ClientID:    clientID,
		Lines:       ligne("1"),
		Terms:       entity.TermsComptant,
		PaymentMode: entity.ModeCheque,
		PaymentRef:  "CHQ-445210",
		Actor:       testActor,
	})
	require.NoError(t, err)

	payments, err := store.Repos().Payments.ListByClient(clientID, 0)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, entity.PaymentEnAttente, payments[0].Status)
	assert.Equal(t, "CHQ-445210", payments[0].Reference)
}

// ────────────────────────────────────────────────────────────────────────────
// Crédit à terme
// ────────────────────────────────────────────────────────────────────────────

func TestCreate_ATermeDansLeSeuil(t *testing.T) {
	store := memory.NewStore()
	seedVenteSansTVA(t, store)
	uc := newInvoiceUC(store)

	// 8 000 de dette projetée pour un seuil de 10 000 : admis.
	inv, err := uc.Create(context.Background(), billing.CreateInvoiceInput{
		Type:     entity.DocFacture,
		ClientID: clientID,
		Lines:    ligne("8"),
		Terms:    entity.TermsATerme,
		Actor:    testActor,
	})
	require.NoError(t, err)
	assert.True(t, inv.TotalTTC.Equal(d("8000")))

	// Le cache de solde suit la dette.
	client, err := store.Repos().Clients.GetByID(clientID)
	require.NoError(t, err)
	assert.True(t, client.SoldeCourant.Equal(d("-8000")))
}

func TestCreate_ATermeAuDelaDuSeuil(t *testing.T) {
	store := memory.NewStore()
	seedVenteSansTVA(t, store)
	uc := newInvoiceUC(store)
	ctx := context.Background()

	_, err := uc.Create(ctx, billing.CreateInvoiceInput{
		Type:     entity.DocFacture,
		ClientID: clientID,
		Lines:    ligne("8"),
		Terms:    entity.TermsATerme,
		Actor:    testActor,
	})
	require.NoError(t, err)

	// Dette projetée 13 000 pour un seuil de 10 000 : refus, manque 3 000.
	_, err = uc.Create(ctx, billing.CreateInvoiceInput{
		Type:     entity.DocFacture,
		ClientID: clientID,
		Lines:    ligne("5"),
		Terms:    entity.TermsATerme,
		Actor:    testActor,
	})
	require.ErrorIs(t, err, domain.ErrCreditLimitExceeded)

	var shortfall *domain.CreditShortfallError
	require.ErrorAs(t, err, &shortfall)
	assert.True(t, shortfall.Shortfall.Equal(d("3000")), "manque = %s", shortfall.Shortfall)
	assert.True(t, shortfall.Projected.Equal(d("-13000")))

	// La facture refusée n'a laissé aucune trace.
	invoices, err := store.Repos().Invoices.List(clientID, 0)
	require.NoError(t, err)
	assert.Len(t, invoices, 1)
	product, err := store.Repos().Products.GetByID(cimentID)
	require.NoError(t, err)
	assert.True(t, product.StockActuel.Equal(d("92")))
}

func TestCreate_ATermeUnPaiementLibereLeSeuil(t *testing.T) {
	store := memory.NewStore()
	seedVenteSansTVA(t, store)
	uc := newInvoiceUC(store)
	payUC := billing.NewPaymentUseCase(store, plafond)
	ctx := context.Background()

	_, err := uc.Create(ctx, billing.CreateInvoiceInput{
		Type:     entity.DocFacture,
		ClientID: clientID,
		Lines:    ligne("8"),
		Terms:    entity.TermsATerme,
		Actor:    testActor,
	})
	require.NoError(t, err)

	_, err = payUC.RecordPayment(ctx, billing.RecordPaymentInput{
		ClientID: clientID,
		Amount:   d("4000"),
		Mode:     entity.ModeEspeces,
		Actor:    testActor,
	})
	require.NoError(t, err)

	// Solde -4 000, projeté -9 000 : repasse sous le seuil.
	_, err = uc.Create(ctx, billing.CreateInvoiceInput{
		Type:     entity.DocFacture,
		ClientID: clientID,
		Lines:    ligne("5"),
		Terms:    entity.TermsATerme,
		Actor:    testActor,
	})
	assert.NoError(t, err)
}

// ────────────────────────────────────────────────────────────────────────────
// Sur avance
// ────────────────────────────────────────────────────────────────────────────

func TestCreate_SurAvanceInsuffisante(t *testing.T) {
	store := memory.NewStore()
	seedVenteSansTVA(t, store)
	uc := newInvoiceUC(store)

	_, err := uc.Create(context.Background(), billing.CreateInvoiceInput{
		Type:     entity.DocFacture,
		ClientID: clientID,
		Lines:    ligne("5"),
		Terms:    entity.TermsSurAvance,
		Actor:    testActor,
	})
	require.ErrorIs(t, err, domain.ErrAdvanceBalanceInsufficient)

	var advance *domain.AdvanceError
	require.ErrorAs(t, err, &advance)
	assert.True(t, advance.Requested.Equal(d("5000")))
}

func TestCreate_SurAvanceCouverte(t *testing.T) {
	store := memory.NewStore()
	seedVenteSansTVA(t, store)
	uc := newInvoiceUC(store)
	payUC := billing.NewPaymentUseCase(store, plafond)
	ctx := context.Background()

	_, err := payUC.RecordPayment(ctx, billing.RecordPaymentInput{
		ClientID: clientID,
		Amount:   d("6000"),
		Mode:     entity.ModeEspeces,
		Actor:    testActor,
	})
	require.NoError(t, err)

	_, err = uc.Create(ctx, billing.CreateInvoiceInput{
		Type:     entity.DocFacture,
		ClientID: clientID,
		Lines:    ligne("5"),
		Terms:    entity.TermsSurAvance,
		Actor:    testActor,
	})
	require.NoError(t, err)

	client, err := store.Repos().Clients.GetByID(clientID)
	require.NoError(t, err)
	assert.True(t, client.SoldeCourant.Equal(d("1000")))
}

// ────────────────────────────────────────────────────────────────────────────
// Stock et numérotation
// ────────────────────────────────────────────────────────────────────────────

func TestCreate_StockInsuffisant(t *testing.T) {
	store := memory.NewStore()
	seedVente(t, store)
	uc := newInvoiceUC(store)

	_, err := uc.Create(context.Background(), billing.CreateInvoiceInput{
		Type:        entity.DocFacture,
		ClientID:    clientID,
		Lines:       ligne("200"),
		Terms:       entity.TermsComptant,
		PaymentMode: entity.ModeVirement,
		PaymentRef:  "VIR-1",
		Actor:       testActor,
	})
	assert.ErrorIs(t, err, domain.ErrStockInsufficient)
}

func TestCreate_NumerotationMonotoneParTypeEtExercice(t *testing.T) {
	store := memory.NewStore()
	seedVente(t, store)
	uc := newInvoiceUC(store)
	ctx := context.Background()

	facture := func(day string) *entity.Invoice {
		inv, err := uc.Create(ctx, billing.CreateInvoiceInput{
			Type:        entity.DocFacture,
			ClientID:    clientID,
			Date:        date(day),
			Lines:       ligne("1"),
			Terms:       entity.TermsComptant,
			PaymentMode: entity.ModeEspeces,
			Actor:       testActor,
		})
		require.NoError(t, err)
		return inv
	}

	assert.Equal(t, "001/2025", facture("2025-01-10").Number)
	assert.Equal(t, "002/2025", facture("2025-01-11").Number)
	// Nouvel exercice : le compteur repart.
	assert.Equal(t, "001/2026", facture("2026-01-05").Number)

	// L'avoir a son propre compteur.
	origin := facture("2025-01-12")
	avoir, err := uc.Create(ctx, billing.CreateInvoiceInput{
		Type:            entity.DocAvoir,
		ClientID:        clientID,
		Date:            date("2025-01-13"),
		Lines:           ligne("1"),
		OriginInvoiceID: &origin.ID,
		Motif:           "retour marchandise",
		Actor:           testActor,
	})
	require.NoError(t, err)
	assert.Equal(t, "001/2025", avoir.Number)
}

// ────────────────────────────────────────────────────────────────────────────
// Avoirs
// ────────────────────────────────────────────────────────────────────────────

func TestCreate_AvoirRestitueLeStock(t *testing.T) {
	store := memory.NewStore()
	seedVente(t, store)
	uc := newInvoiceUC(store)
	ctx := context.Background()

	origin, err := uc.Create(ctx, billing.CreateInvoiceInput{
		Type:        entity.DocFacture,
		ClientID:    clientID,
		Lines:       ligne("10"),
		Terms:       entity.TermsComptant,
		PaymentMode: entity.ModeEspeces,
		Actor:       testActor,
	})
	require.NoError(t, err)

	avoir, err := uc.Create(ctx, billing.CreateInvoiceInput{
		Type:            entity.DocAvoir,
		ClientID:        clientID,
		Lines:           ligne("4"),
		OriginInvoiceID: &origin.ID,
		Motif:           "ciment non conforme",
		Actor:           testActor,
	})
	require.NoError(t, err)

	// Totaux en valeur absolue, lignes négatives.
	assert.True(t, avoir.TotalTTC.Equal(d("4760")))
	lines, err := store.Repos().Invoices.GetLines(avoir.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.True(t, lines[0].Quantity.Equal(d("-4")))

	// 100 - 10 + 4 = 94.
	product, err := store.Repos().Products.GetByID(cimentID)
	require.NoError(t, err)
	assert.True(t, product.StockActuel.Equal(d("94")))

	// Le sous-statut de la facture d'origine est dérivé.
	refreshed, err := store.Repos().Invoices.GetByID(origin.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.CreditPartiel, refreshed.CreditStatus)
}

func TestCreate_AvoirBorneParLaFactureOrigine(t *testing.T) {
	store := memory.NewStore()
	seedVente(t, store)
	uc := newInvoiceUC(store)
	ctx := context.Background()

	origin, err := uc.Create(ctx, billing.CreateInvoiceInput{
		Type:        entity.DocFacture,
		ClientID:    clientID,
		Lines:       ligne("10"),
		Terms:       entity.TermsComptant,
		PaymentMode: entity.ModeEspeces,
		Actor:       testActor,
	})
	require.NoError(t, err)

	// Avoir total : admis, la facture est totalement utilisée.
	_, err = uc.Create(ctx, billing.CreateInvoiceInput{
		Type:            entity.DocAvoir,
		ClientID:        clientID,
		Lines:           ligne("10"),
		OriginInvoiceID: &origin.ID,
		Motif:           "annulation commerciale",
		Actor:           testActor,
	})
	require.NoError(t, err)

	refreshed, err := store.Repos().Invoices.GetByID(origin.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.CreditTotal, refreshed.CreditStatus)

	// Le moindre avoir supplémentaire dépasse la borne.
	_, err = uc.Create(ctx, billing.CreateInvoiceInput{
		Type:            entity.DocAvoir,
		ClientID:        clientID,
		Lines:           ligne("1"),
		OriginInvoiceID: &origin.ID,
		Motif:           "re-retour",
		Actor:           testActor,
	})
	require.ErrorIs(t, err, domain.ErrCreditNoteExceedsRemaining)

	var bound *domain.CreditNoteBoundError
	require.ErrorAs(t, err, &bound)
	assert.True(t, bound.OriginTTC.Equal(d("11900")))
	assert.True(t, bound.AlreadyTTC.Equal(d("11900")))
}

func TestCreate_AvoirSansOrigine(t *testing.T) {
	store := memory.NewStore()
	seedVente(t, store)
	uc := newInvoiceUC(store)

	_, err := uc.Create(context.Background(), billing.CreateInvoiceInput{
		Type:     entity.DocAvoir,
		ClientID: clientID,
		Lines:    ligne("1"),
		Motif:    "retour",
		Actor:    testActor,
	})
	assert.ErrorIs(t, err, domain.ErrMissingOriginInvoice)
}

// ────────────────────────────────────────────────────────────────────────────
// Divers
// ────────────────────────────────────────────────────────────────────────────

func TestCreate_ContratExpire(t *testing.T) {
	store := memory.NewStore()
	seedVente(t, store)
	uc := newInvoiceUC(store)

	contractID := "ctr-2024"
	require.NoError(t, store.Repos().Contracts.Create(&entity.Contract{
		ID:        contractID,
		ClientID:  clientID,
		Reference: "CONV-2024-17",
		StartDate: date("2024-01-01"),
		EndDate:   date("2024-12-31"),
		Active:    true,
	}))

	_, err := uc.Create(context.Background(), billing.CreateInvoiceInput{
		Type:        entity.DocFacture,
		ClientID:    clientID,
		Date:        date("2025-06-01"),
		Lines:       ligne("1"),
		Terms:       entity.TermsComptant,
		PaymentMode: entity.ModeEspeces,
		ContractID:  &contractID,
		Actor:       testActor,
	})
	assert.ErrorIs(t, err, domain.ErrContractInactiveOrExpired)
}

func TestCreate_ClientInactif(t *testing.T) {
	store := memory.NewStore()
	seedVente(t, store)
	inactive := false
	require.NoError(t, store.Repos().Clients.Patch(clientID, entity.ClientPatch{Active: &inactive}))
	uc := newInvoiceUC(store)

	_, err := uc.Create(context.Background(), billing.CreateInvoiceInput{
		Type:        entity.DocFacture,
		ClientID:    clientID,
		Lines:       ligne("1"),
		Terms:       entity.TermsComptant,
		PaymentMode: entity.ModeEspeces,
		Actor:       testActor,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_RemiseAppliqueeLigneParLigne(t *testing.T) {
	store := memory.NewStore()
	seedVente(t, store)
	uc := newInvoiceUC(store)

	inv, err := uc.Create(context.Background(), billing.CreateInvoiceInput{
		Type:     entity.DocFacture,
		ClientID: clientID,
		Lines: []billing.LineInput{
			{ProductID: cimentID, Quantity: d("2"), RemisePct: d("10")},
		},
		Terms:       entity.TermsComptant,
		PaymentMode: entity.ModeEspeces,
		Actor:       testActor,
	})
	require.NoError(t, err)

	// 2 x 1000 x 0.90 = 1800 HT, TVA 342, TTC 2142.
	assert.True(t, inv.TotalHT.Equal(d("1800")))
	assert.True(t, inv.TotalTTC.Equal(d("2142")))

	lines, err := store.Repos().Invoices.GetLines(inv.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.True(t, lines[0].PrixNet.Equal(d("900")))
	assert.True(t, lines[0].RemisePct.Equal(d("10")))
}
