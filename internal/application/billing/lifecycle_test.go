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

// creerFacture pose une facture comptant espèces d'une tonne (TTC 1 190).
func creerFacture(t *testing.T, store *memory.Store, uc *billing.InvoiceUseCase) *entity.Invoice {
	t.Helper()
	inv, err := uc.Create(context.Background(), billing.CreateInvoiceInput{
		Type:        entity.DocFacture,
		ClientID:    clientID,
		Date:        date("2025-05-02"),
		Lines:       ligne("1"),
		Terms:       entity.TermsComptant,
		PaymentMode: entity.ModeEspeces,
		Actor:       testActor,
	})
	require.NoError(t, err)
	return inv
}

// ────────────────────────────────────────────────────────────────────────────
// Confirmation
// ────────────────────────────────────────────────────────────────────────────

func TestConfirm_VerrouilleLeBrouillon(t *testing.T) {
	store := memory.NewStore()
	seedVente(t, store)
	uc := newInvoiceUC(store)
	ctx := context.Background()

	inv := creerFacture(t, store, uc)
	require.NoError(t, uc.Confirm(ctx, inv.ID))

	refreshed, err := store.Repos().Invoices.GetByID(inv.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusConfirmee, refreshed.Status)

	// Idempotent.
	assert.NoError(t, uc.Confirm(ctx, inv.ID))
}

func TestConfirm_Introuvable(t *testing.T) {
	store := memory.NewStore()
	uc := newInvoiceUC(store)
	assert.ErrorIs(t, uc.Confirm(context.Background(), "absent"), domain.ErrNotFound)
}

// ────────────────────────────────────────────────────────────────────────────
// Modification de brouillon
// ────────────────────────────────────────────────────────────────────────────

func TestUpdateDraft_RemplaceLesLignes(t *testing.T) {
	store := memory.NewStore()
	seedVente(t, store)
	uc := newInvoiceUC(store)

	inv := creerFacture(t, store, uc) // 1 tonne, stock 100 -> 99

	updated, err := uc.UpdateDraft(context.Background(), billing.UpdateDraftInput{
		InvoiceID: inv.ID,
		Lines:     ligne("3"),
		Actor:     testActor,
	})
	require.NoError(t, err)
	assert.True(t, updated.TotalTTC.Equal(d("3570")))

	lines, err := store.Repos().Invoices.GetLines(inv.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.True(t, lines[0].Quantity.Equal(d("3")))

	// Reversion +1 puis nouvelle vente -3 : stock net 97.
	product, err := store.Repos().Products.GetByID(cimentID)
	require.NoError(t, err)
	assert.True(t, product.StockActuel.Equal(d("97")))

	// La reversion laisse une trace CORRECTION_MANUELLE au livre.
	movs, err := store.Repos().Movements.ListByProduct(cimentID, 0)
	require.NoError(t, err)
	kinds := make(map[string]int)
	for _, m := range movs {
		kinds[m.Kind]++
	}
	assert.Equal(t, 1, kinds[entity.MovementCorrectionManuelle])
	assert.Equal(t, 2, kinds[entity.MovementVente])
}

func TestUpdateDraft_RefuseHorsBrouillon(t *testing.T) {
	store := memory.NewStore()
	seedVente(t, store)
	uc := newInvoiceUC(store)
	ctx := context.Background()

	inv := creerFacture(t, store, uc)
	require.NoError(t, uc.Confirm(ctx, inv.ID))

	_, err := uc.UpdateDraft(ctx, billing.UpdateDraftInput{
		InvoiceID: inv.ID,
		Lines:     ligne("2"),
		Actor:     testActor,
	})
	assert.ErrorIs(t, err, domain.ErrNotEditable)
}

func TestUpdateDraft_ControleLeSurplusDeCredit(t *testing.T) {
	store := memory.NewStore()
	seedVenteSansTVA(t, store)
	uc := newInvoiceUC(store)
	ctx := context.Background()

	inv, err := uc.Create(ctx, billing.CreateInvoiceInput{
		Type:     entity.DocFacture,
		ClientID: clientID,
		Lines:    ligne("8"),
		Terms:    entity.TermsATerme,
		Actor:    testActor,
	})
	require.NoError(t, err)

	// 8 000 -> 9 000 : toujours sous le seuil de 10 000.
	_, err = uc.UpdateDraft(ctx, billing.UpdateDraftInput{
		InvoiceID: inv.ID,
		Lines:     ligne("9"),
		Actor:     testActor,
	})
	require.NoError(t, err)

	// 9 000 -> 12 000 : dépasse.
	_, err = uc.UpdateDraft(ctx, billing.UpdateDraftInput{
		InvoiceID: inv.ID,
		Lines:     ligne("12"),
		Actor:     testActor,
	})
	assert.ErrorIs(t, err, domain.ErrCreditLimitExceeded)
}

// ────────────────────────────────────────────────────────────────────────────
// Annulation par compensation
// ────────────────────────────────────────────────────────────────────────────

func TestCancel_CompenseEtJournalise(t *testing.T) {
	store := memory.NewStore()
	seedVente(t, store)
	uc := newInvoiceUC(store)
	ctx := context.Background()

	inv := creerFacture(t, store, uc) // TTC 1 190, stock 99
	require.NoError(t, uc.Confirm(ctx, inv.ID))

	require.NoError(t, uc.Cancel(ctx, inv.ID, "erreur de saisie client", testActor))

	// La facture est mise à zéro, statut ANNULEE, motif conservé.
	cancelled, err := store.Repos().Invoices.GetByID(inv.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusAnnulee, cancelled.Status)
	assert.True(t, cancelled.TotalTTC.IsZero())
	assert.True(t, cancelled.TotalHT.IsZero())
	assert.Equal(t, "erreur de saisie client", cancelled.CancelMotif)

	// Les lignes aussi.
	lines, err := store.Repos().Invoices.GetLines(inv.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.True(t, lines[0].Quantity.IsZero())
	assert.True(t, lines[0].MontantHT.IsZero())

	// Le stock est restitué par compensation, pas par effacement.
	product, err := store.Repos().Products.GetByID(cimentID)
	require.NoError(t, err)
	assert.True(t, product.StockActuel.Equal(d("100")))

	movs, err := store.Repos().Movements.ListByProduct(cimentID, 0)
	require.NoError(t, err)
	require.Len(t, movs, 2) // la vente d'origine reste au livre
	assert.Equal(t, entity.MovementAnnulationVente, movs[0].Kind)
	assert.True(t, movs[0].Quantity.Equal(d("1")))

	// Le journal garde les montants d'origine.
	records, err := store.Repos().Journal.ListByInvoice(inv.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].OriginalTTC.Equal(d("1190")))
	assert.True(t, records[0].OriginalHT.Equal(d("1000")))
	assert.Equal(t, "erreur de saisie client", records[0].Motif)
	assert.Equal(t, testActor, records[0].Actor)
}

func TestCancel_DoubleAnnulationRefusee(t *testing.T) {
	store := memory.NewStore()
	seedVente(t, store)
	uc := newInvoiceUC(store)
	ctx := context.Background()

	inv := creerFacture(t, store, uc)
	require.NoError(t, uc.Cancel(ctx, inv.ID, "erreur", testActor))

	err := uc.Cancel(ctx, inv.ID, "encore", testActor)
	assert.ErrorIs(t, err, domain.ErrAlreadyCancelled)

	// Une seule compensation au livre.
	movs, err := store.Repos().Movements.ListByProduct(cimentID, 0)
	require.NoError(t, err)
	count := 0
	for _, m := range movs {
		if m.Kind == entity.MovementAnnulationVente {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestCancel_MotifObligatoire(t *testing.T) {
	store := memory.NewStore()
	seedVente(t, store)
	uc := newInvoiceUC(store)

	inv := creerFacture(t, store, uc)
	err := uc.Cancel(context.Background(), inv.ID, "", testActor)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCancel_AvoirNonAnnulable(t *testing.T) {
	store := memory.NewStore()
	seedVente(t, store)
	uc := newInvoiceUC(store)
	ctx := context.Background()

	origin := creerFacture(t, store, uc)
	avoir, err := uc.Create(ctx, billing.CreateInvoiceInput{
		Type:            entity.DocAvoir,
		ClientID:        clientID,
		Lines:           ligne("1"),
		OriginInvoiceID: &origin.ID,
		Motif:           "retour",
		Actor:           testActor,
	})
	require.NoError(t, err)

	err = uc.Cancel(ctx, avoir.ID, "tentative", testActor)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCancel_RetablitLeSoldeClient(t *testing.T) {
	store := memory.NewStore()
	seedVenteSansTVA(t, store)
	uc := newInvoiceUC(store)
	ctx := context.Background()

	inv, err := uc.Create(ctx, billing.CreateInvoiceInput{
		Type:     entity.DocFacture,
		ClientID: clientID,
		Lines:    ligne("8"),
		Terms:    entity.TermsATerme,
		Actor:    testActor,
	})
	require.NoError(t, err)

	client, err := store.Repos().Clients.GetByID(clientID)
	require.NoError(t, err)
	require.True(t, client.SoldeCourant.Equal(d("-8000")))

	require.NoError(t, uc.Cancel(ctx, inv.ID, "annulation commerciale", testActor))

	client, err = store.Repos().Clients.GetByID(clientID)
	require.NoError(t, err)
	assert.True(t, client.SoldeCourant.IsZero())
}
