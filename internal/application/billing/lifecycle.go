package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/application/ports"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/application/stock"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/entity"
)

// UpdateDraftInput entrée de remplacement des lignes d'un brouillon.
type UpdateDraftInput struct {
	InvoiceID string
	Lines     []LineInput
	Actor     string
}

// UpdateDraft remplace les lignes d'une facture encore en brouillon :
// reversion de l'impact stock des anciennes lignes par des écritures
// CORRECTION_MANUELLE, suppression des lignes, recalcul des totaux puis
// re-passage des écritures de vente. Refusé hors statut BROUILLON.
func (uc *InvoiceUseCase) UpdateDraft(ctx context.Context, in UpdateDraftInput) (*entity.Invoice, error) {
	if in.InvoiceID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	var inv *entity.Invoice
	err := uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		var err error
		inv, err = r.Invoices.GetByID(in.InvoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if inv.Status != entity.StatusBrouillon {
			return domain.ErrNotEditable
		}
		if inv.Type != entity.DocFacture {
			return domain.ErrNotEditable
		}

		client, err := r.Clients.GetByID(inv.ClientID)
		if err != nil {
			return err
		}
		if client == nil {
			return domain.ErrNotFound
		}

		// Reversion : chaque ancienne ligne avait produit un delta -quantité,
		// la correction passe le delta opposé.
		oldLines, err := r.Invoices.GetLines(inv.ID)
		if err != nil {
			return err
		}
		for _, line := range oldLines {
			if _, err := stock.PostInTx(r, stock.PostInput{
				ProductID:  line.ProductID,
				Kind:       entity.MovementCorrectionManuelle,
				Quantity:   line.Quantity,
				Reference:  fmt.Sprintf("Reversion brouillon %s", inv.Number),
				DocumentID: inv.ID,
				Actor:      in.Actor,
				Date:       inv.Date,
			}); err != nil {
				return err
			}
		}
		if err := r.Invoices.DeleteLines(inv.ID); err != nil {
			return err
		}

		newLines, totals, err := buildLines(r, inv.Type, inv.ID, in.Lines)
		if err != nil {
			return err
		}
		if err := checkAvailability(r, in.Lines); err != nil {
			return err
		}
		if inv.Terms == entity.TermsATerme {
			// Le brouillon courant est déjà compté dans le solde : on ne
			// contrôle que le surplus par rapport aux anciens totaux.
			balance, err := runningBalance(r.Invoices, r.Payments, r.Closures, client)
			if err != nil {
				return err
			}
			if err := checkCredit(balance.Add(inv.TotalTTC), totals.TTC, client.SeuilCredit); err != nil {
				return err
			}
		}

		now := time.Now()
		inv.TotalHT = totals.HT
		inv.TotalTVA = totals.TVA
		inv.TotalTTC = totals.TTC
		inv.UpdatedAt = now

		for _, line := range newLines {
			if err := r.Invoices.CreateLine(line); err != nil {
				return err
			}
		}
		if err := postDocumentMovements(r, inv, newLines, in.Actor); err != nil {
			return err
		}
		if err := r.Invoices.UpdateTotals(inv.ID, totals, now); err != nil {
			return err
		}
		return refreshSoldeCache(r, client)
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// Confirm fait passer un brouillon en CONFIRMEE (verrouillée).
// Idempotent si la facture est déjà confirmée.
func (uc *InvoiceUseCase) Confirm(ctx context.Context, invoiceID string) error {
	return uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		inv, err := r.Invoices.GetByID(invoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		switch inv.Status {
		case entity.StatusConfirmee:
			return nil // déjà confirmée : no-op
		case entity.StatusAnnulee:
			return domain.ErrAlreadyCancelled
		}
		return r.Invoices.UpdateStatus(invoiceID, entity.StatusConfirmee, time.Now())
	})
}

// Cancel annule une facture par compensation : écriture ANNULATION_VENTE
// (+quantité) par ligne, entrée au journal des annulations avec les montants
// d'origine, puis mise à zéro des totaux et des lignes et statut ANNULEE.
// Irréversible : pas de dés-annulation, une nouvelle facture doit être émise.
// Les avoirs ne s'annulent pas.
func (uc *InvoiceUseCase) Cancel(ctx context.Context, invoiceID, motif, actor string) error {
	if motif == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		inv, err := r.Invoices.GetByID(invoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if inv.Type != entity.DocFacture {
			return domain.ErrInvalidInput
		}
		if inv.Status == entity.StatusAnnulee {
			return domain.ErrAlreadyCancelled
		}

		client, err := r.Clients.GetByID(inv.ClientID)
		if err != nil {
			return err
		}
		if client == nil {
			return domain.ErrNotFound
		}

		lines, err := r.Invoices.GetLines(inv.ID)
		if err != nil {
			return err
		}

		now := time.Now()
		record := &entity.CancellationRecord{
			ID:          uuid.New().String(),
			InvoiceID:   inv.ID,
			OriginalHT:  inv.TotalHT,
			OriginalTTC: inv.TotalTTC,
			Motif:       motif,
			Actor:       actor,
			CreatedAt:   now,
		}
		if err := r.Journal.CreateRecord(record); err != nil {
			return err
		}

		for _, line := range lines {
			mov, err := stock.PostInTx(r, stock.PostInput{
				ProductID:  line.ProductID,
				Kind:       entity.MovementAnnulationVente,
				Quantity:   line.Quantity,
				Reference:  fmt.Sprintf("Annulation facture %s: %s", inv.Number, motif),
				DocumentID: inv.ID,
				Actor:      actor,
				Date:       now,
			})
			if err != nil {
				return err
			}
			if err := r.Journal.CreateLine(&entity.CancellationLine{
				RecordID:    record.ID,
				ProductID:   mov.ProductID,
				QtyRestored: line.Quantity,
			}); err != nil {
				return err
			}
		}

		if err := r.Invoices.ZeroOut(inv.ID, motif, now); err != nil {
			return err
		}
		return refreshSoldeCache(r, client)
	})
}
