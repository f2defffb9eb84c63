package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/application/ports"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/application/stock"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/entity"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/finance"
)

// Tolérance sur le cumul des avoirs face au TTC de la facture d'origine.
var creditNoteEpsilon = decimal.NewFromFloat(0.01)

// InvoiceUseCase porte le cycle de vie des factures et avoirs :
// création, modification de brouillon, confirmation, annulation.
// Chaque opération s'exécute dans une seule transaction : totaux, écritures de
// stock, paiement comptant et solde client sont tous commis ou tous annulés.
type InvoiceUseCase struct {
	txRunner       ports.TxRunner
	plafondEspeces decimal.Decimal
}

// NewInvoiceUseCase construit le cas d'usage.
func NewInvoiceUseCase(txRunner ports.TxRunner, plafondEspeces decimal.Decimal) *InvoiceUseCase {
	return &InvoiceUseCase{txRunner: txRunner, plafondEspeces: plafondEspeces}
}

// LineInput est une ligne saisie (quantité toujours positive à la saisie,
// le signe est posé par le type de document).
type LineInput struct {
	ProductID string
	Quantity  decimal.Decimal
	RemisePct decimal.Decimal
}

// CreateInvoiceInput entrée de création d'une facture ou d'un avoir.
type CreateInvoiceInput struct {
	Type            string // FACTURE ou AVOIR
	ClientID        string
	Date            time.Time
	Lines           []LineInput
	Terms           string  // FACTURE uniquement
	OriginInvoiceID *string // AVOIR uniquement
	Motif           string  // AVOIR uniquement
	ContractID      *string
	PaymentMode     string // COMPTANT uniquement
	PaymentRef      string // n° de chèque/virement pour les modes encadrés
	Actor           string
}

// Create valide puis persiste le document, ses lignes, ses écritures de stock
// et, au comptant, le paiement correspondant. Toute validation précède la
// moindre persistance ; le moindre échec annule l'ensemble.
func (uc *InvoiceUseCase) Create(ctx context.Context, in CreateInvoiceInput) (*entity.Invoice, error) {
	if in.ClientID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	switch in.Type {
	case entity.DocFacture:
		if in.Terms != entity.TermsComptant && in.Terms != entity.TermsATerme && in.Terms != entity.TermsSurAvance {
			return nil, domain.ErrInvalidInput
		}
	case entity.DocAvoir:
		if in.OriginInvoiceID == nil || *in.OriginInvoiceID == "" {
			return nil, domain.ErrMissingOriginInvoice
		}
		if in.Motif == "" {
			return nil, domain.ErrInvalidInput
		}
	default:
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	date := in.Date
	if date.IsZero() {
		date = now
	}

	var inv *entity.Invoice
	err := uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		client, err := r.Clients.GetByID(in.ClientID)
		if err != nil {
			return err
		}
		if client == nil || !client.Active {
			return domain.ErrNotFound
		}

		if in.ContractID != nil && *in.ContractID != "" {
			contract, err := r.Contracts.GetByID(*in.ContractID)
			if err != nil {
				return err
			}
			if contract == nil || contract.ClientID != client.ID || !contract.ValidOn(date) {
				return domain.ErrContractInactiveOrExpired
			}
		}

		invoiceID := uuid.New().String()
		lines, totals, err := buildLines(r, in.Type, invoiceID, in.Lines)
		if err != nil {
			return err
		}

		var origin *entity.Invoice
		if in.Type == entity.DocFacture {
			if err := checkAvailability(r, in.Lines); err != nil {
				return err
			}
			if err := uc.checkTerms(r, client, in, totals.TTC); err != nil {
				return err
			}
		} else {
			origin, err = r.Invoices.GetByID(*in.OriginInvoiceID)
			if err != nil {
				return err
			}
			if origin == nil || origin.Type != entity.DocFacture {
				return domain.ErrMissingOriginInvoice
			}
			if origin.Status == entity.StatusAnnulee {
				return domain.ErrMissingOriginInvoice
			}
			already, err := r.Invoices.SumCreditNotesTTC(origin.ID)
			if err != nil {
				return err
			}
			if already.Add(totals.TTC).GreaterThan(origin.TotalTTC.Add(creditNoteEpsilon)) {
				return &domain.CreditNoteBoundError{
					OriginTTC:  origin.TotalTTC,
					AlreadyTTC: already,
					Requested:  totals.TTC,
				}
			}
		}

		seq, err := r.Sequences.Next(in.Type, date.Year())
		if err != nil {
			return err
		}

		inv = &entity.Invoice{
			ID:              invoiceID,
			Number:          fmt.Sprintf("%03d/%d", seq, date.Year()),
			Type:            in.Type,
			Date:            date,
			ClientID:        client.ID,
			OriginInvoiceID: in.OriginInvoiceID,
			ContractID:      in.ContractID,
			Terms:           in.Terms,
			TotalHT:         totals.HT,
			TotalTVA:        totals.TVA,
			TotalTTC:        totals.TTC,
			Status:          entity.StatusBrouillon,
			Motif:           in.Motif,
			CreatedAt:       now,
			UpdatedAt:       now,
			CreatedBy:       in.Actor,
		}
		if err := r.Invoices.Create(inv); err != nil {
			return err
		}
		for _, line := range lines {
			if err := r.Invoices.CreateLine(line); err != nil {
				return err
			}
		}

		if err := postDocumentMovements(r, inv, lines, in.Actor); err != nil {
			return err
		}

		if in.Type == entity.DocFacture && in.Terms == entity.TermsComptant {
			status := entity.PaymentEnAttente
			if in.PaymentMode == entity.ModeEspeces {
				status = entity.PaymentEncaisse
			}
			payment := &entity.Payment{
				ID:        uuid.New().String(),
				ClientID:  client.ID,
				InvoiceID: &inv.ID,
				Amount:    totals.TTC,
				Mode:      in.PaymentMode,
				Reference: in.PaymentRef,
				Status:    status,
				Date:      date,
				CreatedAt: now,
				CreatedBy: in.Actor,
			}
			if err := r.Payments.Create(payment); err != nil {
				return err
			}
		}

		if origin != nil {
			if err := refreshCreditStatus(r, origin); err != nil {
				return err
			}
		}

		return refreshSoldeCache(r, client)
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// checkTerms applique les règles propres à la modalité de vente d'une facture.
func (uc *InvoiceUseCase) checkTerms(r ports.TxRepos, client *entity.Client, in CreateInvoiceInput, ttc decimal.Decimal) error {
	switch in.Terms {
	case entity.TermsATerme:
		balance, err := runningBalance(r.Invoices, r.Payments, r.Closures, client)
		if err != nil {
			return err
		}
		return checkCredit(balance, ttc, client.SeuilCredit)

	case entity.TermsComptant:
		switch in.PaymentMode {
		case entity.ModeEspeces:
			if ttc.GreaterThan(uc.plafondEspeces) {
				return &domain.CashCeilingError{Amount: ttc, Ceiling: uc.plafondEspeces}
			}
		case entity.ModeCheque, entity.ModeVirement, entity.ModeVersement:
			if in.PaymentRef == "" {
				return domain.ErrInvalidInput
			}
		default:
			return domain.ErrInvalidInput
		}
		return nil

	case entity.TermsSurAvance:
		balance, err := runningBalance(r.Invoices, r.Payments, r.Closures, client)
		if err != nil {
			return err
		}
		if balance.LessThan(ttc) {
			return &domain.AdvanceError{Available: balance, Requested: ttc}
		}
		return nil
	}
	return domain.ErrInvalidInput
}

// buildLines valide les lignes saisies et construit les lignes persistées :
// prix catalogue du produit, remise, prix net, montant HT arrondi à la ligne.
// Les lignes d'avoir portent une quantité négative.
func buildLines(r ports.TxRepos, docType, invoiceID string, inputs []LineInput) ([]*entity.InvoiceLine, finance.Totals, error) {
	var lines []*entity.InvoiceLine
	var hts, tvas []decimal.Decimal

	for _, in := range inputs {
		if in.ProductID == "" || !in.Quantity.GreaterThan(decimal.Zero) {
			return nil, finance.Totals{}, domain.ErrInvalidInput
		}
		if in.RemisePct.LessThan(decimal.Zero) || in.RemisePct.GreaterThan(decimal.NewFromInt(100)) {
			return nil, finance.Totals{}, domain.ErrInvalidInput
		}
		product, err := r.Products.GetByID(in.ProductID)
		if err != nil {
			return nil, finance.Totals{}, err
		}
		if product == nil || !product.Active {
			return nil, finance.Totals{}, domain.ErrUnknownProduct
		}
		hasChildren, err := r.Products.HasChildren(product.ID)
		if err != nil {
			return nil, finance.Totals{}, err
		}
		if hasChildren {
			return nil, finance.Totals{}, domain.ErrParentProductNotSellable
		}

		qty := in.Quantity
		if docType == entity.DocAvoir {
			qty = qty.Neg()
		}
		prixNet := finance.NetUnitPrice(product.PrixCatalogue, in.RemisePct)
		ht := finance.LineHT(qty, prixNet)
		tva := finance.LineTVA(ht, product.TauxTVA)

		lines = append(lines, &entity.InvoiceLine{
			ID:            uuid.New().String(),
			InvoiceID:     invoiceID,
			ProductID:     product.ID,
			Quantity:      qty,
			PrixCatalogue: product.PrixCatalogue,
			RemisePct:     in.RemisePct,
			PrixNet:       prixNet,
			MontantHT:     ht,
		})
		hts = append(hts, ht)
		tvas = append(tvas, tva)
	}

	totals := finance.DocumentTotals(hts, tvas)
	// Les totaux d'un avoir sont stockés en valeur absolue : c'est le montant
	// du document, consommé tel quel par le solde client et la borne d'avoir.
	if docType == entity.DocAvoir {
		totals = finance.Totals{HT: totals.HT.Abs(), TVA: totals.TVA.Abs(), TTC: totals.TTC.Abs()}
	}
	return lines, totals, nil
}

// checkAvailability vérifie la disponibilité du stock pour une vente, cumulée
// par produit propriétaire (les variantes enfants consomment le stock du parent).
func checkAvailability(r ports.TxRepos, inputs []LineInput) error {
	needed := make(map[string]decimal.Decimal)
	stocks := make(map[string]decimal.Decimal)
	for _, in := range inputs {
		owner, _, err := stock.ResolveStockOwner(r.Products, in.ProductID)
		if err != nil {
			return err
		}
		needed[owner.ID] = needed[owner.ID].Add(in.Quantity)
		stocks[owner.ID] = owner.StockActuel
	}
	for ownerID, qty := range needed {
		if stocks[ownerID].LessThan(qty) {
			return domain.ErrStockInsufficient
		}
	}
	return nil
}

// postDocumentMovements passe les écritures de stock de chaque ligne :
// VENTE (delta négatif) pour une facture, RETOUR_AVOIR (delta positif) pour
// un avoir. Le delta est l'opposé de la quantité de ligne dans les deux cas.
func postDocumentMovements(r ports.TxRepos, inv *entity.Invoice, lines []*entity.InvoiceLine, actor string) error {
	kind := entity.MovementVente
	label := "Facture"
	if inv.Type == entity.DocAvoir {
		kind = entity.MovementRetourAvoir
		label = "Avoir"
	}
	for _, line := range lines {
		if _, err := stock.PostInTx(r, stock.PostInput{
			ProductID:  line.ProductID,
			Kind:       kind,
			Quantity:   line.Quantity.Neg(),
			Reference:  fmt.Sprintf("%s %s", label, inv.Number),
			DocumentID: inv.ID,
			Actor:      actor,
			Date:       inv.Date,
		}); err != nil {
			return err
		}
	}
	return nil
}

// refreshCreditStatus recalcule le sous-statut dérivé d'une facture visée par
// des avoirs (partiellement/totalement utilisée).
func refreshCreditStatus(r ports.TxRepos, origin *entity.Invoice) error {
	sum, err := r.Invoices.SumCreditNotesTTC(origin.ID)
	if err != nil {
		return err
	}
	status := ""
	if sum.GreaterThan(decimal.Zero) {
		status = entity.CreditPartiel
		if sum.GreaterThanOrEqual(origin.TotalTTC.Sub(creditNoteEpsilon)) {
			status = entity.CreditTotal
		}
	}
	return r.Invoices.UpdateCreditStatus(origin.ID, status)
}

// refreshSoldeCache rafraîchit le solde courant mis en cache du client.
// Meilleur effort : la valeur faisant foi reste le recalcul.
func refreshSoldeCache(r ports.TxRepos, client *entity.Client) error {
	balance, err := runningBalance(r.Invoices, r.Payments, r.Closures, client)
	if err != nil {
		return err
	}
	return r.Clients.UpdateSoldeCache(client.ID, balance)
}
