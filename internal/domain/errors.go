package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Erreurs de domaine (sans dépendances d'infrastructure).
// Les règles métier retournent toujours l'une de ces sentinelles ; jamais de
// correction silencieuse.
var (
	ErrNotFound                  = errors.New("ressource introuvable")
	ErrInvalidInput              = errors.New("entrée invalide")
	ErrDuplicate                 = errors.New("ressource dupliquée")
	ErrUnauthorized              = errors.New("non autorisé")
	ErrUserNotFound              = errors.New("utilisateur introuvable")
	ErrUnknownProduct            = errors.New("produit inconnu")
	ErrParentProductNotSellable  = errors.New("produit parent de stock non vendable directement")
	ErrReceptionForbiddenOnChild = errors.New("réception interdite sur un produit enfant")
	ErrStockInsufficient         = errors.New("stock insuffisant")
	ErrCreditLimitExceeded       = errors.New("seuil de crédit dépassé")
	ErrCreditNoteExceedsRemaining = errors.New("avoir supérieur au restant de la facture d'origine")
	ErrMissingOriginInvoice      = errors.New("facture d'origine obligatoire pour un avoir")
	ErrMissingDiscrepancyReason  = errors.New("motif d'écart obligatoire")
	ErrContractInactiveOrExpired = errors.New("contrat inactif ou expiré")
	ErrNotEditable               = errors.New("document non modifiable (statut différent de brouillon)")
	ErrAlreadyCancelled          = errors.New("facture déjà annulée")
	ErrAlreadyClosed             = errors.New("exercice déjà clôturé")
	ErrAdvanceBalanceInsufficient = errors.New("avance client insuffisante")
	ErrCashPaymentOverLimit      = errors.New("paiement en espèces au-dessus du plafond")
)

// CreditShortfallError porte le montant manquant lors d'un refus de crédit.
// errors.Is(err, ErrCreditLimitExceeded) reste vrai.
type CreditShortfallError struct {
	Projected decimal.Decimal // solde projeté après la facture
	Threshold decimal.Decimal // seuil de crédit autorisé
	Shortfall decimal.Decimal // montant manquant pour passer
}

func (e *CreditShortfallError) Error() string {
	return fmt.Sprintf("seuil de crédit dépassé: manque %s (projeté %s, seuil -%s)",
		e.Shortfall.StringFixed(2), e.Projected.StringFixed(2), e.Threshold.StringFixed(2))
}

func (e *CreditShortfallError) Unwrap() error { return ErrCreditLimitExceeded }

// CreditNoteBoundError porte le restant utilisable de la facture d'origine.
type CreditNoteBoundError struct {
	OriginTTC decimal.Decimal
	AlreadyTTC decimal.Decimal // avoirs non annulés déjà émis
	Requested decimal.Decimal
}

func (e *CreditNoteBoundError) Error() string {
	remaining := e.OriginTTC.Sub(e.AlreadyTTC)
	return fmt.Sprintf("avoir de %s refusé: restant utilisable %s sur la facture d'origine",
		e.Requested.StringFixed(2), remaining.StringFixed(2))
}

func (e *CreditNoteBoundError) Unwrap() error { return ErrCreditNoteExceedsRemaining }

// CashCeilingError porte le plafond réglementaire et le montant refusé.
type CashCeilingError struct {
	Amount  decimal.Decimal
	Ceiling decimal.Decimal
}

func (e *CashCeilingError) Error() string {
	return fmt.Sprintf("paiement en espèces de %s refusé: plafond %s",
		e.Amount.StringFixed(2), e.Ceiling.StringFixed(2))
}

func (e *CashCeilingError) Unwrap() error { return ErrCashPaymentOverLimit }

// AdvanceError porte l'avance disponible et le montant demandé.
type AdvanceError struct {
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *AdvanceError) Error() string {
	return fmt.Sprintf("avance insuffisante: disponible %s, demandé %s",
		e.Available.StringFixed(2), e.Requested.StringFixed(2))
}

func (e *AdvanceError) Unwrap() error { return ErrAdvanceBalanceInsufficient }
