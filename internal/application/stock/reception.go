package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/application/ports"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/entity"
)

// ReceptionUseCase enregistre et supprime les réceptions.
// Seules les réceptions SUR_STOCK génèrent une écriture au livre.
type ReceptionUseCase struct {
	txRunner ports.TxRunner
}

// NewReceptionUseCase construit le cas d'usage.
func NewReceptionUseCase(txRunner ports.TxRunner) *ReceptionUseCase {
	return &ReceptionUseCase{txRunner: txRunner}
}

// CreateReceptionInput entrée d'enregistrement d'une réception.
type CreateReceptionInput struct {
	ProductID    string
	Reference    string
	QtyAnnounced decimal.Decimal
	QtyReceived  decimal.Decimal
	EcartMotif   string
	Destination  string
	Date         time.Time
	Actor        string
}

// CreateReception valide et persiste la réception, puis passe l'écriture
// RECEPTION au livre si la destination est SUR_STOCK. Un écart annoncé/reçu
// sans motif est rejeté avant toute persistance.
func (uc *ReceptionUseCase) CreateReception(ctx context.Context, in CreateReceptionInput) (*entity.Reception, error) {
	if in.ProductID == "" || !in.QtyReceived.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.Destination != entity.DestinationSurStock && in.Destination != entity.DestinationSurChantier {
		return nil, domain.ErrInvalidInput
	}
	if !in.QtyReceived.Equal(in.QtyAnnounced) && in.EcartMotif == "" {
		return nil, domain.ErrMissingDiscrepancyReason
	}

	now := time.Now()
	date := in.Date
	if date.IsZero() {
		date = now
	}
	rec := &entity.Reception{
		ID:           uuid.New().String(),
		ProductID:    in.ProductID,
		Reference:    in.Reference,
		QtyAnnounced: in.QtyAnnounced,
		QtyReceived:  in.QtyReceived,
		EcartMotif:   in.EcartMotif,
		Destination:  in.Destination,
		Date:         date,
		CreatedAt:    now,
		CreatedBy:    in.Actor,
	}

	err := uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		product, err := r.Products.GetByID(in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrUnknownProduct
		}
		if err := r.Receptions.Create(rec); err != nil {
			return err
		}
		if rec.Destination != entity.DestinationSurStock {
			return nil // livraison directe sur chantier : pas de mouvement
		}
		_, err = PostInTx(r, PostInput{
			ProductID:  rec.ProductID,
			Kind:       entity.MovementReception,
			Quantity:   rec.QtyReceived,
			Reference:  fmt.Sprintf("Réception %s", rec.Reference),
			DocumentID: rec.ID,
			Actor:      in.Actor,
			Date:       rec.Date,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// DeleteReception supprime une réception et contre-passe son impact stock en
// supprimant ses écritures (Ledger.Reverse). Réservé aux réceptions erronées ;
// les ventes confirmées ne passent jamais par ce chemin.
func (uc *ReceptionUseCase) DeleteReception(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(r ports.TxRepos) error {
		rec, err := r.Receptions.GetByID(id)
		if err != nil {
			return err
		}
		if rec == nil {
			return domain.ErrNotFound
		}
		if rec.Destination == entity.DestinationSurStock {
			if err := ReverseInTx(r, rec.ID, entity.MovementReception); err != nil {
				return err
			}
		}
		return r.Receptions.Delete(rec.ID)
	})
}
