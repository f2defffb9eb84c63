package stock

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/application/ports"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/entity"
)

// ReplayResult résume une reconstruction complète du livre.
type ReplayResult struct {
	Movements int
	Products  int
}

// replayEvent est un élément du flux chronologique fusionné
// (réceptions SUR_STOCK + lignes de documents non annulés).
type replayEvent struct {
	productID  string
	kind       string
	quantity   decimal.Decimal
	reference  string
	documentID string
	actor      string
	date       time.Time
	createdAt  time.Time
}

// ReplayAll reconstruit entièrement le livre : vide les écritures, repose
// stock_actuel = stock_initial pour tous les produits, puis rejoue chaque
// réception SUR_STOCK et chaque ligne de facture/avoir non annulé dans
// l'ordre date de gestion puis horodatage de création (tri stable : les
// ex æquo gardent leur ordre d'insertion d'origine). Les horodatages des
// écritures recréées sont ceux d'origine.
//
// Outil canonique de réparation : à documents sources identiques, deux
// exécutions successives produisent le même état final.
func (l *Ledger) ReplayAll(ctx context.Context, actor string) (*ReplayResult, error) {
	var result ReplayResult
	err := l.txRunner.Run(ctx, func(r ports.TxRepos) error {
		if err := r.Movements.DeleteAll(); err != nil {
			return err
		}
		if err := r.Products.ResetAllStocks(); err != nil {
			return err
		}

		receptions, err := r.Receptions.ListOnStock()
		if err != nil {
			return err
		}
		lines, err := r.Invoices.ListReplayableLines()
		if err != nil {
			return err
		}

		events := make([]replayEvent, 0, len(receptions)+len(lines))
		for _, rec := range receptions {
			events = append(events, replayEvent{
				productID:  rec.ProductID,
				kind:       entity.MovementReception,
				quantity:   rec.QtyReceived,
				reference:  fmt.Sprintf("Réception %s", rec.Reference),
				documentID: rec.ID,
				actor:      rec.CreatedBy,
				date:       rec.Date,
				createdAt:  rec.CreatedAt,
			})
		}
		for _, line := range lines {
			kind := entity.MovementVente
			label := "Facture"
			if line.InvoiceType == entity.DocAvoir {
				kind = entity.MovementRetourAvoir
				label = "Avoir"
			}
			// Quantité de ligne positive en vente, négative en avoir :
			// le delta du livre est son opposé dans les deux cas.
			events = append(events, replayEvent{
				productID:  line.ProductID,
				kind:       kind,
				quantity:   line.Quantity.Neg(),
				reference:  fmt.Sprintf("%s %s", label, line.Number),
				documentID: line.InvoiceID,
				actor:      line.Actor,
				date:       line.Date,
				createdAt:  line.CreatedAt,
			})
		}

		sort.SliceStable(events, func(i, j int) bool {
			if !events[i].date.Equal(events[j].date) {
				return events[i].date.Before(events[j].date)
			}
			return events[i].createdAt.Before(events[j].createdAt)
		})

		for _, ev := range events {
			if _, err := PostInTx(r, PostInput{
				ProductID:  ev.productID,
				Kind:       ev.kind,
				Quantity:   ev.quantity,
				Reference:  fmt.Sprintf("[replay %s] %s", actor, ev.reference),
				DocumentID: ev.documentID,
				Actor:      ev.actor,
				Date:       ev.date,
				CreatedAt:  ev.createdAt,
			}); err != nil {
				return err
			}
		}

		products, err := r.Products.List(false)
		if err != nil {
			return err
		}
		result = ReplayResult{Movements: len(events), Products: len(products)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
