package ports

import (
	"context"

	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/repository"
)

// TxRepos regroupe les répertoires liés à une même transaction SQL.
// Toute opération multi-étapes (création de facture + mouvements + solde,
// annulation, replay, clôture) passe par ce lot : aucun effet partiel n'est
// observable, tout échec déclenche un rollback complet.
type TxRepos struct {
	Products   repository.ProductRepository
	Movements  repository.MovementRepository
	Receptions repository.ReceptionRepository
	Invoices   repository.InvoiceRepository
	Clients    repository.ClientRepository
	Payments   repository.PaymentRepository
	Contracts  repository.ContractRepository
	Closures   repository.ClosureRepository
	Journal    repository.JournalRepository
	Sequences  repository.SequenceRepository
}

// TxRunner exécute un callback dans une transaction de base de données,
// en lui passant des répertoires liés à cette transaction.
type TxRunner interface {
	Run(ctx context.Context, fn func(r TxRepos) error) error
}
