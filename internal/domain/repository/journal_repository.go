package repository

import "github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/entity"

// JournalRepository définit le port du journal des annulations (ajout seul).
type JournalRepository interface {
	CreateRecord(r *entity.CancellationRecord) error
	CreateLine(l *entity.CancellationLine) error
	ListByInvoice(invoiceID string) ([]*entity.CancellationRecord, error)
}
