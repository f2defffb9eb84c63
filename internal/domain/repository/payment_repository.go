package repository

import (
	"github.com/shopspring/decimal"

	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/entity"
)

// PaymentRepository définit le port de persistance des règlements et bordereaux.
type PaymentRepository interface {
	Create(p *entity.Payment) error
	GetByID(id string) (*entity.Payment, error)
	ListByClient(clientID string, limit int) ([]*entity.Payment, error)

	SumByClientAfterYear(clientID string, afterYear int) (decimal.Decimal, error)
	SumByClientInYear(clientID string, year int) (decimal.Decimal, error)

	CreateBordereau(b *entity.Bordereau) error
	// AttachToBordereau rattache des paiements au bordereau et les passe ENCAISSE.
	AttachToBordereau(bordereauID string, paymentIDs []string) error
}
