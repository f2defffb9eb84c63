package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/application/billing"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/application/dto"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/repository"
)

// PaymentHandler gère les règlements et bordereaux (protégé).
type PaymentHandler struct {
	uc      *billing.PaymentUseCase
	payRepo repository.PaymentRepository
}

// NewPaymentHandler construit le handler.
func NewPaymentHandler(uc *billing.PaymentUseCase, payRepo repository.PaymentRepository) *PaymentHandler {
	return &PaymentHandler{uc: uc, payRepo: payRepo}
}

// Record POST /api/payments.
func (h *PaymentHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordPaymentRequest
	if err := bindBody(c, &in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	date, ok := parseDate(in.Date)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date attendue au format AAAA-MM-JJ"})
	}
	payment, err := h.uc.RecordPayment(c.Context(), billing.RecordPaymentInput{
		ClientID:  in.ClientID,
		InvoiceID: in.InvoiceID,
		Amount:    in.Amount,
		Mode:      in.Mode,
		Reference: in.Reference,
		Date:      date,
		Actor:     GetUsername(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromPayment(payment))
}

// ListByClient GET /api/clients/:id/payments.
func (h *PaymentHandler) ListByClient(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	payments, err := h.payRepo.ListByClient(c.Params("id"), limit)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, dto.FromPayment(p))
	}
	return c.JSON(out)
}

// CreateBordereau POST /api/bordereaux — remise en banque de paiements encadrés.
func (h *PaymentHandler) CreateBordereau(c *fiber.Ctx) error {
	var in dto.CreateBordereauRequest
	if err := bindBody(c, &in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	date, ok := parseDate(in.Date)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date attendue au format AAAA-MM-JJ"})
	}
	bordereau, err := h.uc.CreateBordereau(c.Context(), billing.CreateBordereauInput{
		Bank:       in.Bank,
		PaymentIDs: in.PaymentIDs,
		Date:       date,
		Actor:      GetUsername(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromBordereau(bordereau))
}
