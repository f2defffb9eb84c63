package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/application/billing"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/application/dto"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/repository"
)

// InvoiceHandler gère les factures et avoirs (protégé).
type InvoiceHandler struct {
	uc      *billing.InvoiceUseCase
	invRepo repository.InvoiceRepository
}

// NewInvoiceHandler construit le handler.
func NewInvoiceHandler(uc *billing.InvoiceUseCase, invRepo repository.InvoiceRepository) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, invRepo: invRepo}
}

func toLineInputs(lines []dto.InvoiceLineRequest) []billing.LineInput {
	out := make([]billing.LineInput, 0, len(lines))
	for _, l := range lines {
		out = append(out, billing.LineInput{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			RemisePct: l.RemisePct,
		})
	}
	return out
}

// Create POST /api/invoices — facture ou avoir, en brouillon.
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := bindBody(c, &in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	date, ok := parseDate(in.Date)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date attendue au format AAAA-MM-JJ"})
	}
	inv, err := h.uc.Create(c.Context(), billing.CreateInvoiceInput{
		Type:            in.Type,
		ClientID:        in.ClientID,
		Date:            date,
		Lines:           toLineInputs(in.Lines),
		Terms:           in.Terms,
		OriginInvoiceID: in.OriginInvoiceID,
		Motif:           in.Motif,
		ContractID:      in.ContractID,
		PaymentMode:     in.PaymentMode,
		PaymentRef:      in.PaymentRef,
		Actor:           GetUsername(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	lines, err := h.invRepo.GetLines(inv.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromInvoice(inv, lines))
}

// GetByID GET /api/invoices/:id — document avec ses lignes.
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	inv, err := h.invRepo.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if inv == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "document introuvable"})
	}
	lines, err := h.invRepo.GetLines(inv.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromInvoice(inv, lines))
}

// List GET /api/invoices — filtrable par client.
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	invoices, err := h.invRepo.List(c.Query("client_id"), limit)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, dto.FromInvoice(inv, nil))
	}
	return c.JSON(out)
}

// UpdateDraft PUT /api/invoices/:id/lines — remplace les lignes d'un brouillon.
func (h *InvoiceHandler) UpdateDraft(c *fiber.Ctx) error {
	var in dto.UpdateDraftRequest
	if err := bindBody(c, &in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	inv, err := h.uc.UpdateDraft(c.Context(), billing.UpdateDraftInput{
		InvoiceID: c.Params("id"),
		Lines:     toLineInputs(in.Lines),
		Actor:     GetUsername(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	lines, err := h.invRepo.GetLines(inv.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromInvoice(inv, lines))
}

// Confirm POST /api/invoices/:id/confirm — verrouille le brouillon.
func (h *InvoiceHandler) Confirm(c *fiber.Ctx) error {
	if err := h.uc.Confirm(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Cancel POST /api/invoices/:id/cancel — annulation par compensation, motif obligatoire.
func (h *InvoiceHandler) Cancel(c *fiber.Ctx) error {
	var in dto.CancelInvoiceRequest
	if err := bindBody(c, &in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	if err := h.uc.Cancel(c.Context(), c.Params("id"), in.Motif, GetUsername(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
