package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/application/dto"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain"
)

// respondError traduit une erreur de domaine en réponse HTTP.
// Le message reste celui de l'erreur : les erreurs typées (manque de crédit,
// plafond d'avoir...) portent déjà leurs montants.
func respondError(c *fiber.Ctx, err error) error {
	type mapping struct {
		sentinel error
		status   int
		code     string
	}
	mappings := []mapping{
		{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
		{domain.ErrUnknownProduct, fiber.StatusNotFound, "UNKNOWN_PRODUCT"},
		{domain.ErrUserNotFound, fiber.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
		{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
		{domain.ErrNotEditable, fiber.StatusConflict, "NOT_EDITABLE"},
		{domain.ErrAlreadyCancelled, fiber.StatusConflict, "ALREADY_CANCELLED"},
		{domain.ErrAlreadyClosed, fiber.StatusConflict, "ALREADY_CLOSED"},
		{domain.ErrInvalidInput, fiber.StatusBadRequest, "INVALID_INPUT"},
		{domain.ErrMissingOriginInvoice, fiber.StatusBadRequest, "MISSING_ORIGIN"},
		{domain.ErrMissingDiscrepancyReason, fiber.StatusBadRequest, "MISSING_ECART_MOTIF"},
		{domain.ErrParentProductNotSellable, fiber.StatusUnprocessableEntity, "PARENT_NOT_SELLABLE"},
		{domain.ErrReceptionForbiddenOnChild, fiber.StatusUnprocessableEntity, "RECEPTION_ON_CHILD"},
		{domain.ErrStockInsufficient, fiber.StatusUnprocessableEntity, "STOCK_INSUFFICIENT"},
		{domain.ErrCreditLimitExceeded, fiber.StatusUnprocessableEntity, "CREDIT_LIMIT_EXCEEDED"},
		{domain.ErrCreditNoteExceedsRemaining, fiber.StatusUnprocessableEntity, "CREDIT_NOTE_BOUND"},
		{domain.ErrContractInactiveOrExpired, fiber.StatusUnprocessableEntity, "CONTRACT_INVALID"},
		{domain.ErrAdvanceBalanceInsufficient, fiber.StatusUnprocessableEntity, "ADVANCE_INSUFFICIENT"},
		{domain.ErrCashPaymentOverLimit, fiber.StatusUnprocessableEntity, "CASH_OVER_LIMIT"},
	}
	for _, m := range mappings {
		if errors.Is(err, m.sentinel) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
