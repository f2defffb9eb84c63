package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/application/dto"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/application/stock"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/entity"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/repository"
)

// StockHandler gère les réceptions, le livre des mouvements et le rejeu (protégé).
type StockHandler struct {
	ledger     *stock.Ledger
	receptions *stock.ReceptionUseCase
	movements  repository.MovementRepository
	recRepo    repository.ReceptionRepository
}

// NewStockHandler construit le handler.
func NewStockHandler(
	ledger *stock.Ledger,
	receptions *stock.ReceptionUseCase,
	movements repository.MovementRepository,
	recRepo repository.ReceptionRepository,
) *StockHandler {
	return &StockHandler{ledger: ledger, receptions: receptions, movements: movements, recRepo: recRepo}
}

// CreateReception POST /api/receptions.
func (h *StockHandler) CreateReception(c *fiber.Ctx) error {
	var in dto.CreateReceptionRequest
	if err := bindBody(c, &in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	date, ok := parseDate(in.Date)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date attendue au format AAAA-MM-JJ"})
	}
	rec, err := h.receptions.CreateReception(c.Context(), stock.CreateReceptionInput{
		ProductID:    in.ProductID,
		Reference:    in.Reference,
		QtyAnnounced: in.QtyAnnounced,
		QtyReceived:  in.QtyReceived,
		EcartMotif:   in.EcartMotif,
		Destination:  in.Destination,
		Date:         date,
		Actor:        GetUsername(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromReception(rec))
}

// DeleteReception DELETE /api/receptions/:id — contre-passe puis supprime.
func (h *StockHandler) DeleteReception(c *fiber.Ctx) error {
	if err := h.receptions.DeleteReception(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListReceptions GET /api/receptions.
func (h *StockHandler) ListReceptions(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	receptions, err := h.recRepo.List(limit)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.ReceptionResponse, 0, len(receptions))
	for _, r := range receptions {
		out = append(out, dto.FromReception(r))
	}
	return c.JSON(out)
}

// ListMovements GET /api/products/:id/movements — écritures du produit résolu.
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	movements, err := h.movements.ListByProduct(c.Params("id"), limit)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.FromMovement(m))
	}
	return c.JSON(out)
}

// CorrectionRequest body pour POST /api/stock/corrections.
type CorrectionRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity"`
	Reference string          `json:"reference" validate:"required"`
	Date      string          `json:"date" validate:"required"`
}

// CreateCorrection POST /api/stock/corrections — écriture CORRECTION_MANUELLE
// explicite (inventaire physique). Jamais de mutation directe du stock.
func (h *StockHandler) CreateCorrection(c *fiber.Ctx) error {
	var in CorrectionRequest
	if err := bindBody(c, &in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	date, ok := parseDate(in.Date)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date attendue au format AAAA-MM-JJ"})
	}
	mov, err := h.ledger.Post(c.Context(), stock.PostInput{
		ProductID: in.ProductID,
		Kind:      entity.MovementCorrectionManuelle,
		Quantity:  in.Quantity,
		Reference: in.Reference,
		Actor:     GetUsername(c),
		Date:      date,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromMovement(mov))
}

// Recalculate POST /api/products/:id/recalculate — stock dérivé du livre.
func (h *StockHandler) Recalculate(c *fiber.Ctx) error {
	id := c.Params("id")
	stockValue, err := h.ledger.Recalculate(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.RecalculateResponse{ProductID: id, Stock: stockValue})
}

// Replay POST /api/stock/replay — reconstruction complète du livre (admin).
func (h *StockHandler) Replay(c *fiber.Ctx) error {
	result, err := h.ledger.ReplayAll(c.Context(), GetUsername(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ReplayResponse{Movements: result.Movements, Products: result.Products})
}
