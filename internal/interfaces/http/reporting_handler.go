package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/application/dto"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/application/reporting"
)

// ReportingHandler expose les états de synthèse (protégé).
type ReportingHandler struct {
	uc *reporting.ReportingUseCase
}

// NewReportingHandler construit le handler.
func NewReportingHandler(uc *reporting.ReportingUseCase) *ReportingHandler {
	return &ReportingHandler{uc: uc}
}

// DailySales GET /api/reports/daily-sales?from=...&to=...
func (h *ReportingHandler) DailySales(c *fiber.Ctx) error {
	from, okFrom := parseDate(c.Query("from"))
	to, okTo := parseDate(c.Query("to"))
	if !okFrom || !okTo {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from et to attendus au format AAAA-MM-JJ"})
	}
	rows, err := h.uc.DailySales(c.Context(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromDailySales(rows))
}

// ProductMovements GET /api/reports/product-movements?from=...&to=...
func (h *ReportingHandler) ProductMovements(c *fiber.Ctx) error {
	from, okFrom := parseDate(c.Query("from"))
	to, okTo := parseDate(c.Query("to"))
	if !okFrom || !okTo {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from et to attendus au format AAAA-MM-JJ"})
	}
	rows, err := h.uc.ProductMovements(c.Context(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromProductMovements(rows))
}

// Receivables GET /api/reports/receivables?year=... — état annuel des créances.
func (h *ReportingHandler) Receivables(c *fiber.Ctx) error {
	year := c.QueryInt("year", 0)
	if year == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "year est requis"})
	}
	rows, err := h.uc.Receivables(c.Context(), year)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromYearBalances(rows))
}
