package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/application/closing"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/application/dto"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/repository"
)

// ClosureHandler gère la clôture annuelle (admin).
type ClosureHandler struct {
	uc          *closing.ClosureUseCase
	closureRepo repository.ClosureRepository
}

// NewClosureHandler construit le handler.
func NewClosureHandler(uc *closing.ClosureUseCase, closureRepo repository.ClosureRepository) *ClosureHandler {
	return &ClosureHandler{uc: uc, closureRepo: closureRepo}
}

// Close POST /api/closures — clôture un exercice, à sens unique.
func (h *ClosureHandler) Close(c *fiber.Ctx) error {
	var in dto.CloseYearRequest
	if err := bindBody(c, &in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	result, err := h.uc.Close(c.Context(), in.Year, GetUsername(c))
	if err != nil {
		return respondError(c, err)
	}
	out := dto.FromClosure(result.Closure)
	out.Products = result.Products
	out.Clients = result.Clients
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByYear GET /api/closures/:year.
func (h *ClosureHandler) GetByYear(c *fiber.Ctx) error {
	year, err := c.ParamsInt("year")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "année invalide"})
	}
	closure, err := h.closureRepo.GetByYear(year)
	if err != nil {
		return respondError(c, err)
	}
	if closure == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "exercice non clôturé"})
	}
	return c.JSON(dto.FromClosure(closure))
}
