package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/application/catalog"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/application/dto"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/entity"
)

// ProductHandler gère les requêtes HTTP du catalogue produits (protégé).
type ProductHandler struct {
	uc *catalog.ProductUseCase
}

// NewProductHandler construit le handler.
func NewProductHandler(uc *catalog.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create POST /api/products.
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := bindBody(c, &in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	product, err := h.uc.Create(c.Context(), catalog.CreateProductInput{
		Name:          in.Name,
		Unit:          in.Unit,
		PrixCatalogue: in.PrixCatalogue,
		PrixRevient:   in.PrixRevient,
		TauxTVA:       in.TauxTVA,
		StockInitial:  in.StockInitial,
		ParentStockID: in.ParentStockID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromProduct(product))
}

// GetByID GET /api/products/:id.
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	product, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromProduct(product))
}

// List GET /api/products.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	activeOnly := c.QueryBool("active_only", false)
	products, err := h.uc.List(c.Context(), activeOnly)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, dto.FromProduct(p))
	}
	return c.JSON(out)
}

// Patch PATCH /api/products/:id.
func (h *ProductHandler) Patch(c *fiber.Ctx) error {
	var in dto.PatchProductRequest
	if err := bindBody(c, &in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	err := h.uc.Patch(c.Context(), c.Params("id"), entity.ProductPatch{
		Name:          in.Name,
		Unit:          in.Unit,
		PrixCatalogue: in.PrixCatalogue,
		PrixRevient:   in.PrixRevient,
		TauxTVA:       in.TauxTVA,
		ParentStockID: in.ParentStockID,
		Active:        in.Active,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Deactivate DELETE /api/products/:id (désactivation, jamais de suppression).
func (h *ProductHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
