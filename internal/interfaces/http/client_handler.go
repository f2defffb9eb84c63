package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/application/billing"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/application/catalog"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/application/dto"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/entity"
)

// ClientHandler gère les requêtes HTTP des clients (protégé).
type ClientHandler struct {
	uc      *catalog.ClientUseCase
	balance *billing.BalanceService
}

// NewClientHandler construit le handler.
func NewClientHandler(uc *catalog.ClientUseCase, balance *billing.BalanceService) *ClientHandler {
	return &ClientHandler{uc: uc, balance: balance}
}

// Create POST /api/clients.
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateClientRequest
	if err := bindBody(c, &in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	client, err := h.uc.Create(c.Context(), catalog.CreateClientInput{
		Name:        in.Name,
		NIF:         in.NIF,
		Address:     in.Address,
		Phone:       in.Phone,
		SeuilCredit: in.SeuilCredit,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromClient(client))
}

// GetByID GET /api/clients/:id.
func (h *ClientHandler) GetByID(c *fiber.Ctx) error {
	client, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromClient(client))
}

// List GET /api/clients.
func (h *ClientHandler) List(c *fiber.Ctx) error {
	activeOnly := c.QueryBool("active_only", false)
	clients, err := h.uc.List(c.Context(), activeOnly)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.ClientResponse, 0, len(clients))
	for _, cl := range clients {
		out = append(out, dto.FromClient(cl))
	}
	return c.JSON(out)
}

// Patch PATCH /api/clients/:id.
func (h *ClientHandler) Patch(c *fiber.Ctx) error {
	var in dto.PatchClientRequest
	if err := bindBody(c, &in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	err := h.uc.Patch(c.Context(), c.Params("id"), entity.ClientPatch{
		Name:        in.Name,
		NIF:         in.NIF,
		Address:     in.Address,
		Phone:       in.Phone,
		SeuilCredit: in.SeuilCredit,
		Active:      in.Active,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Deactivate DELETE /api/clients/:id (désactivation, jamais de suppression).
func (h *ClientHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Balance GET /api/clients/:id/balance — solde courant recalculé, jamais le cache.
func (h *ClientHandler) Balance(c *fiber.Ctx) error {
	id := c.Params("id")
	balance, err := h.balance.RunningBalance(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.BalanceResponse{ClientID: id, Balance: balance})
}
