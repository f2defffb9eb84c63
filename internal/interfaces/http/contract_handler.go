package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/application/dto"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/entity"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/repository"
)

// ContractHandler gère les conventions d'approvisionnement (protégé).
type ContractHandler struct {
	contracts repository.ContractRepository
	clients   repository.ClientRepository
}

// NewContractHandler construit le handler.
func NewContractHandler(contracts repository.ContractRepository, clients repository.ClientRepository) *ContractHandler {
	return &ContractHandler{contracts: contracts, clients: clients}
}

// CreateContractRequest body pour POST /api/contracts.
type CreateContractRequest struct {
	ClientID  string `json:"client_id" validate:"required"`
	Reference string `json:"reference" validate:"required"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
}

// ContractResponse contrat en réponse.
type ContractResponse struct {
	ID        string `json:"id"`
	ClientID  string `json:"client_id"`
	Reference string `json:"reference"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Active    bool   `json:"active"`
}

func fromContract(c *entity.Contract) ContractResponse {
	return ContractResponse{
		ID:        c.ID,
		ClientID:  c.ClientID,
		Reference: c.Reference,
		StartDate: c.StartDate.Format("2006-01-02"),
		EndDate:   c.EndDate.Format("2006-01-02"),
		Active:    c.Active,
	}
}

// Create POST /api/contracts.
func (h *ContractHandler) Create(c *fiber.Ctx) error {
	var in CreateContractRequest
	if err := bindBody(c, &in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	start, okStart := parseDate(in.StartDate)
	end, okEnd := parseDate(in.EndDate)
	if !okStart || !okEnd || end.Before(start) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "période invalide (AAAA-MM-JJ, début <= fin)"})
	}
	client, err := h.clients.GetByID(in.ClientID)
	if err != nil {
		return respondError(c, err)
	}
	if client == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "client introuvable"})
	}
	contract := &entity.Contract{
		ID:        uuid.NewString(),
		ClientID:  in.ClientID,
		Reference: in.Reference,
		StartDate: start,
		EndDate:   end,
		Active:    true,
		CreatedAt: time.Now(),
	}
	if err := h.contracts.Create(contract); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fromContract(contract))
}

// ListByClient GET /api/clients/:id/contracts.
func (h *ContractHandler) ListByClient(c *fiber.Ctx) error {
	contracts, err := h.contracts.ListByClient(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]ContractResponse, 0, len(contracts))
	for _, ct := range contracts {
		out = append(out, fromContract(ct))
	}
	return c.JSON(out)
}
