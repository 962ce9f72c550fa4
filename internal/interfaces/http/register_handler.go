package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/NicolasBroyad/machine-dumping-api/internal/application/dto"
	"github.com/NicolasBroyad/machine-dumping-api/internal/application/usecase"
	"github.com/NicolasBroyad/machine-dumping-api/internal/domain"
	"github.com/NicolasBroyad/machine-dumping-api/pkg/validator"
)

// RegisterHandler maneja el libro de compras.
type RegisterHandler struct {
	uc *usecase.RegisterUseCase
}

// NewRegisterHandler construye el handler de registros.
func NewRegisterHandler(uc *usecase.RegisterUseCase) *RegisterHandler {
	return &RegisterHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar una compra (atómico: registro + puntos)
// @Tags         registers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateRegisterRequest  true  "productId, environmentId"
// @Success      201   {object}  dto.CreateRegisterResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/registers [post]
func (h *RegisterHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validator.Validate(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrNotMember) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "NOT_MEMBER", Message: "no estás unido a este entorno"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el producto no existe en este entorno"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMine godoc
// @Summary      Historial de compras del cliente
// @Tags         registers
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.ClientRegisterResponse
// @Router       /api/registers/mine [get]
func (h *RegisterHandler) ListMine(c *fiber.Ctx) error {
	out, err := h.uc.ListMine(c.Context(), GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListCompany godoc
// @Summary      Ventas de los entornos de la company
// @Tags         registers
// @Produce      json
// @Security     BearerAuth
// @Param        environmentId  query  string  false  "filtrar por entorno; vacío = todos"
// @Success      200  {array}  dto.CompanyRegisterResponse
// @Router       /api/registers/company [get]
func (h *RegisterHandler) ListCompany(c *fiber.Ctx) error {
	out, err := h.uc.ListCompany(c.Context(), GetUserID(c), c.Query("environmentId"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
