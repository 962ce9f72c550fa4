package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/NicolasBroyad/machine-dumping-api/internal/application/dto"
	"github.com/NicolasBroyad/machine-dumping-api/internal/application/usecase"
	"github.com/NicolasBroyad/machine-dumping-api/internal/domain"
	"github.com/NicolasBroyad/machine-dumping-api/pkg/validator"
)

// EnvironmentHandler maneja entornos y membresías.
type EnvironmentHandler struct {
	uc *usecase.EnvironmentUseCase
}

// NewEnvironmentHandler construye el handler de entornos.
func NewEnvironmentHandler(uc *usecase.EnvironmentUseCase) *EnvironmentHandler {
	return &EnvironmentHandler{uc: uc}
}

// Create godoc
// @Summary      Crear entorno
// @Tags         environments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateEnvironmentRequest  true  "name"
// @Success      201   {object}  dto.EnvironmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/environments [post]
func (h *EnvironmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEnvironmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validator.Validate(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMine godoc
// @Summary      Entornos de la company autenticada
// @Tags         environments
// @Produce      json
// @Security     BearerAuth
// @Success      200   {array}  dto.EnvironmentResponse
// @Router       /api/environments/mine [get]
func (h *EnvironmentHandler) ListMine(c *fiber.Ctx) error {
	out, err := h.uc.ListMine(c.Context(), GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListAll godoc
// @Summary      Todos los entornos disponibles (descubrimiento)
// @Tags         environments
// @Produce      json
// @Security     BearerAuth
// @Success      200   {array}  dto.EnvironmentWithCompanyResponse
// @Router       /api/environments/all [get]
func (h *EnvironmentHandler) ListAll(c *fiber.Ctx) error {
	out, err := h.uc.ListAll(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListJoined godoc
// @Summary      Entornos a los que el cliente está unido, con puntos
// @Tags         environments
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  dto.JoinedEnvironmentsResponse
// @Router       /api/environments/joined [get]
func (h *EnvironmentHandler) ListJoined(c *fiber.Ctx) error {
	out, err := h.uc.ListJoined(c.Context(), GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Join godoc
// @Summary      Unirse a un entorno (0 puntos iniciales)
// @Tags         environments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.JoinEnvironmentRequest  true  "environmentId"
// @Success      201   {object}  dto.MessageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/environments/join [post]
func (h *EnvironmentHandler) Join(c *fiber.Ctx) error {
	var in dto.JoinEnvironmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validator.Validate(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	if err := h.uc.Join(c.Context(), GetUserID(c), in); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el entorno no existe"})
		}
		if errors.Is(err, domain.ErrAlreadyMember) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_MEMBER", Message: "ya estás unido a este entorno"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "unido al entorno"})
}

// Leave godoc
// @Summary      Abandonar un entorno (los puntos se pierden)
// @Tags         environments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "environment id"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/environments/leave/{id} [delete]
func (h *EnvironmentHandler) Leave(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	if err := h.uc.Leave(c.Context(), GetUserID(c), id); err != nil {
		if errors.Is(err, domain.ErrNotMember) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_MEMBER", Message: "no estás unido a este entorno"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.MessageResponse{Message: "entorno abandonado"})
}
