package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/NicolasBroyad/machine-dumping-api/internal/application/dto"
	"github.com/NicolasBroyad/machine-dumping-api/internal/application/usecase"
	"github.com/NicolasBroyad/machine-dumping-api/internal/domain"
)

// StatisticsHandler maneja los dashboards, rankings y series por día.
type StatisticsHandler struct {
	uc *usecase.StatisticsUseCase
}

// NewStatisticsHandler construye el handler de estadísticas.
func NewStatisticsHandler(uc *usecase.StatisticsUseCase) *StatisticsHandler {
	return &StatisticsHandler{uc: uc}
}

// statsError mapea los errores comunes de las vistas de estadísticas.
func statsError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el entorno no existe"})
	}
	if errors.Is(err, domain.ErrNotMember) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "NOT_MEMBER", Message: "no estás unido a este entorno"})
	}
	if errors.Is(err, domain.ErrForbidden) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el entorno no pertenece a tu company"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// Client godoc
// @Summary      Resumen del dashboard del cliente
// @Tags         statistics
// @Produce      json
// @Security     BearerAuth
// @Param        environmentId  query  string  true  "entorno"
// @Success      200  {object}  dto.ClientStatisticsResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/statistics/client [get]
func (h *StatisticsHandler) Client(c *fiber.Ctx) error {
	environmentID := c.Query("environmentId")
	if environmentID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "environmentId requerido"})
	}
	out, err := h.uc.GetClientStatistics(c.Context(), GetUserID(c), environmentID)
	if err != nil {
		return statsError(c, err)
	}
	return c.JSON(out)
}

// Company godoc
// @Summary      Resumen del dashboard de la company
// @Tags         statistics
// @Produce      json
// @Security     BearerAuth
// @Param        environmentId  query  string  true  "entorno"
// @Success      200  {object}  dto.CompanyStatisticsResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/statistics/company [get]
func (h *StatisticsHandler) Company(c *fiber.Ctx) error {
	environmentID := c.Query("environmentId")
	if environmentID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "environmentId requerido"})
	}
	out, err := h.uc.GetCompanyStatistics(c.Context(), GetUserID(c), environmentID)
	if err != nil {
		return statsError(c, err)
	}
	return c.JSON(out)
}

// Ranking godoc
// @Summary      Leaderboard completo del entorno
// @Tags         statistics
// @Produce      json
// @Security     BearerAuth
// @Param        environmentId  path  string  true  "entorno"
// @Success      200  {object}  dto.RankingResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/statistics/ranking/{environmentId} [get]
func (h *StatisticsHandler) Ranking(c *fiber.Ctx) error {
	out, err := h.uc.GetRanking(c.Context(), GetUserID(c), c.Params("environmentId"))
	if err != nil {
		return statsError(c, err)
	}
	return c.JSON(out)
}

// ProductosFavoritos godoc
// @Summary      Compras del cliente agrupadas por producto
// @Tags         statistics
// @Produce      json
// @Security     BearerAuth
// @Param        environmentId  path  string  true  "entorno"
// @Success      200  {object}  dto.ProductosFavoritosResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/statistics/productos-favoritos/{environmentId} [get]
func (h *StatisticsHandler) ProductosFavoritos(c *fiber.Ctx) error {
	out, err := h.uc.GetProductosFavoritos(c.Context(), GetUserID(c), c.Params("environmentId"))
	if err != nil {
		return statsError(c, err)
	}
	return c.JSON(out)
}

// GastosPorDia godoc
// @Summary      Gasto del cliente por día calendario (con días en cero)
// @Tags         statistics
// @Produce      json
// @Security     BearerAuth
// @Param        environmentId  path   string  true   "entorno"
// @Param        days           query  int     false  "ventana en días (1-365, default 30)"
// @Success      200  {object}  dto.GastosPorDiaResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/statistics/gastos-por-dia/{environmentId} [get]
func (h *StatisticsHandler) GastosPorDia(c *fiber.Ctx) error {
	days := c.QueryInt("days", usecase.DefaultStatisticsDays)
	out, err := h.uc.GetGastosPorDia(c.Context(), GetUserID(c), c.Params("environmentId"), days)
	if err != nil {
		return statsError(c, err)
	}
	return c.JSON(out)
}

// RankingClientes godoc
// @Summary      Ranking de clientes de un entorno propio
// @Tags         statistics
// @Produce      json
// @Security     BearerAuth
// @Param        environmentId  path  string  true  "entorno"
// @Success      200  {object}  dto.RankingClientesCompanyResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/statistics/company/ranking-clientes/{environmentId} [get]
func (h *StatisticsHandler) RankingClientes(c *fiber.Ctx) error {
	out, err := h.uc.GetRankingClientes(c.Context(), GetUserID(c), c.Params("environmentId"))
	if err != nil {
		return statsError(c, err)
	}
	return c.JSON(out)
}

// RankingProductos godoc
// @Summary      Ranking de productos de un entorno propio
// @Tags         statistics
// @Produce      json
// @Security     BearerAuth
// @Param        environmentId  path  string  true  "entorno"
// @Success      200  {object}  dto.RankingProductosCompanyResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/statistics/company/ranking-productos/{environmentId} [get]
func (h *StatisticsHandler) RankingProductos(c *fiber.Ctx) error {
	out, err := h.uc.GetRankingProductos(c.Context(), GetUserID(c), c.Params("environmentId"))
	if err != nil {
		return statsError(c, err)
	}
	return c.JSON(out)
}

// RecaudadoPorDia godoc
// @Summary      Recaudación del entorno por día calendario
// @Tags         statistics
// @Produce      json
// @Security     BearerAuth
// @Param        environmentId  path   string  true   "entorno"
// @Param        days           query  int     false  "ventana en días (1-365, default 30)"
// @Success      200  {object}  dto.RecaudadoPorDiaResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/statistics/company/recaudado-por-dia/{environmentId} [get]
func (h *StatisticsHandler) RecaudadoPorDia(c *fiber.Ctx) error {
	days := c.QueryInt("days", usecase.DefaultStatisticsDays)
	out, err := h.uc.GetRecaudadoPorDia(c.Context(), GetUserID(c), c.Params("environmentId"), days)
	if err != nil {
		return statsError(c, err)
	}
	return c.JSON(out)
}

// Reporte godoc
// @Summary      Reporte PDF de estadísticas del entorno
// @Tags         statistics
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        environmentId  path  string  true  "entorno"
// @Success      200  {file}  binary
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/statistics/company/reporte/{environmentId} [get]
func (h *StatisticsHandler) Reporte(c *fiber.Ctx) error {
	pdfBytes, err := h.uc.GetReportePDF(c.Context(), GetUserID(c), c.Params("environmentId"))
	if err != nil {
		return statsError(c, err)
	}
	filename := "reporte-" + time.Now().Format("20060102") + ".pdf"
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
