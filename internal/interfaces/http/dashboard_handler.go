package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/relojeria-api/internal/application/analytics"
	"github.com/jhoicas/relojeria-api/internal/application/dto"
)

// DashboardHandler maneja el resumen agregado del negocio (protegido).
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary godoc
// @Summary      Resumen del negocio
// @Description  Totales de inventario, stock bajo, ventas de los últimos 30 días y mejores clientes. Cacheado con TTL corto.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	resp, err := h.uc.GetSummary(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(resp)
}
