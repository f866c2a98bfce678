package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Farmacia-api/internal/application/dashboard"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// DashboardHandler maneja los endpoints del tablero.
type DashboardHandler struct {
	uc  *dashboard.UseCase
	log zerolog.Logger
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *dashboard.UseCase, log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{uc: uc, log: log}
}

// GetSummary godoc
// @Summary      Resumen del tablero: stock, ventas de hoy y del mes, categorías
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dashboard.Overview
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	out, err := h.uc.Overview(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetNotifications godoc
// @Summary      Alertas de stock bajo y vencimiento
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dashboard.Notification
// @Router       /api/dashboard/notifications [get]
func (h *DashboardHandler) GetNotifications(c *fiber.Ctx) error {
	return c.JSON(h.uc.Notifications())
}

// GetSales godoc
// @Summary      Reporte de ventas del período [from, to]
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  true  "Desde (YYYY-MM-DD)"
// @Param        to    query  string  true  "Hasta, inclusive (YYYY-MM-DD)"
// @Success      200  {object}  dashboard.SalesReport
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dashboard/sales [get]
func (h *DashboardHandler) GetSales(c *fiber.Ctx) error {
	from, err := time.Parse(entity.ExpiryDateLayout, c.Query("from"))
	if err != nil {
		return writeError(c, h.log, domain.Invalid("from", "formato esperado YYYY-MM-DD"))
	}
	to, err := time.Parse(entity.ExpiryDateLayout, c.Query("to"))
	if err != nil {
		return writeError(c, h.log, domain.Invalid("to", "formato esperado YYYY-MM-DD"))
	}
	out, err := h.uc.Sales(c.UserContext(), from, to.AddDate(0, 0, 1))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetCategories godoc
// @Summary      Distribución del inventario por categoría
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  category.Stats
// @Router       /api/dashboard/categories [get]
func (h *DashboardHandler) GetCategories(c *fiber.Ctx) error {
	return c.JSON(h.uc.CategoryDistribution())
}
