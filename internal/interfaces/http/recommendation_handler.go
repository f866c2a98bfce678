package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/application/inventory"
	"github.com/jhoicas/Farmacia-api/internal/application/recommendation"
)

// RecommendationHandler sugerencias prescriptivas sobre el inventario actual.
type RecommendationHandler struct {
	engine *recommendation.Engine
	store  *inventory.Store
	now    func() time.Time
}

// NewRecommendationHandler construye el handler.
func NewRecommendationHandler(engine *recommendation.Engine, store *inventory.Store) *RecommendationHandler {
	return &RecommendationHandler{engine: engine, store: store, now: time.Now}
}

// List godoc
// @Summary      Recomendaciones de reposición, vencimiento y precio
// @Tags         recommendations
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.RecommendationsResponse
// @Router       /api/recommendations [get]
func (h *RecommendationHandler) List(c *fiber.Ctx) error {
	items := h.engine.Recommend(h.store.List(), h.now())
	return c.JSON(dto.RecommendationsResponse{Items: items, Limit: h.engine.Limit()})
}
