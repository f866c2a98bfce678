package http

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Farmacia-api/internal/application/category"
	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/application/inventory"
)

// CategoryHandler registro de categorías y sus estadísticas.
type CategoryHandler struct {
	registry *category.Registry
	store    *inventory.Store
	log      zerolog.Logger
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(registry *category.Registry, store *inventory.Store, log zerolog.Logger) *CategoryHandler {
	return &CategoryHandler{registry: registry, store: store, log: log}
}

// List godoc
// @Summary      Listar categorías registradas
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.registry.List())
}

// Add godoc
// @Summary      Registrar categoría (idempotente)
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CategoryRequest  true  "Nombre"
// @Success      201   {object}  dto.CategoryAddedResponse
// @Success      200   {object}  dto.CategoryAddedResponse  "ya existía"
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *CategoryHandler) Add(c *fiber.Ctx) error {
	var in dto.CategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	created, err := h.registry.Add(in.Name)
	if err != nil {
		return writeError(c, h.log, err)
	}
	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(dto.CategoryAddedResponse{Name: in.Name, Created: created})
}

// Remove godoc
// @Summary      Eliminar categoría (solo si ningún medicamento la usa)
// @Tags         categories
// @Security     Bearer
// @Param        name  path  string  true  "Nombre de la categoría"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "CATEGORY_IN_USE con count"
// @Router       /api/categories/{name} [delete]
func (h *CategoryHandler) Remove(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return badBody(c)
	}
	if err := h.registry.Remove(name); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Stats godoc
// @Summary      Totales por categoría (registradas y observadas)
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  category.Stats
// @Router       /api/categories/stats [get]
func (h *CategoryHandler) Stats(c *fiber.Ctx) error {
	return c.JSON(category.Aggregate(h.registry.List(), h.store.List()))
}
