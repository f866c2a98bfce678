package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Farmacia-api/internal/application/remotesync"
	"github.com/jhoicas/Farmacia-api/internal/application/usecase"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// SettingsHandler perfil de la farmacia y estado de la sincronización.
type SettingsHandler struct {
	pharmacy *usecase.PharmacyUseCase
	journal  *remotesync.Journal
	log      zerolog.Logger
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(pharmacy *usecase.PharmacyUseCase, journal *remotesync.Journal, log zerolog.Logger) *SettingsHandler {
	return &SettingsHandler{pharmacy: pharmacy, journal: journal, log: log}
}

// GetPharmacy godoc
// @Summary      Perfil de la farmacia
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  entity.PharmacyProfile
// @Router       /api/pharmacy [get]
func (h *SettingsHandler) GetPharmacy(c *fiber.Ctx) error {
	out, err := h.pharmacy.Get(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// UpdatePharmacy godoc
// @Summary      Actualizar el perfil de la farmacia
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  entity.PharmacyProfile  true  "Perfil"
// @Success      200   {object}  entity.PharmacyProfile
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/pharmacy [put]
func (h *SettingsHandler) UpdatePharmacy(c *fiber.Ctx) error {
	var in entity.PharmacyProfile
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.pharmacy.Update(c.UserContext(), GetActor(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// SyncFailures godoc
// @Summary      Escrituras remotas fallidas recientes (la mutación local quedó aplicada)
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/sync/failures [get]
func (h *SettingsHandler) SyncFailures(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"total":    h.journal.Total(),
		"failures": h.journal.Recent(),
	})
}
