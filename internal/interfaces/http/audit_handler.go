package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Farmacia-api/internal/application/audit"
	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// AuditHandler consulta, exportación y borrado del registro de auditoría.
type AuditHandler struct {
	log    *audit.Log
	logger zerolog.Logger
	now    func() time.Time
}

// NewAuditHandler construye el handler.
func NewAuditHandler(log *audit.Log, logger zerolog.Logger) *AuditHandler {
	return &AuditHandler{log: log, logger: logger, now: time.Now}
}

// parseFilter lee los filtros de la query. Fechas en YYYY-MM-DD (UTC).
func parseFilter(c *fiber.Ctx) (audit.Filter, error) {
	var q dto.AuditQueryRequest
	if err := c.QueryParser(&q); err != nil {
		return audit.Filter{}, domain.Invalid("query", "parámetros inválidos")
	}
	f := audit.Filter{
		Action:     entity.ActionKind(q.Action),
		ActorID:    q.UserID,
		EntityType: q.EntityType,
		Search:     q.Search,
	}
	if f.Action != "" && !f.Action.IsValid() {
		return audit.Filter{}, domain.Invalid("action", "acción desconocida")
	}
	var err error
	if q.StartDate != "" {
		if f.Start, err = time.Parse(entity.ExpiryDateLayout, q.StartDate); err != nil {
			return audit.Filter{}, domain.Invalid("startDate", "formato esperado YYYY-MM-DD")
		}
	}
	if q.EndDate != "" {
		if f.End, err = time.Parse(entity.ExpiryDateLayout, q.EndDate); err != nil {
			return audit.Filter{}, domain.Invalid("endDate", "formato esperado YYYY-MM-DD")
		}
	}
	return f, nil
}

// List godoc
// @Summary      Consultar auditoría
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        action      query  string  false  "Tipo de acción (MEDICINE_ADD, ...)"
// @Param        userId      query  string  false  "Operador"
// @Param        entityType  query  string  false  "Tipo de entidad"
// @Param        startDate   query  string  false  "Desde (YYYY-MM-DD)"
// @Param        endDate     query  string  false  "Hasta, inclusive (YYYY-MM-DD)"
// @Param        search      query  string  false  "Texto en operador, entidad o cliente"
// @Success      200  {object}  dto.AuditListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/audit [get]
func (h *AuditHandler) List(c *fiber.Ctx) error {
	f, err := parseFilter(c)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	entries, err := h.log.Query(c.UserContext(), f)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(dto.AuditListResponse{Items: entries, Stats: audit.ComputeStats(entries)})
}

// Actions godoc
// @Summary      Tipos de acción con su etiqueta
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/audit/actions [get]
func (h *AuditHandler) Actions(c *fiber.Ctx) error {
	out := make(map[string]string)
	for _, k := range entity.ActionKinds() {
		out[string(k)] = k.Label()
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar a CSV el resultado filtrado
// @Tags         audit
// @Security     Bearer
// @Produce      text/csv
// @Success      200  {file}  binary
// @Success      204  "sin entradas: no se genera archivo"
// @Router       /api/audit/export [get]
func (h *AuditHandler) Export(c *fiber.Ctx) error {
	f, err := parseFilter(c)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	entries, err := h.log.Query(c.UserContext(), f)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	out, ok := audit.ExportCSV(entries)
	if !ok {
		return c.SendStatus(fiber.StatusNoContent)
	}
	c.Set(fiber.HeaderContentType, audit.ExportMIME)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+audit.ExportFilename(h.now())+`"`)
	return c.Send(out)
}

// Clear godoc
// @Summary      Borrar toda la auditoría
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        confirm  query  bool  true  "Debe ser true"
// @Success      200  {object}  dto.DeletedResponse
// @Failure      400  {object}  dto.ErrorResponse  "CONFIRMATION_REQUIRED"
// @Router       /api/audit [delete]
func (h *AuditHandler) Clear(c *fiber.Ctx) error {
	n, err := h.log.ClearAll(c.UserContext(), c.QueryBool("confirm", false))
	if err != nil {
		return writeError(c, h.logger, err)
	}
	h.logger.Warn().Str("user_id", GetActorID(c)).Int("deleted", n).Msg("auditoría borrada")
	return c.JSON(dto.DeletedResponse{Deleted: n})
}
