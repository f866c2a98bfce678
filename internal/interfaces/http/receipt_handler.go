package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/application/usecase"
)

// ReceiptHandler consulta y PDF de recibos.
type ReceiptHandler struct {
	uc  *usecase.ReceiptUseCase
	log zerolog.Logger
}

// NewReceiptHandler construye el handler.
func NewReceiptHandler(uc *usecase.ReceiptUseCase, log zerolog.Logger) *ReceiptHandler {
	return &ReceiptHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Recibos recientes (del más nuevo al más viejo)
// @Tags         receipts
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Máximo"  default(50)
// @Success      200  {array}  entity.Receipt
// @Router       /api/receipts [get]
func (h *ReceiptHandler) List(c *fiber.Ctx) error {
	var q dto.LimitRequest
	if err := c.QueryParser(&q); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Recent(c.UserContext(), q.Limit)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener recibo
// @Tags         receipts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del recibo"
// @Success      200  {object}  entity.Receipt
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receipts/{id} [get]
func (h *ReceiptHandler) GetByID(c *fiber.Ctx) error {
	r, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(r)
}

// DownloadPDF godoc
// @Summary      Descargar el recibo en PDF
// @Tags         receipts
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del recibo"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receipts/{id}/pdf [get]
func (h *ReceiptHandler) DownloadPDF(c *fiber.Ctx) error {
	out, filename, err := h.uc.PDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(out)
}

// Clear godoc
// @Summary      Borrar todos los recibos
// @Tags         receipts
// @Security     Bearer
// @Produce      json
// @Param        confirm  query  bool  true  "Debe ser true"
// @Success      200  {object}  dto.DeletedResponse
// @Failure      400  {object}  dto.ErrorResponse  "CONFIRMATION_REQUIRED"
// @Router       /api/receipts [delete]
func (h *ReceiptHandler) Clear(c *fiber.Ctx) error {
	n, err := h.uc.ClearAll(c.UserContext(), c.QueryBool("confirm", false))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.DeletedResponse{Deleted: n})
}
