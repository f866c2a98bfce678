package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Farmacia-api/internal/application/audit"
	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/application/inventory"
)

// MedicineHandler CRUD de medicamentos (protegido).
type MedicineHandler struct {
	uc    *inventory.MedicineUseCase
	audit *audit.Log
	log   zerolog.Logger
}

// NewMedicineHandler construye el handler.
func NewMedicineHandler(uc *inventory.MedicineUseCase, auditLog *audit.Log, log zerolog.Logger) *MedicineHandler {
	return &MedicineHandler{uc: uc, audit: auditLog, log: log}
}

func toDraft(in dto.MedicineRequest) inventory.Draft {
	return inventory.Draft{
		Name:          in.Name,
		Category:      in.Category,
		Quantity:      in.Quantity,
		Unit:          in.Unit,
		MinStockLevel: in.MinStockLevel,
		ExpiryDate:    in.ExpiryDate,
		Supplier:      in.Supplier,
		Price:         in.Price,
	}
}

// List godoc
// @Summary      Listar medicamentos
// @Tags         medicines
// @Security     Bearer
// @Produce      json
// @Param        search    query  string  false  "Busca en nombre, categoría y proveedor"
// @Param        category  query  string  false  "Categoría exacta"
// @Param        lowStock  query  bool    false  "Solo stock bajo"
// @Success      200  {object}  dto.MedicineListResponse
// @Router       /api/medicines [get]
func (h *MedicineHandler) List(c *fiber.Ctx) error {
	items := h.uc.List(inventory.ListFilter{
		Search:       c.Query("search"),
		Category:     c.Query("category"),
		LowStockOnly: c.QueryBool("lowStock", false),
	})
	return c.JSON(dto.MedicineListResponse{Items: items, Total: len(items)})
}

// GetByID godoc
// @Summary      Obtener medicamento por ID
// @Tags         medicines
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del medicamento"
// @Success      200  {object}  entity.Medicine
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/medicines/{id} [get]
func (h *MedicineHandler) GetByID(c *fiber.Ctx) error {
	m, err := h.uc.Get(c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(m)
}

// Create godoc
// @Summary      Crear medicamento
// @Tags         medicines
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MedicineRequest  true  "Datos del medicamento"
// @Success      201   {object}  entity.Medicine
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/medicines [post]
func (h *MedicineHandler) Create(c *fiber.Ctx) error {
	var in dto.MedicineRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	m, err := h.uc.Create(c.UserContext(), GetActor(c), toDraft(in))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(m)
}

// Update godoc
// @Summary      Actualizar medicamento (reemplazo completo)
// @Tags         medicines
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del medicamento"
// @Param        body  body  dto.MedicineRequest  true  "Datos del medicamento"
// @Success      200   {object}  entity.Medicine
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/medicines/{id} [put]
func (h *MedicineHandler) Update(c *fiber.Ctx) error {
	var in dto.MedicineRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	m, err := h.uc.Update(c.UserContext(), GetActor(c), c.Params("id"), toDraft(in))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(m)
}

// Delete godoc
// @Summary      Eliminar medicamento
// @Tags         medicines
// @Security     Bearer
// @Param        id   path  string  true  "ID del medicamento"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/medicines/{id} [delete]
func (h *MedicineHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetActor(c), c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// History godoc
// @Summary      Historial de auditoría del medicamento
// @Tags         medicines
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del medicamento"
// @Success      200  {array}  entity.AuditEntry
// @Router       /api/medicines/{id}/history [get]
func (h *MedicineHandler) History(c *fiber.Ctx) error {
	entries, err := h.audit.ForEntity(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(entries)
}
