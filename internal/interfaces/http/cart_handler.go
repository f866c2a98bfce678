package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacia-api/internal/application/checkout"
	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/application/inventory"
	"github.com/jhoicas/Farmacia-api/internal/application/session"
)

// CartHandler carrito de la sesión y cierre de venta. Cada operador tiene su propio carrito.
type CartHandler struct {
	sessions *session.Manager
	checkout *checkout.Service
	store    *inventory.Store
	log      zerolog.Logger
}

// NewCartHandler construye el handler.
func NewCartHandler(sessions *session.Manager, svc *checkout.Service, store *inventory.Store, log zerolog.Logger) *CartHandler {
	return &CartHandler{sessions: sessions, checkout: svc, store: store, log: log}
}

func (h *CartHandler) cart(c *fiber.Ctx) *checkout.Cart {
	return h.sessions.Cart(GetActorID(c))
}

func (h *CartHandler) totals(cart *checkout.Cart) dto.TotalsResponse {
	t := h.checkout.Totals(cart)
	return dto.TotalsResponse{Subtotal: t.Subtotal, Tax: t.Tax, GrandTotal: t.GrandTotal, TaxRate: h.checkout.TaxRate()}
}

// view arma la respuesta con nombre y precio actuales. Una línea cuyo medicamento ya no existe
// se muestra sin nombre y con precio 0.
func (h *CartHandler) view(cart *checkout.Cart) dto.CartResponse {
	lines := cart.Lines()
	out := dto.CartResponse{State: string(cart.State()), Lines: make([]dto.CartLineResponse, 0, len(lines))}
	for _, l := range lines {
		row := dto.CartLineResponse{MedicineID: l.MedicineID, Quantity: l.Quantity, Price: decimal.Zero, LineTotal: decimal.Zero}
		if m, err := h.store.Get(l.MedicineID); err == nil {
			row.Name = m.Name
			row.Price = m.Price
			row.LineTotal = m.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
			row.Available = m.Quantity
		}
		out.Lines = append(out.Lines, row)
	}
	out.Totals = h.totals(cart)
	return out
}

// Get godoc
// @Summary      Carrito actual
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CartResponse
// @Router       /api/cart [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	return c.JSON(h.view(h.cart(c)))
}

// AddLine godoc
// @Summary      Agregar una unidad al carrito
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddLineRequest  true  "Medicamento"
// @Success      200   {object}  dto.CartResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "OUT_OF_STOCK o COMMIT_IN_PROGRESS"
// @Router       /api/cart/lines [post]
func (h *CartHandler) AddLine(c *fiber.Ctx) error {
	var in dto.AddLineRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	cart := h.cart(c)
	if err := cart.AddLine(h.store, in.MedicineID); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(h.view(cart))
}

// AdjustLine godoc
// @Summary      Sumar delta a la cantidad de una línea (<= 0 la elimina)
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del medicamento"
// @Param        body  body  dto.AdjustLineRequest  true  "Delta"
// @Success      200   {object}  dto.CartResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/cart/lines/{id} [patch]
func (h *CartHandler) AdjustLine(c *fiber.Ctx) error {
	var in dto.AdjustLineRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	cart := h.cart(c)
	if err := cart.AdjustLine(c.Params("id"), in.Delta); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(h.view(cart))
}

// RemoveLine godoc
// @Summary      Quitar una línea del carrito
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del medicamento"
// @Success      200  {object}  dto.CartResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cart/lines/{id} [delete]
func (h *CartHandler) RemoveLine(c *fiber.Ctx) error {
	cart := h.cart(c)
	if err := cart.RemoveLine(c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(h.view(cart))
}

// Clear godoc
// @Summary      Vaciar el carrito
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CartResponse
// @Router       /api/cart [delete]
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	cart := h.cart(c)
	if err := cart.Clear(); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(h.view(cart))
}

// Totals godoc
// @Summary      Totales del carrito con precios actuales
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TotalsResponse
// @Router       /api/cart/totals [get]
func (h *CartHandler) Totals(c *fiber.Ctx) error {
	return c.JSON(h.totals(h.cart(c)))
}

// Checkout godoc
// @Summary      Cerrar la venta
// @Description  Descuenta stock línea por línea. Las líneas que fallan se informan en failedLines;
// @Description  si ninguna se pudo vender responde COMMIT_FAILED y el carrito queda intacto.
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckoutRequest  false  "Cliente"
// @Success      201   {object}  dto.CheckoutResponse
// @Failure      400   {object}  dto.ErrorResponse  "EMPTY_CART"
// @Failure      409   {object}  dto.ErrorResponse  "COMMIT_IN_PROGRESS"
// @Failure      422   {object}  dto.ErrorResponse  "COMMIT_FAILED"
// @Router       /api/cart/checkout [post]
func (h *CartHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	res, err := h.checkout.Commit(c.UserContext(), h.cart(c), GetActor(c), in.CustomerName)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out := dto.CheckoutResponse{
		Receipt:     res.Receipt,
		FailedLines: make([]dto.FailedLineResponse, 0, len(res.FailedLines)),
		SyncWarning: res.SyncWarning,
	}
	for _, f := range res.FailedLines {
		out.FailedLines = append(out.FailedLines, dto.FailedLineResponse{MedicineID: f.MedicineID, Quantity: f.Quantity, Reason: f.Reason})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
