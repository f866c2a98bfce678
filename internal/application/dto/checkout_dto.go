package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// AddLineRequest agrega una unidad del medicamento al carrito.
type AddLineRequest struct {
	MedicineID string `json:"medicineId" validate:"required"`
}

// AdjustLineRequest suma delta a la cantidad de la línea.
type AdjustLineRequest struct {
	Delta int `json:"delta"`
}

// CheckoutRequest cliente opcional; vacío se registra como "Walk-in".
type CheckoutRequest struct {
	CustomerName string `json:"customerName"`
}

// CartLineResponse línea del carrito con el precio actual del inventario.
type CartLineResponse struct {
	MedicineID string          `json:"medicineId"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	LineTotal  decimal.Decimal `json:"lineTotal"`
	Available  int             `json:"available"`
}

// TotalsResponse totales del carrito.
type TotalsResponse struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	Tax        decimal.Decimal `json:"tax"`
	GrandTotal decimal.Decimal `json:"grandTotal"`
	TaxRate    decimal.Decimal `json:"taxRate"`
}

// CartResponse estado del carrito de la sesión.
type CartResponse struct {
	State  string             `json:"state"`
	Lines  []CartLineResponse `json:"lines"`
	Totals TotalsResponse     `json:"totals"`
}

// FailedLineResponse línea que no se pudo vender.
type FailedLineResponse struct {
	MedicineID string `json:"medicineId"`
	Quantity   int    `json:"quantity"`
	Reason     string `json:"reason"`
}

// CheckoutResponse recibo más las líneas fallidas. SyncWarning informa que el recibo
// no llegó al almacén remoto; la venta igual quedó hecha.
type CheckoutResponse struct {
	Receipt     entity.Receipt       `json:"receipt"`
	FailedLines []FailedLineResponse `json:"failedLines"`
	SyncWarning string               `json:"syncWarning,omitempty"`
}
