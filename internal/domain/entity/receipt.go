package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// WalkInCustomer nombre por defecto cuando la venta no indica cliente.
const WalkInCustomer = "Walk-in"

// ReceiptItem línea vendida, con el precio capturado al momento de la venta.
type ReceiptItem struct {
	MedicineID string          `json:"medicineId"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	LineTotal  decimal.Decimal `json:"lineTotal"`
}

// Receipt recibo inmutable de una venta.
type Receipt struct {
	ID           string          `json:"id"`
	Timestamp    time.Time       `json:"timestamp"`
	CustomerName string          `json:"customerName"`
	Items        []ReceiptItem   `json:"items"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Tax          decimal.Decimal `json:"tax"`
	GrandTotal   decimal.Decimal `json:"grandTotal"`
	UserID       string          `json:"userId"`
	UserName     string          `json:"userName"`
}
