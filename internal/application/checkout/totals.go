package checkout

import (
	"github.com/shopspring/decimal"
)

// Totals totales del carrito.
type Totals struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	Tax        decimal.Decimal `json:"tax"`
	GrandTotal decimal.Decimal `json:"grandTotal"`
}

// ComputeTotals calcula con el precio actual de cada medicamento, no con uno congelado:
// un cambio de precio se refleja en el carrito abierto. Las líneas cuyo medicamento ya no existe
// aportan 0. El impuesto se redondea a 2 decimales.
func ComputeTotals(lines []Line, stock StockReader, taxRate decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		m, err := stock.Get(l.MedicineID)
		if err != nil {
			continue
		}
		subtotal = subtotal.Add(m.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return withTax(subtotal, taxRate)
}

func withTax(subtotal, taxRate decimal.Decimal) Totals {
	tax := subtotal.Mul(taxRate).Round(2)
	return Totals{Subtotal: subtotal, Tax: tax, GrandTotal: subtotal.Add(tax)}
}
