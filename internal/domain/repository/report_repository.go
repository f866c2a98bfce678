package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// SalesTotals agregados de recibos en un período.
type SalesTotals struct {
	ReceiptCount int
	UnitsSold    int
	Revenue      decimal.Decimal // suma de grandTotal
	Tax          decimal.Decimal
}

// ReportRepository consultas de lectura para reportes de ventas.
// El período es [from, to) sobre la fecha de creación del recibo.
type ReportRepository interface {
	SalesTotals(ctx context.Context, from, to time.Time) (SalesTotals, error)
}

// SumReceipts agrega recibos ya filtrados. Lo usan los almacenes que no agregan en SQL.
func SumReceipts(receipts []entity.Receipt) SalesTotals {
	t := SalesTotals{Revenue: decimal.Zero, Tax: decimal.Zero}
	for _, r := range receipts {
		t.ReceiptCount++
		t.Revenue = t.Revenue.Add(r.GrandTotal)
		t.Tax = t.Tax.Add(r.Tax)
		for _, it := range r.Items {
			t.UnitsSold += it.Quantity
		}
	}
	return t
}
