package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo reportes de ventas calculados en SQL sobre los recibos JSONB.
// Los NUMERIC se escanean a decimal.Decimal gracias al codec registrado en NewPool.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el repositorio de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

func (r *ReportRepo) SalesTotals(ctx context.Context, from, to time.Time) (repository.SalesTotals, error) {
	var t repository.SalesTotals
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM((data->>'grandTotal')::numeric), 0),
		       COALESCE(SUM((data->>'tax')::numeric), 0)
		FROM documents
		WHERE collection = $1 AND created_at >= $2 AND created_at < $3`,
		repository.CollectionReceipts, from, to,
	).Scan(&t.ReceiptCount, &t.Revenue, &t.Tax)
	if err != nil {
		return repository.SalesTotals{}, fmt.Errorf("sales totals: %w", err)
	}

	var units decimal.Decimal
	err = r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM((item->>'quantity')::numeric), 0)
		FROM documents d, jsonb_array_elements(d.data->'items') AS item
		WHERE d.collection = $1 AND d.created_at >= $2 AND d.created_at < $3`,
		repository.CollectionReceipts, from, to,
	).Scan(&units)
	if err != nil {
		return repository.SalesTotals{}, fmt.Errorf("units sold: %w", err)
	}
	t.UnitsSold = int(units.IntPart())
	return t, nil
}
