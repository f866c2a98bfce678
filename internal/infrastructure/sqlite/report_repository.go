package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo reportes de ventas. SQLite no tiene decimal exacto, así que filtra en SQL y suma en Go.
type ReportRepo struct {
	store *DocumentStore
}

// NewReportRepository construye el repositorio de reportes.
func NewReportRepository(store *DocumentStore) *ReportRepo {
	return &ReportRepo{store: store}
}

func (r *ReportRepo) SalesTotals(ctx context.Context, from, to time.Time) (repository.SalesTotals, error) {
	var rows []string
	err := r.store.db.SelectContext(ctx, &rows,
		`SELECT data FROM documents WHERE collection = ? AND created_at >= ? AND created_at < ? ORDER BY seq`,
		repository.CollectionReceipts, from.UTC().UnixNano(), to.UTC().UnixNano())
	if err != nil {
		return repository.SalesTotals{}, fmt.Errorf("sales totals: %w", err)
	}
	receipts := make([]entity.Receipt, 0, len(rows))
	for _, data := range rows {
		var rc entity.Receipt
		if err := json.Unmarshal([]byte(data), &rc); err != nil {
			return repository.SalesTotals{}, fmt.Errorf("decode receipt: %w", err)
		}
		receipts = append(receipts, rc)
	}
	return repository.SumReceipts(receipts), nil
}
