package memstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo reportes sobre el almacén en memoria: filtra y suma en Go.
type ReportRepo struct {
	store *Store
}

// NewReportRepository construye el repositorio de reportes.
func NewReportRepository(store *Store) *ReportRepo {
	return &ReportRepo{store: store}
}

func (r *ReportRepo) SalesTotals(ctx context.Context, from, to time.Time) (repository.SalesTotals, error) {
	docs, err := r.store.List(ctx, repository.CollectionReceipts)
	if err != nil {
		return repository.SalesTotals{}, err
	}
	var receipts []entity.Receipt
	for _, d := range docs {
		if d.CreatedAt.Before(from) || !d.CreatedAt.Before(to) {
			continue
		}
		var rc entity.Receipt
		if err := json.Unmarshal(d.Data, &rc); err != nil {
			return repository.SalesTotals{}, fmt.Errorf("decode receipt %s: %w", d.ID, err)
		}
		receipts = append(receipts, rc)
	}
	return repository.SumReceipts(receipts), nil
}
