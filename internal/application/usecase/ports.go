package usecase

import (
	"context"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// AuditRecorder registro de auditoría best effort (audit.Log).
type AuditRecorder interface {
	RecordBestEffort(ctx context.Context, e entity.AuditEntry)
}
