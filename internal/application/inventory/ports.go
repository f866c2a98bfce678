package inventory

import (
	"context"

	"github.com/jhoicas/Farmacia-api/internal/application/remotesync"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// Syncer cola de escrituras best effort hacia el almacén remoto (remotesync.Mirror).
type Syncer interface {
	Submit(t remotesync.Task)
}

// AuditRecorder registro de auditoría que nunca bloquea la acción auditada (audit.Log).
type AuditRecorder interface {
	RecordBestEffort(ctx context.Context, e entity.AuditEntry)
}
