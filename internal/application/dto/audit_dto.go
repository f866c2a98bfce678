package dto

import (
	"github.com/jhoicas/Farmacia-api/internal/application/audit"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// AuditQueryRequest filtros de GET /api/audit. Las fechas van en YYYY-MM-DD.
type AuditQueryRequest struct {
	Action     string `query:"action"`
	UserID     string `query:"userId"`
	EntityType string `query:"entityType"`
	StartDate  string `query:"startDate"`
	EndDate    string `query:"endDate"`
	Search     string `query:"search"`
}

// AuditListResponse entradas más estadísticas del resultado.
type AuditListResponse struct {
	Items []entity.AuditEntry `json:"items"`
	Stats audit.Stats         `json:"stats"`
}
