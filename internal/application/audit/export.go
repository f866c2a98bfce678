package audit

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"time"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// ExportMIME tipo de contenido del archivo exportado.
const ExportMIME = "text/csv"

var csvHeader = []string{"Timestamp", "User", "Action", "Entity Type", "Entity Name", "Details"}

// ExportCSV serializa las entradas. Con cero entradas no hay archivo: devuelve (nil, false).
func ExportCSV(entries []entity.AuditEntry) ([]byte, bool) {
	if len(entries) == 0 {
		return nil, false
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(csvHeader)
	for _, e := range entries {
		name := e.EntityName
		if name == "" {
			name = "—"
		}
		_ = w.Write([]string{
			e.Timestamp.UTC().Format(time.RFC3339),
			e.ActorName,
			e.Action.Label(),
			e.EntityType,
			name,
			detailsJSON(e.Details),
		})
	}
	w.Flush()
	return buf.Bytes(), true
}

// ExportFilename audit-log-YYYY-MM-DD.csv con la fecha de now.
func ExportFilename(now time.Time) string {
	return "audit-log-" + now.Format("2006-01-02") + ".csv"
}

func detailsJSON(d map[string]any) string {
	if len(d) == 0 {
		return "{}"
	}
	b, err := json.Marshal(d)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// Stats resumen que acompaña al listado del registro.
type Stats struct {
	Total         int `json:"total"`
	MedicinesSold int `json:"medicinesSold"`
	ChangesMade   int `json:"changesMade"`
}

// ComputeStats cuenta ventas de medicamentos y cambios (alta, edición, borrado, farmacia).
func ComputeStats(entries []entity.AuditEntry) Stats {
	s := Stats{Total: len(entries)}
	for _, e := range entries {
		if e.Action == entity.ActionMedicineSold {
			s.MedicinesSold++
		}
		if e.Action.IsChange() {
			s.ChangesMade++
		}
	}
	return s
}
