package audit

import (
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// Filter conjunción de criterios. Los campos vacíos no filtran.
// End es inclusivo hasta el último instante de ese día.
type Filter struct {
	Action     entity.ActionKind
	ActorID    string
	EntityType string
	Start      time.Time
	End        time.Time
	Search     string
}

// Apply filtra entries en memoria conservando el orden.
func Apply(entries []entity.AuditEntry, f Filter) []entity.AuditEntry {
	var end time.Time
	if !f.End.IsZero() {
		end = EndOfDay(f.End)
	}
	term := fold(strings.TrimSpace(f.Search))

	out := make([]entity.AuditEntry, 0, len(entries))
	for _, e := range entries {
		if f.Action != "" && e.Action != f.Action {
			continue
		}
		if f.ActorID != "" && e.ActorID != f.ActorID {
			continue
		}
		if f.EntityType != "" && e.EntityType != f.EntityType {
			continue
		}
		if !f.Start.IsZero() && e.Timestamp.Before(f.Start) {
			continue
		}
		if !end.IsZero() && e.Timestamp.After(end) {
			continue
		}
		if term != "" && !matchesSearch(e, term) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// EndOfDay 23:59:59.999999999 del día de t, en su zona horaria.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// matchesSearch la búsqueda solo mira nombre del usuario, nombre de la entidad y cliente; no el detalle completo.
func matchesSearch(e entity.AuditEntry, term string) bool {
	if strings.Contains(fold(e.ActorName), term) || strings.Contains(fold(e.EntityName), term) {
		return true
	}
	if customer, ok := e.Details["customerName"].(string); ok {
		return strings.Contains(fold(customer), term)
	}
	return false
}

func fold(s string) string {
	return cases.Fold().String(s)
}
