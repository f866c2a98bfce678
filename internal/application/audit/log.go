package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

// Límites por defecto de las consultas del registro.
const (
	DefaultQueryLimit  = 200
	DefaultEntityLimit = 50
)

// Log registro de auditoría append-only sobre la colección audit_logs.
type Log struct {
	entries    repository.Collection[entity.AuditEntry]
	queryLimit int
	log        zerolog.Logger
	now        func() time.Time
}

// NewLog construye el registro. queryLimit es cuántas entradas recientes trae Query antes de filtrar.
func NewLog(store repository.DocumentStore, queryLimit int, log zerolog.Logger) *Log {
	if queryLimit <= 0 {
		queryLimit = DefaultQueryLimit
	}
	return &Log{
		entries:    repository.NewCollection[entity.AuditEntry](store, repository.CollectionAuditLogs),
		queryLimit: queryLimit,
		log:        log,
		now:        time.Now,
	}
}

// WithClock fija el reloj (tests).
func (l *Log) WithClock(now func() time.Time) *Log {
	l.now = now
	return l
}

// Record inserta la entrada asignando id y timestamp. Devuelve el id.
// Los errores de escritura se envuelven con domain.ErrAuditWrite.
func (l *Log) Record(ctx context.Context, e entity.AuditEntry) (string, error) {
	if !e.Action.IsValid() {
		return "", domain.Invalid("action", fmt.Sprintf("acción desconocida %q", e.Action))
	}
	e.ID = uuid.NewString()
	if e.Timestamp.IsZero() {
		e.Timestamp = l.now().UTC()
	}
	if e.Details == nil {
		e.Details = map[string]any{}
	}
	if _, err := l.entries.Insert(ctx, e.ID, e); err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrAuditWrite, err)
	}
	return e.ID, nil
}

// RecordBestEffort registra la entrada y, si falla, solo deja un warning. Nunca bloquea la acción que se audita.
func (l *Log) RecordBestEffort(ctx context.Context, e entity.AuditEntry) {
	if _, err := l.Record(ctx, e); err != nil {
		l.log.Warn().Err(err).
			Str("action", string(e.Action)).
			Str("entity_id", e.EntityID).
			Str("user_id", e.ActorID).
			Msg("no se pudo registrar la auditoría")
	}
}

// Query trae las entradas más recientes (hasta el límite configurado) que cumplen los filtros
// de igualdad, y aplica en memoria el rango de fechas y la búsqueda de texto.
func (l *Log) Query(ctx context.Context, f Filter) ([]entity.AuditEntry, error) {
	q := repository.Query{Equals: map[string]string{}, NewestFirst: true, Limit: l.queryLimit}
	if f.Action != "" {
		q.Equals["action"] = string(f.Action)
	}
	if f.ActorID != "" {
		q.Equals["userId"] = f.ActorID
	}
	if f.EntityType != "" {
		q.Equals["entityType"] = f.EntityType
	}
	entries, err := l.entries.Find(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query audit: %w", err)
	}
	return Apply(entries, f), nil
}

// ForEntity historial de una entidad (p. ej. un medicamento), más reciente primero.
func (l *Log) ForEntity(ctx context.Context, entityID string) ([]entity.AuditEntry, error) {
	return l.entries.Find(ctx, repository.Query{
		Equals:      map[string]string{"entityId": entityID},
		NewestFirst: true,
		Limit:       DefaultEntityLimit,
	})
}

// ForActor actividad de un usuario, más reciente primero.
func (l *Log) ForActor(ctx context.Context, actorID string, limit int) ([]entity.AuditEntry, error) {
	if limit <= 0 {
		limit = DefaultEntityLimit
	}
	return l.entries.Find(ctx, repository.Query{
		Equals:      map[string]string{"userId": actorID},
		NewestFirst: true,
		Limit:       limit,
	})
}

// ClearAll borra todas las entradas. Destructivo: exige confirm == true.
func (l *Log) ClearAll(ctx context.Context, confirm bool) (int, error) {
	if !confirm {
		return 0, domain.ErrConfirmationRequired
	}
	n, err := l.entries.Clear(ctx)
	if err != nil {
		return 0, fmt.Errorf("clear audit: %w", err)
	}
	l.log.Warn().Int("deleted", n).Msg("registro de auditoría vaciado")
	return n, nil
}
