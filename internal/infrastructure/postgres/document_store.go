package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

var _ repository.DocumentStore = (*DocumentStore)(nil)

// schema tabla única de documentos JSONB; seq da el orden de creación estable.
const schema = `
CREATE TABLE IF NOT EXISTS documents (
	seq        BIGSERIAL,
	collection TEXT        NOT NULL,
	id         TEXT        NOT NULL,
	data       JSONB       NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (collection, id)
);
CREATE INDEX IF NOT EXISTS documents_collection_seq_idx ON documents (collection, seq);`

// DocumentStore implementación del puerto DocumentStore sobre PostgreSQL (usable con pool o tx).
type DocumentStore struct {
	q Querier
}

// NewDocumentStore construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentStore(q Querier) *DocumentStore {
	return &DocumentStore{q: q}
}

// EnsureSchema crea la tabla de documentos si no existe.
func (s *DocumentStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.q.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (s *DocumentStore) List(ctx context.Context, collection string) ([]repository.Document, error) {
	return s.Query(ctx, collection, repository.Query{})
}

func (s *DocumentStore) Get(ctx context.Context, collection, id string) (repository.Document, error) {
	var d repository.Document
	var data []byte
	err := s.q.QueryRow(ctx,
		`SELECT id, data, created_at FROM documents WHERE collection = $1 AND id = $2`,
		collection, id,
	).Scan(&d.ID, &data, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.Document{}, domain.ErrNotFound
		}
		return repository.Document{}, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	d.Data = data
	return d, nil
}

func (s *DocumentStore) Insert(ctx context.Context, collection, id string, data json.RawMessage) (string, error) {
	if id == "" {
		id = uuid.NewString()
	}
	_, err := s.q.Exec(ctx,
		`INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3)`,
		collection, id, []byte(data),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return "", fmt.Errorf("insert %s/%s: %w", collection, id, domain.ErrDuplicate)
		}
		return "", fmt.Errorf("insert %s/%s: %w", collection, id, err)
	}
	return id, nil
}

func (s *DocumentStore) Replace(ctx context.Context, collection, id string, data json.RawMessage) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3)
		ON CONFLICT (collection, id) DO UPDATE SET data = EXCLUDED.data`,
		collection, id, []byte(data),
	)
	if err != nil {
		return fmt.Errorf("replace %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *DocumentStore) Delete(ctx context.Context, collection, id string) error {
	cmd, err := s.q.Exec(ctx, `DELETE FROM documents WHERE collection = $1 AND id = $2`, collection, id)
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *DocumentStore) DeleteAll(ctx context.Context, collection string) (int, error) {
	cmd, err := s.q.Exec(ctx, `DELETE FROM documents WHERE collection = $1`, collection)
	if err != nil {
		return 0, fmt.Errorf("delete all %s: %w", collection, err)
	}
	return int(cmd.RowsAffected()), nil
}

func (s *DocumentStore) Query(ctx context.Context, collection string, q repository.Query) ([]repository.Document, error) {
	sql, args := buildQuery(collection, q)
	rows, err := s.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", collection, err)
	}
	defer rows.Close()

	out := make([]repository.Document, 0)
	for rows.Next() {
		var d repository.Document
		var data []byte
		if err := rows.Scan(&d.ID, &data, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan %s: %w", collection, err)
		}
		d.Data = data
		out = append(out, d)
	}
	return out, rows.Err()
}

// buildQuery arma el SELECT con filtros de igualdad sobre data->>campo. Las claves se ordenan
// para que el SQL sea determinista.
func buildQuery(collection string, q repository.Query) (string, []any) {
	var b strings.Builder
	args := []any{collection}
	b.WriteString(`SELECT id, data, created_at FROM documents WHERE collection = $1`)

	keys := make([]string, 0, len(q.Equals))
	for k := range q.Equals {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		args = append(args, k, q.Equals[k])
		fmt.Fprintf(&b, ` AND data->>$%d = $%d`, len(args)-1, len(args))
	}

	if q.NewestFirst {
		b.WriteString(` ORDER BY seq DESC`)
	} else {
		b.WriteString(` ORDER BY seq ASC`)
	}
	if q.Limit > 0 {
		args = append(args, q.Limit)
		fmt.Fprintf(&b, ` LIMIT $%d`, len(args))
	}
	return b.String(), args
}
