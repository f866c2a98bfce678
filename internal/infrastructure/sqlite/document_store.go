package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

var _ repository.DocumentStore = (*DocumentStore)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS documents(
  seq        INTEGER PRIMARY KEY AUTOINCREMENT,
  collection TEXT    NOT NULL,
  id         TEXT    NOT NULL,
  data       TEXT    NOT NULL,
  created_at INTEGER NOT NULL,
  UNIQUE(collection, id)
);
CREATE INDEX IF NOT EXISTS idx_documents_collection ON documents(collection, seq);`

type documentRow struct {
	ID        string `db:"id"`
	Data      string `db:"data"`
	CreatedAt int64  `db:"created_at"` // unix nanos, UTC
}

func (r documentRow) toDocument() repository.Document {
	return repository.Document{
		ID:        r.ID,
		Data:      json.RawMessage(r.Data),
		CreatedAt: time.Unix(0, r.CreatedAt).UTC(),
	}
}

// DocumentStore almacén de documentos sobre SQLite (driver modernc, sin cgo) para despliegues de un solo nodo.
type DocumentStore struct {
	db  *sqlx.DB
	now func() time.Time
}

// Open abre la base, aplica el esquema y devuelve el almacén.
func Open(ctx context.Context, dsn string) (*DocumentStore, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if strings.Contains(dsn, ":memory:") {
		// cada conexión a :memory: es una base distinta
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &DocumentStore{db: db, now: time.Now}, nil
}

// DB conexión subyacente (reportes).
func (s *DocumentStore) DB() *sqlx.DB { return s.db }

// Close cierra la base.
func (s *DocumentStore) Close() error { return s.db.Close() }

func (s *DocumentStore) List(ctx context.Context, collection string) ([]repository.Document, error) {
	return s.Query(ctx, collection, repository.Query{})
}

func (s *DocumentStore) Get(ctx context.Context, collection, id string) (repository.Document, error) {
	var row documentRow
	err := s.db.GetContext(ctx, &row,
		`SELECT id, data, created_at FROM documents WHERE collection = ? AND id = ?`, collection, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return repository.Document{}, domain.ErrNotFound
		}
		return repository.Document{}, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return row.toDocument(), nil
}

func (s *DocumentStore) Insert(ctx context.Context, collection, id string, data json.RawMessage) (string, error) {
	if id == "" {
		id = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents(collection, id, data, created_at) VALUES(?, ?, ?, ?)`,
		collection, id, string(data), s.now().UTC().UnixNano())
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return "", fmt.Errorf("insert %s/%s: %w", collection, id, domain.ErrDuplicate)
		}
		return "", fmt.Errorf("insert %s/%s: %w", collection, id, err)
	}
	return id, nil
}

func (s *DocumentStore) Replace(ctx context.Context, collection, id string, data json.RawMessage) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO documents(collection, id, data, created_at) VALUES(?, ?, ?, ?)
ON CONFLICT(collection, id) DO UPDATE SET data = excluded.data`,
		collection, id, string(data), s.now().UTC().UnixNano())
	if err != nil {
		return fmt.Errorf("replace %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *DocumentStore) Delete(ctx context.Context, collection, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE collection = ? AND id = ?`, collection, id)
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *DocumentStore) DeleteAll(ctx context.Context, collection string) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE collection = ?`, collection)
	if err != nil {
		return 0, fmt.Errorf("delete all %s: %w", collection, err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

func (s *DocumentStore) Query(ctx context.Context, collection string, q repository.Query) ([]repository.Document, error) {
	query, args := buildQuery(collection, q)
	var rows []documentRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("query %s: %w", collection, err)
	}
	out := make([]repository.Document, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDocument())
	}
	return out, nil
}

func buildQuery(collection string, q repository.Query) (string, []any) {
	var b strings.Builder
	args := []any{collection}
	b.WriteString(`SELECT id, data, created_at FROM documents WHERE collection = ?`)

	keys := make([]string, 0, len(q.Equals))
	for k := range q.Equals {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(` AND json_extract(data, ?) = ?`)
		args = append(args, "$."+k, q.Equals[k])
	}

	if q.NewestFirst {
		b.WriteString(` ORDER BY seq DESC`)
	} else {
		b.WriteString(` ORDER BY seq ASC`)
	}
	if q.Limit > 0 {
		b.WriteString(` LIMIT ?`)
		args = append(args, q.Limit)
	}
	return b.String(), args
}
