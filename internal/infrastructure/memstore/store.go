package memstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

var _ repository.DocumentStore = (*Store)(nil)

type record struct {
	data      json.RawMessage
	createdAt time.Time
}

type collection struct {
	byID  map[string]*record
	order []string
}

// Store almacén de documentos en memoria. Sirve para desarrollo local y para los tests.
type Store struct {
	mu          sync.RWMutex
	collections map[string]*collection
	now         func() time.Time
	writeErr    error
}

// New construye un almacén vacío.
func New() *Store {
	return &Store{collections: make(map[string]*collection), now: time.Now}
}

// WithClock fija el reloj usado para CreatedAt (tests).
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// FailWrites hace que toda escritura posterior falle con err; nil restablece el comportamiento normal.
// Simula un espejo remoto caído.
func (s *Store) FailWrites(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeErr = err
}

func (s *Store) coll(name string) *collection {
	c, ok := s.collections[name]
	if !ok {
		c = &collection{byID: make(map[string]*record)}
		s.collections[name] = c
	}
	return c
}

func (s *Store) List(ctx context.Context, name string) ([]repository.Document, error) {
	return s.Query(ctx, name, repository.Query{})
}

func (s *Store) Get(_ context.Context, name, id string) (repository.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.collections[name]
	if !ok {
		return repository.Document{}, domain.ErrNotFound
	}
	r, ok := c.byID[id]
	if !ok {
		return repository.Document{}, domain.ErrNotFound
	}
	return toDocument(id, r), nil
}

func (s *Store) Insert(_ context.Context, name, id string, data json.RawMessage) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writeErr != nil {
		return "", s.writeErr
	}
	if id == "" {
		id = uuid.NewString()
	}
	c := s.coll(name)
	if _, exists := c.byID[id]; exists {
		return "", fmt.Errorf("insert %s/%s: %w", name, id, domain.ErrDuplicate)
	}
	s.put(c, id, data)
	return id, nil
}

func (s *Store) Replace(_ context.Context, name, id string, data json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writeErr != nil {
		return s.writeErr
	}
	c := s.coll(name)
	if r, ok := c.byID[id]; ok {
		r.data = clone(data)
		return nil
	}
	s.put(c, id, data)
	return nil
}

func (s *Store) Delete(_ context.Context, name, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writeErr != nil {
		return s.writeErr
	}
	c, ok := s.collections[name]
	if !ok {
		return domain.ErrNotFound
	}
	if _, ok := c.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(c.byID, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Store) DeleteAll(_ context.Context, name string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writeErr != nil {
		return 0, s.writeErr
	}
	c, ok := s.collections[name]
	if !ok {
		return 0, nil
	}
	n := len(c.order)
	delete(s.collections, name)
	return n, nil
}

func (s *Store) Query(_ context.Context, name string, q repository.Query) ([]repository.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.collections[name]
	if !ok {
		return []repository.Document{}, nil
	}
	out := make([]repository.Document, 0, len(c.order))
	appendIf := func(id string) error {
		r := c.byID[id]
		match, err := matches(r.data, q.Equals)
		if err != nil {
			return fmt.Errorf("query %s/%s: %w", name, id, err)
		}
		if match {
			out = append(out, toDocument(id, r))
		}
		return nil
	}
	if q.NewestFirst {
		for i := len(c.order) - 1; i >= 0; i-- {
			if err := appendIf(c.order[i]); err != nil {
				return nil, err
			}
		}
	} else {
		for _, id := range c.order {
			if err := appendIf(id); err != nil {
				return nil, err
			}
		}
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (s *Store) put(c *collection, id string, data json.RawMessage) {
	c.byID[id] = &record{data: clone(data), createdAt: s.now().UTC()}
	c.order = append(c.order, id)
}

func matches(data json.RawMessage, equals map[string]string) (bool, error) {
	if len(equals) == 0 {
		return true, nil
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return false, err
	}
	for k, want := range equals {
		v, ok := fields[k]
		if !ok || fmt.Sprint(v) != want {
			return false, nil
		}
	}
	return true, nil
}

func toDocument(id string, r *record) repository.Document {
	return repository.Document{ID: id, Data: clone(r.data), CreatedAt: r.createdAt}
}

func clone(b json.RawMessage) json.RawMessage {
	return append(json.RawMessage(nil), b...)
}
