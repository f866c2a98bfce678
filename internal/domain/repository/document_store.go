package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Colecciones del almacén de documentos. Son las mismas que usa el cliente web.
const (
	CollectionMedicines      = "medicines"
	CollectionCategories     = "categories"
	CollectionReceipts       = "receipts"
	CollectionAuditLogs      = "audit_logs"
	CollectionUsers          = "users"
	CollectionSuppliers      = "suppliers"
	CollectionSupplierOrders = "supplier_orders"
	CollectionSettings       = "settings"
)

// Document registro crudo de una colección. Data es el JSON del documento.
type Document struct {
	ID        string
	Data      json.RawMessage
	CreatedAt time.Time
}

// Query filtro simple: igualdad sobre campos de primer nivel del JSON, orden por creación y límite.
// Limit <= 0 significa sin límite.
type Query struct {
	Equals      map[string]string
	NewestFirst bool
	Limit       int
}

// DocumentStore define el puerto del almacén de documentos plano (una colección por tipo de registro).
// No es transaccional entre colecciones. List devuelve los documentos en orden de creación.
type DocumentStore interface {
	List(ctx context.Context, collection string) ([]Document, error)
	// Get devuelve domain.ErrNotFound si el id no existe.
	Get(ctx context.Context, collection, id string) (Document, error)
	// Insert crea el documento; con id vacío el almacén asigna uno nuevo. Devuelve el id.
	Insert(ctx context.Context, collection, id string, data json.RawMessage) (string, error)
	// Replace reemplaza el documento completo; lo crea si no existe.
	Replace(ctx context.Context, collection, id string, data json.RawMessage) error
	// Delete devuelve domain.ErrNotFound si el id no existe.
	Delete(ctx context.Context, collection, id string) error
	Query(ctx context.Context, collection string, q Query) ([]Document, error)
	// DeleteAll vacía la colección y devuelve cuántos documentos borró.
	DeleteAll(ctx context.Context, collection string) (int, error)
}

// Collection acceso tipado a una colección: serializa T a JSON en la escritura y lo decodifica en la lectura.
type Collection[T any] struct {
	store DocumentStore
	name  string
}

// NewCollection construye el acceso tipado a la colección name.
func NewCollection[T any](store DocumentStore, name string) Collection[T] {
	return Collection[T]{store: store, name: name}
}

// Name nombre de la colección.
func (c Collection[T]) Name() string { return c.name }

// All todos los documentos en orden de creación.
func (c Collection[T]) All(ctx context.Context) ([]T, error) {
	docs, err := c.store.List(ctx, c.name)
	if err != nil {
		return nil, err
	}
	return decodeAll[T](c.name, docs)
}

// Get un documento por id.
func (c Collection[T]) Get(ctx context.Context, id string) (T, error) {
	var out T
	doc, err := c.store.Get(ctx, c.name, id)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(doc.Data, &out); err != nil {
		return out, fmt.Errorf("decode %s/%s: %w", c.name, id, err)
	}
	return out, nil
}

// Insert crea el documento.
func (c Collection[T]) Insert(ctx context.Context, id string, v T) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", c.name, err)
	}
	return c.store.Insert(ctx, c.name, id, data)
}

// Put reemplaza (o crea) el documento id.
func (c Collection[T]) Put(ctx context.Context, id string, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", c.name, id, err)
	}
	return c.store.Replace(ctx, c.name, id, data)
}

// Delete borra el documento id.
func (c Collection[T]) Delete(ctx context.Context, id string) error {
	return c.store.Delete(ctx, c.name, id)
}

// Find documentos que cumplen q.
func (c Collection[T]) Find(ctx context.Context, q Query) ([]T, error) {
	docs, err := c.store.Query(ctx, c.name, q)
	if err != nil {
		return nil, err
	}
	return decodeAll[T](c.name, docs)
}

// Clear vacía la colección.
func (c Collection[T]) Clear(ctx context.Context) (int, error) {
	return c.store.DeleteAll(ctx, c.name)
}

func decodeAll[T any](collection string, docs []Document) ([]T, error) {
	out := make([]T, 0, len(docs))
	for _, d := range docs {
		var v T
		if err := json.Unmarshal(d.Data, &v); err != nil {
			return nil, fmt.Errorf("decode %s/%s: %w", collection, d.ID, err)
		}
		out = append(out, v)
	}
	return out, nil
}
