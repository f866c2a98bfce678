package category

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Farmacia-api/internal/application/remotesync"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

// UsageCounter cuenta medicamentos por categoría (inventory.Store).
type UsageCounter interface {
	CountByCategory(name string) int
}

// Syncer cola de escrituras best effort hacia el almacén remoto.
type Syncer interface {
	Submit(t remotesync.Task)
}

// Registry conjunto de nombres de categoría con ciclo de vida propio. Los nombres son únicos
// y distinguen mayúsculas; el orden de inserción se conserva para mostrar.
type Registry struct {
	mu    sync.RWMutex
	names []string
	ids   map[string]string // nombre -> id del documento remoto

	usage  UsageCounter
	remote repository.Collection[entity.Category]
	sync   Syncer
	log    zerolog.Logger
}

// NewRegistry construye el registro vacío.
func NewRegistry(remote repository.DocumentStore, usage UsageCounter, syncer Syncer, log zerolog.Logger) *Registry {
	return &Registry{
		ids:    make(map[string]string),
		usage:  usage,
		remote: repository.NewCollection[entity.Category](remote, repository.CollectionCategories),
		sync:   syncer,
		log:    log,
	}
}

// Load reemplaza el contenido local con las categorías del almacén remoto.
func (r *Registry) Load(ctx context.Context) error {
	cats, err := r.remote.All(ctx)
	if err != nil {
		return fmt.Errorf("cargar categorías: %w", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names = r.names[:0]
	r.ids = make(map[string]string, len(cats))
	for _, c := range cats {
		if c.Name == "" {
			continue
		}
		if _, dup := r.ids[c.Name]; dup {
			continue
		}
		r.names = append(r.names, c.Name)
		r.ids[c.Name] = c.ID
	}
	return nil
}

// List nombres en orden de inserción.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.names)
}

// Add registra la categoría. Si ya existe no hace nada y devuelve false.
func (r *Registry) Add(name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, domain.Invalid("name", "es obligatorio")
	}
	r.mu.Lock()
	if _, ok := r.ids[name]; ok {
		r.mu.Unlock()
		return false, nil
	}
	c := entity.Category{ID: uuid.NewString(), Name: name}
	r.names = append(r.names, name)
	r.ids[name] = c.ID
	r.mu.Unlock()

	r.sync.Submit(remotesync.Task{
		Collection: repository.CollectionCategories,
		Op:         remotesync.OpInsert,
		ID:         c.ID,
		Run: func(ctx context.Context) error {
			_, err := r.remote.Insert(ctx, c.ID, c)
			return err
		},
	})
	return true, nil
}

// Remove borra la categoría. Se rechaza con *domain.CategoryInUseError si algún medicamento
// la referencia; la comprobación es síncrona y previa al borrado.
func (r *Registry) Remove(name string) error {
	r.mu.Lock()
	id, ok := r.ids[name]
	if !ok {
		r.mu.Unlock()
		return domain.ErrNotFound
	}
	if n := r.usage.CountByCategory(name); n > 0 {
		r.mu.Unlock()
		return &domain.CategoryInUseError{Category: name, Count: n}
	}
	delete(r.ids, name)
	r.names = slices.DeleteFunc(r.names, func(s string) bool { return s == name })
	r.mu.Unlock()

	r.sync.Submit(remotesync.Task{
		Collection: repository.CollectionCategories,
		Op:         remotesync.OpDelete,
		ID:         id,
		Run:        func(ctx context.Context) error { return r.remote.Delete(ctx, id) },
	})
	r.log.Info().Str("category", name).Msg("categoría eliminada")
	return nil
}
