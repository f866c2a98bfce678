package inventory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Farmacia-api/internal/application/remotesync"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

// Store copia autoritativa en memoria de los medicamentos. Cada mutación se aplica localmente
// de forma síncrona y luego se encola su réplica remota; un fallo remoto nunca revierte el cambio local.
type Store struct {
	mu         sync.RWMutex
	byID       map[string]entity.Medicine
	order      []string
	byCategory map[string]int

	remote repository.Collection[entity.Medicine]
	sync   Syncer
	log    zerolog.Logger
}

// NewStore construye el store vacío. Llamar Load para hidratarlo desde el almacén remoto.
func NewStore(remote repository.DocumentStore, syncer Syncer, log zerolog.Logger) *Store {
	return &Store{
		byID:       make(map[string]entity.Medicine),
		byCategory: make(map[string]int),
		remote:     repository.NewCollection[entity.Medicine](remote, repository.CollectionMedicines),
		sync:       syncer,
		log:        log,
	}
}

// Load reemplaza el contenido local con lo que hay en el almacén remoto (arranque).
func (s *Store) Load(ctx context.Context) error {
	meds, err := s.remote.All(ctx)
	if err != nil {
		return fmt.Errorf("cargar medicamentos: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID = make(map[string]entity.Medicine, len(meds))
	s.byCategory = make(map[string]int)
	s.order = s.order[:0]
	for _, m := range meds {
		if _, dup := s.byID[m.ID]; dup || m.ID == "" {
			continue
		}
		s.insertLocked(m)
	}
	s.log.Info().Int("count", len(s.order)).Msg("medicamentos cargados")
	return nil
}

// List copia de los registros en orden de inserción.
func (s *Store) List() []entity.Medicine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Medicine, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// Get devuelve domain.ErrNotFound si el id no existe.
func (s *Store) Get(id string) (entity.Medicine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.byID[id]
	if !ok {
		return entity.Medicine{}, domain.ErrNotFound
	}
	return m, nil
}

// Add valida el borrador, asigna un id nuevo y agrega el registro.
func (s *Store) Add(d Draft) (entity.Medicine, error) {
	m, err := d.Build(uuid.NewString())
	if err != nil {
		return entity.Medicine{}, err
	}
	s.mu.Lock()
	s.insertLocked(m)
	s.mu.Unlock()

	s.replicate(remotesync.OpInsert, m)
	return m, nil
}

// Update reemplaza todos los campos salvo el id. Devuelve el registro anterior y el nuevo.
func (s *Store) Update(id string, d Draft) (before, after entity.Medicine, err error) {
	after, err = d.Build(id)
	if err != nil {
		return entity.Medicine{}, entity.Medicine{}, err
	}
	s.mu.Lock()
	before, ok := s.byID[id]
	if !ok {
		s.mu.Unlock()
		return entity.Medicine{}, entity.Medicine{}, domain.ErrNotFound
	}
	s.replaceLocked(before, after)
	s.mu.Unlock()

	s.replicate(remotesync.OpReplace, after)
	return before, after, nil
}

// Remove borrado definitivo. Devuelve el registro borrado.
func (s *Store) Remove(id string) (entity.Medicine, error) {
	s.mu.Lock()
	m, ok := s.byID[id]
	if !ok {
		s.mu.Unlock()
		return entity.Medicine{}, domain.ErrNotFound
	}
	delete(s.byID, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.decCategory(m.Category)
	s.mu.Unlock()

	s.sync.Submit(remotesync.Task{
		Collection: repository.CollectionMedicines,
		Op:         remotesync.OpDelete,
		ID:         id,
		Run:        func(ctx context.Context) error { return s.remote.Delete(ctx, id) },
	})
	return m, nil
}

// AdjustQuantity suma delta al stock. El resultado nunca baja de 0: un descuento mayor al stock
// deja el medicamento en 0 sin error.
func (s *Store) AdjustQuantity(id string, delta int) (entity.Medicine, error) {
	s.mu.Lock()
	m, ok := s.byID[id]
	if !ok {
		s.mu.Unlock()
		return entity.Medicine{}, domain.ErrNotFound
	}
	m.Quantity = max(m.Quantity+delta, 0)
	s.byID[id] = m
	s.mu.Unlock()

	s.replicate(remotesync.OpReplace, m)
	return m, nil
}

// CountByCategory cantidad de medicamentos con esa categoría (índice inverso, sin recorrer el inventario).
func (s *Store) CountByCategory(name string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byCategory[name]
}

func (s *Store) insertLocked(m entity.Medicine) {
	s.byID[m.ID] = m
	s.order = append(s.order, m.ID)
	s.byCategory[m.Category]++
}

func (s *Store) replaceLocked(before, after entity.Medicine) {
	s.byID[after.ID] = after
	if before.Category != after.Category {
		s.decCategory(before.Category)
		s.byCategory[after.Category]++
	}
}

func (s *Store) decCategory(name string) {
	if s.byCategory[name] <= 1 {
		delete(s.byCategory, name)
		return
	}
	s.byCategory[name]--
}

func (s *Store) replicate(op string, m entity.Medicine) {
	s.sync.Submit(remotesync.Task{
		Collection: repository.CollectionMedicines,
		Op:         op,
		ID:         m.ID,
		Run:        func(ctx context.Context) error { return s.remote.Put(ctx, m.ID, m) },
	})
}
