package remotesync

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Farmacia-api/internal/domain"
)

// Operaciones de escritura sobre el espejo.
const (
	OpInsert  = "insert"
	OpReplace = "replace"
	OpDelete  = "delete"
)

// taskTimeout tiempo máximo de un intento de escritura remota.
const taskTimeout = 10 * time.Second

// ErrQueueFull la cola estaba llena; la escritura no se intentó.
var ErrQueueFull = errors.New("cola de sincronización llena")

// Task escritura remota pendiente. Se intenta una sola vez.
type Task struct {
	Collection string
	Op         string
	ID         string
	Run        func(ctx context.Context) error
}

// Failure escritura remota que falló. El cambio local ya quedó aplicado y no se revierte.
type Failure struct {
	Collection string    `json:"collection"`
	Op         string    `json:"op"`
	ID         string    `json:"id"`
	Error      string    `json:"error"`
	At         time.Time `json:"at"`
	err        error
}

// Err error original envuelto como *domain.RemoteSyncError.
func (f Failure) Err() error {
	return &domain.RemoteSyncError{Collection: f.Collection, Op: f.Op, ID: f.ID, Err: f.err}
}

// Mirror cola de tareas de sincronización con un único worker. Submit nunca bloquea al llamador:
// la mutación local ya terminó y la escritura remota es best effort.
type Mirror struct {
	tasks    chan Task
	failures chan Failure
	journal  *Journal
	log      zerolog.Logger
	pending  sync.WaitGroup
}

// NewMirror construye la cola con capacidad queueSize.
func NewMirror(queueSize int, log zerolog.Logger) *Mirror {
	if queueSize <= 0 {
		queueSize = 1
	}
	return &Mirror{
		tasks:    make(chan Task, queueSize),
		failures: make(chan Failure, queueSize),
		journal:  NewJournal(100),
		log:      log,
	}
}

// Submit encola la tarea. Si la cola está llena la tarea se descarta y se reporta como fallo.
func (m *Mirror) Submit(t Task) {
	m.pending.Add(1)
	select {
	case m.tasks <- t:
	default:
		m.pending.Done()
		m.fail(t, ErrQueueFull)
	}
}

// Run procesa tareas hasta que ctx se cancela. Las tareas que quedan en cola al cancelar
// se reportan como fallidas.
func (m *Mirror) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			m.drain(ctx.Err())
			return
		case t := <-m.tasks:
			m.execute(ctx, t)
		}
	}
}

// Flush espera a que se procesen todas las tareas encoladas. Requiere que Run esté activo.
func (m *Mirror) Flush() {
	m.pending.Wait()
}

// Errors canal de fallos. Si nadie lo consume, los fallos más nuevos se descartan del canal
// (siguen quedando en el Journal y en el log).
func (m *Mirror) Errors() <-chan Failure {
	return m.failures
}

// Journal últimos fallos de sincronización.
func (m *Mirror) Journal() *Journal {
	return m.journal
}

func (m *Mirror) execute(ctx context.Context, t Task) {
	defer m.pending.Done()
	tctx, cancel := context.WithTimeout(ctx, taskTimeout)
	defer cancel()
	if err := t.Run(tctx); err != nil {
		m.fail(t, err)
		return
	}
	m.log.Debug().Str("collection", t.Collection).Str("op", t.Op).Str("id", t.ID).Msg("sincronizado con el almacén remoto")
}

func (m *Mirror) drain(cause error) {
	for {
		select {
		case t := <-m.tasks:
			m.fail(t, fmt.Errorf("cancelada antes de ejecutarse: %w", cause))
			m.pending.Done()
		default:
			return
		}
	}
}

func (m *Mirror) fail(t Task, err error) {
	f := Failure{Collection: t.Collection, Op: t.Op, ID: t.ID, Error: err.Error(), At: time.Now().UTC(), err: err}
	m.journal.add(f)
	m.log.Warn().Err(err).
		Str("collection", t.Collection).Str("op", t.Op).Str("id", t.ID).
		Msg("fallo de sincronización remota; el cambio local se conserva")
	select {
	case m.failures <- f:
	default:
	}
}
