package session

import (
	"sync"

	"github.com/jhoicas/Farmacia-api/internal/application/checkout"
)

// Manager estado de sesión por operador: hoy solo el carrito abierto.
// Reemplaza al estado global del cliente; cada operador tiene su propio carrito.
type Manager struct {
	mu    sync.Mutex
	carts map[string]*checkout.Cart
}

// NewManager construye el administrador de sesiones.
func NewManager() *Manager {
	return &Manager{carts: make(map[string]*checkout.Cart)}
}

// Cart carrito del operador; lo crea vacío si no existe.
func (m *Manager) Cart(actorID string) *checkout.Cart {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.carts[actorID]
	if !ok {
		c = checkout.NewCart()
		m.carts[actorID] = c
	}
	return c
}

// End descarta el estado de la sesión (logout).
func (m *Manager) End(actorID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, actorID)
}

// Active cantidad de sesiones con estado.
func (m *Manager) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.carts)
}
