package checkout

import (
	"slices"
	"sync"

	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// State estado del carrito: Empty -> Building -> Committing -> Empty.
type State string

const (
	StateEmpty      State = "empty"
	StateBuilding   State = "building"
	StateCommitting State = "committing"
)

// Line línea del carrito. Quantity siempre >= 1.
type Line struct {
	MedicineID string `json:"medicineId"`
	Quantity   int    `json:"quantity"`
}

// StockReader lectura del inventario que necesita el carrito.
type StockReader interface {
	Get(id string) (entity.Medicine, error)
}

// Cart venta en curso de una sesión. Transitorio: no se persiste.
type Cart struct {
	mu         sync.Mutex
	lines      []Line
	committing bool
}

// NewCart carrito vacío.
func NewCart() *Cart {
	return &Cart{}
}

// State estado actual.
func (c *Cart) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

func (c *Cart) stateLocked() State {
	switch {
	case c.committing:
		return StateCommitting
	case len(c.lines) == 0:
		return StateEmpty
	default:
		return StateBuilding
	}
}

// Lines copia de las líneas en orden de agregado.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.lines)
}

// AddLine suma una unidad del medicamento; si no estaba en el carrito crea la línea con cantidad 1.
// Se rechaza si el medicamento no existe o no tiene stock.
func (c *Cart) AddLine(stock StockReader, medicineID string) error {
	m, err := stock.Get(medicineID)
	if err != nil {
		return err
	}
	if m.Quantity <= 0 {
		return domain.ErrOutOfStock
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.committing {
		return domain.ErrCommitInProgress
	}
	if i := c.indexLocked(medicineID); i >= 0 {
		c.lines[i].Quantity++
		return nil
	}
	c.lines = append(c.lines, Line{MedicineID: medicineID, Quantity: 1})
	return nil
}

// AdjustLine suma delta a la línea. Si el resultado sería <= 0 la línea se quita; nunca queda en 0.
func (c *Cart) AdjustLine(medicineID string, delta int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.committing {
		return domain.ErrCommitInProgress
	}
	i := c.indexLocked(medicineID)
	if i < 0 {
		return domain.ErrNotFound
	}
	q := c.lines[i].Quantity + delta
	if q <= 0 {
		c.lines = slices.Delete(c.lines, i, i+1)
		return nil
	}
	c.lines[i].Quantity = q
	return nil
}

// RemoveLine quita la línea.
func (c *Cart) RemoveLine(medicineID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.committing {
		return domain.ErrCommitInProgress
	}
	i := c.indexLocked(medicineID)
	if i < 0 {
		return domain.ErrNotFound
	}
	c.lines = slices.Delete(c.lines, i, i+1)
	return nil
}

// Clear vacía el carrito.
func (c *Cart) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.committing {
		return domain.ErrCommitInProgress
	}
	c.lines = nil
	return nil
}

// beginCommit pasa a Committing y devuelve las líneas a vender.
func (c *Cart) beginCommit() ([]Line, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.committing {
		return nil, domain.ErrCommitInProgress
	}
	if len(c.lines) == 0 {
		return nil, domain.ErrEmptyCart
	}
	c.committing = true
	return slices.Clone(c.lines), nil
}

// endCommit sale de Committing; con clear=false el carrito queda intacto (Building).
func (c *Cart) endCommit(clear bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.committing = false
	if clear {
		c.lines = nil
	}
}

func (c *Cart) indexLocked(medicineID string) int {
	return slices.IndexFunc(c.lines, func(l Line) bool { return l.MedicineID == medicineID })
}
