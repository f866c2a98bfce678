package inventory

import (
	"context"
	"strings"

	"golang.org/x/text/cases"

	"github.com/jhoicas/Farmacia-api/internal/application/audit"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// ListFilter filtros del listado de medicamentos. Search busca en nombre, categoría y proveedor.
type ListFilter struct {
	Search       string
	Category     string
	LowStockOnly bool
}

// MedicineUseCase casos de uso CRUD de medicamentos: cada mutación queda auditada.
type MedicineUseCase struct {
	store *Store
	audit AuditRecorder
}

// NewMedicineUseCase construye el caso de uso.
func NewMedicineUseCase(store *Store, audit AuditRecorder) *MedicineUseCase {
	return &MedicineUseCase{store: store, audit: audit}
}

// Create agrega el medicamento y registra MEDICINE_ADD con el registro completo.
func (uc *MedicineUseCase) Create(ctx context.Context, actor entity.Actor, d Draft) (entity.Medicine, error) {
	m, err := uc.store.Add(d)
	if err != nil {
		return entity.Medicine{}, err
	}
	uc.audit.RecordBestEffort(ctx, audit.MedicineAdded(actor, m))
	return m, nil
}

// Update reemplaza el medicamento y registra MEDICINE_EDIT con antes y después.
func (uc *MedicineUseCase) Update(ctx context.Context, actor entity.Actor, id string, d Draft) (entity.Medicine, error) {
	before, after, err := uc.store.Update(id, d)
	if err != nil {
		return entity.Medicine{}, err
	}
	uc.audit.RecordBestEffort(ctx, audit.MedicineEdited(actor, before, after))
	return after, nil
}

// Delete borra el medicamento y registra MEDICINE_DELETE.
func (uc *MedicineUseCase) Delete(ctx context.Context, actor entity.Actor, id string) error {
	m, err := uc.store.Remove(id)
	if err != nil {
		return err
	}
	uc.audit.RecordBestEffort(ctx, audit.MedicineDeleted(actor, m))
	return nil
}

// Get un medicamento por id.
func (uc *MedicineUseCase) Get(id string) (entity.Medicine, error) {
	return uc.store.Get(id)
}

// List medicamentos que cumplen el filtro, en orden de inserción.
func (uc *MedicineUseCase) List(f ListFilter) []entity.Medicine {
	all := uc.store.List()
	fold := cases.Fold()
	term := fold.String(strings.TrimSpace(f.Search))
	out := make([]entity.Medicine, 0, len(all))
	for _, m := range all {
		if f.Category != "" && m.Category != f.Category {
			continue
		}
		if f.LowStockOnly && !m.IsLowStock() {
			continue
		}
		if term != "" &&
			!strings.Contains(fold.String(m.Name), term) &&
			!strings.Contains(fold.String(m.Category), term) &&
			!strings.Contains(fold.String(m.Supplier), term) {
			continue
		}
		out = append(out, m)
	}
	return out
}
