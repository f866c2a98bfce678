package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

// ProcurementUseCase proveedores y órdenes de compra.
type ProcurementUseCase struct {
	suppliers repository.Collection[entity.Supplier]
	orders    repository.Collection[entity.SupplierOrder]
	now       func() time.Time
}

// NewProcurementUseCase construye el caso de uso.
func NewProcurementUseCase(store repository.DocumentStore) *ProcurementUseCase {
	return &ProcurementUseCase{
		suppliers: repository.NewCollection[entity.Supplier](store, repository.CollectionSuppliers),
		orders:    repository.NewCollection[entity.SupplierOrder](store, repository.CollectionSupplierOrders),
		now:       time.Now,
	}
}

// WithClock fija el reloj (tests).
func (uc *ProcurementUseCase) WithClock(now func() time.Time) *ProcurementUseCase {
	uc.now = now
	return uc
}

// ── Proveedores ──────────────────────────────────────────────────────────────

func (uc *ProcurementUseCase) ListSuppliers(ctx context.Context) ([]entity.Supplier, error) {
	return uc.suppliers.All(ctx)
}

func (uc *ProcurementUseCase) CreateSupplier(ctx context.Context, in dto.SupplierRequest) (*entity.Supplier, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("name", "requerido")
	}
	s := entity.Supplier{ID: uuid.New().String(), Name: name, Phone: strings.TrimSpace(in.Phone)}
	if _, err := uc.suppliers.Insert(ctx, s.ID, s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (uc *ProcurementUseCase) UpdateSupplier(ctx context.Context, id string, in dto.SupplierRequest) (*entity.Supplier, error) {
	s, err := uc.suppliers.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		s.Name = name
	}
	s.Phone = strings.TrimSpace(in.Phone)
	if err := uc.suppliers.Put(ctx, id, s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (uc *ProcurementUseCase) DeleteSupplier(ctx context.Context, id string) error {
	return uc.suppliers.Delete(ctx, id)
}

// ── Órdenes ──────────────────────────────────────────────────────────────────

func (uc *ProcurementUseCase) ListOrders(ctx context.Context) ([]entity.SupplierOrder, error) {
	return uc.orders.All(ctx)
}

// CreateOrder crea la orden en estado Pending. Sin número se asigna el siguiente ORD-NNN libre;
// sin fecha se usa la de hoy.
func (uc *ProcurementUseCase) CreateOrder(ctx context.Context, in dto.SupplierOrderRequest) (*entity.SupplierOrder, error) {
	supplier := strings.TrimSpace(in.SupplierName)
	if supplier == "" {
		return nil, domain.Invalid("supplierName", "requerido")
	}
	if len(in.Items) == 0 {
		return nil, domain.Invalid("items", "la orden necesita al menos un ítem")
	}
	for _, it := range in.Items {
		if strings.TrimSpace(it.Name) == "" || it.Quantity <= 0 {
			return nil, domain.Invalid("items", "cada ítem necesita nombre y cantidad positiva")
		}
	}
	date := strings.TrimSpace(in.Date)
	if date == "" {
		date = uc.now().UTC().Format(entity.ExpiryDateLayout)
	} else if _, err := time.Parse(entity.ExpiryDateLayout, date); err != nil {
		return nil, domain.Invalid("date", "formato esperado YYYY-MM-DD")
	}

	existing, err := uc.orders.All(ctx)
	if err != nil {
		return nil, err
	}
	number := strings.TrimSpace(in.OrderNumber)
	if number == "" {
		number = nextOrderNumber(existing)
	}

	o := entity.SupplierOrder{
		ID:           uuid.New().String(),
		OrderNumber:  number,
		Items:        in.Items,
		SupplierName: supplier,
		Status:       entity.OrderPending,
		Date:         date,
	}
	if _, err := uc.orders.Insert(ctx, o.ID, o); err != nil {
		return nil, err
	}
	return &o, nil
}

// SetOrderStatus Completed sella deliveredOn y Cancelled sella cancelledOn.
func (uc *ProcurementUseCase) SetOrderStatus(ctx context.Context, id, status string) (*entity.SupplierOrder, error) {
	o, err := uc.orders.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	stamp := uc.now().UTC().Format(time.RFC3339)
	switch status {
	case entity.OrderPending:
		o.DeliveredOn, o.CancelledOn = "", ""
	case entity.OrderCompleted:
		o.DeliveredOn, o.CancelledOn = stamp, ""
	case entity.OrderCancelled:
		o.CancelledOn, o.DeliveredOn = stamp, ""
	default:
		return nil, domain.Invalid("status", "debe ser Pending, Completed o Cancelled")
	}
	o.Status = status
	if err := uc.orders.Put(ctx, id, o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (uc *ProcurementUseCase) DeleteOrder(ctx context.Context, id string) error {
	return uc.orders.Delete(ctx, id)
}

func nextOrderNumber(existing []entity.SupplierOrder) string {
	used := make(map[string]bool, len(existing))
	for _, o := range existing {
		used[o.OrderNumber] = true
	}
	for n := len(existing) + 1; ; n++ {
		candidate := fmt.Sprintf("ORD-%03d", n)
		if !used[candidate] {
			return candidate
		}
	}
}
