package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Farmacia-api/internal/application/audit"
	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/application/usecase"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
	"github.com/jhoicas/Farmacia-api/internal/infrastructure/memstore"
)

var manager = entity.Actor{ID: "u-admin", Name: "Admin", Role: entity.RoleManager}

func newAudit(store *memstore.Store) *audit.Log {
	return audit.NewLog(store, 0, zerolog.Nop())
}

func ptr[T any](v T) *T { return &v }

// ─── Usuarios ────────────────────────────────────────────────────────────────

func TestUserUseCase_CreateAuditaSinHash(t *testing.T) {
	store := memstore.New()
	log := newAudit(store)
	uc := usecase.NewUserUseCase(store, log)
	ctx := context.Background()

	u, err := uc.Create(ctx, manager, dto.CreateUserRequest{
		Username: "ana", Password: "secreto123", Name: "Ana Pérez", Role: entity.RolePharmacist,
	})
	require.NoError(t, err)
	assert.True(t, u.Active)

	entries, err := log.Query(ctx, audit.Filter{Action: entity.ActionUserAdd})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, u.ID, entries[0].EntityID)
	assert.NotContains(t, entries[0].Details, "passwordHash")
}

func TestUserUseCase_CreateValida(t *testing.T) {
	uc := usecase.NewUserUseCase(memstore.New(), newAudit(memstore.New()))
	ctx := context.Background()

	_, err := uc.Create(ctx, manager, dto.CreateUserRequest{Username: "ana", Password: "secreto123", Name: "Ana", Role: "admin"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Create(ctx, manager, dto.CreateUserRequest{Username: "ana", Password: "corta", Name: "Ana", Role: entity.RoleStaff})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Create(ctx, manager, dto.CreateUserRequest{Username: "ana", Password: "secreto123", Name: "Ana", Role: entity.RoleStaff})
	require.NoError(t, err)
	_, err = uc.Create(ctx, manager, dto.CreateUserRequest{Username: "ana", Password: "secreto123", Name: "Otra", Role: entity.RoleStaff})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestUserUseCase_DeactivateYDelete(t *testing.T) {
	store := memstore.New()
	log := newAudit(store)
	uc := usecase.NewUserUseCase(store, log)
	ctx := context.Background()

	u, err := uc.Create(ctx, manager, dto.CreateUserRequest{Username: "luis", Password: "secreto123", Name: "Luis", Role: entity.RoleStaff})
	require.NoError(t, err)

	got, err := uc.Deactivate(ctx, manager, u.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)

	_, err = uc.Deactivate(ctx, manager, manager.ID)
	assert.ErrorIs(t, err, domain.ErrValidation, "no puede desactivarse a sí mismo")

	require.NoError(t, uc.Delete(ctx, manager, u.ID))
	_, err = uc.GetByID(ctx, u.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	entries, err := log.Query(ctx, audit.Filter{EntityType: entity.EntityUser})
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, entity.ActionUserDelete, entries[0].Action)
	assert.Equal(t, entity.ActionUserEdit, entries[1].Action)
	assert.Equal(t, false, entries[1].Changes.After["active"])
}

func TestUserUseCase_UpdateParcial(t *testing.T) {
	store := memstore.New()
	uc := usecase.NewUserUseCase(store, newAudit(store))
	ctx := context.Background()

	u, err := uc.Create(ctx, manager, dto.CreateUserRequest{Username: "luis", Password: "secreto123", Name: "Luis", Role: entity.RoleStaff, Title: "Cajero"})
	require.NoError(t, err)

	got, err := uc.Update(ctx, manager, u.ID, dto.UpdateUserRequest{Role: ptr(entity.RolePharmacist)})
	require.NoError(t, err)
	assert.Equal(t, entity.RolePharmacist, got.Role)
	assert.Equal(t, "Cajero", got.Title)

	_, err = uc.Update(ctx, manager, u.ID, dto.UpdateUserRequest{Name: ptr("  ")})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ─── Proveedores y órdenes ───────────────────────────────────────────────────

func TestProcurement_OrdenNumeradaYEstados(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	uc := usecase.NewProcurementUseCase(memstore.New()).WithClock(func() time.Time { return now })
	ctx := context.Background()

	items := []entity.SupplierOrderItem{{Name: "Ibuprofeno", Quantity: 100}}
	_, err := uc.CreateOrder(ctx, dto.SupplierOrderRequest{OrderNumber: "ORD-002", SupplierName: "Acme", Items: items})
	require.NoError(t, err)
	o, err := uc.CreateOrder(ctx, dto.SupplierOrderRequest{SupplierName: "Acme", Items: items})
	require.NoError(t, err)

	assert.Equal(t, "ORD-003", o.OrderNumber, "ORD-002 ya está tomado")
	assert.Equal(t, entity.OrderPending, o.Status)
	assert.Equal(t, "2026-03-02", o.Date)

	done, err := uc.SetOrderStatus(ctx, o.ID, entity.OrderCompleted)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-02T09:30:00Z", done.DeliveredOn)
	assert.Empty(t, done.CancelledOn)

	_, err = uc.SetOrderStatus(ctx, o.ID, "Lost")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestProcurement_OrdenInvalida(t *testing.T) {
	uc := usecase.NewProcurementUseCase(memstore.New())
	ctx := context.Background()

	_, err := uc.CreateOrder(ctx, dto.SupplierOrderRequest{SupplierName: "Acme"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.CreateOrder(ctx, dto.SupplierOrderRequest{
		SupplierName: "Acme", Date: "02/03/2026",
		Items: []entity.SupplierOrderItem{{Name: "Ibuprofeno", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestProcurement_ProveedoresCRUD(t *testing.T) {
	uc := usecase.NewProcurementUseCase(memstore.New())
	ctx := context.Background()

	s, err := uc.CreateSupplier(ctx, dto.SupplierRequest{Name: "Acme", Phone: "555"})
	require.NoError(t, err)
	_, err = uc.UpdateSupplier(ctx, s.ID, dto.SupplierRequest{Phone: "556"})
	require.NoError(t, err)

	all, err := uc.ListSuppliers(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Acme", all[0].Name)
	assert.Equal(t, "556", all[0].Phone)

	require.NoError(t, uc.DeleteSupplier(ctx, s.ID))
	assert.ErrorIs(t, uc.DeleteSupplier(ctx, s.ID), domain.ErrNotFound)
}

// ─── Farmacia ────────────────────────────────────────────────────────────────

func TestPharmacy_UpdateAuditaCambios(t *testing.T) {
	store := memstore.New()
	log := newAudit(store)
	uc := usecase.NewPharmacyUseCase(store, log)
	ctx := context.Background()

	p, err := uc.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, p.Name)

	_, err = uc.Update(ctx, manager, entity.PharmacyProfile{Name: "Farmacia Central", Phone: "555"})
	require.NoError(t, err)
	_, err = uc.Update(ctx, manager, entity.PharmacyProfile{Name: ""})
	assert.ErrorIs(t, err, domain.ErrValidation)

	entries, err := log.Query(ctx, audit.Filter{Action: entity.ActionPharmacyEdit})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "", entries[0].Changes.Before["name"])
	assert.Equal(t, "Farmacia Central", entries[0].Changes.After["name"])
}

// ─── Recibos ─────────────────────────────────────────────────────────────────

type fakePDF struct{ header string }

func (f *fakePDF) GenerateReceiptPDF(_ context.Context, r entity.Receipt, p entity.PharmacyProfile) ([]byte, error) {
	f.header = p.Name
	if r.ID == "" {
		return nil, errors.New("sin id")
	}
	return []byte("%PDF-" + r.ID), nil
}

func TestReceipts_RecentPDFYClear(t *testing.T) {
	store := memstore.New()
	ctx := context.Background()
	pharmacy := usecase.NewPharmacyUseCase(store, newAudit(store))
	_, err := pharmacy.Update(ctx, manager, entity.PharmacyProfile{Name: "Farmacia Central"})
	require.NoError(t, err)

	col := repository.NewCollection[entity.Receipt](store, repository.CollectionReceipts)
	for _, id := range []string{"r-1", "r-2", "r-3"} {
		_, err := col.Insert(ctx, id, entity.Receipt{ID: id})
		require.NoError(t, err)
	}

	gen := &fakePDF{}
	uc := usecase.NewReceiptUseCase(store, pharmacy, gen)

	recent, err := uc.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "r-3", recent[0].ID)

	out, name, err := uc.PDF(ctx, "r-2")
	require.NoError(t, err)
	assert.Equal(t, "%PDF-r-2", string(out))
	assert.Equal(t, "receipt-r-2.pdf", name)
	assert.Equal(t, "Farmacia Central", gen.header)

	_, _, err = uc.PDF(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.ClearAll(ctx, false)
	assert.ErrorIs(t, err, domain.ErrConfirmationRequired)
	n, err := uc.ClearAll(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}
