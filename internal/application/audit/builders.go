package audit

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

func base(actor entity.Actor, action entity.ActionKind, entityType string) entity.AuditEntry {
	return entity.AuditEntry{
		ActorID:    actor.ID,
		ActorName:  actor.Name,
		ActorRole:  actor.Role,
		Action:     action,
		EntityType: entityType,
		Details:    map[string]any{},
	}
}

// Snapshot convierte v en un mapa con sus claves JSON. Se usa para details y changes.
func Snapshot(v any) map[string]any {
	b, err := json.Marshal(v)
	if err != nil {
		return map[string]any{}
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil || m == nil {
		return map[string]any{}
	}
	return m
}

// MedicineAdded el detalle es el registro completo.
func MedicineAdded(actor entity.Actor, m entity.Medicine) entity.AuditEntry {
	e := base(actor, entity.ActionMedicineAdd, entity.EntityMedicine)
	e.EntityID, e.EntityName = m.ID, m.Name
	e.Details = Snapshot(m)
	return e
}

// MedicineEdited lleva el antes y el después.
func MedicineEdited(actor entity.Actor, before, after entity.Medicine) entity.AuditEntry {
	e := base(actor, entity.ActionMedicineEdit, entity.EntityMedicine)
	e.EntityID, e.EntityName = after.ID, after.Name
	e.Changes = &entity.Changes{Before: Snapshot(before), After: Snapshot(after)}
	return e
}

func MedicineDeleted(actor entity.Actor, m entity.Medicine) entity.AuditEntry {
	e := base(actor, entity.ActionMedicineDelete, entity.EntityMedicine)
	e.EntityID, e.EntityName = m.ID, m.Name
	return e
}

// MedicineSold una entrada por línea vendida.
func MedicineSold(actor entity.Actor, medicineID, name string, qty int, price decimal.Decimal, customer string) entity.AuditEntry {
	e := base(actor, entity.ActionMedicineSold, entity.EntitySale)
	e.EntityID, e.EntityName = medicineID, name
	e.Details = map[string]any{
		"quantity":     qty,
		"price":        price.String(),
		"totalPrice":   price.Mul(decimal.NewFromInt(int64(qty))).String(),
		"customerName": customer,
	}
	return e
}

// SaleCompleted resumen de la venta; entityId es el id del recibo.
func SaleCompleted(actor entity.Actor, r entity.Receipt, failedLines int) entity.AuditEntry {
	e := base(actor, entity.ActionSaleCompleted, entity.EntitySale)
	e.EntityID, e.EntityName = r.ID, "Receipt"
	e.Details = map[string]any{
		"itemsCount":   len(r.Items),
		"subtotal":     r.Subtotal.String(),
		"tax":          r.Tax.String(),
		"grandTotal":   r.GrandTotal.String(),
		"customerName": r.CustomerName,
		"failedLines":  failedLines,
	}
	return e
}

func UserAdded(actor entity.Actor, u entity.User) entity.AuditEntry {
	e := base(actor, entity.ActionUserAdd, entity.EntityUser)
	e.EntityID, e.EntityName = u.ID, u.Name
	e.Details = Snapshot(u.Public())
	return e
}

func UserEdited(actor entity.Actor, before, after entity.User) entity.AuditEntry {
	e := base(actor, entity.ActionUserEdit, entity.EntityUser)
	e.EntityID, e.EntityName = after.ID, after.Name
	e.Changes = &entity.Changes{Before: Snapshot(before.Public()), After: Snapshot(after.Public())}
	return e
}

func UserDeleted(actor entity.Actor, u entity.User) entity.AuditEntry {
	e := base(actor, entity.ActionUserDelete, entity.EntityUser)
	e.EntityID, e.EntityName = u.ID, u.Name
	return e
}

func Login(actor entity.Actor) entity.AuditEntry {
	e := base(actor, entity.ActionLogin, entity.EntityAuth)
	e.EntityID, e.EntityName = actor.ID, actor.Name
	return e
}

func Logout(actor entity.Actor) entity.AuditEntry {
	e := base(actor, entity.ActionLogout, entity.EntityAuth)
	e.EntityID, e.EntityName = actor.ID, actor.Name
	return e
}

func PharmacyEdited(actor entity.Actor, before, after entity.PharmacyProfile) entity.AuditEntry {
	e := base(actor, entity.ActionPharmacyEdit, entity.EntityPharmacy)
	e.EntityName = after.Name
	e.Changes = &entity.Changes{Before: Snapshot(before), After: Snapshot(after)}
	return e
}
