package entity

import "time"

// ActionKind tipo de acción auditada. Conjunto cerrado; los valores se comparten con el cliente web.
type ActionKind string

const (
	ActionMedicineAdd    ActionKind = "MEDICINE_ADD"
	ActionMedicineEdit   ActionKind = "MEDICINE_EDIT"
	ActionMedicineDelete ActionKind = "MEDICINE_DELETE"
	ActionMedicineSold   ActionKind = "MEDICINE_SOLD"
	ActionUserAdd        ActionKind = "USER_ADD"
	ActionUserEdit       ActionKind = "USER_EDIT"
	ActionUserDelete     ActionKind = "USER_DELETE"
	ActionLogin          ActionKind = "LOGIN"
	ActionLogout         ActionKind = "LOGOUT"
	ActionPharmacyEdit   ActionKind = "PHARMACY_EDIT"
	ActionSaleCompleted  ActionKind = "SALE_COMPLETED"
)

var actionLabels = map[ActionKind]string{
	ActionMedicineAdd:    "Medicine Added",
	ActionMedicineEdit:   "Medicine Edited",
	ActionMedicineDelete: "Medicine Deleted",
	ActionMedicineSold:   "Medicine Sold",
	ActionUserAdd:        "User Added",
	ActionUserEdit:       "User Edited",
	ActionUserDelete:     "User Deleted",
	ActionLogin:          "Login",
	ActionLogout:         "Logout",
	ActionPharmacyEdit:   "Pharmacy Edited",
	ActionSaleCompleted:  "Sale Completed",
}

// ActionKinds todos los valores válidos, en el orden en que se declaran.
func ActionKinds() []ActionKind {
	return []ActionKind{
		ActionMedicineAdd, ActionMedicineEdit, ActionMedicineDelete, ActionMedicineSold,
		ActionUserAdd, ActionUserEdit, ActionUserDelete,
		ActionLogin, ActionLogout, ActionPharmacyEdit, ActionSaleCompleted,
	}
}

// IsValid indica si k pertenece al conjunto cerrado.
func (k ActionKind) IsValid() bool {
	_, ok := actionLabels[k]
	return ok
}

// Label etiqueta legible usada en la exportación CSV. Para valores desconocidos devuelve el valor crudo.
func (k ActionKind) Label() string {
	if l, ok := actionLabels[k]; ok {
		return l
	}
	return string(k)
}

// IsChange acciones que cuentan como "cambios" en las estadísticas del registro.
func (k ActionKind) IsChange() bool {
	switch k {
	case ActionMedicineAdd, ActionMedicineEdit, ActionMedicineDelete, ActionPharmacyEdit:
		return true
	}
	return false
}

// Tipos de entidad auditada.
const (
	EntityMedicine = "medicine"
	EntityUser     = "user"
	EntitySale     = "sale"
	EntityAuth     = "auth"
	EntityPharmacy = "pharmacy"
	EntityCategory = "category"
)

// Changes instantánea antes/después; solo presente en acciones de edición.
type Changes struct {
	Before map[string]any `json:"before,omitempty"`
	After  map[string]any `json:"after,omitempty"`
}

// AuditEntry registro inmutable de una acción. Las claves JSON (userId, userName, userRole, action)
// son las de la colección audit_logs que también lee el cliente web.
type AuditEntry struct {
	ID         string         `json:"id"`
	Timestamp  time.Time      `json:"timestamp"`
	ActorID    string         `json:"userId"`
	ActorName  string         `json:"userName"`
	ActorRole  string         `json:"userRole"`
	Action     ActionKind     `json:"action"`
	EntityType string         `json:"entityType"`
	EntityID   string         `json:"entityId,omitempty"`
	EntityName string         `json:"entityName,omitempty"`
	Details    map[string]any `json:"details"`
	Changes    *Changes       `json:"changes,omitempty"`
}
